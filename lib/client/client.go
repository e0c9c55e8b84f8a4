// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package client is the high level client of an Argon node. It keeps the
// runtime metadata of the node and uses it to validate and encode bindings.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ChainSafe/argon-client/config"
	"github.com/ChainSafe/argon-client/internal/database"
	"github.com/ChainSafe/argon-client/internal/database/badger"
	"github.com/ChainSafe/argon-client/internal/database/memory"
	"github.com/ChainSafe/argon-client/internal/log"
	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/rpc"
	"github.com/dgraph-io/ristretto"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "client"))

const metadataDirectory = "metadata"

// Client is a client of an Argon node.
type Client struct {
	config config.Client
	api    RPC

	db            database.Database
	ownsDB        bool
	metadataCache *metadataCache
	// storageCache caches storage values read at a given block.
	// It is nil when disabled.
	storageCache *ristretto.Cache

	genesisHash common.Hash

	mutex          sync.RWMutex
	metadata       *metadata.Metadata
	runtimeVersion rpc.RuntimeVersion
}

// New connects to the node configured and loads its runtime metadata.
func New(ctx context.Context, cfg config.Client, options ...Option) (client *Client, err error) {
	settings := newSettings(options)

	client = &Client{
		config: cfg,
		api:    settings.rpc,
		db:     settings.database,
	}
	defer func() {
		if err != nil {
			_ = client.Close()
			client = nil
		}
	}()

	if client.api == nil {
		rpcOptions := append([]rpc.Option{rpc.WithTimeout(cfg.RequestTimeout)}, settings.rpcOptions...)
		dialed, err := rpc.Dial(ctx, cfg.Endpoint, rpcOptions...)
		if err != nil {
			return client, fmt.Errorf("dialing %s: %w", cfg.Endpoint, err)
		}
		client.api = &rpcClient{Client: dialed}
	}

	if client.db == nil {
		client.db, err = openDatabase(cfg.DataDir)
		if err != nil {
			return client, err
		}
		client.ownsDB = true
	}

	client.metadataCache, err = newMetadataCache(client.db)
	if err != nil {
		return client, err
	}

	if cfg.StorageCacheSize > 0 {
		client.storageCache, err = newStorageCache(cfg.StorageCacheSize)
		if err != nil {
			return client, fmt.Errorf("creating storage cache: %w", err)
		}
	}

	genesisNumber := uint32(0)
	client.genesisHash, err = client.api.GetBlockHash(ctx, &genesisNumber)
	if err != nil {
		return client, fmt.Errorf("getting genesis hash: %w", err)
	}

	err = client.loadRuntime(ctx)
	if err != nil {
		return client, err
	}

	logger.Infof("connected to %s, runtime %s version %d, metadata v%d",
		cfg.Endpoint, client.runtimeVersion.SpecName, client.runtimeVersion.SpecVersion,
		client.metadata.Version)
	return client, nil
}

func openDatabase(dataDir string) (database.Database, error) {
	if dataDir == "" {
		return memory.New(), nil
	}

	db, err := badger.New(filepath.Join(dataDir, metadataDirectory))
	if err != nil {
		return nil, fmt.Errorf("opening metadata cache: %w", err)
	}
	return db, nil
}

// loadRuntime loads the runtime version and metadata of the best block.
func (c *Client) loadRuntime(ctx context.Context) error {
	best, err := c.api.GetBlockHash(ctx, nil)
	if err != nil {
		return fmt.Errorf("getting best block hash: %w", err)
	}

	version, err := c.api.GetRuntimeVersion(ctx, &best)
	if err != nil {
		return fmt.Errorf("getting runtime version: %w", err)
	}

	md, err := c.loadMetadata(ctx, version, best)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.metadata = md
	c.runtimeVersion = version
	return nil
}

// loadMetadata returns the metadata of the runtime version, from the
// cache if present, otherwise from the node at the block given.
func (c *Client) loadMetadata(ctx context.Context, version rpc.RuntimeVersion,
	at common.Hash) (*metadata.Metadata, error) {
	raw, err := c.metadataCache.get(version)
	if err != nil {
		logger.Warnf("ignoring metadata cache: %s", err)
	} else if raw != nil {
		md, err := metadata.Decode(raw)
		if err == nil {
			logger.Debugf("metadata of %s version %d loaded from cache",
				version.SpecName, version.SpecVersion)
			return md, nil
		}
		logger.Warnf("ignoring cached metadata: %s", err)
	}

	raw, err = fetchMetadata(ctx, c.api, &at)
	if err != nil {
		return nil, err
	}

	md, err := metadata.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}

	err = c.metadataCache.put(version, raw)
	if err != nil {
		logger.Warnf("not caching metadata: %s", err)
	}
	return md, nil
}

// Metadata returns the runtime metadata in use.
func (c *Client) Metadata() *metadata.Metadata {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.metadata
}

// RuntimeVersion returns the version of the runtime whose metadata is in use.
func (c *Client) RuntimeVersion() rpc.RuntimeVersion {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.runtimeVersion
}

// GenesisHash returns the genesis hash of the chain.
func (c *Client) GenesisHash() common.Hash {
	return c.genesisHash
}

// RPC returns the node API of the client.
func (c *Client) RPC() RPC {
	return c.api
}

// Storage returns the storage accessor of the client.
func (c *Client) Storage() *Storage {
	return &Storage{client: c}
}

// Constants returns the constants accessor of the client.
func (c *Client) Constants() *Constants {
	return &Constants{client: c}
}

// RuntimeAPI returns the runtime API accessor of the client.
func (c *Client) RuntimeAPI() *RuntimeAPI {
	return &RuntimeAPI{client: c}
}

// Tx returns the transaction accessor of the client.
func (c *Client) Tx() *Tx {
	return &Tx{client: c}
}

// ValidateBindings validates all the bindings against the runtime
// metadata and returns every mismatch joined.
func (c *Client) ValidateBindings(bindings []chain.Binding) error {
	return chain.ValidateAll(c.Metadata(), bindings)
}

// Events returns the event records of the block given,
// or of the best block if blockHash is nil.
func (c *Client) Events(ctx context.Context, blockHash *common.Hash) ([]chain.EventRecord, error) {
	key := common.StoragePrefix("System", "Events")
	raw, err := c.api.GetStorage(ctx, key, blockHash)
	if err != nil {
		return nil, fmt.Errorf("getting events: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	records, err := chain.ParseEventRecords(c.Metadata(), raw)
	if err != nil {
		return nil, fmt.Errorf("parsing events: %w", err)
	}
	return records, nil
}

// SubscribeFinalizedBlocks returns a channel of finalized block headers.
// The headers channel is closed when the context is canceled or when the
// subscription fails, in which case the error is sent on the errors channel.
func (c *Client) SubscribeFinalizedBlocks(ctx context.Context) (
	headers <-chan *rpc.Header, errs <-chan error, err error) {
	subscription, err := c.api.SubscribeFinalizedHeads(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("subscribing to finalized heads: %w", err)
	}

	headersCh := make(chan *rpc.Header)
	errCh := make(chan error, 1)
	go func() {
		defer close(headersCh)
		defer close(errCh)
		err := forwardHeaders(ctx, subscription, headersCh)
		if unsubscribeErr := subscription.Unsubscribe(); unsubscribeErr != nil {
			logger.Debugf("unsubscribing from finalized heads: %s", unsubscribeErr)
		}
		if err != nil {
			errCh <- err
		}
	}()
	return headersCh, errCh, nil
}

func forwardHeaders(ctx context.Context, subscription Subscription, headers chan<- *rpc.Header) error {
	errs := subscription.Err()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return fmt.Errorf("finalized heads subscription: %w", err)
		case raw, ok := <-subscription.Notifications():
			if !ok {
				return fmt.Errorf("finalized heads subscription: %w", subscriptionError(subscription))
			}

			header := new(rpc.Header)
			err := json.Unmarshal(raw, header)
			if err != nil {
				return fmt.Errorf("decoding finalized header: %w", err)
			}

			select {
			case headers <- header:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// subscriptionError returns the error which ended the subscription,
// or ErrSubscriptionClosed if there is none.
func subscriptionError(subscription Subscription) error {
	select {
	case err := <-subscription.Err():
		if err != nil {
			return err
		}
	default:
	}
	return ErrSubscriptionClosed
}

// Close closes the node connection and the caches of the client.
func (c *Client) Close() error {
	var errs []error
	if c.api != nil {
		err := c.api.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("closing rpc client: %w", err))
		}
	}

	if c.metadataCache != nil {
		c.metadataCache.close()
	}

	if c.storageCache != nil {
		c.storageCache.Close()
	}

	if c.ownsDB && c.db != nil {
		err := c.db.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}
	return errors.Join(errs...)
}
