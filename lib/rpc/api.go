// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"context"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/common"
)

// optionalHash returns an untyped nil for a nil hash
// so it encodes as a JSON null.
func optionalHash(at *common.Hash) any {
	if at == nil {
		return nil
	}
	return *at
}

func optionalHex(data []byte) any {
	if data == nil {
		return nil
	}
	return common.BytesToHex(data)
}

// callHex calls a method whose result is an optional hex string.
// A null result returns nil bytes and no error.
func (c *Client) callHex(ctx context.Context, method string, params ...any) ([]byte, error) {
	var result *string
	err := c.Call(ctx, method, &result, params...)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return nil, nil
	}

	data, err := common.HexToBytes(*result)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", method, err)
	}
	return data, nil
}

// GetMetadata returns the SCALE encoded metadata at the block given,
// or at the best block if at is nil.
func (c *Client) GetMetadata(ctx context.Context, at *common.Hash) ([]byte, error) {
	return c.callHex(ctx, "state_getMetadata", optionalHash(at))
}

// GetStorage returns the raw storage value at key. It returns
// nil if no value is stored at the key.
func (c *Client) GetStorage(ctx context.Context, key []byte, at *common.Hash) ([]byte, error) {
	return c.callHex(ctx, "state_getStorage", common.BytesToHex(key), optionalHash(at))
}

// GetKeysPaged returns up to count storage keys with the prefix
// given, starting after startKey if it is not nil.
func (c *Client) GetKeysPaged(ctx context.Context, prefix []byte, count uint32,
	startKey []byte, at *common.Hash) (keys [][]byte, err error) {
	var result []string
	err = c.Call(ctx, "state_getKeysPaged", &result,
		common.BytesToHex(prefix), count, optionalHex(startKey), optionalHash(at))
	if err != nil {
		return nil, err
	}

	keys = make([][]byte, len(result))
	for i, key := range result {
		keys[i], err = common.HexToBytes(key)
		if err != nil {
			return nil, fmt.Errorf("decoding key %d: %w", i, err)
		}
	}
	return keys, nil
}

// QueryStorageAt returns the values stored at the keys given.
// Missing values are nil.
func (c *Client) QueryStorageAt(ctx context.Context, keys [][]byte,
	at *common.Hash) (values [][]byte, err error) {
	hexKeys := make([]string, len(keys))
	for i, key := range keys {
		hexKeys[i] = common.BytesToHex(key)
	}

	var result []StorageChangeSet
	err = c.Call(ctx, "state_queryStorageAt", &result, hexKeys, optionalHash(at))
	if err != nil {
		return nil, err
	}

	byKey := make(map[string][]byte, len(keys))
	for _, set := range result {
		for _, change := range set.Changes {
			if change[0] == nil || change[1] == nil {
				continue
			}
			value, err := common.HexToBytes(*change[1])
			if err != nil {
				return nil, fmt.Errorf("decoding value of %s: %w", *change[0], err)
			}
			byKey[*change[0]] = value
		}
	}

	values = make([][]byte, len(keys))
	for i, key := range hexKeys {
		values[i] = byKey[key]
	}
	return values, nil
}

// StateCall calls a runtime API method with the SCALE encoded data given.
func (c *Client) StateCall(ctx context.Context, method string, data []byte,
	at *common.Hash) ([]byte, error) {
	result, err := c.callHex(ctx, "state_call", method, common.BytesToHex(data), optionalHash(at))
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("state_call %s: %w", method, errNullResult)
	}
	return result, nil
}

// GetRuntimeVersion returns the runtime version at the block given.
func (c *Client) GetRuntimeVersion(ctx context.Context, at *common.Hash) (version RuntimeVersion, err error) {
	err = c.Call(ctx, "state_getRuntimeVersion", &version, optionalHash(at))
	return version, err
}

// GetBlockHash returns the hash of the block number given,
// or of the best block if number is nil.
func (c *Client) GetBlockHash(ctx context.Context, number *uint32) (hash common.Hash, err error) {
	var param any
	if number != nil {
		param = *number
	}

	var result *common.Hash
	err = c.Call(ctx, "chain_getBlockHash", &result, param)
	if err != nil {
		return hash, err
	}
	if result == nil {
		return hash, fmt.Errorf("chain_getBlockHash: %w", errNullResult)
	}
	return *result, nil
}

// GetFinalizedHead returns the hash of the last finalized block.
func (c *Client) GetFinalizedHead(ctx context.Context) (hash common.Hash, err error) {
	err = c.Call(ctx, "chain_getFinalizedHead", &hash)
	return hash, err
}

// GetHeader returns the header of the block given, or of the best
// block if hash is nil.
func (c *Client) GetHeader(ctx context.Context, hash *common.Hash) (*Header, error) {
	var header *Header
	err := c.Call(ctx, "chain_getHeader", &header, optionalHash(hash))
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, fmt.Errorf("chain_getHeader: %w", errNullResult)
	}
	return header, nil
}

// GetBlock returns the block given, or the best block if hash is nil.
func (c *Client) GetBlock(ctx context.Context, hash *common.Hash) (*SignedBlock, error) {
	var block *SignedBlock
	err := c.Call(ctx, "chain_getBlock", &block, optionalHash(hash))
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, fmt.Errorf("chain_getBlock: %w", errNullResult)
	}
	return block, nil
}

// AccountNextIndex returns the next nonce of the SS58 address given,
// including transactions in the pool.
func (c *Client) AccountNextIndex(ctx context.Context, address string) (nonce uint64, err error) {
	err = c.Call(ctx, "system_accountNextIndex", &nonce, address)
	return nonce, err
}

// SubmitExtrinsic submits the SCALE encoded extrinsic and
// returns its hash.
func (c *Client) SubmitExtrinsic(ctx context.Context, extrinsic []byte) (hash common.Hash, err error) {
	err = c.Call(ctx, "author_submitExtrinsic", &hash, common.BytesToHex(extrinsic))
	return hash, err
}

// SubmitAndWatchExtrinsic submits the SCALE encoded extrinsic and
// returns a subscription of TxStatus notifications.
func (c *Client) SubmitAndWatchExtrinsic(ctx context.Context, extrinsic []byte) (*Subscription, error) {
	return c.Subscribe(ctx, "author_submitAndWatchExtrinsic", "author_unwatchExtrinsic",
		common.BytesToHex(extrinsic))
}

// SubscribeFinalizedHeads returns a subscription of finalized Header notifications.
func (c *Client) SubscribeFinalizedHeads(ctx context.Context) (*Subscription, error) {
	return c.Subscribe(ctx, "chain_subscribeFinalizedHeads", "chain_unsubscribeFinalizedHeads")
}

// SystemChain returns the chain name.
func (c *Client) SystemChain(ctx context.Context) (chain string, err error) {
	err = c.Call(ctx, "system_chain", &chain)
	return chain, err
}

// SystemProperties returns the chain properties.
func (c *Client) SystemProperties(ctx context.Context) (properties Properties, err error) {
	err = c.Call(ctx, "system_properties", &properties)
	return properties, err
}
