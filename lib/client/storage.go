// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
	"github.com/dgraph-io/ristretto"
)

const defaultPageSize = 100

// StorageQuery is a storage address of any value type,
// such as a *chain.StorageAddress.
type StorageQuery interface {
	chain.Binding
	PalletName() string
	EntryName() string
	Key() ([]byte, error)
	PartialKey() ([]byte, error)
	DecodeKey(md *metadata.Metadata, full []byte) ([]chain.StorageKeyPart, error)
}

// Storage reads the storage of the node.
type Storage struct {
	client *Client
}

// FetchRaw returns the raw value at the storage address and block given,
// or at the best block if at is nil. It returns nil if no value is stored.
func (s *Storage) FetchRaw(ctx context.Context, address StorageQuery, at *common.Hash) ([]byte, error) {
	err := address.Validate(s.client.Metadata())
	if err != nil {
		return nil, err
	}

	key, err := address.Key()
	if err != nil {
		return nil, err
	}

	value, err := s.getStorage(ctx, key, at)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", address, err)
	}
	return value, nil
}

// Fetch decodes the value at the storage address into out and
// returns true, or returns false if no value is stored.
func (s *Storage) Fetch(ctx context.Context, address StorageQuery, at *common.Hash,
	out any) (found bool, err error) {
	value, err := s.FetchRaw(ctx, address, at)
	if err != nil {
		return false, err
	}
	if value == nil {
		return false, nil
	}

	err = decodeValue(value, out)
	if err != nil {
		return false, fmt.Errorf("decoding %s: %w", address, err)
	}
	return true, nil
}

// FetchOrDefault decodes the value at the storage address into out.
// If no value is stored, it decodes the default value of the entry
// from the runtime metadata. Entries without a default value
// return ErrNoDefault.
func (s *Storage) FetchOrDefault(ctx context.Context, address StorageQuery, at *common.Hash, out any) error {
	found, err := s.Fetch(ctx, address, at, out)
	if err != nil || found {
		return err
	}

	_, entry, err := s.client.Metadata().StorageEntry(address.PalletName(), address.EntryName())
	if err != nil {
		return err
	}
	if entry.Modifier != metadata.Default {
		return fmt.Errorf("%w: %s", ErrNoDefault, address)
	}

	err = decodeValue(entry.Default, out)
	if err != nil {
		return fmt.Errorf("decoding default of %s: %w", address, err)
	}
	return nil
}

// StorageItem is a key and value found iterating a storage map.
type StorageItem struct {
	Key []byte
	// KeyParts are the hashed keys following the entry prefix.
	KeyParts []chain.StorageKeyPart
	Value    []byte
}

// Decode decodes the value of the item into out.
func (i StorageItem) Decode(out any) error {
	return decodeValue(i.Value, out)
}

// decodeValue decodes data into the pointer out. out is left
// unchanged if decoding fails.
func decodeValue(data []byte, out any) error {
	outValue := reflect.ValueOf(out)
	if outValue.Kind() != reflect.Ptr || outValue.IsNil() {
		return fmt.Errorf("%w: %T", scale.ErrUnsupportedDestination, out)
	}

	decoded := reflect.New(outValue.Elem().Type())
	err := scale.Unmarshal(data, decoded.Interface())
	if err != nil {
		return err
	}
	outValue.Elem().Set(decoded.Elem())
	return nil
}

// Iterate calls fn for each value under the storage address, which may
// have fewer keys than hashers. Values are read page by page at the
// block given, or at the best block when the iteration starts if at is nil.
// If fn returns ErrStopIteration, Iterate stops and returns nil.
func (s *Storage) Iterate(ctx context.Context, address StorageQuery, at *common.Hash,
	pageSize uint32, fn func(item StorageItem) error) error {
	md := s.client.Metadata()
	err := address.Validate(md)
	if err != nil {
		return err
	}

	prefix, err := address.PartialKey()
	if err != nil {
		return err
	}

	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	if at == nil {
		best, err := s.client.api.GetBlockHash(ctx, nil)
		if err != nil {
			return fmt.Errorf("getting best block hash: %w", err)
		}
		at = &best
	}

	var startKey []byte
	for {
		keys, err := s.client.api.GetKeysPaged(ctx, prefix, pageSize, startKey, at)
		if err != nil {
			return fmt.Errorf("getting keys of %s: %w", address, err)
		}
		if len(keys) == 0 {
			return nil
		}

		values, err := s.client.api.QueryStorageAt(ctx, keys, at)
		if err != nil {
			return fmt.Errorf("getting values of %s: %w", address, err)
		}
		if len(values) != len(keys) {
			return fmt.Errorf("getting values of %s: got %d values for %d keys",
				address, len(values), len(keys))
		}

		for i, key := range keys {
			if values[i] == nil {
				continue
			}

			parts, err := address.DecodeKey(md, key)
			if err != nil {
				return err
			}

			err = fn(StorageItem{Key: key, KeyParts: parts, Value: values[i]})
			if errors.Is(err, ErrStopIteration) {
				return nil
			} else if err != nil {
				return err
			}
		}

		if uint32(len(keys)) < pageSize {
			return nil
		}
		startKey = keys[len(keys)-1]
	}
}

// FetchValue returns the value at the typed storage address.
func FetchValue[V any](ctx context.Context, storage *Storage, address *chain.StorageAddress[V],
	at *common.Hash) (value V, found bool, err error) {
	found, err = storage.Fetch(ctx, address, at, &value)
	return value, found, err
}

// FetchValueOrDefault returns the value at the typed storage address,
// or the default value of the entry.
func FetchValueOrDefault[V any](ctx context.Context, storage *Storage, address *chain.StorageAddress[V],
	at *common.Hash) (value V, err error) {
	err = storage.FetchOrDefault(ctx, address, at, &value)
	return value, err
}

// getStorage returns the raw value at key. Values read at
// a given block are cached.
func (s *Storage) getStorage(ctx context.Context, key []byte, at *common.Hash) ([]byte, error) {
	cache := s.client.storageCache
	if at == nil || cache == nil {
		return s.client.api.GetStorage(ctx, key, at)
	}

	cacheKey := string(at[:]) + string(key)
	if cached, ok := cache.Get(cacheKey); ok {
		return cached.([]byte), nil
	}

	value, err := s.client.api.GetStorage(ctx, key, at)
	if err != nil {
		return nil, err
	}
	cache.Set(cacheKey, value, int64(len(value)+1))
	return value, nil
}

func newStorageCache(size int64) (*ristretto.Cache, error) {
	const minCounters = 100
	return ristretto.NewCache(&ristretto.Config{
		NumCounters: max(int64(float64(size)*0.05*2), minCounters),
		MaxCost:     max(int64(float64(size)*0.95), 1),
		BufferItems: 64,
	})
}
