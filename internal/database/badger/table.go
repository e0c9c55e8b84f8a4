// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

type table struct {
	db     *badger.DB
	prefix []byte
}

// prefixed returns a new slice so callers cannot write
// into the capacity of the prefix.
func (t *table) prefixed(key []byte) []byte {
	prefixed := make([]byte, 0, len(t.prefix)+len(key))
	prefixed = append(prefixed, t.prefix...)
	return append(prefixed, key...)
}

func (t *table) Get(key []byte) (value []byte, err error) {
	err = t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(t.prefixed(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("getting 0x%x: %w", key, transformError(err))
	}
	return value, nil
}

func (t *table) Set(key, value []byte) error {
	err := t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(t.prefixed(key), value)
	})
	return transformError(err)
}

func (t *table) Delete(key []byte) error {
	err := t.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(t.prefixed(key))
	})
	return transformError(err)
}

func (t *table) Keys() (keys [][]byte, err error) {
	err = t.db.View(func(txn *badger.Txn) error {
		iteratorOptions := badger.DefaultIteratorOptions
		iteratorOptions.PrefetchValues = false
		iteratorOptions.Prefix = t.prefix
		iterator := txn.NewIterator(iteratorOptions)
		defer iterator.Close()

		for iterator.Rewind(); iterator.Valid(); iterator.Next() {
			key := iterator.Item().KeyCopy(nil)
			keys = append(keys, key[len(t.prefix):])
		}
		return nil
	})
	if err != nil {
		return nil, transformError(err)
	}
	return keys, nil
}
