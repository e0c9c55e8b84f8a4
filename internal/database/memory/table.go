// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ChainSafe/argon-client/internal/database"
)

type table struct {
	store  *store
	prefix string
}

func (t *table) Get(key []byte) (value []byte, err error) {
	t.store.mutex.RLock()
	defer t.store.mutex.RUnlock()
	if t.store.keyValues == nil {
		return nil, database.ErrClosed
	}

	value, ok := t.store.keyValues[t.prefix+string(key)]
	if !ok {
		return nil, fmt.Errorf("getting 0x%x: %w", key, database.ErrKeyNotFound)
	}
	return append([]byte{}, value...), nil
}

func (t *table) Set(key, value []byte) error {
	t.store.mutex.Lock()
	defer t.store.mutex.Unlock()
	if t.store.keyValues == nil {
		return database.ErrClosed
	}

	t.store.keyValues[t.prefix+string(key)] = append([]byte{}, value...)
	return nil
}

func (t *table) Delete(key []byte) error {
	t.store.mutex.Lock()
	defer t.store.mutex.Unlock()
	if t.store.keyValues == nil {
		return database.ErrClosed
	}

	delete(t.store.keyValues, t.prefix+string(key))
	return nil
}

func (t *table) Keys() (keys [][]byte, err error) {
	t.store.mutex.RLock()
	defer t.store.mutex.RUnlock()
	if t.store.keyValues == nil {
		return nil, database.ErrClosed
	}

	prefixed := make([]string, 0, len(t.store.keyValues))
	for key := range t.store.keyValues {
		if strings.HasPrefix(key, t.prefix) {
			prefixed = append(prefixed, key)
		}
	}
	sort.Strings(prefixed)

	keys = make([][]byte, len(prefixed))
	for i, key := range prefixed {
		keys[i] = []byte(key[len(t.prefix):])
	}
	return keys, nil
}
