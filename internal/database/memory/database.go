// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package memory provides an in-memory database implementation.
package memory

import (
	"sync"

	"github.com/ChainSafe/argon-client/internal/database"
)

var _ database.Database = (*Database)(nil)

// Database is an in-memory database. Values are copied
// on the way in and out.
type Database struct {
	*table
}

type store struct {
	mutex     sync.RWMutex
	keyValues map[string][]byte
}

// New returns a new empty in-memory database.
func New() *Database {
	return &Database{
		table: &table{store: &store{keyValues: make(map[string][]byte)}},
	}
}

// NewTable returns a table prefixing its keys with prefix.
func (d *Database) NewTable(prefix string) database.Table {
	return &table{store: d.store, prefix: prefix}
}

// Close clears the database. Further calls fail with database.ErrClosed.
func (d *Database) Close() error {
	d.store.mutex.Lock()
	defer d.store.mutex.Unlock()
	d.store.keyValues = nil
	return nil
}
