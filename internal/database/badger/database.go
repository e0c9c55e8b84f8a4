// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package badger provides a database implementation using badger v4.
package badger

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/argon-client/internal/database"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

var _ database.Database = (*Database)(nil)

// Database is a database stored in a badger v4 directory.
type Database struct {
	db *badger.DB
	table
}

// New opens the badger database at path, creating it if needed.
// An empty path keeps the database in memory.
func New(path string) (*Database, error) {
	badgerOptions := badger.DefaultOptions(path).
		WithLogger(nil).
		WithInMemory(path == "").
		// Values are compressed by the callers.
		WithCompression(options.None)

	db, err := badger.Open(badgerOptions)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	return &Database{
		db:    db,
		table: table{db: db},
	}, nil
}

// NewTable returns a table prefixing its keys with prefix.
func (d *Database) NewTable(prefix string) database.Table {
	return &table{db: d.db, prefix: []byte(prefix)}
}

// Close closes the database.
func (d *Database) Close() error {
	return transformError(d.db.Close())
}

func transformError(err error) error {
	switch {
	case errors.Is(err, badger.ErrDBClosed):
		return fmt.Errorf("%w", database.ErrClosed)
	case errors.Is(err, badger.ErrKeyNotFound):
		return fmt.Errorf("%w", database.ErrKeyNotFound)
	default:
		return err
	}
}
