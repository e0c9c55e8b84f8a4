// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package database defines the key value store used to persist
// data such as runtime metadata between client runs.
package database

import "errors"

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("database is closed")
)

// Table is a view of the database where every key is prefixed
// with the table prefix. All methods are safe for concurrent use.
type Table interface {
	// Get returns ErrKeyNotFound wrapped if the key is not set.
	Get(key []byte) (value []byte, err error)
	Set(key, value []byte) error
	// Delete does not fail if the key is not set.
	Delete(key []byte) error
	// Keys returns the keys of the table without the table
	// prefix, in ascending byte order.
	Keys() (keys [][]byte, err error)
}

// Database is a key value store. Its own Table methods
// use an empty prefix.
type Database interface {
	Table
	NewTable(prefix string) Table
	Close() error
}
