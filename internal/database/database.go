// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package database defines the key value store interfaces the trie
// node store reads from, and the namespace tables built on top of them.
package database

import (
	"errors"
	"io"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the database.
	ErrKeyNotFound = errors.New("key not found")
	// ErrClosed is returned when the database is used after being closed.
	ErrClosed = errors.New("database closed")
	// ErrReadOnly is returned when writing to a database opened read only.
	ErrReadOnly = errors.New("database is read only")
)

// Reader reads values from a key value store.
type Reader interface {
	// Get returns the value at the given key, or an error
	// wrapping ErrKeyNotFound if the key does not exist.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// Writer writes values to a key value store.
type Writer interface {
	Put(key, value []byte) error
	Del(key []byte) error
}

// Iterator iterates over key/value pairs in ascending key order.
// Must be released after use.
type Iterator interface {
	First() bool
	Next() bool
	Valid() bool
	Key() []byte
	Value() []byte
	Release() error
}

// Database is a flat key value database.
type Database interface {
	Reader
	Writer
	io.Closer

	Path() string
	NewPrefixIterator(prefix []byte) Iterator
}

// Table is a namespace of a database, the equivalent
// of a column family.
type Table interface {
	Reader
	Writer

	Name() string
	NewIterator() Iterator
}

// Namespaced is a database partitioned in namespaces.
type Namespaced interface {
	io.Closer

	Path() string
	Table(namespace string) Table
}
