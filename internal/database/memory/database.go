// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package memory provides an in-memory database implementation.
package memory

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/tidwall/btree"
)

var _ database.Database = (*Database)(nil)

// Database is an in-memory database implementation
// keeping its keys ordered.
type Database struct {
	closed    bool
	keyValues *btree.Map[string, []byte]
	mutex     sync.RWMutex
}

// New returns a new in-memory database.
func New() *Database {
	return &Database{
		keyValues: new(btree.Map[string, []byte]),
	}
}

// Path returns an empty string since the database is not on disk.
func (db *Database) Path() string { return "" }

// Get retrieves a value from the database using the given key.
// It returns `ErrKeyNotFound` if the key is not found.
func (db *Database) Get(key []byte) (value []byte, err error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	if db.closed {
		return nil, database.ErrClosed
	}

	value, ok := db.keyValues.Get(string(key))
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	}

	return copyBytes(value), nil
}

// Has returns true if the key exists in the database.
func (db *Database) Has(key []byte) (has bool, err error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	if db.closed {
		return false, database.ErrClosed
	}

	_, has = db.keyValues.Get(string(key))
	return has, nil
}

// Put sets a value at the given key in the database.
// The value byte slice is deep copied to avoid any mutation surprises.
func (db *Database) Put(key, value []byte) (err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.closed {
		return database.ErrClosed
	}

	db.keyValues.Set(string(key), copyBytes(value))
	return nil
}

// Del deletes the given key in the database.
// If the key is not found, no error is returned.
func (db *Database) Del(key []byte) (err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.closed {
		return database.ErrClosed
	}

	db.keyValues.Delete(string(key))
	return nil
}

// NewPrefixIterator returns an iterator over a snapshot of
// the keys starting with the given prefix.
func (db *Database) NewPrefixIterator(prefix []byte) database.Iterator {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	it := &iterator{index: -1}
	db.keyValues.Ascend(string(prefix), func(key string, value []byte) bool {
		if !bytes.HasPrefix([]byte(key), prefix) {
			return false
		}
		it.keys = append(it.keys, []byte(key))
		it.values = append(it.values, copyBytes(value))
		return true
	})
	return it
}

// Close closes the database.
func (db *Database) Close() (err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.closed = true
	return nil
}

func copyBytes(b []byte) (copied []byte) {
	if b == nil {
		return nil
	}
	copied = make([]byte, len(b))
	copy(copied, b)
	return copied
}

type iterator struct {
	keys   [][]byte
	values [][]byte
	index  int
}

func (it *iterator) First() bool {
	it.index = 0
	return it.Valid()
}

func (it *iterator) Next() bool {
	it.index++
	return it.Valid()
}

func (it *iterator) Valid() bool {
	return it.index >= 0 && it.index < len(it.keys)
}

func (it *iterator) Key() []byte   { return it.keys[it.index] }
func (it *iterator) Value() []byte { return it.values[it.index] }

func (it *iterator) Release() error {
	it.keys, it.values = nil, nil
	return nil
}
