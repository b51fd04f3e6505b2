// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package leveldb provides a database implementation using goleveldb.
package leveldb

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var _ database.Database = (*Database)(nil)

// Database is a database implementation using a goleveldb database.
type Database struct {
	path string
	db   *leveldb.DB
}

// New opens the leveldb database at path. A read only database
// must already exist.
func New(path string, readOnly bool) (*Database, error) {
	options := &opt.Options{
		Filter:         filter.NewBloomFilter(10),
		ReadOnly:       readOnly,
		ErrorIfMissing: readOnly,
	}

	db, err := leveldb.OpenFile(path, options)
	if err != nil {
		return nil, fmt.Errorf("opening leveldb database: %w", err)
	}

	return &Database{path: path, db: db}, nil
}

// NewInMemory returns a new leveldb database held in memory.
func NewInMemory() (*Database, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory leveldb database: %w", err)
	}
	return &Database{db: db}, nil
}

// Path returns the database directory path.
func (db *Database) Path() string {
	return db.path
}

// Get retrieves a value from the database using the given key.
// It returns the wrapped error `database.ErrKeyNotFound` if the
// key is not found.
func (db *Database) Get(key []byte) (value []byte, err error) {
	value, err = db.db.Get(key, nil)
	if err != nil {
		return nil, transformError(err, key)
	}
	return value, nil
}

// Has returns true if the key exists in the database.
func (db *Database) Has(key []byte) (has bool, err error) {
	has, err = db.db.Has(key, nil)
	if err != nil {
		return false, transformError(err, key)
	}
	return has, nil
}

// Put sets a value at the given key in the database.
func (db *Database) Put(key, value []byte) error {
	err := db.db.Put(key, value, nil)
	if err != nil {
		return transformError(err, key)
	}
	return nil
}

// Del deletes the given key from the database.
func (db *Database) Del(key []byte) error {
	err := db.db.Delete(key, nil)
	if err != nil {
		return transformError(err, key)
	}
	return nil
}

// NewPrefixIterator returns an iterator over the keys with the given prefix.
func (db *Database) NewPrefixIterator(prefix []byte) database.Iterator {
	return &prefixIterator{
		Iterator: db.db.NewIterator(util.BytesPrefix(prefix), nil),
	}
}

// Close closes the database.
func (db *Database) Close() error {
	return db.db.Close()
}

type prefixIterator struct {
	iterator.Iterator
}

func (it *prefixIterator) Release() error {
	it.Iterator.Release()
	return it.Iterator.Error()
}

func transformError(err error, key []byte) error {
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	case errors.Is(err, leveldb.ErrClosed):
		return fmt.Errorf("%w", database.ErrClosed)
	case errors.Is(err, leveldb.ErrReadOnly):
		return fmt.Errorf("%w: 0x%x", database.ErrReadOnly, key)
	}
	return fmt.Errorf("0x%x: %w", key, err)
}
