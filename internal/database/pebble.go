// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package database

import (
	"errors"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var _ Database = (*pebbleDB)(nil)

type pebbleDB struct {
	path     string
	readOnly bool
	db       *pebble.DB
}

// NewPebble opens the pebble database at path. The database is held
// in memory if inMemory is true, and writes are rejected if readOnly is true.
func NewPebble(path string, inMemory, readOnly bool) (Database, error) {
	opts := &pebble.Options{ReadOnly: readOnly}
	switch {
	case inMemory:
		opts.FS = vfs.NewMem()
	case readOnly:
		_, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("opening pebble db: %w", err)
		}
	default:
		err := os.MkdirAll(path, os.ModePerm)
		if err != nil {
			return nil, err
		}
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("opening pebble db: %w", err)
	}

	return &pebbleDB{path: path, readOnly: readOnly, db: db}, nil
}

func (p *pebbleDB) Path() string {
	return p.path
}

func (p *pebbleDB) Put(key, value []byte) error {
	if p.readOnly {
		return fmt.Errorf("%w: writing 0x%x", ErrReadOnly, key)
	}

	err := p.db.Set(key, value, pebble.Sync)
	if err != nil {
		return fmt.Errorf("writing 0x%x to database: %w", key, err)
	}
	return nil
}

func (p *pebbleDB) Get(key []byte) (value []byte, err error) {
	value, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: 0x%x", ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("getting 0x%x from database: %w", key, err)
	}

	valueCpy := make([]byte, len(value))
	copy(valueCpy, value)

	err = closer.Close()
	if err != nil {
		return nil, fmt.Errorf("closing after get: %w", err)
	}

	return valueCpy, nil
}

func (p *pebbleDB) Has(key []byte) (exists bool, err error) {
	_, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	err = closer.Close()
	if err != nil {
		return false, fmt.Errorf("closing after get: %w", err)
	}

	return true, nil
}

func (p *pebbleDB) Del(key []byte) error {
	if p.readOnly {
		return fmt.Errorf("%w: deleting 0x%x", ErrReadOnly, key)
	}

	err := p.db.Delete(key, pebble.Sync)
	if err != nil {
		return fmt.Errorf("deleting 0x%x from database: %w", key, err)
	}
	return nil
}

func (p *pebbleDB) Close() error {
	return p.db.Close()
}

// NewPrefixIterator returns an iterator over the keys with the given prefix.
// If pebble fails to create the iterator, the iterator returned is
// exhausted and its Release method returns the creation error.
func (p *pebbleDB) NewPrefixIterator(prefix []byte) Iterator {
	iterOptions := &pebble.IterOptions{}
	if len(prefix) > 0 {
		iterOptions.LowerBound = prefix
		iterOptions.UpperBound = KeyUpperBound(prefix)
	}

	iterator, err := p.db.NewIter(iterOptions)
	if err != nil {
		return &pebbleIterator{err: fmt.Errorf("creating iterator: %w", err)}
	}
	return &pebbleIterator{iterator: iterator}
}

var _ Iterator = (*pebbleIterator)(nil)

type pebbleIterator struct {
	iterator *pebble.Iterator
	err      error
}

func (pi *pebbleIterator) First() bool {
	return pi.iterator != nil && pi.iterator.First()
}

func (pi *pebbleIterator) Next() bool {
	return pi.iterator != nil && pi.iterator.Next()
}

func (pi *pebbleIterator) Valid() bool {
	return pi.iterator != nil && pi.iterator.Valid()
}

func (pi *pebbleIterator) Key() []byte {
	if pi.iterator == nil {
		return nil
	}
	return pi.iterator.Key()
}

func (pi *pebbleIterator) Value() []byte {
	if pi.iterator == nil {
		return nil
	}
	return pi.iterator.Value()
}

func (pi *pebbleIterator) Release() error {
	if pi.iterator == nil {
		return pi.err
	}
	return pi.iterator.Close()
}
