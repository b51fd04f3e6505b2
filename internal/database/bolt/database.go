// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package bolt provides a namespaced database implementation using bbolt,
// each namespace being a bucket.
package bolt

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ChainSafe/ssi/internal/database"
	"go.etcd.io/bbolt"
)

var _ database.Namespaced = (*Database)(nil)

// Database is a namespaced database using a bbolt file.
type Database struct {
	path string
	db   *bbolt.DB
}

// New opens the bbolt database file at path.
// A read only database must already exist.
func New(path string, readOnly bool) (*Database, error) {
	if readOnly {
		_, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("opening bolt database: %w", err)
		}
	}

	const fileMode = os.FileMode(0600)
	db, err := bbolt.Open(path, fileMode, &bbolt.Options{
		ReadOnly: readOnly,
		Timeout:  time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	return &Database{path: path, db: db}, nil
}

// Path returns the database file path.
func (db *Database) Path() string {
	return db.path
}

// Table returns the table of the namespace bucket.
func (db *Database) Table(namespace string) database.Table {
	return &table{
		db:     db.db,
		name:   namespace,
		bucket: []byte(namespace),
	}
}

// Close closes the database.
func (db *Database) Close() error {
	return db.db.Close()
}

type table struct {
	db     *bbolt.DB
	name   string
	bucket []byte
}

func (t *table) Name() string {
	return t.name
}

// Get returns a copy of the value at key. A missing bucket
// is treated as an empty namespace.
func (t *table) Get(key []byte) (value []byte, err error) {
	err = t.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(t.bucket)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get(key); v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, transformError(err)
	}

	if value == nil {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	}
	return value, nil
}

func (t *table) Has(key []byte) (has bool, err error) {
	_, err = t.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, database.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (t *table) Put(key, value []byte) error {
	err := t.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(t.bucket)
		if err != nil {
			return fmt.Errorf("creating bucket %s: %w", t.name, err)
		}
		return bucket.Put(key, value)
	})
	return transformError(err)
}

func (t *table) Del(key []byte) error {
	err := t.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(t.bucket)
		if bucket == nil {
			return nil
		}
		return bucket.Delete(key)
	})
	return transformError(err)
}

// NewIterator returns an iterator over the bucket, reading
// from a read only transaction rolled back on release.
func (t *table) NewIterator() database.Iterator {
	tx, err := t.db.Begin(false)
	if err != nil {
		return &iterator{err: transformError(err)}
	}

	it := &iterator{tx: tx}
	if bucket := tx.Bucket(t.bucket); bucket != nil {
		it.cursor = bucket.Cursor()
	}
	return it
}

type iterator struct {
	tx     *bbolt.Tx
	cursor *bbolt.Cursor
	key    []byte
	value  []byte
	err    error
}

func (it *iterator) First() bool {
	if it.cursor == nil {
		return false
	}
	it.key, it.value = it.cursor.First()
	return it.Valid()
}

func (it *iterator) Next() bool {
	if it.cursor == nil {
		return false
	}
	it.key, it.value = it.cursor.Next()
	return it.Valid()
}

func (it *iterator) Valid() bool   { return it.key != nil }
func (it *iterator) Key() []byte   { return it.key }
func (it *iterator) Value() []byte { return it.value }

func (it *iterator) Release() error {
	if it.tx != nil {
		err := it.tx.Rollback()
		if err != nil {
			return transformError(err)
		}
	}
	return it.err
}

func transformError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bbolt.ErrDatabaseNotOpen):
		return fmt.Errorf("%w", database.ErrClosed)
	case errors.Is(err, bbolt.ErrDatabaseReadOnly):
		return fmt.Errorf("%w", database.ErrReadOnly)
	}
	return err
}
