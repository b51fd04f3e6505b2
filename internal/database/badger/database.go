// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package badger provides a database implementation using badger v3.
package badger

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/ssi/internal/database"
	badger "github.com/dgraph-io/badger/v3"
)

var _ database.Database = (*Database)(nil)

// Database is database implementation using a badger/v3 database.
type Database struct {
	path           string
	badgerDatabase *badger.DB
}

// New returns a new database based on a badger v3 database.
func New(settings Settings) (db *Database, err error) {
	settings.SetDefaults()
	err = settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	badgerOptions := badger.DefaultOptions(*settings.Path)
	badgerOptions = badgerOptions.WithLogger(nil)
	badgerOptions = badgerOptions.WithInMemory(*settings.InMemory)
	badgerOptions = badgerOptions.WithReadOnly(*settings.ReadOnly)
	badgerDatabase, err := badger.Open(badgerOptions)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	return &Database{
		path:           *settings.Path,
		badgerDatabase: badgerDatabase,
	}, nil
}

// Path returns the database directory path.
func (db *Database) Path() string {
	return db.path
}

// Get retrieves a value from the database using the given key.
// It returns the wrapped error `database.ErrKeyNotFound` if the
// key is not found.
func (db *Database) Get(key []byte) (value []byte, err error) {
	err = db.badgerDatabase.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return fmt.Errorf("getting item from transaction: %w", err)
		}

		value, err = item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("copying value: %w", err)
		}

		return nil
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	}

	return value, transformError(err)
}

// Has returns true if the key exists in the database.
func (db *Database) Has(key []byte) (has bool, err error) {
	_, err = db.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, database.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Put sets a value at the given key in the database.
func (db *Database) Put(key, value []byte) (err error) {
	err = db.badgerDatabase.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	return transformError(err)
}

// Del deletes the given key from the database.
// If the key is not found, no error is returned.
func (db *Database) Del(key []byte) (err error) {
	err = db.badgerDatabase.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	return transformError(err)
}

// NewPrefixIterator returns an iterator over the keys with the given prefix,
// reading from a read only transaction discarded on release.
func (db *Database) NewPrefixIterator(prefix []byte) database.Iterator {
	txn := db.badgerDatabase.NewTransaction(false)
	options := badger.DefaultIteratorOptions
	options.Prefix = database.MakePrefixedKey(prefix, nil)
	return &iterator{
		txn:      txn,
		iterator: txn.NewIterator(options),
	}
}

// Close closes the database.
func (db *Database) Close() (err error) {
	err = db.badgerDatabase.Close()
	return transformError(err)
}

type iterator struct {
	txn      *badger.Txn
	iterator *badger.Iterator
	err      error
}

func (it *iterator) First() bool {
	it.iterator.Rewind()
	return it.iterator.Valid()
}

func (it *iterator) Next() bool {
	it.iterator.Next()
	return it.iterator.Valid()
}

func (it *iterator) Valid() bool {
	return it.iterator.Valid()
}

func (it *iterator) Key() []byte {
	return it.iterator.Item().KeyCopy(nil)
}

func (it *iterator) Value() []byte {
	value, err := it.iterator.Item().ValueCopy(nil)
	if err != nil && it.err == nil {
		it.err = fmt.Errorf("copying value: %w", err)
	}
	return value
}

func (it *iterator) Release() error {
	it.iterator.Close()
	it.txn.Discard()
	return it.err
}
