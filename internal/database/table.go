// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package database

const namespaceSeparator = "/"

type table struct {
	db     Database
	name   string
	prefix []byte
}

var _ Table = (*table)(nil)

// NewTable returns the table of a namespace within a flat database.
// All the keys of the table are prefixed with the namespace name
// followed by a slash.
func NewTable(db Database, namespace string) Table {
	return &table{
		db:     db,
		name:   namespace,
		prefix: []byte(namespace + namespaceSeparator),
	}
}

func (t *table) Name() string {
	return t.name
}

func (t *table) Get(key []byte) ([]byte, error) {
	return t.db.Get(MakePrefixedKey(t.prefix, key))
}

func (t *table) Has(key []byte) (bool, error) {
	return t.db.Has(MakePrefixedKey(t.prefix, key))
}

func (t *table) Put(key, value []byte) error {
	return t.db.Put(MakePrefixedKey(t.prefix, key), value)
}

func (t *table) Del(key []byte) error {
	return t.db.Del(MakePrefixedKey(t.prefix, key))
}

func (t *table) NewIterator() Iterator {
	return &tableIterator{
		Iterator:     t.db.NewPrefixIterator(t.prefix),
		prefixLength: len(t.prefix),
	}
}

// tableIterator strips the table prefix from the keys.
type tableIterator struct {
	Iterator
	prefixLength int
}

func (ti *tableIterator) Key() []byte {
	return ti.Iterator.Key()[ti.prefixLength:]
}

type prefixedNamespaces struct {
	Database
}

// WithPrefixTables returns a namespaced database whose namespaces
// are key prefixes of the flat database given.
func WithPrefixTables(db Database) Namespaced {
	return &prefixedNamespaces{Database: db}
}

func (p *prefixedNamespaces) Table(namespace string) Table {
	return NewTable(p.Database, namespace)
}

// MakePrefixedKey returns a new slice made of the prefix followed by the key.
func MakePrefixedKey(prefix, key []byte) (prefixedKey []byte) {
	// WARNING: Do not use:
	// return append(prefix, key...)
	// since the prefix might have a capacity larger than its length,
	// and that would produce data corruption on prefixed keys pointing
	// to the prefix underlying memory array.
	prefixedKey = make([]byte, 0, len(prefix)+len(key))
	prefixedKey = append(prefixedKey, prefix...)
	prefixedKey = append(prefixedKey, key...)
	return prefixedKey
}

// KeyUpperBound returns the smallest key greater than all
// the keys having the given prefix, or nil if there is none.
func KeyUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
