// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package dbtest holds behaviour tests shared by the database backends.
package dbtest

import (
	"testing"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// KeyValues is the data written by Populate.
var KeyValues = map[string]string{
	"camel":       "camel",
	"walrus":      "walrus",
	"296204":      "296204",
	"\x00123\x00": "\x00123\x00",
}

// Populate writes KeyValues to the col0 and col1 namespaces of db.
func Populate(t *testing.T, db database.Namespaced) {
	t.Helper()

	for _, namespace := range []string{"col0", "col1"} {
		table := db.Table(namespace)
		for key, value := range KeyValues {
			err := table.Put([]byte(key), []byte(namespace+value))
			require.NoError(t, err)
		}
	}

	err := db.Table("col1").Del([]byte("camel"))
	require.NoError(t, err)
}

// CheckPopulated checks the data written by Populate is readable.
func CheckPopulated(t *testing.T, db database.Namespaced) {
	t.Helper()

	col0 := db.Table("col0")
	for key, value := range KeyValues {
		data, err := col0.Get([]byte(key))
		require.NoError(t, err)
		assert.Equal(t, []byte("col0"+value), data)

		has, err := col0.Has([]byte(key))
		require.NoError(t, err)
		assert.True(t, has)
	}

	col1 := db.Table("col1")
	_, err := col1.Get([]byte("camel"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	has, err := col1.Has([]byte("camel"))
	require.NoError(t, err)
	assert.False(t, has)

	_, err = db.Table("col2").Get([]byte("walrus"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	assert.Equal(t, len(KeyValues), Count(t, col0))
	assert.Equal(t, len(KeyValues)-1, Count(t, col1))
	assert.Equal(t, 0, Count(t, db.Table("col2")))
}

// Count counts the keys of the table, checking they are
// iterated in ascending order and hold the values written.
func Count(t *testing.T, table database.Table) (count int) {
	t.Helper()

	it := table.NewIterator()
	var previous []byte
	for ok := it.First(); ok; ok = it.Next() {
		key := append([]byte(nil), it.Key()...)
		if previous != nil {
			assert.Less(t, string(previous), string(key))
		}
		previous = key

		expected, exists := KeyValues[string(key)]
		if assert.True(t, exists, "unexpected key %q", key) {
			assert.Equal(t, table.Name()+expected, string(it.Value()))
		}
		count++
	}
	require.NoError(t, it.Release())
	return count
}
