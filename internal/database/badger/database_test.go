// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"testing"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/ChainSafe/ssi/internal/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Database_inMemory(t *testing.T) {
	t.Parallel()

	db, err := New(Settings{InMemory: ptrTo(true)})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	namespaced := database.WithPrefixTables(db)
	dbtest.Populate(t, namespaced)
	dbtest.CheckPopulated(t, namespaced)
}

func Test_Database_readOnly(t *testing.T) {
	t.Parallel()

	path := t.TempDir()

	db, err := New(Settings{Path: &path})
	require.NoError(t, err)
	dbtest.Populate(t, database.WithPrefixTables(db))
	require.NoError(t, db.Close())

	db, err = New(Settings{Path: &path, ReadOnly: ptrTo(true)})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	dbtest.CheckPopulated(t, database.WithPrefixTables(db))
	assert.Equal(t, path, db.Path())

	err = db.Put([]byte("key"), []byte("value"))
	assert.ErrorIs(t, err, database.ErrReadOnly)
}
