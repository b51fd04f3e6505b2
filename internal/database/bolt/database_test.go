// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package bolt

import (
	"path/filepath"
	"testing"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/ChainSafe/ssi/internal/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Database(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.db")

	db, err := New(path, false)
	require.NoError(t, err)
	dbtest.Populate(t, db)
	dbtest.CheckPopulated(t, db)
	require.NoError(t, db.Close())

	db, err = New(path, true)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	dbtest.CheckPopulated(t, db)

	err = db.Table("col0").Put([]byte("key"), []byte("value"))
	assert.ErrorIs(t, err, database.ErrReadOnly)
}

func Test_New_readOnlyMissing(t *testing.T) {
	t.Parallel()

	_, err := New(filepath.Join(t.TempDir(), "missing.db"), true)
	assert.Error(t, err)
}
