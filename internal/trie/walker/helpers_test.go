// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package walker

import (
	"io"
	"testing"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/ChainSafe/ssi/internal/database/memory"
	"github.com/ChainSafe/ssi/internal/log"
	"github.com/ChainSafe/ssi/internal/metrics"
	"github.com/ChainSafe/ssi/internal/trie/codec"
	"github.com/ChainSafe/ssi/internal/trie/nodestore"
	"github.com/ChainSafe/ssi/internal/trie/triefixture"
	"github.com/ChainSafe/ssi/lib/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNamespace = "col1"

// testKeyValues is a trie with a branch value, inline nodes
// and a stored leaf.
var testKeyValues = map[string][]byte{
	"\x12":     []byte("branch-value"),
	"\x12\x34": []byte("one"),
	"\x12\x35": []byte("two"),
	"\x56\x78": []byte("0123456789012345678901234567890123456789"),
}

type testTrie struct {
	db     database.Namespaced
	table  database.Table
	store  *nodestore.Store
	walker *Walker
}

func newTestTrie(t *testing.T, layout codec.Layout, logger *log.Logger) *testTrie {
	t.Helper()

	db := database.WithPrefixTables(memory.New())
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	if logger == nil {
		logger = log.New(log.SetWriter(io.Discard))
	}

	settings := nodestore.Settings{
		Namespaces: []string{"col0", testNamespace},
	}
	store, err := nodestore.New(db, settings, logger, metrics.NewNoop())
	require.NoError(t, err)

	return &testTrie{
		db:     db,
		table:  db.Table(testNamespace),
		store:  store,
		walker: New(store, layout, logger, metrics.NewNoop()),
	}
}

func (tt *testTrie) build(t *testing.T, keyValues map[string][]byte,
	options ...triefixture.Option) (root common.Hash) {
	t.Helper()

	layout := tt.walker.codec.(codec.Layout)
	root, err := triefixture.Build(tt.table, layout, keyValues, options...)
	require.NoError(t, err)
	return root
}

// deleteAt deletes the stored nodes whose prefixed key starts with the
// prefix of the nibble position given.
func (tt *testTrie) deleteAt(t *testing.T, position string) {
	t.Helper()

	prefix := mustParse(t, position).Prefix()
	keyLength := len(prefix.Key(make([]byte, common.HashLength)))

	var keys [][]byte
	iterator := tt.table.NewIterator()
	for ok := iterator.First(); ok; ok = iterator.Next() {
		key := iterator.Key()
		if len(key) != keyLength {
			continue
		}
		expected := prefix.Key(key[keyLength-common.HashLength:])
		if string(expected) == string(key) {
			keys = append(keys, append([]byte(nil), key...))
		}
	}
	require.NoError(t, iterator.Release())
	require.NotEmpty(t, keys)

	for _, key := range keys {
		require.NoError(t, tt.table.Del(key))
	}
}
