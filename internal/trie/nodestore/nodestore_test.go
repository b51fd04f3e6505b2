// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package nodestore

import (
	"testing"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/ChainSafe/ssi/internal/database/memory"
	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/ChainSafe/ssi/lib/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHash = common.Hash{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
	0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
	0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
}

func newTestDB(t *testing.T, content map[string]map[string][]byte) database.Namespaced {
	t.Helper()

	db := database.WithPrefixTables(memory.New())
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	for namespace, keyValues := range content {
		table := db.Table(namespace)
		for key, value := range keyValues {
			err := table.Put([]byte(key), value)
			require.NoError(t, err)
		}
	}
	return db
}

func Test_Store_Fetch(t *testing.T) {
	t.Parallel()

	prefix := nibble.Path{1, 2, 3}.Prefix()
	prefixedKey := string(prefix.Key(testHash[:]))
	bareKey := string(testHash[:])

	testCases := map[string]struct {
		content    map[string]map[string][]byte
		namespaces []string
		prefix     nibble.Prefix
		encoding   []byte
		errWrapped error
		errMessage string
	}{
		"prefixed_key_in_second_namespace": {
			content: map[string]map[string][]byte{
				"col1": {prefixedKey: {1}},
			},
			namespaces: []string{"col0", "col1"},
			prefix:     prefix,
			encoding:   []byte{1},
		},
		"first_namespace_wins": {
			content: map[string]map[string][]byte{
				"col0": {prefixedKey: {1}},
				"col1": {prefixedKey: {2}},
			},
			namespaces: []string{"col0", "col1"},
			prefix:     prefix,
			encoding:   []byte{1},
		},
		"namespace_order_is_configured_order": {
			content: map[string]map[string][]byte{
				"col0": {prefixedKey: {1}},
				"col1": {prefixedKey: {2}},
			},
			namespaces: []string{"col1", "col0"},
			prefix:     prefix,
			encoding:   []byte{2},
		},
		"prefixed_key_before_bare_hash": {
			content: map[string]map[string][]byte{
				"col0": {bareKey: {1}},
				"col1": {prefixedKey: {2}},
			},
			namespaces: []string{"col0", "col1"},
			prefix:     prefix,
			encoding:   []byte{2},
		},
		"bare_hash_fallback": {
			content: map[string]map[string][]byte{
				"col1": {bareKey: {3}},
			},
			namespaces: []string{"col0", "col1"},
			prefix:     prefix,
			encoding:   []byte{3},
		},
		"empty_prefix": {
			content: map[string]map[string][]byte{
				"col0": {bareKey: {4}},
			},
			namespaces: []string{"col0"},
			encoding:   []byte{4},
		},
		"not_found": {
			content: map[string]map[string][]byte{
				"col2": {bareKey: {5}},
			},
			namespaces: []string{"col0", "col1"},
			prefix:     prefix,
			errWrapped: ErrNodeNotFound,
			errMessage: "fetching node: node not found: " +
				"0x0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			logger := NewMockLogger(ctrl)
			logger.EXPECT().Trace(gomock.Any()).AnyTimes()
			metrics := NewMockMetrics(ctrl)
			metrics.EXPECT().FetchHit(gomock.Any()).AnyTimes()
			metrics.EXPECT().FetchMiss(gomock.Any()).AnyTimes()

			db := newTestDB(t, testCase.content)
			settings := Settings{
				Namespaces: testCase.namespaces,
				CacheSize:  ptrTo(0),
			}
			store, err := New(db, settings, logger, metrics)
			require.NoError(t, err)

			encoding, err := store.Fetch(testHash, testCase.prefix)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.encoding, encoding)
		})
	}
}

func Test_Store_Fetch_strictNamespaces(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	content := map[string]map[string][]byte{
		"col0": {string(testHash[:]): {1}},
		"col1": {string(testHash[:]): {1}},
		"col2": {string(testHash[:]): {2}},
	}
	db := newTestDB(t, content)

	logger := NewMockLogger(ctrl)
	logger.EXPECT().Trace(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn("node key has different values in namespaces: key " +
		"0x0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20 " +
		"in namespaces col0 and col2, using col0")

	metrics := NewMockMetrics(ctrl)
	metrics.EXPECT().FetchHit("col0")
	metrics.EXPECT().FetchHit("col1")
	metrics.EXPECT().FetchHit("col2")

	settings := Settings{
		Namespaces:       []string{"col0", "col1", "col2"},
		StrictNamespaces: ptrTo(true),
		CacheSize:        ptrTo(0),
	}
	store, err := New(db, settings, logger, metrics)
	require.NoError(t, err)

	encoding, err := store.Fetch(testHash, nibble.Prefix{})

	require.NoError(t, err)
	assert.Equal(t, []byte{1}, encoding)
}

func Test_Store_Fetch_cache(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	flat := memory.New()
	db := database.WithPrefixTables(flat)
	table := db.Table("col1")
	err := table.Put(testHash[:], []byte{9, 9})
	require.NoError(t, err)

	logger := NewMockLogger(ctrl)
	logger.EXPECT().Trace(gomock.Any()).AnyTimes()
	metrics := NewMockMetrics(ctrl)
	metrics.EXPECT().FetchHit("col1")
	metrics.EXPECT().CacheHit()

	settings := Settings{Namespaces: []string{"col1"}}
	store, err := New(db, settings, logger, metrics)
	require.NoError(t, err)

	encoding, err := store.Fetch(testHash, nibble.Prefix{})
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, encoding)

	err = table.Del(testHash[:])
	require.NoError(t, err)

	encoding, err = store.FetchValue(testHash, nibble.Prefix{})
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, encoding)

	store.Reset()
	require.NoError(t, db.Close())
}

func Test_New_invalidSettings(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, nil)
	settings := Settings{Namespaces: []string{}}

	_, err := New(db, settings, nil, nil)

	assert.ErrorIs(t, err, ErrNoNamespace)
	assert.EqualError(t, err, "validating settings: no namespace configured")
}
