// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package diff

import (
	"io"
	"testing"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/ChainSafe/ssi/internal/database/memory"
	"github.com/ChainSafe/ssi/internal/log"
	"github.com/ChainSafe/ssi/internal/metrics"
	"github.com/ChainSafe/ssi/internal/trie/codec"
	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/ChainSafe/ssi/internal/trie/nodestore"
	"github.com/ChainSafe/ssi/internal/trie/triefixture"
	"github.com/ChainSafe/ssi/internal/trie/walker"
	"github.com/ChainSafe/ssi/lib/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(values map[string][]byte) *Snapshot {
	snapshot := new(Snapshot)
	for path, data := range values {
		snapshot.Set(path, data, true)
	}
	return snapshot
}

func Test_Diff(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		before  *Snapshot
		after   *Snapshot
		entries []Entry
	}{
		"both_empty": {
			before: new(Snapshot),
			after:  new(Snapshot),
		},
		"identical": {
			before: snapshotOf(map[string][]byte{"12": {1, 2}, "34": {3}}),
			after:  snapshotOf(map[string][]byte{"12": {1, 2}, "34": {3}}),
		},
		"modified_byte": {
			before: snapshotOf(map[string][]byte{"12": {1, 2, 3}}),
			after:  snapshotOf(map[string][]byte{"12": {1, 9, 3}}),
			entries: []Entry{
				{Path: "12", Codes: []int16{0, 9, 0}, Status: Modify},
			},
		},
		"length_changed": {
			before: snapshotOf(map[string][]byte{"12": {1, 2}}),
			after:  snapshotOf(map[string][]byte{"12": {1, 2, 3}}),
			entries: []Entry{
				{Path: "12", Codes: []int16{1, 2, 3}, Status: Insert},
			},
		},
		"inserted_and_deleted": {
			before: snapshotOf(map[string][]byte{"12": {1}, "ab": {255}}),
			after:  snapshotOf(map[string][]byte{"12": {1}, "34": {0, 4}}),
			entries: []Entry{
				{Path: "34", Codes: []int16{0, 4}, Status: Insert},
				{Path: "ab", Codes: []int16{-255}, Status: Delete},
			},
		},
		"ordered_by_path": {
			before: snapshotOf(map[string][]byte{"f0": {1}, "0f": {1}}),
			after:  snapshotOf(map[string][]byte{"b": {2}, "a": {2}, "c": {}}),
			entries: []Entry{
				{Path: "a", Codes: []int16{2}, Status: Insert},
				{Path: "b", Codes: []int16{2}, Status: Insert},
				{Path: "c", Codes: []int16{}, Status: Insert},
				{Path: "0f", Codes: []int16{-1}, Status: Delete},
				{Path: "f0", Codes: []int16{-1}, Status: Delete},
			},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entries := Diff(testCase.before, testCase.after)

			diff := cmp.Diff(testCase.entries, entries)
			assert.Empty(t, diff)
		})
	}
}

func Test_Entry_ChangeLength(t *testing.T) {
	t.Parallel()

	entry := Entry{Codes: []int16{0, 3, 0, -2}}

	assert.Equal(t, 2, entry.ChangeLength())
}

func Test_Status_MarshalText(t *testing.T) {
	t.Parallel()

	text, err := Modify.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Modify", string(text))

	_, err = Status(9).MarshalText()
	assert.ErrorIs(t, err, ErrStatusUnknown)
	assert.EqualError(t, err, "diff status is unknown: 9")
}

func Test_NewSnapshot(t *testing.T) {
	t.Parallel()

	snapshot := NewSnapshot([]walker.Entry{
		{Path: "12", Data: []byte{1}},
		{Path: "1234", Data: []byte{2}, Leaf: true},
		{Path: "12", Data: []byte{3}},
	})

	assert.Equal(t, 2, snapshot.Len())
	value, ok := snapshot.Get("12")
	require.True(t, ok)
	assert.Equal(t, Value{Data: []byte{3}}, value)
	_, ok = snapshot.Get("56")
	assert.False(t, ok)
}

func Test_Diff_walkedTries(t *testing.T) {
	t.Parallel()

	db := database.WithPrefixTables(memory.New())
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	table := db.Table("col0")

	logger := log.New(log.SetWriter(io.Discard))
	store, err := nodestore.New(db, nodestore.Settings{Namespaces: []string{"col0"}},
		logger, metrics.NewNoop())
	require.NoError(t, err)
	trieWalker := walker.New(store, codec.SubstrateLayout{}, logger, metrics.NewNoop())

	rootBefore, err := triefixture.Build(table, codec.SubstrateLayout{}, map[string][]byte{
		"\x12\x34": []byte("one"),
		"\x12\x35": []byte("two"),
		"\x56\x78": []byte("abc"),
	})
	require.NoError(t, err)

	rootAfter, err := triefixture.Build(table, codec.SubstrateLayout{}, map[string][]byte{
		"\x12\x34": []byte("one"),
		"\x12\x35": []byte("two"),
		"\x56\x78": []byte("abcd"),
	})
	require.NoError(t, err)

	snapshotAt := func(root common.Hash) *Snapshot {
		entries, err := trieWalker.Walk(root, nibble.Path{}, true, true)
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		return NewSnapshot(entries)
	}

	before := snapshotAt(rootBefore)
	after := snapshotAt(rootAfter)

	assert.Empty(t, Diff(before, before))
	assert.Empty(t, Diff(after, after))

	expected := []Entry{
		{Path: "5678", Codes: []int16{'a', 'b', 'c', 'd'}, Status: Insert},
	}
	diff := cmp.Diff(expected, Diff(before, after))
	assert.Empty(t, diff)
}
