// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"bytes"
	"testing"

	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concatByteSlices(slices [][]byte) (concatenated []byte) {
	for _, slice := range slices {
		concatenated = append(concatenated, slice...)
	}
	return concatenated
}

func Test_SubstrateLayout_Decode(t *testing.T) {
	t.Parallel()

	hashChild := bytes.Repeat([]byte{0xaa}, hashLength)

	testCases := map[string]struct {
		data       []byte
		plan       NodePlan
		errWrapped error
		errMessage string
	}{
		"no_data": {
			errWrapped: ErrTruncated,
			errMessage: "decoding header: reading header byte: " +
				"node encoding is truncated: reading byte at offset 0",
		},
		"empty": {
			data: []byte{0x00},
			plan: EmptyPlan{},
		},
		"unknown_variant": {
			data:       []byte{0b0000_0001},
			errWrapped: ErrVariantUnknown,
			errMessage: "decoding header: decoding header byte: " +
				"node variant is unknown: for header byte 00000001",
		},
		"leaf_odd_partial": {
			data: []byte{0x43, 0x01, 0x23, 0x0c, 'a', 'b', 'c'},
			plan: LeafPlan{
				Partial: NibbleSlicePlan{Bytes: BytesRange{Start: 1, End: 3}, Offset: 1},
				Value:   InlineValue{Bytes: BytesRange{Start: 4, End: 7}},
			},
		},
		"leaf_bad_padding": {
			data:       []byte{0x41, 0x10, 0x00},
			errWrapped: ErrBadFormat,
			errMessage: "node encoding is malformed: partial key padding is not zero: 00010000",
		},
		"leaf_truncated_partial": {
			data:       []byte{0x44, 0x01},
			errWrapped: ErrTruncated,
			errMessage: "reading partial key: node encoding is truncated: " +
				"taking 2 bytes at offset 1 of 2 bytes",
		},
		"leaf_truncated_value": {
			data:       []byte{0x40, 0x0c, 'a'},
			errWrapped: ErrTruncated,
			errMessage: "decoding leaf value: node encoding is truncated: " +
				"taking 3 bytes at offset 2 of 3 bytes",
		},
		"leaf_hashed_value": {
			data: concatByteSlices([][]byte{{0x20}, hashChild}),
			plan: LeafPlan{
				Partial: NibbleSlicePlan{Bytes: BytesRange{Start: 1, End: 1}},
				Value:   HashedValue{Bytes: BytesRange{Start: 1, End: 33}},
			},
		},
		"branch_with_value": {
			data: concatByteSlices([][]byte{
				{0xc0},       // header
				{0x01, 0x80}, // children 0 and 15
				{0x04, 0x01}, // value
				{0x80}, hashChild,
				{0x08, 0x40, 0x00},
			}),
			plan: NibbledBranchPlan{
				Partial: NibbleSlicePlan{Bytes: BytesRange{Start: 1, End: 1}},
				Value:   InlineValue{Bytes: BytesRange{Start: 4, End: 5}},
				Children: [ChildrenCapacity]ChildPlan{
					0:  HashChild{Bytes: BytesRange{Start: 6, End: 38}},
					15: InlineChild{Bytes: BytesRange{Start: 39, End: 41}},
				},
			},
		},
		"branch_without_children": {
			data:       []byte{0x80, 0x00, 0x00},
			errWrapped: ErrBadFormat,
			errMessage: "node encoding is malformed: branch without children",
		},
		"branch_truncated_child": {
			data:       []byte{0x80, 0x01, 0x00, 0x80, 0xaa},
			errWrapped: ErrTruncated,
			errMessage: "decoding branch children: child 0: node encoding is truncated: " +
				"taking 32 bytes at offset 4 of 5 bytes",
		},
		"partial_key_length_overflow": {
			data:       append([]byte{0x7f}, bytes.Repeat([]byte{0xff}, 258)...),
			errWrapped: ErrPartialKeyTooBig,
			errMessage: "decoding header: partial key length cannot be larger than 2^16: " +
				"overflowed by 63",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			plan, err := SubstrateLayout{}.Decode(testCase.data)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.plan, plan)
		})
	}
}

func Test_SubstrateLayout_roundTrip(t *testing.T) {
	t.Parallel()

	layout := SubstrateLayout{}

	partialLengths := []int{0, 1, 2, 62, 63, 64, 317, 318, 319, 700}
	for _, partialLength := range partialLengths {
		partial := make([]byte, partialLength)
		for i := range partial {
			partial[i] = byte(i % 16)
		}

		encoded, err := layout.EncodeLeaf(partial, []byte("value"))
		require.NoError(t, err)

		node, err := Decode(layout, encoded)
		require.NoError(t, err)
		require.Equal(t, Leaf, node.Kind())
		assert.Equal(t, nibble.Path(partial), node.Partial(), "partial length %d", partialLength)
		assert.Equal(t, []byte("value"), node.Value().Range().Slice(encoded))
	}
}

func Test_SubstrateLayout_EncodeBranch(t *testing.T) {
	t.Parallel()

	layout := SubstrateLayout{}
	hash := bytes.Repeat([]byte{0x11}, hashLength)
	inline, err := layout.EncodeLeaf([]byte{5}, []byte{1})
	require.NoError(t, err)

	var children [ChildrenCapacity][]byte
	children[3] = hash
	children[9] = inline

	encoded, err := layout.EncodeBranch([]byte{1, 2, 3}, nil, false, children)
	require.NoError(t, err)

	node, err := Decode(layout, encoded)
	require.NoError(t, err)

	assert.Equal(t, NibbledBranch, node.Kind())
	assert.Equal(t, nibble.Path{1, 2, 3}, node.Partial())
	assert.Nil(t, node.Value())

	decodedChildren, extension := node.Children()
	assert.False(t, extension)
	for i, child := range decodedChildren {
		switch i {
		case 3:
			require.IsType(t, HashChild{}, child)
			assert.Equal(t, hash, child.Range().Slice(encoded))
		case 9:
			require.IsType(t, InlineChild{}, child)
			assert.Equal(t, inline, child.Range().Slice(encoded))
		default:
			assert.Nil(t, child)
		}
	}
}

func Test_SubstrateLayout_EncodeHashedLeaf(t *testing.T) {
	t.Parallel()

	layout := SubstrateLayout{}
	hash := bytes.Repeat([]byte{0x22}, hashLength)

	encoded, err := layout.EncodeHashedLeaf([]byte{0xa, 0xb}, hash)
	require.NoError(t, err)

	node, err := Decode(layout, encoded)
	require.NoError(t, err)
	require.IsType(t, HashedValue{}, node.Value())
	assert.Equal(t, hash, node.Value().Range().Slice(encoded))

	_, err = layout.EncodeHashedLeaf(nil, []byte{1})
	assert.ErrorIs(t, err, ErrBadFormat)
}

func Test_ByName(t *testing.T) {
	t.Parallel()

	layout, err := ByName("Substrate")
	require.NoError(t, err)
	assert.Equal(t, SubstrateLayout{}, layout)

	layout, err = ByName("extension")
	require.NoError(t, err)
	assert.Equal(t, ExtensionLayout{}, layout)

	_, err = ByName("patricia")
	assert.ErrorIs(t, err, ErrLayoutUnknown)
	assert.EqualError(t, err, "trie layout is unknown: patricia")
}

func Test_Node_String(t *testing.T) {
	t.Parallel()

	layout := SubstrateLayout{}
	encoded, err := layout.EncodeLeaf([]byte{1, 2}, []byte{3})
	require.NoError(t, err)

	node, err := Decode(layout, encoded)
	require.NoError(t, err)

	s := node.String()
	assert.Contains(t, s, "Leaf")
	assert.Contains(t, s, "Partial: 0x12")
	assert.Contains(t, s, "Value (inline): 0x03")
}
