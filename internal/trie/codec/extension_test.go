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

func Test_ExtensionLayout_Decode(t *testing.T) {
	t.Parallel()

	hashChild := bytes.Repeat([]byte{0xbb}, hashLength)

	testCases := map[string]struct {
		data       []byte
		plan       NodePlan
		errWrapped error
		errMessage string
	}{
		"empty": {
			data: []byte{0x00},
			plan: EmptyPlan{},
		},
		"leaf": {
			data: []byte{0x03, 0x12, 0x04, 'v'},
			plan: LeafPlan{
				Partial: NibbleSlicePlan{Bytes: BytesRange{Start: 1, End: 2}},
				Value:   InlineValue{Bytes: BytesRange{Start: 3, End: 4}},
			},
		},
		"extension_with_hash_child": {
			data: concatByteSlices([][]byte{{129, 0x0a, 0x80}, hashChild}),
			plan: ExtensionPlan{
				Partial: NibbleSlicePlan{Bytes: BytesRange{Start: 1, End: 2}, Offset: 1},
				Child:   HashChild{Bytes: BytesRange{Start: 3, End: 35}},
			},
		},
		"branch_without_value": {
			data: []byte{254, 0x08, 0x00, 0x08, 0x01, 0x00},
			plan: BranchPlan{
				Children: [ChildrenCapacity]ChildPlan{
					3: InlineChild{Bytes: BytesRange{Start: 4, End: 6}},
				},
			},
		},
		"branch_with_value": {
			data: []byte{255, 0x00, 0x01, 0x04, 0x07, 0x08, 0x01, 0x00},
			plan: BranchPlan{
				Value: InlineValue{Bytes: BytesRange{Start: 4, End: 5}},
				Children: [ChildrenCapacity]ChildPlan{
					8: InlineChild{Bytes: BytesRange{Start: 6, End: 8}},
				},
			},
		},
		"extension_truncated_child": {
			data:       []byte{129, 0x0a, 0x80, 0x01},
			errWrapped: ErrTruncated,
			errMessage: "decoding extension child: node encoding is truncated: " +
				"taking 32 bytes at offset 3 of 4 bytes",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			plan, err := ExtensionLayout{}.Decode(testCase.data)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.plan, plan)
		})
	}
}

func Test_ExtensionLayout_encode(t *testing.T) {
	t.Parallel()

	layout := ExtensionLayout{}

	leaf, err := layout.EncodeLeaf([]byte{4, 5, 6}, []byte("leaf"))
	require.NoError(t, err)

	var children [ChildrenCapacity][]byte
	children[2] = leaf
	branch, err := layout.EncodeBranch(nil, []byte("branch"), true, children)
	require.NoError(t, err)

	extension, err := layout.EncodeExtension([]byte{1, 2, 3}, branch)
	require.NoError(t, err)

	node, err := Decode(layout, extension)
	require.NoError(t, err)
	require.Equal(t, Extension, node.Kind())
	assert.Equal(t, nibble.Path{1, 2, 3}, node.Partial())

	extensionChildren, isExtension := node.Children()
	require.True(t, isExtension)
	require.IsType(t, InlineChild{}, extensionChildren[0])
	assert.Equal(t, branch, extensionChildren[0].Range().Slice(extension))

	branchNode, err := Decode(layout, branch)
	require.NoError(t, err)
	require.Equal(t, Branch, branchNode.Kind())
	assert.Equal(t, []byte("branch"), branchNode.Value().Range().Slice(branch))

	_, err = layout.EncodeBranch([]byte{1}, nil, false, children)
	assert.ErrorIs(t, err, ErrBadFormat)

	_, err = layout.EncodeExtension(nil, branch)
	assert.ErrorIs(t, err, ErrPartialKeyTooBig)
}
