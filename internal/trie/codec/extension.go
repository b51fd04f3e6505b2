// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"bytes"
	"fmt"
)

// Header bytes of the extension layout.
const (
	extEmptyTrie           byte = 0
	extLeafNodeOffset      byte = 1
	extLeafNodeLast        byte = 127
	extExtensionNodeOffset byte = 128
	extExtensionNodeLast   byte = 253
	extBranchNoValue       byte = 254
	extBranchWithValue     byte = 255
)

// ExtensionLayout is the reference trie node codec with extension nodes:
// branches have no partial key and shared path segments are held by
// extension nodes.
type ExtensionLayout struct{}

// Name returns the layout name.
func (ExtensionLayout) Name() string { return ExtensionLayoutName }

// SupportsExtension returns true.
func (ExtensionLayout) SupportsExtension() bool { return true }

// Decode decodes an extension layout encoded node into its plan.
func (ExtensionLayout) Decode(data []byte) (plan NodePlan, err error) {
	in := &input{data: data}

	header, err := in.readByte()
	if err != nil {
		return nil, fmt.Errorf("decoding header: reading header byte: %w", err)
	}

	switch {
	case header == extEmptyTrie:
		return EmptyPlan{}, nil
	case header == extBranchNoValue || header == extBranchWithValue:
		bitmap, err := in.bitmap()
		if err != nil {
			return nil, err
		}

		var value ValuePlan
		if header == extBranchWithValue {
			value, err = decodeValue(in, false)
			if err != nil {
				return nil, fmt.Errorf("decoding branch value: %w", err)
			}
		}

		children, err := in.children(bitmap)
		if err != nil {
			return nil, fmt.Errorf("decoding branch children: %w", err)
		}
		return BranchPlan{Value: value, Children: children}, nil
	case header >= extExtensionNodeOffset:
		partial, err := in.partial(int(header-extExtensionNodeOffset), false)
		if err != nil {
			return nil, err
		}

		count, err := in.compactLength()
		if err != nil {
			return nil, fmt.Errorf("decoding extension child: %w", err)
		}
		r, err := in.take(count)
		if err != nil {
			return nil, fmt.Errorf("decoding extension child: %w", err)
		}

		var child ChildPlan = InlineChild{Bytes: r}
		if count == hashLength {
			child = HashChild{Bytes: r}
		}
		return ExtensionPlan{Partial: partial, Child: child}, nil
	default: // leaf
		partial, err := in.partial(int(header-extLeafNodeOffset), false)
		if err != nil {
			return nil, err
		}

		value, err := decodeValue(in, false)
		if err != nil {
			return nil, fmt.Errorf("decoding leaf value: %w", err)
		}
		return LeafPlan{Partial: partial, Value: value}, nil
	}
}

// EncodeLeaf encodes a leaf node.
func (ExtensionLayout) EncodeLeaf(partial []byte, value []byte) ([]byte, error) {
	if len(partial) > int(extLeafNodeLast-extLeafNodeOffset) {
		return nil, fmt.Errorf("%w: %d nibbles in leaf", ErrPartialKeyTooBig, len(partial))
	}

	buffer := bytes.NewBuffer(nil)
	buffer.WriteByte(extLeafNodeOffset + byte(len(partial)))
	buffer.Write(packNibbles(partial))
	err := encodeCompactBytes(buffer, value)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// EncodeExtension encodes an extension node with its single child,
// either a 32 bytes hash or an inline encoded node.
func (ExtensionLayout) EncodeExtension(partial []byte, child []byte) ([]byte, error) {
	if len(partial) == 0 || len(partial) > int(extExtensionNodeLast-extExtensionNodeOffset) {
		return nil, fmt.Errorf("%w: %d nibbles in extension", ErrPartialKeyTooBig, len(partial))
	}

	buffer := bytes.NewBuffer(nil)
	buffer.WriteByte(extExtensionNodeOffset + byte(len(partial)))
	buffer.Write(packNibbles(partial))
	err := encodeCompactBytes(buffer, child)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// EncodeBranch encodes a branch node. A non empty partial key
// is rejected since it belongs to a parent extension node.
func (ExtensionLayout) EncodeBranch(partial []byte, value []byte, hasValue bool,
	children [ChildrenCapacity][]byte) ([]byte, error) {
	if len(partial) > 0 {
		return nil, fmt.Errorf("%w: branch with partial key in extension layout", ErrBadFormat)
	}

	buffer := bytes.NewBuffer(nil)
	if hasValue {
		buffer.WriteByte(extBranchWithValue)
	} else {
		buffer.WriteByte(extBranchNoValue)
	}
	buffer.Write(childrenBitmap(children))

	if hasValue {
		err := encodeCompactBytes(buffer, value)
		if err != nil {
			return nil, err
		}
	}

	err := encodeChildren(buffer, children)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
