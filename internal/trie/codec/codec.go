// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChainSafe/ssi/lib/common"
)

var (
	ErrTruncated        = errors.New("node encoding is truncated")
	ErrVariantUnknown   = errors.New("node variant is unknown")
	ErrBadFormat        = errors.New("node encoding is malformed")
	ErrPartialKeyTooBig = errors.New("partial key length cannot be larger than 2^16")
	ErrLayoutUnknown    = errors.New("trie layout is unknown")
)

const (
	hashLength   = common.HashLength
	bitmapLength = 2
	// maxPartialKeyLength is the maximum number of nibbles of a partial key.
	maxPartialKeyLength = ^uint16(0)
)

// Codec decodes encoded trie nodes into node plans.
type Codec interface {
	Decode(data []byte) (NodePlan, error)
	Name() string
}

// Layout is a codec able to encode nodes as well.
type Layout interface {
	Codec
	// EncodeLeaf encodes a leaf node with an inline value.
	EncodeLeaf(partial []byte, value []byte) ([]byte, error)
	// EncodeBranch encodes a branch node. The value is ignored if hasValue
	// is false. Each non nil child is either a 32 bytes hash or an inline
	// encoded node.
	EncodeBranch(partial []byte, value []byte, hasValue bool,
		children [ChildrenCapacity][]byte) ([]byte, error)
	// SupportsExtension returns true if the layout uses extension nodes
	// instead of partial keys on branches.
	SupportsExtension() bool
}

// Names of the supported layouts.
const (
	SubstrateLayoutName = "substrate"
	ExtensionLayoutName = "extension"
)

// ByName returns the layout with the given name.
func ByName(name string) (Layout, error) {
	switch strings.ToLower(name) {
	case SubstrateLayoutName, "":
		return SubstrateLayout{}, nil
	case ExtensionLayoutName:
		return ExtensionLayout{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLayoutUnknown, name)
	}
}

// Decode decodes data with the codec and returns the decoded node.
func Decode(c Codec, data []byte) (node Node, err error) {
	plan, err := c.Decode(data)
	if err != nil {
		return node, err
	}
	return Node{Plan: plan, Data: data}, nil
}
