// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"github.com/ChainSafe/ssi/internal/trie/nibble"
)

// ChildrenCapacity is the number of children slots of a branch node.
const ChildrenCapacity = 16

// Kind is the shape of a decoded node.
type Kind uint8

const (
	// Empty is the null node, an empty root or an empty child slot.
	Empty Kind = iota
	// Leaf holds a partial key and a value.
	Leaf
	// Extension holds a partial key and a single child.
	Extension
	// Branch holds up to 16 children and an optional value.
	Branch
	// NibbledBranch is a branch carrying its own partial key.
	NibbledBranch
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Leaf:
		return "Leaf"
	case Extension:
		return "Extension"
	case Branch:
		return "Branch"
	case NibbledBranch:
		return "NibbledBranch"
	default:
		return "Unknown"
	}
}

// BytesRange is a range of bytes in an encoded node.
type BytesRange struct {
	Start int
	End   int
}

// Slice returns the bytes of data in the range.
func (r BytesRange) Slice(data []byte) []byte {
	return data[r.Start:r.End]
}

// Len returns the number of bytes in the range.
func (r BytesRange) Len() int {
	return r.End - r.Start
}

// NibbleSlicePlan is a blueprint for decoding a nibble slice from a byte slice.
type NibbleSlicePlan struct {
	Bytes  BytesRange
	Offset int
}

// Len returns the number of nibbles of the plan.
func (p NibbleSlicePlan) Len() int {
	return p.Bytes.Len()*nibble.NibblesPerByte - p.Offset
}

// Build returns the nibble slice view on data.
func (p NibbleSlicePlan) Build(data []byte) nibble.Slice {
	return nibble.NewSlice(p.Bytes.Slice(data), p.Offset)
}

// ChildPlan is a decoding plan for a child reference of a node.
type ChildPlan interface {
	Range() BytesRange
	isChildPlan()
}

type (
	// HashChild is a child stored separately, referenced by its hash.
	HashChild struct {
		Bytes BytesRange
	}
	// InlineChild is a child node encoded within its parent.
	InlineChild struct {
		Bytes BytesRange
	}
)

func (c HashChild) Range() BytesRange   { return c.Bytes }
func (HashChild) isChildPlan()          {}
func (c InlineChild) Range() BytesRange { return c.Bytes }
func (InlineChild) isChildPlan()        {}

// ValuePlan is a decoding plan for the value of a node.
type ValuePlan interface {
	Range() BytesRange
	isValuePlan()
}

type (
	// InlineValue is a value stored within the node.
	InlineValue struct {
		Bytes BytesRange
	}
	// HashedValue is the hash of a value stored separately.
	HashedValue struct {
		Bytes BytesRange
	}
)

func (v InlineValue) Range() BytesRange { return v.Bytes }
func (InlineValue) isValuePlan()        {}
func (v HashedValue) Range() BytesRange { return v.Bytes }
func (HashedValue) isValuePlan()        {}

// NodePlan is the decoded form of a node, made of ranges into its encoding.
type NodePlan interface {
	Kind() Kind
}

type (
	// EmptyPlan is the plan of an empty node.
	EmptyPlan struct{}
	// LeafPlan is the plan of a leaf node.
	LeafPlan struct {
		Partial NibbleSlicePlan
		Value   ValuePlan
	}
	// ExtensionPlan is the plan of an extension node.
	ExtensionPlan struct {
		Partial NibbleSlicePlan
		Child   ChildPlan
	}
	// BranchPlan is the plan of a branch node without partial key.
	// Value is nil when the branch has no value.
	BranchPlan struct {
		Value    ValuePlan
		Children [ChildrenCapacity]ChildPlan
	}
	// NibbledBranchPlan is the plan of a branch node with a partial key.
	// Value is nil when the branch has no value.
	NibbledBranchPlan struct {
		Partial  NibbleSlicePlan
		Value    ValuePlan
		Children [ChildrenCapacity]ChildPlan
	}
)

func (EmptyPlan) Kind() Kind         { return Empty }
func (LeafPlan) Kind() Kind          { return Leaf }
func (ExtensionPlan) Kind() Kind     { return Extension }
func (BranchPlan) Kind() Kind        { return Branch }
func (NibbledBranchPlan) Kind() Kind { return NibbledBranch }
