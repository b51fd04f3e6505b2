// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"fmt"

	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/qdm12/gotree"
)

// Node is a decoded node: its plan and the encoding the plan ranges point into.
type Node struct {
	Plan NodePlan
	Data []byte
}

// Kind returns the shape of the node.
func (n Node) Kind() Kind {
	return n.Plan.Kind()
}

// Partial returns the partial key nibbles of the node,
// which is empty for branch and empty nodes.
func (n Node) Partial() nibble.Path {
	switch plan := n.Plan.(type) {
	case LeafPlan:
		return plan.Partial.Build(n.Data).Path()
	case ExtensionPlan:
		return plan.Partial.Build(n.Data).Path()
	case NibbledBranchPlan:
		return plan.Partial.Build(n.Data).Path()
	default:
		return nibble.Path{}
	}
}

// Value returns the value plan of the node, or nil if it has none.
func (n Node) Value() ValuePlan {
	switch plan := n.Plan.(type) {
	case LeafPlan:
		return plan.Value
	case BranchPlan:
		return plan.Value
	case NibbledBranchPlan:
		return plan.Value
	default:
		return nil
	}
}

// Children returns the children slots of the node.
// Extension nodes have their single child returned in slot 0
// and the boolean extension set to true.
func (n Node) Children() (children [ChildrenCapacity]ChildPlan, extension bool) {
	switch plan := n.Plan.(type) {
	case BranchPlan:
		return plan.Children, false
	case NibbledBranchPlan:
		return plan.Children, false
	case ExtensionPlan:
		children[0] = plan.Child
		return children, true
	default:
		return children, false
	}
}

func (n Node) String() string {
	return n.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (n Node) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New(n.Kind().String())
	switch n.Kind() {
	case Leaf, Extension, NibbledBranch:
		stringNode.Appendf("Partial: 0x%s", n.Partial())
	}

	if value := n.Value(); value != nil {
		kind := "inline"
		if _, ok := value.(HashedValue); ok {
			kind = "hashed"
		}
		stringNode.Appendf("Value (%s): %s", kind, bytesToString(value.Range().Slice(n.Data)))
	}

	children, extension := n.Children()
	for i, child := range children {
		if child == nil {
			continue
		}

		label := fmt.Sprintf("Child %d", i)
		if extension {
			label = "Child"
		}

		switch child.(type) {
		case HashChild:
			stringNode.Appendf("%s: hash %s", label, bytesToString(child.Range().Slice(n.Data)))
		case InlineChild:
			stringNode.Appendf("%s: inline %s", label, bytesToString(child.Range().Slice(n.Data)))
		}
	}
	return stringNode
}

func bytesToString(b []byte) (s string) {
	switch {
	case b == nil:
		return "nil"
	case len(b) <= 20:
		return fmt.Sprintf("0x%x", b)
	default:
		return fmt.Sprintf("0x%x...%x", b[:8], b[len(b)-8:])
	}
}
