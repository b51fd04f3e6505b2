// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package report

import (
	"fmt"

	"github.com/ChainSafe/ssi/internal/trie/diff"
	"github.com/ChainSafe/ssi/internal/trie/walker"
	"github.com/ChainSafe/ssi/lib/storagekey"
	"github.com/qdm12/gotree"
)

func inspectTree(entries []walker.Entry, prefix string, summarize bool) *gotree.Node {
	root := gotree.New("Subtrie 0x" + prefix)
	for _, entry := range entries {
		node := gotree.New("0x" + entry.Path)
		node.Appendf("Leaf: %t", entry.Leaf)
		node.Appendf("Length: %d", len(entry.Data))
		if summarize {
			node.Appendf("Hash: %s", valueHash(entry.Data))
			node.Appendf("Names: %s", storagekey.SemanticDecode(entry.Path, false))
		} else {
			node.Appendf("Data: 0x%x", entry.Data)
		}
		root.AppendNode(node)
	}
	return root
}

func diffTree(entries []diff.Entry, prefix string, summarize bool) *gotree.Node {
	root := gotree.New("Subtrie diff 0x" + prefix)
	for _, entry := range entries {
		node := gotree.New("0x" + entry.Path)
		node.Appendf("Status: %s", entry.Status)
		node.Appendf("Length: %d", len(entry.Codes))
		if summarize {
			node.Appendf("Change length: %d", entry.ChangeLength())
			node.Appendf("Names: %s", storagekey.SemanticDecode(entry.Path, false))
		} else {
			node.Appendf("Codes: %s", fmt.Sprint(entry.Codes))
		}
		root.AppendNode(node)
	}
	return root
}
