// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package diff

import (
	"github.com/ChainSafe/ssi/internal/trie/walker"
	"github.com/tidwall/btree"
)

// Value is the data found at a path of a subtree.
type Value struct {
	Data []byte
	Leaf bool
}

// Snapshot is a subtree snapshot ordered by path.
type Snapshot struct {
	values btree.Map[string, Value]
}

// NewSnapshot creates a snapshot from the entries harvested by a walk.
// A later entry overrides an earlier entry with the same path.
func NewSnapshot(entries []walker.Entry) *Snapshot {
	snapshot := new(Snapshot)
	for _, entry := range entries {
		snapshot.Set(entry.Path, entry.Data, entry.Leaf)
	}
	return snapshot
}

// Set sets the data at the path given.
func (s *Snapshot) Set(path string, data []byte, leaf bool) {
	s.values.Set(path, Value{Data: data, Leaf: leaf})
}

// Get returns the value at the path given and
// true if it exists, and false otherwise.
func (s *Snapshot) Get(path string) (value Value, ok bool) {
	return s.values.Get(path)
}

// Len returns the number of paths in the snapshot.
func (s *Snapshot) Len() int {
	return s.values.Len()
}

func (s *Snapshot) scan(iter func(path string, value Value) bool) {
	s.values.Scan(iter)
}
