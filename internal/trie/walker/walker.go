// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package walker descends a trie along a nibble path from a root
// and harvests the nodes found at and beneath the end of the path.
package walker

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/ssi/internal/trie/codec"
	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/ChainSafe/ssi/internal/trie/nodestore"
	"github.com/ChainSafe/ssi/lib/common"
	"github.com/gammazero/deque"
)

var (
	ErrNodeMissing  = errors.New("trie node missing")
	ErrCorrupt      = errors.New("trie node corrupt")
	ErrPathMismatch = errors.New("path mismatch")
)

// Entry is a node found by a walk.
type Entry struct {
	// Path is the hex nibble path of the node key.
	Path string
	// Data is the value of the node, empty for nodes without value.
	Data []byte
	// Leaf is true if the node is a leaf.
	Leaf bool
}

// Walker walks tries read from a node store.
type Walker struct {
	store   NodeStore
	codec   codec.Codec
	logger  Logger
	metrics Metrics
}

// New creates a walker decoding the nodes of store with the codec given.
func New(store NodeStore, nodeCodec codec.Codec, logger Logger, metrics Metrics) *Walker {
	return &Walker{
		store:   store,
		codec:   nodeCodec,
		logger:  logger,
		metrics: metrics,
	}
}

// Walk descends the trie of the given root along path. If includeChildren
// is true, the subtrie found at the end of the path is harvested. If leafOnly
// is true, only leaf entries are returned.
// A missing or undecodable node aborts the walk and no entry is returned.
// A leaf reached before the end of path is followed as a child trie root
// only if its 32 bytes value is a stored node; otherwise the leaf itself is
// returned instead of a missing node error, as for hash valued storage items.
func (w *Walker) Walk(root common.Hash, path nibble.Path,
	includeChildren, leafOnly bool) (entries []Entry, err error) {
	s := &walk{
		Walker:          w,
		path:            path,
		includeChildren: includeChildren,
		leafOnly:        leafOnly,
		pending:         deque.New[pendingChild](),
	}

	err = s.descend(reference{hash: root})
	if err != nil {
		return nil, err
	}
	return s.results, nil
}

// reference is a hash reference to a stored node,
// or the encoding of an inline node.
type reference struct {
	hash   common.Hash
	inline []byte
}

func (r reference) String() string {
	if r.inline != nil {
		return fmt.Sprintf("inline 0x%x", r.inline)
	}
	return r.hash.String()
}

func childReference(node codec.Node, child codec.ChildPlan) reference {
	data := child.Range().Slice(node.Data)
	switch child.(type) {
	case codec.InlineChild:
		return reference{inline: data}
	default:
		return reference{hash: common.NewHash(data)}
	}
}

// location is the position of a node. Nested child tries
// restart their positions from their root, and base holds
// the key of the leaf a nested trie hangs from.
type location struct {
	base     nibble.Path
	position nibble.Path
}

// key returns the key path of a node with the given partial key.
func (l location) key(partial nibble.Path) nibble.Path {
	return l.base.Concat(l.position).Concat(partial)
}

// child returns the location of a child found at the given
// nibbles from the node.
func (l location) child(nibbles ...byte) location {
	return location{
		base:     l.base,
		position: l.position.Append(nibbles...),
	}
}

// walk is the state of a single walk.
type walk struct {
	*Walker
	path            nibble.Path
	includeChildren bool
	leafOnly        bool
	results         []Entry
	pending         *deque.Deque[pendingChild]
	registered      []pendingChild
}

// descend follows the path from the node given, until the path is
// exhausted, a dead end is reached or the subtrie harvest is triggered.
func (s *walk) descend(ref reference) error {
	var loc location
	consumed := 0
	for {
		node, err := s.load(ref, loc)
		if err != nil {
			return err
		}

		remaining := s.path[consumed:]
		s.logger.Debugf("%s node %s at 0x%s, %d nibbles remaining",
			node.Kind(), ref, loc.key(nil), len(remaining))
		if len(remaining) == 0 {
			return s.atTarget(node, loc)
		}

		partial := node.Partial()
		consumed += s.matchPartial(partial, remaining, loc)
		atEnd := len(remaining) <= len(partial)
		if node.Kind() == codec.Extension {
			// the extension child sits at the end of the partial key
			atEnd = len(remaining) < len(partial)
		}
		if atEnd {
			return s.atTarget(node, loc)
		}

		switch node.Kind() {
		case codec.Empty:
			s.logger.Warnf("empty node at 0x%s", loc.key(nil))
			s.emit(s.path, nil, false)
			return nil
		case codec.Leaf:
			value, err := s.value(node, loc)
			if err != nil {
				return err
			}

			childRoot, ok, err := s.childTrieRoot(value)
			if err != nil {
				return err
			} else if ok {
				s.logger.Debugf("leaf at 0x%s holds child trie root %s",
					loc.key(partial), childRoot)
				loc = location{base: loc.key(partial)}
				ref = reference{hash: childRoot}
				continue
			}

			s.logger.Warnf("leaf reached at 0x%s before the end of path 0x%s",
				loc.key(partial), s.path)
			s.emit(loc.key(partial), value, true)
			return nil
		case codec.Extension:
			children, _ := node.Children()
			ref = childReference(node, children[0])
			loc = loc.child(partial...)
		case codec.Branch, codec.NibbledBranch:
			index := remaining[len(partial)]
			consumed++

			children, _ := node.Children()
			child := children[index]
			if child != nil {
				ref = childReference(node, child)
				loc = loc.child(append(partial, index)...)
				continue
			}

			if !s.includeChildren {
				s.logger.Warnf("no child at index %x of branch at 0x%s",
					index, loc.key(partial))
				s.emit(loc.key(partial), nil, false)
				return nil
			}

			s.logger.Infof("no child at index %x of branch at 0x%s, harvesting its children",
				index, loc.key(partial))
			s.registerChildren(node, loc, partial)
			return s.harvest()
		}
	}
}

// atTarget handles the node found at the end of the path.
func (s *walk) atTarget(node codec.Node, loc location) (err error) {
	partial := node.Partial()
	s.logger.Infof("path ends at %s node at 0x%s", node.Kind(), loc.key(partial))

	switch node.Kind() {
	case codec.Empty:
		s.emit(s.path, nil, false)
		return nil
	case codec.Leaf:
		value, err := s.value(node, loc)
		if err != nil {
			return err
		}

		if s.includeChildren {
			childRoot, ok, err := s.childTrieRoot(value)
			if err != nil {
				return err
			} else if ok {
				s.logger.Infof("leaf at 0x%s holds child trie root %s", loc.key(partial), childRoot)
				s.register(pendingChild{
					ref: reference{hash: childRoot},
					loc: location{base: loc.key(partial)},
				})
				return s.harvest()
			}
		}

		s.emit(loc.key(partial), value, true)
		return nil
	case codec.Extension:
		if !s.leafOnly {
			s.emit(s.path, nil, false)
		}
		if !s.includeChildren {
			return nil
		}
		children, _ := node.Children()
		s.register(pendingChild{
			ref: childReference(node, children[0]),
			loc: loc.child(partial...),
		})
		return s.harvest()
	default:
		if !s.leafOnly {
			value, err := s.value(node, loc)
			if err != nil {
				return err
			}
			s.emit(loc.key(partial), value, false)
		}
		if !s.includeChildren {
			return nil
		}
		s.registerChildren(node, loc, partial)
		return s.harvest()
	}
}

// matchPartial compares the partial key of a node with the head of the
// remaining path and returns the number of path nibbles consumed.
// A mismatch is logged and the walk goes on.
func (s *walk) matchPartial(partial, remaining nibble.Path, loc location) (consumed int) {
	consumed = len(partial)
	if len(remaining) < consumed {
		consumed = len(remaining)
	}

	if !remaining[:consumed].Equal(partial[:consumed]) {
		s.logger.Warnf("%s: path 0x%s does not match partial key 0x%s at 0x%s",
			ErrPathMismatch, remaining[:consumed], partial, loc.key(nil))
	}
	return consumed
}

func (s *walk) load(ref reference, loc location) (node codec.Node, err error) {
	encoding := ref.inline
	if encoding == nil {
		encoding, err = s.store.Fetch(ref.hash, loc.position.Prefix())
		if err != nil {
			return node, fetchError(err, "node", loc.key(nil))
		}
	}
	s.metrics.NodeVisited()

	node, err = codec.Decode(s.codec, encoding)
	if err != nil {
		return node, fmt.Errorf("%w: %s at 0x%s: %w", ErrCorrupt, ref, loc.key(nil), err)
	}
	return node, nil
}

// value returns a copy of the value of the node, resolving
// values stored apart from their node.
func (s *walk) value(node codec.Node, loc location) (value []byte, err error) {
	switch plan := node.Value().(type) {
	case nil:
		return nil, nil
	case codec.HashedValue:
		hash := common.NewHash(plan.Range().Slice(node.Data))
		position := loc.position.Concat(node.Partial())
		value, err = s.store.FetchValue(hash, position.Prefix())
		if err != nil {
			return nil, fetchError(err, "value", loc.key(node.Partial()))
		}
		return value, nil
	default:
		data := plan.Range().Slice(node.Data)
		value = make([]byte, len(data))
		copy(value, data)
		return value, nil
	}
}

// childTrieRoot returns true if the value is the hash of
// a node present in the store, the root of a nested child trie.
func (s *walk) childTrieRoot(value []byte) (root common.Hash, ok bool, err error) {
	if len(value) != common.HashLength {
		return root, false, nil
	}

	root = common.NewHash(value)
	_, err = s.store.Fetch(root, nibble.Prefix{})
	switch {
	case err == nil:
		return root, true, nil
	case errors.Is(err, nodestore.ErrNodeNotFound):
		s.logger.Debugf("32 bytes value %s is not a child trie root", root)
		return root, false, nil
	default:
		return root, false, fmt.Errorf("looking up child trie root: %w", err)
	}
}

func (s *walk) emit(path nibble.Path, data []byte, leaf bool) {
	s.logger.Debugf("emitting entry at 0x%s (%d bytes, leaf %t)", path, len(data), leaf)
	s.results = append(s.results, Entry{
		Path: path.String(),
		Data: data,
		Leaf: leaf,
	})
	s.metrics.EntryEmitted(leaf)
}

func fetchError(err error, what string, key nibble.Path) error {
	if errors.Is(err, nodestore.ErrNodeNotFound) {
		return fmt.Errorf("%w: %s at 0x%s: %w", ErrNodeMissing, what, key, err)
	}
	return fmt.Errorf("%s at 0x%s: %w", what, key, err)
}
