// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package walker

import (
	"fmt"
	"strings"

	"github.com/ChainSafe/ssi/internal/trie/codec"
	"github.com/ChainSafe/ssi/internal/trie/nibble"
)

// pendingChild is a node registered for the subtrie harvest.
type pendingChild struct {
	ref reference
	loc location
}

func (s *walk) register(child pendingChild) {
	s.pending.PushBack(child)
	s.registered = append(s.registered, child)
}

func (s *walk) registerChildren(node codec.Node, loc location, partial nibble.Path) {
	children, _ := node.Children()
	for i, child := range children {
		if child == nil {
			continue
		}
		s.register(pendingChild{
			ref: childReference(node, child),
			loc: loc.child(append(partial, byte(i))...),
		})
	}
}

// harvest resolves the pending children in registration order,
// until no child is pending.
func (s *walk) harvest() (err error) {
	for s.pending.Len() > 0 {
		child := s.pending.PopFront()
		node, err := s.load(child.ref, child.loc)
		if err != nil {
			return err
		}

		partial := node.Partial()
		switch node.Kind() {
		case codec.Empty:
			s.logger.Debugf("ignoring empty node at 0x%s", child.loc.key(nil))
		case codec.Leaf:
			value, err := s.value(node, child.loc)
			if err != nil {
				return err
			}
			s.emit(child.loc.key(partial), value, true)
		case codec.Extension:
			children, _ := node.Children()
			s.register(pendingChild{
				ref: childReference(node, children[0]),
				loc: child.loc.child(partial...),
			})
		default:
			if !s.leafOnly {
				value, err := s.value(node, child.loc)
				if err != nil {
					return err
				}
				s.emit(child.loc.key(partial), value, false)
			}
			s.registerChildren(node, child.loc, partial)
		}
	}

	s.logger.Trace(s.pendingTable())
	return nil
}

// pendingTable renders the children registered for the harvest.
func (s *walk) pendingTable() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%d children harvested under 0x%s:", len(s.registered), s.path)
	for _, child := range s.registered {
		path := child.loc.key(nil).String()
		relative := strings.TrimPrefix(path, s.path.String())
		fmt.Fprintf(&builder, "\n\t0x%s[%s] <- %s", s.path, relative, child.ref)
	}
	return builder.String()
}
