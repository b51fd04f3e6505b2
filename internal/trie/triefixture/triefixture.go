// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package triefixture builds encoded tries into a database,
// laid out the way a Substrate node persists its state.
package triefixture

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/ChainSafe/ssi/internal/trie/codec"
	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/ChainSafe/ssi/lib/common"
)

// Option is an option to build a trie.
type Option func(b *builder)

// WithoutPrefix stores nodes under their bare hash
// instead of their prefixed key.
func WithoutPrefix() Option {
	return func(b *builder) {
		b.prefixed = false
	}
}

// WithHashedValues stores leaf values of at least threshold
// bytes apart from their leaf, under their hash.
// It is only supported by the Substrate layout.
func WithHashedValues(threshold int) Option {
	return func(b *builder) {
		b.hashedValueThreshold = threshold
	}
}

type entry struct {
	key   nibble.Path
	value []byte
}

type builder struct {
	layout               codec.Layout
	db                   database.Writer
	prefixed             bool
	hashedValueThreshold int
}

// Build encodes the trie holding the key values given, writes
// its nodes to db and returns the root hash. Keys are raw bytes.
func Build(db database.Writer, layout codec.Layout, keyValues map[string][]byte,
	options ...Option) (root common.Hash, err error) {
	b := &builder{
		layout:   layout,
		db:       db,
		prefixed: true,
	}
	for _, option := range options {
		option(b)
	}

	entries := make([]entry, 0, len(keyValues))
	for key, value := range keyValues {
		entries = append(entries, entry{
			key:   nibble.FromBytes([]byte(key)),
			value: value,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})

	var encoding []byte
	if len(entries) == 0 {
		encoding = []byte{0}
	} else {
		encoding, err = b.encode(entries, 0)
		if err != nil {
			return root, fmt.Errorf("encoding root: %w", err)
		}
	}

	root = common.MustBlake2bHash(encoding)
	err = b.store(root, nibble.Path{}, encoding)
	if err != nil {
		return root, err
	}
	return root, nil
}

// encode encodes the node of the entries sharing
// their first depth nibbles.
func (b *builder) encode(entries []entry, depth int) (encoding []byte, err error) {
	if len(entries) == 1 {
		return b.encodeLeaf(entries[0], depth)
	}

	shared := commonPrefixLength(entries, depth)
	partial := entries[0].key[depth : depth+shared]
	if !b.layout.SupportsExtension() || shared == 0 {
		return b.encodeBranch(entries, depth+shared, partial)
	}

	extension, ok := b.layout.(codec.ExtensionLayout)
	if !ok {
		return nil, fmt.Errorf("extension nodes are not supported by layout %s", b.layout.Name())
	}

	branch, err := b.encodeBranch(entries, depth+shared, nil)
	if err != nil {
		return nil, err
	}
	child, err := b.reference(entries[0].key[:depth+shared], branch)
	if err != nil {
		return nil, err
	}
	return extension.EncodeExtension(partial, child)
}

func (b *builder) encodeLeaf(e entry, depth int) (encoding []byte, err error) {
	partial := e.key[depth:]
	if b.hashedValueThreshold == 0 || len(e.value) < b.hashedValueThreshold {
		return b.layout.EncodeLeaf(partial, e.value)
	}

	substrate, ok := b.layout.(codec.SubstrateLayout)
	if !ok {
		return nil, fmt.Errorf("hashed values are not supported by layout %s", b.layout.Name())
	}

	valueHash := common.MustBlake2bHash(e.value)
	err = b.store(valueHash, e.key, e.value)
	if err != nil {
		return nil, fmt.Errorf("storing value: %w", err)
	}
	return substrate.EncodeHashedLeaf(partial, valueHash[:])
}

// encodeBranch encodes the branch at nibble position split
// of the entries given, with the partial key given.
func (b *builder) encodeBranch(entries []entry, split int,
	partial nibble.Path) (encoding []byte, err error) {
	var value []byte
	hasValue := false
	if len(entries[0].key) == split {
		value = entries[0].value
		hasValue = true
		entries = entries[1:]
	}

	var children [codec.ChildrenCapacity][]byte
	for len(entries) > 0 {
		index := entries[0].key[split]
		end := 1
		for end < len(entries) && entries[end].key[split] == index {
			end++
		}

		childEncoding, err := b.encode(entries[:end], split+1)
		if err != nil {
			return nil, fmt.Errorf("encoding child %d: %w", index, err)
		}

		position := entries[0].key[:split+1]
		children[index], err = b.reference(position, childEncoding)
		if err != nil {
			return nil, err
		}
		entries = entries[end:]
	}

	return b.layout.EncodeBranch(partial, value, hasValue, children)
}

// reference returns the encoding itself if it can be inlined,
// otherwise it stores the encoding and returns its hash.
func (b *builder) reference(position nibble.Path, encoding []byte) (ref []byte, err error) {
	if len(encoding) < common.HashLength {
		return encoding, nil
	}

	hash := common.MustBlake2bHash(encoding)
	err = b.store(hash, position, encoding)
	if err != nil {
		return nil, err
	}
	return hash.ToBytes(), nil
}

func (b *builder) store(hash common.Hash, position nibble.Path, encoding []byte) (err error) {
	key := hash.ToBytes()
	if b.prefixed {
		key = position.Prefix().Key(key)
	}

	err = b.db.Put(key, encoding)
	if err != nil {
		return fmt.Errorf("storing node %s: %w", hash, err)
	}
	return nil
}

func commonPrefixLength(entries []entry, depth int) (length int) {
	first := entries[0].key[depth:]
	last := entries[len(entries)-1].key[depth:]
	for length < len(first) && length < len(last) && first[length] == last[length] {
		length++
	}
	return length
}
