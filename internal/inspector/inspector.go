// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package inspector inspects and diffs the state tries persisted
// in a Substrate node database.
package inspector

import (
	"fmt"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/ChainSafe/ssi/internal/trie/codec"
	"github.com/ChainSafe/ssi/internal/trie/diff"
	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/ChainSafe/ssi/internal/trie/nodestore"
	"github.com/ChainSafe/ssi/internal/trie/walker"
	"github.com/ChainSafe/ssi/lib/common"
)

// Inspector looks up subtries of state tries stored in a database.
type Inspector struct {
	db         database.Namespaced
	namespaces []string
	walker     *walker.Walker
	logger     Logger
}

// New opens the database configured read only and
// returns an inspector reading from it.
// The inspector must be closed after use.
func New(config Config, logger Logger, metrics Metrics) (*Inspector, error) {
	config.SetDefaults()
	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	db, err := OpenDatabase(config.Backend, config.Path)
	if err != nil {
		return nil, err
	}

	inspector, err := newInspector(db, config, logger, metrics)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Infof("opened %s database at %s", config.Backend, config.Path)
	return inspector, nil
}

// newInspector returns an inspector reading from db,
// with config already defaulted and validated.
func newInspector(db database.Namespaced, config Config,
	logger Logger, metrics Metrics) (*Inspector, error) {
	layout, err := codec.ByName(config.Layout)
	if err != nil {
		return nil, err
	}

	store, err := nodestore.New(db, config.NodeStore, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("creating node store: %w", err)
	}

	return &Inspector{
		db:         db,
		namespaces: config.NodeStore.Namespaces,
		walker:     walker.New(store, layout, logger, metrics),
		logger:     logger,
	}, nil
}

// Close closes the database.
func (i *Inspector) Close() error {
	return i.db.Close()
}

// Query is a subtrie lookup.
type Query struct {
	Root common.Hash
	// Key is the hex encoded storage key, or storage key
	// prefix, at the root of the subtrie.
	Key string
	// IncludeChildren is whether to harvest all the nodes
	// below the node found at the key.
	IncludeChildren bool
	// LeafOnly is whether to only return leaf entries.
	LeafOnly bool
}

// Inspect returns the entries of the subtrie found with the query.
func (i *Inspector) Inspect(query Query) (entries []walker.Entry, err error) {
	path, err := nibble.Parse(query.Key)
	if err != nil {
		return nil, fmt.Errorf("parsing storage key: %w", err)
	}

	i.logger.Infof("inspecting storage key 0x%s at state root %s "+
		"(include children: %t, leaf only: %t)",
		path, query.Root, query.IncludeChildren, query.LeafOnly)

	entries, err = i.walker.Walk(query.Root, path, query.IncludeChildren, query.LeafOnly)
	if err != nil {
		return nil, fmt.Errorf("walking state trie %s: %w", query.Root, err)
	}

	i.logger.Infof("found %d entries at storage key 0x%s", len(entries), path)
	return entries, nil
}

// Diff returns the differences between the subtrie found with the query
// and the subtrie found with the same query at the after state root.
func (i *Inspector) Diff(query Query, after common.Hash) (entries []diff.Entry, err error) {
	beforeEntries, err := i.Inspect(query)
	if err != nil {
		return nil, fmt.Errorf("inspecting before state: %w", err)
	}

	query.Root = after
	afterEntries, err := i.Inspect(query)
	if err != nil {
		return nil, fmt.Errorf("inspecting after state: %w", err)
	}

	entries = diff.Diff(diff.NewSnapshot(beforeEntries), diff.NewSnapshot(afterEntries))
	i.logger.Infof("found %d differences", len(entries))
	return entries, nil
}

// NamespaceCount is the number of keys in a namespace.
type NamespaceCount struct {
	Name string
	Keys int
}

// Namespaces returns the number of keys in each configured namespace.
func (i *Inspector) Namespaces() (counts []NamespaceCount, err error) {
	counts = make([]NamespaceCount, len(i.namespaces))
	for index, namespace := range i.namespaces {
		iterator := i.db.Table(namespace).NewIterator()
		keys := 0
		for ok := iterator.First(); ok; ok = iterator.Next() {
			keys++
		}
		err = iterator.Release()
		if err != nil {
			return nil, fmt.Errorf("iterating namespace %s: %w", namespace, err)
		}
		counts[index] = NamespaceCount{Name: namespace, Keys: keys}
	}
	return counts, nil
}
