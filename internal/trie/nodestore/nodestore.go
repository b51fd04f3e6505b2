// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package nodestore resolves trie node hashes to their encodings
// across the namespaces of a read only database.
package nodestore

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/ChainSafe/ssi/lib/common"
	"github.com/VictoriaMetrics/fastcache"
)

var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrAmbiguousNode = errors.New("node key has different values in namespaces")
)

// Store looks up trie nodes by hash in the tables of a namespaced database.
type Store struct {
	tables  []database.Table
	strict  bool
	cache   *fastcache.Cache
	logger  Logger
	metrics Metrics
}

// New creates a node store reading from the namespaces of db.
// The settings given are defaulted and validated.
func New(db database.Namespaced, settings Settings,
	logger Logger, metrics Metrics) (store *Store, err error) {
	settings.SetDefaults()
	err = settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	tables := make([]database.Table, len(settings.Namespaces))
	for i, namespace := range settings.Namespaces {
		tables[i] = db.Table(namespace)
	}

	store = &Store{
		tables:  tables,
		strict:  *settings.StrictNamespaces,
		logger:  logger,
		metrics: metrics,
	}

	if *settings.CacheSize > 0 {
		store.cache = fastcache.New(*settings.CacheSize)
	}

	return store, nil
}

// Fetch returns the encoding of the node with the given hash at the
// given position. It looks up the prefixed key in every namespace,
// then the bare hash in every namespace, and returns the first value found.
// It returns an error wrapping ErrNodeNotFound if no namespace has the node.
func (s *Store) Fetch(hash common.Hash, prefix nibble.Prefix) (encoding []byte, err error) {
	encoding, err = s.fetch(hash, prefix)
	if err != nil {
		return nil, fmt.Errorf("fetching node: %w", err)
	}
	return encoding, nil
}

// FetchValue returns the value with the given hash, for values stored
// apart from their leaf. The lookup is the same as for nodes.
func (s *Store) FetchValue(hash common.Hash, prefix nibble.Prefix) (value []byte, err error) {
	value, err = s.fetch(hash, prefix)
	if err != nil {
		return nil, fmt.Errorf("fetching value: %w", err)
	}
	return value, nil
}

// Reset empties the node cache.
func (s *Store) Reset() {
	if s.cache != nil {
		s.cache.Reset()
	}
}

func (s *Store) fetch(hash common.Hash, prefix nibble.Prefix) (value []byte, err error) {
	if s.cache != nil {
		value, ok := s.cache.HasGet(nil, hash[:])
		if ok {
			s.metrics.CacheHit()
			return value, nil
		}
	}

	keys := [][]byte{prefix.Key(hash[:])}
	if len(keys[0]) > common.HashLength {
		keys = append(keys, hash[:])
	}

	for _, key := range keys {
		value, err = s.lookup(key)
		switch {
		case err == nil:
			if s.cache != nil {
				s.cache.Set(hash[:], value)
			}
			return value, nil
		case errors.Is(err, database.ErrKeyNotFound):
			continue
		default:
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, hash)
}

// lookup returns the value of the first table having the key.
// In strict mode, it checks the remaining tables hold no different value.
func (s *Store) lookup(key []byte) (value []byte, err error) {
	s.logger.Trace(fmt.Sprintf("looking up key 0x%x", key))

	hitNamespace := ""
	found := false
	for _, table := range s.tables {
		if found && !s.strict {
			break
		}

		tableValue, err := table.Get(key)
		if errors.Is(err, database.ErrKeyNotFound) {
			s.metrics.FetchMiss(table.Name())
			continue
		} else if err != nil {
			return nil, fmt.Errorf("getting key 0x%x from namespace %s: %w",
				key, table.Name(), err)
		}
		s.metrics.FetchHit(table.Name())

		if !found {
			found = true
			value = tableValue
			hitNamespace = table.Name()
			s.logger.Trace(fmt.Sprintf("found key 0x%x in namespace %s", key, hitNamespace))
			continue
		}

		if !bytes.Equal(value, tableValue) {
			s.logger.Warn(fmt.Sprintf("%s: key 0x%x in namespaces %s and %s, using %s",
				ErrAmbiguousNode, key, hitNamespace, table.Name(), hitNamespace))
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	}
	return value, nil
}
