// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package inspector

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/ssi/internal/trie/codec"
	"github.com/ChainSafe/ssi/internal/trie/nodestore"
)

var (
	ErrPathEmpty      = errors.New("database path is empty")
	ErrBackendUnknown = errors.New("database backend is unknown")
)

// Config is the inspector configuration.
type Config struct {
	// Path is the database directory path, or file path for bolt.
	Path string
	// Backend is the database backend, one of pebble, badger,
	// leveldb or bolt. It defaults to pebble.
	Backend string
	// Layout is the trie node layout, substrate or extension.
	// It defaults to substrate.
	Layout string
	// NodeStore is the node store settings.
	NodeStore nodestore.Settings
}

// SetDefaults sets the default values on unset fields.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = BackendPebble
	}

	if c.Layout == "" {
		c.Layout = codec.SubstrateLayoutName
	}

	c.NodeStore.SetDefaults()
}

// Validate validates the configuration.
func (c Config) Validate() (err error) {
	if c.Path == "" {
		return fmt.Errorf("%w", ErrPathEmpty)
	}

	if !isBackendKnown(c.Backend) {
		return fmt.Errorf("%w: %s", ErrBackendUnknown, c.Backend)
	}

	_, err = codec.ByName(c.Layout)
	if err != nil {
		return err
	}

	err = c.NodeStore.Validate()
	if err != nil {
		return fmt.Errorf("node store settings: %w", err)
	}

	return nil
}
