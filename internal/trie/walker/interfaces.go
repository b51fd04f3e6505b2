// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package walker

import (
	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/ChainSafe/ssi/lib/common"
)

// NodeStore resolves node and value hashes to their bytes.
type NodeStore interface {
	Fetch(hash common.Hash, prefix nibble.Prefix) ([]byte, error)
	FetchValue(hash common.Hash, prefix nibble.Prefix) ([]byte, error)
}

// Logger is the logger used by the walker.
type Logger interface {
	Trace(s string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Metrics records the progress of walks.
type Metrics interface {
	NodeVisited()
	EntryEmitted(leaf bool)
}
