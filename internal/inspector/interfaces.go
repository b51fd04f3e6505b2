// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package inspector

import (
	"github.com/ChainSafe/ssi/internal/trie/nodestore"
	"github.com/ChainSafe/ssi/internal/trie/walker"
)

// Logger is the logger used by the inspector, its node store and its walker.
type Logger interface {
	Trace(s string)
	Warn(s string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Metrics records node store and walker events.
type Metrics interface {
	nodestore.Metrics
	walker.Metrics
}
