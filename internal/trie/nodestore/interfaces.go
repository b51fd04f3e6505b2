// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package nodestore

// Logger is the logger used by the node store.
type Logger interface {
	Trace(s string)
	Warn(s string)
}

// Metrics records the lookups of the node store.
type Metrics interface {
	FetchHit(namespace string)
	FetchMiss(namespace string)
	CacheHit()
}
