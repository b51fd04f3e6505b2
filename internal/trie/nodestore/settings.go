// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package nodestore

import (
	"errors"
	"fmt"
)

// DefaultNamespaces are the column families of a Substrate
// database, in the order they are searched.
var DefaultNamespaces = []string{
	"default", "col0", "col1", "col2", "col3", "col4",
	"col5", "col6", "col7", "col8", "col9", "col10",
}

// DefaultCacheSize is the default node cache size in bytes.
const DefaultCacheSize = 32 * 1024 * 1024

var (
	ErrNoNamespace         = errors.New("no namespace configured")
	ErrNamespaceEmpty      = errors.New("namespace name is empty")
	ErrNamespaceDuplicated = errors.New("namespace is duplicated")
	ErrCacheSizeNegative   = errors.New("cache size cannot be negative")
)

// Settings are the node store settings.
type Settings struct {
	// Namespaces are searched in order for each node.
	Namespaces []string
	// StrictNamespaces keeps searching the remaining namespaces
	// after a hit, to detect a node key present with different
	// content in more than one namespace.
	StrictNamespaces *bool
	// CacheSize is the node cache size in bytes, 0 disables it.
	CacheSize *int
}

// SetDefaults sets the default values on unset fields.
func (s *Settings) SetDefaults() {
	if s.Namespaces == nil {
		s.Namespaces = make([]string, len(DefaultNamespaces))
		copy(s.Namespaces, DefaultNamespaces)
	}

	if s.StrictNamespaces == nil {
		s.StrictNamespaces = new(bool)
	}

	if s.CacheSize == nil {
		cacheSize := DefaultCacheSize
		s.CacheSize = &cacheSize
	}
}

// Validate validates the settings are valid.
func (s Settings) Validate() (err error) {
	if len(s.Namespaces) == 0 {
		return fmt.Errorf("%w", ErrNoNamespace)
	}

	seen := make(map[string]struct{}, len(s.Namespaces))
	for i, namespace := range s.Namespaces {
		if namespace == "" {
			return fmt.Errorf("%w: at index %d", ErrNamespaceEmpty, i)
		}
		if _, ok := seen[namespace]; ok {
			return fmt.Errorf("%w: %s", ErrNamespaceDuplicated, namespace)
		}
		seen[namespace] = struct{}{}
	}

	if s.CacheSize != nil && *s.CacheSize < 0 {
		return fmt.Errorf("%w: %d", ErrCacheSizeNegative, *s.CacheSize)
	}

	return nil
}
