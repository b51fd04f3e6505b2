// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Settings is the database settings.
type Settings struct {
	// Path is the database directory path to use.
	// It defaults to the current directory if left unset.
	Path *string
	// InMemory is whether to use an in-memory database.
	// It defaults to false.
	InMemory *bool
	// ReadOnly is whether to reject writes and open
	// the database without taking the write lock.
	// It defaults to false.
	ReadOnly *bool
}

// SetDefaults sets the default values on the settings.
func (s *Settings) SetDefaults() {
	if s.Path == nil {
		s.Path = new(string)
	}

	if s.InMemory == nil {
		s.InMemory = new(bool)
	}

	if s.ReadOnly == nil {
		s.ReadOnly = new(bool)
	}
}

var ErrInMemoryReadOnly = errors.New("in-memory database cannot be read only")

// Validate validates the settings.
func (s Settings) Validate() (err error) {
	if *s.InMemory {
		if *s.ReadOnly {
			return fmt.Errorf("%w", ErrInMemoryReadOnly)
		}
		return nil
	}

	_, err = filepath.Abs(*s.Path)
	if err != nil {
		return fmt.Errorf("changing path to absolute path: %w", err)
	}

	return nil
}
