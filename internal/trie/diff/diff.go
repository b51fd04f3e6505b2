// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package diff

import (
	"errors"
	"fmt"
)

// Status is the change status of a path between two snapshots.
type Status uint8

const (
	// Insert is for a path absent before, or with data of a different length.
	Insert Status = iota
	// Delete is for a path absent after.
	Delete
	// Modify is for a path with data of the same length but different bytes.
	Modify
)

var ErrStatusUnknown = errors.New("diff status is unknown")

func (s Status) String() string {
	switch s {
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	case Modify:
		return "Modify"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() (text []byte, err error) {
	if s > Modify {
		return nil, fmt.Errorf("%w: %d", ErrStatusUnknown, s)
	}
	return []byte(s.String()), nil
}

// Entry is a changed path between two snapshots.
// Codes has one code per byte of data: 0 for an unchanged byte,
// the new byte value for a changed or inserted byte and the
// negated old byte value for a deleted byte.
type Entry struct {
	Path   string
	Codes  []int16
	Status Status
}

// ChangeLength returns the number of non zero codes.
func (e Entry) ChangeLength() (n int) {
	for _, code := range e.Codes {
		if code != 0 {
			n++
		}
	}
	return n
}

// Diff compares two snapshots. Entries for the after snapshot paths come
// first, in ascending path order, followed by deleted paths in ascending
// path order. Unchanged paths are omitted.
func Diff(before, after *Snapshot) (entries []Entry) {
	after.scan(func(path string, afterValue Value) bool {
		beforeValue, ok := before.Get(path)
		if !ok || len(beforeValue.Data) != len(afterValue.Data) {
			entries = append(entries, Entry{
				Path:   path,
				Codes:  codes(afterValue.Data, 1),
				Status: Insert,
			})
			return true
		}

		modifyCodes, changed := compare(beforeValue.Data, afterValue.Data)
		if changed {
			entries = append(entries, Entry{
				Path:   path,
				Codes:  modifyCodes,
				Status: Modify,
			})
		}
		return true
	})

	before.scan(func(path string, beforeValue Value) bool {
		_, ok := after.Get(path)
		if ok {
			return true
		}
		entries = append(entries, Entry{
			Path:   path,
			Codes:  codes(beforeValue.Data, -1),
			Status: Delete,
		})
		return true
	})

	return entries
}

func codes(data []byte, sign int16) []int16 {
	codes := make([]int16, len(data))
	for i, b := range data {
		codes[i] = sign * int16(b)
	}
	return codes
}

// compare compares equal length data.
func compare(before, after []byte) (codes []int16, changed bool) {
	codes = make([]int16, len(after))
	for i := range after {
		if before[i] == after[i] {
			continue
		}
		codes[i] = int16(after[i])
		changed = true
	}
	return codes, changed
}
