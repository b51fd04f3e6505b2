// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package nibble

// Slice is a nibble oriented view onto a byte slice,
// allowing nibble precision offsets. It never copies nor
// modifies the underlying data.
type Slice struct {
	data   []byte
	offset int
}

// NewSlice creates a nibble slice over data starting at the given nibble offset.
func NewSlice(data []byte, offset int) Slice {
	return Slice{data: data, offset: offset}
}

// Len returns the number of nibbles in the slice.
func (s Slice) Len() int {
	return len(s.data)*NibblesPerByte - s.offset
}

// IsEmpty returns true if the slice contains no nibble.
func (s Slice) IsEmpty() bool {
	return s.Len() == 0
}

// At returns the nibble at position i.
func (s Slice) At(i int) byte {
	ix := (s.offset + i) / NibblesPerByte
	pad := (s.offset + i) % NibblesPerByte
	b := s.data[ix]
	if pad == 1 {
		return b & PaddingBitmask
	}
	return b >> BitsPerNibble
}

// Path copies the nibbles of the slice into a new path.
func (s Slice) Path() Path {
	path := make(Path, s.Len())
	for i := range path {
		path[i] = s.At(i)
	}
	return path
}
