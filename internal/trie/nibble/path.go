// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package nibble

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNibble is returned when a character is not an hexadecimal digit.
var ErrInvalidNibble = errors.New("invalid nibble")

const hexDigits = "0123456789abcdef"

// Path is a sequence of nibbles, each of value 0 to 15,
// in root to node descent order.
type Path []byte

// Parse converts a hex string into a nibble path, one nibble per character.
// Upper and lower case digits are accepted.
func Parse(s string) (path Path, err error) {
	path = make(Path, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			path[i] = c - '0'
		case c >= 'a' && c <= 'f':
			path[i] = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			path[i] = c - 'A' + 10
		default:
			return nil, fmt.Errorf("%w: %q at index %d", ErrInvalidNibble, c, i)
		}
	}
	return path, nil
}

// MustParse is Parse panicking on error, for literals.
func MustParse(s string) Path {
	path, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return path
}

// FromBytes converts a byte key into its nibble path,
// high nibble first.
func FromBytes(key []byte) Path {
	path := make(Path, 2*len(key))
	for i, b := range key {
		path[2*i] = b >> 4
		path[2*i+1] = b & 0x0f
	}
	return path
}

// String renders the path as lower case hexadecimal.
func (p Path) String() string {
	var builder strings.Builder
	builder.Grow(len(p))
	for _, n := range p {
		builder.WriteByte(hexDigits[n&0x0f])
	}
	return builder.String()
}

// Append returns a new path made of the path followed by the nibbles given.
// The receiver is never modified.
func (p Path) Append(nibbles ...byte) Path {
	out := make(Path, 0, len(p)+len(nibbles))
	out = append(out, p...)
	return append(out, nibbles...)
}

// Concat returns a new path made of the path followed by the other path.
func (p Path) Concat(other Path) Path {
	return p.Append(other...)
}

// HasPrefix returns true if the path starts with the other path.
func (p Path) HasPrefix(other Path) bool {
	if len(other) > len(p) {
		return false
	}
	for i := range other {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Equal returns true if both paths hold the same nibbles.
func (p Path) Equal(other Path) bool {
	return len(p) == len(other) && p.HasPrefix(other)
}

// Prefix returns the store key prefix of a node located at the path.
// Full bytes form the partial key and an odd trailing nibble
// is kept as the high nibble of the padded byte.
func (p Path) Prefix() Prefix {
	full := len(p) / NibblesPerByte
	prefix := Prefix{PartialKey: make([]byte, full)}
	for i := 0; i < full; i++ {
		prefix.PartialKey[i] = p[2*i]<<BitsPerNibble | p[2*i+1]
	}
	if len(p)%NibblesPerByte == 1 {
		padded := p[len(p)-1] << BitsPerNibble
		prefix.PaddedByte = &padded
	}
	return prefix
}
