// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package nibble

const (
	// NibblesPerByte is the number of nibbles in a byte.
	NibblesPerByte = 2
	// BitsPerNibble is the number of bits in a nibble.
	BitsPerNibble = 4
	// PaddingBitmask masks the low nibble of a byte.
	PaddingBitmask byte = 0x0f
)

// Prefix is the nibble position of a node in its trie, in packed form.
// It qualifies node hashes in stores where the same node content may
// appear at different positions.
type Prefix struct {
	PartialKey []byte
	PaddedByte *byte
}

// Key returns the prefixed store key of a node hash at this position:
// partial key, then the padded byte if any, then the hash.
func (p Prefix) Key(hash []byte) []byte {
	key := make([]byte, 0, len(p.PartialKey)+1+len(hash))
	key = append(key, p.PartialKey...)
	if p.PaddedByte != nil {
		key = append(key, *p.PaddedByte)
	}
	return append(key, hash...)
}
