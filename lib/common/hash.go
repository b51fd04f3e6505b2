// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// HashLength is the expected length of the common.Hash type
	HashLength = 32
)

var EmptyHash = Hash{}

var (
	ErrNoPrefix          = errors.New("could not byteify non 0x prefixed string")
	ErrInvalidRootHash   = errors.New("invalid root hash")
	ErrHashLengthInvalid = errors.New("hash length is not 32 bytes")
)

// Hash is a 32 bytes node hash, used both as a store key and as a trie pointer.
type Hash [32]byte

// NewHash casts a byte slice to a Hash.
// If the input is longer than 32 bytes, it takes the first 32 bytes.
func NewHash(in []byte) (res Hash) {
	copy(res[:], in)
	return res
}

// ToBytes turns a hash to a byte slice.
func (h Hash) ToBytes() []byte {
	b := [32]byte(h)
	return b[:]
}

// IsEmpty returns true if the hash is empty, false otherwise.
func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

// String returns the 0x prefixed hex string for the hash.
func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// Short returns the first 4 bytes and the last 4 bytes of the hex string for the hash.
func (h Hash) Short() string {
	const nBytes = 4
	return fmt.Sprintf("0x%x...%x", h[:nBytes], h[len(h)-nBytes:])
}

// UnmarshalJSON converts hex data to hash.
func (h *Hash) UnmarshalJSON(data []byte) error {
	trimmedData := strings.Trim(string(data), "\"")
	hash, err := HexToHash(trimmedData)
	if err != nil {
		return err
	}
	*h = hash
	return nil
}

// MarshalJSON converts hash to hex data.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// HexToHash turns a 0x prefixed 64 hex characters string into a Hash.
// It fails for any other input.
func HexToHash(in string) (hash Hash, err error) {
	if !strings.HasPrefix(in, "0x") {
		return hash, fmt.Errorf("%w: %w: %q", ErrInvalidRootHash, ErrNoPrefix, in)
	}

	out, err := hex.DecodeString(in[2:])
	if err != nil {
		return hash, fmt.Errorf("%w: %w", ErrInvalidRootHash, err)
	}

	if len(out) != HashLength {
		return hash, fmt.Errorf("%w: %w: %d bytes", ErrInvalidRootHash,
			ErrHashLengthInvalid, len(out))
	}

	copy(hash[:], out)
	return hash, nil
}

// MustHexToHash turns a 0x prefixed hex string into type Hash
// and panics if it fails.
func MustHexToHash(in string) Hash {
	hash, err := HexToHash(in)
	if err != nil {
		panic(err)
	}
	return hash
}
