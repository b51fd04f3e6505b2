// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storagekey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChainSafe/ssi/lib/common"
)

// Hasher is a storage hasher used to derive the storage
// key of a map entry from its key.
type Hasher uint8

const (
	Blake2_128 Hasher = iota
	Blake2_256
	Blake2_128Concat
	Twox128
	Twox256
	Twox64Concat
	Identity
)

var ErrHasherUnknown = errors.New("storage hasher is unknown")

var hasherNames = [...]string{
	Blake2_128:       "Blake2_128",
	Blake2_256:       "Blake2_256",
	Blake2_128Concat: "Blake2_128Concat",
	Twox128:          "Twox128",
	Twox256:          "Twox256",
	Twox64Concat:     "Twox64Concat",
	Identity:         "Identity",
}

func (h Hasher) String() string {
	if int(h) >= len(hasherNames) {
		return fmt.Sprintf("Hasher(%d)", h)
	}
	return hasherNames[h]
}

// ParseHasher parses a hasher name, ignoring case and underscores,
// so that "blake2_128_concat" and "Blake2_128Concat" are equivalent.
func ParseHasher(s string) (h Hasher, err error) {
	normalise := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", ""))
	}

	for i, name := range hasherNames {
		if normalise(name) == normalise(s) {
			return Hasher(i), nil
		}
	}
	return h, fmt.Errorf("%w: %s", ErrHasherUnknown, s)
}

// IsConcat returns true if the hasher appends the
// key after its digest.
func (h Hasher) IsConcat() bool {
	return h == Blake2_128Concat || h == Twox64Concat || h == Identity
}

// DigestLength returns the length in bytes of the digest
// preceding the key, if any.
func (h Hasher) DigestLength() int {
	switch h {
	case Twox64Concat:
		return 8
	case Blake2_128, Blake2_128Concat, Twox128:
		return 16
	case Blake2_256, Twox256:
		return 32
	default:
		return 0
	}
}

// Hash returns the digest of the key for the hasher,
// followed by the key itself for concat hashers.
func (h Hasher) Hash(key []byte) (hashed []byte) {
	var digest []byte
	switch h {
	case Blake2_128, Blake2_128Concat:
		digest = common.MustBlake2b128(key)
	case Blake2_256:
		digest = common.MustBlake2bHash(key).ToBytes()
	case Twox128:
		digest = common.Twox128(key)
	case Twox256:
		digest = common.Twox256(key).ToBytes()
	case Twox64Concat:
		digest = common.Twox64(key)
	}

	if !h.IsConcat() {
		return digest
	}

	hashed = make([]byte, 0, len(digest)+len(key))
	hashed = append(hashed, digest...)
	return append(hashed, key...)
}
