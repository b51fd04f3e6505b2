// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"
	"golang.org/x/crypto/blake2b"
)

// Blake2b128 returns the 128-bit blake2b hash of the input data.
func Blake2b128(in []byte) ([]byte, error) {
	h, err := blake2b.New(16, nil)
	if err != nil {
		return nil, err
	}

	_, err = h.Write(in)
	if err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

// MustBlake2b128 returns the 128-bit blake2b hash of the input data.
// It panics if it fails to hash.
func MustBlake2b128(in []byte) []byte {
	hash, err := Blake2b128(in)
	if err != nil {
		panic(err)
	}
	return hash
}

// Blake2bHash returns the 256-bit blake2b hash of the input data.
func Blake2bHash(in []byte) (Hash, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return Hash{}, err
	}

	_, err = h.Write(in)
	if err != nil {
		return Hash{}, err
	}

	return NewHash(h.Sum(nil)), nil
}

// MustBlake2bHash returns the 256-bit blake2b hash of the input data.
// It panics if it fails to hash.
func MustBlake2bHash(in []byte) Hash {
	hash, err := Blake2bHash(in)
	if err != nil {
		panic(err)
	}
	return hash
}

// Twox64 returns the xx64 hash of the input data.
func Twox64(in []byte) []byte {
	return xxhashSeeds(in, 1)
}

// Twox128 computes xxHash64 twice with seeds 0 and 1 applied
// on the input data and concatenates the little endian results.
func Twox128(in []byte) []byte {
	return xxhashSeeds(in, 2)
}

// Twox256 computes xxHash64 with seeds 0 to 3 applied on the input data.
func Twox256(in []byte) Hash {
	return NewHash(xxhashSeeds(in, 4))
}

func xxhashSeeds(in []byte, rounds int) []byte {
	out := make([]byte, 8*rounds)
	for seed := 0; seed < rounds; seed++ {
		hasher := xxhash.NewS64(uint64(seed))
		// xxhash writes never fail.
		_, _ = hasher.Write(in)
		binary.LittleEndian.PutUint64(out[8*seed:], hasher.Sum64())
	}
	return out
}
