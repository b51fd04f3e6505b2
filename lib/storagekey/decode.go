// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storagekey

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/ChainSafe/ssi/lib/common"
)

// Separator joins the parts of a map key decoded
// from a double map storage key.
const Separator = "∥"

const (
	// nameDigestLength is the length of a hex encoded 128 bits name digest.
	nameDigestLength = 32
	// maxFirstKeyLength is the maximum length in bytes of a first
	// concat map key searched for when splitting double map keys.
	maxFirstKeyLength = 128
)

// Decoded is a storage key split into names.
// A nil field means it could not be resolved.
type Decoded struct {
	Pallet *string
	Field  *string
	Key    *string
}

func (d Decoded) String() string {
	return fmt.Sprintf("%s > %s > %s", deref(d.Pallet), deref(d.Field), deref(d.Key))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SemanticDecode splits a hex encoded storage key into its pallet,
// field and map key names. Pallet and field names are resolved only
// if they are known. An unknown field is kept as hex.
// If keepUnresolved is true, unresolved short fields and map keys
// are returned as hex, otherwise the map key is decoded as an identity
// hashed UTF-8 string if possible.
func SemanticDecode(s string, keepUnresolved bool) (decoded Decoded) {
	s = common.TrimHexPrefix(s)

	decoded, ok := decodeWellKnown(s)
	if ok {
		return decoded
	}

	if len(s) < nameDigestLength {
		return decoded
	}

	pallet, ok := palletNamesByHash[s[:nameDigestLength]]
	if ok {
		decoded.Pallet = &pallet
	}

	tail := s[nameDigestLength:]
	if len(tail) < nameDigestLength {
		if keepUnresolved && tail != "" {
			decoded.Field = &tail
		}
		return decoded
	}

	field := tail[:nameDigestLength]
	if name, ok := fieldNamesByHash[field]; ok {
		field = name
	}
	decoded.Field = &field

	tail = tail[nameDigestLength:]
	if tail == "" {
		return decoded
	}

	key, ok := decodeMapKey(tail, keepUnresolved)
	if ok {
		decoded.Key = &key
	}
	return decoded
}

func decodeMapKey(s string, keepUnresolved bool) (key string, ok bool) {
	for _, hasher := range [...]Hasher{Twox64Concat, Blake2_128Concat} {
		key, ok = ConcatDecode(hasher, s)
		if ok {
			return key, true
		}
	}

	key, ok = decodeDoubleMapKey(s)
	if ok {
		return key, true
	}

	if len(s) >= nameDigestLength {
		digest, rest := s[:nameDigestLength], s[nameDigestLength:]
		if name, ok := blake2Names[digest]; ok {
			return name + Separator + rest, true
		}

		if name, ok := twoxNames[digest]; ok {
			return name + Separator + rest, true
		}
	}

	if keepUnresolved {
		return s, true
	}

	cleartext, err := hex.DecodeString(s)
	if err != nil || !utf8.Valid(cleartext) {
		return "", false
	}
	return string(cleartext), true
}

// decodeDoubleMapKey splits a concat hashed first map key followed by a
// second map key. The first key is the shortest verified cleartext.
func decodeDoubleMapKey(s string) (key string, ok bool) {
	for _, hasher := range [...]Hasher{Twox64Concat, Blake2_128Concat} {
		digestLength := 2 * hasher.DigestLength()
		if len(s) <= digestLength {
			continue
		}

		digest := s[:digestLength]
		maxEnd := min(len(s), digestLength+2*maxFirstKeyLength)
		for end := digestLength + 2; end < maxEnd; end += 2 {
			first, ok := verifyConcat(hasher, digest, s[digestLength:end])
			if !ok {
				continue
			}
			return renderKey(first) + Separator + decodeSecondKey(s[end:]), true
		}
	}
	return "", false
}

func decodeSecondKey(s string) (key string) {
	for _, hasher := range [...]Hasher{Twox64Concat, Blake2_128Concat} {
		key, ok := ConcatDecode(hasher, s)
		if ok {
			return key
		}
	}

	cleartext, err := hex.DecodeString(s)
	if err != nil {
		return s
	}
	return renderKey(cleartext)
}

func decodeWellKnown(s string) (decoded Decoded, ok bool) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) == 0 || raw[0] != ':' {
		return decoded, false
	}

	for _, wellKnownKey := range wellKnownKeys {
		if bytes.Equal(raw, wellKnownKey) {
			name := string(wellKnownKey)
			decoded.Pallet = &name
			return decoded, true
		}
	}

	if !bytes.HasPrefix(raw, common.ChildStorageKeyPrefix) {
		return decoded, false
	}

	name := string(common.ChildStorageKeyPrefix)
	decoded.Pallet = &name
	if childKey := raw[len(common.ChildStorageKeyPrefix):]; len(childKey) > 0 {
		key := renderKey(childKey)
		decoded.Key = &key
	}
	return decoded, true
}
