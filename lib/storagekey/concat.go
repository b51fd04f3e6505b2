// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storagekey

import (
	"encoding/hex"
	"unicode"
	"unicode/utf8"

	"github.com/ChainSafe/ssi/lib/common"
)

// ConcatEncode returns the hex encoding of the key hashed with h.
// For concat hashers, the key follows its digest.
func ConcatEncode(h Hasher, key string) string {
	return hex.EncodeToString(h.Hash([]byte(key)))
}

// ConcatDecode extracts the key from the hex encoded output of the
// Twox64Concat or Blake2_128Concat hasher. The digest of the key
// must match the leading digest.
// Printable keys are returned as is, well known development account
// ids as their name and other keys as 0x prefixed hex.
func ConcatDecode(h Hasher, s string) (key string, ok bool) {
	if h != Twox64Concat && h != Blake2_128Concat {
		return "", false
	}

	s = common.TrimHexPrefix(s)
	digestLength := 2 * h.DigestLength()
	if len(s) <= digestLength {
		return "", false
	}

	keyBytes, ok := verifyConcat(h, s[:digestLength], s[digestLength:])
	if !ok {
		return "", false
	}
	return renderKey(keyBytes), true
}

// verifyConcat decodes the hex encoded key and checks
// its digest is the hex encoded digest given.
func verifyConcat(h Hasher, digest, key string) (keyBytes []byte, ok bool) {
	keyBytes, err := hex.DecodeString(key)
	if err != nil {
		return nil, false
	}

	hashed := h.Hash(keyBytes)
	if hex.EncodeToString(hashed[:h.DigestLength()]) != digest {
		return nil, false
	}
	return keyBytes, true
}

func renderKey(key []byte) string {
	if isPrintable(key) {
		return string(key)
	}

	if name, ok := devAccountNames[hex.EncodeToString(key)]; ok {
		return name
	}

	return common.BytesToHex(key)
}

func isPrintable(b []byte) bool {
	if len(b) == 0 || !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
