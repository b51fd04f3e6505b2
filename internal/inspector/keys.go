// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package inspector

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/ssi/internal/trie/nibble"
	"github.com/ChainSafe/ssi/lib/common"
	"github.com/ChainSafe/ssi/lib/storagekey"
)

var (
	ErrKeyConflict = errors.New("storage key and storage key names are mutually exclusive")
	ErrKeyMissing  = errors.New("storage key or pallet name is required")
)

// ResolveKey returns the lower case hex storage key, without 0x prefix,
// given either a hex storage key or a storage key request.
func ResolveKey(storageKey string, request *storagekey.KeyRequest) (key string, err error) {
	switch {
	case storageKey != "" && request != nil:
		return "", fmt.Errorf("%w", ErrKeyConflict)
	case request != nil:
		key, err = request.Build()
		if err != nil {
			return "", fmt.Errorf("building storage key: %w", err)
		}
		return key, nil
	case storageKey == "":
		return "", fmt.Errorf("%w", ErrKeyMissing)
	}

	key = common.TrimHexPrefix(storageKey)
	_, err = nibble.Parse(key)
	if err != nil {
		return "", fmt.Errorf("parsing storage key: %w", err)
	}
	return key, nil
}

// DecodeKey returns the names of the hex encoded storage key
// as "pallet > field > key", keeping unresolved parts as hex.
func DecodeKey(key string) string {
	return storagekey.SemanticDecode(key, true).String()
}
