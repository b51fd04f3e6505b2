// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storagekey

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPalletRequired   = errors.New("pallet name is required")
	ErrFieldRequired    = errors.New("field name is required for a map key")
	ErrFirstKeyRequired = errors.New("first map key is required for a second map key")
)

// MapKey is a storage map key with the hasher used to hash it.
type MapKey struct {
	Hasher Hasher
	// Key is the cleartext key. A 0x prefixed valid hex
	// string is decoded and hashed as bytes.
	Key string
}

// KeyRequest describes a storage key using names.
type KeyRequest struct {
	Pallet string
	Field  string
	First  *MapKey
	Second *MapKey
}

// Build returns the lower case hex storage key, without 0x prefix,
// for the request.
func (r KeyRequest) Build() (key string, err error) {
	switch {
	case r.Pallet == "":
		return "", ErrPalletRequired
	case r.First != nil && r.Field == "":
		return "", fmt.Errorf("%w: %s", ErrFieldRequired, r.First.Hasher)
	case r.Second != nil && r.First == nil:
		return "", fmt.Errorf("%w: %s", ErrFirstKeyRequired, r.Second.Hasher)
	}

	var builder strings.Builder
	builder.WriteString(ConcatEncode(Twox128, r.Pallet))

	if r.Field != "" {
		builder.WriteString(ConcatEncode(Twox128, r.Field))
	}

	for _, mapKey := range [...]*MapKey{r.First, r.Second} {
		if mapKey == nil {
			break
		}
		hashed := mapKey.Hasher.Hash(mapKey.bytes())
		builder.WriteString(hex.EncodeToString(hashed))
	}

	return builder.String(), nil
}

func (k MapKey) bytes() []byte {
	if strings.HasPrefix(k.Key, "0x") {
		decoded, err := hex.DecodeString(k.Key[2:])
		if err == nil {
			return decoded
		}
	}
	return []byte(k.Key)
}
