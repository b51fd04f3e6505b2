// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChainSafe/ssi/internal/inspector"
	"github.com/ChainSafe/ssi/lib/common"
	"github.com/ChainSafe/ssi/lib/storagekey"
	"github.com/spf13/cobra"
)

// Key and walk flag names.
const (
	storageKeyFlag     = "storage-key"
	palletFlag         = "pallet"
	fieldFlag          = "field"
	twox64ConcatFlag   = "twox-64-cat"
	blake2ConcatFlag   = "blk2-128-cat"
	identityFlag       = "id"
	hasherFlag         = "hasher"
	twox64Concat2Flag  = "twox-64-cat-2"
	blake2Concat2Flag  = "blk2-128-cat-2"
	identity2Flag      = "id-2"
	hasher2Flag        = "hasher-2"
	rootHashFlag       = "root-hash"
	diffRootHashFlag   = "diff-root-hash"
	exactlyFlag        = "exactly"
	allNodeFlag        = "all-node"
	summarizeFlag      = "summarize"
)

const hasherFlagSeparator = ":"

var ErrHasherFlagMalformed = errors.New("hasher flag is malformed")

// mapKeyFlags are the flags setting one map key of a storage key,
// at most one of them can be set.
type mapKeyFlags struct {
	twox64Concat string
	blake2Concat string
	identity     string
	hasher       string
}

func addKeyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP(storageKeyFlag, "k", "", "hex encoded storage key or storage key prefix")
	flags.StringP(palletFlag, "P", "", "pallet name")
	flags.StringP(fieldFlag, "F", "", "storage field name")
	flags.StringP(twox64ConcatFlag, "T", "", "first map key hashed with Twox64Concat")
	flags.StringP(blake2ConcatFlag, "B", "", "first map key hashed with Blake2_128Concat")
	flags.StringP(identityFlag, "I", "", "first map key hashed with Identity")
	flags.String(hasherFlag, "", "first map key as hasher:key, for example Blake2_256:key")
	flags.StringP(twox64Concat2Flag, "t", "", "second map key hashed with Twox64Concat")
	flags.StringP(blake2Concat2Flag, "b", "", "second map key hashed with Blake2_128Concat")
	flags.StringP(identity2Flag, "i", "", "second map key hashed with Identity")
	flags.String(hasher2Flag, "", "second map key as hasher:key")

	cmd.MarkFlagsMutuallyExclusive(storageKeyFlag, palletFlag)
	cmd.MarkFlagsMutuallyExclusive(twox64ConcatFlag, blake2ConcatFlag, identityFlag, hasherFlag)
	cmd.MarkFlagsMutuallyExclusive(twox64Concat2Flag, blake2Concat2Flag, identity2Flag, hasher2Flag)
}

func addWalkFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolP(exactlyFlag, "e", false, "only return the node found at the storage key, without its children")
	flags.BoolP(allNodeFlag, "a", false, "return branch node values as well as leaf values")
	flags.BoolP(summarizeFlag, "s", false, "summarize entries with value hashes and decoded names")
}

// getStorageKey returns the lower case hex storage key given by the
// --storage-key flag or built from the pallet, field and map key flags.
func getStorageKey(cmd *cobra.Command) (key string, err error) {
	flags := cmd.Flags()
	storageKey, err := flags.GetString(storageKeyFlag)
	if err != nil {
		return "", fmt.Errorf("getting --%s: %w", storageKeyFlag, err)
	}

	request, err := getKeyRequest(cmd)
	if err != nil {
		return "", err
	}

	return inspector.ResolveKey(storageKey, request)
}

// getKeyRequest returns nil if the --pallet flag is not set.
func getKeyRequest(cmd *cobra.Command) (request *storagekey.KeyRequest, err error) {
	flags := cmd.Flags()
	pallet, err := flags.GetString(palletFlag)
	if err != nil {
		return nil, fmt.Errorf("getting --%s: %w", palletFlag, err)
	}

	field, err := flags.GetString(fieldFlag)
	if err != nil {
		return nil, fmt.Errorf("getting --%s: %w", fieldFlag, err)
	}

	first, err := getMapKey(cmd, twox64ConcatFlag, blake2ConcatFlag, identityFlag, hasherFlag)
	if err != nil {
		return nil, fmt.Errorf("first map key: %w", err)
	}

	second, err := getMapKey(cmd, twox64Concat2Flag, blake2Concat2Flag, identity2Flag, hasher2Flag)
	if err != nil {
		return nil, fmt.Errorf("second map key: %w", err)
	}

	if pallet == "" && field == "" && first == nil && second == nil {
		return nil, nil
	}

	return &storagekey.KeyRequest{
		Pallet: pallet,
		Field:  field,
		First:  first,
		Second: second,
	}, nil
}

func getMapKey(cmd *cobra.Command, twox64ConcatName, blake2ConcatName,
	identityName, hasherName string) (mapKey *storagekey.MapKey, err error) {
	flags := cmd.Flags()
	hashers := map[string]storagekey.Hasher{
		twox64ConcatName: storagekey.Twox64Concat,
		blake2ConcatName: storagekey.Blake2_128Concat,
		identityName:     storagekey.Identity,
	}
	for _, name := range [...]string{twox64ConcatName, blake2ConcatName, identityName} {
		if !flags.Changed(name) {
			continue
		}
		key, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("getting --%s: %w", name, err)
		}
		return &storagekey.MapKey{Hasher: hashers[name], Key: key}, nil
	}

	if !flags.Changed(hasherName) {
		return nil, nil
	}

	value, err := flags.GetString(hasherName)
	if err != nil {
		return nil, fmt.Errorf("getting --%s: %w", hasherName, err)
	}

	return parseHasherFlag(value)
}

// parseHasherFlag parses a map key given as hasher:key.
func parseHasherFlag(value string) (mapKey *storagekey.MapKey, err error) {
	hasherName, key, found := strings.Cut(value, hasherFlagSeparator)
	if !found {
		return nil, fmt.Errorf("%w: %q does not match hasher%skey",
			ErrHasherFlagMalformed, value, hasherFlagSeparator)
	}

	hasher, err := storagekey.ParseHasher(hasherName)
	if err != nil {
		return nil, err
	}

	return &storagekey.MapKey{Hasher: hasher, Key: key}, nil
}

func getQuery(cmd *cobra.Command) (query inspector.Query, err error) {
	flags := cmd.Flags()
	rootHash, err := flags.GetString(rootHashFlag)
	if err != nil {
		return query, fmt.Errorf("getting --%s: %w", rootHashFlag, err)
	}

	query.Root, err = common.HexToHash(rootHash)
	if err != nil {
		return query, fmt.Errorf("parsing --%s: %w", rootHashFlag, err)
	}

	query.Key, err = getStorageKey(cmd)
	if err != nil {
		return query, err
	}

	exactly, err := flags.GetBool(exactlyFlag)
	if err != nil {
		return query, fmt.Errorf("getting --%s: %w", exactlyFlag, err)
	}

	allNode, err := flags.GetBool(allNodeFlag)
	if err != nil {
		return query, fmt.Errorf("getting --%s: %w", allNodeFlag, err)
	}

	query.IncludeChildren = !exactly
	query.LeafOnly = !allNode
	return query, nil
}
