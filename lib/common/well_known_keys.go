// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

var (
	// CodeKey is the key where runtime code is stored in the trie
	CodeKey = []byte(":code")

	// HeapPagesKey is the key holding the number of runtime heap pages
	HeapPagesKey = []byte(":heappages")

	// ExtrinsicIndexKey is the key of the index of the extrinsic being applied
	ExtrinsicIndexKey = []byte(":extrinsic_index")

	// IntraBlockEntropyKey is the key of the entropy of the current block
	IntraBlockEntropyKey = []byte(":intrablock_entropy")

	// ChildStorageKeyPrefix prefixes the keys of default child tries in the main trie
	ChildStorageKeyPrefix = []byte(":child_storage:default:")

	// UpgradedToDualRefKey is set to true (0x01) if the account format has been upgraded to v0.9
	// it's set to empty or false (0x00) otherwise
	UpgradedToDualRefKey = MustHexToBytes("0x26aa394eea5630e07c48ae0c9558cef7c21aab032aaa6e946ca50ad39ab66603")
)
