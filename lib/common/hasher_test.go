// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common_test

import (
	"testing"

	"github.com/ChainSafe/ssi/lib/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlake2b128_EmptyHash(t *testing.T) {
	// see https://github.com/paritytech/substrate/blob/master/core/primitives/src/hashing.rs
	h, err := common.Blake2b128([]byte{})
	require.NoError(t, err)

	expected := common.MustHexToBytes("0xcae66941d9efbd404e4d88758ea67670")
	require.Equal(t, expected, h)
}

func TestBlake2b128(t *testing.T) {
	h, err := common.Blake2b128([]byte("static"))
	require.NoError(t, err)

	expected := common.MustHexToBytes("0x440973e4e50902f1d0ec97de357eb2fd")
	require.Equal(t, expected, h)
}

func TestBlake2bHash_EmptyHash(t *testing.T) {
	h, err := common.Blake2bHash([]byte{})
	require.NoError(t, err)

	expected := common.MustHexToHash("0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8")
	require.Equal(t, expected, h)
}

func Test_Twox(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		hash     func([]byte) []byte
		in       string
		expected string
	}{
		"twox128_system": {
			hash:     common.Twox128,
			in:       "System",
			expected: "0x26aa394eea5630e07c48ae0c9558cef7",
		},
		"twox128_account": {
			hash:     common.Twox128,
			in:       "Account",
			expected: "0xb99d880ec681799c0cf30e8886371da9",
		},
		"twox128_timestamp": {
			hash:     common.Twox128,
			in:       "Timestamp",
			expected: "0xf0c365c3cf59d671eb72da0e7a4113c4",
		},
		"twox64_eve": {
			hash:     common.Twox64,
			in:       "//Eve",
			expected: "0x3fe5e3a3f34ce9df",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			hash := testCase.hash([]byte(testCase.in))
			assert.Equal(t, testCase.expected, common.BytesToHex(hash))
		})
	}
}

func Test_Twox256(t *testing.T) {
	t.Parallel()

	hash := common.Twox256([]byte("System"))
	assert.Equal(t, common.Twox128([]byte("System")), hash[:16])
}
