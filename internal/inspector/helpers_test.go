// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package inspector

import (
	"io"
	"testing"

	"github.com/ChainSafe/ssi/internal/log"
	"github.com/ChainSafe/ssi/internal/metrics"
)

const longValue = "0123456789012345678901234567890123456789"

// testKeyValues is a trie with two inline leaves
// under a branch and a stored leaf.
var testKeyValues = map[string][]byte{
	"\x12\x34": []byte("one"),
	"\x12\x35": []byte("two"),
	"\x56\x78": []byte(longValue),
}

func newTestLogger(t *testing.T) Logger {
	t.Helper()
	return log.New(log.SetWriter(io.Discard))
}

func newTestMetrics(t *testing.T) Metrics {
	t.Helper()
	return metrics.NewNoop()
}
