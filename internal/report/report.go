// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package report renders harvested subtrie entries
// and subtrie differences.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ChainSafe/ssi/internal/trie/diff"
	"github.com/ChainSafe/ssi/internal/trie/walker"
	"github.com/ChainSafe/ssi/lib/common"
	"github.com/ChainSafe/ssi/lib/storagekey"
	"github.com/qdm12/gotree"
)

// Format is an output format.
type Format string

const (
	// JSON writes a single JSON array.
	JSON Format = "json"
	// Lines writes one JSON object per line.
	Lines Format = "lines"
	// Tree writes a tree of the entries.
	Tree Format = "tree"
)

var ErrFormatUnknown = errors.New("output format is unknown")

// ParseFormat parses an output format, defaulting to JSON if empty.
func ParseFormat(s string) (format Format, err error) {
	switch Format(strings.ToLower(s)) {
	case JSON, "":
		return JSON, nil
	case Lines:
		return Lines, nil
	case Tree:
		return Tree, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrFormatUnknown, s)
	}
}

// Reporter writes inspection and diff results.
type Reporter struct {
	writer    io.Writer
	format    Format
	summarize bool
	// prefix is the requested storage key, trimmed from
	// entry paths to get their subtrie path.
	prefix string
}

// New creates a reporter writing to writer. If summarize is true,
// entries are summarized and their path semantically decoded.
func New(writer io.Writer, format Format, summarize bool, prefix string) *Reporter {
	return &Reporter{
		writer:    writer,
		format:    format,
		summarize: summarize,
		prefix:    prefix,
	}
}

// Inspect writes the entries harvested from a subtrie.
func (r *Reporter) Inspect(entries []walker.Entry) (err error) {
	if r.format == Tree {
		return r.writeTree(inspectTree(entries, r.prefix, r.summarize))
	}

	records := make([]any, len(entries))
	for i, entry := range entries {
		if r.summarize {
			records[i] = map[string]inspectSummary{
				"0x" + entry.Path: r.summarizeEntry(entry),
			}
			continue
		}
		records[i] = map[string]numbers{entry.Path: entry.Data}
	}
	return r.writeRecords(records)
}

// Diff writes the differences between two subtries.
func (r *Reporter) Diff(entries []diff.Entry) (err error) {
	if r.format == Tree {
		return r.writeTree(diffTree(entries, r.prefix, r.summarize))
	}

	records := make([]any, len(entries))
	for i, entry := range entries {
		if r.summarize {
			records[i] = map[string]diffSummary{
				"0x" + entry.Path: r.summarizeDiff(entry),
			}
			continue
		}
		records[i] = map[string][]int16{entry.Path: entry.Codes}
	}
	return r.writeRecords(records)
}

func (r *Reporter) writeRecords(records []any) (err error) {
	encoder := json.NewEncoder(r.writer)
	encoder.SetEscapeHTML(false)

	if r.format != Lines {
		err = encoder.Encode(records)
		if err != nil {
			return fmt.Errorf("encoding records: %w", err)
		}
		return nil
	}

	for _, record := range records {
		err = encoder.Encode(record)
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
	}
	return nil
}

func (r *Reporter) writeTree(tree *gotree.Node) (err error) {
	_, err = fmt.Fprintln(r.writer, tree.String())
	if err != nil {
		return fmt.Errorf("writing tree: %w", err)
	}
	return nil
}

type names struct {
	SubtriePath string `json:"subtrie_path"`
	Pallet      string `json:"pallet"`
	Field       string `json:"field"`
	Key         string `json:"key"`
}

type inspectSummary struct {
	Hash   string `json:"hash"`
	Length int    `json:"length"`
	Leaf   bool   `json:"leaf"`
	names
}

type diffSummary struct {
	Length       int         `json:"length"`
	ChangeLength int         `json:"change_length"`
	Status       diff.Status `json:"status"`
	names
}

func (r *Reporter) summarizeEntry(entry walker.Entry) inspectSummary {
	return inspectSummary{
		Hash:   valueHash(entry.Data),
		Length: len(entry.Data),
		Leaf:   entry.Leaf,
		names:  r.namesOf(entry.Path),
	}
}

func (r *Reporter) summarizeDiff(entry diff.Entry) diffSummary {
	return diffSummary{
		Length:       len(entry.Codes),
		ChangeLength: entry.ChangeLength(),
		Status:       entry.Status,
		names:        r.namesOf(entry.Path),
	}
}

func (r *Reporter) namesOf(path string) names {
	decoded := storagekey.SemanticDecode(path, false)
	return names{
		SubtriePath: strings.TrimPrefix(path, r.prefix),
		Pallet:      deref(decoded.Pallet),
		Field:       deref(decoded.Field),
		Key:         deref(decoded.Key),
	}
}

// valueHash returns a 32 bytes value as is, since it is usually a
// hash already, and the blake2b 256 hash of any other value.
func valueHash(value []byte) string {
	if len(value) == common.HashLength {
		return common.BytesToHex(value)
	}
	return common.MustBlake2bHash(value).String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// numbers is a byte slice encoded as a JSON array of numbers.
type numbers []byte

func (n numbers) MarshalJSON() ([]byte, error) {
	var builder strings.Builder
	builder.WriteByte('[')
	for i, b := range n {
		if i > 0 {
			builder.WriteByte(',')
		}
		fmt.Fprintf(&builder, "%d", b)
	}
	builder.WriteByte(']')
	return []byte(builder.String()), nil
}
