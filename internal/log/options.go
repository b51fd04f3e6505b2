// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
)

// Option modifies the settings of a logger.
type Option func(s *settings)

// SetLevel sets the minimum level logged.
func SetLevel(level Level) Option {
	return func(s *settings) {
		s.level = level
	}
}

// SetColour enables or disables colouring the level of log lines.
func SetColour(enabled bool) Option {
	return func(s *settings) {
		s.colour = enabled
	}
}

// SetTimestamps enables or disables the RFC3339 timestamp
// prefixing log lines.
func SetTimestamps(enabled bool) Option {
	return func(s *settings) {
		s.timestamps = enabled
	}
}

// SetWriter sets the writer log lines are written to.
func SetWriter(writer io.Writer) Option {
	return func(s *settings) {
		s.writer = writer
	}
}

// AddContext appends a key=value field to every log line.
// A key already set gets its value replaced.
func AddContext(key, value string) Option {
	return func(s *settings) {
		for i, field := range s.context {
			if field.key == key {
				s.context[i].value = value
				return
			}
		}
		s.context = append(s.context, contextField{key: key, value: value})
	}
}
