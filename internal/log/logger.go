// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package log is a levelled line logger writing to a single writer.
package log

import (
	"io"
	"os"
	"sync"
)

// Logger is safe for concurrent use, including between a logger
// and its child loggers.
type Logger struct {
	settings settings
	mutex    *sync.Mutex // shared with child loggers
}

type settings struct {
	writer     io.Writer
	level      Level
	colour     bool
	timestamps bool
	context    []contextField
}

type contextField struct {
	key   string
	value string
}

// New creates a logger writing to os.Stderr at the info level
// with timestamps, unless options say otherwise.
func New(options ...Option) *Logger {
	s := settings{
		writer:     os.Stderr,
		level:      Info,
		timestamps: true,
	}
	s.apply(options)

	return &Logger{
		settings: s,
		mutex:    new(sync.Mutex),
	}
}

// New creates a child logger with the settings of the logger modified
// by the options given. Context fields are added to the parent ones.
func (l *Logger) New(options ...Option) *Logger {
	s := l.settings
	s.context = append([]contextField(nil), l.settings.context...)
	s.apply(options)

	return &Logger{
		settings: s,
		mutex:    l.mutex,
	}
}

func (s *settings) apply(options []Option) {
	for _, option := range options {
		option(s)
	}
}
