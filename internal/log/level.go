// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color" //nolint:misspell
)

// Level is the severity of a log line.
type Level uint8

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Critical
)

var levelNames = [...]string{
	Trace:    "TRCE",
	Debug:    "DBUG",
	Info:     "INFO",
	Warn:     "WARN",
	Error:    "EROR",
	Critical: "CRIT",
}

var levelColours = [...]color.Attribute{
	Trace:    color.FgHiCyan,
	Debug:    color.FgHiBlue,
	Info:     color.FgCyan,
	Warn:     color.FgYellow,
	Error:    color.FgHiRed,
	Critical: color.FgRed,
}

// String returns the four letters name of the level.
func (level Level) String() string {
	if int(level) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", level)
	}
	return levelNames[level]
}

// ColouredString returns the level name coloured for a terminal.
func (level Level) ColouredString() string {
	if int(level) >= len(levelColours) {
		return level.String()
	}
	return color.New(levelColours[level]).Sprint(level.String())
}

var ErrLevelNotRecognised = errors.New("level is not recognised")

var levelAliases = map[string]Level{
	"all":      Trace,
	"trace":    Trace,
	"debug":    Debug,
	"warning":  Warn,
	"error":    Error,
	"critical": Critical,
}

// ParseLevel parses a level from its four letters name, its
// full name or the "all" alias of trace, ignoring case.
func ParseLevel(s string) (level Level, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if aliased, ok := levelAliases[s]; ok {
		return aliased, nil
	}

	for i, name := range levelNames {
		if strings.ToLower(name) == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrLevelNotRecognised, s)
}
