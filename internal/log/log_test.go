// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color" //nolint:misspell
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Logger_log(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		options []Option
		log     func(logger *Logger)
		output  string
	}{
		"trace_logged_at_trace": {
			options: []Option{SetLevel(Trace)},
			log:     func(logger *Logger) { logger.Trace("some words") },
			output:  "TRCE some words\n",
		},
		"trace_dropped_at_debug": {
			options: []Option{SetLevel(Debug)},
			log:     func(logger *Logger) { logger.Trace("some words") },
		},
		"debug_logged_at_trace": {
			options: []Option{SetLevel(Trace)},
			log:     func(logger *Logger) { logger.Debug("some words") },
			output:  "DBUG some words\n",
		},
		"info_by_default": {
			log: func(logger *Logger) {
				logger.Debug("dropped")
				logger.Info("kept")
			},
			output: "INFO kept\n",
		},
		"format": {
			log:    func(logger *Logger) { logger.Warnf("some %s %d", "words", 2) },
			output: "WARN some words 2\n",
		},
		"percent_without_args": {
			log:    func(logger *Logger) { logger.Error("100%") },
			output: "EROR 100%\n",
		},
		"context": {
			options: []Option{AddContext("cmd", "inspect"), AddContext("db", "pebble")},
			log:     func(logger *Logger) { logger.Critical("down") },
			output:  "CRIT down\tcmd=inspect db=pebble\n",
		},
		"context_replaced": {
			options: []Option{AddContext("cmd", "inspect"), AddContext("cmd", "diff")},
			log:     func(logger *Logger) { logger.Info("words") },
			output:  "INFO words\tcmd=diff\n",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buffer := bytes.NewBuffer(nil)
			options := append([]Option{SetWriter(buffer), SetTimestamps(false)},
				testCase.options...)
			logger := New(options...)

			testCase.log(logger)

			assert.Equal(t, testCase.output, buffer.String())
		})
	}
}

func Test_Logger_log_timestamp(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	logger := New(SetWriter(buffer))

	logger.Info("some words")

	rfc3339 := `^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(Z|[+-][0-9]{2}:[0-9]{2}) `
	assert.Regexp(t, regexp.MustCompile(rfc3339+"INFO some words\n$"), buffer.String())
}

func Test_Logger_log_colour(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	logger := New(SetWriter(buffer), SetTimestamps(false), SetColour(true))

	logger.Warn("some words")

	assert.Equal(t, Warn.ColouredString()+" some words\n", buffer.String())
}

func Test_Logger_New(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	parent := New(SetWriter(buffer), SetTimestamps(false), AddContext("cmd", "inspect"))
	child := parent.New(SetLevel(Debug), AddContext("namespace", "col0"))

	parent.Debug("dropped")
	child.Debug("kept")
	parent.Info("parent")

	assert.Equal(t, "DBUG kept\tcmd=inspect namespace=col0\n"+
		"INFO parent\tcmd=inspect\n", buffer.String())
	assert.Same(t, parent.mutex, child.mutex)
}

func Test_Logger_concurrent(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	parent := New(SetWriter(buffer), SetTimestamps(false))
	child := parent.New()

	const workers = 10
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		logger := parent
		if i%2 == 1 {
			logger = child
		}
		go func(i int) {
			defer wg.Done()
			logger.Infof("worker %d", i)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	require.Len(t, lines, workers)
	for i := 0; i < workers; i++ {
		assert.Contains(t, lines, fmt.Sprintf("INFO worker %d", i))
	}
}

func Test_Level_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CRIT", Critical.String())
	assert.Equal(t, "Level(9)", Level(9).String())
	assert.Equal(t, "Level(9)", Level(9).ColouredString())
	assert.Equal(t, color.New(color.FgYellow).Sprint("WARN"), Warn.ColouredString())
}

func Test_ParseLevel(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		s          string
		level      Level
		errWrapped error
		errMessage string
	}{
		"all":        {s: "all", level: Trace},
		"short_name": {s: "dbug", level: Debug},
		"long_name":  {s: "debug", level: Debug},
		"upper_case": {s: " INFO ", level: Info},
		"warning":    {s: "warning", level: Warn},
		"crit":       {s: "crit", level: Critical},
		"critical":   {s: "critical", level: Critical},
		"unknown": {
			s:          "verbose",
			errWrapped: ErrLevelNotRecognised,
			errMessage: "level is not recognised: verbose",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			level, err := ParseLevel(testCase.s)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.level, level)
		})
	}
}
