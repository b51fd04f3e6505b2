// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"fmt"
	"strings"
	"time"
)

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.settings.level {
		return
	}

	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}

	var line strings.Builder
	if l.settings.timestamps {
		line.WriteString(time.Now().Format(time.RFC3339))
		line.WriteByte(' ')
	}

	if l.settings.colour {
		line.WriteString(level.ColouredString())
	} else {
		line.WriteString(level.String())
	}
	line.WriteByte(' ')
	line.WriteString(message)

	for i, field := range l.settings.context {
		separator := byte(' ')
		if i == 0 {
			separator = '\t'
		}
		line.WriteByte(separator)
		line.WriteString(field.key + "=" + field.value)
	}
	line.WriteByte('\n')

	l.mutex.Lock()
	defer l.mutex.Unlock()
	_, _ = l.settings.writer.Write([]byte(line.String()))
}

// Trace logs at the trace level.
func (l *Logger) Trace(s string) { l.log(Trace, s) }

// Debug logs at the debug level.
func (l *Logger) Debug(s string) { l.log(Debug, s) }

// Info logs at the info level.
func (l *Logger) Info(s string) { l.log(Info, s) }

// Warn logs at the warn level.
func (l *Logger) Warn(s string) { l.log(Warn, s) }

// Error logs at the error level.
func (l *Logger) Error(s string) { l.log(Error, s) }

// Critical logs at the critical level.
func (l *Logger) Critical(s string) { l.log(Critical, s) }

func (l *Logger) Tracef(format string, args ...interface{}) { l.log(Trace, format, args...) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(Debug, format, args...) }

func (l *Logger) Infof(format string, args ...interface{}) { l.log(Info, format, args...) }

func (l *Logger) Warnf(format string, args ...interface{}) { l.log(Warn, format, args...) }

func (l *Logger) Errorf(format string, args ...interface{}) { l.log(Error, format, args...) }

func (l *Logger) Criticalf(format string, args ...interface{}) { l.log(Critical, format, args...) }
