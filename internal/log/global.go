// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

var globalLogger = New()

// NewFromGlobal creates a child logger from the global logger.
func NewFromGlobal(options ...Option) *Logger {
	return globalLogger.New(options...)
}

// Patch patches the global package logger and all its children.
func Patch(options ...Option) {
	globalLogger.Patch(options...)
}

// Info logs with the INFO level using the global logger.
func Info(s string) {
	globalLogger.log(LevelInfo, s)
}

// Warn logs with the WARN level using the global logger.
func Warn(s string) {
	globalLogger.log(LevelWarn, s)
}

// Errorf formats and logs at the ERROR level using the global logger.
func Errorf(format string, args ...interface{}) {
	globalLogger.log(LevelError, format, args...)
}
