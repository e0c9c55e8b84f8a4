// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package httpserver

// Logger reports the server lifecycle.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}
