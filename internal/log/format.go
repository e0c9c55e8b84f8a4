// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

// Format is the format of the logs.
type Format uint8

const (
	// FormatConsole is the console format, with the level coloured.
	FormatConsole Format = iota
	// FormatPlain is the console format without colours, used
	// when writing to files or pipes.
	FormatPlain
)
