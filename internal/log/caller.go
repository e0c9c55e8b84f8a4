// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strconv"
)

// callerString returns the file:Lline of the caller at the given depth.
func callerString(depth int) string {
	_, file, line, ok := runtime.Caller(depth)
	if !ok {
		return "unknown"
	}
	return filepath.Base(file) + ":L" + strconv.Itoa(line)
}
