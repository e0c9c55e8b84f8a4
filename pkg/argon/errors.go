// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "errors"

// ErrInvalidDataDomain is returned when parsing a malformed data domain.
var ErrInvalidDataDomain = errors.New("invalid data domain")
