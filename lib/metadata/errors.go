// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metadata

import "errors"

var (
	ErrInvalidMagic       = errors.New("invalid metadata magic number")
	ErrUnsupportedVersion = errors.New("unsupported metadata version")
	ErrNotFound           = errors.New("not found in metadata")
	ErrTypeNotFound       = errors.New("type not found in registry")
	ErrUnknownTypeDef     = errors.New("unknown type definition")
	ErrUnknownPrimitive   = errors.New("unknown primitive")
	ErrUnknownVariant     = errors.New("unknown variant index")
	ErrRecursionLimit     = errors.New("type recursion limit reached")
)
