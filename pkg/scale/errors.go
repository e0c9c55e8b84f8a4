// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import "errors"

var (
	ErrUnsupportedType             = errors.New("unsupported type")
	ErrUnsupportedDestination      = errors.New("destination must be a non-nil pointer")
	ErrInvalidTag                  = errors.New("invalid scale tag")
	ErrDecodeOverflow              = errors.New("decoded value overflows destination")
	ErrInvalidBool                 = errors.New("invalid boolean byte")
	ErrInvalidOption               = errors.New("invalid option byte")
	ErrNegativeCompact             = errors.New("compact integers must not be negative")
	ErrUnknownVaryingDataTypeIndex = errors.New("unknown varying data type index")
	ErrVaryingDataTypeNotSet       = errors.New("varying data type value has not been set")
	ErrTrailingBytes               = errors.New("trailing bytes after decoding")
)
