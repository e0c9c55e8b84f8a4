// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

// VaryingDataType is analogous to a rust enum. It is encoded as the u8
// index of the set variant followed by the encoding of the variant value.
type VaryingDataType interface {
	// IndexValue returns the index and the value of the set variant.
	IndexValue() (index uint, value any, err error)
	// Value returns the value of the set variant.
	Value() (value any, err error)
	// ValueAt returns a zero value for the variant at the given index.
	ValueAt(index uint) (value any, err error)
	// SetValue sets the variant value.
	SetValue(value any) (err error)
}
