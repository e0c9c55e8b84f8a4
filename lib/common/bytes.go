// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrNoPrefix = errors.New("could not byteify non 0x prefixed string")

// HexToBytes turns a 0x prefixed hex string into a byte slice.
func HexToBytes(in string) ([]byte, error) {
	if !strings.HasPrefix(in, "0x") {
		return nil, fmt.Errorf("%w: %q", ErrNoPrefix, in)
	}

	in = in[2:]
	// a single leading zero nibble may be omitted by some encoders
	if len(in)%2 == 1 {
		in = "0" + in
	}

	out, err := hex.DecodeString(in)
	if err != nil {
		return nil, fmt.Errorf("decoding hex: %w", err)
	}
	return out, nil
}

// MustHexToBytes turns a 0x prefixed hex string into a byte slice.
// It panics if the string is not valid hex.
func MustHexToBytes(in string) []byte {
	out, err := HexToBytes(in)
	if err != nil {
		panic(err)
	}
	return out
}

// BytesToHex turns a byte slice into a 0x prefixed hex string.
func BytesToHex(in []byte) string {
	return "0x" + hex.EncodeToString(in)
}

// Concat returns a new slice made of all the given slices.
func Concat(parts ...[]byte) []byte {
	size := 0
	for _, part := range parts {
		size += len(part)
	}

	out := make([]byte, 0, size)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}
