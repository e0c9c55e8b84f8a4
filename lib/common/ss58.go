// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

const (
	// GenericSS58Prefix is the generic substrate address format.
	GenericSS58Prefix uint16 = 42

	ss58ChecksumLength = 2
	publicKeyLength    = 32
	maxSS58Prefix      = 16383
)

var ss58Preamble = []byte("SS58PRE")

var (
	ErrSS58Checksum = errors.New("invalid ss58 checksum")
	ErrSS58Length   = errors.New("invalid ss58 address length")
	ErrSS58Prefix   = errors.New("invalid ss58 prefix")
)

// EncodeSS58 encodes a 32 byte public key into an SS58 address
// for the given network prefix.
func EncodeSS58(pub [32]byte, prefix uint16) (string, error) {
	prefixBytes, err := encodeSS58Prefix(prefix)
	if err != nil {
		return "", err
	}

	payload := append(prefixBytes, pub[:]...)
	checksum := ss58Checksum(payload)
	return base58.Encode(append(payload, checksum[:ss58ChecksumLength]...)), nil
}

// MustEncodeSS58 panics if EncodeSS58 fails.
func MustEncodeSS58(pub [32]byte, prefix uint16) string {
	address, err := EncodeSS58(pub, prefix)
	if err != nil {
		panic(err)
	}
	return address
}

// DecodeSS58 decodes an SS58 address into its public key and network prefix.
func DecodeSS58(address string) (pub [32]byte, prefix uint16, err error) {
	decoded := base58.Decode(address)
	if len(decoded) == 0 {
		return pub, 0, fmt.Errorf("%w: not base58: %q", ErrSS58Length, address)
	}

	prefixLength := 1
	switch {
	case decoded[0] < 64:
		prefix = uint16(decoded[0])
	case decoded[0] < 128:
		if len(decoded) < 2 {
			return pub, 0, fmt.Errorf("%w: %d bytes", ErrSS58Length, len(decoded))
		}
		prefixLength = 2
		lower := (decoded[0]<<2)&0b11111100 | decoded[1]>>6
		upper := decoded[1] & 0b00111111
		prefix = uint16(lower) | uint16(upper)<<8
	default:
		return pub, 0, fmt.Errorf("%w: first byte %d", ErrSS58Prefix, decoded[0])
	}

	expectedLength := prefixLength + publicKeyLength + ss58ChecksumLength
	if len(decoded) != expectedLength {
		return pub, 0, fmt.Errorf("%w: %d bytes instead of %d",
			ErrSS58Length, len(decoded), expectedLength)
	}

	payload := decoded[:prefixLength+publicKeyLength]
	checksum := ss58Checksum(payload)
	if !bytes.Equal(checksum[:ss58ChecksumLength], decoded[prefixLength+publicKeyLength:]) {
		return pub, 0, fmt.Errorf("%w: for address %s", ErrSS58Checksum, address)
	}

	copy(pub[:], payload[prefixLength:])
	return pub, prefix, nil
}

func encodeSS58Prefix(prefix uint16) ([]byte, error) {
	switch {
	case prefix < 64:
		return []byte{byte(prefix)}, nil
	case prefix <= maxSS58Prefix:
		// two byte form: 0b01 marker then the 14 bit prefix split over both bytes
		first := byte(((prefix & 0b0000_0000_1111_1100) >> 2) | 0b0100_0000)
		second := byte((prefix >> 8) | ((prefix & 0b0000_0000_0000_0011) << 6))
		return []byte{first, second}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrSS58Prefix, prefix)
	}
}

func ss58Checksum(payload []byte) []byte {
	return Blake2b512(Concat(ss58Preamble, payload))
}
