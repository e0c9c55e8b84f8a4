// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/big"
)

// EncodeCompact returns the compact encoding of a non negative integer.
func EncodeCompact(i *big.Int) ([]byte, error) {
	var es encodeState
	err := es.encodeBigInt(i)
	if err != nil {
		return nil, err
	}
	return es.Bytes(), nil
}

// EncodeCompactUint returns the compact encoding of i.
func EncodeCompactUint(i uint64) []byte {
	var es encodeState
	es.encodeUint(i)
	return es.Bytes()
}

// DecodeCompact reads a compact integer of any width from r.
func DecodeCompact(r io.Reader) (*big.Int, error) {
	first, err := readByte(r)
	if err != nil {
		return nil, err
	}

	switch first & 0b11 {
	case 0b00, 0b01, 0b10:
		u, err := decodeSmallCompact(r, first)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(u), nil
	default:
		n := int(first>>2) + 4
		buf := make([]byte, n)
		_, err = io.ReadFull(r, buf)
		if err != nil {
			return nil, fmt.Errorf("reading %d compact bytes: %w", n, unexpectedEOF(err))
		}
		return new(big.Int).SetBytes(reverseBytes(buf)), nil
	}
}

// DecodeCompactUint reads a compact integer that must fit in 64 bits.
func DecodeCompactUint(r io.Reader) (uint64, error) {
	first, err := readByte(r)
	if err != nil {
		return 0, err
	}

	if first&0b11 != 0b11 {
		return decodeSmallCompact(r, first)
	}

	n := int(first>>2) + 4
	if n > 8 {
		return 0, fmt.Errorf("%w: compact of %d bytes into 64 bits", ErrDecodeOverflow, n)
	}
	buf := make([]byte, 8)
	_, err = io.ReadFull(r, buf[:n])
	if err != nil {
		return 0, fmt.Errorf("reading %d compact bytes: %w", n, unexpectedEOF(err))
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// CompactLength returns the total encoded length of a compact integer
// given its first byte.
func CompactLength(first byte) int {
	switch first & 0b11 {
	case 0b00:
		return 1
	case 0b01:
		return 2
	case 0b10:
		return 4
	default:
		return int(first>>2) + 5
	}
}

func decodeSmallCompact(r io.Reader, first byte) (uint64, error) {
	switch first & 0b11 {
	case 0b00:
		return uint64(first >> 2), nil
	case 0b01:
		next, err := readByte(r)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16([]byte{first, next}) >> 2), nil
	default:
		buf := []byte{first, 0, 0, 0}
		_, err := io.ReadFull(r, buf[1:])
		if err != nil {
			return 0, fmt.Errorf("reading compact: %w", unexpectedEOF(err))
		}
		return uint64(binary.LittleEndian.Uint32(buf) >> 2), nil
	}
}

func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		b, err := br.ReadByte()
		if err != nil {
			return 0, unexpectedEOF(err)
		}
		return b, nil
	}

	var buf [1]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, unexpectedEOF(err)
	}
	return buf[0], nil
}

// unexpectedEOF turns a clean EOF in the middle of a value into
// io.ErrUnexpectedEOF.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// compactFitsInt reports whether a decoded compact fits in a Go int.
func compactFitsInt(u uint64) bool {
	return u <= math.MaxInt
}
