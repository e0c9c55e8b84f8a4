// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"
)

// Uint128 represents an unsigned 128 bit integer.
type Uint128 struct {
	Upper uint64
	Lower uint64
}

// MaxUint128 is the maximum Uint128 value.
var MaxUint128 = Uint128{
	Upper: ^uint64(0),
	Lower: ^uint64(0),
}

var maxUint128Big = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// NewUint128 converts a non negative big integer to a Uint128.
func NewUint128(in *big.Int) (u Uint128, err error) {
	if in == nil {
		return u, fmt.Errorf("%w: nil *big.Int", ErrUnsupportedType)
	}
	if in.Sign() < 0 || in.Cmp(maxUint128Big) > 0 {
		return u, fmt.Errorf("%w: %s does not fit in 128 bits", ErrDecodeOverflow, in)
	}

	var buf [16]byte
	in.FillBytes(buf[:])
	return Uint128{
		Upper: binary.BigEndian.Uint64(buf[:8]),
		Lower: binary.BigEndian.Uint64(buf[8:]),
	}, nil
}

// MustNewUint128 panics if NewUint128 returns an error.
func MustNewUint128(in *big.Int) Uint128 {
	u, err := NewUint128(in)
	if err != nil {
		panic(err)
	}
	return u
}

// Uint128FromUint64 returns a Uint128 from a 64 bit value.
func Uint128FromUint64(v uint64) Uint128 {
	return Uint128{Lower: v}
}

// Bytes returns the 16 byte little endian representation.
func (u Uint128) Bytes() []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(b[:8], u.Lower)
	binary.LittleEndian.PutUint64(b[8:], u.Upper)
	return b
}

func uint128FromBytes(b []byte) Uint128 {
	return Uint128{
		Lower: binary.LittleEndian.Uint64(b[:8]),
		Upper: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// Big returns the value as a big integer.
func (u Uint128) Big() *big.Int {
	hi := new(big.Int).SetUint64(u.Upper)
	hi.Lsh(hi, 64)
	return hi.Or(hi, new(big.Int).SetUint64(u.Lower))
}

// IsZero returns true if the value is zero.
func (u Uint128) IsZero() bool {
	return u.Upper == 0 && u.Lower == 0
}

// Cmp returns 1 if u is greater than other, 0 if they are equal and -1 otherwise.
func (u Uint128) Cmp(other Uint128) int {
	switch {
	case u.Upper > other.Upper:
		return 1
	case u.Upper < other.Upper:
		return -1
	case u.Lower > other.Lower:
		return 1
	case u.Lower < other.Lower:
		return -1
	default:
		return 0
	}
}

func (u Uint128) String() string {
	return u.Big().String()
}

// MarshalJSON encodes the value as a decimal string.
func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON decodes the value from a decimal string or a JSON number.
func (u *Uint128) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		s = string(data)
	}

	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return fmt.Errorf("cannot parse %q as a 128 bit integer", s)
	}

	parsed, err := NewUint128(b)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Uint256 represents an unsigned 256 bit integer as four
// little endian 64 bit limbs.
type Uint256 struct {
	limbs [4]uint64
}

var maxUint256Big = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// NewUint256 converts a non negative big integer to a Uint256.
func NewUint256(in *big.Int) (u Uint256, err error) {
	if in == nil {
		return u, fmt.Errorf("%w: nil *big.Int", ErrUnsupportedType)
	}
	if in.Sign() < 0 || in.Cmp(maxUint256Big) > 0 {
		return u, fmt.Errorf("%w: %s does not fit in 256 bits", ErrDecodeOverflow, in)
	}

	var buf [32]byte
	in.FillBytes(buf[:])
	return uint256FromBytes(reverseBytes(buf[:])), nil
}

// Bytes returns the 32 byte little endian representation.
func (u Uint256) Bytes() []byte {
	b := make([]byte, 32)
	for i, limb := range u.limbs {
		binary.LittleEndian.PutUint64(b[i*8:], limb)
	}
	return b
}

func uint256FromBytes(b []byte) (u Uint256) {
	for i := range u.limbs {
		u.limbs[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return u
}

// Big returns the value as a big integer.
func (u Uint256) Big() *big.Int {
	return new(big.Int).SetBytes(reverseBytes(u.Bytes()))
}

func (u Uint256) String() string {
	return u.Big().String()
}
