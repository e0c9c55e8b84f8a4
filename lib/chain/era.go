// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"

	"github.com/ChainSafe/argon-client/pkg/scale"
)

var ErrInvalidEra = errors.New("invalid era")

const (
	minEraPeriod = 4
	maxEraPeriod = 1 << 16
)

// Era is the validity period of a transaction. The zero
// value is the immortal era.
type Era struct {
	Period uint64
	Phase  uint64
}

// ImmortalEra returns an era valid forever.
func ImmortalEra() Era {
	return Era{}
}

// MortalEra returns an era valid for about period blocks starting at the
// block number current. The period is rounded up to a power of two
// between 4 and 65536.
func MortalEra(period, current uint64) Era {
	switch {
	case period <= minEraPeriod:
		period = minEraPeriod
	case period >= maxEraPeriod:
		period = maxEraPeriod
	default:
		period = 1 << bits.Len64(period-1)
	}

	phase := current % period
	quantizeFactor := max(period>>12, 1)
	return Era{
		Period: period,
		Phase:  phase / quantizeFactor * quantizeFactor,
	}
}

// IsImmortal returns true for the immortal era.
func (e Era) IsImmortal() bool {
	return e.Period == 0
}

// Birth returns the first block number of the era for a
// transaction submitted at block current.
func (e Era) Birth(current uint64) uint64 {
	if e.IsImmortal() {
		return 0
	}
	return (max(current, e.Phase)-e.Phase)/e.Period*e.Period + e.Phase
}

// Death returns the first block number at which the transaction
// submitted at block current is no longer valid.
func (e Era) Death(current uint64) uint64 {
	if e.IsImmortal() {
		return ^uint64(0)
	}
	return e.Birth(current) + e.Period
}

// MarshalSCALE encodes the era in one byte for the immortal
// era and two bytes for mortal eras.
func (e Era) MarshalSCALE() ([]byte, error) {
	if e.IsImmortal() {
		return []byte{0}, nil
	}

	quantizeFactor := max(e.Period>>12, 1)
	low := uint64(bits.TrailingZeros64(e.Period)) - 1
	low = min(max(low, 1), 15)
	encoded := uint16(low) | uint16((e.Phase/quantizeFactor)<<4)

	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, encoded)
	return out, nil
}

// UnmarshalSCALE decodes an era.
func (e *Era) UnmarshalSCALE(r scale.Reader) error {
	first, err := r.ReadByte()
	if err != nil {
		return err
	}
	if first == 0 {
		*e = Era{}
		return nil
	}

	second, err := r.ReadByte()
	if err != nil {
		return err
	}

	encoded := uint64(first) | uint64(second)<<8
	period := uint64(2) << (encoded % (1 << 4))
	quantizeFactor := max(period>>12, 1)
	phase := (encoded >> 4) * quantizeFactor
	if period < minEraPeriod || phase >= period {
		return fmt.Errorf("%w: period %d phase %d", ErrInvalidEra, period, phase)
	}

	*e = Era{Period: period, Phase: phase}
	return nil
}

func (e Era) String() string {
	if e.IsImmortal() {
		return "immortal"
	}
	return fmt.Sprintf("mortal(period %d, phase %d)", e.Period, e.Phase)
}
