// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Compact_roundTrip(t *testing.T) {
	t.Parallel()

	maxU128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

	testCases := map[string]*big.Int{
		"zero":          big.NewInt(0),
		"single byte":   big.NewInt(63),
		"two bytes":     big.NewInt(16383),
		"four bytes":    big.NewInt(1<<30 - 1),
		"big mode":      big.NewInt(1 << 30),
		"max uint64":    new(big.Int).SetUint64(^uint64(0)),
		"max uint128":   maxU128,
		"seventeen len": new(big.Int).Lsh(big.NewInt(1), 128),
	}

	for name, value := range testCases {
		value := value
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			encoded, err := EncodeCompact(value)
			require.NoError(t, err)
			assert.Equal(t, len(encoded), CompactLength(encoded[0]))

			decoded, err := DecodeCompact(bytes.NewReader(encoded))
			require.NoError(t, err)
			assert.Equal(t, 0, value.Cmp(decoded))
		})
	}
}

func Test_EncodeCompactUint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0xfc}, EncodeCompactUint(63))
	assert.Equal(t, []byte{0x01, 0x01}, EncodeCompactUint(64))
	assert.Equal(t, []byte{0x13, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		EncodeCompactUint(^uint64(0)))

	decoded, err := DecodeCompactUint(bytes.NewReader(EncodeCompactUint(^uint64(0))))
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), decoded)
}

func Test_EncodeCompact_negative(t *testing.T) {
	t.Parallel()

	_, err := EncodeCompact(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrNegativeCompact)
}
