// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alicePublicKey = [32]byte(MustHexToBytes(
	"0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"))

func Test_EncodeSS58(t *testing.T) {
	t.Parallel()

	address, err := EncodeSS58(alicePublicKey, GenericSS58Prefix)
	require.NoError(t, err)
	assert.Equal(t, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", address)

	_, err = EncodeSS58(alicePublicKey, maxSS58Prefix+1)
	assert.ErrorIs(t, err, ErrSS58Prefix)
}

func Test_DecodeSS58(t *testing.T) {
	t.Parallel()

	pub, prefix, err := DecodeSS58("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")
	require.NoError(t, err)
	assert.Equal(t, alicePublicKey, pub)
	assert.Equal(t, GenericSS58Prefix, prefix)
}

func Test_SS58_RoundTrip(t *testing.T) {
	t.Parallel()

	prefixes := map[string]uint16{
		"zero":                0,
		"one byte maximum":    63,
		"two byte minimum":    64,
		"two byte typical":    1337,
		"two byte maximum":    maxSS58Prefix,
		"generic substrate":   GenericSS58Prefix,
		"polkadot":            0,
		"kusama":              2,
		"two byte odd prefix": 255,
	}

	for name, prefix := range prefixes {
		prefix := prefix
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			address := MustEncodeSS58(alicePublicKey, prefix)

			pub, decodedPrefix, err := DecodeSS58(address)
			require.NoError(t, err)
			assert.Equal(t, alicePublicKey, pub)
			assert.Equal(t, prefix, decodedPrefix)
		})
	}
}

func Test_DecodeSS58_Errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		address    string
		errWrapped error
	}{
		"empty": {
			errWrapped: ErrSS58Length,
		},
		"bad checksum": {
			address:    "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQZ",
			errWrapped: ErrSS58Checksum,
		},
		"too short": {
			address:    base58.Encode([]byte{42, 1, 2, 3}),
			errWrapped: ErrSS58Length,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := DecodeSS58(testCase.address)
			assert.ErrorIs(t, err, testCase.errWrapped)
		})
	}
}
