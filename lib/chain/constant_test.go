// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"testing"

	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/metadata/metadatatest"
	"github.com/ChainSafe/argon-client/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ConstantAddress(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)

	ss58Prefix := NewConstantAddress[uint16]("System", "SS58Prefix", "SS58Prefix:u16")
	require.NoError(t, ss58Prefix.Validate(md))
	prefix, err := ss58Prefix.Decode(md)
	require.NoError(t, err)
	assert.Equal(t, metadatatest.SS58Prefix, prefix)

	existentialDeposit := NewConstantAddress[scale.Uint128]("ArgonBalances", "ExistentialDeposit",
		"ExistentialDeposit:u128")
	require.NoError(t, existentialDeposit.Validate(md))
	deposit, err := existentialDeposit.Decode(md)
	require.NoError(t, err)
	assert.Equal(t, "500", deposit.String())

	wrongType := NewConstantAddress[uint32]("System", "BlockHashCount", "BlockHashCount:u64")
	err = wrongType.Validate(md)
	assert.ErrorIs(t, err, ErrIncompatible)
	assert.NoError(t, wrongType.Unvalidated().Validate(md))

	missing := NewConstantAddress[uint32]("System", "Version", "Version:RuntimeVersion")
	assert.ErrorIs(t, missing.Validate(md), metadata.ErrNotFound)
	_, err = missing.Decode(md)
	assert.ErrorIs(t, err, metadata.ErrNotFound)
	assert.Equal(t, "constant System.Version", missing.String())
}

func Test_RuntimeAPIPayload(t *testing.T) {
	t.Parallel()

	account := [32]byte{1, 2, 3}
	payload := NewRuntimeAPIPayload[uint32]("AccountNonceApi", "account_nonce",
		"AccountNonceApi_account_nonce(account:AccountId32)->u32", account)

	assert.Equal(t, "AccountNonceApi_account_nonce", payload.MethodName())
	assert.Equal(t, "runtime api AccountNonceApi.account_nonce", payload.String())

	args, err := payload.EncodeArgs()
	require.NoError(t, err)
	assert.Equal(t, account[:], args)

	nonce, err := payload.DecodeOutput([]byte{7, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint32(7), nonce)

	_, err = payload.DecodeOutput([]byte{7})
	assert.ErrorContains(t, err, "decoding AccountNonceApi_account_nonce output")

	testCases := map[string]struct {
		version    uint8
		payload    *RuntimeAPIPayload[uint32]
		errWrapped error
	}{
		"valid": {
			version: metadata.V15,
			payload: payload,
		},
		"changed output": {
			version: metadata.V15,
			payload: NewRuntimeAPIPayload[uint32]("AccountNonceApi", "account_nonce",
				"AccountNonceApi_account_nonce(account:AccountId32)->u64"),
			errWrapped: ErrIncompatible,
		},
		"no runtime apis before v15": {
			version:    metadata.V14,
			payload:    payload,
			errWrapped: metadata.ErrNotFound,
		},
		"unvalidated before v15": {
			version: metadata.V14,
			payload: payload.Unvalidated(),
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			md := metadatatest.Argon(testCase.version)
			err := testCase.payload.Validate(md)
			assert.ErrorIs(t, err, testCase.errWrapped)
		})
	}
}
