// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"encoding/json"
	"testing"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BlockNumber_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		data       string
		number     BlockNumber
		errWrapped error
	}{
		"hex string": {
			data:   `"0x1a2b"`,
			number: 0x1a2b,
		},
		"number": {
			data:   `42`,
			number: 42,
		},
		"invalid hex": {
			data:       `"0xzz"`,
			errWrapped: ErrInvalidBlockNumber,
		},
		"overflow": {
			data:       `"0x100000000"`,
			errWrapped: ErrInvalidBlockNumber,
		},
		"object": {
			data:       `{}`,
			errWrapped: ErrInvalidBlockNumber,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var number BlockNumber
			err := json.Unmarshal([]byte(testCase.data), &number)
			assert.ErrorIs(t, err, testCase.errWrapped)
			assert.Equal(t, testCase.number, number)
		})
	}
}

func Test_BlockNumber_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(BlockNumber(255))
	require.NoError(t, err)
	assert.Equal(t, `"0xff"`, string(data))
}

func Test_TxStatus_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	blockHash := common.Hash{0x01, 0x02}

	testCases := map[string]struct {
		data       string
		status     TxStatus
		final      bool
		errWrapped error
	}{
		"ready": {
			data:   `"ready"`,
			status: TxStatus{Kind: TxReady},
		},
		"invalid": {
			data:   `"invalid"`,
			status: TxStatus{Kind: TxInvalid},
			final:  true,
		},
		"broadcast": {
			data:   `{"broadcast":["peer1","peer2"]}`,
			status: TxStatus{Kind: TxBroadcast, Peers: []string{"peer1", "peer2"}},
		},
		"in block": {
			data:   `{"inBlock":"` + blockHash.String() + `"}`,
			status: TxStatus{Kind: TxInBlock, Block: blockHash},
		},
		"finalized": {
			data:   `{"finalized":"` + blockHash.String() + `"}`,
			status: TxStatus{Kind: TxFinalized, Block: blockHash},
			final:  true,
		},
		"unknown string": {
			data:       `"pending"`,
			errWrapped: ErrUnknownTxStatus,
		},
		"unknown object": {
			data:       `{"pending":1}`,
			errWrapped: ErrUnknownTxStatus,
		},
		"two keys": {
			data:       `{"ready":1,"future":2}`,
			errWrapped: ErrUnknownTxStatus,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var status TxStatus
			err := json.Unmarshal([]byte(testCase.data), &status)
			assert.ErrorIs(t, err, testCase.errWrapped)
			assert.Equal(t, testCase.status, status)
			assert.Equal(t, testCase.final, status.IsFinal())
		})
	}
}

func Test_Header_Encode(t *testing.T) {
	t.Parallel()

	header := Header{
		ParentHash:     common.Hash{1},
		Number:         1,
		StateRoot:      common.Hash{2},
		ExtrinsicsRoot: common.Hash{3},
		Digest:         Digest{Logs: []string{"0x0401"}},
	}

	encoded, err := header.Encode()
	require.NoError(t, err)

	expected := common.Concat(
		common.Hash{1}.ToBytes(),
		[]byte{0x04},
		common.Hash{2}.ToBytes(),
		common.Hash{3}.ToBytes(),
		[]byte{0x04, 0x04, 0x01},
	)
	assert.Equal(t, expected, encoded)

	hash, err := header.Hash()
	require.NoError(t, err)
	assert.Equal(t, common.MustBlake2bHash(expected), hash)

	header.Digest.Logs = []string{"zz"}
	_, err = header.Encode()
	assert.ErrorIs(t, err, common.ErrNoPrefix)
}

func Test_APIVersion_JSON(t *testing.T) {
	t.Parallel()

	var version APIVersion
	err := json.Unmarshal([]byte(`["0x37e397fc7c91f5e4",2]`), &version)
	require.NoError(t, err)
	assert.Equal(t, APIVersion{ID: "0x37e397fc7c91f5e4", Version: 2}, version)

	data, err := json.Marshal(version)
	require.NoError(t, err)
	assert.Equal(t, `["0x37e397fc7c91f5e4",2]`, string(data))

	err = json.Unmarshal([]byte(`["0x01"]`), &version)
	assert.EqualError(t, err, "api version: expected 2 elements, got 1")
}
