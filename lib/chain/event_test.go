// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"io"
	"math/big"
	"testing"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/keyring"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/metadata/metadatatest"
	"github.com/ChainSafe/argon-client/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTransferEvent struct {
	From   [32]byte
	To     [32]byte
	Amount scale.Uint128
}

func (testTransferEvent) PalletName() string { return "ArgonBalances" }
func (testTransferEvent) EventName() string  { return "Transfer" }

type testWeight struct {
	RefTime   uint
	ProofSize uint
}

type testDispatchInfo struct {
	Weight  testWeight
	Class   uint8
	PaysFee uint8
}

type testExtrinsicFailedEvent struct {
	DispatchError RawDispatchError
	DispatchInfo  testDispatchInfo
}

func (testExtrinsicFailedEvent) PalletName() string { return "System" }
func (testExtrinsicFailedEvent) EventName() string  { return "ExtrinsicFailed" }

const (
	transferEventSignature        = "Transfer(from:AccountId32,to:AccountId32,amount:u128)"
	extrinsicFailedEventSignature = "ExtrinsicFailed(dispatch_error:DispatchError,dispatch_info:DispatchInfo)"
)

func testEventRecords(t *testing.T) []byte {
	t.Helper()

	alice := keyring.MustDevSigner("alice").AccountID()
	bob := keyring.MustDevSigner("bob").AccountID()
	topic := common.Hash{0xee}

	return common.Concat(
		[]byte{0x0c},
		// ApplyExtrinsic(1) ArgonBalances.Transfer
		[]byte{0, 1, 0, 0, 0},
		[]byte{metadatatest.BalancesIndex, 2},
		alice[:], bob[:],
		scale.Uint128FromUint64(1000).Bytes(),
		[]byte{0},
		// ApplyExtrinsic(2) System.ExtrinsicFailed
		[]byte{0, 2, 0, 0, 0},
		[]byte{metadatatest.SystemIndex, 1},
		[]byte{3, metadatatest.BalancesIndex, 2, 0, 0, 0},
		[]byte{0x91, 0x01, 0x00, 0, 0},
		[]byte{0x04}, topic[:],
		// Finalization System.ExtrinsicSuccess
		[]byte{1},
		[]byte{metadatatest.SystemIndex, 0},
		[]byte{0x00, 0x00, 2, 1},
		[]byte{0},
	)
}

func Test_ParseEventRecords(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	raw := testEventRecords(t)

	records, err := ParseEventRecords(md, raw)
	require.NoError(t, err)
	require.Len(t, records, 3)

	transfer := records[0]
	assert.Equal(t, Phase{Kind: PhaseApplyExtrinsic, ExtrinsicIndex: 1}, transfer.Phase)
	assert.Equal(t, "ArgonBalances", transfer.Pallet)
	assert.Equal(t, "Transfer", transfer.Name)
	assert.Equal(t, metadatatest.BalancesIndex, transfer.PalletIndex)
	assert.Equal(t, uint8(2), transfer.Index)
	assert.Len(t, transfer.Fields, 80)
	assert.Empty(t, transfer.Topics)
	assert.True(t, transfer.Is("ArgonBalances", "Transfer"))
	assert.False(t, transfer.Is("System", "Transfer"))

	failed := records[1]
	assert.Equal(t, Phase{Kind: PhaseApplyExtrinsic, ExtrinsicIndex: 2}, failed.Phase)
	assert.Equal(t, "ExtrinsicFailed", failed.Name)
	assert.Equal(t, []common.Hash{{0xee}}, failed.Topics)

	success := records[2]
	assert.Equal(t, Phase{Kind: PhaseFinalization}, success.Phase)
	assert.Equal(t, "ExtrinsicSuccess", success.Name)
	assert.Equal(t, []byte{0x00, 0x00, 2, 1}, success.Fields)
	assert.Equal(t, "Finalization", success.Phase.Kind.String())
}

func Test_ParseEventRecords_errors(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	raw := testEventRecords(t)

	testCases := map[string]struct {
		raw        []byte
		errWrapped error
		errMessage string
	}{
		"empty": {
			raw:        nil,
			errWrapped: io.ErrUnexpectedEOF,
			errMessage: "decoding event count: unexpected EOF",
		},
		"no events": {
			raw: []byte{0},
		},
		"truncated": {
			raw:        raw[:len(raw)-2],
			errWrapped: io.ErrUnexpectedEOF,
		},
		"trailing bytes": {
			raw:        append(append([]byte{}, raw...), 0xff),
			errWrapped: ErrTrailingEventData,
		},
		"count too large": {
			raw:        []byte{0xfc},
			errWrapped: io.ErrUnexpectedEOF,
		},
		"unknown phase": {
			raw:        []byte{0x04, 7},
			errWrapped: metadata.ErrUnknownVariant,
		},
		"unknown pallet": {
			raw:        []byte{0x04, 1, 42, 0},
			errWrapped: metadata.ErrNotFound,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseEventRecords(md, testCase.raw)
			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errMessage != "" {
				assert.EqualError(t, err, testCase.errMessage)
			}
		})
	}
}

func Test_EventRecord_As(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	records, err := ParseEventRecords(md, testEventRecords(t))
	require.NoError(t, err)

	var transfer testTransferEvent
	err = records[0].As(&transfer)
	require.NoError(t, err)
	assert.Equal(t, keyring.MustDevSigner("alice").AccountID(), transfer.From)
	assert.Equal(t, keyring.MustDevSigner("bob").AccountID(), transfer.To)
	assert.Equal(t, scale.Uint128FromUint64(1000), transfer.Amount)

	var failed testExtrinsicFailedEvent
	err = records[1].As(&failed)
	require.NoError(t, err)
	assert.Equal(t, testDispatchInfo{Weight: testWeight{RefTime: 100}}, failed.DispatchInfo)

	dispatchError, err := failed.DispatchError.Resolve(md)
	require.NoError(t, err)
	assert.True(t, dispatchError.IsModuleError("ArgonBalances", "InsufficientBalance"))

	err = records[0].As(&failed)
	assert.ErrorIs(t, err, ErrEventMismatch)
	assert.EqualError(t, err, "event record does not match: "+
		"record is ArgonBalances.Transfer, event is System.ExtrinsicFailed")
}

func Test_EventRecord_Values(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	records, err := ParseEventRecords(md, testEventRecords(t))
	require.NoError(t, err)

	alice := keyring.MustDevSigner("alice").AccountID()
	bob := keyring.MustDevSigner("bob").AccountID()

	values, err := records[0].Values(md)
	require.NoError(t, err)
	expected := map[string]any{
		"from":   common.BytesToHex(alice[:]),
		"to":     common.BytesToHex(bob[:]),
		"amount": big.NewInt(1000),
	}
	assert.Equal(t, expected, values)

	record := records[0]
	record.Fields = record.Fields[:40]
	_, err = record.Values(md)
	assert.ErrorContains(t, err, "decoding field to of ArgonBalances.Transfer")
}

func Test_EventRegistry(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	records, err := ParseEventRecords(md, testEventRecords(t))
	require.NoError(t, err)

	registry := NewEventRegistry()
	registry.Register(transferEventSignature, func() Event { return &testTransferEvent{} })
	registry.Register(extrinsicFailedEventSignature, func() Event { return &testExtrinsicFailedEvent{} })

	descriptors := registry.Descriptors()
	require.Len(t, descriptors, 2)
	assert.Equal(t, "event ArgonBalances.Transfer", descriptors[0].String())
	assert.Equal(t, "event System.ExtrinsicFailed", descriptors[1].String())
	for _, descriptor := range descriptors {
		assert.NoError(t, descriptor.Validate(md))
	}

	descriptor, ok := registry.Lookup("System", "ExtrinsicFailed")
	require.True(t, ok)
	assert.Equal(t, metadata.SignatureHash(extrinsicFailedEventSignature), descriptor.Hash)
	_, ok = registry.Lookup("System", "ExtrinsicSuccess")
	assert.False(t, ok)

	event, err := registry.Decode(records[0])
	require.NoError(t, err)
	transfer, ok := event.(*testTransferEvent)
	require.True(t, ok)
	assert.Equal(t, scale.Uint128FromUint64(1000), transfer.Amount)

	_, err = registry.Decode(records[2])
	assert.ErrorIs(t, err, ErrUnknownEvent)

	registry.Register("Transfer(from:AccountId32,to:AccountId32,amount:u64)",
		func() Event { return &testTransferEvent{} })
	descriptor, ok = registry.Lookup("ArgonBalances", "Transfer")
	require.True(t, ok)
	assert.ErrorIs(t, descriptor.Validate(md), ErrIncompatible)
}
