// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/metadata/metadatatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMultiAddressID [32]byte

func (a testMultiAddressID) MarshalSCALE() ([]byte, error) {
	return append([]byte{0}, a[:]...), nil
}

type testRemark struct {
	Remark []byte
}

type testTransfer struct {
	Dest  testMultiAddressID
	Value *big.Int
}

type testSudo struct {
	Call RuntimeCall
}

type testMultisig struct {
	OtherSignatories [][32]byte
	Call             RuntimeCall
}

const (
	remarkSignature   = "remark(remark:Vec<u8>)"
	transferSignature = "transfer_keep_alive(dest:MultiAddress<AccountId32,()>,value:Compact<u128>)"
	sudoSignature     = "sudo(call:RuntimeCall)"
)

func Test_Payload_EncodeCallData(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	alice := testMultiAddressID{0xd4, 0x35}
	signatory := [32]byte{1}

	remark := NewPayload("System", "remark", testRemark{Remark: []byte{1, 2, 3}}, remarkSignature)
	transfer := NewPayload("ArgonBalances", "transfer_keep_alive",
		testTransfer{Dest: alice, Value: big.NewInt(1000)}, transferSignature)

	transferCallData := common.Concat(
		[]byte{metadatatest.BalancesIndex, 3},
		[]byte{0}, alice[:],
		[]byte{0xa1, 0x0f},
	)

	testCases := map[string]struct {
		payload    *Payload
		callData   []byte
		errWrapped error
		errMessage string
	}{
		"remark": {
			payload:  remark,
			callData: []byte{metadatatest.SystemIndex, 0, 0x0c, 1, 2, 3},
		},
		"no arguments": {
			payload:  NewPayload("System", "remark_with_event", nil, ""),
			callData: []byte{metadatatest.SystemIndex, 7},
		},
		"transfer keep alive": {
			payload:  transfer,
			callData: transferCallData,
		},
		"sudo nested call": {
			payload:  NewPayload("Sudo", "sudo", testSudo{Call: NewRuntimeCall(transfer)}, sudoSignature),
			callData: common.Concat([]byte{metadatatest.SudoIndex, 0}, transferCallData),
		},
		"multisig nested call": {
			payload: NewPayload("Multisig", "as_multi_threshold_1", testMultisig{
				OtherSignatories: [][32]byte{signatory},
				Call:             NewRuntimeCall(remark),
			}, ""),
			callData: common.Concat(
				[]byte{metadatatest.MultisigIndex, 0},
				[]byte{0x04}, signatory[:],
				[]byte{metadatatest.SystemIndex, 0, 0x0c, 1, 2, 3},
			),
		},
		"unknown call": {
			payload:    NewPayload("System", "kill_storage", nil, ""),
			errWrapped: metadata.ErrNotFound,
		},
		"nested unknown call": {
			payload: NewPayload("Sudo", "sudo",
				testSudo{Call: NewRuntimeCall(NewPayload("Grandpa", "note_stalled", nil, ""))}, sudoSignature),
			errWrapped: metadata.ErrNotFound,
		},
		"nil nested payload": {
			payload:    NewPayload("Sudo", "sudo", testSudo{}, sudoSignature),
			errWrapped: ErrUnresolvedCall,
			errMessage: "call Sudo.sudo: runtime call is not resolved: nil payload",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			callData, err := testCase.payload.EncodeCallData(md)
			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errMessage != "" {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.callData, callData)
		})
	}
}

func Test_Payload_EncodeCallData_argsUntouched(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	inner := NewPayload("System", "remark", testRemark{Remark: []byte{1}}, remarkSignature)
	args := testSudo{Call: NewRuntimeCall(inner)}

	_, err := NewPayload("Sudo", "sudo", args, sudoSignature).EncodeCallData(md)
	require.NoError(t, err)

	_, err = args.Call.MarshalSCALE()
	assert.ErrorIs(t, err, ErrUnresolvedCall)
}

func Test_Payload_Validate(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)

	testCases := map[string]struct {
		payload    *Payload
		errWrapped error
	}{
		"valid": {
			payload: NewPayload("ArgonBalances", "transfer_keep_alive", nil, transferSignature),
		},
		"valid nested call argument": {
			payload: NewPayload("Sudo", "sudo", nil, sudoSignature),
		},
		"changed signature": {
			payload: NewPayload("ArgonBalances", "transfer_keep_alive", nil,
				"transfer_keep_alive(dest:MultiAddress<AccountId32,()>,value:u128)"),
			errWrapped: ErrIncompatible,
		},
		"unvalidated": {
			payload: NewPayload("ArgonBalances", "transfer_keep_alive", nil, "anything").Unvalidated(),
		},
		"missing call": {
			payload:    NewPayload("ArgonBalances", "force_transfer", nil, "force_transfer()"),
			errWrapped: metadata.ErrNotFound,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := testCase.payload.Validate(md)
			assert.ErrorIs(t, err, testCase.errWrapped)
		})
	}
}

func Test_IncompatibleError(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	payload := NewPayload("System", "remark", nil, "remark(remark:Vec<u16>)")

	err := payload.Validate(md)

	var incompatible *IncompatibleError
	require.True(t, errors.As(err, &incompatible))
	assert.Equal(t, KindCall, incompatible.Kind)
	assert.Equal(t, "System", incompatible.Pallet)
	assert.Equal(t, "remark", incompatible.Item)
	assert.Equal(t, metadata.SignatureHash("remark(remark:Vec<u16>)"), incompatible.Want)
	assert.Equal(t, metadata.SignatureHash(remarkSignature), incompatible.Got)
	assert.Regexp(t, `^binding is incompatible with the runtime: call System.remark: `+
		`static hash 0x[0-9a-f]{8}\.\.\.[0-9a-f]{8}, runtime hash 0x[0-9a-f]{8}\.\.\.[0-9a-f]{8}$`, err.Error())
}

func Test_ValidateAll(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)

	bindings := []Binding{
		NewPayload("System", "remark", nil, remarkSignature),
		NewPayload("System", "remark", nil, "remark()"),
		NewConstantAddress[uint16]("System", "SS58Prefix", "SS58Prefix:u16"),
		NewConstantAddress[uint32]("System", "SS58Prefix", "SS58Prefix:u32"),
	}

	err := ValidateAll(md, bindings)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompatible)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, joined.Unwrap(), 2)

	assert.NoError(t, ValidateAll(md, bindings[:1]))
}
