// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const multisigPallet = "Multisig"

// Multisig module errors.
const (
	MultisigErrorMinimumThreshold      = "MinimumThreshold"
	MultisigErrorAlreadyApproved       = "AlreadyApproved"
	MultisigErrorNoApprovalsNeeded     = "NoApprovalsNeeded"
	MultisigErrorTooFewSignatories     = "TooFewSignatories"
	MultisigErrorTooManySignatories    = "TooManySignatories"
	MultisigErrorSignatoriesOutOfOrder = "SignatoriesOutOfOrder"
	MultisigErrorSenderInSignatories   = "SenderInSignatories"
	MultisigErrorNotFound              = "NotFound"
	MultisigErrorNotOwner              = "NotOwner"
	MultisigErrorNoTimepoint           = "NoTimepoint"
	MultisigErrorWrongTimepoint        = "WrongTimepoint"
	MultisigErrorUnexpectedTimepoint   = "UnexpectedTimepoint"
	MultisigErrorMaxWeightTooLow       = "MaxWeightTooLow"
	MultisigErrorAlreadyStored         = "AlreadyStored"
)

// Timepoint is the block height and extrinsic index of the call
// which opened a multisig operation.
type Timepoint struct {
	Height BlockNumber
	Index  uint32
}

// Multisig is an open multisig operation.
type Multisig struct {
	When      Timepoint
	Deposit   Balance
	Depositor AccountID
	Approvals []AccountID
}

var multisigAccountPrefix = []byte("modlpy/utilisuba")

// MultisigAccountID returns the account of the multisig made of the
// signatories and threshold given. The signatories order is ignored.
func MultisigAccountID(signatories []AccountID, threshold uint16) AccountID {
	sorted := SortSignatories(signatories)

	var buffer bytes.Buffer
	buffer.Write(multisigAccountPrefix)
	buffer.Write(scale.MustMarshal(sorted))
	_ = binary.Write(&buffer, binary.LittleEndian, threshold)
	return AccountID(common.MustBlake2bHash(buffer.Bytes()))
}

// SortSignatories returns a sorted copy of the signatories,
// as expected by the multisig calls.
func SortSignatories(signatories []AccountID) []AccountID {
	sorted := make([]AccountID, len(signatories))
	copy(sorted, signatories)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	return sorted
}

type multisigEvent struct{}

func (multisigEvent) PalletName() string { return multisigPallet }

// MultisigNewMultisig is emitted when a multisig operation is opened.
type MultisigNewMultisig struct {
	multisigEvent
	Approving AccountID
	Multisig  AccountID
	CallHash  [32]byte
}

func (MultisigNewMultisig) EventName() string { return "NewMultisig" }

type MultisigApproval struct {
	multisigEvent
	Approving AccountID
	Timepoint Timepoint
	Multisig  AccountID
	CallHash  [32]byte
}

func (MultisigApproval) EventName() string { return "MultisigApproval" }

// MultisigExecuted is emitted when the threshold is reached and the
// call is dispatched.
type MultisigExecuted struct {
	multisigEvent
	Approving AccountID
	Timepoint Timepoint
	Multisig  AccountID
	CallHash  [32]byte
	Result    DispatchResult
}

func (MultisigExecuted) EventName() string { return "MultisigExecuted" }

type MultisigCancelled struct {
	multisigEvent
	Cancelling AccountID
	Timepoint  Timepoint
	Multisig   AccountID
	CallHash   [32]byte
}

func (MultisigCancelled) EventName() string { return "MultisigCancelled" }

func registerMultisigEvents(r *chain.EventRegistry) {
	r.Register("NewMultisig(approving:AccountId32,multisig:AccountId32,call_hash:[u8;32])",
		func() chain.Event { return &MultisigNewMultisig{} })
	r.Register("MultisigApproval(approving:AccountId32,timepoint:Timepoint<u32>,multisig:AccountId32,"+
		"call_hash:[u8;32])",
		func() chain.Event { return &MultisigApproval{} })
	r.Register("MultisigExecuted(approving:AccountId32,timepoint:Timepoint<u32>,multisig:AccountId32,"+
		"call_hash:[u8;32],result:Result<(),DispatchError>)",
		func() chain.Event { return &MultisigExecuted{} })
	r.Register("MultisigCancelled(cancelling:AccountId32,timepoint:Timepoint<u32>,multisig:AccountId32,"+
		"call_hash:[u8;32])",
		func() chain.Event { return &MultisigCancelled{} })
}

// MultisigTx builds Multisig calls. Other signatories must be sorted,
// see SortSignatories.
type MultisigTx struct{}

// AsMultiThreshold1 dispatches the call from the multisig of the
// sender and the other signatories with a threshold of 1.
func (MultisigTx) AsMultiThreshold1(otherSignatories []AccountID, call *chain.Payload) *chain.Payload {
	args := struct {
		OtherSignatories []AccountID
		Call             chain.RuntimeCall
	}{otherSignatories, Call(call)}
	return chain.NewPayload(multisigPallet, "as_multi_threshold_1", args,
		"as_multi_threshold_1(other_signatories:Vec<AccountId32>,call:RuntimeCall)")
}

// AsMulti approves the call and dispatches it once the threshold is
// reached. The timepoint is nil for the first approval.
func (MultisigTx) AsMulti(threshold uint16, otherSignatories []AccountID, timepoint *Timepoint,
	call *chain.Payload, maxWeight Weight) *chain.Payload {
	args := struct {
		Threshold        uint16
		OtherSignatories []AccountID
		MaybeTimepoint   *Timepoint
		Call             chain.RuntimeCall
		MaxWeight        Weight
	}{threshold, otherSignatories, timepoint, Call(call), maxWeight}
	return chain.NewPayload(multisigPallet, "as_multi", args,
		"as_multi(threshold:u16,other_signatories:Vec<AccountId32>,maybe_timepoint:Option<Timepoint<u32>>,"+
			"call:RuntimeCall,max_weight:Weight)")
}

func (MultisigTx) ApproveAsMulti(threshold uint16, otherSignatories []AccountID, timepoint *Timepoint,
	callHash [32]byte, maxWeight Weight) *chain.Payload {
	args := struct {
		Threshold        uint16
		OtherSignatories []AccountID
		MaybeTimepoint   *Timepoint
		CallHash         [32]byte
		MaxWeight        Weight
	}{threshold, otherSignatories, timepoint, callHash, maxWeight}
	return chain.NewPayload(multisigPallet, "approve_as_multi", args,
		"approve_as_multi(threshold:u16,other_signatories:Vec<AccountId32>,maybe_timepoint:Option<Timepoint<u32>>,"+
			"call_hash:[u8;32],max_weight:Weight)")
}

func (MultisigTx) CancelAsMulti(threshold uint16, otherSignatories []AccountID, timepoint Timepoint,
	callHash [32]byte) *chain.Payload {
	args := struct {
		Threshold        uint16
		OtherSignatories []AccountID
		Timepoint        Timepoint
		CallHash         [32]byte
	}{threshold, otherSignatories, timepoint, callHash}
	return chain.NewPayload(multisigPallet, "cancel_as_multi", args,
		"cancel_as_multi(threshold:u16,other_signatories:Vec<AccountId32>,timepoint:Timepoint<u32>,"+
			"call_hash:[u8;32])")
}

// MultisigStorage addresses Multisig storage.
type MultisigStorage struct{}

const multisigsSignature = "Multisigs[Twox64Concat(AccountId32),Blake2_128Concat([u8;32])]->" +
	"Multisig<u32,u128,AccountId32>"

// Multisigs is the open operation of the multisig account for the call hash.
func (MultisigStorage) Multisigs(multisig AccountID, callHash [32]byte) *chain.StorageAddress[Multisig] {
	return chain.NewStorageAddress[Multisig](multisigPallet, "Multisigs", twox64Blake2,
		multisigsSignature, multisig, callHash)
}

// MultisigsOf iterates over the open operations of the multisig account.
func (MultisigStorage) MultisigsOf(multisig AccountID) *chain.StorageAddress[Multisig] {
	return chain.NewStorageAddress[Multisig](multisigPallet, "Multisigs", twox64Blake2,
		multisigsSignature, multisig)
}

func (MultisigStorage) MultisigsIter() *chain.StorageAddress[Multisig] {
	return chain.NewStorageAddress[Multisig](multisigPallet, "Multisigs", twox64Blake2,
		multisigsSignature)
}

// MultisigConstants addresses Multisig constants.
type MultisigConstants struct{}

func (MultisigConstants) DepositBase() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](multisigPallet, "DepositBase", "DepositBase:u128")
}

func (MultisigConstants) DepositFactor() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](multisigPallet, "DepositFactor", "DepositFactor:u128")
}

func (MultisigConstants) MaxSignatories() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](multisigPallet, "MaxSignatories", "MaxSignatories:u32")
}

func multisigBindings() []chain.Binding {
	tx, storage, constants := MultisigTx{}, MultisigStorage{}, MultisigConstants{}
	return []chain.Binding{
		tx.AsMultiThreshold1(nil, nil),
		tx.AsMulti(0, nil, nil, nil, Weight{}),
		tx.ApproveAsMulti(0, nil, nil, [32]byte{}, Weight{}),
		tx.CancelAsMulti(0, nil, Timepoint{}, [32]byte{}),
		storage.MultisigsIter(),
		constants.DepositBase(),
		constants.DepositFactor(),
		constants.MaxSignatories(),
	}
}
