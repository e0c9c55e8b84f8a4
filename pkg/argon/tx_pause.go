// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const txPausePallet = "TxPause"

// TxPause module errors.
const (
	TxPauseErrorIsPaused   = "IsPaused"
	TxPauseErrorIsUnpaused = "IsUnpaused"
	TxPauseErrorUnpausable = "Unpausable"
	TxPauseErrorNotFound   = "NotFound"
)

// RuntimeCallName is the full name of a call: its pallet name and
// its call name.
type RuntimeCallName struct {
	Pallet []byte
	Call   []byte
}

// NewRuntimeCallName returns the full name of the call of the pallet.
func NewRuntimeCallName(pallet, call string) RuntimeCallName {
	return RuntimeCallName{Pallet: []byte(pallet), Call: []byte(call)}
}

func (n RuntimeCallName) String() string {
	return string(n.Pallet) + "." + string(n.Call)
}

type txPauseEvent struct{}

func (txPauseEvent) PalletName() string { return txPausePallet }

// CallPaused is emitted when a call is paused.
type CallPaused struct {
	txPauseEvent
	FullName RuntimeCallName
}

func (CallPaused) EventName() string { return "CallPaused" }

type CallUnpaused struct {
	txPauseEvent
	FullName RuntimeCallName
}

func (CallUnpaused) EventName() string { return "CallUnpaused" }

func registerTxPauseEvents(r *chain.EventRegistry) {
	r.Register("CallPaused(full_name:(BoundedVec<u8>,BoundedVec<u8>))",
		func() chain.Event { return &CallPaused{} })
	r.Register("CallUnpaused(full_name:(BoundedVec<u8>,BoundedVec<u8>))",
		func() chain.Event { return &CallUnpaused{} })
}

// TxPauseTx builds TxPause calls. They require the root origin.
type TxPauseTx struct{}

// Pause pauses the call. Calls of the System and TxPause pallets
// cannot be paused.
func (TxPauseTx) Pause(fullName RuntimeCallName) *chain.Payload {
	return chain.NewPayload(txPausePallet, "pause", struct{ FullName RuntimeCallName }{fullName},
		"pause(full_name:(BoundedVec<u8>,BoundedVec<u8>))")
}

func (TxPauseTx) Unpause(ident RuntimeCallName) *chain.Payload {
	return chain.NewPayload(txPausePallet, "unpause", struct{ Ident RuntimeCallName }{ident},
		"unpause(ident:(BoundedVec<u8>,BoundedVec<u8>))")
}

// TxPauseStorage addresses TxPause storage.
type TxPauseStorage struct{}

const txPausePausedCallsSignature = "PausedCalls[Blake2_128Concat((BoundedVec<u8>,BoundedVec<u8>))]->()"

// PausedCalls is set for a paused call.
func (TxPauseStorage) PausedCalls(fullName RuntimeCallName) *chain.StorageAddress[struct{}] {
	return chain.NewStorageAddress[struct{}](txPausePallet, "PausedCalls", blake2Concat,
		txPausePausedCallsSignature, fullName)
}

func (TxPauseStorage) PausedCallsIter() *chain.StorageAddress[struct{}] {
	return chain.NewStorageAddress[struct{}](txPausePallet, "PausedCalls", blake2Concat,
		txPausePausedCallsSignature)
}

// TxPauseConstants addresses TxPause constants.
type TxPauseConstants struct{}

// MaxNameLen is the maximum length of a pallet or call name.
func (TxPauseConstants) MaxNameLen() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](txPausePallet, "MaxNameLen", "MaxNameLen:u32")
}

func txPauseBindings() []chain.Binding {
	tx := TxPauseTx{}
	return []chain.Binding{
		tx.Pause(RuntimeCallName{}),
		tx.Unpause(RuntimeCallName{}),
		TxPauseStorage{}.PausedCallsIter(),
		TxPauseConstants{}.MaxNameLen(),
	}
}
