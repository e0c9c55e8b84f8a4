// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"math/big"

	"github.com/ChainSafe/argon-client/lib/chain"
)

const chainTransferPallet = "ChainTransfer"

// ChainTransfer module errors.
const (
	ChainTransferErrorMaxBlockTransfersExceeded                 = "MaxBlockTransfersExceeded"
	ChainTransferErrorInsufficientFunds                         = "InsufficientFunds"
	ChainTransferErrorInsufficientNotarizedFunds                = "InsufficientNotarizedFunds"
	ChainTransferErrorInvalidOrDuplicatedLocalchainTransfer     = "InvalidOrDuplicatedLocalchainTransfer"
	ChainTransferErrorNotebookIncludesExpiredLocalchainTransfer = "NotebookIncludesExpiredLocalchainTransfer"
	ChainTransferErrorInvalidNotaryUsedForTransfer              = "InvalidNotaryUsedForTransfer"
	ChainTransferErrorNotaryLocked                              = "NotaryLocked"
	ChainTransferErrorNoAvailableTransferID                     = "NoAvailableTransferId"
)

// QueuedTransferOut is a transfer to a localchain waiting for a notary.
type QueuedTransferOut struct {
	AccountID      AccountID
	Amount         Balance
	ExpirationTick Tick
	NotaryID       NotaryID
}

// PalletID is the identifier of the account owned by a pallet.
type PalletID [8]byte

type chainTransferEvent struct{}

func (chainTransferEvent) PalletName() string { return chainTransferPallet }

// TransferToLocalchain is emitted when argons leave the chain for a
// localchain.
type TransferToLocalchain struct {
	chainTransferEvent
	AccountID      AccountID
	Amount         Balance
	TransferID     TransferID
	NotaryID       NotaryID
	ExpirationTick Tick
}

func (TransferToLocalchain) EventName() string { return "TransferToLocalchain" }

type TransferToLocalchainExpired struct {
	chainTransferEvent
	AccountID  AccountID
	TransferID TransferID
	NotaryID   NotaryID
}

func (TransferToLocalchainExpired) EventName() string { return "TransferToLocalchainExpired" }

// TransferIn is emitted when a notebook moves argons back to the chain.
type TransferIn struct {
	chainTransferEvent
	AccountID AccountID
	Amount    Balance
	NotaryID  NotaryID
}

func (TransferIn) EventName() string { return "TransferIn" }

func registerChainTransferEvents(r *chain.EventRegistry) {
	r.Register("TransferToLocalchain(account_id:AccountId32,amount:u128,transfer_id:u32,notary_id:u32,"+
		"expiration_tick:u64)",
		func() chain.Event { return &TransferToLocalchain{} })
	r.Register("TransferToLocalchainExpired(account_id:AccountId32,transfer_id:u32,notary_id:u32)",
		func() chain.Event { return &TransferToLocalchainExpired{} })
	r.Register("TransferIn(account_id:AccountId32,amount:u128,notary_id:u32)",
		func() chain.Event { return &TransferIn{} })
}

// ChainTransferTx builds ChainTransfer calls.
type ChainTransferTx struct{}

// SendToLocalchain moves the amount to the localchain account of the
// sender, notarized by the notary given.
func (ChainTransferTx) SendToLocalchain(amount Balance, notary NotaryID) *chain.Payload {
	args := struct {
		Amount   *big.Int
		NotaryID NotaryID
	}{amount.Big(), notary}
	return chain.NewPayload(chainTransferPallet, "send_to_localchain", args,
		"send_to_localchain(amount:Compact<u128>,notary_id:u32)")
}

// ChainTransferStorage addresses ChainTransfer storage.
type ChainTransferStorage struct{}

const pendingTransfersOutSignature = "PendingTransfersOut[Twox64Concat(u32)]->QueuedTransferOut<AccountId32,u128>"

func (ChainTransferStorage) NextTransferID() *chain.StorageAddress[TransferID] {
	return chain.NewStorageAddress[TransferID](chainTransferPallet, "NextTransferId", nil,
		"NextTransferId[]->u32")
}

func (ChainTransferStorage) PendingTransfersOut(id TransferID) *chain.StorageAddress[QueuedTransferOut] {
	return chain.NewStorageAddress[QueuedTransferOut](chainTransferPallet, "PendingTransfersOut", twox64Concat,
		pendingTransfersOutSignature, id)
}

func (ChainTransferStorage) PendingTransfersOutIter() *chain.StorageAddress[QueuedTransferOut] {
	return chain.NewStorageAddress[QueuedTransferOut](chainTransferPallet, "PendingTransfersOut", twox64Concat,
		pendingTransfersOutSignature)
}

// ExpiringTransfersOut are the transfers expiring at the tick.
func (ChainTransferStorage) ExpiringTransfersOut(tick Tick) *chain.StorageAddress[[]TransferID] {
	return chain.NewStorageAddress[[]TransferID](chainTransferPallet, "ExpiringTransfersOut", twox64Concat,
		"ExpiringTransfersOut[Twox64Concat(u64)]->BoundedVec<u32>", tick)
}

func (ChainTransferStorage) ExpiringTransfersOutIter() *chain.StorageAddress[[]TransferID] {
	return chain.NewStorageAddress[[]TransferID](chainTransferPallet, "ExpiringTransfersOut", twox64Concat,
		"ExpiringTransfersOut[Twox64Concat(u64)]->BoundedVec<u32>")
}

// ChainTransferConstants addresses ChainTransfer constants.
type ChainTransferConstants struct{}

func (ChainTransferConstants) PalletID() *chain.ConstantAddress[PalletID] {
	return chain.NewConstantAddress[PalletID](chainTransferPallet, "PalletId", "PalletId:PalletId")
}

// TransferExpirationTicks is how long a notary has to notarize a
// transfer out before it is refunded.
func (ChainTransferConstants) TransferExpirationTicks() *chain.ConstantAddress[Tick] {
	return chain.NewConstantAddress[Tick](chainTransferPallet, "TransferExpirationTicks",
		"TransferExpirationTicks:u64")
}

func (ChainTransferConstants) MaxPendingTransfersOutPerBlock() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](chainTransferPallet, "MaxPendingTransfersOutPerBlock",
		"MaxPendingTransfersOutPerBlock:u32")
}

func chainTransferBindings() []chain.Binding {
	storage, constants := ChainTransferStorage{}, ChainTransferConstants{}
	return []chain.Binding{
		ChainTransferTx{}.SendToLocalchain(Balance{}, 0),
		storage.NextTransferID(),
		storage.PendingTransfersOutIter(),
		storage.ExpiringTransfersOutIter(),
		constants.PalletID(),
		constants.TransferExpirationTicks(),
		constants.MaxPendingTransfersOutPerBlock(),
	}
}
