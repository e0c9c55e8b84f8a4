// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const bitcoinUtxosPallet = "BitcoinUtxos"

// BitcoinUtxos module errors.
const (
	BitcoinUtxosErrorNoPermissions                = "NoPermissions"
	BitcoinUtxosErrorNoBitcoinConfirmedBlock      = "NoBitcoinConfirmedBlock"
	BitcoinUtxosErrorInsufficientBitcoinAmount    = "InsufficientBitcoinAmount"
	BitcoinUtxosErrorNoBitcoinPricesAvailable     = "NoBitcoinPricesAvailable"
	BitcoinUtxosErrorScriptPubkeyConflict         = "ScriptPubkeyConflict"
	BitcoinUtxosErrorUtxoNotLocked                = "UtxoNotLocked"
	BitcoinUtxosErrorRedemptionsUnavailable       = "RedemptionsUnavailable"
	BitcoinUtxosErrorInvalidBitcoinSyncHeight     = "InvalidBitcoinSyncHeight"
	BitcoinUtxosErrorMaxUtxosExceeded             = "MaxUtxosExceeded"
	BitcoinUtxosErrorInvalidSignatureUsed         = "InvalidSignatureUsed"
	BitcoinUtxosErrorDuplicateUtxoID              = "DuplicateUtxoId"
	BitcoinUtxosErrorBitcoinHeightNotConfirmed    = "BitcoinHeightNotConfirmed"
	BitcoinUtxosErrorInsufficientBitcoinConfirmed = "InsufficientBitcoinConfirmed"
)

// BitcoinNetwork is the bitcoin network the chain follows.
type BitcoinNetwork uint8

// Bitcoin networks.
const (
	BitcoinNetworkBitcoin BitcoinNetwork = iota
	BitcoinNetworkTestnet
	BitcoinNetworkSignet
	BitcoinNetworkRegtest
)

func (n BitcoinNetwork) String() string {
	switch n {
	case BitcoinNetworkBitcoin:
		return "bitcoin"
	case BitcoinNetworkTestnet:
		return "testnet"
	case BitcoinNetworkSignet:
		return "signet"
	case BitcoinNetworkRegtest:
		return "regtest"
	default:
		return "unknown"
	}
}

// BitcoinRejectedReason is why a utxo failed verification.
type BitcoinRejectedReason uint8

// Rejection reasons.
const (
	BitcoinRejectedSatoshisMismatch BitcoinRejectedReason = iota
	BitcoinRejectedSpent
	BitcoinRejectedLookupExpired
	BitcoinRejectedDuplicateUtxo
)

// UtxoRef is the bitcoin outpoint of a utxo. The txid is little endian.
type UtxoRef struct {
	Txid        [32]byte
	OutputIndex uint
}

// UtxoValue is a utxo watched by the chain.
type UtxoValue struct {
	UtxoID                   UtxoID
	ScriptPubkey             []byte
	Satoshis                 uint
	SubmittedAtHeight        uint
	WatchForSpentUntilHeight uint
}

// BitcoinBlock is a bitcoin block height and hash.
type BitcoinBlock struct {
	BlockHeight uint
	BlockHash   [32]byte
}

// UtxoSpend is a utxo spent at a bitcoin height.
type UtxoSpend struct {
	UtxoID      UtxoID
	BlockHeight uint64
}

// UtxoVerification is a utxo found at its outpoint.
type UtxoVerification struct {
	UtxoID UtxoID
	Ref    UtxoRef
}

// UtxoRejection is a utxo which failed verification.
type UtxoRejection struct {
	UtxoID UtxoID
	Reason BitcoinRejectedReason
}

// BitcoinUtxoSync is the oracle report of the watched utxos.
type BitcoinUtxoSync struct {
	Spent       []UtxoSpend
	Verified    []UtxoVerification
	Invalid     []UtxoRejection
	SyncToBlock BitcoinBlock
}

// PendingUtxo is a utxo waiting for bitcoin confirmation.
type PendingUtxo struct {
	UtxoID UtxoID
	Value  UtxoValue
}

type bitcoinUtxosEvent struct{}

func (bitcoinUtxosEvent) PalletName() string { return bitcoinUtxosPallet }

type BitcoinUtxoVerified struct {
	bitcoinUtxosEvent
	UtxoID UtxoID
}

func (BitcoinUtxoVerified) EventName() string { return "UtxoVerified" }

type BitcoinUtxoRejected struct {
	bitcoinUtxosEvent
	UtxoID         UtxoID
	RejectedReason BitcoinRejectedReason
}

func (BitcoinUtxoRejected) EventName() string { return "UtxoRejected" }

// BitcoinUtxoSpent is emitted when a watched utxo is spent on bitcoin.
type BitcoinUtxoSpent struct {
	bitcoinUtxosEvent
	UtxoID      UtxoID
	BlockHeight uint64
}

func (BitcoinUtxoSpent) EventName() string { return "UtxoSpent" }

type BitcoinUtxoUnwatched struct {
	bitcoinUtxosEvent
	UtxoID UtxoID
}

func (BitcoinUtxoUnwatched) EventName() string { return "UtxoUnwatched" }

type BitcoinUtxoSpentError struct {
	bitcoinUtxosEvent
	UtxoID UtxoID
	Error  chain.RawDispatchError
}

func (BitcoinUtxoSpentError) EventName() string { return "UtxoSpentError" }

func registerBitcoinUtxosEvents(r *chain.EventRegistry) {
	r.Register("UtxoVerified(utxo_id:u64)",
		func() chain.Event { return &BitcoinUtxoVerified{} })
	r.Register("UtxoRejected(utxo_id:u64,rejected_reason:BitcoinRejectedReason)",
		func() chain.Event { return &BitcoinUtxoRejected{} })
	r.Register("UtxoSpent(utxo_id:u64,block_height:u64)",
		func() chain.Event { return &BitcoinUtxoSpent{} })
	r.Register("UtxoUnwatched(utxo_id:u64)",
		func() chain.Event { return &BitcoinUtxoUnwatched{} })
	r.Register("UtxoSpentError(utxo_id:u64,error:DispatchError)",
		func() chain.Event { return &BitcoinUtxoSpentError{} })
}

// BitcoinUtxosTx builds BitcoinUtxos calls. They are oracle operator calls.
type BitcoinUtxosTx struct{}

// Sync submits the state of the watched utxos.
func (BitcoinUtxosTx) Sync(sync BitcoinUtxoSync) *chain.Payload {
	return chain.NewPayload(bitcoinUtxosPallet, "sync", struct{ UtxoSync BitcoinUtxoSync }{sync},
		"sync(utxo_sync:BitcoinUtxoSync)")
}

func (BitcoinUtxosTx) SetConfirmedBlock(height uint64, hash [32]byte) *chain.Payload {
	args := struct {
		BitcoinHeight    uint64
		BitcoinBlockHash [32]byte
	}{height, hash}
	return chain.NewPayload(bitcoinUtxosPallet, "set_confirmed_block", args,
		"set_confirmed_block(bitcoin_height:u64,bitcoin_block_hash:H256Le)")
}

func (BitcoinUtxosTx) SetOperator(id AccountID) *chain.Payload {
	return chain.NewPayload(bitcoinUtxosPallet, "set_operator", struct{ AccountID AccountID }{id},
		"set_operator(account_id:AccountId32)")
}

// BitcoinUtxosStorage addresses BitcoinUtxos storage.
type BitcoinUtxosStorage struct{}

func (BitcoinUtxosStorage) NextUtxoID() *chain.StorageAddress[UtxoID] {
	return chain.NewStorageAddress[UtxoID](bitcoinUtxosPallet, "NextUtxoId", nil, "NextUtxoId[]->u64")
}

// UtxoIDToRef is the outpoint of a verified utxo.
func (BitcoinUtxosStorage) UtxoIDToRef(id UtxoID) *chain.StorageAddress[UtxoRef] {
	return chain.NewStorageAddress[UtxoRef](bitcoinUtxosPallet, "UtxoIdToRef", twox64Concat,
		"UtxoIdToRef[Twox64Concat(u64)]->UtxoRef", id)
}

func (BitcoinUtxosStorage) UtxoIDToRefIter() *chain.StorageAddress[UtxoRef] {
	return chain.NewStorageAddress[UtxoRef](bitcoinUtxosPallet, "UtxoIdToRef", twox64Concat,
		"UtxoIdToRef[Twox64Concat(u64)]->UtxoRef")
}

func (BitcoinUtxosStorage) UtxosPendingConfirmation() *chain.StorageAddress[[]PendingUtxo] {
	return chain.NewStorageAddress[[]PendingUtxo](bitcoinUtxosPallet, "UtxosPendingConfirmation", nil,
		"UtxosPendingConfirmation[]->BoundedBTreeMap<u64,UtxoValue>")
}

// ConfirmedBitcoinBlockTip is the last bitcoin block with enough confirmations.
func (BitcoinUtxosStorage) ConfirmedBitcoinBlockTip() *chain.StorageAddress[BitcoinBlock] {
	return chain.NewStorageAddress[BitcoinBlock](bitcoinUtxosPallet, "ConfirmedBitcoinBlockTip", nil,
		"ConfirmedBitcoinBlockTip[]->BitcoinBlock")
}

func (BitcoinUtxosStorage) SynchedBitcoinBlock() *chain.StorageAddress[BitcoinBlock] {
	return chain.NewStorageAddress[BitcoinBlock](bitcoinUtxosPallet, "SynchedBitcoinBlock", nil,
		"SynchedBitcoinBlock[]->BitcoinBlock")
}

func (BitcoinUtxosStorage) OracleOperatorAccount() *chain.StorageAddress[AccountID] {
	return chain.NewStorageAddress[AccountID](bitcoinUtxosPallet, "OracleOperatorAccount", nil,
		"OracleOperatorAccount[]->AccountId32")
}

func (BitcoinUtxosStorage) BitcoinNetwork() *chain.StorageAddress[BitcoinNetwork] {
	return chain.NewStorageAddress[BitcoinNetwork](bitcoinUtxosPallet, "BitcoinNetwork", nil,
		"BitcoinNetwork[]->BitcoinNetwork")
}

// BitcoinUtxosConstants addresses BitcoinUtxos constants.
type BitcoinUtxosConstants struct{}

func (BitcoinUtxosConstants) MaxPendingConfirmationUtxos() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](bitcoinUtxosPallet, "MaxPendingConfirmationUtxos",
		"MaxPendingConfirmationUtxos:u32")
}

func (BitcoinUtxosConstants) MaxPendingConfirmationBlocks() *chain.ConstantAddress[uint64] {
	return chain.NewConstantAddress[uint64](bitcoinUtxosPallet, "MaxPendingConfirmationBlocks",
		"MaxPendingConfirmationBlocks:u64")
}

func bitcoinUtxosBindings() []chain.Binding {
	tx, storage, constants := BitcoinUtxosTx{}, BitcoinUtxosStorage{}, BitcoinUtxosConstants{}
	return []chain.Binding{
		tx.Sync(BitcoinUtxoSync{}),
		tx.SetConfirmedBlock(0, [32]byte{}),
		tx.SetOperator(AccountID{}),
		storage.NextUtxoID(),
		storage.UtxoIDToRefIter(),
		storage.UtxosPendingConfirmation(),
		storage.ConfirmedBitcoinBlockTip(),
		storage.SynchedBitcoinBlock(),
		storage.OracleOperatorAccount(),
		storage.BitcoinNetwork(),
		constants.MaxPendingConfirmationUtxos(),
		constants.MaxPendingConfirmationBlocks(),
	}
}
