// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const mintPallet = "Mint"

// MintType is the reason argons were minted.
type MintType uint8

// Mint types.
const (
	MintTypeBitcoin MintType = iota
	MintTypeMining
)

// PendingMint is a bitcoin bond waiting for argons to be minted.
type PendingMint struct {
	UtxoID    UtxoID
	AccountID AccountID
	Amount    Balance
}

type mintEvent struct{}

func (mintEvent) PalletName() string { return mintPallet }

// ArgonsMinted is emitted when argons are minted to an account.
type ArgonsMinted struct {
	mintEvent
	MintType  MintType
	AccountID AccountID
	UtxoID    *UtxoID
	Amount    Balance
}

func (ArgonsMinted) EventName() string { return "ArgonsMinted" }

func registerMintEvents(r *chain.EventRegistry) {
	r.Register("ArgonsMinted(mint_type:MintType,account_id:AccountId32,utxo_id:Option<u64>,amount:u128)",
		func() chain.Event { return &ArgonsMinted{} })
}

// MintStorage addresses Mint storage.
type MintStorage struct{}

// PendingMintUtxos are the bitcoin bonds still owed argons, in order.
func (MintStorage) PendingMintUtxos() *chain.StorageAddress[[]PendingMint] {
	return chain.NewStorageAddress[[]PendingMint](mintPallet, "PendingMintUtxos", nil,
		"PendingMintUtxos[]->BoundedVec<(u64,AccountId32,u128)>")
}

func (MintStorage) MintedMiningArgons() *chain.StorageAddress[scale.Uint256] {
	return chain.NewStorageAddress[scale.Uint256](mintPallet, "MintedMiningArgons", nil,
		"MintedMiningArgons[]->U256")
}

func (MintStorage) MintedBitcoinArgons() *chain.StorageAddress[scale.Uint256] {
	return chain.NewStorageAddress[scale.Uint256](mintPallet, "MintedBitcoinArgons", nil,
		"MintedBitcoinArgons[]->U256")
}

func mintBindings() []chain.Binding {
	storage := MintStorage{}
	return []chain.Binding{
		storage.PendingMintUtxos(),
		storage.MintedMiningArgons(),
		storage.MintedBitcoinArgons(),
	}
}
