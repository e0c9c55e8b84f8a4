// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"encoding/binary"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const bondsPallet = "Bonds"

// Bonds module errors.
const (
	BondsErrorBondNotFound                          = "BondNotFound"
	BondsErrorNoMoreBondIds                         = "NoMoreBondIds"
	BondsErrorMinimumBondAmountNotMet               = "MinimumBondAmountNotMet"
	BondsErrorExpirationAtBlockOverflow             = "ExpirationAtBlockOverflow"
	BondsErrorInsufficientFunds                     = "InsufficientFunds"
	BondsErrorInsufficientVaultFunds                = "InsufficientVaultFunds"
	BondsErrorInsufficientSatoshisBonded            = "InsufficientSatoshisBonded"
	BondsErrorNoBitcoinPricesAvailable              = "NoBitcoinPricesAvailable"
	BondsErrorBitcoinPubkeyUnableToBeDecoded        = "BitcoinPubkeyUnableToBeDecoded"
	BondsErrorBitcoinUtxoNotFound                   = "BitcoinUtxoNotFound"
	BondsErrorBitcoinUnlockInitiationDeadlinePassed = "BitcoinUnlockInitiationDeadlinePassed"
	BondsErrorBitcoinFeeTooHigh                     = "BitcoinFeeTooHigh"
	BondsErrorInvalidBondType                       = "InvalidBondType"
	BondsErrorNoPermissions                         = "NoPermissions"
	BondsErrorVaultClosed                           = "VaultClosed"
	BondsErrorVaultNotFound                         = "VaultNotFound"
	BondsErrorBondRedemptionNotLocked               = "BondRedemptionNotLocked"
	BondsErrorUnrecoverableHold                     = "UnrecoverableHold"
)

// BondType is what a bond secures.
type BondType uint8

// Bond types.
const (
	BondTypeMining BondType = iota
	BondTypeBitcoin
)

func (t BondType) String() string {
	switch t {
	case BondTypeMining:
		return "Mining"
	case BondTypeBitcoin:
		return "Bitcoin"
	default:
		return "Unknown"
	}
}

// BondExpiration is the argon or bitcoin block a bond expires at.
// Exactly one of the two is set.
type BondExpiration struct {
	ArgonBlock   *BlockNumber
	BitcoinBlock *uint64
}

const (
	bondExpirationArgonBlock   = 0
	bondExpirationBitcoinBlock = 1
)

// MarshalSCALE encodes the expiration variant.
func (e BondExpiration) MarshalSCALE() ([]byte, error) {
	switch {
	case e.ArgonBlock != nil && e.BitcoinBlock == nil:
		return binary.LittleEndian.AppendUint32([]byte{bondExpirationArgonBlock}, *e.ArgonBlock), nil
	case e.BitcoinBlock != nil && e.ArgonBlock == nil:
		return binary.LittleEndian.AppendUint64([]byte{bondExpirationBitcoinBlock}, *e.BitcoinBlock), nil
	default:
		return nil, fmt.Errorf("%w: bond expiration needs exactly one block", scale.ErrVaryingDataTypeNotSet)
	}
}

// UnmarshalSCALE decodes the expiration variant.
func (e *BondExpiration) UnmarshalSCALE(r scale.Reader) error {
	index, err := r.ReadByte()
	if err != nil {
		return err
	}

	*e = BondExpiration{}
	decoder := scale.NewDecoder(r)
	switch index {
	case bondExpirationArgonBlock:
		e.ArgonBlock = new(BlockNumber)
		return decoder.Decode(e.ArgonBlock)
	case bondExpirationBitcoinBlock:
		e.BitcoinBlock = new(uint64)
		return decoder.Decode(e.BitcoinBlock)
	default:
		return fmt.Errorf("%w: bond expiration variant %d", scale.ErrUnknownVaryingDataTypeIndex, index)
	}
}

// Bond is the BondsById value.
type Bond struct {
	BondType        BondType
	VaultID         VaultID
	UtxoID          *UtxoID
	BondedAccountID AccountID
	TotalFee        Balance
	PrepaidFee      Balance
	Amount          Balance
	StartBlock      BlockNumber
	Expiration      BondExpiration
}

// CompressedBitcoinPubkey is a compressed secp256k1 public key.
type CompressedBitcoinPubkey [33]byte

// UtxoState is a bitcoin utxo bonded in a vault.
type UtxoState struct {
	BondID           BondID
	Satoshis         Satoshis
	VaultPubkey      CompressedBitcoinPubkey
	VaultClaimPubkey CompressedBitcoinPubkey
	OwnerPubkey      CompressedBitcoinPubkey
	VaultClaimHeight uint64
	OpenClaimHeight  uint64
	CreatedAtHeight  uint64
	// UtxoScriptPubkey is the P2WSH script hash of the cosign script.
	UtxoScriptPubkey common.Hash
	IsVerified       bool
}

// UtxoCosignRequest is an unlock waiting for the vault signature.
type UtxoCosignRequest struct {
	BondID            BondID
	VaultID           VaultID
	BitcoinNetworkFee Satoshis
	CosignDueBlock    uint64
	ToScriptPubkey    []byte
	RedemptionPrice   Balance
}

// PendingUnlock is a utxo being unlocked.
type PendingUnlock struct {
	UtxoID  UtxoID
	Request UtxoCosignRequest
}

type bondsEvent struct{}

func (bondsEvent) PalletName() string { return bondsPallet }

// BondCreated is emitted when a vault bonds argons.
type BondCreated struct {
	bondsEvent
	VaultID         VaultID
	BondID          BondID
	BondType        BondType
	BondedAccountID AccountID
	UtxoID          *UtxoID
	Amount          Balance
	Expiration      BondExpiration
}

func (BondCreated) EventName() string { return "BondCreated" }

type BondCompleted struct {
	bondsEvent
	VaultID *VaultID
	BondID  BondID
}

func (BondCompleted) EventName() string { return "BondCompleted" }

type BondCanceled struct {
	bondsEvent
	VaultID         VaultID
	BondID          BondID
	BondedAccountID AccountID
	BondType        BondType
	ReturnedFee     Balance
}

func (BondCanceled) EventName() string { return "BondCanceled" }

type BitcoinBondBurned struct {
	bondsEvent
	VaultID      VaultID
	BondID       BondID
	UtxoID       UtxoID
	AmountBurned Balance
	AmountHeld   Balance
	WasUtxoSpent bool
}

func (BitcoinBondBurned) EventName() string { return "BitcoinBondBurned" }

// BitcoinUtxoCosignRequested is emitted when a bond owner asks the
// vault to cosign the unlock of a utxo.
type BitcoinUtxoCosignRequested struct {
	bondsEvent
	BondID  BondID
	VaultID VaultID
	UtxoID  UtxoID
}

func (BitcoinUtxoCosignRequested) EventName() string { return "BitcoinUtxoCosignRequested" }

type BitcoinUtxoCosigned struct {
	bondsEvent
	BondID    BondID
	VaultID   VaultID
	UtxoID    UtxoID
	Signature []byte
}

func (BitcoinUtxoCosigned) EventName() string { return "BitcoinUtxoCosigned" }

type BitcoinCosignPastDue struct {
	bondsEvent
	VaultID               VaultID
	BondID                BondID
	UtxoID                UtxoID
	CompensationAmount    Balance
	CompensationStillOwed Balance
	CompensatedAccountID  AccountID
}

func (BitcoinCosignPastDue) EventName() string { return "BitcoinCosignPastDue" }

func registerBondsEvents(r *chain.EventRegistry) {
	r.Register("BondCreated(vault_id:u32,bond_id:u64,bond_type:BondType,bonded_account_id:AccountId32,"+
		"utxo_id:Option<u64>,amount:u128,expiration:BondExpiration<u32>)",
		func() chain.Event { return &BondCreated{} })
	r.Register("BondCompleted(vault_id:Option<u32>,bond_id:u64)",
		func() chain.Event { return &BondCompleted{} })
	r.Register("BondCanceled(vault_id:u32,bond_id:u64,bonded_account_id:AccountId32,bond_type:BondType,"+
		"returned_fee:u128)",
		func() chain.Event { return &BondCanceled{} })
	r.Register("BitcoinBondBurned(vault_id:u32,bond_id:u64,utxo_id:u64,amount_burned:u128,amount_held:u128,"+
		"was_utxo_spent:bool)",
		func() chain.Event { return &BitcoinBondBurned{} })
	r.Register("BitcoinUtxoCosignRequested(bond_id:u64,vault_id:u32,utxo_id:u64)",
		func() chain.Event { return &BitcoinUtxoCosignRequested{} })
	r.Register("BitcoinUtxoCosigned(bond_id:u64,vault_id:u32,utxo_id:u64,signature:BitcoinSignature)",
		func() chain.Event { return &BitcoinUtxoCosigned{} })
	r.Register("BitcoinCosignPastDue(vault_id:u32,bond_id:u64,utxo_id:u64,compensation_amount:u128,"+
		"compensation_still_owed:u128,compensated_account_id:AccountId32)",
		func() chain.Event { return &BitcoinCosignPastDue{} })
}

// BondsTx builds Bonds calls.
type BondsTx struct{}

// BondBitcoin bonds argons of the vault against the satoshis the
// owner of the bitcoin pubkey will lock.
func (BondsTx) BondBitcoin(vault VaultID, satoshis Satoshis, pubkey CompressedBitcoinPubkey) *chain.Payload {
	args := struct {
		VaultID       VaultID
		Satoshis      Satoshis
		BitcoinPubkey CompressedBitcoinPubkey
	}{vault, satoshis, pubkey}
	return chain.NewPayload(bondsPallet, "bond_bitcoin", args,
		"bond_bitcoin(vault_id:u32,satoshis:u64,bitcoin_pubkey:CompressedBitcoinPubkey)")
}

// UnlockBitcoinBond asks the vault to cosign the release of the utxo
// to the script pubkey given.
func (BondsTx) UnlockBitcoinBond(bond BondID, toScriptPubkey []byte, networkFee Satoshis) *chain.Payload {
	args := struct {
		BondID            BondID
		ToScriptPubkey    []byte
		BitcoinNetworkFee Satoshis
	}{bond, toScriptPubkey, networkFee}
	return chain.NewPayload(bondsPallet, "unlock_bitcoin_bond", args,
		"unlock_bitcoin_bond(bond_id:u64,to_script_pubkey:BitcoinScriptPubkey,bitcoin_network_fee:u64)")
}

func (BondsTx) CosignBitcoinUnlock(bond BondID, signature []byte) *chain.Payload {
	args := struct {
		BondID    BondID
		Signature []byte
	}{bond, signature}
	return chain.NewPayload(bondsPallet, "cosign_bitcoin_unlock", args,
		"cosign_bitcoin_unlock(bond_id:u64,signature:BitcoinSignature)")
}

// BondsStorage addresses Bonds storage.
type BondsStorage struct{}

const (
	bondsByIDSignature             = "BondsById[Twox64Concat(u64)]->Bond<AccountId32,u128,u32>"
	utxosByIDSignature             = "UtxosById[Twox64Concat(u64)]->UtxoState"
	miningBondCompletionsSignature = "MiningBondCompletions[Twox64Concat(u32)]->BoundedVec<u64>"
)

func (BondsStorage) NextBondID() *chain.StorageAddress[BondID] {
	return chain.NewStorageAddress[BondID](bondsPallet, "NextBondId", nil, "NextBondId[]->u64")
}

// BondsByID is the bond of the id given.
func (BondsStorage) BondsByID(id BondID) *chain.StorageAddress[Bond] {
	return chain.NewStorageAddress[Bond](bondsPallet, "BondsById", twox64Concat, bondsByIDSignature, id)
}

func (BondsStorage) BondsByIDIter() *chain.StorageAddress[Bond] {
	return chain.NewStorageAddress[Bond](bondsPallet, "BondsById", twox64Concat, bondsByIDSignature)
}

func (BondsStorage) UtxosByID(id UtxoID) *chain.StorageAddress[UtxoState] {
	return chain.NewStorageAddress[UtxoState](bondsPallet, "UtxosById", twox64Concat, utxosByIDSignature, id)
}

func (BondsStorage) UtxosByIDIter() *chain.StorageAddress[UtxoState] {
	return chain.NewStorageAddress[UtxoState](bondsPallet, "UtxosById", twox64Concat, utxosByIDSignature)
}

// MiningBondCompletions are the mining bonds expiring at the block.
func (BondsStorage) MiningBondCompletions(block BlockNumber) *chain.StorageAddress[[]BondID] {
	return chain.NewStorageAddress[[]BondID](bondsPallet, "MiningBondCompletions", twox64Concat,
		miningBondCompletionsSignature, block)
}

func (BondsStorage) MiningBondCompletionsIter() *chain.StorageAddress[[]BondID] {
	return chain.NewStorageAddress[[]BondID](bondsPallet, "MiningBondCompletions", twox64Concat,
		miningBondCompletionsSignature)
}

func (BondsStorage) UtxosPendingUnlock() *chain.StorageAddress[[]PendingUnlock] {
	return chain.NewStorageAddress[[]PendingUnlock](bondsPallet, "UtxosPendingUnlock", nil,
		"UtxosPendingUnlock[]->BoundedBTreeMap<u64,UtxoCosignRequest<u128>>")
}

// BondsConstants addresses Bonds constants.
type BondsConstants struct{}

func (BondsConstants) MaxUnlockingUtxos() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](bondsPallet, "MaxUnlockingUtxos", "MaxUnlockingUtxos:u32")
}

func (BondsConstants) MaxConcurrentlyExpiringBonds() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](bondsPallet, "MaxConcurrentlyExpiringBonds",
		"MaxConcurrentlyExpiringBonds:u32")
}

// MinimumBitcoinBondSatoshis is the smallest utxo a bitcoin bond accepts.
func (BondsConstants) MinimumBitcoinBondSatoshis() *chain.ConstantAddress[Satoshis] {
	return chain.NewConstantAddress[Satoshis](bondsPallet, "MinimumBitcoinBondSatoshis",
		"MinimumBitcoinBondSatoshis:u64")
}

func (BondsConstants) BitcoinBondDurationBlocks() *chain.ConstantAddress[uint64] {
	return chain.NewConstantAddress[uint64](bondsPallet, "BitcoinBondDurationBlocks",
		"BitcoinBondDurationBlocks:u64")
}

func (BondsConstants) UtxoUnlockCosignDeadlineBlocks() *chain.ConstantAddress[uint64] {
	return chain.NewConstantAddress[uint64](bondsPallet, "UtxoUnlockCosignDeadlineBlocks",
		"UtxoUnlockCosignDeadlineBlocks:u64")
}

func bondsBindings() []chain.Binding {
	tx, storage, constants := BondsTx{}, BondsStorage{}, BondsConstants{}
	return []chain.Binding{
		tx.BondBitcoin(0, 0, CompressedBitcoinPubkey{}),
		tx.UnlockBitcoinBond(0, nil, 0),
		tx.CosignBitcoinUnlock(0, nil),
		storage.NextBondID(),
		storage.BondsByIDIter(),
		storage.UtxosByIDIter(),
		storage.MiningBondCompletionsIter(),
		storage.UtxosPendingUnlock(),
		constants.MaxUnlockingUtxos(),
		constants.MaxConcurrentlyExpiringBonds(),
		constants.MinimumBitcoinBondSatoshis(),
		constants.BitcoinBondDurationBlocks(),
		constants.UtxoUnlockCosignDeadlineBlocks(),
	}
}
