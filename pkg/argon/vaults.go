// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const vaultsPallet = "Vaults"

// Vaults module errors.
const (
	VaultsErrorBondNotFound                       = "BondNotFound"
	VaultsErrorNoMoreVaultIds                     = "NoMoreVaultIds"
	VaultsErrorNoMoreBondIds                      = "NoMoreBondIds"
	VaultsErrorMinimumBondAmountNotMet            = "MinimumBondAmountNotMet"
	VaultsErrorExpirationAtBlockOverflow          = "ExpirationAtBlockOverflow"
	VaultsErrorInsufficientFunds                  = "InsufficientFunds"
	VaultsErrorInsufficientVaultFunds             = "InsufficientVaultFunds"
	VaultsErrorInsufficientBitcoinsForMining      = "InsufficientBitcoinsForMining"
	VaultsErrorAccountBelowMinimumBalance         = "AccountBelowMinimumBalance"
	VaultsErrorVaultClosed                        = "VaultClosed"
	VaultsErrorInvalidVaultAmount                 = "InvalidVaultAmount"
	VaultsErrorVaultReductionBelowAllocatedFunds  = "VaultReductionBelowAllocatedFunds"
	VaultsErrorInvalidSecuritization              = "InvalidSecuritization"
	VaultsErrorReusedVaultBitcoinXpub             = "ReusedVaultBitcoinXpub"
	VaultsErrorMaxSecuritizationPercentExceeded   = "MaxSecuritizationPercentExceeded"
	VaultsErrorInvalidBondType                    = "InvalidBondType"
	VaultsErrorBitcoinUtxoNotFound                = "BitcoinUtxoNotFound"
	VaultsErrorNoPermissions                      = "NoPermissions"
	VaultsErrorHoldUnexpectedlyModified           = "HoldUnexpectedlyModified"
	VaultsErrorUnrecoverableHold                  = "UnrecoverableHold"
	VaultsErrorVaultNotFound                      = "VaultNotFound"
	VaultsErrorNoVaultBitcoinPubkeysAvailable     = "NoVaultBitcoinPubkeysAvailable"
	VaultsErrorTermsModificationOverflow          = "TermsModificationOverflow"
	VaultsErrorTermsChangeAlreadyScheduled        = "TermsChangeAlreadyScheduled"
	VaultsErrorInternalError                      = "InternalError"
	VaultsErrorUnableToGenerateVaultBitcoinPubkey = "UnableToGenerateVaultBitcoinPubkey"
	VaultsErrorUnableToDecodeVaultBitcoinPubkey   = "UnableToDecodeVaultBitcoinPubkey"
)

// VaultTerms are the fees a vault charges for bonds.
type VaultTerms struct {
	BitcoinAnnualPercentRate       FixedU128
	BitcoinBaseFee                 Balance
	MiningAnnualPercentRate        FixedU128
	MiningBaseFee                  Balance
	MiningRewardSharingPercentTake FixedU128
}

// OpaqueBitcoinXpub is an encoded bip32 extended public key.
type OpaqueBitcoinXpub [78]byte

// VaultConfig creates a vault.
type VaultConfig struct {
	Terms                  VaultTerms
	BitcoinAmountAllocated Balance
	BitcoinXpubkey         OpaqueBitcoinXpub
	MiningAmountAllocated  Balance
	SecuritizationPercent  FixedU128
}

// VaultArgons are the argons a vault allocates to one bond type.
type VaultArgons struct {
	AnnualPercentRate FixedU128
	Allocated         Balance
	Bonded            Balance
	BaseFee           Balance
}

// PendingTerms are the terms applied at the block given.
type PendingTerms struct {
	Block BlockNumber
	Terms VaultTerms
}

// Vault is the VaultsById value.
type Vault struct {
	OperatorAccountID              AccountID
	BitcoinArgons                  VaultArgons
	SecuritizationPercent          FixedU128
	SecuritizedArgons              Balance
	MiningArgons                   VaultArgons
	MiningRewardSharingPercentTake FixedU128
	IsClosed                       bool
	PendingTerms                   *PendingTerms
}

// BitcoinXPub is a decoded bip32 extended public key.
type BitcoinXPub struct {
	PublicKey         [33]byte
	Depth             uint8
	ParentFingerprint [4]byte
	ChildNumber       uint32
	ChainCode         [32]byte
	Network           uint8
}

// VaultXPub is a vault xpub with the index of its next derived key.
type VaultXPub struct {
	XPub      BitcoinXPub
	NextIndex uint32
}

type vaultsEvent struct{}

func (vaultsEvent) PalletName() string { return vaultsPallet }

type VaultCreated struct {
	vaultsEvent
	VaultID               VaultID
	BitcoinArgons         Balance
	MiningArgons          Balance
	SecuritizationPercent FixedU128
	OperatorAccountID     AccountID
}

func (VaultCreated) EventName() string { return "VaultCreated" }

type VaultModified struct {
	vaultsEvent
	VaultID               VaultID
	BitcoinArgons         Balance
	MiningArgons          Balance
	SecuritizationPercent FixedU128
}

func (VaultModified) EventName() string { return "VaultModified" }

// VaultTermsChangeScheduled is emitted when new terms are scheduled
// for the change block.
type VaultTermsChangeScheduled struct {
	vaultsEvent
	VaultID     VaultID
	ChangeBlock BlockNumber
}

func (VaultTermsChangeScheduled) EventName() string { return "VaultTermsChangeScheduled" }

type VaultTermsChanged struct {
	vaultsEvent
	VaultID VaultID
}

func (VaultTermsChanged) EventName() string { return "VaultTermsChanged" }

type VaultClosed struct {
	vaultsEvent
	VaultID                   VaultID
	BitcoinAmountStillBonded  Balance
	MiningAmountStillBonded   Balance
	SecuritizationStillBonded Balance
}

func (VaultClosed) EventName() string { return "VaultClosed" }

type VaultBitcoinXpubChange struct {
	vaultsEvent
	VaultID VaultID
}

func (VaultBitcoinXpubChange) EventName() string { return "VaultBitcoinXpubChange" }

func registerVaultsEvents(r *chain.EventRegistry) {
	r.Register("VaultCreated(vault_id:u32,bitcoin_argons:u128,mining_argons:u128,"+
		"securitization_percent:FixedU128,operator_account_id:AccountId32)",
		func() chain.Event { return &VaultCreated{} })
	r.Register("VaultModified(vault_id:u32,bitcoin_argons:u128,mining_argons:u128,"+
		"securitization_percent:FixedU128)",
		func() chain.Event { return &VaultModified{} })
	r.Register("VaultTermsChangeScheduled(vault_id:u32,change_block:u32)",
		func() chain.Event { return &VaultTermsChangeScheduled{} })
	r.Register("VaultTermsChanged(vault_id:u32)",
		func() chain.Event { return &VaultTermsChanged{} })
	r.Register("VaultClosed(vault_id:u32,bitcoin_amount_still_bonded:u128,mining_amount_still_bonded:u128,"+
		"securitization_still_bonded:u128)",
		func() chain.Event { return &VaultClosed{} })
	r.Register("VaultBitcoinXpubChange(vault_id:u32)",
		func() chain.Event { return &VaultBitcoinXpubChange{} })
}

// VaultsTx builds Vaults calls.
type VaultsTx struct{}

// Create opens a vault operated by the sender.
func (VaultsTx) Create(config VaultConfig) *chain.Payload {
	return chain.NewPayload(vaultsPallet, "create", struct{ VaultConfig VaultConfig }{config},
		"create(vault_config:VaultConfig<u128>)")
}

// ModifyFunding changes the argons offered by the vault. Reductions
// below the bonded amounts fail.
func (VaultsTx) ModifyFunding(id VaultID, mining, bitcoin Balance, securitization FixedU128) *chain.Payload {
	args := struct {
		VaultID                   VaultID
		TotalMiningAmountOffered  Balance
		TotalBitcoinAmountOffered Balance
		SecuritizationPercent     FixedU128
	}{id, mining, bitcoin, securitization}
	return chain.NewPayload(vaultsPallet, "modify_funding", args,
		"modify_funding(vault_id:u32,total_mining_amount_offered:u128,total_bitcoin_amount_offered:u128,"+
			"securitization_percent:FixedU128)")
}

func (VaultsTx) ModifyTerms(id VaultID, terms VaultTerms) *chain.Payload {
	args := struct {
		VaultID VaultID
		Terms   VaultTerms
	}{id, terms}
	return chain.NewPayload(vaultsPallet, "modify_terms", args,
		"modify_terms(vault_id:u32,terms:VaultTerms<u128>)")
}

func (VaultsTx) Close(id VaultID) *chain.Payload {
	return chain.NewPayload(vaultsPallet, "close", struct{ VaultID VaultID }{id},
		"close(vault_id:u32)")
}

func (VaultsTx) ReplaceBitcoinXpub(id VaultID, xpub OpaqueBitcoinXpub) *chain.Payload {
	args := struct {
		VaultID     VaultID
		BitcoinXpub OpaqueBitcoinXpub
	}{id, xpub}
	return chain.NewPayload(vaultsPallet, "replace_bitcoin_xpub", args,
		"replace_bitcoin_xpub(vault_id:u32,bitcoin_xpub:OpaqueBitcoinXpub)")
}

// VaultsStorage addresses Vaults storage.
type VaultsStorage struct{}

const (
	vaultsByIDSignature    = "VaultsById[Twox64Concat(u32)]->Vault<AccountId32,u128,u32>"
	vaultXPubByIDSignature = "VaultXPubById[Twox64Concat(u32)]->(BitcoinXPub,u32)"
)

func (VaultsStorage) NextVaultID() *chain.StorageAddress[VaultID] {
	return chain.NewStorageAddress[VaultID](vaultsPallet, "NextVaultId", nil, "NextVaultId[]->u32")
}

// VaultsByID is the vault of the id given.
func (VaultsStorage) VaultsByID(id VaultID) *chain.StorageAddress[Vault] {
	return chain.NewStorageAddress[Vault](vaultsPallet, "VaultsById", twox64Concat, vaultsByIDSignature, id)
}

func (VaultsStorage) VaultsByIDIter() *chain.StorageAddress[Vault] {
	return chain.NewStorageAddress[Vault](vaultsPallet, "VaultsById", twox64Concat, vaultsByIDSignature)
}

func (VaultsStorage) VaultXPubByID(id VaultID) *chain.StorageAddress[VaultXPub] {
	return chain.NewStorageAddress[VaultXPub](vaultsPallet, "VaultXPubById", twox64Concat,
		vaultXPubByIDSignature, id)
}

func (VaultsStorage) VaultXPubByIDIter() *chain.StorageAddress[VaultXPub] {
	return chain.NewStorageAddress[VaultXPub](vaultsPallet, "VaultXPubById", twox64Concat,
		vaultXPubByIDSignature)
}

// PendingTermsModificationsByBlock are the vaults whose terms change
// at the block.
func (VaultsStorage) PendingTermsModificationsByBlock(block BlockNumber) *chain.StorageAddress[[]VaultID] {
	return chain.NewStorageAddress[[]VaultID](vaultsPallet, "PendingTermsModificationsByBlock", twox64Concat,
		"PendingTermsModificationsByBlock[Twox64Concat(u32)]->BoundedVec<u32>", block)
}

func (VaultsStorage) PendingTermsModificationsByBlockIter() *chain.StorageAddress[[]VaultID] {
	return chain.NewStorageAddress[[]VaultID](vaultsPallet, "PendingTermsModificationsByBlock", twox64Concat,
		"PendingTermsModificationsByBlock[Twox64Concat(u32)]->BoundedVec<u32>")
}

// VaultsConstants addresses Vaults constants.
type VaultsConstants struct{}

func (VaultsConstants) MinimumBondAmount() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](vaultsPallet, "MinimumBondAmount", "MinimumBondAmount:u128")
}

func (VaultsConstants) BlocksPerDay() *chain.ConstantAddress[BlockNumber] {
	return chain.NewConstantAddress[BlockNumber](vaultsPallet, "BlocksPerDay", "BlocksPerDay:u32")
}

func (VaultsConstants) MaxPendingTermModificationsPerBlock() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](vaultsPallet, "MaxPendingTermModificationsPerBlock",
		"MaxPendingTermModificationsPerBlock:u32")
}

func (VaultsConstants) MinTermsModificationBlockDelay() *chain.ConstantAddress[BlockNumber] {
	return chain.NewConstantAddress[BlockNumber](vaultsPallet, "MinTermsModificationBlockDelay",
		"MinTermsModificationBlockDelay:u32")
}

func vaultsBindings() []chain.Binding {
	tx, storage, constants := VaultsTx{}, VaultsStorage{}, VaultsConstants{}
	return []chain.Binding{
		tx.Create(VaultConfig{}),
		tx.ModifyFunding(0, Balance{}, Balance{}, FixedU128{}),
		tx.ModifyTerms(0, VaultTerms{}),
		tx.Close(0),
		tx.ReplaceBitcoinXpub(0, OpaqueBitcoinXpub{}),
		storage.NextVaultID(),
		storage.VaultsByIDIter(),
		storage.VaultXPubByIDIter(),
		storage.PendingTermsModificationsByBlockIter(),
		constants.MinimumBondAmount(),
		constants.BlocksPerDay(),
		constants.MaxPendingTermModificationsPerBlock(),
		constants.MinTermsModificationBlockDelay(),
	}
}
