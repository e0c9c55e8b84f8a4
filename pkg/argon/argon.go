// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package argon contains the typed bindings of the Argon runtime:
// call payloads, storage addresses, constants, events, module errors
// and runtime API payloads. Every binding carries the signature hash
// of the runtime item it was generated for, so a client can check
// the bindings against the metadata of the connected node.
package argon

import (
	"errors"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/metadata"
)

var (
	blake2Concat = []metadata.StorageHasher{metadata.Blake2_128Concat}
	twox64Concat = []metadata.StorageHasher{metadata.Twox64Concat}
	twox64Blake2 = []metadata.StorageHasher{metadata.Twox64Concat, metadata.Blake2_128Concat}
	twox64Twox64 = []metadata.StorageHasher{metadata.Twox64Concat, metadata.Twox64Concat}
)

// Events is the registry of the typed events of every pallet.
var Events = newEventRegistry()

func newEventRegistry() *chain.EventRegistry {
	registry := chain.NewEventRegistry()
	registerSystemEvents(registry)
	registerMultisigEvents(registry)
	registerProxyEvents(registry)
	registerMiningSlotEvents(registry)
	registerBitcoinUtxosEvents(registry)
	registerVaultsEvents(registry)
	registerBondsEvents(registry)
	registerNotariesEvents(registry)
	registerNotebookEvents(registry)
	registerChainTransferEvents(registry)
	registerBlockSealSpecEvents(registry)
	registerDataDomainEvents(registry)
	registerPriceIndexEvents(registry)
	registerBlockRewardsEvents(registry)
	registerGrandpaEvents(registry)
	registerMintEvents(registry)
	registerBalancesEvents[Argons](registry)
	registerBalancesEvents[Ulixees](registry)
	registerTxPauseEvents(registry)
	registerTransactionPaymentEvents(registry)
	registerSudoEvents(registry)
	return registry
}

// TxAPI groups the call payload constructors by pallet.
type TxAPI struct{}

// Tx returns the call payload constructors.
func Tx() TxAPI { return TxAPI{} }

func (TxAPI) System() SystemTx                    { return SystemTx{} }
func (TxAPI) Timestamp() TimestampTx              { return TimestampTx{} }
func (TxAPI) Multisig() MultisigTx                { return MultisigTx{} }
func (TxAPI) Proxy() ProxyTx                      { return ProxyTx{} }
func (TxAPI) MiningSlot() MiningSlotTx            { return MiningSlotTx{} }
func (TxAPI) BitcoinUtxos() BitcoinUtxosTx        { return BitcoinUtxosTx{} }
func (TxAPI) Vaults() VaultsTx                    { return VaultsTx{} }
func (TxAPI) Bonds() BondsTx                      { return BondsTx{} }
func (TxAPI) Notaries() NotariesTx                { return NotariesTx{} }
func (TxAPI) Notebook() NotebookTx                { return NotebookTx{} }
func (TxAPI) ChainTransfer() ChainTransferTx      { return ChainTransferTx{} }
func (TxAPI) BlockSealSpec() BlockSealSpecTx      { return BlockSealSpecTx{} }
func (TxAPI) DataDomain() DataDomainTx            { return DataDomainTx{} }
func (TxAPI) PriceIndex() PriceIndexTx            { return PriceIndexTx{} }
func (TxAPI) BlockSeal() BlockSealTx              { return BlockSealTx{} }
func (TxAPI) BlockRewards() BlockRewardsTx        { return BlockRewardsTx{} }
func (TxAPI) Grandpa() GrandpaTx                  { return GrandpaTx{} }
func (TxAPI) ArgonBalances() BalancesTx[Argons]   { return BalancesTx[Argons]{} }
func (TxAPI) UlixeeBalances() BalancesTx[Ulixees] { return BalancesTx[Ulixees]{} }
func (TxAPI) TxPause() TxPauseTx                  { return TxPauseTx{} }
func (TxAPI) Sudo() SudoTx                        { return SudoTx{} }

// StorageAPI groups the storage addresses by pallet.
type StorageAPI struct{}

// Storage returns the storage address constructors.
func Storage() StorageAPI { return StorageAPI{} }

func (StorageAPI) System() SystemStorage                         { return SystemStorage{} }
func (StorageAPI) Timestamp() TimestampStorage                   { return TimestampStorage{} }
func (StorageAPI) Multisig() MultisigStorage                     { return MultisigStorage{} }
func (StorageAPI) Proxy() ProxyStorage                           { return ProxyStorage{} }
func (StorageAPI) MiningSlot() MiningSlotStorage                 { return MiningSlotStorage{} }
func (StorageAPI) BitcoinUtxos() BitcoinUtxosStorage             { return BitcoinUtxosStorage{} }
func (StorageAPI) Vaults() VaultsStorage                         { return VaultsStorage{} }
func (StorageAPI) Bonds() BondsStorage                           { return BondsStorage{} }
func (StorageAPI) Notaries() NotariesStorage                     { return NotariesStorage{} }
func (StorageAPI) Notebook() NotebookStorage                     { return NotebookStorage{} }
func (StorageAPI) ChainTransfer() ChainTransferStorage           { return ChainTransferStorage{} }
func (StorageAPI) BlockSealSpec() BlockSealSpecStorage           { return BlockSealSpecStorage{} }
func (StorageAPI) DataDomain() DataDomainStorage                 { return DataDomainStorage{} }
func (StorageAPI) PriceIndex() PriceIndexStorage                 { return PriceIndexStorage{} }
func (StorageAPI) BlockSeal() BlockSealStorage                   { return BlockSealStorage{} }
func (StorageAPI) BlockRewards() BlockRewardsStorage             { return BlockRewardsStorage{} }
func (StorageAPI) Grandpa() GrandpaStorage                       { return GrandpaStorage{} }
func (StorageAPI) Mint() MintStorage                             { return MintStorage{} }
func (StorageAPI) ArgonBalances() BalancesStorage[Argons]        { return BalancesStorage[Argons]{} }
func (StorageAPI) UlixeeBalances() BalancesStorage[Ulixees]      { return BalancesStorage[Ulixees]{} }
func (StorageAPI) TxPause() TxPauseStorage                       { return TxPauseStorage{} }
func (StorageAPI) TransactionPayment() TransactionPaymentStorage { return TransactionPaymentStorage{} }
func (StorageAPI) Sudo() SudoStorage                             { return SudoStorage{} }

// ConstantsAPI groups the constant addresses by pallet.
type ConstantsAPI struct{}

// Constants returns the constant address constructors.
func Constants() ConstantsAPI { return ConstantsAPI{} }

func (ConstantsAPI) System() SystemConstants                         { return SystemConstants{} }
func (ConstantsAPI) Timestamp() TimestampConstants                   { return TimestampConstants{} }
func (ConstantsAPI) Multisig() MultisigConstants                     { return MultisigConstants{} }
func (ConstantsAPI) Proxy() ProxyConstants                           { return ProxyConstants{} }
func (ConstantsAPI) MiningSlot() MiningSlotConstants                 { return MiningSlotConstants{} }
func (ConstantsAPI) BitcoinUtxos() BitcoinUtxosConstants             { return BitcoinUtxosConstants{} }
func (ConstantsAPI) Vaults() VaultsConstants                         { return VaultsConstants{} }
func (ConstantsAPI) Bonds() BondsConstants                           { return BondsConstants{} }
func (ConstantsAPI) Notaries() NotariesConstants                     { return NotariesConstants{} }
func (ConstantsAPI) ChainTransfer() ChainTransferConstants           { return ChainTransferConstants{} }
func (ConstantsAPI) BlockSealSpec() BlockSealSpecConstants           { return BlockSealSpecConstants{} }
func (ConstantsAPI) DataDomain() DataDomainConstants                 { return DataDomainConstants{} }
func (ConstantsAPI) PriceIndex() PriceIndexConstants                 { return PriceIndexConstants{} }
func (ConstantsAPI) BlockRewards() BlockRewardsConstants             { return BlockRewardsConstants{} }
func (ConstantsAPI) Grandpa() GrandpaConstants                       { return GrandpaConstants{} }
func (ConstantsAPI) ArgonBalances() BalancesConstants[Argons]        { return BalancesConstants[Argons]{} }
func (ConstantsAPI) UlixeeBalances() BalancesConstants[Ulixees]      { return BalancesConstants[Ulixees]{} }
func (ConstantsAPI) TransactionPayment() TransactionPaymentConstants { return TransactionPaymentConstants{} }

// Bindings returns every binding of the package: calls, storage
// entries, constants, events and runtime API methods.
func Bindings() []chain.Binding {
	groups := [][]chain.Binding{
		systemBindings(),
		timestampBindings(),
		multisigBindings(),
		proxyBindings(),
		miningSlotBindings(),
		bitcoinUtxosBindings(),
		vaultsBindings(),
		bondsBindings(),
		notariesBindings(),
		notebookBindings(),
		chainTransferBindings(),
		blockSealSpecBindings(),
		dataDomainBindings(),
		priceIndexBindings(),
		blockSealBindings(),
		blockRewardsBindings(),
		grandpaBindings(),
		mintBindings(),
		balancesBindings[Argons](),
		balancesBindings[Ulixees](),
		txPauseBindings(),
		transactionPaymentBindings(),
		sudoBindings(),
		Apis().bindings(),
	}

	var bindings []chain.Binding
	for _, group := range groups {
		bindings = append(bindings, group...)
	}
	for _, descriptor := range Events.Descriptors() {
		bindings = append(bindings, descriptor)
	}
	return bindings
}

// IsModuleError returns true if err wraps a dispatch error
// which is the module error of the pallet and name given.
func IsModuleError(err error, pallet, name string) bool {
	var dispatchError *chain.DispatchError
	return errors.As(err, &dispatchError) && dispatchError.IsModuleError(pallet, name)
}
