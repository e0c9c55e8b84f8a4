// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

// RuntimeAPIs groups the runtime API payload constructors by trait.
type RuntimeAPIs struct{}

// Apis returns the runtime API payload constructors.
func Apis() RuntimeAPIs { return RuntimeAPIs{} }

func (RuntimeAPIs) Core() CoreAPI                             { return CoreAPI{} }
func (RuntimeAPIs) AccountNonce() AccountNonceAPI             { return AccountNonceAPI{} }
func (RuntimeAPIs) TransactionPayment() TransactionPaymentAPI { return TransactionPaymentAPI{} }
func (RuntimeAPIs) BlockSeal() BlockSealAPI                   { return BlockSealAPI{} }
func (RuntimeAPIs) Notary() NotaryAPI                         { return NotaryAPI{} }
func (RuntimeAPIs) Bitcoin() BitcoinAPI                       { return BitcoinAPI{} }
func (RuntimeAPIs) Mining() MiningAPI                         { return MiningAPI{} }
func (RuntimeAPIs) Notebook() NotebookAPI                     { return NotebookAPI{} }

func (a RuntimeAPIs) bindings() []chain.Binding {
	return []chain.Binding{
		a.Core().Version(),
		a.AccountNonce().AccountNonce(AccountID{}),
		a.TransactionPayment().QueryInfo(nil, 0),
		a.BlockSeal().VoteMinimum(),
		a.BlockSeal().ComputeDifficulty(),
		a.Notary().Notaries(),
		a.Bitcoin().GetBitcoinNetwork(),
		a.Bitcoin().RedemptionRate(0),
		a.Bitcoin().MarketRate(0),
		a.Mining().GetAuthorityID(AccountID{}),
		a.Notebook().LatestNotebookByNotary(),
	}
}

// RuntimeVersion is the version of the runtime.
type RuntimeVersion struct {
	SpecName           string
	ImplName           string
	AuthoringVersion   uint32
	SpecVersion        uint32
	ImplVersion        uint32
	Apis               []RuntimeAPIVersion
	TransactionVersion uint32
	StateVersion       uint8
}

// RuntimeAPIVersion is the version of a runtime API trait. The id is
// the blake2b-64 hash of the trait name.
type RuntimeAPIVersion struct {
	ID      [8]byte
	Version uint32
}

// CoreAPI builds Core runtime API payloads.
type CoreAPI struct{}

// Version returns the version of the runtime.
func (CoreAPI) Version() *chain.RuntimeAPIPayload[RuntimeVersion] {
	return chain.NewRuntimeAPIPayload[RuntimeVersion]("Core", "version", "Core_version()->RuntimeVersion")
}

// AccountNonceAPI builds AccountNonceApi runtime API payloads.
type AccountNonceAPI struct{}

// AccountNonce returns the nonce of the account, not counting
// transactions in the pool.
func (AccountNonceAPI) AccountNonce(account AccountID) *chain.RuntimeAPIPayload[uint32] {
	return chain.NewRuntimeAPIPayload[uint32]("AccountNonceApi", "account_nonce",
		"AccountNonceApi_account_nonce(account:AccountId32)->u32", account)
}

// RuntimeDispatchInfo is the weight, class and fee of an extrinsic.
type RuntimeDispatchInfo struct {
	Weight     Weight
	Class      DispatchClass
	PartialFee Balance
}

// TransactionPaymentAPI builds TransactionPaymentApi runtime API payloads.
type TransactionPaymentAPI struct{}

const uncheckedExtrinsicType = "UncheckedExtrinsic<MultiAddress<AccountId32,()>,RuntimeCall,MultiSignature," +
	"(CheckNonZeroSender<Runtime>,CheckSpecVersion<Runtime>,CheckTxVersion<Runtime>,CheckGenesis<Runtime>," +
	"CheckMortality<Runtime>,CheckNonce<Runtime>,CheckWeight<Runtime>,ChargeTransactionPayment<Runtime>," +
	"CheckMetadataHash<Runtime>)>"

// QueryInfo estimates the fee of the signed extrinsic of the
// encoded length given.
func (TransactionPaymentAPI) QueryInfo(extrinsic Extrinsic, length uint32) *chain.RuntimeAPIPayload[RuntimeDispatchInfo] {
	return chain.NewRuntimeAPIPayload[RuntimeDispatchInfo]("TransactionPaymentApi", "query_info",
		"TransactionPaymentApi_query_info(uxt:"+uncheckedExtrinsicType+",len:u32)->RuntimeDispatchInfo<u128,Weight>",
		extrinsic, length)
}

// BlockSealAPI builds BlockSealApis runtime API payloads.
type BlockSealAPI struct{}

// VoteMinimum is the minimum vote power of a block vote.
func (BlockSealAPI) VoteMinimum() *chain.RuntimeAPIPayload[Balance] {
	return chain.NewRuntimeAPIPayload[Balance]("BlockSealApis", "vote_minimum",
		"BlockSealApis_vote_minimum()->u128")
}

// ComputeDifficulty is the difficulty of a compute seal.
func (BlockSealAPI) ComputeDifficulty() *chain.RuntimeAPIPayload[Balance] {
	return chain.NewRuntimeAPIPayload[Balance]("BlockSealApis", "compute_difficulty",
		"BlockSealApis_compute_difficulty()->u128")
}

// NotaryAPI builds NotaryApis runtime API payloads.
type NotaryAPI struct{}

func (NotaryAPI) Notaries() *chain.RuntimeAPIPayload[[]NotaryRecord] {
	return chain.NewRuntimeAPIPayload[[]NotaryRecord]("NotaryApis", "notaries",
		"NotaryApis_notaries()->Vec<NotaryRecord<AccountId32,u32>>")
}

// BitcoinAPI builds BitcoinApis runtime API payloads.
type BitcoinAPI struct{}

func (BitcoinAPI) GetBitcoinNetwork() *chain.RuntimeAPIPayload[BitcoinNetwork] {
	return chain.NewRuntimeAPIPayload[BitcoinNetwork]("BitcoinApis", "get_bitcoin_network",
		"BitcoinApis_get_bitcoin_network()->BitcoinNetwork")
}

// RedemptionRate is the argons needed to unlock the satoshis. It is
// nil when no price is known.
func (BitcoinAPI) RedemptionRate(satoshis Satoshis) *chain.RuntimeAPIPayload[*Balance] {
	return chain.NewRuntimeAPIPayload[*Balance]("BitcoinApis", "redemption_rate",
		"BitcoinApis_redemption_rate(satoshis:u64)->Option<u128>", satoshis)
}

// MarketRate is the argon value of the satoshis. It is nil when no
// price is known.
func (BitcoinAPI) MarketRate(satoshis Satoshis) *chain.RuntimeAPIPayload[*Balance] {
	return chain.NewRuntimeAPIPayload[*Balance]("BitcoinApis", "market_rate",
		"BitcoinApis_market_rate(satoshis:u64)->Option<u128>", satoshis)
}

// MiningAuthority is an active miner and its block sealing key.
type MiningAuthority struct {
	AuthorityID    [32]byte
	AccountID      AccountID
	AuthorityIndex uint32
}

// MiningAPI builds MiningApis runtime API payloads.
type MiningAPI struct{}

// GetAuthorityID is the mining authority of the account. It is nil
// when the account is not an active miner.
func (MiningAPI) GetAuthorityID(account AccountID) *chain.RuntimeAPIPayload[*MiningAuthority] {
	return chain.NewRuntimeAPIPayload[*MiningAuthority]("MiningApis", "get_authority_id",
		"MiningApis_get_authority_id(account_id:AccountId32)->Option<MiningAuthority<Public,AccountId32>>",
		account)
}

// LatestNotebook is the last notebook of a notary.
type LatestNotebook struct {
	NotaryID       NotaryID
	NotebookNumber NotebookNumber
	Tick           Tick
}

// NotebookAPI builds NotebookApis runtime API payloads.
type NotebookAPI struct{}

// LatestNotebookByNotary returns the last notebook of each notary,
// ordered by notary id.
func (NotebookAPI) LatestNotebookByNotary() *chain.RuntimeAPIPayload[[]LatestNotebook] {
	return chain.NewRuntimeAPIPayload[[]LatestNotebook]("NotebookApis", "latest_notebook_by_notary",
		"NotebookApis_latest_notebook_by_notary()->BTreeMap<u32,(u32,u64)>")
}
