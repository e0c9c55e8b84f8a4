// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metadatatest

import (
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

// Pallet indices of the Argon specific pallets of the fixture.
const (
	ProxyIndex      uint8 = 3
	MiningSlotIndex uint8 = 4
	VaultsIndex     uint8 = 6
	BondsIndex      uint8 = 7
	NotebookIndex   uint8 = 8
)

// Fixture constant values of the Argon specific pallets.
const (
	MaxProxies        uint32 = 32
	MaxMiners         uint32 = 100
	MinimumBondAmount uint64 = 1_000_000
)

// sharedTypes are the registry types the Argon specific pallets
// refer to.
type sharedTypes struct {
	u8, u16, u32, u64, u128 metadata.TypeID
	boolean, bytes          metadata.TypeID
	accountID, h256         metadata.TypeID
	multiAddress            metadata.TypeID
	runtimeCall             metadata.TypeID
	dispatchResult          metadata.TypeID
}

func boundedVec(b *Builder, elem metadata.TypeID) metadata.TypeID {
	return b.Composite("bounded_collections::bounded_vec::BoundedVec",
		[]metadata.TypeParameter{Param("T", elem), {Name: "S"}},
		Unnamed(b.Sequence(elem)))
}

func option(b *Builder, elem metadata.TypeID) metadata.TypeID {
	return b.Variant("Option", []metadata.TypeParameter{Param("T", elem)},
		V(0, "None"), V(1, "Some", Unnamed(elem)))
}

// argonPallets registers the types of the Proxy, MiningSlot, Vaults,
// Bonds and Notebook pallets. The pallets are returned in index order
// for the caller to add after its own.
func argonPallets(b *Builder, s sharedTypes) []metadata.Pallet {
	return []metadata.Pallet{
		proxyPallet(b, s),
		miningSlotPallet(b, s),
		vaultsPallet(b, s),
		bondsPallet(b, s),
		notebookPallet(b, s),
	}
}

func proxyPallet(b *Builder, s sharedTypes) metadata.Pallet {
	proxyType := b.Variant("argon_runtime::ProxyType", nil,
		V(0, "Any"), V(1, "NonTransfer"), V(2, "PriceIndex"), V(3, "MiningBid"), V(4, "BitcoinCosign"))
	definition := b.Composite("pallet_proxy::ProxyDefinition",
		[]metadata.TypeParameter{
			Param("AccountId", s.accountID), Param("ProxyType", proxyType), Param("BlockNumber", s.u32),
		},
		Named("delegate", s.accountID), Named("proxy_type", proxyType), Named("delay", s.u32))

	call := b.Variant("pallet_proxy::pallet::Call", []metadata.TypeParameter{{Name: "T"}},
		V(0, "proxy", Named("real", s.multiAddress),
			Named("force_proxy_type", option(b, proxyType)), Named("call", s.runtimeCall)),
		V(1, "add_proxy", Named("delegate", s.multiAddress), Named("proxy_type", proxyType),
			Named("delay", s.u32)),
		V(2, "remove_proxy", Named("delegate", s.multiAddress), Named("proxy_type", proxyType),
			Named("delay", s.u32)),
		V(3, "remove_proxies"),
		V(4, "create_pure", Named("proxy_type", proxyType), Named("delay", s.u32), Named("index", s.u16)))
	event := b.Variant("pallet_proxy::pallet::Event", []metadata.TypeParameter{{Name: "T"}},
		V(0, "ProxyExecuted", Named("result", s.dispatchResult)),
		V(3, "ProxyAdded", Named("delegator", s.accountID), Named("delegatee", s.accountID),
			Named("proxy_type", proxyType), Named("delay", s.u32)))
	errs := b.Variant("pallet_proxy::pallet::Error", []metadata.TypeParameter{{Name: "T"}},
		V(0, "TooMany"), V(1, "NotFound"), V(2, "NotProxy"), V(3, "Unproxyable"),
		V(4, "Duplicate"), V(5, "NoPermission"), V(6, "Unannounced"), V(7, "NoSelfProxy"))

	return metadata.Pallet{
		Name:  "Proxy",
		Index: ProxyIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "Proxy",
			Entries: []metadata.StorageEntry{
				{
					Name:     "Proxies",
					Modifier: metadata.Default,
					Type: metadata.StorageEntryType{
						Hashers: []metadata.StorageHasher{metadata.Twox64Concat},
						Key:     s.accountID,
						Value:   b.Tuple(boundedVec(b, definition), s.u128),
					},
					Default: make([]byte, 17),
				},
			},
		},
		Calls: ID(call),
		Event: ID(event),
		Constants: []metadata.Constant{
			{Name: "MaxProxies", Type: s.u32, Value: scale.MustMarshal(MaxProxies)},
		},
		Error: ID(errs),
	}
}

func miningSlotPallet(b *Builder, s sharedTypes) metadata.Pallet {
	bid := b.Composite("argon_primitives::block_seal::MiningSlotBid",
		[]metadata.TypeParameter{Param("VaultId", s.u32), Param("Balance", s.u128)},
		Named("vault_id", s.u32), Named("amount", s.u128))
	destination := b.Variant("argon_primitives::block_seal::RewardDestination",
		[]metadata.TypeParameter{Param("AccountId", s.accountID)},
		V(0, "Owner"), V(1, "Account", Unnamed(s.accountID)))
	registration := b.Composite("argon_primitives::block_seal::MiningRegistration",
		[]metadata.TypeParameter{Param("AccountId", s.accountID), Param("Balance", s.u128)},
		Named("account_id", s.accountID), Named("reward_destination", destination),
		Named("bond_id", option(b, s.u64)), Named("bond_amount", s.u128), Named("ownership_tokens", s.u128))

	call := b.Variant("pallet_mining_slot::pallet::Call", []metadata.TypeParameter{{Name: "T"}},
		V(0, "bid", Named("bond_info", option(b, bid)), Named("reward_destination", destination)))
	event := b.Variant("pallet_mining_slot::pallet::Event", []metadata.TypeParameter{{Name: "T"}},
		V(1, "SlotBidderAdded", Named("account_id", s.accountID), Named("bid_amount", s.u128),
			Named("index", s.u32)))
	errs := b.Variant("pallet_mining_slot::pallet::Error", []metadata.TypeParameter{{Name: "T"}},
		V(0, "SlotNotTakingBids"), V(1, "TooManyBlockRegistrants"), V(2, "InsufficientOwnershipTokens"),
		V(3, "BidTooLow"))

	return metadata.Pallet{
		Name:  "MiningSlot",
		Index: MiningSlotIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "MiningSlot",
			Entries: []metadata.StorageEntry{
				{
					Name:     "ActiveMinersByIndex",
					Modifier: metadata.Optional,
					Type: metadata.StorageEntryType{
						Hashers: []metadata.StorageHasher{metadata.Twox64Concat},
						Key:     s.u32,
						Value:   registration,
					},
					Default: []byte{0},
				},
				{
					Name:     "ActiveMinersCount",
					Modifier: metadata.Default,
					Type:     metadata.StorageEntryType{Plain: true, Value: s.u16},
					Default:  make([]byte, 2),
				},
				{
					Name:     "IsNextSlotBiddingOpen",
					Modifier: metadata.Default,
					Type:     metadata.StorageEntryType{Plain: true, Value: s.boolean},
					Default:  []byte{0},
				},
			},
		},
		Calls: ID(call),
		Event: ID(event),
		Constants: []metadata.Constant{
			{Name: "MaxMiners", Type: s.u32, Value: scale.MustMarshal(MaxMiners)},
		},
		Error: ID(errs),
	}
}

func vaultsPallet(b *Builder, s sharedTypes) metadata.Pallet {
	fixed := b.Composite("sp_arithmetic::fixed_point::FixedU128", nil, Unnamed(s.u128))
	balanceParam := []metadata.TypeParameter{Param("Balance", s.u128)}
	terms := b.Composite("argon_primitives::bond::VaultTerms", balanceParam,
		Named("bitcoin_annual_percent_rate", fixed), Named("bitcoin_base_fee", s.u128),
		Named("mining_annual_percent_rate", fixed), Named("mining_base_fee", s.u128),
		Named("mining_reward_sharing_percent_take", fixed))
	xpub := b.Composite("argon_primitives::bitcoin::OpaqueBitcoinXpub", nil, Unnamed(b.Array(s.u8, 78)))
	config := b.Composite("pallet_vaults::pallet::VaultConfig", balanceParam,
		Named("terms", terms), Named("bitcoin_amount_allocated", s.u128), Named("bitcoin_xpubkey", xpub),
		Named("mining_amount_allocated", s.u128), Named("securitization_percent", fixed))
	argons := b.Composite("argon_primitives::bond::VaultArgons", balanceParam,
		Named("annual_percent_rate", fixed), Named("allocated", s.u128), Named("bonded", s.u128),
		Named("base_fee", s.u128))
	vault := b.Composite("argon_primitives::bond::Vault",
		[]metadata.TypeParameter{
			Param("AccountId", s.accountID), Param("Balance", s.u128), Param("BlockNumber", s.u32),
		},
		Named("operator_account_id", s.accountID), Named("bitcoin_argons", argons),
		Named("securitization_percent", fixed), Named("securitized_argons", s.u128),
		Named("mining_argons", argons), Named("mining_reward_sharing_percent_take", fixed),
		Named("is_closed", s.boolean), Named("pending_terms", option(b, b.Tuple(s.u32, terms))))

	call := b.Variant("pallet_vaults::pallet::Call", []metadata.TypeParameter{{Name: "T"}},
		V(0, "create", Named("vault_config", config)),
		V(1, "modify_funding", Named("vault_id", s.u32), Named("total_mining_amount_offered", s.u128),
			Named("total_bitcoin_amount_offered", s.u128), Named("securitization_percent", fixed)),
		V(2, "modify_terms", Named("vault_id", s.u32), Named("terms", terms)),
		V(3, "close", Named("vault_id", s.u32)))
	event := b.Variant("pallet_vaults::pallet::Event", []metadata.TypeParameter{{Name: "T"}},
		V(0, "VaultCreated", Named("vault_id", s.u32), Named("bitcoin_argons", s.u128),
			Named("mining_argons", s.u128), Named("securitization_percent", fixed),
			Named("operator_account_id", s.accountID)),
		V(4, "VaultClosed", Named("vault_id", s.u32), Named("bitcoin_amount_still_bonded", s.u128),
			Named("mining_amount_still_bonded", s.u128), Named("securitization_still_bonded", s.u128)))
	errs := b.Variant("pallet_vaults::pallet::Error", []metadata.TypeParameter{{Name: "T"}},
		V(0, "BondNotFound"), V(1, "NoMoreVaultIds"), V(2, "NoMoreBondIds"),
		V(3, "MinimumBondAmountNotMet"), V(9, "VaultClosed"))

	return metadata.Pallet{
		Name:  "Vaults",
		Index: VaultsIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "Vaults",
			Entries: []metadata.StorageEntry{
				{
					Name:     "NextVaultId",
					Modifier: metadata.Optional,
					Type:     metadata.StorageEntryType{Plain: true, Value: s.u32},
					Default:  []byte{0},
				},
				{
					Name:     "VaultsById",
					Modifier: metadata.Optional,
					Type: metadata.StorageEntryType{
						Hashers: []metadata.StorageHasher{metadata.Twox64Concat},
						Key:     s.u32,
						Value:   vault,
					},
					Default: []byte{0},
				},
			},
		},
		Calls: ID(call),
		Event: ID(event),
		Constants: []metadata.Constant{
			{
				Name:  "MinimumBondAmount",
				Type:  s.u128,
				Value: scale.MustMarshal(scale.Uint128FromUint64(MinimumBondAmount)),
			},
		},
		Error: ID(errs),
	}
}

func bondsPallet(b *Builder, s sharedTypes) metadata.Pallet {
	bondType := b.Variant("argon_primitives::bond::BondType", nil, V(0, "Mining"), V(1, "Bitcoin"))
	expiration := b.Variant("argon_primitives::bond::BondExpiration",
		[]metadata.TypeParameter{Param("BlockNumber", s.u32)},
		V(0, "ArgonBlock", Unnamed(s.u32)), V(1, "BitcoinBlock", Unnamed(s.u64)))
	optionU64 := option(b, s.u64)
	bond := b.Composite("argon_primitives::bond::Bond",
		[]metadata.TypeParameter{
			Param("AccountId", s.accountID), Param("Balance", s.u128), Param("BlockNumber", s.u32),
		},
		Named("bond_type", bondType), Named("vault_id", s.u32), Named("utxo_id", optionU64),
		Named("bonded_account_id", s.accountID), Named("total_fee", s.u128), Named("prepaid_fee", s.u128),
		Named("amount", s.u128), Named("start_block", s.u32), Named("expiration", expiration))
	pubkey := b.Composite("argon_primitives::bitcoin::CompressedBitcoinPubkey", nil,
		Unnamed(b.Array(s.u8, 33)))

	call := b.Variant("pallet_bond::pallet::Call", []metadata.TypeParameter{{Name: "T"}},
		V(1, "bond_bitcoin", Named("vault_id", s.u32), Named("satoshis", s.u64),
			Named("bitcoin_pubkey", pubkey)))
	event := b.Variant("pallet_bond::pallet::Event", []metadata.TypeParameter{{Name: "T"}},
		V(0, "BondCreated", Named("vault_id", s.u32), Named("bond_id", s.u64), Named("bond_type", bondType),
			Named("bonded_account_id", s.accountID), Named("utxo_id", optionU64), Named("amount", s.u128),
			Named("expiration", expiration)),
		V(1, "BondCompleted", Named("vault_id", option(b, s.u32)), Named("bond_id", s.u64)))
	errs := b.Variant("pallet_bond::pallet::Error", []metadata.TypeParameter{{Name: "T"}},
		V(0, "BondNotFound"), V(1, "NoMoreBondIds"), V(2, "MinimumBondAmountNotMet"))

	return metadata.Pallet{
		Name:  "Bonds",
		Index: BondsIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "Bonds",
			Entries: []metadata.StorageEntry{
				{
					Name:     "NextBondId",
					Modifier: metadata.Optional,
					Type:     metadata.StorageEntryType{Plain: true, Value: s.u64},
					Default:  []byte{0},
				},
				{
					Name:     "BondsById",
					Modifier: metadata.Optional,
					Type: metadata.StorageEntryType{
						Hashers: []metadata.StorageHasher{metadata.Twox64Concat},
						Key:     s.u64,
						Value:   bond,
					},
					Default: []byte{0},
				},
			},
		},
		Calls: ID(call),
		Event: ID(event),
		Error: ID(errs),
	}
}

func notebookPallet(b *Builder, s sharedTypes) metadata.Pallet {
	header := b.Composite("argon_primitives::notebook::SignedNotebookHeader", nil,
		Named("header", s.bytes), Named("signature", b.Array(s.u8, 64)))
	verifyError := b.Variant("argon_notary_audit::error::VerifyError", nil,
		V(0, "MissingAccountOrigin"), V(1, "HistoryLookupError"), V(2, "InvalidAccountChangelist"))
	auditResult := b.Composite("argon_primitives::notary::NotebookAuditResult", nil,
		Named("notary_id", s.u32), Named("notebook_number", s.u32),
		Named("audit_first_failure", option(b, verifyError)))

	call := b.Variant("pallet_notebook::pallet::Call", []metadata.TypeParameter{{Name: "T"}},
		V(0, "submit", Named("notebooks", b.Sequence(header))))
	event := b.Variant("pallet_notebook::pallet::Event", []metadata.TypeParameter{{Name: "T"}},
		V(0, "NotebookSubmitted", Named("notary_id", s.u32), Named("notebook_number", s.u32)),
		V(1, "NotebookAuditFailure", Named("notary_id", s.u32), Named("notebook_number", s.u32),
			Named("first_failure_reason", verifyError)))
	errs := b.Variant("pallet_notebook::pallet::Error", []metadata.TypeParameter{{Name: "T"}},
		V(0, "DuplicateNotebookNumber"), V(1, "MissingNotebookNumber"), V(2, "NotebookTickAlreadyUsed"))

	return metadata.Pallet{
		Name:  "Notebook",
		Index: NotebookIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "Notebook",
			Entries: []metadata.StorageEntry{
				{
					Name:     "BlockNotebooks",
					Modifier: metadata.Default,
					Type: metadata.StorageEntryType{
						Plain: true,
						Value: boundedVec(b, auditResult),
					},
					Default: []byte{0},
				},
				{
					Name:     "NotebookChangedAccountsRootByNotary",
					Modifier: metadata.Optional,
					Type: metadata.StorageEntryType{
						Hashers: []metadata.StorageHasher{metadata.Twox64Concat, metadata.Twox64Concat},
						Key:     b.Tuple(s.u32, s.u32),
						Value:   s.h256,
					},
					Default: []byte{0},
				},
			},
		},
		Calls: ID(call),
		Event: ID(event),
		Error: ID(errs),
	}
}
