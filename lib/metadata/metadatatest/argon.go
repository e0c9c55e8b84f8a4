// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metadatatest

import (
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

// Pallet indices of the Argon fixture.
const (
	SystemIndex    uint8 = 0
	TimestampIndex uint8 = 1
	MultisigIndex  uint8 = 2
	BalancesIndex  uint8 = 5
	SudoIndex      uint8 = 9
)

// SS58Prefix is the System.SS58Prefix constant of the fixture.
const SS58Prefix uint16 = 18

// Argon returns a reduced Argon runtime metadata with the System,
// Timestamp, Multisig, ArgonBalances and Sudo pallets followed by the
// Proxy, MiningSlot, Vaults, Bonds and Notebook pallets, the standard
// signed extensions and, from version 15, the Core, AccountNonceApi
// and BlockSealApis runtime APIs.
func Argon(version uint8) *metadata.Metadata {
	b := NewBuilder()

	u8 := b.Primitive(metadata.PrimitiveU8)
	u16 := b.Primitive(metadata.PrimitiveU16)
	u32 := b.Primitive(metadata.PrimitiveU32)
	u64 := b.Primitive(metadata.PrimitiveU64)
	u128 := b.Primitive(metadata.PrimitiveU128)
	boolean := b.Primitive(metadata.PrimitiveBool)
	str := b.Primitive(metadata.PrimitiveStr)
	unit := b.Tuple()
	bytes := b.Sequence(u8)
	bytes32 := b.Array(u8, 32)

	accountID := b.Composite("sp_core::crypto::AccountId32", nil, Unnamed(bytes32))
	h256 := b.Composite("primitive_types::H256", nil, Unnamed(bytes32))

	extraFlags := b.Composite("pallet_balances::types::ExtraFlags", nil, Unnamed(u128))
	accountData := b.Composite("pallet_balances::types::AccountData",
		[]metadata.TypeParameter{Param("Balance", u128)},
		Named("free", u128), Named("reserved", u128), Named("frozen", u128), Named("flags", extraFlags))
	accountInfo := b.Composite("frame_system::AccountInfo",
		[]metadata.TypeParameter{Param("Nonce", u32), Param("AccountData", accountData)},
		Named("nonce", u32), Named("consumers", u32), Named("providers", u32),
		Named("sufficients", u32), Named("data", accountData))

	weight := b.Composite("sp_weights::weight_v2::Weight", nil,
		Named("ref_time", b.Compact(u64)), Named("proof_size", b.Compact(u64)))
	dispatchClass := b.Variant("frame_support::dispatch::DispatchClass", nil,
		V(0, "Normal"), V(1, "Operational"), V(2, "Mandatory"))
	pays := b.Variant("frame_support::dispatch::Pays", nil, V(0, "Yes"), V(1, "No"))
	dispatchInfo := b.Composite("frame_support::dispatch::DispatchInfo", nil,
		Named("weight", weight), Named("class", dispatchClass), Named("pays_fee", pays))

	moduleError := b.Composite("sp_runtime::ModuleError", nil,
		Named("index", u8), Named("error", b.Array(u8, 4)))
	tokenError := b.Variant("sp_runtime::TokenError", nil,
		V(0, "FundsUnavailable"), V(1, "OnlyProvider"), V(2, "BelowMinimum"), V(3, "CannotCreate"),
		V(4, "UnknownAsset"), V(5, "Frozen"), V(6, "Unsupported"), V(7, "CannotCreateHold"),
		V(8, "NotExpendable"), V(9, "Blocked"))
	arithmeticError := b.Variant("sp_arithmetic::ArithmeticError", nil,
		V(0, "Underflow"), V(1, "Overflow"), V(2, "DivisionByZero"))
	transactionalError := b.Variant("sp_runtime::TransactionalError", nil,
		V(0, "LimitReached"), V(1, "NoLayer"))
	dispatchError := b.Variant("sp_runtime::DispatchError", nil,
		V(0, "Other"), V(1, "CannotLookup"), V(2, "BadOrigin"),
		V(3, "Module", Unnamed(moduleError)),
		V(4, "ConsumerRemaining"), V(5, "NoProviders"), V(6, "TooManyConsumers"),
		V(7, "Token", Unnamed(tokenError)),
		V(8, "Arithmetic", Unnamed(arithmeticError)),
		V(9, "Transactional", Unnamed(transactionalError)),
		V(10, "Exhausted"), V(11, "Corruption"), V(12, "Unavailable"), V(13, "RootNotAllowed"))
	dispatchResult := b.Variant("Result",
		[]metadata.TypeParameter{Param("T", unit), Param("E", dispatchError)},
		V(0, "Ok", Unnamed(unit)), V(1, "Err", Unnamed(dispatchError)))
	optionAccount := b.Variant("Option",
		[]metadata.TypeParameter{Param("T", accountID)},
		V(0, "None"), V(1, "Some", Unnamed(accountID)))

	multiAddress := b.Variant("sp_runtime::multiaddress::MultiAddress",
		[]metadata.TypeParameter{Param("AccountId", accountID), Param("AccountIndex", unit)},
		V(0, "Id", Unnamed(accountID)),
		V(1, "Index", Unnamed(b.Compact(unit))),
		V(2, "Raw", Unnamed(bytes)),
		V(3, "Address32", Unnamed(bytes32)),
		V(4, "Address20", Unnamed(b.Array(u8, 20))))

	runtimeCall := b.Variant("argon_runtime::RuntimeCall", nil)

	// System
	systemCall := b.Variant("frame_system::pallet::Call", []metadata.TypeParameter{{Name: "T"}},
		V(0, "remark", Named("remark", bytes)),
		V(7, "remark_with_event", Named("remark", bytes)))
	systemEvent := b.Variant("frame_system::pallet::Event", []metadata.TypeParameter{{Name: "T"}},
		V(0, "ExtrinsicSuccess", Named("dispatch_info", dispatchInfo)),
		V(1, "ExtrinsicFailed", Named("dispatch_error", dispatchError), Named("dispatch_info", dispatchInfo)),
		V(3, "NewAccount", Named("account", accountID)),
		V(7, "Remarked", Named("sender", accountID), Named("hash", h256)))
	systemError := b.Variant("frame_system::pallet::Error", []metadata.TypeParameter{{Name: "T"}},
		V(0, "InvalidSpecName"), V(1, "SpecVersionNeedsToIncrease"), V(2, "FailedToExtractRuntimeVersion"),
		V(3, "NonDefaultComposite"), V(4, "NonZeroRefCount"), V(5, "CallFiltered"))

	// Timestamp
	timestampCall := b.Variant("pallet_timestamp::pallet::Call", []metadata.TypeParameter{{Name: "T"}},
		V(0, "set", Named("now", b.Compact(u64))))

	// Multisig
	timepoint := b.Composite("pallet_multisig::Timepoint",
		[]metadata.TypeParameter{Param("BlockNumber", u32)},
		Named("height", u32), Named("index", u32))
	boundedAccounts := b.Composite("bounded_collections::bounded_vec::BoundedVec",
		[]metadata.TypeParameter{Param("T", accountID), {Name: "S"}},
		Unnamed(b.Sequence(accountID)))
	multisig := b.Composite("pallet_multisig::Multisig",
		[]metadata.TypeParameter{
			Param("BlockNumber", u32), Param("Balance", u128),
			Param("AccountId", accountID), {Name: "MaxApprovals"},
		},
		Named("when", timepoint), Named("deposit", u128),
		Named("depositor", accountID), Named("approvals", boundedAccounts))
	multisigCall := b.Variant("pallet_multisig::pallet::Call", []metadata.TypeParameter{{Name: "T"}},
		V(0, "as_multi_threshold_1",
			Named("other_signatories", b.Sequence(accountID)), Named("call", runtimeCall)))
	multisigEvent := b.Variant("pallet_multisig::pallet::Event", []metadata.TypeParameter{{Name: "T"}},
		V(0, "NewMultisig", Named("approving", accountID), Named("multisig", accountID),
			Named("call_hash", bytes32)))
	multisigError := b.Variant("pallet_multisig::pallet::Error", []metadata.TypeParameter{{Name: "T"}},
		V(0, "MinimumThreshold"), V(1, "AlreadyApproved"), V(2, "NoApprovalsNeeded"))

	// ArgonBalances
	balancesCall := b.Variant("pallet_balances::pallet::Call",
		[]metadata.TypeParameter{{Name: "T"}, {Name: "I"}},
		V(0, "transfer_allow_death", Named("dest", multiAddress), Named("value", b.Compact(u128))),
		V(3, "transfer_keep_alive", Named("dest", multiAddress), Named("value", b.Compact(u128))),
		V(4, "transfer_all", Named("dest", multiAddress), Named("keep_alive", boolean)))
	balancesEvent := b.Variant("pallet_balances::pallet::Event",
		[]metadata.TypeParameter{{Name: "T"}, {Name: "I"}},
		V(0, "Endowed", Named("account", accountID), Named("free_balance", u128)),
		V(2, "Transfer", Named("from", accountID), Named("to", accountID), Named("amount", u128)),
		V(7, "Deposit", Named("who", accountID), Named("amount", u128)),
		V(8, "Withdraw", Named("who", accountID), Named("amount", u128)))
	balancesError := b.Variant("pallet_balances::pallet::Error",
		[]metadata.TypeParameter{{Name: "T"}, {Name: "I"}},
		V(0, "VestingBalance"), V(1, "LiquidityRestrictions"), V(2, "InsufficientBalance"),
		V(3, "ExistentialDeposit"), V(4, "Expendability"), V(5, "ExistingVestingSchedule"),
		V(6, "DeadAccount"), V(7, "TooManyReserves"), V(8, "TooManyHolds"), V(9, "TooManyFreezes"))

	// Sudo
	sudoCall := b.Variant("pallet_sudo::pallet::Call", []metadata.TypeParameter{{Name: "T"}},
		V(0, "sudo", Named("call", runtimeCall)),
		V(1, "sudo_unchecked_weight", Named("call", runtimeCall), Named("weight", weight)),
		V(2, "set_key", Named("new", multiAddress)))
	sudoEvent := b.Variant("pallet_sudo::pallet::Event", []metadata.TypeParameter{{Name: "T"}},
		V(0, "Sudid", Named("sudo_result", dispatchResult)),
		V(1, "KeyChanged", Named("old", optionAccount), Named("new", accountID)))
	sudoError := b.Variant("pallet_sudo::pallet::Error", []metadata.TypeParameter{{Name: "T"}},
		V(0, "RequireSudo"))

	argonSpecific := argonPallets(b, sharedTypes{
		u8: u8, u16: u16, u32: u32, u64: u64, u128: u128,
		boolean: boolean, bytes: bytes,
		accountID: accountID, h256: h256,
		multiAddress:   multiAddress,
		runtimeCall:    runtimeCall,
		dispatchResult: dispatchResult,
	})

	callVariants := []metadata.Variant{
		V(SystemIndex, "System", Unnamed(systemCall)),
		V(TimestampIndex, "Timestamp", Unnamed(timestampCall)),
		V(MultisigIndex, "Multisig", Unnamed(multisigCall)),
		V(BalancesIndex, "ArgonBalances", Unnamed(balancesCall)),
		V(SudoIndex, "Sudo", Unnamed(sudoCall)),
	}
	eventVariants := []metadata.Variant{
		V(SystemIndex, "System", Unnamed(systemEvent)),
		V(MultisigIndex, "Multisig", Unnamed(multisigEvent)),
		V(BalancesIndex, "ArgonBalances", Unnamed(balancesEvent)),
		V(SudoIndex, "Sudo", Unnamed(sudoEvent)),
	}
	errorVariants := []metadata.Variant{
		V(SystemIndex, "System", Unnamed(systemError)),
		V(MultisigIndex, "Multisig", Unnamed(multisigError)),
		V(BalancesIndex, "ArgonBalances", Unnamed(balancesError)),
		V(SudoIndex, "Sudo", Unnamed(sudoError)),
	}
	for _, pallet := range argonSpecific {
		callVariants = append(callVariants, V(pallet.Index, pallet.Name, Unnamed(*pallet.Calls)))
		eventVariants = append(eventVariants, V(pallet.Index, pallet.Name, Unnamed(*pallet.Event)))
		errorVariants = append(errorVariants, V(pallet.Index, pallet.Name, Unnamed(*pallet.Error)))
	}

	b.SetVariants(runtimeCall, callVariants...)
	runtimeEvent := b.Variant("argon_runtime::RuntimeEvent", nil, eventVariants...)
	runtimeError := b.Variant("argon_runtime::RuntimeError", nil, errorVariants...)

	phase := b.Variant("frame_system::Phase", nil,
		V(0, "ApplyExtrinsic", Unnamed(u32)), V(1, "Finalization"), V(2, "Initialization"))
	eventRecord := b.Composite("frame_system::EventRecord",
		[]metadata.TypeParameter{Param("E", runtimeEvent), Param("T", h256)},
		Named("phase", phase), Named("event", runtimeEvent), Named("topics", b.Sequence(h256)))

	b.Pallet(metadata.Pallet{
		Name:  "System",
		Index: SystemIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "System",
			Entries: []metadata.StorageEntry{
				{
					Name:     "Account",
					Modifier: metadata.Default,
					Type: metadata.StorageEntryType{
						Hashers: []metadata.StorageHasher{metadata.Blake2_128Concat},
						Key:     accountID,
						Value:   accountInfo,
					},
					Default: make([]byte, 80),
					Docs:    []string{" The full account information for a particular account ID."},
				},
				{
					Name:     "BlockHash",
					Modifier: metadata.Default,
					Type: metadata.StorageEntryType{
						Hashers: []metadata.StorageHasher{metadata.Twox64Concat},
						Key:     u32,
						Value:   h256,
					},
					Default: make([]byte, 32),
				},
				{
					Name:     "Number",
					Modifier: metadata.Default,
					Type:     metadata.StorageEntryType{Plain: true, Value: u32},
					Default:  make([]byte, 4),
				},
				{
					Name:     "Events",
					Modifier: metadata.Default,
					Type:     metadata.StorageEntryType{Plain: true, Value: b.Sequence(eventRecord)},
					Default:  []byte{0},
				},
			},
		},
		Calls: ID(systemCall),
		Event: ID(systemEvent),
		Constants: []metadata.Constant{
			{Name: "BlockHashCount", Type: u32, Value: scale.MustMarshal(uint32(4096))},
			{Name: "SS58Prefix", Type: u16, Value: scale.MustMarshal(SS58Prefix)},
		},
		Error: ID(systemError),
	})

	b.Pallet(metadata.Pallet{
		Name:  "Timestamp",
		Index: TimestampIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "Timestamp",
			Entries: []metadata.StorageEntry{
				{
					Name:     "Now",
					Modifier: metadata.Default,
					Type:     metadata.StorageEntryType{Plain: true, Value: u64},
					Default:  make([]byte, 8),
				},
			},
		},
		Calls: ID(timestampCall),
		Constants: []metadata.Constant{
			{Name: "MinimumPeriod", Type: u64, Value: scale.MustMarshal(uint64(500))},
		},
	})

	b.Pallet(metadata.Pallet{
		Name:  "Multisig",
		Index: MultisigIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "Multisig",
			Entries: []metadata.StorageEntry{
				{
					Name:     "Multisigs",
					Modifier: metadata.Optional,
					Type: metadata.StorageEntryType{
						Hashers: []metadata.StorageHasher{metadata.Twox64Concat, metadata.Blake2_128Concat},
						Key:     b.Tuple(accountID, bytes32),
						Value:   multisig,
					},
					Default: []byte{0},
				},
			},
		},
		Calls: ID(multisigCall),
		Event: ID(multisigEvent),
		Constants: []metadata.Constant{
			{Name: "MaxSignatories", Type: u32, Value: scale.MustMarshal(uint32(100))},
		},
		Error: ID(multisigError),
	})

	b.Pallet(metadata.Pallet{
		Name:  "ArgonBalances",
		Index: BalancesIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "ArgonBalances",
			Entries: []metadata.StorageEntry{
				{
					Name:     "TotalIssuance",
					Modifier: metadata.Default,
					Type:     metadata.StorageEntryType{Plain: true, Value: u128},
					Default:  make([]byte, 16),
				},
				{
					Name:     "Account",
					Modifier: metadata.Default,
					Type: metadata.StorageEntryType{
						Hashers: []metadata.StorageHasher{metadata.Blake2_128Concat},
						Key:     accountID,
						Value:   accountData,
					},
					Default: make([]byte, 64),
				},
			},
		},
		Calls: ID(balancesCall),
		Event: ID(balancesEvent),
		Constants: []metadata.Constant{
			{Name: "ExistentialDeposit", Type: u128, Value: scale.MustMarshal(scale.Uint128FromUint64(500))},
			{Name: "MaxLocks", Type: u32, Value: scale.MustMarshal(uint32(50))},
		},
		Error: ID(balancesError),
		Docs:  []string{" The argon currency."},
	})

	b.Pallet(metadata.Pallet{
		Name:  "Sudo",
		Index: SudoIndex,
		Storage: &metadata.PalletStorage{
			Prefix: "Sudo",
			Entries: []metadata.StorageEntry{
				{
					Name:     "Key",
					Modifier: metadata.Optional,
					Type:     metadata.StorageEntryType{Plain: true, Value: accountID},
					Default:  []byte{0},
				},
			},
		},
		Calls: ID(sudoCall),
		Event: ID(sudoEvent),
		Error: ID(sudoError),
	})

	for _, pallet := range argonSpecific {
		b.Pallet(pallet)
	}

	runtimeVersion := b.Composite("sp_version::RuntimeVersion", nil,
		Named("spec_name", str), Named("impl_name", str), Named("authoring_version", u32),
		Named("spec_version", u32), Named("impl_version", u32),
		Named("apis", b.Sequence(b.Tuple(b.Array(u8, 8), u32))),
		Named("transaction_version", u32), Named("state_version", u8))

	b.API(metadata.RuntimeAPI{
		Name: "Core",
		Methods: []metadata.RuntimeAPIMethod{
			{Name: "version", Output: runtimeVersion},
		},
	})
	b.API(metadata.RuntimeAPI{
		Name: "AccountNonceApi",
		Methods: []metadata.RuntimeAPIMethod{
			{
				Name:   "account_nonce",
				Inputs: []metadata.RuntimeAPIParam{{Name: "account", Type: accountID}},
				Output: u32,
			},
		},
	})
	b.API(metadata.RuntimeAPI{
		Name: "BlockSealApis",
		Methods: []metadata.RuntimeAPIMethod{
			{Name: "vote_minimum", Output: u128},
			{Name: "compute_difficulty", Output: u128},
		},
	})

	extrinsic := argonExtrinsic(b, u8, u32, u128, h256, unit, bytes32, multiAddress, runtimeCall)
	return b.Build(version, extrinsic, &metadata.OuterEnums{
		Call:  runtimeCall,
		Event: runtimeEvent,
		Error: runtimeError,
	})
}

func argonExtrinsic(b *Builder, u8, u32, u128, h256, unit, bytes32,
	multiAddress, runtimeCall metadata.TypeID) metadata.Extrinsic {
	eraVariants := make([]metadata.Variant, 0, 256)
	eraVariants = append(eraVariants, V(0, "Immortal"))
	for i := 1; i < 256; i++ {
		eraVariants = append(eraVariants, V(uint8(i), "Mortal"+itoa(metadata.TypeID(i)), Unnamed(u8)))
	}
	era := b.Variant("sp_runtime::generic::era::Era", nil, eraVariants...)

	mode := b.Variant("frame_metadata_hash_extension::Mode", nil, V(0, "Disabled"), V(1, "Enabled"))
	optionHash := b.Variant("Option", []metadata.TypeParameter{Param("T", bytes32)},
		V(0, "None"), V(1, "Some", Unnamed(bytes32)))

	const ext = "frame_system::extensions::"
	extensions := []metadata.SignedExtension{
		{
			Identifier:       "CheckNonZeroSender",
			Type:             b.Composite(ext+"check_non_zero_sender::CheckNonZeroSender", nil),
			AdditionalSigned: unit,
		},
		{
			Identifier:       "CheckSpecVersion",
			Type:             b.Composite(ext+"check_spec_version::CheckSpecVersion", nil),
			AdditionalSigned: u32,
		},
		{
			Identifier:       "CheckTxVersion",
			Type:             b.Composite(ext+"check_tx_version::CheckTxVersion", nil),
			AdditionalSigned: u32,
		},
		{
			Identifier:       "CheckGenesis",
			Type:             b.Composite(ext+"check_genesis::CheckGenesis", nil),
			AdditionalSigned: h256,
		},
		{
			Identifier:       "CheckMortality",
			Type:             b.Composite(ext+"check_mortality::CheckMortality", nil, Unnamed(era)),
			AdditionalSigned: h256,
		},
		{
			Identifier:       "CheckNonce",
			Type:             b.Composite(ext+"check_nonce::CheckNonce", nil, Unnamed(b.Compact(u32))),
			AdditionalSigned: unit,
		},
		{
			Identifier:       "CheckWeight",
			Type:             b.Composite(ext+"check_weight::CheckWeight", nil),
			AdditionalSigned: unit,
		},
		{
			Identifier: "ChargeTransactionPayment",
			Type: b.Composite("pallet_transaction_payment::ChargeTransactionPayment", nil,
				Unnamed(b.Compact(u128))),
			AdditionalSigned: unit,
		},
		{
			Identifier: "CheckMetadataHash",
			Type: b.Composite("frame_metadata_hash_extension::CheckMetadataHash", nil,
				Named("mode", mode)),
			AdditionalSigned: optionHash,
		},
	}

	extraTypes := make([]metadata.TypeID, len(extensions))
	for i, extension := range extensions {
		extraTypes[i] = extension.Type
	}

	signature := b.Variant("sp_runtime::MultiSignature", nil,
		V(0, "Ed25519", Unnamed(b.Array(u8, 64))),
		V(1, "Sr25519", Unnamed(b.Array(u8, 64))),
		V(2, "Ecdsa", Unnamed(b.Array(u8, 65))))

	unchecked := b.Composite("sp_runtime::generic::unchecked_extrinsic::UncheckedExtrinsic",
		[]metadata.TypeParameter{
			Param("Address", multiAddress), Param("Call", runtimeCall), Param("Signature", signature),
		},
		Unnamed(b.Sequence(u8)))

	return metadata.Extrinsic{
		Version:          4,
		Type:             unchecked,
		AddressType:      multiAddress,
		CallType:         runtimeCall,
		SignatureType:    signature,
		ExtraType:        b.Tuple(extraTypes...),
		SignedExtensions: extensions,
	}
}

// ArgonBytes returns the encoded Argon fixture metadata.
func ArgonBytes(version uint8) []byte {
	raw, err := metadata.Encode(Argon(version))
	if err != nil {
		panic(err)
	}
	return raw
}
