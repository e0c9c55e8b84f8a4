// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
)

const systemPallet = "System"

// System module errors.
const (
	SystemErrorInvalidSpecName               = "InvalidSpecName"
	SystemErrorSpecVersionNeedsToIncrease    = "SpecVersionNeedsToIncrease"
	SystemErrorFailedToExtractRuntimeVersion = "FailedToExtractRuntimeVersion"
	SystemErrorNonDefaultComposite           = "NonDefaultComposite"
	SystemErrorNonZeroRefCount               = "NonZeroRefCount"
	SystemErrorCallFiltered                  = "CallFiltered"
	SystemErrorNothingAuthorized             = "NothingAuthorized"
	SystemErrorUnauthorized                  = "Unauthorized"
)

// AccountData is the balance data of an account.
type AccountData struct {
	Free     Balance
	Reserved Balance
	Frozen   Balance
	Flags    Balance
}

// AccountInfo is the System.Account value.
type AccountInfo struct {
	Nonce       uint32
	Consumers   uint32
	Providers   uint32
	Sufficients uint32
	Data        AccountData
}

// LastRuntimeUpgradeInfo is the version of the last runtime upgrade.
type LastRuntimeUpgradeInfo struct {
	SpecVersion uint
	SpecName    string
}

// RuntimeDbWeight is the weight of a database read and write.
type RuntimeDbWeight struct {
	Read  uint64
	Write uint64
}

type systemEvent struct{}

func (systemEvent) PalletName() string { return systemPallet }

// SystemExtrinsicSuccess is emitted when an extrinsic succeeds.
type SystemExtrinsicSuccess struct {
	systemEvent
	DispatchInfo DispatchInfo
}

func (SystemExtrinsicSuccess) EventName() string { return "ExtrinsicSuccess" }

// SystemExtrinsicFailed is emitted when an extrinsic fails.
type SystemExtrinsicFailed struct {
	systemEvent
	DispatchError chain.RawDispatchError
	DispatchInfo  DispatchInfo
}

func (SystemExtrinsicFailed) EventName() string { return "ExtrinsicFailed" }

type SystemCodeUpdated struct {
	systemEvent
}

func (SystemCodeUpdated) EventName() string { return "CodeUpdated" }

type SystemNewAccount struct {
	systemEvent
	Account AccountID
}

func (SystemNewAccount) EventName() string { return "NewAccount" }

type SystemKilledAccount struct {
	systemEvent
	Account AccountID
}

func (SystemKilledAccount) EventName() string { return "KilledAccount" }

// SystemRemarked is emitted by remark_with_event with the hash of the remark.
type SystemRemarked struct {
	systemEvent
	Sender AccountID
	Hash   common.Hash
}

func (SystemRemarked) EventName() string { return "Remarked" }

type SystemUpgradeAuthorized struct {
	systemEvent
	CodeHash     common.Hash
	CheckVersion bool
}

func (SystemUpgradeAuthorized) EventName() string { return "UpgradeAuthorized" }

func registerSystemEvents(r *chain.EventRegistry) {
	r.Register("ExtrinsicSuccess(dispatch_info:DispatchInfo)",
		func() chain.Event { return &SystemExtrinsicSuccess{} })
	r.Register("ExtrinsicFailed(dispatch_error:DispatchError,dispatch_info:DispatchInfo)",
		func() chain.Event { return &SystemExtrinsicFailed{} })
	r.Register("CodeUpdated()",
		func() chain.Event { return &SystemCodeUpdated{} })
	r.Register("NewAccount(account:AccountId32)",
		func() chain.Event { return &SystemNewAccount{} })
	r.Register("KilledAccount(account:AccountId32)",
		func() chain.Event { return &SystemKilledAccount{} })
	r.Register("Remarked(sender:AccountId32,hash:H256)",
		func() chain.Event { return &SystemRemarked{} })
	r.Register("UpgradeAuthorized(code_hash:H256,check_version:bool)",
		func() chain.Event { return &SystemUpgradeAuthorized{} })
}

// SystemTx builds System calls.
type SystemTx struct{}

// Remark makes an on-chain remark.
func (SystemTx) Remark(remark []byte) *chain.Payload {
	return chain.NewPayload(systemPallet, "remark", struct{ Remark []byte }{remark},
		"remark(remark:Vec<u8>)")
}

func (SystemTx) SetHeapPages(pages uint64) *chain.Payload {
	return chain.NewPayload(systemPallet, "set_heap_pages", struct{ Pages uint64 }{pages},
		"set_heap_pages(pages:u64)")
}

// SetCode sets the new runtime code. It requires the root origin.
func (SystemTx) SetCode(code []byte) *chain.Payload {
	return chain.NewPayload(systemPallet, "set_code", struct{ Code []byte }{code},
		"set_code(code:Vec<u8>)")
}

func (SystemTx) SetCodeWithoutChecks(code []byte) *chain.Payload {
	return chain.NewPayload(systemPallet, "set_code_without_checks", struct{ Code []byte }{code},
		"set_code_without_checks(code:Vec<u8>)")
}

// KeyValue is a raw storage item.
type KeyValue struct {
	Key   []byte
	Value []byte
}

func (SystemTx) SetStorage(items []KeyValue) *chain.Payload {
	return chain.NewPayload(systemPallet, "set_storage", struct{ Items []KeyValue }{items},
		"set_storage(items:Vec<(Vec<u8>,Vec<u8>)>)")
}

func (SystemTx) KillStorage(keys [][]byte) *chain.Payload {
	return chain.NewPayload(systemPallet, "kill_storage", struct{ Keys [][]byte }{keys},
		"kill_storage(keys:Vec<Vec<u8>>)")
}

func (SystemTx) KillPrefix(prefix []byte, subkeys uint32) *chain.Payload {
	args := struct {
		Prefix  []byte
		Subkeys uint32
	}{prefix, subkeys}
	return chain.NewPayload(systemPallet, "kill_prefix", args,
		"kill_prefix(prefix:Vec<u8>,subkeys:u32)")
}

// RemarkWithEvent makes an on-chain remark and emits System.Remarked.
func (SystemTx) RemarkWithEvent(remark []byte) *chain.Payload {
	return chain.NewPayload(systemPallet, "remark_with_event", struct{ Remark []byte }{remark},
		"remark_with_event(remark:Vec<u8>)")
}

func (SystemTx) AuthorizeUpgrade(codeHash common.Hash) *chain.Payload {
	return chain.NewPayload(systemPallet, "authorize_upgrade", struct{ CodeHash common.Hash }{codeHash},
		"authorize_upgrade(code_hash:H256)")
}

func (SystemTx) ApplyAuthorizedUpgrade(code []byte) *chain.Payload {
	return chain.NewPayload(systemPallet, "apply_authorized_upgrade", struct{ Code []byte }{code},
		"apply_authorized_upgrade(code:Vec<u8>)")
}

// SystemStorage addresses System storage.
type SystemStorage struct{}

// Account is the account information of the account id.
func (SystemStorage) Account(id AccountID) *chain.StorageAddress[AccountInfo] {
	return chain.NewStorageAddress[AccountInfo](systemPallet, "Account", blake2Concat,
		"Account[Blake2_128Concat(AccountId32)]->AccountInfo<u32,AccountData<u128>>", id)
}

func (SystemStorage) AccountIter() *chain.StorageAddress[AccountInfo] {
	return chain.NewStorageAddress[AccountInfo](systemPallet, "Account", blake2Concat,
		"Account[Blake2_128Concat(AccountId32)]->AccountInfo<u32,AccountData<u128>>")
}

func (SystemStorage) ExtrinsicCount() *chain.StorageAddress[uint32] {
	return chain.NewStorageAddress[uint32](systemPallet, "ExtrinsicCount", nil,
		"ExtrinsicCount[]->u32")
}

// BlockHash is the hash of the block number, kept for the last
// BlockHashCount blocks and for the genesis block.
func (SystemStorage) BlockHash(number BlockNumber) *chain.StorageAddress[common.Hash] {
	return chain.NewStorageAddress[common.Hash](systemPallet, "BlockHash", twox64Concat,
		"BlockHash[Twox64Concat(u32)]->H256", number)
}

func (SystemStorage) BlockHashIter() *chain.StorageAddress[common.Hash] {
	return chain.NewStorageAddress[common.Hash](systemPallet, "BlockHash", twox64Concat,
		"BlockHash[Twox64Concat(u32)]->H256")
}

// Number is the number of the current block.
func (SystemStorage) Number() *chain.StorageAddress[BlockNumber] {
	return chain.NewStorageAddress[BlockNumber](systemPallet, "Number", nil,
		"Number[]->u32")
}

func (SystemStorage) ParentHash() *chain.StorageAddress[common.Hash] {
	return chain.NewStorageAddress[common.Hash](systemPallet, "ParentHash", nil,
		"ParentHash[]->H256")
}

// Events are the raw event records of the block. They are parsed
// with chain.ParseEventRecords rather than decoded directly.
func (SystemStorage) Events() *chain.StorageAddress[[]byte] {
	return chain.NewStorageAddress[[]byte](systemPallet, "Events", nil,
		"Events[]->Vec<EventRecord<RuntimeEvent,H256>>")
}

func (SystemStorage) EventCount() *chain.StorageAddress[uint32] {
	return chain.NewStorageAddress[uint32](systemPallet, "EventCount", nil,
		"EventCount[]->u32")
}

func (SystemStorage) LastRuntimeUpgrade() *chain.StorageAddress[LastRuntimeUpgradeInfo] {
	return chain.NewStorageAddress[LastRuntimeUpgradeInfo](systemPallet, "LastRuntimeUpgrade", nil,
		"LastRuntimeUpgrade[]->LastRuntimeUpgradeInfo")
}

// SystemConstants addresses System constants.
type SystemConstants struct{}

// BlockHashCount is the number of recent block hashes kept in storage.
func (SystemConstants) BlockHashCount() *chain.ConstantAddress[BlockNumber] {
	return chain.NewConstantAddress[BlockNumber](systemPallet, "BlockHashCount", "BlockHashCount:u32")
}

func (SystemConstants) DbWeight() *chain.ConstantAddress[RuntimeDbWeight] {
	return chain.NewConstantAddress[RuntimeDbWeight](systemPallet, "DbWeight", "DbWeight:RuntimeDbWeight")
}

// SS58Prefix is the address prefix of the chain.
func (SystemConstants) SS58Prefix() *chain.ConstantAddress[uint16] {
	return chain.NewConstantAddress[uint16](systemPallet, "SS58Prefix", "SS58Prefix:u16")
}

func systemBindings() []chain.Binding {
	tx, storage, constants := SystemTx{}, SystemStorage{}, SystemConstants{}
	return []chain.Binding{
		tx.Remark(nil),
		tx.SetHeapPages(0),
		tx.SetCode(nil),
		tx.SetCodeWithoutChecks(nil),
		tx.SetStorage(nil),
		tx.KillStorage(nil),
		tx.KillPrefix(nil, 0),
		tx.RemarkWithEvent(nil),
		tx.AuthorizeUpgrade(common.Hash{}),
		tx.ApplyAuthorizedUpgrade(nil),
		storage.AccountIter(),
		storage.ExtrinsicCount(),
		storage.BlockHashIter(),
		storage.Number(),
		storage.ParentHash(),
		storage.Events(),
		storage.EventCount(),
		storage.LastRuntimeUpgrade(),
		constants.BlockHashCount(),
		constants.DbWeight(),
		constants.SS58Prefix(),
	}
}
