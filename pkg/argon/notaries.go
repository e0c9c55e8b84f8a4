// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const notariesPallet = "Notaries"

// Notaries module errors.
const (
	NotariesErrorProposalNotFound             = "ProposalNotFound"
	NotariesErrorMaxNotariesExceeded          = "MaxNotariesExceeded"
	NotariesErrorMaxProposalsPerBlockExceeded = "MaxProposalsPerBlockExceeded"
	NotariesErrorNotAnActiveNotary            = "NotAnActiveNotary"
	NotariesErrorInvalidNotaryOperator        = "InvalidNotaryOperator"
	NotariesErrorNoMoreNotaryIds              = "NoMoreNotaryIds"
	NotariesErrorEffectiveTickTooSoon         = "EffectiveTickTooSoon"
	NotariesErrorTooManyKeys                  = "TooManyKeys"
	NotariesErrorInvalidNotary                = "InvalidNotary"
)

// NotaryMeta is the public description of a notary.
type NotaryMeta struct {
	Name   string
	Public [32]byte
	Hosts  []string
}

// NotaryRecord is an active notary.
type NotaryRecord struct {
	NotaryID          NotaryID
	OperatorAccountID AccountID
	ActivatedBlock    BlockNumber
	MetaUpdatedBlock  BlockNumber
	MetaUpdatedTick   Tick
	Meta              NotaryMeta
}

// NotaryProposal is a proposed notary awaiting activation.
type NotaryProposal struct {
	Meta    NotaryMeta
	Expires BlockNumber
}

// NotaryKey is a notary signing key and the tick it became effective.
type NotaryKey struct {
	Tick   Tick
	Public [32]byte
}

type notariesEvent struct{}

func (notariesEvent) PalletName() string { return notariesPallet }

type NotaryProposed struct {
	notariesEvent
	OperatorAccount AccountID
	Meta            NotaryMeta
	Expires         BlockNumber
}

func (NotaryProposed) EventName() string { return "NotaryProposed" }

// NotaryActivated is emitted when the proposal of an operator is accepted.
type NotaryActivated struct {
	notariesEvent
	Notary NotaryRecord
}

func (NotaryActivated) EventName() string { return "NotaryActivated" }

type NotaryMetaUpdateQueued struct {
	notariesEvent
	NotaryID      NotaryID
	Meta          NotaryMeta
	EffectiveTick Tick
}

func (NotaryMetaUpdateQueued) EventName() string { return "NotaryMetaUpdateQueued" }

type NotaryMetaUpdated struct {
	notariesEvent
	NotaryID NotaryID
	Meta     NotaryMeta
}

func (NotaryMetaUpdated) EventName() string { return "NotaryMetaUpdated" }

func registerNotariesEvents(r *chain.EventRegistry) {
	r.Register("NotaryProposed(operator_account:AccountId32,meta:NotaryMeta,expires:u32)",
		func() chain.Event { return &NotaryProposed{} })
	r.Register("NotaryActivated(notary:NotaryRecord<AccountId32,u32>)",
		func() chain.Event { return &NotaryActivated{} })
	r.Register("NotaryMetaUpdateQueued(notary_id:u32,meta:NotaryMeta,effective_tick:u64)",
		func() chain.Event { return &NotaryMetaUpdateQueued{} })
	r.Register("NotaryMetaUpdated(notary_id:u32,meta:NotaryMeta)",
		func() chain.Event { return &NotaryMetaUpdated{} })
}

// NotariesTx builds Notaries calls.
type NotariesTx struct{}

// Propose proposes the sender as the operator of a new notary.
func (NotariesTx) Propose(meta NotaryMeta) *chain.Payload {
	return chain.NewPayload(notariesPallet, "propose", struct{ Meta NotaryMeta }{meta},
		"propose(meta:NotaryMeta)")
}

// Activate accepts the proposal of the operator. It requires the
// root origin.
func (NotariesTx) Activate(operator AccountID) *chain.Payload {
	return chain.NewPayload(notariesPallet, "activate", struct{ OperatorAccount AccountID }{operator},
		"activate(operator_account:AccountId32)")
}

// Update queues a meta change effective at the tick given.
func (NotariesTx) Update(notary NotaryID, meta NotaryMeta, effectiveTick Tick) *chain.Payload {
	args := struct {
		NotaryID      uint
		Meta          NotaryMeta
		EffectiveTick uint
	}{uint(notary), meta, uint(effectiveTick)}
	return chain.NewPayload(notariesPallet, "update", args,
		"update(notary_id:Compact<u32>,meta:NotaryMeta,effective_tick:Compact<u64>)")
}

// NotariesStorage addresses Notaries storage.
type NotariesStorage struct{}

func (NotariesStorage) NextNotaryID() *chain.StorageAddress[NotaryID] {
	return chain.NewStorageAddress[NotaryID](notariesPallet, "NextNotaryId", nil, "NextNotaryId[]->u32")
}

func (NotariesStorage) ProposedNotaries(operator AccountID) *chain.StorageAddress[NotaryProposal] {
	return chain.NewStorageAddress[NotaryProposal](notariesPallet, "ProposedNotaries", twox64Concat,
		"ProposedNotaries[Twox64Concat(AccountId32)]->(NotaryMeta,u32)", operator)
}

func (NotariesStorage) ProposedNotariesIter() *chain.StorageAddress[NotaryProposal] {
	return chain.NewStorageAddress[NotaryProposal](notariesPallet, "ProposedNotaries", twox64Concat,
		"ProposedNotaries[Twox64Concat(AccountId32)]->(NotaryMeta,u32)")
}

// ActiveNotaries are the notaries allowed to submit notebooks.
func (NotariesStorage) ActiveNotaries() *chain.StorageAddress[[]NotaryRecord] {
	return chain.NewStorageAddress[[]NotaryRecord](notariesPallet, "ActiveNotaries", nil,
		"ActiveNotaries[]->BoundedVec<NotaryRecord<AccountId32,u32>>")
}

// NotaryKeyHistory are the signing keys of the notary by tick.
func (NotariesStorage) NotaryKeyHistory(notary NotaryID) *chain.StorageAddress[[]NotaryKey] {
	return chain.NewStorageAddress[[]NotaryKey](notariesPallet, "NotaryKeyHistory", twox64Concat,
		"NotaryKeyHistory[Twox64Concat(u32)]->BoundedVec<(u64,[u8;32])>", notary)
}

func (NotariesStorage) NotaryKeyHistoryIter() *chain.StorageAddress[[]NotaryKey] {
	return chain.NewStorageAddress[[]NotaryKey](notariesPallet, "NotaryKeyHistory", twox64Concat,
		"NotaryKeyHistory[Twox64Concat(u32)]->BoundedVec<(u64,[u8;32])>")
}

// NotariesConstants addresses Notaries constants.
type NotariesConstants struct{}

func (NotariesConstants) MaxActiveNotaries() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](notariesPallet, "MaxActiveNotaries", "MaxActiveNotaries:u32")
}

func (NotariesConstants) MaxProposalHoldBlocks() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](notariesPallet, "MaxProposalHoldBlocks",
		"MaxProposalHoldBlocks:u32")
}

func (NotariesConstants) MaxProposalsPerBlock() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](notariesPallet, "MaxProposalsPerBlock",
		"MaxProposalsPerBlock:u32")
}

// MetaChangesTickDelay is the minimum number of ticks before a meta
// change takes effect.
func (NotariesConstants) MetaChangesTickDelay() *chain.ConstantAddress[Tick] {
	return chain.NewConstantAddress[Tick](notariesPallet, "MetaChangesTickDelay", "MetaChangesTickDelay:u64")
}

func notariesBindings() []chain.Binding {
	tx, storage, constants := NotariesTx{}, NotariesStorage{}, NotariesConstants{}
	return []chain.Binding{
		tx.Propose(NotaryMeta{}),
		tx.Activate(AccountID{}),
		tx.Update(0, NotaryMeta{}, 0),
		storage.NextNotaryID(),
		storage.ProposedNotariesIter(),
		storage.ActiveNotaries(),
		storage.NotaryKeyHistoryIter(),
		constants.MaxActiveNotaries(),
		constants.MaxProposalHoldBlocks(),
		constants.MaxProposalsPerBlock(),
		constants.MetaChangesTickDelay(),
	}
}
