// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const miningSlotPallet = "MiningSlot"

// MiningSlot module errors.
const (
	MiningSlotErrorSlotNotTakingBids                 = "SlotNotTakingBids"
	MiningSlotErrorTooManyBlockRegistrants           = "TooManyBlockRegistrants"
	MiningSlotErrorInsufficientOwnershipTokens       = "InsufficientOwnershipTokens"
	MiningSlotErrorBidTooLow                         = "BidTooLow"
	MiningSlotErrorCannotRegisterOverlappingSessions = "CannotRegisterOverlappingSessions"
	MiningSlotErrorBondNotFound                      = "BondNotFound"
	MiningSlotErrorNoMoreBondIds                     = "NoMoreBondIds"
	MiningSlotErrorVaultClosed                       = "VaultClosed"
	MiningSlotErrorInsufficientFunds                 = "InsufficientFunds"
	MiningSlotErrorBondAlreadyClosed                 = "BondAlreadyClosed"
)

// RewardDestination is where block rewards of a miner are paid.
// A nil Account pays the miner account itself.
type RewardDestination struct {
	Account *AccountID
}

const (
	rewardDestinationOwner   = 0
	rewardDestinationAccount = 1
)

// MarshalSCALE encodes the destination variant.
func (d RewardDestination) MarshalSCALE() ([]byte, error) {
	if d.Account == nil {
		return []byte{rewardDestinationOwner}, nil
	}
	return append([]byte{rewardDestinationAccount}, d.Account[:]...), nil
}

// UnmarshalSCALE decodes the destination variant.
func (d *RewardDestination) UnmarshalSCALE(r scale.Reader) error {
	index, err := r.ReadByte()
	if err != nil {
		return err
	}

	switch index {
	case rewardDestinationOwner:
		d.Account = nil
		return nil
	case rewardDestinationAccount:
		d.Account = new(AccountID)
		return scale.NewDecoder(r).Decode(d.Account)
	default:
		return fmt.Errorf("%w: reward destination variant %d", scale.ErrUnknownVaryingDataTypeIndex, index)
	}
}

// MiningSlotBid is the bond backing a slot bid.
type MiningSlotBid struct {
	VaultID VaultID
	Amount  Balance
}

// MiningRegistration is a miner registered for a slot cohort.
type MiningRegistration struct {
	AccountID         AccountID
	RewardDestination RewardDestination
	BondID            *BondID
	BondAmount        Balance
	OwnershipTokens   Balance
}

// MiningSlotConfig are the block timings of the slot auctions.
type MiningSlotConfig struct {
	BlocksBeforeBidEndForVrfClose BlockNumber
	BlocksBetweenSlots            BlockNumber
	SlotBiddingStartBlock         BlockNumber
}

type miningSlotEvent struct{}

func (miningSlotEvent) PalletName() string { return miningSlotPallet }

// MiningSlotNewMiners is emitted when a new cohort becomes active.
type MiningSlotNewMiners struct {
	miningSlotEvent
	StartIndex uint32
	NewMiners  []MiningRegistration
}

func (MiningSlotNewMiners) EventName() string { return "NewMiners" }

type MiningSlotBidderAdded struct {
	miningSlotEvent
	AccountID AccountID
	BidAmount Balance
	Index     uint32
}

func (MiningSlotBidderAdded) EventName() string { return "SlotBidderAdded" }

type MiningSlotBidderReplaced struct {
	miningSlotEvent
	AccountID         AccountID
	BondID            *BondID
	KeptOwnershipBond bool
}

func (MiningSlotBidderReplaced) EventName() string { return "SlotBidderReplaced" }

type MiningSlotUnbondedMiner struct {
	miningSlotEvent
	AccountID         AccountID
	BondID            *BondID
	KeptOwnershipBond bool
}

func (MiningSlotUnbondedMiner) EventName() string { return "UnbondedMiner" }

type MiningSlotUnbondMinerError struct {
	miningSlotEvent
	AccountID AccountID
	BondID    *BondID
	Error     chain.RawDispatchError
}

func (MiningSlotUnbondMinerError) EventName() string { return "UnbondMinerError" }

func registerMiningSlotEvents(r *chain.EventRegistry) {
	r.Register("NewMiners(start_index:u32,new_miners:BoundedVec<MiningRegistration<AccountId32,u128>>)",
		func() chain.Event { return &MiningSlotNewMiners{} })
	r.Register("SlotBidderAdded(account_id:AccountId32,bid_amount:u128,index:u32)",
		func() chain.Event { return &MiningSlotBidderAdded{} })
	r.Register("SlotBidderReplaced(account_id:AccountId32,bond_id:Option<u64>,kept_ownership_bond:bool)",
		func() chain.Event { return &MiningSlotBidderReplaced{} })
	r.Register("UnbondedMiner(account_id:AccountId32,bond_id:Option<u64>,kept_ownership_bond:bool)",
		func() chain.Event { return &MiningSlotUnbondedMiner{} })
	r.Register("UnbondMinerError(account_id:AccountId32,bond_id:Option<u64>,error:DispatchError)",
		func() chain.Event { return &MiningSlotUnbondMinerError{} })
}

// MiningSlotTx builds MiningSlot calls.
type MiningSlotTx struct{}

// Bid submits a bid for the next slot cohort. A nil bond bids with
// ownership tokens only.
func (MiningSlotTx) Bid(bond *MiningSlotBid, destination RewardDestination) *chain.Payload {
	args := struct {
		BondInfo          *MiningSlotBid
		RewardDestination RewardDestination
	}{bond, destination}
	return chain.NewPayload(miningSlotPallet, "bid", args,
		"bid(bond_info:Option<MiningSlotBid<u32,u128>>,reward_destination:RewardDestination<AccountId32>)")
}

// MiningSlotStorage addresses MiningSlot storage.
type MiningSlotStorage struct{}

const activeMinersSignature = "ActiveMinersByIndex[Twox64Concat(u32)]->MiningRegistration<AccountId32,u128>"

// ActiveMinersByIndex is the active miner at the slot index.
func (MiningSlotStorage) ActiveMinersByIndex(index uint32) *chain.StorageAddress[MiningRegistration] {
	return chain.NewStorageAddress[MiningRegistration](miningSlotPallet, "ActiveMinersByIndex", twox64Concat,
		activeMinersSignature, index)
}

func (MiningSlotStorage) ActiveMinersByIndexIter() *chain.StorageAddress[MiningRegistration] {
	return chain.NewStorageAddress[MiningRegistration](miningSlotPallet, "ActiveMinersByIndex", twox64Concat,
		activeMinersSignature)
}

func (MiningSlotStorage) ActiveMinersCount() *chain.StorageAddress[uint16] {
	return chain.NewStorageAddress[uint16](miningSlotPallet, "ActiveMinersCount", nil,
		"ActiveMinersCount[]->u16")
}

// AccountIndexLookup is the slot index of an active miner.
func (MiningSlotStorage) AccountIndexLookup(id AccountID) *chain.StorageAddress[uint32] {
	return chain.NewStorageAddress[uint32](miningSlotPallet, "AccountIndexLookup", twox64Concat,
		"AccountIndexLookup[Twox64Concat(AccountId32)]->u32", id)
}

func (MiningSlotStorage) AccountIndexLookupIter() *chain.StorageAddress[uint32] {
	return chain.NewStorageAddress[uint32](miningSlotPallet, "AccountIndexLookup", twox64Concat,
		"AccountIndexLookup[Twox64Concat(AccountId32)]->u32")
}

// NextSlotCohort are the winning bids of the running auction.
func (MiningSlotStorage) NextSlotCohort() *chain.StorageAddress[[]MiningRegistration] {
	return chain.NewStorageAddress[[]MiningRegistration](miningSlotPallet, "NextSlotCohort", nil,
		"NextSlotCohort[]->BoundedVec<MiningRegistration<AccountId32,u128>>")
}

func (MiningSlotStorage) IsNextSlotBiddingOpen() *chain.StorageAddress[bool] {
	return chain.NewStorageAddress[bool](miningSlotPallet, "IsNextSlotBiddingOpen", nil,
		"IsNextSlotBiddingOpen[]->bool")
}

func (MiningSlotStorage) MiningConfig() *chain.StorageAddress[MiningSlotConfig] {
	return chain.NewStorageAddress[MiningSlotConfig](miningSlotPallet, "MiningConfig", nil,
		"MiningConfig[]->MiningSlotConfig<u32>")
}

// OwnershipBondAmount is the ownership tokens a bid must bond.
func (MiningSlotStorage) OwnershipBondAmount() *chain.StorageAddress[Balance] {
	return chain.NewStorageAddress[Balance](miningSlotPallet, "OwnershipBondAmount", nil,
		"OwnershipBondAmount[]->u128")
}

// MiningSlotConstants addresses MiningSlot constants.
type MiningSlotConstants struct{}

func (MiningSlotConstants) MaxMiners() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](miningSlotPallet, "MaxMiners", "MaxMiners:u32")
}

func (MiningSlotConstants) MaxCohortSize() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](miningSlotPallet, "MaxCohortSize", "MaxCohortSize:u32")
}

func (MiningSlotConstants) TargetBidsPerSlot() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](miningSlotPallet, "TargetBidsPerSlot", "TargetBidsPerSlot:u32")
}

func (MiningSlotConstants) OwnershipPercentAdjustmentDamper() *chain.ConstantAddress[FixedU128] {
	return chain.NewConstantAddress[FixedU128](miningSlotPallet, "OwnershipPercentAdjustmentDamper",
		"OwnershipPercentAdjustmentDamper:FixedU128")
}

func miningSlotBindings() []chain.Binding {
	storage, constants := MiningSlotStorage{}, MiningSlotConstants{}
	return []chain.Binding{
		MiningSlotTx{}.Bid(nil, RewardDestination{}),
		storage.ActiveMinersByIndexIter(),
		storage.ActiveMinersCount(),
		storage.AccountIndexLookupIter(),
		storage.NextSlotCohort(),
		storage.IsNextSlotBiddingOpen(),
		storage.MiningConfig(),
		storage.OwnershipBondAmount(),
		constants.MaxMiners(),
		constants.MaxCohortSize(),
		constants.TargetBidsPerSlot(),
		constants.OwnershipPercentAdjustmentDamper(),
	}
}
