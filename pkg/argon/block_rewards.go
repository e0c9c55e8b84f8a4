// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const blockRewardsPallet = "BlockRewards"

// BlockPayout is the reward of an account for a block.
type BlockPayout struct {
	AccountID AccountID
	Ulixees   Balance
	Argons    Balance
}

type blockRewardsEvent struct{}

func (blockRewardsEvent) PalletName() string { return blockRewardsPallet }

// RewardCreated is emitted with the rewards of the block, frozen
// until the maturation block.
type RewardCreated struct {
	blockRewardsEvent
	MaturationBlock BlockNumber
	Rewards         []BlockPayout
}

func (RewardCreated) EventName() string { return "RewardCreated" }

type RewardUnlocked struct {
	blockRewardsEvent
	Rewards []BlockPayout
}

func (RewardUnlocked) EventName() string { return "RewardUnlocked" }

type RewardUnlockError struct {
	blockRewardsEvent
	AccountID AccountID
	Argons    *Balance
	Ulixees   *Balance
	Error     chain.RawDispatchError
}

func (RewardUnlockError) EventName() string { return "RewardUnlockError" }

func registerBlockRewardsEvents(r *chain.EventRegistry) {
	r.Register("RewardCreated(maturation_block:u32,rewards:Vec<BlockPayout<AccountId32,u128>>)",
		func() chain.Event { return &RewardCreated{} })
	r.Register("RewardUnlocked(rewards:Vec<BlockPayout<AccountId32,u128>>)",
		func() chain.Event { return &RewardUnlocked{} })
	r.Register("RewardUnlockError(account_id:AccountId32,argons:Option<u128>,ulixees:Option<u128>,"+
		"error:DispatchError)",
		func() chain.Event { return &RewardUnlockError{} })
}

// BlockRewardsTx builds BlockRewards calls.
type BlockRewardsTx struct{}

// SetBlockRewardsPaused pauses or resumes block rewards. It requires
// the root origin.
func (BlockRewardsTx) SetBlockRewardsPaused(paused bool) *chain.Payload {
	return chain.NewPayload(blockRewardsPallet, "set_block_rewards_paused", struct{ Paused bool }{paused},
		"set_block_rewards_paused(paused:bool)")
}

// BlockRewardsStorage addresses BlockRewards storage.
type BlockRewardsStorage struct{}

// PayoutsByBlock are the rewards maturing at the block.
func (BlockRewardsStorage) PayoutsByBlock(block BlockNumber) *chain.StorageAddress[[]BlockPayout] {
	return chain.NewStorageAddress[[]BlockPayout](blockRewardsPallet, "PayoutsByBlock", twox64Concat,
		"PayoutsByBlock[Twox64Concat(u32)]->BoundedVec<BlockPayout<AccountId32,u128>>", block)
}

func (BlockRewardsStorage) PayoutsByBlockIter() *chain.StorageAddress[[]BlockPayout] {
	return chain.NewStorageAddress[[]BlockPayout](blockRewardsPallet, "PayoutsByBlock", twox64Concat,
		"PayoutsByBlock[Twox64Concat(u32)]->BoundedVec<BlockPayout<AccountId32,u128>>")
}

func (BlockRewardsStorage) BlockRewardsPaused() *chain.StorageAddress[bool] {
	return chain.NewStorageAddress[bool](blockRewardsPallet, "BlockRewardsPaused", nil,
		"BlockRewardsPaused[]->bool")
}

// BlockRewardsConstants addresses BlockRewards constants.
type BlockRewardsConstants struct{}

func (BlockRewardsConstants) ArgonsPerBlock() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](blockRewardsPallet, "ArgonsPerBlock", "ArgonsPerBlock:u128")
}

func (BlockRewardsConstants) StartingUlixeesPerBlock() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](blockRewardsPallet, "StartingUlixeesPerBlock",
		"StartingUlixeesPerBlock:u128")
}

// HalvingBlocks is the number of blocks between ulixee reward halvings.
func (BlockRewardsConstants) HalvingBlocks() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](blockRewardsPallet, "HalvingBlocks", "HalvingBlocks:u32")
}

func (BlockRewardsConstants) MinerPayoutPercent() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](blockRewardsPallet, "MinerPayoutPercent",
		"MinerPayoutPercent:u128")
}

func (BlockRewardsConstants) MaturationBlocks() *chain.ConstantAddress[BlockNumber] {
	return chain.NewConstantAddress[BlockNumber](blockRewardsPallet, "MaturationBlocks", "MaturationBlocks:u32")
}

func blockRewardsBindings() []chain.Binding {
	storage, constants := BlockRewardsStorage{}, BlockRewardsConstants{}
	return []chain.Binding{
		BlockRewardsTx{}.SetBlockRewardsPaused(false),
		storage.PayoutsByBlockIter(),
		storage.BlockRewardsPaused(),
		constants.ArgonsPerBlock(),
		constants.StartingUlixeesPerBlock(),
		constants.HalvingBlocks(),
		constants.MinerPayoutPercent(),
		constants.MaturationBlocks(),
	}
}
