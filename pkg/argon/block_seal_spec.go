// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const blockSealSpecPallet = "BlockSealSpec"

// BlockSealSpec module errors.
const (
	BlockSealSpecErrorMaxNotebooksAtTickExceeded = "MaxNotebooksAtTickExceeded"
)

// BlockVotes are the votes cast in a block.
type BlockVotes struct {
	Tick        Tick
	VoteCount   uint32
	VotingPower Balance
}

type blockSealSpecEvent struct{}

func (blockSealSpecEvent) PalletName() string { return blockSealSpecPallet }

// VoteMinimumAdjusted is emitted when the vote minimum is retargeted.
type VoteMinimumAdjusted struct {
	blockSealSpecEvent
	ExpectedBlockVotes Balance
	ActualBlockVotes   Balance
	StartVoteMinimum   Balance
	NewVoteMinimum     Balance
}

func (VoteMinimumAdjusted) EventName() string { return "VoteMinimumAdjusted" }

// ComputeDifficultyAdjusted is emitted when the compute difficulty is
// retargeted.
type ComputeDifficultyAdjusted struct {
	blockSealSpecEvent
	ExpectedBlockTime uint64
	ActualBlockTime   uint64
	StartDifficulty   Balance
	NewDifficulty     Balance
}

func (ComputeDifficultyAdjusted) EventName() string { return "ComputeDifficultyAdjusted" }

func registerBlockSealSpecEvents(r *chain.EventRegistry) {
	r.Register("VoteMinimumAdjusted(expected_block_votes:u128,actual_block_votes:u128,"+
		"start_vote_minimum:u128,new_vote_minimum:u128)",
		func() chain.Event { return &VoteMinimumAdjusted{} })
	r.Register("ComputeDifficultyAdjusted(expected_block_time:u64,actual_block_time:u64,"+
		"start_difficulty:u128,new_difficulty:u128)",
		func() chain.Event { return &ComputeDifficultyAdjusted{} })
}

// BlockSealSpecTx builds BlockSealSpec calls.
type BlockSealSpecTx struct{}

// Configure overrides the vote minimum and the compute difficulty.
// Nil values are left unchanged. It requires the root origin.
func (BlockSealSpecTx) Configure(voteMinimum, computeDifficulty *Balance) *chain.Payload {
	args := struct {
		VoteMinimum       *Balance
		ComputeDifficulty *Balance
	}{voteMinimum, computeDifficulty}
	return chain.NewPayload(blockSealSpecPallet, "configure", args,
		"configure(vote_minimum:Option<u128>,compute_difficulty:Option<u128>)")
}

// BlockSealSpecStorage addresses BlockSealSpec storage.
type BlockSealSpecStorage struct{}

// CurrentVoteMinimum is the minimum voting power of a block vote.
func (BlockSealSpecStorage) CurrentVoteMinimum() *chain.StorageAddress[Balance] {
	return chain.NewStorageAddress[Balance](blockSealSpecPallet, "CurrentVoteMinimum", nil,
		"CurrentVoteMinimum[]->u128")
}

func (BlockSealSpecStorage) CurrentComputeDifficulty() *chain.StorageAddress[Balance] {
	return chain.NewStorageAddress[Balance](blockSealSpecPallet, "CurrentComputeDifficulty", nil,
		"CurrentComputeDifficulty[]->u128")
}

func (BlockSealSpecStorage) PastComputeBlockTimes() *chain.StorageAddress[[]uint64] {
	return chain.NewStorageAddress[[]uint64](blockSealSpecPallet, "PastComputeBlockTimes", nil,
		"PastComputeBlockTimes[]->BoundedVec<u64>")
}

func (BlockSealSpecStorage) PastBlockVotes() *chain.StorageAddress[[]BlockVotes] {
	return chain.NewStorageAddress[[]BlockVotes](blockSealSpecPallet, "PastBlockVotes", nil,
		"PastBlockVotes[]->BoundedVec<(u64,u32,u128)>")
}

// BlockSealSpecConstants addresses BlockSealSpec constants.
type BlockSealSpecConstants struct{}

func (BlockSealSpecConstants) TargetBlockVotes() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](blockSealSpecPallet, "TargetBlockVotes", "TargetBlockVotes:u128")
}

func (BlockSealSpecConstants) ChangePeriod() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](blockSealSpecPallet, "ChangePeriod", "ChangePeriod:u32")
}

func (BlockSealSpecConstants) HistoricalComputeBlocksForAverage() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](blockSealSpecPallet, "HistoricalComputeBlocksForAverage",
		"HistoricalComputeBlocksForAverage:u32")
}

func (BlockSealSpecConstants) HistoricalVoteBlocksForAverage() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](blockSealSpecPallet, "HistoricalVoteBlocksForAverage",
		"HistoricalVoteBlocksForAverage:u32")
}

func blockSealSpecBindings() []chain.Binding {
	storage, constants := BlockSealSpecStorage{}, BlockSealSpecConstants{}
	return []chain.Binding{
		BlockSealSpecTx{}.Configure(nil, nil),
		storage.CurrentVoteMinimum(),
		storage.CurrentComputeDifficulty(),
		storage.PastComputeBlockTimes(),
		storage.PastBlockVotes(),
		constants.TargetBlockVotes(),
		constants.ChangePeriod(),
		constants.HistoricalComputeBlocksForAverage(),
		constants.HistoricalVoteBlocksForAverage(),
	}
}
