// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"fmt"
	"math/big"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const blockSealPallet = "BlockSeal"

// BlockSeal module errors.
const (
	BlockSealErrorInvalidVoteSealStrength    = "InvalidVoteSealStrength"
	BlockSealErrorInvalidSubmitter           = "InvalidSubmitter"
	BlockSealErrorUnableToDecodeVoteAccount  = "UnableToDecodeVoteAccount"
	BlockSealErrorUnregisteredBlockAuthor    = "UnregisteredBlockAuthor"
	BlockSealErrorInvalidBlockVoteProof      = "InvalidBlockVoteProof"
	BlockSealErrorNoGrandparentVoteMinimum   = "NoGrandparentVoteMinimum"
	BlockSealErrorDuplicateBlockSealProvided = "DuplicateBlockSealProvided"
	BlockSealErrorInsufficientVotingPower    = "InsufficientVotingPower"
	BlockSealErrorParentVotingKeyNotFound    = "ParentVotingKeyNotFound"
	BlockSealErrorInvalidVoteGrandparentHash = "InvalidVoteGrandparentHash"
	BlockSealErrorIneligibleNotebookUsed     = "IneligibleNotebookUsed"
	BlockSealErrorNoEligibleVotingRoot       = "NoEligibleVotingRoot"
	BlockSealErrorUnregisteredDataDomain     = "UnregisteredDataDomain"
	BlockSealErrorInvalidDataDomainAccount   = "InvalidDataDomainAccount"
	BlockSealErrorInvalidAuthoritySignature  = "InvalidAuthoritySignature"
	BlockSealErrorCouldNotDecodeVote         = "CouldNotDecodeVote"
	BlockSealErrorMaxNotebooksAtTickExceeded = "MaxNotebooksAtTickExceeded"
	BlockSealErrorNoClosestMinerFoundForVote = "NoClosestMinerFoundForVote"
	BlockSealErrorBlockVoteInvalidSignature  = "BlockVoteInvalidSignature"
	BlockSealErrorInvalidForkPowerParent     = "InvalidForkPowerParent"
	BlockSealErrorBlockSealDecodeError       = "BlockSealDecodeError"
	BlockSealErrorInvalidComputeBlockTick    = "InvalidComputeBlockTick"
)

// MultiSignature is an sr25519 signature of a localchain account.
type MultiSignature struct {
	Sr25519 [64]byte
}

const multiSignatureSr25519Index = 1

// MarshalSCALE encodes the sr25519 variant.
func (s MultiSignature) MarshalSCALE() ([]byte, error) {
	return common.Concat([]byte{multiSignatureSr25519Index}, s.Sr25519[:]), nil
}

// UnmarshalSCALE decodes the sr25519 variant.
func (s *MultiSignature) UnmarshalSCALE(r scale.Reader) error {
	index, err := r.ReadByte()
	if err != nil {
		return err
	}
	if index != multiSignatureSr25519Index {
		return fmt.Errorf("%w: multi signature variant %d", scale.ErrUnknownVaryingDataTypeIndex, index)
	}
	return scale.NewDecoder(r).Decode(&s.Sr25519)
}

// BlockVote is a localchain vote for a block.
type BlockVote struct {
	AccountID             AccountID
	BlockHash             common.Hash
	Index                 uint
	Power                 *big.Int
	DataDomainHash        common.Hash
	DataDomainAccount     AccountID
	Signature             MultiSignature
	BlockRewardsAccountID AccountID
}

// MerkleProof proves a leaf of a notebook vote root.
type MerkleProof struct {
	Proof          []common.Hash
	NumberOfLeaves uint
	LeafIndex      uint
}

// VoteSeal seals a block with a block vote.
type VoteSeal struct {
	SealStrength         scale.Uint256
	NotaryID             uint
	SourceNotebookNumber uint
	SourceNotebookProof  MerkleProof
	BlockVote            BlockVote
	MinerSignature       [64]byte
}

// BlockSealInherent is the seal of a block. A nil Vote is a compute seal.
type BlockSealInherent struct {
	Vote *VoteSeal
}

const (
	blockSealVoteIndex    = 0
	blockSealComputeIndex = 1
)

// MarshalSCALE encodes the seal variant.
func (s BlockSealInherent) MarshalSCALE() ([]byte, error) {
	if s.Vote == nil {
		return []byte{blockSealComputeIndex}, nil
	}
	vote, err := scale.Marshal(*s.Vote)
	if err != nil {
		return nil, fmt.Errorf("encoding vote seal: %w", err)
	}
	return common.Concat([]byte{blockSealVoteIndex}, vote), nil
}

// UnmarshalSCALE decodes the seal variant.
func (s *BlockSealInherent) UnmarshalSCALE(r scale.Reader) error {
	index, err := r.ReadByte()
	if err != nil {
		return err
	}

	switch index {
	case blockSealComputeIndex:
		s.Vote = nil
		return nil
	case blockSealVoteIndex:
		s.Vote = new(VoteSeal)
		return scale.NewDecoder(r).Decode(s.Vote)
	default:
		return fmt.Errorf("%w: block seal variant %d", scale.ErrUnknownVaryingDataTypeIndex, index)
	}
}

// BlockVoteDigest is the voting power and vote count digest of a block.
type BlockVoteDigest struct {
	VotingPower *big.Int
	VotesCount  uint
}

// BlockSealerInfo is the author of the last block.
type BlockSealerInfo struct {
	BlockAuthorAccountID    AccountID
	BlockVoteRewardsAccount *AccountID
	BlockSealAuthority      *[32]byte
}

// BlockSealTx builds BlockSeal calls.
type BlockSealTx struct{}

// Apply applies the seal of the block. It is an inherent.
func (BlockSealTx) Apply(seal BlockSealInherent) *chain.Payload {
	return chain.NewPayload(blockSealPallet, "apply", struct{ Seal BlockSealInherent }{seal},
		"apply(seal:BlockSealInherent)")
}

// BlockSealStorage addresses BlockSeal storage.
type BlockSealStorage struct{}

func (BlockSealStorage) LastBlockSealerInfo() *chain.StorageAddress[BlockSealerInfo] {
	return chain.NewStorageAddress[BlockSealerInfo](blockSealPallet, "LastBlockSealerInfo", nil,
		"LastBlockSealerInfo[]->BlockSealerInfo<AccountId32>")
}

// ParentVotingKey is the key votes for the next block are checked
// against. It is nil when the parent block had no eligible notebooks.
func (BlockSealStorage) ParentVotingKey() *chain.StorageAddress[*common.Hash] {
	return chain.NewStorageAddress[*common.Hash](blockSealPallet, "ParentVotingKey", nil,
		"ParentVotingKey[]->Option<H256>")
}

func (BlockSealStorage) TempAuthor() *chain.StorageAddress[AccountID] {
	return chain.NewStorageAddress[AccountID](blockSealPallet, "TempAuthor", nil, "TempAuthor[]->AccountId32")
}

func blockSealBindings() []chain.Binding {
	storage := BlockSealStorage{}
	return []chain.Binding{
		BlockSealTx{}.Apply(BlockSealInherent{}),
		storage.LastBlockSealerInfo(),
		storage.ParentVotingKey(),
		storage.TempAuthor(),
	}
}
