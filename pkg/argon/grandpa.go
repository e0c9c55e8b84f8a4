// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const grandpaPallet = "Grandpa"

// Grandpa module errors.
const (
	GrandpaErrorPauseFailed              = "PauseFailed"
	GrandpaErrorResumeFailed             = "ResumeFailed"
	GrandpaErrorChangePending            = "ChangePending"
	GrandpaErrorTooSoon                  = "TooSoon"
	GrandpaErrorInvalidKeyOwnershipProof = "InvalidKeyOwnershipProof"
	GrandpaErrorInvalidEquivocationProof = "InvalidEquivocationProof"
	GrandpaErrorDuplicateOffenceReport   = "DuplicateOffenceReport"
)

// GrandpaAuthority is a finality voter and its weight.
type GrandpaAuthority struct {
	ID     [32]byte
	Weight uint64
}

// StoredState is the state of the finality voter set.
type StoredState struct {
	// Kind is one of Live, PendingPause, Paused or PendingResume.
	Kind StoredStateKind
	// At is the scheduled block of a pending pause or resume.
	At BlockNumber
	// Delay is the delay of a pending pause or resume.
	Delay BlockNumber
}

// StoredStateKind is the variant of a StoredState.
type StoredStateKind uint8

// Voter set states.
const (
	StoredStateLive StoredStateKind = iota
	StoredStatePendingPause
	StoredStatePaused
	StoredStatePendingResume
)

func (k StoredStateKind) String() string {
	switch k {
	case StoredStateLive:
		return "Live"
	case StoredStatePendingPause:
		return "PendingPause"
	case StoredStatePaused:
		return "Paused"
	case StoredStatePendingResume:
		return "PendingResume"
	default:
		return "Unknown"
	}
}

func (s StoredState) pending() bool {
	return s.Kind == StoredStatePendingPause || s.Kind == StoredStatePendingResume
}

// MarshalSCALE encodes the state variant.
func (s StoredState) MarshalSCALE() ([]byte, error) {
	if !s.pending() {
		return []byte{byte(s.Kind)}, nil
	}
	encoded, err := scale.Marshal(struct{ At, Delay BlockNumber }{s.At, s.Delay})
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(s.Kind)}, encoded...), nil
}

// UnmarshalSCALE decodes the state variant.
func (s *StoredState) UnmarshalSCALE(r scale.Reader) error {
	index, err := r.ReadByte()
	if err != nil {
		return err
	}

	*s = StoredState{Kind: StoredStateKind(index)}
	switch s.Kind {
	case StoredStateLive, StoredStatePaused:
		return nil
	case StoredStatePendingPause, StoredStatePendingResume:
		decoder := scale.NewDecoder(r)
		err = decoder.Decode(&s.At)
		if err != nil {
			return err
		}
		return decoder.Decode(&s.Delay)
	default:
		return fmt.Errorf("%w: stored state variant %d", scale.ErrUnknownVaryingDataTypeIndex, index)
	}
}

type grandpaEvent struct{}

func (grandpaEvent) PalletName() string { return grandpaPallet }

// GrandpaNewAuthorities is emitted when the voter set changes.
type GrandpaNewAuthorities struct {
	grandpaEvent
	AuthoritySet []GrandpaAuthority
}

func (GrandpaNewAuthorities) EventName() string { return "NewAuthorities" }

type GrandpaPaused struct {
	grandpaEvent
}

func (GrandpaPaused) EventName() string { return "Paused" }

type GrandpaResumed struct {
	grandpaEvent
}

func (GrandpaResumed) EventName() string { return "Resumed" }

func registerGrandpaEvents(r *chain.EventRegistry) {
	r.Register("NewAuthorities(authority_set:Vec<(Public,u64)>)",
		func() chain.Event { return &GrandpaNewAuthorities{} })
	r.Register("Paused()",
		func() chain.Event { return &GrandpaPaused{} })
	r.Register("Resumed()",
		func() chain.Event { return &GrandpaResumed{} })
}

// GrandpaTx builds Grandpa calls.
type GrandpaTx struct{}

// NoteStalled schedules a forced change of the voter set after the
// delay, counted from the best finalized block given. It requires the
// root origin.
func (GrandpaTx) NoteStalled(delay, bestFinalizedBlockNumber BlockNumber) *chain.Payload {
	args := struct {
		Delay                    BlockNumber
		BestFinalizedBlockNumber BlockNumber
	}{delay, bestFinalizedBlockNumber}
	return chain.NewPayload(grandpaPallet, "note_stalled", args,
		"note_stalled(delay:u32,best_finalized_block_number:u32)")
}

// GrandpaStorage addresses Grandpa storage.
type GrandpaStorage struct{}

func (GrandpaStorage) State() *chain.StorageAddress[StoredState] {
	return chain.NewStorageAddress[StoredState](grandpaPallet, "State", nil, "State[]->StoredState<u32>")
}

// CurrentSetID is the id of the current voter set.
func (GrandpaStorage) CurrentSetID() *chain.StorageAddress[uint64] {
	return chain.NewStorageAddress[uint64](grandpaPallet, "CurrentSetId", nil, "CurrentSetId[]->u64")
}

func (GrandpaStorage) Stalled() *chain.StorageAddress[*[2]BlockNumber] {
	return chain.NewStorageAddress[*[2]BlockNumber](grandpaPallet, "Stalled", nil,
		"Stalled[]->Option<(u32,u32)>")
}

func (GrandpaStorage) Authorities() *chain.StorageAddress[[]GrandpaAuthority] {
	return chain.NewStorageAddress[[]GrandpaAuthority](grandpaPallet, "Authorities", nil,
		"Authorities[]->WeakBoundedVec<(Public,u64)>")
}

// SetIDSession is the session of the voter set id.
func (GrandpaStorage) SetIDSession(setID uint64) *chain.StorageAddress[uint32] {
	return chain.NewStorageAddress[uint32](grandpaPallet, "SetIdSession", twox64Concat,
		"SetIdSession[Twox64Concat(u64)]->u32", setID)
}

func (GrandpaStorage) SetIDSessionIter() *chain.StorageAddress[uint32] {
	return chain.NewStorageAddress[uint32](grandpaPallet, "SetIdSession", twox64Concat,
		"SetIdSession[Twox64Concat(u64)]->u32")
}

// GrandpaConstants addresses Grandpa constants.
type GrandpaConstants struct{}

func (GrandpaConstants) MaxAuthorities() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](grandpaPallet, "MaxAuthorities", "MaxAuthorities:u32")
}

func (GrandpaConstants) MaxNominators() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](grandpaPallet, "MaxNominators", "MaxNominators:u32")
}

func (GrandpaConstants) MaxSetIDSessionEntries() *chain.ConstantAddress[uint64] {
	return chain.NewConstantAddress[uint64](grandpaPallet, "MaxSetIdSessionEntries",
		"MaxSetIdSessionEntries:u64")
}

func grandpaBindings() []chain.Binding {
	storage, constants := GrandpaStorage{}, GrandpaConstants{}
	return []chain.Binding{
		GrandpaTx{}.NoteStalled(0, 0),
		storage.State(),
		storage.CurrentSetID(),
		storage.Stalled(),
		storage.Authorities(),
		storage.SetIDSessionIter(),
		constants.MaxAuthorities(),
		constants.MaxNominators(),
		constants.MaxSetIDSessionEntries(),
	}
}
