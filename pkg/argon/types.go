// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

// SS58Prefix is the address prefix of Argon accounts.
const SS58Prefix uint16 = 18

// Aliases of the runtime primitive types.
type (
	Balance        = scale.Uint128
	BlockNumber    = uint32
	Tick           = uint64
	NotaryID       = uint32
	NotebookNumber = uint32
	VaultID        = uint32
	BondID         = uint64
	UtxoID         = uint64
	TransferID     = uint32
	Satoshis       = uint64
	// Permill is a parts per million ratio.
	Permill = uint32
	// FixedU128 is a fixed point number with 18 decimals.
	FixedU128 = scale.Uint128
)

// AccountID is a 32 bytes account identifier, the public key of
// its sr25519 keypair.
type AccountID [32]byte

// ParseAccountID decodes an SS58 address of any prefix.
func ParseAccountID(address string) (id AccountID, err error) {
	id, _, err = common.DecodeSS58(address)
	if err != nil {
		return id, fmt.Errorf("parsing account id: %w", err)
	}
	return id, nil
}

// String returns the SS58 address of the account with the Argon prefix.
func (a AccountID) String() string {
	return common.MustEncodeSS58(a, SS58Prefix)
}

// MultiAddress is the address type of calls taking a destination.
// Only the account id variant is supported.
type MultiAddress struct {
	ID AccountID
}

// Address returns the MultiAddress::Id of the account.
func Address(id AccountID) MultiAddress {
	return MultiAddress{ID: id}
}

const multiAddressIDIndex = 0

// MarshalSCALE encodes the MultiAddress::Id variant.
func (a MultiAddress) MarshalSCALE() ([]byte, error) {
	return common.Concat([]byte{multiAddressIDIndex}, a.ID[:]), nil
}

// UnmarshalSCALE decodes the MultiAddress::Id variant.
func (a *MultiAddress) UnmarshalSCALE(r scale.Reader) error {
	index, err := r.ReadByte()
	if err != nil {
		return err
	}
	if index != multiAddressIDIndex {
		return fmt.Errorf("%w: multi address variant %d", scale.ErrUnknownVaryingDataTypeIndex, index)
	}
	return scale.NewDecoder(r).Decode(&a.ID)
}

// Weight is the two dimensional weight of a dispatch.
type Weight struct {
	RefTime   uint
	ProofSize uint
}

// DispatchClass is the class of a dispatch.
type DispatchClass uint8

// Dispatch classes.
const (
	DispatchClassNormal DispatchClass = iota
	DispatchClassOperational
	DispatchClassMandatory
)

// Pays tells whether a dispatch pays fees.
type Pays uint8

// Fee payment modes.
const (
	PaysYes Pays = iota
	PaysNo
)

// DispatchInfo is the weight and class of a dispatched extrinsic.
type DispatchInfo struct {
	Weight  Weight
	Class   DispatchClass
	PaysFee Pays
}

// DispatchResult is Result<(), DispatchError>. Err is nil on success.
type DispatchResult struct {
	Err *chain.RawDispatchError
}

// MarshalSCALE encodes the result variant.
func (r DispatchResult) MarshalSCALE() ([]byte, error) {
	if r.Err == nil {
		return []byte{0}, nil
	}
	return common.Concat([]byte{1}, r.Err.Bytes()), nil
}

// UnmarshalSCALE decodes the result variant.
func (r *DispatchResult) UnmarshalSCALE(reader scale.Reader) error {
	index, err := reader.ReadByte()
	if err != nil {
		return err
	}

	switch index {
	case 0:
		r.Err = nil
		return nil
	case 1:
		r.Err = new(chain.RawDispatchError)
		return r.Err.UnmarshalSCALE(reader)
	default:
		return fmt.Errorf("%w: result variant %d", scale.ErrUnknownVaryingDataTypeIndex, index)
	}
}

// Extrinsic is an encoded extrinsic passed to a runtime API. It is
// already length prefixed and so is encoded as is.
type Extrinsic []byte

// MarshalSCALE returns the extrinsic bytes.
func (e Extrinsic) MarshalSCALE() ([]byte, error) {
	return e, nil
}

// Call wraps a call payload as the argument of another call.
func Call(payload *chain.Payload) chain.RuntimeCall {
	return chain.NewRuntimeCall(payload)
}
