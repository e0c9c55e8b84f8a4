// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"fmt"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

// ConstantAddress addresses a pallet constant of type V.
type ConstantAddress[V any] struct {
	Pallet string
	Name   string
	// Hash is the static signature hash, nil if not validated.
	Hash *common.Hash
}

// NewConstantAddress returns a constant address whose static hash
// is the hash of the constant signature given.
func NewConstantAddress[V any](pallet, name, signature string) *ConstantAddress[V] {
	return &ConstantAddress[V]{
		Pallet: pallet,
		Name:   name,
		Hash:   hashPtr(signature),
	}
}

// Unvalidated returns a copy of the address which skips validation.
func (a *ConstantAddress[V]) Unvalidated() *ConstantAddress[V] {
	unvalidated := *a
	unvalidated.Hash = nil
	return &unvalidated
}

func (a *ConstantAddress[V]) String() string {
	return KindConstant + " " + a.Pallet + "." + a.Name
}

// PalletName returns the pallet of the constant.
func (a *ConstantAddress[V]) PalletName() string { return a.Pallet }

// ConstantName returns the name of the constant.
func (a *ConstantAddress[V]) ConstantName() string { return a.Name }

// Validate checks the constant against the runtime metadata.
func (a *ConstantAddress[V]) Validate(md *metadata.Metadata) error {
	hash, err := md.ConstantHash(a.Pallet, a.Name)
	return checkHash(KindConstant, a.Pallet, a.Name, a.Hash, hash, err)
}

// Decode decodes the constant value from the runtime metadata.
func (a *ConstantAddress[V]) Decode(md *metadata.Metadata) (value V, err error) {
	constant, err := md.Constant(a.Pallet, a.Name)
	if err != nil {
		return value, err
	}

	err = scale.Unmarshal(constant.Value, &value)
	if err != nil {
		return value, fmt.Errorf("decoding constant %s.%s: %w", a.Pallet, a.Name, err)
	}
	return value, nil
}
