// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metadata

import (
	"fmt"
	"strings"
)

// ModuleErrorDetails names a pallet error.
type ModuleErrorDetails struct {
	Pallet string
	Name   string
	Docs   []string
}

func (d ModuleErrorDetails) String() string {
	s := d.Pallet + "." + d.Name
	if len(d.Docs) > 0 {
		s += ": " + strings.TrimSpace(strings.Join(d.Docs, " "))
	}
	return s
}

// ModuleError resolves the error of a pallet from its pallet index and
// the 4 error bytes of a dispatch error. The first byte is the index of
// the error variant.
func (m *Metadata) ModuleError(palletIndex uint8, errorBytes [4]byte) (*ModuleErrorDetails, error) {
	pallet, err := m.PalletByIndex(palletIndex)
	if err != nil {
		return nil, err
	}
	if pallet.Error == nil {
		return nil, fmt.Errorf("%w: pallet %s has no errors", ErrNotFound, pallet.Name)
	}

	variant, err := m.Types.VariantByIndex(*pallet.Error, errorBytes[0])
	if err != nil {
		return nil, fmt.Errorf("error of pallet %s: %w", pallet.Name, err)
	}

	return &ModuleErrorDetails{
		Pallet: pallet.Name,
		Name:   variant.Name,
		Docs:   variant.Docs,
	}, nil
}
