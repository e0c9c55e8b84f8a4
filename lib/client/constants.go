// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
)

// ConstantQuery is a constant address of any value type,
// such as a *chain.ConstantAddress.
type ConstantQuery interface {
	chain.Binding
	PalletName() string
	ConstantName() string
}

// Constants reads pallet constants from the runtime metadata.
type Constants struct {
	client *Client
}

// At decodes the constant at the address into out.
func (c *Constants) At(address ConstantQuery, out any) error {
	md := c.client.Metadata()
	err := address.Validate(md)
	if err != nil {
		return err
	}

	constant, err := md.Constant(address.PalletName(), address.ConstantName())
	if err != nil {
		return err
	}

	err = decodeValue(constant.Value, out)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", address, err)
	}
	return nil
}

// ConstantValue returns the value of the typed constant address.
func ConstantValue[V any](constants *Constants, address *chain.ConstantAddress[V]) (value V, err error) {
	err = constants.At(address, &value)
	return value, err
}
