// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"errors"

	"github.com/ChainSafe/argon-client/lib/metadata"
)

// Binding is any static descriptor which can be checked against
// the runtime metadata.
type Binding interface {
	Validate(md *metadata.Metadata) error
	String() string
}

// ValidateAll validates every binding and joins all the errors.
func ValidateAll(md *metadata.Metadata, bindings []Binding) error {
	var errs []error
	for _, binding := range bindings {
		err := binding.Validate(md)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
