// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/common"
)

var (
	ErrIncompatible         = errors.New("binding is incompatible with the runtime")
	ErrHasherMismatch       = errors.New("storage hashers mismatch")
	ErrUnsupportedExtension = errors.New("unsupported signed extension")
	ErrKeyCount             = errors.New("wrong number of storage keys")
	ErrUnresolvedCall       = errors.New("runtime call is not resolved")
	ErrEventMismatch        = errors.New("event record does not match")
	ErrUnknownEvent         = errors.New("event is not registered")
	ErrStorageKey           = errors.New("malformed storage key")
	ErrTrailingEventData    = errors.New("trailing bytes after event records")
	ErrSignatureLength      = errors.New("signature must be 64 bytes")
)

// Kinds of binding items.
const (
	KindCall       = "call"
	KindStorage    = "storage"
	KindEvent      = "event"
	KindConstant   = "constant"
	KindRuntimeAPI = "runtime api"
)

// IncompatibleError is returned when the static signature hash of a
// binding differs from the hash rendered from the runtime metadata.
type IncompatibleError struct {
	Kind   string
	Pallet string
	Item   string
	Want   common.Hash
	Got    common.Hash
}

func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("%s: %s %s.%s: static hash %s, runtime hash %s",
		ErrIncompatible, e.Kind, e.Pallet, e.Item, e.Want.Short(), e.Got.Short())
}

// Unwrap returns ErrIncompatible.
func (e *IncompatibleError) Unwrap() error {
	return ErrIncompatible
}

// checkHash compares a static hash with the runtime hash. A nil
// static hash means the binding is not validated.
func checkHash(kind, pallet, item string, static *common.Hash,
	runtimeHash common.Hash, err error) error {
	if static == nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s %s.%s: %w", kind, pallet, item, err)
	}
	if *static != runtimeHash {
		return &IncompatibleError{
			Kind:   kind,
			Pallet: pallet,
			Item:   item,
			Want:   *static,
			Got:    runtimeHash,
		}
	}
	return nil
}

func hashPtr(signature string) *common.Hash {
	hash := common.MustBlake2bHash([]byte(signature))
	return &hash
}
