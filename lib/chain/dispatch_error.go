// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

var ErrDispatch = errors.New("dispatch error")

const dispatchErrorModule = "Module"

// DispatchError is a decoded sp_runtime::DispatchError.
type DispatchError struct {
	// Kind is the DispatchError variant name.
	Kind string
	// Module is set for module errors.
	Module *metadata.ModuleErrorDetails
	// Detail is the inner variant name of Token, Arithmetic
	// and Transactional errors.
	Detail string
}

func (e *DispatchError) Error() string {
	switch {
	case e.Module != nil:
		return fmt.Sprintf("%s: %s.%s", ErrDispatch, e.Module.Pallet, e.Module.Name)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s.%s", ErrDispatch, e.Kind, e.Detail)
	default:
		return fmt.Sprintf("%s: %s", ErrDispatch, e.Kind)
	}
}

// Unwrap returns ErrDispatch.
func (e *DispatchError) Unwrap() error {
	return ErrDispatch
}

// IsModuleError returns true if the error is the given pallet error.
func (e *DispatchError) IsModuleError(pallet, name string) bool {
	return e.Module != nil && e.Module.Pallet == pallet && e.Module.Name == name
}

// DecodeDispatchError decodes a SCALE encoded dispatch error using the
// runtime metadata. Bytes following the dispatch error are ignored.
func DecodeDispatchError(md *metadata.Metadata, raw []byte) (*DispatchError, error) {
	return decodeDispatchError(md, bytes.NewReader(raw))
}

func decodeDispatchError(md *metadata.Metadata, reader scale.Reader) (*DispatchError, error) {
	id, ok := md.Types.FindByPath("sp_runtime", "DispatchError")
	if !ok {
		return nil, fmt.Errorf("%w: sp_runtime::DispatchError", metadata.ErrTypeNotFound)
	}

	index, err := reader.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading dispatch error: %w", io.ErrUnexpectedEOF)
	}

	variant, err := md.Types.VariantByIndex(id, index)
	if err != nil {
		return nil, err
	}

	dispatchError := &DispatchError{Kind: variant.Name}
	switch {
	case variant.Name == dispatchErrorModule && len(variant.Fields) == 1:
		palletIndex, errorBytes, err := readModuleError(md, variant.Fields[0].Type, reader)
		if err != nil {
			return nil, err
		}
		dispatchError.Module, err = md.ModuleError(palletIndex, errorBytes)
		if err != nil {
			return nil, err
		}
	case len(variant.Fields) == 1 && isVariant(md, variant.Fields[0].Type):
		innerIndex, err := reader.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("reading %s error: %w", variant.Name, io.ErrUnexpectedEOF)
		}
		inner, err := md.Types.VariantByIndex(variant.Fields[0].Type, innerIndex)
		if err != nil {
			return nil, err
		}
		dispatchError.Detail = inner.Name
	default:
		for _, field := range variant.Fields {
			err = md.Types.Skip(field.Type, reader)
			if err != nil {
				return nil, fmt.Errorf("skipping %s fields: %w", variant.Name, err)
			}
		}
	}
	return dispatchError, nil
}

func isVariant(md *metadata.Metadata, id metadata.TypeID) bool {
	t, err := md.Types.Type(id)
	return err == nil && t.Definition.Kind == metadata.KindVariant
}

// readModuleError reads a ModuleError, whose error field is either
// 4 bytes or, for older runtimes, a single byte.
func readModuleError(md *metadata.Metadata, id metadata.TypeID, reader scale.Reader) (
	palletIndex uint8, errorBytes [4]byte, err error) {
	palletIndex, err = reader.ReadByte()
	if err != nil {
		return 0, errorBytes, fmt.Errorf("reading module index: %w", io.ErrUnexpectedEOF)
	}

	errorLength := 4
	t, err := md.Types.Type(id)
	if err != nil {
		return 0, errorBytes, err
	}
	if fields := t.Definition.Fields; len(fields) == 2 {
		errorType, err := md.Types.Type(fields[1].Type)
		if err != nil {
			return 0, errorBytes, err
		}
		if errorType.Definition.Kind == metadata.KindPrimitive {
			errorLength = 1
		}
	}

	_, err = io.ReadFull(reader, errorBytes[:errorLength])
	if err != nil {
		return 0, errorBytes, fmt.Errorf("reading module error: %w", io.ErrUnexpectedEOF)
	}
	return palletIndex, errorBytes, nil
}

// Indices of the sp_runtime::DispatchError variants with fields.
const (
	dispatchErrorModuleIndex        = 3
	dispatchErrorTokenIndex         = 7
	dispatchErrorArithmeticIndex    = 8
	dispatchErrorTransactionalIndex = 9
)

// RawDispatchError is a SCALE encoded dispatch error as found in typed
// event fields. Resolve names it using the runtime metadata.
type RawDispatchError struct {
	raw []byte
}

// Bytes returns the SCALE encoding of the dispatch error.
func (e RawDispatchError) Bytes() []byte {
	return e.raw
}

// MarshalSCALE returns the raw dispatch error.
func (e RawDispatchError) MarshalSCALE() ([]byte, error) {
	return e.raw, nil
}

// UnmarshalSCALE reads a dispatch error, which is a variant index
// followed by 5 bytes for module errors or 1 byte for token,
// arithmetic and transactional errors.
func (e *RawDispatchError) UnmarshalSCALE(r scale.Reader) error {
	index, err := r.ReadByte()
	if err != nil {
		return err
	}

	var length int
	switch index {
	case dispatchErrorModuleIndex:
		length = 5
	case dispatchErrorTokenIndex, dispatchErrorArithmeticIndex, dispatchErrorTransactionalIndex:
		length = 1
	}

	e.raw = make([]byte, 1+length)
	e.raw[0] = index
	_, err = io.ReadFull(r, e.raw[1:])
	if err != nil {
		return fmt.Errorf("reading dispatch error: %w", io.ErrUnexpectedEOF)
	}
	return nil
}

// Resolve decodes the dispatch error using the runtime metadata.
func (e RawDispatchError) Resolve(md *metadata.Metadata) (*DispatchError, error) {
	return DecodeDispatchError(md, e.raw)
}
