// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package metadata decodes the runtime metadata of a Substrate chain
// (versions 14 and 15) and renders canonical signatures of its calls,
// events, storage entries, constants and runtime APIs.
package metadata

import (
	"fmt"

	"github.com/ChainSafe/argon-client/pkg/scale"
)

// StorageHasher is the hasher applied to a storage map key.
type StorageHasher uint8

const (
	Blake2_128 StorageHasher = iota //nolint:revive
	Blake2_256
	Blake2_128Concat
	Twox128
	Twox256
	Twox64Concat
	Identity
)

var hasherNames = [...]string{
	"Blake2_128", "Blake2_256", "Blake2_128Concat",
	"Twox128", "Twox256", "Twox64Concat", "Identity",
}

func (h StorageHasher) String() string {
	if int(h) < len(hasherNames) {
		return hasherNames[h]
	}
	return fmt.Sprintf("hasher(%d)", uint8(h))
}

// IsConcat returns true if the hasher output ends with the raw key,
// which makes the key recoverable from the storage key.
func (h StorageHasher) IsConcat() bool {
	return h == Blake2_128Concat || h == Twox64Concat || h == Identity
}

// StorageModifier tells whether a missing value decodes as None or as the default.
type StorageModifier uint8

const (
	Optional StorageModifier = iota
	Default
)

// StorageEntryType is a plain value or a map.
type StorageEntryType struct {
	Plain   bool
	Hashers []StorageHasher
	Key     TypeID
	Value   TypeID
}

type storageMap struct {
	Hashers []StorageHasher
	Key     TypeID
	Value   TypeID
}

// MarshalSCALE encodes the storage entry type enum.
func (t StorageEntryType) MarshalSCALE() ([]byte, error) {
	if t.Plain {
		encoded, err := scale.Marshal(t.Value)
		return append([]byte{0}, encoded...), err
	}
	encoded, err := scale.Marshal(storageMap{Hashers: t.Hashers, Key: t.Key, Value: t.Value})
	return append([]byte{1}, encoded...), err
}

// UnmarshalSCALE decodes the storage entry type enum.
func (t *StorageEntryType) UnmarshalSCALE(r scale.Reader) error {
	index, err := r.ReadByte()
	if err != nil {
		return err
	}

	decoder := scale.NewDecoder(r)
	switch index {
	case 0:
		*t = StorageEntryType{Plain: true}
		return decoder.Decode(&t.Value)
	case 1:
		var m storageMap
		err = decoder.Decode(&m)
		*t = StorageEntryType{Hashers: m.Hashers, Key: m.Key, Value: m.Value}
		return err
	default:
		return fmt.Errorf("%w: storage entry type %d", ErrUnknownVariant, index)
	}
}

// StorageEntry is a storage item of a pallet.
type StorageEntry struct {
	Name     string
	Modifier StorageModifier
	Type     StorageEntryType
	Default  []byte
	Docs     []string
}

// PalletStorage holds the storage entries of a pallet.
type PalletStorage struct {
	Prefix  string
	Entries []StorageEntry
}

// Constant is a pallet constant with its encoded value.
type Constant struct {
	Name  string
	Type  TypeID
	Value []byte
	Docs  []string
}

// Pallet is the metadata of one pallet.
type Pallet struct {
	Name      string
	Index     uint8
	Storage   *PalletStorage
	Calls     *TypeID
	Event     *TypeID
	Constants []Constant
	Error     *TypeID
	Docs      []string
}

// SignedExtension is an entry of the transaction extension pipeline.
type SignedExtension struct {
	Identifier       string
	Type             TypeID
	AdditionalSigned TypeID
}

// Extrinsic describes the extrinsic format.
type Extrinsic struct {
	Version          uint8
	Type             TypeID
	AddressType      TypeID
	CallType         TypeID
	SignatureType    TypeID
	ExtraType        TypeID
	SignedExtensions []SignedExtension
}

// RuntimeAPIParam is an argument of a runtime API method.
type RuntimeAPIParam struct {
	Name string
	Type TypeID
}

// RuntimeAPIMethod is a method of a runtime API.
type RuntimeAPIMethod struct {
	Name   string
	Inputs []RuntimeAPIParam
	Output TypeID
	Docs   []string
}

// RuntimeAPI is a runtime API trait.
type RuntimeAPI struct {
	Name    string
	Methods []RuntimeAPIMethod
	Docs    []string
}

// OuterEnums holds the aggregated call, event and error enums.
type OuterEnums struct {
	Call  TypeID
	Event TypeID
	Error TypeID
}

// CustomValue is a chain specific metadata value.
type CustomValue struct {
	Name  string
	Type  TypeID
	Value []byte
}

// Metadata is the decoded runtime metadata.
type Metadata struct {
	Version     uint8
	Types       *Registry
	Pallets     []Pallet
	Extrinsic   Extrinsic
	RuntimeType TypeID
	// Runtime APIs, outer enums and custom values are only
	// available from version 15.
	APIs       []RuntimeAPI
	OuterEnums *OuterEnums
	Custom     []CustomValue
}

// Pallet returns the pallet with the given name.
func (m *Metadata) Pallet(name string) (*Pallet, error) {
	for i := range m.Pallets {
		if m.Pallets[i].Name == name {
			return &m.Pallets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: pallet %s", ErrNotFound, name)
}

// PalletByIndex returns the pallet with the given index.
func (m *Metadata) PalletByIndex(index uint8) (*Pallet, error) {
	for i := range m.Pallets {
		if m.Pallets[i].Index == index {
			return &m.Pallets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: pallet index %d", ErrNotFound, index)
}

// Call returns the pallet and the call variant.
func (m *Metadata) Call(palletName, callName string) (*Pallet, *Variant, error) {
	pallet, err := m.Pallet(palletName)
	if err != nil {
		return nil, nil, err
	}
	if pallet.Calls == nil {
		return nil, nil, fmt.Errorf("%w: pallet %s has no calls", ErrNotFound, palletName)
	}
	variant, err := m.Types.VariantByName(*pallet.Calls, callName)
	if err != nil {
		return nil, nil, fmt.Errorf("call %s.%s: %w", palletName, callName, err)
	}
	return pallet, variant, nil
}

// Event returns the pallet and the event variant.
func (m *Metadata) Event(palletName, eventName string) (*Pallet, *Variant, error) {
	pallet, err := m.Pallet(palletName)
	if err != nil {
		return nil, nil, err
	}
	if pallet.Event == nil {
		return nil, nil, fmt.Errorf("%w: pallet %s has no events", ErrNotFound, palletName)
	}
	variant, err := m.Types.VariantByName(*pallet.Event, eventName)
	if err != nil {
		return nil, nil, fmt.Errorf("event %s.%s: %w", palletName, eventName, err)
	}
	return pallet, variant, nil
}

// EventByIndex returns the pallet and event variant of the event
// identified by its pallet index and variant index.
func (m *Metadata) EventByIndex(palletIndex, eventIndex uint8) (*Pallet, *Variant, error) {
	pallet, err := m.PalletByIndex(palletIndex)
	if err != nil {
		return nil, nil, err
	}
	if pallet.Event == nil {
		return nil, nil, fmt.Errorf("%w: pallet %s has no events", ErrNotFound, pallet.Name)
	}
	variant, err := m.Types.VariantByIndex(*pallet.Event, eventIndex)
	if err != nil {
		return nil, nil, fmt.Errorf("event of pallet %s: %w", pallet.Name, err)
	}
	return pallet, variant, nil
}

// StorageEntry returns the storage entry of the pallet.
func (m *Metadata) StorageEntry(palletName, entryName string) (*Pallet, *StorageEntry, error) {
	pallet, err := m.Pallet(palletName)
	if err != nil {
		return nil, nil, err
	}
	if pallet.Storage == nil {
		return nil, nil, fmt.Errorf("%w: pallet %s has no storage", ErrNotFound, palletName)
	}
	for i := range pallet.Storage.Entries {
		if pallet.Storage.Entries[i].Name == entryName {
			return pallet, &pallet.Storage.Entries[i], nil
		}
	}
	return nil, nil, fmt.Errorf("%w: storage %s.%s", ErrNotFound, palletName, entryName)
}

// Constant returns the constant of the pallet.
func (m *Metadata) Constant(palletName, constantName string) (*Constant, error) {
	pallet, err := m.Pallet(palletName)
	if err != nil {
		return nil, err
	}
	for i := range pallet.Constants {
		if pallet.Constants[i].Name == constantName {
			return &pallet.Constants[i], nil
		}
	}
	return nil, fmt.Errorf("%w: constant %s.%s", ErrNotFound, palletName, constantName)
}

// RuntimeAPIMethod returns the method of the runtime API trait.
func (m *Metadata) RuntimeAPIMethod(traitName, methodName string) (*RuntimeAPIMethod, error) {
	for i := range m.APIs {
		if m.APIs[i].Name != traitName {
			continue
		}
		for j := range m.APIs[i].Methods {
			if m.APIs[i].Methods[j].Name == methodName {
				return &m.APIs[i].Methods[j], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: runtime api %s_%s", ErrNotFound, traitName, methodName)
}

// HasSignedExtension returns true if the extension identifier is
// part of the extrinsic signed extensions.
func (m *Metadata) HasSignedExtension(identifier string) bool {
	for _, ext := range m.Extrinsic.SignedExtensions {
		if ext.Identifier == identifier {
			return true
		}
	}
	return false
}
