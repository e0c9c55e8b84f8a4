// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metadata

import (
	"encoding/binary"
	"fmt"

	"github.com/ChainSafe/argon-client/pkg/scale"
)

// Magic is the "meta" prefix of encoded runtime metadata.
const Magic uint32 = 0x6174656d

const (
	V14 uint8 = 14
	V15 uint8 = 15
)

type palletV14 struct {
	Name      string
	Storage   *PalletStorage
	Calls     *TypeID
	Event     *TypeID
	Constants []Constant
	Error     *TypeID
	Index     uint8
}

type palletV15 struct {
	Name      string
	Storage   *PalletStorage
	Calls     *TypeID
	Event     *TypeID
	Constants []Constant
	Error     *TypeID
	Index     uint8
	Docs      []string
}

type extrinsicV14 struct {
	Type             TypeID
	Version          uint8
	SignedExtensions []SignedExtension
}

type extrinsicV15 struct {
	Version          uint8
	AddressType      TypeID
	CallType         TypeID
	SignatureType    TypeID
	ExtraType        TypeID
	SignedExtensions []SignedExtension
}

type metadataV14 struct {
	Types       []PortableType
	Pallets     []palletV14
	Extrinsic   extrinsicV14
	RuntimeType TypeID
}

type metadataV15 struct {
	Types       []PortableType
	Pallets     []palletV15
	Extrinsic   extrinsicV15
	RuntimeType TypeID
	APIs        []RuntimeAPI
	OuterEnums  OuterEnums
	Custom      []CustomValue
}

// Decode decodes prefixed runtime metadata of version 14 or 15.
func Decode(raw []byte) (*Metadata, error) {
	const headerLength = 5
	if len(raw) < headerLength {
		return nil, fmt.Errorf("%w: metadata is only %d bytes", ErrInvalidMagic, len(raw))
	}

	magic := binary.LittleEndian.Uint32(raw[:4])
	if magic != Magic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, magic)
	}

	version := raw[4]
	body := raw[headerLength:]
	switch version {
	case V14:
		var v14 metadataV14
		err := scale.Unmarshal(body, &v14)
		if err != nil {
			return nil, fmt.Errorf("decoding metadata v14: %w", err)
		}
		return fromV14(v14), nil
	case V15:
		var v15 metadataV15
		err := scale.Unmarshal(body, &v15)
		if err != nil {
			return nil, fmt.Errorf("decoding metadata v15: %w", err)
		}
		return fromV15(v15), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
}

// Encode encodes the metadata with its magic prefix, in the
// format of its version.
func Encode(m *Metadata) ([]byte, error) {
	var body any
	switch m.Version {
	case V14:
		body = toV14(m)
	case V15:
		body = toV15(m)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, m.Version)
	}

	encoded, err := scale.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata v%d: %w", m.Version, err)
	}

	out := make([]byte, 5, 5+len(encoded))
	binary.LittleEndian.PutUint32(out, Magic)
	out[4] = m.Version
	return append(out, encoded...), nil
}

func fromV14(v14 metadataV14) *Metadata {
	pallets := make([]Pallet, len(v14.Pallets))
	for i, p := range v14.Pallets {
		pallets[i] = Pallet{
			Name:      p.Name,
			Index:     p.Index,
			Storage:   p.Storage,
			Calls:     p.Calls,
			Event:     p.Event,
			Constants: p.Constants,
			Error:     p.Error,
		}
	}

	return &Metadata{
		Version: V14,
		Types:   NewRegistry(v14.Types),
		Pallets: pallets,
		Extrinsic: Extrinsic{
			Version:          v14.Extrinsic.Version,
			Type:             v14.Extrinsic.Type,
			SignedExtensions: v14.Extrinsic.SignedExtensions,
		},
		RuntimeType: v14.RuntimeType,
	}
}

func fromV15(v15 metadataV15) *Metadata {
	pallets := make([]Pallet, len(v15.Pallets))
	for i, p := range v15.Pallets {
		pallets[i] = Pallet{
			Name:      p.Name,
			Index:     p.Index,
			Storage:   p.Storage,
			Calls:     p.Calls,
			Event:     p.Event,
			Constants: p.Constants,
			Error:     p.Error,
			Docs:      p.Docs,
		}
	}

	outerEnums := v15.OuterEnums
	return &Metadata{
		Version: V15,
		Types:   NewRegistry(v15.Types),
		Pallets: pallets,
		Extrinsic: Extrinsic{
			Version:          v15.Extrinsic.Version,
			AddressType:      v15.Extrinsic.AddressType,
			CallType:         v15.Extrinsic.CallType,
			SignatureType:    v15.Extrinsic.SignatureType,
			ExtraType:        v15.Extrinsic.ExtraType,
			SignedExtensions: v15.Extrinsic.SignedExtensions,
		},
		RuntimeType: v15.RuntimeType,
		APIs:        v15.APIs,
		OuterEnums:  &outerEnums,
		Custom:      v15.Custom,
	}
}

func toV14(m *Metadata) metadataV14 {
	pallets := make([]palletV14, len(m.Pallets))
	for i, p := range m.Pallets {
		pallets[i] = palletV14{
			Name:      p.Name,
			Storage:   p.Storage,
			Calls:     p.Calls,
			Event:     p.Event,
			Constants: p.Constants,
			Error:     p.Error,
			Index:     p.Index,
		}
	}
	return metadataV14{
		Types:   m.Types.Types(),
		Pallets: pallets,
		Extrinsic: extrinsicV14{
			Type:             m.Extrinsic.Type,
			Version:          m.Extrinsic.Version,
			SignedExtensions: m.Extrinsic.SignedExtensions,
		},
		RuntimeType: m.RuntimeType,
	}
}

func toV15(m *Metadata) metadataV15 {
	pallets := make([]palletV15, len(m.Pallets))
	for i, p := range m.Pallets {
		pallets[i] = palletV15{
			Name:      p.Name,
			Storage:   p.Storage,
			Calls:     p.Calls,
			Event:     p.Event,
			Constants: p.Constants,
			Error:     p.Error,
			Index:     p.Index,
			Docs:      p.Docs,
		}
	}

	var outerEnums OuterEnums
	if m.OuterEnums != nil {
		outerEnums = *m.OuterEnums
	}

	return metadataV15{
		Types:   m.Types.Types(),
		Pallets: pallets,
		Extrinsic: extrinsicV15{
			Version:          m.Extrinsic.Version,
			AddressType:      m.Extrinsic.AddressType,
			CallType:         m.Extrinsic.CallType,
			SignatureType:    m.Extrinsic.SignatureType,
			ExtraType:        m.Extrinsic.ExtraType,
			SignedExtensions: m.Extrinsic.SignedExtensions,
		},
		RuntimeType: m.RuntimeType,
		APIs:        m.APIs,
		OuterEnums:  outerEnums,
		Custom:      m.Custom,
	}
}
