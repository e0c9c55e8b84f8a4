// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package metadatatest builds runtime metadata for tests.
package metadatatest

import (
	"strconv"
	"strings"

	"github.com/ChainSafe/argon-client/lib/metadata"
)

// Builder assembles a type registry and pallets.
type Builder struct {
	types   []metadata.PortableType
	named   map[string]metadata.TypeID
	pallets []metadata.Pallet
	apis    []metadata.RuntimeAPI
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{named: make(map[string]metadata.TypeID)}
}

// Add registers the type and returns its id.
func (b *Builder) Add(t metadata.Type) metadata.TypeID {
	id := metadata.TypeID(len(b.types))
	b.types = append(b.types, metadata.PortableType{ID: id, Type: t})
	return id
}

func (b *Builder) memo(key string, create func() metadata.Type) metadata.TypeID {
	if id, ok := b.named[key]; ok {
		return id
	}
	id := b.Add(create())
	b.named[key] = id
	return id
}

// Primitive returns the id of the primitive type.
func (b *Builder) Primitive(p metadata.Primitive) metadata.TypeID {
	return b.memo("primitive:"+p.String(), func() metadata.Type {
		return metadata.Type{Definition: metadata.TypeDef{Kind: metadata.KindPrimitive, Primitive: p}}
	})
}

// Compact returns the id of Compact<elem>.
func (b *Builder) Compact(elem metadata.TypeID) metadata.TypeID {
	return b.memo("compact:"+itoa(elem), func() metadata.Type {
		return metadata.Type{Definition: metadata.TypeDef{Kind: metadata.KindCompact, Elem: elem}}
	})
}

// Sequence returns the id of Vec<elem>.
func (b *Builder) Sequence(elem metadata.TypeID) metadata.TypeID {
	return b.memo("sequence:"+itoa(elem), func() metadata.Type {
		return metadata.Type{Definition: metadata.TypeDef{Kind: metadata.KindSequence, Elem: elem}}
	})
}

// Array returns the id of [elem;length].
func (b *Builder) Array(elem metadata.TypeID, length uint32) metadata.TypeID {
	return b.memo("array:"+itoa(elem)+";"+itoa(metadata.TypeID(length)), func() metadata.Type {
		return metadata.Type{Definition: metadata.TypeDef{Kind: metadata.KindArray, Elem: elem, Len: length}}
	})
}

// Tuple returns the id of the tuple of the elements.
func (b *Builder) Tuple(elems ...metadata.TypeID) metadata.TypeID {
	keys := make([]string, len(elems))
	for i, elem := range elems {
		keys[i] = itoa(elem)
	}
	return b.memo("tuple:"+strings.Join(keys, ","), func() metadata.Type {
		return metadata.Type{Definition: metadata.TypeDef{Kind: metadata.KindTuple, Tuple: elems}}
	})
}

// Composite registers a struct type. The path is a Rust path such
// as `sp_core::crypto::AccountId32`.
func (b *Builder) Composite(path string, params []metadata.TypeParameter, fields ...metadata.Field) metadata.TypeID {
	return b.Add(metadata.Type{
		Path:       splitPath(path),
		Params:     params,
		Definition: metadata.TypeDef{Kind: metadata.KindComposite, Fields: fields},
	})
}

// Variant registers an enum type.
func (b *Builder) Variant(path string, params []metadata.TypeParameter, variants ...metadata.Variant) metadata.TypeID {
	return b.Add(metadata.Type{
		Path:       splitPath(path),
		Params:     params,
		Definition: metadata.TypeDef{Kind: metadata.KindVariant, Variants: variants},
	})
}

// SetVariants replaces the variants of an enum type, for enums
// referencing themselves or types registered after them.
func (b *Builder) SetVariants(id metadata.TypeID, variants ...metadata.Variant) {
	b.types[id].Type.Definition.Variants = variants
}

// Pallet adds a pallet.
func (b *Builder) Pallet(pallet metadata.Pallet) {
	b.pallets = append(b.pallets, pallet)
}

// API adds a runtime API.
func (b *Builder) API(api metadata.RuntimeAPI) {
	b.apis = append(b.apis, api)
}

// Build returns the metadata of the given version. Runtime APIs are
// dropped for version 14.
func (b *Builder) Build(version uint8, extrinsic metadata.Extrinsic, outer *metadata.OuterEnums) *metadata.Metadata {
	types := make([]metadata.PortableType, len(b.types))
	copy(types, b.types)

	md := &metadata.Metadata{
		Version:   version,
		Types:     metadata.NewRegistry(types),
		Pallets:   append([]metadata.Pallet(nil), b.pallets...),
		Extrinsic: extrinsic,
	}
	if version >= metadata.V15 {
		md.APIs = append([]metadata.RuntimeAPI(nil), b.apis...)
		md.OuterEnums = outer
	}
	return md
}

// Named returns a named field.
func Named(name string, ty metadata.TypeID) metadata.Field {
	return metadata.Field{Name: &name, Type: ty}
}

// Unnamed returns an unnamed field.
func Unnamed(ty metadata.TypeID) metadata.Field {
	return metadata.Field{Type: ty}
}

// Param returns a type parameter bound to a type.
func Param(name string, ty metadata.TypeID) metadata.TypeParameter {
	return metadata.TypeParameter{Name: name, Type: &ty}
}

// V returns an enum variant.
func V(index uint8, name string, fields ...metadata.Field) metadata.Variant {
	return metadata.Variant{Name: name, Index: index, Fields: fields}
}

// ID returns a pointer to the type id, for optional pallet fields.
func ID(id metadata.TypeID) *metadata.TypeID {
	return &id
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "::")
}

func itoa(id metadata.TypeID) string {
	return strconv.FormatUint(uint64(id), 10)
}
