// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metadata

import (
	"fmt"

	"github.com/ChainSafe/argon-client/pkg/scale"
)

// TypeID is the index of a type in the portable registry.
// It is encoded as a compact u32.
type TypeID uint32

// MarshalSCALE encodes the id as a compact integer.
func (id TypeID) MarshalSCALE() ([]byte, error) {
	return scale.EncodeCompactUint(uint64(id)), nil
}

// UnmarshalSCALE decodes a compact encoded id.
func (id *TypeID) UnmarshalSCALE(r scale.Reader) error {
	value, err := scale.DecodeCompactUint(r)
	if err != nil {
		return err
	}
	if value > uint64(^uint32(0)) {
		return fmt.Errorf("%w: type id %d", scale.ErrDecodeOverflow, value)
	}
	*id = TypeID(value)
	return nil
}

// PortableType is a registry entry.
type PortableType struct {
	ID   TypeID
	Type Type
}

// Type describes one type of the runtime.
type Type struct {
	Path       []string
	Params     []TypeParameter
	Definition TypeDef
	Docs       []string
}

// TypeParameter is a generic parameter of a type. Type is nil when
// the parameter is not used by the type layout.
type TypeParameter struct {
	Name string
	Type *TypeID
}

// Field is a field of a composite type or of a variant.
type Field struct {
	Name     *string
	Type     TypeID
	TypeName *string
	Docs     []string
}

// Variant is one variant of an enum type.
type Variant struct {
	Name   string
	Fields []Field
	Index  uint8
	Docs   []string
}

// TypeDefKind is the kind of a type definition.
type TypeDefKind uint8

const (
	KindComposite TypeDefKind = iota
	KindVariant
	KindSequence
	KindArray
	KindTuple
	KindPrimitive
	KindCompact
	KindBitSequence
)

// Primitive is a primitive type.
type Primitive uint8

const (
	PrimitiveBool Primitive = iota
	PrimitiveChar
	PrimitiveStr
	PrimitiveU8
	PrimitiveU16
	PrimitiveU32
	PrimitiveU64
	PrimitiveU128
	PrimitiveU256
	PrimitiveI8
	PrimitiveI16
	PrimitiveI32
	PrimitiveI64
	PrimitiveI128
	PrimitiveI256
)

var primitiveNames = [...]string{
	"bool", "char", "str",
	"u8", "u16", "u32", "u64", "u128", "u256",
	"i8", "i16", "i32", "i64", "i128", "i256",
}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("primitive(%d)", uint8(p))
}

// TypeDef is the definition of a type. Only the fields matching
// Kind are meaningful.
type TypeDef struct {
	Kind TypeDefKind

	// Composite fields, or the variants of an enum.
	Fields   []Field
	Variants []Variant

	// Element type of sequences, arrays and compacts.
	Elem TypeID
	// Length of arrays.
	Len uint32

	Tuple     []TypeID
	Primitive Primitive

	BitStore TypeID
	BitOrder TypeID
}

type compositeDef struct{ Fields []Field }

type variantDef struct{ Variants []Variant }

type arrayDef struct {
	Len  uint32
	Elem TypeID
}

type bitSequenceDef struct {
	Store TypeID
	Order TypeID
}

// MarshalSCALE encodes the type definition enum.
func (d TypeDef) MarshalSCALE() ([]byte, error) {
	var value any
	switch d.Kind {
	case KindComposite:
		value = compositeDef{Fields: d.Fields}
	case KindVariant:
		value = variantDef{Variants: d.Variants}
	case KindSequence, KindCompact:
		value = d.Elem
	case KindArray:
		value = arrayDef{Len: d.Len, Elem: d.Elem}
	case KindTuple:
		value = d.Tuple
	case KindPrimitive:
		value = uint8(d.Primitive)
	case KindBitSequence:
		value = bitSequenceDef{Store: d.BitStore, Order: d.BitOrder}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTypeDef, d.Kind)
	}

	encoded, err := scale.Marshal(value)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(d.Kind)}, encoded...), nil
}

// UnmarshalSCALE decodes the type definition enum.
func (d *TypeDef) UnmarshalSCALE(r scale.Reader) (err error) {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}

	decoder := scale.NewDecoder(r)
	*d = TypeDef{Kind: TypeDefKind(kind)}
	switch d.Kind {
	case KindComposite:
		var def compositeDef
		err = decoder.Decode(&def)
		d.Fields = def.Fields
	case KindVariant:
		var def variantDef
		err = decoder.Decode(&def)
		d.Variants = def.Variants
	case KindSequence, KindCompact:
		err = decoder.Decode(&d.Elem)
	case KindArray:
		var def arrayDef
		err = decoder.Decode(&def)
		d.Len, d.Elem = def.Len, def.Elem
	case KindTuple:
		err = decoder.Decode(&d.Tuple)
	case KindPrimitive:
		var primitive uint8
		err = decoder.Decode(&primitive)
		d.Primitive = Primitive(primitive)
		if err == nil && int(primitive) >= len(primitiveNames) {
			err = fmt.Errorf("%w: %d", ErrUnknownPrimitive, primitive)
		}
	case KindBitSequence:
		var def bitSequenceDef
		err = decoder.Decode(&def)
		d.BitStore, d.BitOrder = def.Store, def.Order
	default:
		return fmt.Errorf("%w: %d", ErrUnknownTypeDef, kind)
	}
	return err
}

// Registry is the portable type registry of the runtime.
type Registry struct {
	portable []PortableType
	types    map[TypeID]*Type
	ids      []TypeID
}

// NewRegistry indexes the portable types by id.
func NewRegistry(types []PortableType) *Registry {
	registry := &Registry{
		portable: types,
		types:    make(map[TypeID]*Type, len(types)),
		ids:      make([]TypeID, 0, len(types)),
	}
	for i := range types {
		registry.types[types[i].ID] = &types[i].Type
		registry.ids = append(registry.ids, types[i].ID)
	}
	return registry
}

// Len returns the number of types in the registry.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Types returns the registry entries in their original order.
func (r *Registry) Types() []PortableType {
	return r.portable
}

// Type returns the type with the given id.
func (r *Registry) Type(id TypeID) (*Type, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTypeNotFound, id)
	}
	return t, nil
}

// FindByPath returns the id of the first type with the given path,
// for example `sp_runtime::DispatchError`.
func (r *Registry) FindByPath(path ...string) (TypeID, bool) {
	for _, id := range r.ids {
		t := r.types[id]
		if equalPath(t.Path, path) {
			return id, true
		}
	}
	return 0, false
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// VariantByIndex returns the variant with the given index of an enum type.
func (r *Registry) VariantByIndex(id TypeID, index uint8) (*Variant, error) {
	t, err := r.Type(id)
	if err != nil {
		return nil, err
	}
	if t.Definition.Kind != KindVariant {
		return nil, fmt.Errorf("type %d is not a variant type", id)
	}
	for i := range t.Definition.Variants {
		if t.Definition.Variants[i].Index == index {
			return &t.Definition.Variants[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d in type %d", ErrUnknownVariant, index, id)
}

// VariantByName returns the variant with the given name of an enum type.
func (r *Registry) VariantByName(id TypeID, name string) (*Variant, error) {
	t, err := r.Type(id)
	if err != nil {
		return nil, err
	}
	if t.Definition.Kind != KindVariant {
		return nil, fmt.Errorf("type %d is not a variant type", id)
	}
	for i := range t.Definition.Variants {
		if t.Definition.Variants[i].Name == name {
			return &t.Definition.Variants[i], nil
		}
	}
	return nil, fmt.Errorf("%w: variant %s in type %d", ErrNotFound, name, id)
}
