// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ChainSafe/argon-client/lib/common"
)

// maxNameDepth bounds the recursion of TypeName for self
// referencing types.
const maxNameDepth = 32

// TypeName renders the canonical name of a type:
// primitives by their name, Compact<T>, Vec<T>, [T;N], (A,B),
// BitVec, path types by their last path segment followed by their
// concrete type parameters, and anonymous composites as {a:T,b:U}.
func (r *Registry) TypeName(id TypeID) string {
	return r.typeName(id, 0)
}

func (r *Registry) typeName(id TypeID, depth int) string {
	if depth > maxNameDepth {
		return "..."
	}

	t, ok := r.types[id]
	if !ok {
		return "?" + strconv.FormatUint(uint64(id), 10)
	}

	def := t.Definition
	switch def.Kind {
	case KindPrimitive:
		return def.Primitive.String()
	case KindCompact:
		return "Compact<" + r.typeName(def.Elem, depth+1) + ">"
	case KindSequence:
		return "Vec<" + r.typeName(def.Elem, depth+1) + ">"
	case KindArray:
		return "[" + r.typeName(def.Elem, depth+1) + ";" + strconv.FormatUint(uint64(def.Len), 10) + "]"
	case KindTuple:
		names := make([]string, len(def.Tuple))
		for i, elem := range def.Tuple {
			names[i] = r.typeName(elem, depth+1)
		}
		return "(" + strings.Join(names, ",") + ")"
	case KindBitSequence:
		return "BitVec"
	}

	if len(t.Path) > 0 {
		name := t.Path[len(t.Path)-1]
		var params []string
		for _, param := range t.Params {
			if param.Type == nil {
				continue
			}
			params = append(params, r.typeName(*param.Type, depth+1))
		}
		if len(params) > 0 {
			name += "<" + strings.Join(params, ",") + ">"
		}
		return name
	}

	if def.Kind == KindVariant {
		names := make([]string, len(def.Variants))
		for i, variant := range def.Variants {
			names[i] = variant.Name + r.fieldList(variant.Fields, depth+1, "(", ")")
		}
		return "enum{" + strings.Join(names, "|") + "}"
	}

	return r.fieldList(def.Fields, depth+1, "{", "}")
}

// fieldList renders fields as open name:T,... close. Unnamed fields
// render as their type only. An empty list renders as nothing for
// variants and as {} for composites.
func (r *Registry) fieldList(fields []Field, depth int, open, close string) string {
	if len(fields) == 0 {
		if open == "(" {
			return ""
		}
		return open + close
	}

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = r.fieldString(field, depth)
	}
	return open + strings.Join(parts, ",") + close
}

func (r *Registry) fieldString(field Field, depth int) string {
	typeName := r.typeName(field.Type, depth)
	if field.Name == nil || *field.Name == "" {
		return typeName
	}
	return *field.Name + ":" + typeName
}

func (r *Registry) fieldsSignature(fields []Field) string {
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = r.fieldString(field, 0)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// SignatureHash returns the fingerprint of a signature string.
func SignatureHash(signature string) common.Hash {
	return common.MustBlake2bHash([]byte(signature))
}

// CallSignature renders `name(field:T,...)` for the call.
func (m *Metadata) CallSignature(palletName, callName string) (string, error) {
	_, variant, err := m.Call(palletName, callName)
	if err != nil {
		return "", err
	}
	return variant.Name + m.Types.fieldsSignature(variant.Fields), nil
}

// EventSignature renders `Name(field:T,...)` for the event.
func (m *Metadata) EventSignature(palletName, eventName string) (string, error) {
	_, variant, err := m.Event(palletName, eventName)
	if err != nil {
		return "", err
	}
	return variant.Name + m.Types.fieldsSignature(variant.Fields), nil
}

// StorageSignature renders `Entry[Hasher(K),...]->V` for the storage
// entry. Plain entries render as `Entry[]->V`.
func (m *Metadata) StorageSignature(palletName, entryName string) (string, error) {
	_, entry, err := m.StorageEntry(palletName, entryName)
	if err != nil {
		return "", err
	}

	keys, err := m.storageKeyTypes(entry)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = entry.Type.Hashers[i].String() + "(" + m.Types.TypeName(key) + ")"
	}
	return entry.Name + "[" + strings.Join(parts, ",") + "]->" + m.Types.TypeName(entry.Type.Value), nil
}

// StorageKeyTypes returns the key types of a storage entry, one per hasher.
func (m *Metadata) StorageKeyTypes(palletName, entryName string) ([]TypeID, []StorageHasher, error) {
	_, entry, err := m.StorageEntry(palletName, entryName)
	if err != nil {
		return nil, nil, err
	}
	keys, err := m.storageKeyTypes(entry)
	if err != nil {
		return nil, nil, err
	}
	return keys, entry.Type.Hashers, nil
}

// storageKeyTypes splits the key type of a map into one type per
// hasher. Maps with several hashers have a tuple key type.
func (m *Metadata) storageKeyTypes(entry *StorageEntry) ([]TypeID, error) {
	switch {
	case entry.Type.Plain:
		return nil, nil
	case len(entry.Type.Hashers) == 1:
		return []TypeID{entry.Type.Key}, nil
	}

	keyType, err := m.Types.Type(entry.Type.Key)
	if err != nil {
		return nil, err
	}
	if keyType.Definition.Kind != KindTuple || len(keyType.Definition.Tuple) != len(entry.Type.Hashers) {
		return nil, fmt.Errorf("storage %s has %d hashers but key type %s",
			entry.Name, len(entry.Type.Hashers), m.Types.TypeName(entry.Type.Key))
	}
	return keyType.Definition.Tuple, nil
}

// ConstantSignature renders `Name:T` for the constant.
func (m *Metadata) ConstantSignature(palletName, constantName string) (string, error) {
	constant, err := m.Constant(palletName, constantName)
	if err != nil {
		return "", err
	}
	return constant.Name + ":" + m.Types.TypeName(constant.Type), nil
}

// RuntimeAPISignature renders `Trait_method(arg:T,...)->Out` for the
// runtime API method.
func (m *Metadata) RuntimeAPISignature(traitName, methodName string) (string, error) {
	method, err := m.RuntimeAPIMethod(traitName, methodName)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(method.Inputs))
	for i, input := range method.Inputs {
		parts[i] = input.Name + ":" + m.Types.TypeName(input.Type)
	}
	return traitName + "_" + method.Name + "(" + strings.Join(parts, ",") + ")->" +
		m.Types.TypeName(method.Output), nil
}

// CallHash returns the signature hash of the call.
func (m *Metadata) CallHash(palletName, callName string) (common.Hash, error) {
	return hashOf(m.CallSignature(palletName, callName))
}

// EventHash returns the signature hash of the event.
func (m *Metadata) EventHash(palletName, eventName string) (common.Hash, error) {
	return hashOf(m.EventSignature(palletName, eventName))
}

// StorageHash returns the signature hash of the storage entry.
func (m *Metadata) StorageHash(palletName, entryName string) (common.Hash, error) {
	return hashOf(m.StorageSignature(palletName, entryName))
}

// ConstantHash returns the signature hash of the constant.
func (m *Metadata) ConstantHash(palletName, constantName string) (common.Hash, error) {
	return hashOf(m.ConstantSignature(palletName, constantName))
}

// RuntimeAPIHash returns the signature hash of the runtime API method.
func (m *Metadata) RuntimeAPIHash(traitName, methodName string) (common.Hash, error) {
	return hashOf(m.RuntimeAPISignature(traitName, methodName))
}

func hashOf(signature string, err error) (common.Hash, error) {
	if err != nil {
		return common.EmptyHash, err
	}
	return SignatureHash(signature), nil
}
