// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"unicode/utf8"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const maxDecodeDepth = 128

// DecodeValue decodes a value of the given registry type into generic
// Go values:
//   - named composites become map[string]any, single unnamed field
//     composites become their field value and other composites []any
//   - variants become their name when fieldless, otherwise a
//     map[string]any with the variant name as only key
//   - byte sequences and arrays become 0x prefixed hex strings
//   - u128, u256, i128 and i256 become *big.Int
func (r *Registry) DecodeValue(id TypeID, reader scale.Reader) (any, error) {
	return r.decodeValue(id, reader, 0)
}

// DecodeValueBytes decodes a value of the given type from data,
// which must be fully consumed.
func (r *Registry) DecodeValueBytes(id TypeID, data []byte) (any, error) {
	reader := bytes.NewReader(data)
	value, err := r.decodeValue(id, reader, 0)
	if err != nil {
		return nil, err
	}
	if reader.Len() > 0 {
		return nil, fmt.Errorf("%w: %d bytes left decoding %s",
			scale.ErrTrailingBytes, reader.Len(), r.TypeName(id))
	}
	return value, nil
}

// Skip advances the reader past a value of the given type.
func (r *Registry) Skip(id TypeID, reader scale.Reader) error {
	_, err := r.decodeValue(id, reader, 0)
	return err
}

func (r *Registry) decodeValue(id TypeID, reader scale.Reader, depth int) (any, error) {
	if depth > maxDecodeDepth {
		return nil, fmt.Errorf("%w: decoding %d", ErrRecursionLimit, id)
	}

	t, err := r.Type(id)
	if err != nil {
		return nil, err
	}

	def := t.Definition
	switch def.Kind {
	case KindComposite:
		return r.decodeFields(def.Fields, reader, depth)
	case KindVariant:
		index, err := reader.ReadByte()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		variant, err := r.VariantByIndex(id, index)
		if err != nil {
			return nil, err
		}
		if len(variant.Fields) == 0 {
			return variant.Name, nil
		}
		fields, err := r.decodeFields(variant.Fields, reader, depth)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", variant.Name, err)
		}
		return map[string]any{variant.Name: fields}, nil
	case KindSequence:
		length, err := scale.DecodeCompactUint(reader)
		if err != nil {
			return nil, err
		}
		return r.decodeElems(def.Elem, length, reader, depth)
	case KindArray:
		return r.decodeElems(def.Elem, uint64(def.Len), reader, depth)
	case KindTuple:
		values := make([]any, len(def.Tuple))
		for i, elem := range def.Tuple {
			values[i], err = r.decodeValue(elem, reader, depth+1)
			if err != nil {
				return nil, err
			}
		}
		return values, nil
	case KindPrimitive:
		return decodePrimitive(def.Primitive, reader)
	case KindCompact:
		value, err := scale.DecodeCompact(reader)
		if err != nil {
			return nil, err
		}
		if value.IsUint64() {
			return value.Uint64(), nil
		}
		return value, nil
	case KindBitSequence:
		return r.decodeBitSequence(def, reader)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTypeDef, def.Kind)
	}
}

func (r *Registry) decodeFields(fields []Field, reader scale.Reader, depth int) (any, error) {
	if len(fields) == 1 && fields[0].Name == nil {
		return r.decodeValue(fields[0].Type, reader, depth+1)
	}

	named := len(fields) > 0 && fields[0].Name != nil
	if !named {
		values := make([]any, len(fields))
		for i, field := range fields {
			value, err := r.decodeValue(field.Type, reader, depth+1)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	}

	values := make(map[string]any, len(fields))
	for _, field := range fields {
		value, err := r.decodeValue(field.Type, reader, depth+1)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", *field.Name, err)
		}
		values[*field.Name] = value
	}
	return values, nil
}

func (r *Registry) decodeElems(elem TypeID, length uint64, reader scale.Reader, depth int) (any, error) {
	if r.isU8(elem) {
		data := make([]byte, length)
		_, err := io.ReadFull(reader, data)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		return common.BytesToHex(data), nil
	}

	const maxPreallocation = 1024
	values := make([]any, 0, min(length, maxPreallocation))
	for i := uint64(0); i < length; i++ {
		value, err := r.decodeValue(elem, reader, depth+1)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		values = append(values, value)
	}
	return values, nil
}

func (r *Registry) isU8(id TypeID) bool {
	t, ok := r.types[id]
	return ok && t.Definition.Kind == KindPrimitive && t.Definition.Primitive == PrimitiveU8
}

// decodeBitSequence decodes the bit count and returns the raw store
// bytes as hex.
func (r *Registry) decodeBitSequence(def TypeDef, reader scale.Reader) (any, error) {
	bits, err := scale.DecodeCompactUint(reader)
	if err != nil {
		return nil, err
	}

	storeWidth := uint64(1)
	store, err := r.Type(def.BitStore)
	if err == nil && store.Definition.Kind == KindPrimitive {
		switch store.Definition.Primitive {
		case PrimitiveU16:
			storeWidth = 2
		case PrimitiveU32:
			storeWidth = 4
		case PrimitiveU64:
			storeWidth = 8
		}
	}

	storeBits := storeWidth * 8
	words := (bits + storeBits - 1) / storeBits
	data := make([]byte, words*storeWidth)
	_, err = io.ReadFull(reader, data)
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	return common.BytesToHex(data), nil
}

var primitiveWidths = map[Primitive]int{
	PrimitiveBool: 1, PrimitiveChar: 4,
	PrimitiveU8: 1, PrimitiveU16: 2, PrimitiveU32: 4, PrimitiveU64: 8, PrimitiveU128: 16, PrimitiveU256: 32,
	PrimitiveI8: 1, PrimitiveI16: 2, PrimitiveI32: 4, PrimitiveI64: 8, PrimitiveI128: 16, PrimitiveI256: 32,
}

func decodePrimitive(primitive Primitive, reader scale.Reader) (any, error) {
	if primitive == PrimitiveStr {
		length, err := scale.DecodeCompactUint(reader)
		if err != nil {
			return nil, err
		}
		data := make([]byte, length)
		_, err = io.ReadFull(reader, data)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		return string(data), nil
	}

	width, ok := primitiveWidths[primitive]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPrimitive, primitive)
	}

	data := make([]byte, width)
	_, err := io.ReadFull(reader, data)
	if err != nil {
		return nil, unexpectedEOF(err)
	}

	switch primitive {
	case PrimitiveBool:
		switch data[0] {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, fmt.Errorf("%w: %d", scale.ErrInvalidBool, data[0])
	case PrimitiveChar:
		r := rune(binary.LittleEndian.Uint32(data))
		if !utf8.ValidRune(r) {
			return nil, fmt.Errorf("invalid char 0x%x", uint32(r))
		}
		return string(r), nil
	case PrimitiveU8:
		return data[0], nil
	case PrimitiveU16:
		return binary.LittleEndian.Uint16(data), nil
	case PrimitiveU32:
		return binary.LittleEndian.Uint32(data), nil
	case PrimitiveU64:
		return binary.LittleEndian.Uint64(data), nil
	case PrimitiveI8:
		return int8(data[0]), nil
	case PrimitiveI16:
		return int16(binary.LittleEndian.Uint16(data)), nil
	case PrimitiveI32:
		return int32(binary.LittleEndian.Uint32(data)), nil
	case PrimitiveI64:
		return int64(binary.LittleEndian.Uint64(data)), nil
	}

	// wide integers are little endian, big.Int wants big endian
	reversed := make([]byte, width)
	for i := range data {
		reversed[width-1-i] = data[i]
	}
	value := new(big.Int).SetBytes(reversed)
	if (primitive == PrimitiveI128 || primitive == PrimitiveI256) && data[width-1]&0x80 != 0 {
		value.Sub(value, new(big.Int).Lsh(big.NewInt(1), uint(width*8)))
	}
	return value, nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
