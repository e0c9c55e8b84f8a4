// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

// Marshal returns the SCALE encoding of v.
func Marshal(v any) (b []byte, err error) {
	es := encodeState{
		fieldScaleIndicesCache: cache,
	}
	err = es.marshal(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return es.Bytes(), nil
}

// MustMarshal panics if Marshal returns an error.
func MustMarshal(v any) []byte {
	b, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// Encoder writes SCALE encoded values to an output stream.
type Encoder struct {
	writer io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

// Encode writes the SCALE encoding of v to the stream.
func (e *Encoder) Encode(v any) error {
	b, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = e.writer.Write(b)
	return err
}

type encodeState struct {
	bytes.Buffer
	*fieldScaleIndicesCache
}

func (es *encodeState) marshal(v reflect.Value) (err error) {
	if !v.IsValid() {
		return fmt.Errorf("%w: invalid value", ErrUnsupportedType)
	}

	t := v.Type()
	if t.Kind() != reflect.Ptr && t.Kind() != reflect.Interface {
		switch {
		case t.Implements(marshalerType):
			return es.encodeMarshaler(v.Interface().(Marshaler))
		case reflect.PtrTo(t).Implements(marshalerType):
			ptr := reflect.New(t)
			ptr.Elem().Set(v)
			return es.encodeMarshaler(ptr.Interface().(Marshaler))
		case reflect.PtrTo(t).Implements(varyingDataTypeType):
			ptr := reflect.New(t)
			ptr.Elem().Set(v)
			return es.encodeVaryingDataType(ptr.Interface().(VaryingDataType))
		}
	}

	switch t {
	case bigIntPtrType:
		return es.encodeBigInt(v.Interface().(*big.Int))
	case uint128Type:
		_, err = es.Write(v.Interface().(Uint128).Bytes())
		return err
	case uint256Type:
		_, err = es.Write(v.Interface().(Uint256).Bytes())
		return err
	}

	switch t.Kind() {
	case reflect.Bool:
		return es.encodeBool(v.Bool())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return es.encodeFixedWidthInt(v)
	case reflect.Int:
		if v.Int() < 0 {
			return fmt.Errorf("%w: %d", ErrNegativeCompact, v.Int())
		}
		es.encodeUint(uint64(v.Int()))
		return nil
	case reflect.Uint:
		es.encodeUint(v.Uint())
		return nil
	case reflect.String:
		return es.encodeBytes([]byte(v.String()))
	case reflect.Ptr:
		// Pointers capture Option<T>: nil is None, anything else is Some.
		if v.IsNil() {
			return es.WriteByte(0)
		}
		err = es.WriteByte(1)
		if err != nil {
			return err
		}
		return es.marshal(v.Elem())
	case reflect.Interface:
		if v.IsNil() {
			return fmt.Errorf("%w: nil interface", ErrUnsupportedType)
		}
		return es.marshal(v.Elem())
	case reflect.Struct:
		return es.encodeStruct(v)
	case reflect.Array:
		return es.encodeArray(v)
	case reflect.Slice:
		return es.encodeSlice(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

func (es *encodeState) encodeMarshaler(m Marshaler) error {
	b, err := m.MarshalSCALE()
	if err != nil {
		return err
	}
	_, err = es.Write(b)
	return err
}

func (es *encodeState) encodeVaryingDataType(vdt VaryingDataType) error {
	index, value, err := vdt.IndexValue()
	if err != nil {
		return err
	}
	if index > 255 {
		return fmt.Errorf("%w: index %d does not fit in a byte",
			ErrUnknownVaryingDataTypeIndex, index)
	}

	err = es.WriteByte(byte(index))
	if err != nil {
		return err
	}
	return es.marshal(reflect.ValueOf(value))
}

// encodeSlice writes the compact encoded length of the slice
// followed by each element.
func (es *encodeState) encodeSlice(v reflect.Value) error {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		return es.encodeBytes(v.Bytes())
	}

	es.encodeUint(uint64(v.Len()))
	for i := 0; i < v.Len(); i++ {
		err := es.marshal(v.Index(i))
		if err != nil {
			return err
		}
	}
	return nil
}

// encodeArray writes each element of the array without a length prefix.
func (es *encodeState) encodeArray(v reflect.Value) error {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, v.Len())
		for i := range b {
			b[i] = byte(v.Index(i).Uint())
		}
		_, err := es.Write(b)
		return err
	}

	for i := 0; i < v.Len(); i++ {
		err := es.marshal(v.Index(i))
		if err != nil {
			return err
		}
	}
	return nil
}

// encodeBigInt performs the same encoding as encodeUint, except on a big.Int.
// if 2^30 <= n < 2^536 write [lower 2 bits of first byte = 11] [upper 6 bits of first byte = # of bytes following less 4]
// [append i as a byte array to the first byte]
func (es *encodeState) encodeBigInt(i *big.Int) error {
	switch {
	case i == nil:
		return fmt.Errorf("%w: nil *big.Int", ErrUnsupportedType)
	case i.Sign() < 0:
		return fmt.Errorf("%w: %s", ErrNegativeCompact, i)
	case i.IsUint64():
		es.encodeUint(i.Uint64())
		return nil
	}

	numBytes := len(i.Bytes())
	if numBytes > 67 {
		return fmt.Errorf("%w: %d bytes do not fit in a compact", ErrDecodeOverflow, numBytes)
	}
	topSixBits := uint8(numBytes - 4)
	lengthByte := topSixBits<<2 + 3

	err := es.WriteByte(lengthByte)
	if err != nil {
		return err
	}
	_, err = es.Write(reverseBytes(i.Bytes()))
	return err
}

// encodeBool performs the following:
// l = true -> write [1]
// l = false -> write [0]
func (es *encodeState) encodeBool(l bool) error {
	if l {
		return es.WriteByte(1)
	}
	return es.WriteByte(0)
}

// encodeBytes performs the following:
// b -> [encodeUint(len(b)) b]
func (es *encodeState) encodeBytes(b []byte) error {
	es.encodeUint(uint64(len(b)))
	_, err := es.Write(b)
	return err
}

// encodeFixedWidthInt writes the integer in little endian byte format.
func (es *encodeState) encodeFixedWidthInt(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Int8:
		return es.WriteByte(byte(v.Int()))
	case reflect.Uint8:
		return es.WriteByte(byte(v.Uint()))
	case reflect.Int16:
		return binary.Write(es, binary.LittleEndian, int16(v.Int()))
	case reflect.Uint16:
		return binary.Write(es, binary.LittleEndian, uint16(v.Uint()))
	case reflect.Int32:
		return binary.Write(es, binary.LittleEndian, int32(v.Int()))
	case reflect.Uint32:
		return binary.Write(es, binary.LittleEndian, uint32(v.Uint()))
	case reflect.Int64:
		return binary.Write(es, binary.LittleEndian, v.Int())
	case reflect.Uint64:
		return binary.Write(es, binary.LittleEndian, v.Uint())
	default:
		return fmt.Errorf("%w: fixed width integer %s", ErrUnsupportedType, v.Type())
	}
}

// encodeStruct writes each exported field in scale order.
func (es *encodeState) encodeStruct(v reflect.Value) error {
	indices, err := es.fieldScaleIndices(v.Type())
	if err != nil {
		return err
	}

	for _, i := range indices {
		err = es.marshal(v.Field(i.fieldIndex))
		if err != nil {
			return fmt.Errorf("encoding field %s.%s: %w",
				v.Type().Name(), v.Type().Field(i.fieldIndex).Name, err)
		}
	}
	return nil
}

// encodeUint performs the following on integer i:
// if i < 2^6 write [00 i^2...i^8 ] [ 8 bits = 1 byte encoded ]
// if 2^6 <= i < 2^14 write [01 i^2...i^16] [ 16 bits = 2 byte encoded ]
// if 2^14 <= i < 2^30 write [10 i^2...i^32] [ 32 bits = 4 byte encoded ]
// if i >= 2^30 write [lower 2 bits of first byte = 11] [upper 6 bits of first byte = # of bytes following less 4]
// [append i as a byte array to the first byte]
func (es *encodeState) encodeUint(i uint64) {
	switch {
	case i < 1<<6:
		_ = es.WriteByte(byte(i) << 2)
	case i < 1<<14:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(i<<2)+1)
		_, _ = es.Write(b[:])
	case i < 1<<30:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(i<<2)+2)
		_, _ = es.Write(b[:])
	default:
		// the most significant byte cannot be zero
		numBytes := 0
		for m := i; m != 0; m >>= 8 {
			numBytes++
		}

		topSixBits := uint8(numBytes - 4)
		_ = es.WriteByte(topSixBits<<2 + 3)

		var o [8]byte
		binary.LittleEndian.PutUint64(o[:], i)
		_, _ = es.Write(o[:numBytes])
	}
}
