// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"reflect"
)

// maxPreallocation bounds slice preallocation so a corrupt length
// prefix cannot trigger a huge allocation before decoding fails.
const maxPreallocation = 1024

// Unmarshal decodes data into dst, which must be a non-nil pointer.
// All the bytes of data must be consumed.
func Unmarshal(data []byte, dst any) error {
	reader := bytes.NewReader(data)
	ds := decodeState{
		Reader:                 reader,
		fieldScaleIndicesCache: cache,
	}
	err := ds.unmarshal(dst)
	if err != nil {
		return err
	}

	if reader.Len() > 0 {
		return fmt.Errorf("%w: %d bytes left decoding %T", ErrTrailingBytes, reader.Len(), dst)
	}
	return nil
}

// UnmarshalPrefix decodes the first value in data into dst and
// returns the number of bytes consumed.
func UnmarshalPrefix(data []byte, dst any) (n int, err error) {
	reader := bytes.NewReader(data)
	ds := decodeState{
		Reader:                 reader,
		fieldScaleIndicesCache: cache,
	}
	err = ds.unmarshal(dst)
	if err != nil {
		return 0, err
	}
	return len(data) - reader.Len(), nil
}

// Decoder reads and decodes SCALE values from an input stream.
type Decoder struct {
	decodeState
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	reader, ok := r.(Reader)
	if !ok {
		reader = bufio.NewReader(r)
	}
	return &Decoder{
		decodeState: decodeState{
			Reader:                 reader,
			fieldScaleIndicesCache: cache,
		},
	}
}

// Decode reads the next SCALE encoded value from its input and stores it in dst.
func (d *Decoder) Decode(dst any) error {
	return d.unmarshal(dst)
}

// Read implements io.Reader so a Decoder can be handed to Unmarshaler types.
func (d *Decoder) Read(p []byte) (int, error) {
	return d.Reader.Read(p)
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	return d.Reader.ReadByte()
}

type decodeState struct {
	Reader
	*fieldScaleIndicesCache
}

func (ds *decodeState) unmarshal(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: %T", ErrUnsupportedDestination, dst)
	}
	return ds.decode(rv.Elem())
}

func (ds *decodeState) decode(dstv reflect.Value) (err error) {
	t := dstv.Type()

	if t.Kind() != reflect.Ptr && dstv.CanAddr() {
		addr := dstv.Addr().Interface()
		switch addr := addr.(type) {
		case Unmarshaler:
			return addr.UnmarshalSCALE(ds.Reader)
		case VaryingDataType:
			return ds.decodeVaryingDataType(addr)
		}
	}

	switch t {
	case bigIntPtrType:
		i, err := DecodeCompact(ds.Reader)
		if err != nil {
			return err
		}
		dstv.Set(reflect.ValueOf(i))
		return nil
	case uint128Type:
		b, err := ds.readBytes(16)
		if err != nil {
			return err
		}
		dstv.Set(reflect.ValueOf(uint128FromBytes(b)))
		return nil
	case uint256Type:
		b, err := ds.readBytes(32)
		if err != nil {
			return err
		}
		dstv.Set(reflect.ValueOf(uint256FromBytes(b)))
		return nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return ds.decodeBool(dstv)
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ds.decodeFixedWidthInt(dstv)
	case reflect.Int, reflect.Uint:
		u, err := DecodeCompactUint(ds.Reader)
		if err != nil {
			return err
		}
		if t.Kind() == reflect.Int {
			if u > math.MaxInt64 {
				return fmt.Errorf("%w: compact %d into int", ErrDecodeOverflow, u)
			}
			dstv.SetInt(int64(u))
			return nil
		}
		dstv.SetUint(u)
		return nil
	case reflect.String:
		b, err := ds.decodeBytes()
		if err != nil {
			return err
		}
		dstv.SetString(string(b))
		return nil
	case reflect.Ptr:
		return ds.decodeOption(dstv)
	case reflect.Struct:
		return ds.decodeStruct(dstv)
	case reflect.Array:
		return ds.decodeArray(dstv)
	case reflect.Slice:
		return ds.decodeSlice(dstv)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

func (ds *decodeState) decodeVaryingDataType(vdt VaryingDataType) error {
	index, err := readByte(ds.Reader)
	if err != nil {
		return err
	}

	value, err := vdt.ValueAt(uint(index))
	if err != nil {
		return fmt.Errorf("%w: %d for %T: %v", ErrUnknownVaryingDataTypeIndex, index, vdt, err)
	}

	tempValue := reflect.New(reflect.TypeOf(value))
	err = ds.decode(tempValue.Elem())
	if err != nil {
		return fmt.Errorf("decoding variant %d of %T: %w", index, vdt, err)
	}
	return vdt.SetValue(tempValue.Elem().Interface())
}

func (ds *decodeState) decodeOption(dstv reflect.Value) error {
	b, err := readByte(ds.Reader)
	if err != nil {
		return err
	}

	switch b {
	case 0:
		dstv.Set(reflect.Zero(dstv.Type()))
		return nil
	case 1:
		elem := reflect.New(dstv.Type().Elem())
		err = ds.decode(elem.Elem())
		if err != nil {
			return err
		}
		dstv.Set(elem)
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidOption, b)
	}
}

func (ds *decodeState) decodeStruct(dstv reflect.Value) error {
	indices, err := ds.fieldScaleIndices(dstv.Type())
	if err != nil {
		return err
	}

	for _, i := range indices {
		err = ds.decode(dstv.Field(i.fieldIndex))
		if err != nil {
			return fmt.Errorf("decoding field %s.%s: %w",
				dstv.Type().Name(), dstv.Type().Field(i.fieldIndex).Name, err)
		}
	}
	return nil
}

func (ds *decodeState) decodeArray(dstv reflect.Value) error {
	if dstv.Type().Elem().Kind() == reflect.Uint8 {
		b, err := ds.readBytes(dstv.Len())
		if err != nil {
			return err
		}
		setBytes(dstv, b)
		return nil
	}

	for i := 0; i < dstv.Len(); i++ {
		err := ds.decode(dstv.Index(i))
		if err != nil {
			return err
		}
	}
	return nil
}

// setBytes copies b into the slice or array v, whose element kind
// is uint8 but whose element type may be a named byte type.
func setBytes(v reflect.Value, b []byte) {
	for i := range b {
		v.Index(i).SetUint(uint64(b[i]))
	}
}

func (ds *decodeState) decodeSlice(dstv reflect.Value) error {
	if dstv.Type().Elem().Kind() == reflect.Uint8 {
		b, err := ds.decodeBytes()
		if err != nil {
			return err
		}
		slice := reflect.MakeSlice(dstv.Type(), len(b), len(b))
		setBytes(slice, b)
		dstv.Set(slice)
		return nil
	}

	length, err := ds.decodeLength()
	if err != nil {
		return err
	}

	capacity := length
	if capacity > maxPreallocation {
		capacity = maxPreallocation
	}
	slice := reflect.MakeSlice(dstv.Type(), 0, capacity)
	for i := 0; i < length; i++ {
		elem := reflect.New(dstv.Type().Elem()).Elem()
		err = ds.decode(elem)
		if err != nil {
			return fmt.Errorf("decoding element %d of %d: %w", i, length, err)
		}
		slice = reflect.Append(slice, elem)
	}
	dstv.Set(slice)
	return nil
}

func (ds *decodeState) decodeBool(dstv reflect.Value) error {
	b, err := readByte(ds.Reader)
	if err != nil {
		return err
	}

	switch b {
	case 0:
		dstv.SetBool(false)
	case 1:
		dstv.SetBool(true)
	default:
		return fmt.Errorf("%w: %d", ErrInvalidBool, b)
	}
	return nil
}

// decodeFixedWidthInt decodes integers by reading the bytes in little endian.
func (ds *decodeState) decodeFixedWidthInt(dstv reflect.Value) error {
	size := int(dstv.Type().Size())
	b, err := ds.readBytes(size)
	if err != nil {
		return err
	}

	var u uint64
	switch size {
	case 1:
		u = uint64(b[0])
	case 2:
		u = uint64(binary.LittleEndian.Uint16(b))
	case 4:
		u = uint64(binary.LittleEndian.Uint32(b))
	case 8:
		u = binary.LittleEndian.Uint64(b)
	}

	switch dstv.Kind() {
	case reflect.Int8:
		dstv.SetInt(int64(int8(u)))
	case reflect.Int16:
		dstv.SetInt(int64(int16(u)))
	case reflect.Int32:
		dstv.SetInt(int64(int32(u)))
	case reflect.Int64:
		dstv.SetInt(int64(u))
	default:
		dstv.SetUint(u)
	}
	return nil
}

func (ds *decodeState) decodeLength() (int, error) {
	u, err := DecodeCompactUint(ds.Reader)
	if err != nil {
		return 0, fmt.Errorf("decoding length: %w", err)
	}
	if !compactFitsInt(u) {
		return 0, fmt.Errorf("%w: length %d", ErrDecodeOverflow, u)
	}
	return int(u), nil
}

func (ds *decodeState) decodeBytes() ([]byte, error) {
	length, err := ds.decodeLength()
	if err != nil {
		return nil, err
	}
	return ds.readBytes(length)
}

func (ds *decodeState) readBytes(n int) ([]byte, error) {
	if n <= maxPreallocation {
		b := make([]byte, n)
		_, err := io.ReadFull(ds.Reader, b)
		if err != nil {
			return nil, fmt.Errorf("reading %d bytes: %w", n, unexpectedEOF(err))
		}
		return b, nil
	}

	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, ds.Reader, int64(n))
	if err != nil {
		return nil, fmt.Errorf("reading %d bytes, got %d: %w", n, copied, unexpectedEOF(err))
	}
	return buf.Bytes(), nil
}
