// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package scale implements the SCALE codec used for all on-chain data.
//
// Go values map to SCALE as follows:
//
//	int8..int64, uint8..uint64  fixed width, little endian
//	int, uint                   compact
//	*big.Int                    compact
//	Uint128, Uint256            fixed width, little endian
//	bool                        single byte
//	string, []byte              compact length prefixed bytes
//	[]T                         compact length prefixed items
//	[N]T                        items
//	struct                      fields in declaration or `scale:"N"` order
//	*T                          Option<T>
//	VaryingDataType             u8 index followed by the variant value
//
// Types implementing Marshaler or Unmarshaler control their own encoding.
package scale

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Marshaler is implemented by types that encode themselves.
type Marshaler interface {
	MarshalSCALE() ([]byte, error)
}

// Unmarshaler is implemented by types that decode themselves from
// the reader positioned at their first byte.
type Unmarshaler interface {
	UnmarshalSCALE(r Reader) error
}

// Reader is the reader handed to Unmarshaler implementations.
type Reader interface {
	Read(p []byte) (n int, err error)
	ReadByte() (byte, error)
}

var (
	bigIntPtrType       = reflect.TypeOf((*big.Int)(nil))
	uint128Type         = reflect.TypeOf(Uint128{})
	uint256Type         = reflect.TypeOf(Uint256{})
	marshalerType       = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType     = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	varyingDataTypeType = reflect.TypeOf((*VaryingDataType)(nil)).Elem()
)

// package level cache for fieldScaleIndices
var cache = &fieldScaleIndicesCache{
	cache: make(map[reflect.Type]fieldScaleIndices),
}

// fieldScaleIndex maps a struct field index to its scale index.
type fieldScaleIndex struct {
	fieldIndex int
	scaleIndex *int
}

type fieldScaleIndices []fieldScaleIndex

// fieldScaleIndicesCache stores the encoding order of the fields per struct type.
type fieldScaleIndicesCache struct {
	cache map[reflect.Type]fieldScaleIndices
	sync.RWMutex
}

func (fsic *fieldScaleIndicesCache) fieldScaleIndices(t reflect.Type) (
	indices fieldScaleIndices, err error) {
	fsic.RLock()
	indices, ok := fsic.cache[t]
	fsic.RUnlock()
	if ok {
		return indices, nil
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := strings.TrimSpace(field.Tag.Get("scale"))
		switch tag {
		case "":
			indices = append(indices, fieldScaleIndex{fieldIndex: i})
		case "-":
			continue
		default:
			scaleIndex, err := strconv.Atoi(tag)
			if err != nil {
				return nil, fmt.Errorf("%w: scale tag %q on field %s.%s",
					ErrInvalidTag, tag, t.Name(), field.Name)
			}
			indices = append(indices, fieldScaleIndex{
				fieldIndex: i,
				scaleIndex: &scaleIndex,
			})
		}
	}

	sort.SliceStable(indices, func(i, j int) bool {
		a, b := indices[i].scaleIndex, indices[j].scaleIndex
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil:
			return *a < *b
		default:
			return indices[i].fieldIndex < indices[j].fieldIndex
		}
	})

	fsic.Lock()
	fsic.cache[t] = indices
	fsic.Unlock()
	return indices, nil
}

func reverseBytes(a []byte) []byte {
	for i := len(a)/2 - 1; i >= 0; i-- {
		opp := len(a) - 1 - i
		a[i], a[opp] = a[opp], a[i]
	}
	return a
}
