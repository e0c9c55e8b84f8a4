// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	randomHashString = "0x580d77a9136035a0bc3c3cd86286172f7f81291164c5914266073a30466fba21"
	emptyHash        = "0x0000000000000000000000000000000000000000000000000000000000000000"
)

func Test_Hash_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		data       string
		expected   string
		errWrapped error
		errMessage string
	}{
		"empty": {
			data:       "",
			errWrapped: ErrInvalidHashFormat,
			errMessage: "invalid hash format",
		},
		"valid": {
			data:     `"` + randomHashString + `"`,
			expected: randomHashString,
		},
		"zero value": {
			data:     `"0x"`,
			expected: emptyHash,
		},
		"no prefix": {
			data:       `"zz"`,
			errWrapped: ErrNoPrefix,
			errMessage: `could not byteify non 0x prefixed string: "zz"`,
		},
		"too long": {
			data:       `"` + randomHashString + `00"`,
			errWrapped: ErrInvalidHashFormat,
			errMessage: "invalid hash format: 33 bytes",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var h Hash
			err := h.UnmarshalJSON([]byte(testCase.data))

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
				return
			}
			assert.Equal(t, testCase.expected, h.String())
		})
	}
}

func Test_Hash_MarshalJSON(t *testing.T) {
	t.Parallel()

	h := MustHexToHash(randomHashString)

	data, err := json.Marshal(struct {
		Hash Hash `json:"hash"`
	}{Hash: h})
	require.NoError(t, err)
	assert.Equal(t, `{"hash":"`+randomHashString+`"}`, string(data))
}

func Test_Hash_IsEmpty(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		hash  Hash
		empty bool
	}{
		"empty": {
			empty: true,
		},
		"not empty": {
			hash: Hash{1},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			empty := testCase.hash.IsEmpty()

			assert.Equal(t, testCase.empty, empty)
		})
	}
}

func Test_Hash_Short(t *testing.T) {
	t.Parallel()

	h := MustHexToHash(randomHashString)
	assert.Equal(t, "0x580d77a9...466fba21", h.Short())
}

func Test_NewHash(t *testing.T) {
	t.Parallel()

	h := NewHash([]byte{1, 2, 3})
	assert.Equal(t, Hash{1, 2, 3}, h)
	assert.Equal(t, 32, len(h.ToBytes()))
}

func Test_HexToBytes(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		in         string
		out        []byte
		errWrapped error
	}{
		"empty with prefix": {
			in:  "0x",
			out: []byte{},
		},
		"odd length": {
			in:  "0x102",
			out: []byte{0x01, 0x02},
		},
		"regular": {
			in:  "0xdeadbeef",
			out: []byte{0xde, 0xad, 0xbe, 0xef},
		},
		"missing prefix": {
			in:         "deadbeef",
			errWrapped: ErrNoPrefix,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := HexToBytes(testCase.in)

			assert.ErrorIs(t, err, testCase.errWrapped)
			assert.Equal(t, testCase.out, out)
		})
	}
}

func Test_Concat(t *testing.T) {
	t.Parallel()

	out := Concat([]byte{1}, nil, []byte{2, 3})
	assert.Equal(t, []byte{1, 2, 3}, out)
	assert.Equal(t, "0x010203", BytesToHex(out))
}
