// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"io"
	"testing"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Storage_Fetch(t *testing.T) {
	t.Parallel()

	at := common.Hash{0xaa}
	numberKey := common.StoragePrefix("System", "Number")

	testCases := map[string]struct {
		address    func(t *testing.T, md *metadata.Metadata) StorageQuery
		at         *common.Hash
		rpcValue   []byte
		rpcErr     error
		rpcCalled  bool
		found      bool
		value      uint32
		errWrapped error
		errMessage string
	}{
		"value found": {
			address: func(t *testing.T, md *metadata.Metadata) StorageQuery {
				return testStorageAddress[uint32](t, md, "System", "Number")
			},
			at:        &at,
			rpcValue:  []byte{42, 0, 0, 0},
			rpcCalled: true,
			found:     true,
			value:     42,
		},
		"value not found at best block": {
			address: func(t *testing.T, md *metadata.Metadata) StorageQuery {
				return testStorageAddress[uint32](t, md, "System", "Number")
			},
			rpcCalled: true,
		},
		"rpc error": {
			address: func(t *testing.T, md *metadata.Metadata) StorageQuery {
				return testStorageAddress[uint32](t, md, "System", "Number")
			},
			rpcErr:     errTest,
			rpcCalled:  true,
			errWrapped: errTest,
			errMessage: "fetching storage System.Number: test error",
		},
		"value decoding error": {
			address: func(t *testing.T, md *metadata.Metadata) StorageQuery {
				return testStorageAddress[uint32](t, md, "System", "Number")
			},
			rpcValue:   []byte{42, 0, 0, 0, 0},
			rpcCalled:  true,
			errWrapped: scale.ErrTrailingBytes,
		},
		"incompatible address": {
			address: func(t *testing.T, md *metadata.Metadata) StorageQuery {
				return chain.NewStorageAddress[uint32]("System", "Number", nil, "Number[]->u64")
			},
			errWrapped: chain.ErrIncompatible,
		},
		"unvalidated address": {
			address: func(t *testing.T, md *metadata.Metadata) StorageQuery {
				return chain.NewStorageAddress[uint32]("System", "Number", nil, "Number[]->u64").Unvalidated()
			},
			rpcValue:  []byte{1, 0, 0, 0},
			rpcCalled: true,
			found:     true,
			value:     1,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			client, api := newTestClient(t, testConfig())
			if testCase.rpcCalled {
				api.EXPECT().GetStorage(gomock.Any(), numberKey, testCase.at).
					Return(testCase.rpcValue, testCase.rpcErr)
			}

			var value uint32
			found, err := client.Storage().Fetch(context.Background(),
				testCase.address(t, client.Metadata()), testCase.at, &value)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errMessage != "" {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.found, found)
			assert.Equal(t, testCase.value, value)
		})
	}
}

func Test_Storage_Fetch_missingKey(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, testConfig())
	address := testStorageAddress[[]byte](t, client.Metadata(), "System", "Account")

	var value []byte
	_, err := client.Storage().Fetch(context.Background(), address, nil, &value)

	assert.ErrorIs(t, err, chain.ErrKeyCount)
}

func Test_Storage_FetchOrDefault(t *testing.T) {
	t.Parallel()

	client, api := newTestClient(t, testConfig())
	md := client.Metadata()

	numberKey := common.StoragePrefix("System", "Number")
	api.EXPECT().GetStorage(gomock.Any(), numberKey, nil).Return(nil, nil)

	number, err := FetchValueOrDefault(context.Background(), client.Storage(),
		testStorageAddress[uint32](t, md, "System", "Number"), nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), number)

	sudoKey := common.StoragePrefix("Sudo", "Key")
	api.EXPECT().GetStorage(gomock.Any(), sudoKey, nil).Return(nil, nil)

	_, err = FetchValueOrDefault(context.Background(), client.Storage(),
		testStorageAddress[[32]byte](t, md, "Sudo", "Key"), nil)
	assert.ErrorIs(t, err, ErrNoDefault)
	assert.EqualError(t, err, "storage entry has no default value: storage Sudo.Key")

	alice := [32]byte{1, 2, 3}
	api.EXPECT().GetStorage(gomock.Any(), sudoKey, nil).Return(alice[:], nil)

	sudo, found, err := FetchValue(context.Background(), client.Storage(),
		testStorageAddress[[32]byte](t, md, "Sudo", "Key"), nil)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, alice, sudo)
}

func Test_Storage_Fetch_cache(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.StorageCacheSize = 1 << 20
	client, api := newTestClient(t, cfg)

	at := common.Hash{0xaa}
	numberKey := common.StoragePrefix("System", "Number")
	// the cache admits values asynchronously
	api.EXPECT().GetStorage(gomock.Any(), numberKey, &at).
		Return([]byte{7, 0, 0, 0}, nil).MinTimes(1).MaxTimes(2)

	address := testStorageAddress[uint32](t, client.Metadata(), "System", "Number")
	for i := 0; i < 2; i++ {
		number, found, err := FetchValue(context.Background(), client.Storage(), address, &at)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, uint32(7), number)
	}
}

func Test_Storage_Iterate(t *testing.T) {
	t.Parallel()

	client, api := newTestClient(t, testConfig())
	address := testStorageAddress[common.Hash](t, client.Metadata(), "System", "BlockHash")

	prefix := common.StoragePrefix("System", "BlockHash")
	key := func(number uint32) []byte {
		hashed, err := chain.HashKey(metadata.Twox64Concat, scale.MustMarshal(number))
		require.NoError(t, err)
		return common.Concat(prefix, hashed)
	}

	best := common.Hash{0xbe}
	gomock.InOrder(
		api.EXPECT().GetBlockHash(gomock.Any(), nil).Return(best, nil),
		api.EXPECT().GetKeysPaged(gomock.Any(), prefix, uint32(2), nil, &best).
			Return([][]byte{key(1), key(2)}, nil),
		api.EXPECT().QueryStorageAt(gomock.Any(), [][]byte{key(1), key(2)}, &best).
			Return([][]byte{common.Hash{1}.ToBytes(), nil}, nil),
		api.EXPECT().GetKeysPaged(gomock.Any(), prefix, uint32(2), key(2), &best).
			Return([][]byte{key(3)}, nil),
		api.EXPECT().QueryStorageAt(gomock.Any(), [][]byte{key(3)}, &best).
			Return([][]byte{common.Hash{3}.ToBytes()}, nil),
	)

	values := make(map[uint32]common.Hash)
	err := client.Storage().Iterate(context.Background(), address, nil, 2,
		func(item StorageItem) error {
			require.Len(t, item.KeyParts, 1)
			var number uint32
			err := item.KeyParts[0].Decode(&number)
			require.NoError(t, err)

			var hash common.Hash
			err = item.Decode(&hash)
			require.NoError(t, err)
			values[number] = hash
			return nil
		})

	require.NoError(t, err)
	expected := map[uint32]common.Hash{
		1: {1},
		3: {3},
	}
	assert.Equal(t, expected, values)
}

func Test_Storage_Iterate_stop(t *testing.T) {
	t.Parallel()

	client, api := newTestClient(t, testConfig())
	address := testStorageAddress[common.Hash](t, client.Metadata(), "System", "BlockHash")

	prefix := common.StoragePrefix("System", "BlockHash")
	hashed, err := chain.HashKey(metadata.Twox64Concat, scale.MustMarshal(uint32(5)))
	require.NoError(t, err)
	key := common.Concat(prefix, hashed)

	at := common.Hash{0xaa}
	api.EXPECT().GetKeysPaged(gomock.Any(), prefix, uint32(defaultPageSize), nil, &at).
		Return([][]byte{key, key}, nil)
	api.EXPECT().QueryStorageAt(gomock.Any(), [][]byte{key, key}, &at).
		Return([][]byte{common.Hash{5}.ToBytes(), common.Hash{5}.ToBytes()}, nil)

	calls := 0
	err = client.Storage().Iterate(context.Background(), address, &at, 0,
		func(StorageItem) error {
			calls++
			return ErrStopIteration
		})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func Test_Storage_Iterate_errors(t *testing.T) {
	t.Parallel()

	t.Run("keys error", func(t *testing.T) {
		t.Parallel()

		client, api := newTestClient(t, testConfig())
		address := testStorageAddress[common.Hash](t, client.Metadata(), "System", "BlockHash")
		at := common.Hash{0xaa}
		api.EXPECT().GetKeysPaged(gomock.Any(), gomock.Any(), gomock.Any(), nil, &at).
			Return(nil, errTest)

		err := client.Storage().Iterate(context.Background(), address, &at, 10,
			func(StorageItem) error { return nil })

		assert.ErrorIs(t, err, errTest)
		assert.EqualError(t, err, "getting keys of storage System.BlockHash: test error")
	})

	t.Run("callback error", func(t *testing.T) {
		t.Parallel()

		client, api := newTestClient(t, testConfig())
		address := testStorageAddress[common.Hash](t, client.Metadata(), "System", "BlockHash")
		prefix := common.StoragePrefix("System", "BlockHash")
		hashed, err := chain.HashKey(metadata.Twox64Concat, scale.MustMarshal(uint32(5)))
		require.NoError(t, err)
		key := common.Concat(prefix, hashed)

		at := common.Hash{0xaa}
		api.EXPECT().GetKeysPaged(gomock.Any(), prefix, uint32(10), nil, &at).
			Return([][]byte{key}, nil)
		api.EXPECT().QueryStorageAt(gomock.Any(), [][]byte{key}, &at).
			Return([][]byte{{1}}, nil)

		err = client.Storage().Iterate(context.Background(), address, &at, 10,
			func(StorageItem) error { return errTest })

		assert.ErrorIs(t, err, errTest)
	})

	t.Run("too many keys", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, testConfig())
		address := testStorageAddress[common.Hash](t, client.Metadata(), "System", "BlockHash",
			uint32(1), uint32(2))

		err := client.Storage().Iterate(context.Background(), address, nil, 10,
			func(StorageItem) error { return nil })

		assert.ErrorIs(t, err, chain.ErrKeyCount)
	})
}

func Test_StorageItem_Decode(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		value      []byte
		decoded    uint32
		errWrapped error
	}{
		"success": {
			value:   []byte{5, 0, 0, 0},
			decoded: 5,
		},
		"truncated value leaves output unchanged": {
			value:      []byte{5, 0},
			decoded:    7,
			errWrapped: io.ErrUnexpectedEOF,
		},
		"trailing bytes leave output unchanged": {
			value:      []byte{5, 0, 0, 0, 1},
			decoded:    7,
			errWrapped: scale.ErrTrailingBytes,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			decoded := uint32(7)
			err := StorageItem{Value: testCase.value}.Decode(&decoded)

			assert.ErrorIs(t, err, testCase.errWrapped)
			assert.Equal(t, testCase.decoded, decoded)
		})
	}
}
