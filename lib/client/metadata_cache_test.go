// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"testing"

	"github.com/ChainSafe/argon-client/internal/database/memory"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/metadata/metadatatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_metadataCache(t *testing.T) {
	t.Parallel()

	db := memory.New()
	cache, err := newMetadataCache(db)
	require.NoError(t, err)
	t.Cleanup(cache.close)

	raw, err := cache.get(testRuntimeVersion(100))
	require.NoError(t, err)
	assert.Nil(t, raw)

	metadataBytes := metadatatest.ArgonBytes(metadata.V15)
	err = cache.put(testRuntimeVersion(100), metadataBytes)
	require.NoError(t, err)

	compressed, err := db.Get([]byte("metadata/argon/100"))
	require.NoError(t, err)
	assert.NotEqual(t, metadataBytes, compressed)

	raw, err = cache.get(testRuntimeVersion(100))
	require.NoError(t, err)
	assert.Equal(t, metadataBytes, raw)

	raw, err = cache.get(testRuntimeVersion(101))
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func Test_metadataCache_prune(t *testing.T) {
	t.Parallel()

	db := memory.New()
	cache, err := newMetadataCache(db)
	require.NoError(t, err)
	t.Cleanup(cache.close)

	err = db.Set([]byte("metadata/argon/unrelated"), []byte{1})
	require.NoError(t, err)

	metadataBytes := metadatatest.ArgonBytes(metadata.V15)
	for _, specVersion := range []uint32{100, 9, 102, 101} {
		err = cache.put(testRuntimeVersion(specVersion), metadataBytes)
		require.NoError(t, err)
	}

	keys, err := db.NewTable("metadata/").Keys()
	require.NoError(t, err)
	expectedKeys := [][]byte{
		[]byte("argon/100"),
		[]byte("argon/101"),
		[]byte("argon/102"),
		[]byte("argon/unrelated"),
	}
	assert.Equal(t, expectedKeys, keys)
}

func Test_metadataCache_corrupted(t *testing.T) {
	t.Parallel()

	db := memory.New()
	cache, err := newMetadataCache(db)
	require.NoError(t, err)
	t.Cleanup(cache.close)

	err = db.Set([]byte("metadata/argon/100"), []byte{1, 2, 3})
	require.NoError(t, err)

	_, err = cache.get(testRuntimeVersion(100))
	assert.ErrorContains(t, err, "decompressing cached metadata: ")
}

func Test_openDatabase_onDisk(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	metadataBytes := metadatatest.ArgonBytes(metadata.V14)

	db, err := openDatabase(dataDir)
	require.NoError(t, err)
	cache, err := newMetadataCache(db)
	require.NoError(t, err)
	err = cache.put(testRuntimeVersion(7), metadataBytes)
	require.NoError(t, err)
	cache.close()
	require.NoError(t, db.Close())

	db, err = openDatabase(dataDir)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	cache, err = newMetadataCache(db)
	require.NoError(t, err)
	t.Cleanup(cache.close)

	raw, err := cache.get(testRuntimeVersion(7))
	require.NoError(t, err)
	assert.Equal(t, metadataBytes, raw)
}
