// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ChainSafe/argon-client/internal/database"
	"github.com/ChainSafe/argon-client/lib/rpc"
	"github.com/klauspost/compress/zstd"
)

const (
	metadataTablePrefix = "metadata/"
	// maxCachedVersions is the number of runtime versions
	// cached per spec name.
	maxCachedVersions = 3
)

// metadataCache stores zstd compressed raw metadata keyed
// by runtime spec name and version. Only the latest
// maxCachedVersions versions of a spec are kept.
type metadataCache struct {
	table   database.Table
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newMetadataCache(db database.Database) (*metadataCache, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	return &metadataCache{
		table:   db.NewTable(metadataTablePrefix),
		encoder: encoder,
		decoder: decoder,
	}, nil
}

func metadataCacheKey(version rpc.RuntimeVersion) []byte {
	return []byte(version.SpecName + "/" + strconv.FormatUint(uint64(version.SpecVersion), 10))
}

// get returns the raw metadata cached for the runtime version,
// or nil if none is cached.
func (c *metadataCache) get(version rpc.RuntimeVersion) (raw []byte, err error) {
	compressed, err := c.table.Get(metadataCacheKey(version))
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting cached metadata: %w", err)
	}

	raw, err = c.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing cached metadata: %w", err)
	}
	return raw, nil
}

func (c *metadataCache) put(version rpc.RuntimeVersion, raw []byte) error {
	compressed := c.encoder.EncodeAll(raw, nil)
	err := c.table.Set(metadataCacheKey(version), compressed)
	if err != nil {
		return fmt.Errorf("caching metadata: %w", err)
	}
	return c.prune(version.SpecName)
}

// prune deletes all but the newest cached runtime versions of specName.
func (c *metadataCache) prune(specName string) error {
	keys, err := c.table.Keys()
	if err != nil {
		return fmt.Errorf("listing cached metadata: %w", err)
	}

	var versions []uint64
	for _, key := range keys {
		versionString, ok := strings.CutPrefix(string(key), specName+"/")
		if !ok {
			continue
		}
		version, err := strconv.ParseUint(versionString, 10, 32)
		if err != nil {
			continue
		}
		versions = append(versions, version)
	}
	if len(versions) <= maxCachedVersions {
		return nil
	}

	slices.Sort(versions)
	for _, version := range versions[:len(versions)-maxCachedVersions] {
		key := specName + "/" + strconv.FormatUint(version, 10)
		err = c.table.Delete([]byte(key))
		if err != nil {
			return fmt.Errorf("pruning cached metadata: %w", err)
		}
		logger.Debugf("pruned cached metadata of %s", key)
	}
	return nil
}

func (c *metadataCache) close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}
