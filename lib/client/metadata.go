// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const (
	metadataAtVersionMethod  = "Metadata_metadata_at_version"
	preferredMetadataVersion = uint32(metadata.V15)
)

var errMetadataVersionUnavailable = errors.New("metadata version unavailable")

// fetchMetadata returns the raw metadata at the block given. It asks
// for metadata V15 first and falls back to state_getMetadata, which
// returns the default version of the runtime.
func fetchMetadata(ctx context.Context, api RPC, at *common.Hash) ([]byte, error) {
	raw, err := fetchMetadataAtVersion(ctx, api, preferredMetadataVersion, at)
	if err == nil {
		return raw, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	logger.Debugf("falling back to state_getMetadata: %s", err)

	raw, err = api.GetMetadata(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("getting metadata: %w", err)
	}
	return raw, nil
}

func fetchMetadataAtVersion(ctx context.Context, api RPC, version uint32, at *common.Hash) ([]byte, error) {
	result, err := api.StateCall(ctx, metadataAtVersionMethod, scale.MustMarshal(version), at)
	if err != nil {
		return nil, err
	}

	var raw *[]byte
	err = scale.Unmarshal(result, &raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", metadataAtVersionMethod, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %d", errMetadataVersionUnavailable, version)
	}
	return *raw, nil
}
