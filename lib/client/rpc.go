// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"encoding/json"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/rpc"
)

//go:generate mockgen -destination=mocks_test.go -package=$GOPACKAGE . RPC

// RPC is the node API used by the client.
type RPC interface {
	GetMetadata(ctx context.Context, at *common.Hash) ([]byte, error)
	GetStorage(ctx context.Context, key []byte, at *common.Hash) ([]byte, error)
	GetKeysPaged(ctx context.Context, prefix []byte, count uint32,
		startKey []byte, at *common.Hash) ([][]byte, error)
	QueryStorageAt(ctx context.Context, keys [][]byte, at *common.Hash) ([][]byte, error)
	StateCall(ctx context.Context, method string, data []byte, at *common.Hash) ([]byte, error)
	GetRuntimeVersion(ctx context.Context, at *common.Hash) (rpc.RuntimeVersion, error)
	GetBlockHash(ctx context.Context, number *uint32) (common.Hash, error)
	GetFinalizedHead(ctx context.Context) (common.Hash, error)
	GetHeader(ctx context.Context, hash *common.Hash) (*rpc.Header, error)
	GetBlock(ctx context.Context, hash *common.Hash) (*rpc.SignedBlock, error)
	AccountNextIndex(ctx context.Context, address string) (uint64, error)
	SubmitExtrinsic(ctx context.Context, extrinsic []byte) (common.Hash, error)
	SubmitAndWatchExtrinsic(ctx context.Context, extrinsic []byte) (Subscription, error)
	SubscribeFinalizedHeads(ctx context.Context) (Subscription, error)
	Close() error
}

// Subscription is a stream of JSON notifications.
type Subscription interface {
	Notifications() <-chan json.RawMessage
	Err() <-chan error
	Unsubscribe() error
}

var _ RPC = (*rpcClient)(nil)

// rpcClient adapts the JSON-RPC client to the RPC interface.
type rpcClient struct {
	*rpc.Client
}

func (c *rpcClient) SubmitAndWatchExtrinsic(ctx context.Context, extrinsic []byte) (Subscription, error) {
	subscription, err := c.Client.SubmitAndWatchExtrinsic(ctx, extrinsic)
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

func (c *rpcClient) SubscribeFinalizedHeads(ctx context.Context) (Subscription, error) {
	subscription, err := c.Client.SubscribeFinalizedHeads(ctx)
	if err != nil {
		return nil, err
	}
	return subscription, nil
}
