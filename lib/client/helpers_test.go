// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ChainSafe/argon-client/config"
	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/metadata/metadatatest"
	"github.com/ChainSafe/argon-client/lib/rpc"
	"github.com/ChainSafe/argon-client/pkg/scale"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTest = errors.New("test error")

	testGenesisHash = common.Hash{0x01}
	testBestHash    = common.Hash{0x02}
)

func testRuntimeVersion(specVersion uint32) rpc.RuntimeVersion {
	return rpc.RuntimeVersion{
		SpecName:           "argon",
		ImplName:           "argon",
		SpecVersion:        specVersion,
		TransactionVersion: 1,
	}
}

func testConfig() config.Client {
	cfg := config.Default()
	cfg.StorageCacheSize = 0
	return cfg
}

// metadataAtVersionResult returns the Option<Vec<u8>> result
// of Metadata_metadata_at_version.
func metadataAtVersionResult(version uint8) []byte {
	raw := metadatatest.ArgonBytes(version)
	return scale.MustMarshal(&raw)
}

// expectRuntimeLoad sets the calls made to load the runtime at the best block.
func expectRuntimeLoad(api *MockRPC, best common.Hash, version rpc.RuntimeVersion) {
	api.EXPECT().GetBlockHash(gomock.Any(), nil).Return(best, nil)
	api.EXPECT().GetRuntimeVersion(gomock.Any(), &best).Return(version, nil)
	api.EXPECT().StateCall(gomock.Any(), metadataAtVersionMethod, []byte{15, 0, 0, 0}, &best).
		Return(metadataAtVersionResult(metadata.V15), nil)
}

func expectGenesisHash(api *MockRPC) {
	genesisNumber := uint32(0)
	api.EXPECT().GetBlockHash(gomock.Any(), &genesisNumber).Return(testGenesisHash, nil)
}

// newTestClient returns a client loaded with the V15 test metadata
// and the mock of its node API.
func newTestClient(t *testing.T, cfg config.Client) (*Client, *MockRPC) {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := NewMockRPC(ctrl)
	expectGenesisHash(api)
	expectRuntimeLoad(api, testBestHash, testRuntimeVersion(100))

	client, err := New(context.Background(), cfg, WithRPC(api))
	require.NoError(t, err)

	api.EXPECT().Close().Return(nil)
	t.Cleanup(func() {
		assert.NoError(t, client.Close())
	})
	return client, api
}

func testStorageAddress[V any](t *testing.T, md *metadata.Metadata,
	pallet, entry string, keys ...any) *chain.StorageAddress[V] {
	t.Helper()

	signature, err := md.StorageSignature(pallet, entry)
	require.NoError(t, err)
	_, hashers, err := md.StorageKeyTypes(pallet, entry)
	require.NoError(t, err)
	return chain.NewStorageAddress[V](pallet, entry, hashers, signature, keys...)
}

func testCallPayload(t *testing.T, md *metadata.Metadata, pallet, call string, args any) *chain.Payload {
	t.Helper()

	signature, err := md.CallSignature(pallet, call)
	require.NoError(t, err)
	return chain.NewPayload(pallet, call, args, signature)
}

type testRemark struct {
	Remark []byte
}

// testSubscription is a subscription fed from a buffered channel.
type testSubscription struct {
	notifications chan json.RawMessage
	errs          chan error
	unsubscribed  atomic.Int32
}

func newTestSubscription(messages ...string) *testSubscription {
	subscription := &testSubscription{
		notifications: make(chan json.RawMessage, len(messages)),
		errs:          make(chan error, 1),
	}
	for _, message := range messages {
		subscription.notifications <- json.RawMessage(message)
	}
	return subscription
}

func (s *testSubscription) Notifications() <-chan json.RawMessage { return s.notifications }
func (s *testSubscription) Err() <-chan error                     { return s.errs }

func (s *testSubscription) Unsubscribe() error {
	s.unsubscribed.Add(1)
	return nil
}

// fail ends the subscription the way the websocket transport does.
func (s *testSubscription) fail(err error) {
	s.errs <- err
	close(s.notifications)
}
