// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ChainSafe/argon-client/internal/metrics"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, endpoint string, options ...Option) *Client {
	t.Helper()
	client, err := Dial(context.Background(), endpoint, options...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func Test_Dial_unsupportedScheme(t *testing.T) {
	t.Parallel()

	client, err := Dial(context.Background(), "tcp://127.0.0.1:9944")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
	assert.EqualError(t, err, `unsupported endpoint scheme: "tcp"`)
	assert.Nil(t, client)
}

func Test_Client_Call(t *testing.T) {
	t.Parallel()

	handlers := map[string]handlerFunc{
		"system_chain": constant("Argon Testnet"),
		"system_echo": func(params []json.RawMessage) (any, *Error) {
			return params, nil
		},
		"system_fail": func([]json.RawMessage) (any, *Error) {
			return nil, &Error{Code: 1010, Message: "Invalid Transaction", Data: json.RawMessage(`"bad signature"`)}
		},
	}
	node := newTestNode(t, handlers, nil)

	testCases := map[string]struct {
		endpoint string
	}{
		"websocket": {endpoint: node.wsURL()},
		"http":      {endpoint: node.httpURL()},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			client := dial(t, testCase.endpoint)
			ctx := context.Background()

			var chain string
			err := client.Call(ctx, "system_chain", &chain)
			require.NoError(t, err)
			assert.Equal(t, "Argon Testnet", chain)

			var echoed []any
			err = client.Call(ctx, "system_echo", &echoed, "0x01", 2, nil)
			require.NoError(t, err)
			assert.Equal(t, []any{"0x01", 2.0, nil}, echoed)

			err = client.Call(ctx, "system_fail", nil)
			require.ErrorIs(t, err, ErrResponseError)
			var rpcErr *Error
			require.True(t, errors.As(err, &rpcErr))
			assert.Equal(t, 1010, rpcErr.Code)
			assert.EqualError(t, err, `calling system_fail: response error received: `+
				`Invalid Transaction (error code 1010): "bad signature"`)

			err = client.Call(ctx, "system_unknown", nil)
			assert.EqualError(t, err, "calling system_unknown: response error received: "+
				"Method not found (error code -32601)")
		})
	}
}

func Test_Client_Call_responseVersion(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"1.0","id":1,"result":"x"}`))
	}))
	t.Cleanup(server.Close)

	client := dial(t, server.URL)

	err := client.Call(context.Background(), "system_chain", nil)
	assert.ErrorIs(t, err, ErrResponseVersion)
	assert.EqualError(t, err, "calling system_chain: unexpected response version received: 1.0")
}

func Test_Client_Call_httpStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := dial(t, server.URL)

	err := client.Call(context.Background(), "system_chain", nil)
	assert.ErrorIs(t, err, ErrHTTPStatus)
}

func Test_Client_Call_concurrent(t *testing.T) {
	t.Parallel()

	handlers := map[string]handlerFunc{
		"echo": func(params []json.RawMessage) (any, *Error) {
			return params[0], nil
		},
	}
	node := newTestNode(t, handlers, nil)
	client := dial(t, node.wsURL())

	const calls = 32
	var wg sync.WaitGroup
	results := make([]int, calls)
	errs := make([]error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.Call(context.Background(), "echo", &results[i], i)
		}(i)
	}
	wg.Wait()

	for i := 0; i < calls; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, i, results[i])
	}
}

func Test_Client_Call_contextTimeout(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	handlers := map[string]handlerFunc{
		"slow": func([]json.RawMessage) (any, *Error) {
			<-block
			return nil, nil
		},
	}
	node := newTestNode(t, handlers, nil)
	// unblock the handler before the server is closed
	t.Cleanup(func() { close(block) })
	client := dial(t, node.httpURL(), WithTimeout(20*time.Millisecond))

	err := client.Call(context.Background(), "slow", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func Test_Client_Close(t *testing.T) {
	t.Parallel()

	node := newTestNode(t, map[string]handlerFunc{"system_chain": constant("Argon")}, nil)

	client, err := Dial(context.Background(), node.wsURL())
	require.NoError(t, err)

	require.NoError(t, client.Close())

	err = client.Call(context.Background(), "system_chain", nil)
	assert.ErrorIs(t, err, ErrClientClosed)
	assert.EqualError(t, err, "calling system_chain: rpc client closed")

	// closing twice is a no-op
	assert.NoError(t, client.Close())
}

func Test_Client_observer(t *testing.T) {
	t.Parallel()

	node := newTestNode(t, map[string]handlerFunc{"system_chain": constant("Argon")}, nil)
	observer := &recordingObserver{}
	client := dial(t, node.httpURL(), WithObserver(observer))

	ctx := context.Background()
	require.NoError(t, client.Call(ctx, "system_chain", nil))
	require.Error(t, client.Call(ctx, "system_unknown", nil))

	expected := []observation{
		{method: "system_chain", outcome: metrics.OutcomeOK},
		{method: "system_unknown", outcome: metrics.OutcomeRPCError},
	}
	assert.Equal(t, expected, observer.observations)
}

func Test_Client_Subscribe(t *testing.T) {
	t.Parallel()

	headers := []any{
		map[string]any{
			"parentHash":     common.Hash{1}.String(),
			"number":         "0x10",
			"stateRoot":      common.Hash{2}.String(),
			"extrinsicsRoot": common.Hash{3}.String(),
			"digest":         map[string]any{"logs": []string{}},
		},
		map[string]any{
			"parentHash":     common.Hash{4}.String(),
			"number":         "0x11",
			"stateRoot":      common.Hash{5}.String(),
			"extrinsicsRoot": common.Hash{6}.String(),
			"digest":         map[string]any{"logs": []string{}},
		},
	}
	handlers := map[string]handlerFunc{
		"chain_unsubscribeFinalizedHeads": constant(true),
	}
	notifications := map[string][]any{
		"chain_subscribeFinalizedHeads": headers,
	}
	node := newTestNode(t, handlers, notifications)
	client := dial(t, node.wsURL())

	sub, err := client.SubscribeFinalizedHeads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sub-1", sub.ID())

	var numbers []BlockNumber
	for i := 0; i < len(headers); i++ {
		select {
		case raw := <-sub.Notifications():
			var header Header
			require.NoError(t, json.Unmarshal(raw, &header))
			numbers = append(numbers, header.Number)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for notification")
		}
	}
	assert.Equal(t, []BlockNumber{16, 17}, numbers)

	require.NoError(t, sub.Unsubscribe())
	require.NoError(t, sub.Unsubscribe())

	_, open := <-sub.Notifications()
	assert.False(t, open)

	assert.Equal(t, []string{
		"chain_subscribeFinalizedHeads",
		"chain_unsubscribeFinalizedHeads",
	}, node.methods())
}

func Test_Client_Subscribe_http(t *testing.T) {
	t.Parallel()

	node := newTestNode(t, nil, nil)
	client := dial(t, node.httpURL())

	sub, err := client.SubscribeFinalizedHeads(context.Background())
	assert.ErrorIs(t, err, ErrSubscriptionsNotSupported)
	assert.Nil(t, sub)
}

func Test_Client_Subscribe_connectionLost(t *testing.T) {
	t.Parallel()

	notifications := map[string][]any{
		"chain_subscribeFinalizedHeads": nil,
	}
	node := newTestNode(t, nil, notifications)
	client := dial(t, node.wsURL())

	sub, err := client.SubscribeFinalizedHeads(context.Background())
	require.NoError(t, err)

	node.dropConnections()

	select {
	case err := <-sub.Err():
		assert.ErrorIs(t, err, ErrClientClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for subscription error")
	}

	_, open := <-sub.Notifications()
	assert.False(t, open)

	// the node is gone so unsubscribing does not call it
	assert.NoError(t, sub.Unsubscribe())

	err = client.Call(context.Background(), "system_chain", nil)
	assert.ErrorIs(t, err, ErrClientClosed)
}

func Test_Client_typedCalls(t *testing.T) {
	t.Parallel()

	blockHash := common.Hash{0xaa}
	handlers := map[string]handlerFunc{
		"state_getStorage": func(params []json.RawMessage) (any, *Error) {
			var key string
			_ = json.Unmarshal(params[0], &key)
			if key == "0x0102" {
				return "0xdeadbeef", nil
			}
			return nil, nil
		},
		"state_getKeysPaged": func(params []json.RawMessage) (any, *Error) {
			if len(params) != 4 || string(params[2]) != "null" {
				return nil, &Error{Code: -32602, Message: fmt.Sprintf("bad params %s", params)}
			}
			return []string{"0x0a01", "0x0a02"}, nil
		},
		"state_queryStorageAt": constant([]any{
			map[string]any{
				"block":   blockHash.String(),
				"changes": [][2]any{{"0x0a02", "0x02"}, {"0x0a01", "0x01"}, {"0x0a03", nil}},
			},
		}),
		"state_call": constant("0x2a000000"),
		"state_getRuntimeVersion": constant(map[string]any{
			"specName":           "argon",
			"implName":           "argon",
			"authoringVersion":   1,
			"specVersion":        107,
			"implVersion":        1,
			"apis":               [][2]any{{"0xdf6acb689907609b", 4}},
			"transactionVersion": 2,
			"stateVersion":       1,
		}),
		"chain_getBlockHash":      constant(blockHash.String()),
		"chain_getFinalizedHead":  constant(blockHash.String()),
		"system_accountNextIndex": constant(7),
		"author_submitExtrinsic":  constant(blockHash.String()),
		"system_properties": constant(map[string]any{
			"ss58Format":    18,
			"tokenDecimals": 3,
			"tokenSymbol":   "ARGON",
		}),
	}
	node := newTestNode(t, handlers, nil)
	client := dial(t, node.wsURL())
	ctx := context.Background()

	value, err := client.GetStorage(ctx, []byte{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, value)

	value, err = client.GetStorage(ctx, []byte{3}, &blockHash)
	require.NoError(t, err)
	assert.Nil(t, value)

	keys, err := client.GetKeysPaged(ctx, []byte{0x0a}, 10, nil, &blockHash)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x0a, 0x01}, {0x0a, 0x02}}, keys)

	values, err := client.QueryStorageAt(ctx, keys, &blockHash)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x01}, {0x02}}, values)

	result, err := client.StateCall(ctx, "AccountNonceApi_account_nonce", []byte{1}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x2a, 0, 0, 0}, result)

	version, err := client.GetRuntimeVersion(ctx, nil)
	require.NoError(t, err)
	expectedVersion := RuntimeVersion{
		SpecName:           "argon",
		ImplName:           "argon",
		AuthoringVersion:   1,
		SpecVersion:        107,
		ImplVersion:        1,
		APIs:               []APIVersion{{ID: "0xdf6acb689907609b", Version: 4}},
		TransactionVersion: 2,
		StateVersion:       1,
	}
	assert.Equal(t, expectedVersion, version)

	number := uint32(5)
	hash, err := client.GetBlockHash(ctx, &number)
	require.NoError(t, err)
	assert.Equal(t, blockHash, hash)

	hash, err = client.GetFinalizedHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, blockHash, hash)

	nonce, err := client.AccountNextIndex(ctx, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), nonce)

	hash, err = client.SubmitExtrinsic(ctx, []byte{0x04})
	require.NoError(t, err)
	assert.Equal(t, blockHash, hash)

	properties, err := client.SystemProperties(ctx)
	require.NoError(t, err)
	require.NotNil(t, properties.SS58Format)
	assert.Equal(t, uint16(18), *properties.SS58Format)
	assert.JSONEq(t, `"ARGON"`, string(properties.TokenSymbol))

	_, err = client.GetHeader(ctx, nil)
	assert.ErrorIs(t, err, ErrResponseError)
}
