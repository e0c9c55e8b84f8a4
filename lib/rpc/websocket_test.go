// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport records the calls made through a client.
type recordingTransport struct {
	calls chan request
}

func (r *recordingTransport) call(_ context.Context, req request) (json.RawMessage, error) {
	r.calls <- req
	return json.RawMessage("true"), nil
}

func (r *recordingTransport) close() error { return nil }

func newAbandonTest(t *testing.T) (ws *wsTransport, sub *Subscription, calls chan request) {
	t.Helper()

	calls = make(chan request, 1)
	client := &Client{
		settings:  newSettings(nil),
		transport: &recordingTransport{calls: calls},
	}
	ws = &wsTransport{
		pending: make(map[uint64]*pendingCall),
		subs:    make(map[string]*Subscription),
		closing: make(chan struct{}),
	}
	const bufferSize = 1
	sub = newSubscription(client, ws, "chain_unsubscribeFinalizedHeads", bufferSize)
	ws.pending[1] = &pendingCall{
		response:     make(chan *response, 1),
		subscription: sub,
	}
	return ws, sub, calls
}

func subscribeResponse(id uint64, subscriptionID string) *response {
	return &response{
		Version: jsonRPCVersion,
		ID:      &id,
		Result:  json.RawMessage(`"` + subscriptionID + `"`),
	}
}

func notification(subscriptionID string) *response {
	return &response{
		Version: jsonRPCVersion,
		Method:  "chain_finalizedHead",
		Params: &notificationParams{
			Subscription: json.RawMessage(`"` + subscriptionID + `"`),
			Result:       json.RawMessage(`{}`),
		},
	}
}

func waitCall(t *testing.T, calls chan request) request {
	t.Helper()
	select {
	case req := <-calls:
		return req
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for call")
		return request{}
	}
}

func Test_wsTransport_abandonedSubscription(t *testing.T) {
	t.Parallel()

	t.Run("abandoned before the node answers", func(t *testing.T) {
		t.Parallel()

		ws, sub, calls := newAbandonTest(t)

		sub.abandon()
		ws.dispatch(subscribeResponse(1, "sub-1"))

		assert.Empty(t, ws.subs)
		req := waitCall(t, calls)
		assert.Equal(t, "chain_unsubscribeFinalizedHeads", req.Method)
		assert.Equal(t, []any{json.RawMessage(`"sub-1"`)}, req.Params)

		// notifications beyond the buffer size must not block the reader
		for i := 0; i < 3; i++ {
			ws.dispatch(notification("sub-1"))
		}
	})

	t.Run("abandoned after the node answers", func(t *testing.T) {
		t.Parallel()

		ws, sub, calls := newAbandonTest(t)

		ws.dispatch(subscribeResponse(1, "sub-1"))
		require.Contains(t, ws.subs, "sub-1")
		ws.dispatch(notification("sub-1"))

		sub.abandon()

		assert.Empty(t, ws.subs)
		req := waitCall(t, calls)
		assert.Equal(t, "chain_unsubscribeFinalizedHeads", req.Method)

		ws.dispatch(notification("sub-1"))
		_, open := <-sub.Notifications()
		assert.True(t, open)
		_, open = <-sub.Notifications()
		assert.False(t, open)

		// abandoning again does nothing
		sub.abandon()
		select {
		case req := <-calls:
			t.Fatalf("unexpected call %s", req.Method)
		default:
		}
	})
}
