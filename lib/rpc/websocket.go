// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type pendingCall struct {
	response     chan *response
	subscription *Subscription
}

// wsTransport multiplexes calls and subscriptions over a single
// websocket connection. A single reader goroutine routes responses
// by request id and notifications by subscription id.
type wsTransport struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[uint64]*pendingCall

	subsMu sync.Mutex
	subs   map[string]*Subscription

	closing    chan struct{}
	closeOnce  sync.Once
	readerDone chan struct{}
	// err is set before readerDone is closed.
	err error
}

func dialWebsocket(ctx context.Context, endpoint string, s settings) (*wsTransport, error) {
	conn, httpResponse, err := s.dialer.DialContext(ctx, endpoint, nil)
	if httpResponse != nil && httpResponse.Body != nil {
		_ = httpResponse.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dialing websocket: %w", err)
	}

	t := &wsTransport{
		conn:       conn,
		pending:    make(map[uint64]*pendingCall),
		subs:       make(map[string]*Subscription),
		closing:    make(chan struct{}),
		readerDone: make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

func (t *wsTransport) call(ctx context.Context, req request) (json.RawMessage, error) {
	return t.roundTrip(ctx, req, nil)
}

func (t *wsTransport) subscribe(ctx context.Context, req request, sub *Subscription) (json.RawMessage, error) {
	result, err := t.roundTrip(ctx, req, sub)
	if err != nil {
		// the node may have accepted the subscription after the context ended
		sub.abandon()
		return nil, err
	}
	return result, nil
}

func (t *wsTransport) roundTrip(ctx context.Context, req request, sub *Subscription) (json.RawMessage, error) {
	call := &pendingCall{
		response:     make(chan *response, 1),
		subscription: sub,
	}

	t.pendingMu.Lock()
	if t.pending == nil {
		t.pendingMu.Unlock()
		<-t.readerDone
		return nil, t.err
	}
	t.pending[req.ID] = call
	t.pendingMu.Unlock()

	err := t.write(ctx, req)
	if err != nil {
		t.dropPending(req.ID)
		return nil, err
	}

	select {
	case resp := <-call.response:
		result, err := resultOf(resp)
		if err == nil && sub != nil && sub.id == "" {
			return nil, ErrSubscriptionIDMissing
		}
		return result, err
	case <-ctx.Done():
		t.dropPending(req.ID)
		return nil, ctx.Err()
	case <-t.readerDone:
		return nil, t.err
	}
}

func (t *wsTransport) write(ctx context.Context, req request) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	err := t.conn.SetWriteDeadline(deadline)
	if err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}

	err = t.conn.WriteJSON(req)
	if err != nil {
		return fmt.Errorf("writing request: %w", err)
	}
	return nil
}

func (t *wsTransport) dropPending(id uint64) {
	t.pendingMu.Lock()
	defer t.pendingMu.Unlock()
	if t.pending != nil {
		delete(t.pending, id)
	}
}

// removeSubscription unregisters the subscription and closes its
// notification channel. It returns false if it was not registered.
func (t *wsTransport) removeSubscription(sub *Subscription) (removed bool) {
	t.subsMu.Lock()
	defer t.subsMu.Unlock()

	registered, ok := t.subs[sub.id]
	if !ok || registered != sub {
		return false
	}
	delete(t.subs, sub.id)
	close(sub.notifications)
	return true
}

func (t *wsTransport) readLoop() {
	var err error
	for {
		var data []byte
		_, data, err = t.conn.ReadMessage()
		if err != nil {
			break
		}

		var resp response
		decodeErr := json.Unmarshal(data, &resp)
		if decodeErr != nil {
			logger.Debugf("dropping malformed message: %s: %s", decodeErr, string(data))
			continue
		}
		t.dispatch(&resp)
	}

	select {
	case <-t.closing:
		err = ErrClientClosed
	default:
		err = fmt.Errorf("%w: %w", ErrClientClosed, err)
		logger.Warnf("websocket connection lost: %s", err)
	}
	t.shutdown(err)
}

func (t *wsTransport) dispatch(resp *response) {
	if resp.ID != nil {
		t.pendingMu.Lock()
		call, ok := t.pending[*resp.ID]
		delete(t.pending, *resp.ID)
		t.pendingMu.Unlock()
		if !ok {
			logger.Debugf("dropping response for unknown request id %d", *resp.ID)
			return
		}

		sub := call.subscription
		if sub != nil && resp.Error == nil && len(resp.Result) > 0 && string(resp.Result) != "null" {
			t.subsMu.Lock()
			sub.rawID = resp.Result
			sub.id = subscriptionKey(resp.Result)
			select {
			case <-sub.done:
				// the subscribe call gave up before the node answered
				go sub.unsubscribeNode()
			default:
				t.subs[sub.id] = sub
			}
			t.subsMu.Unlock()
		}

		call.response <- resp
		return
	}

	if resp.Params == nil {
		logger.Debugf("dropping message without id or params: method %q", resp.Method)
		return
	}

	key := subscriptionKey(resp.Params.Subscription)

	t.subsMu.Lock()
	defer t.subsMu.Unlock()
	sub, ok := t.subs[key]
	if !ok {
		logger.Debugf("dropping notification for unknown subscription %s", key)
		return
	}

	select {
	case sub.notifications <- resp.Params.Result:
	case <-sub.done:
	case <-t.closing:
	}
}

func (t *wsTransport) shutdown(err error) {
	t.err = err

	t.pendingMu.Lock()
	t.pending = nil
	t.pendingMu.Unlock()

	t.subsMu.Lock()
	for id, sub := range t.subs {
		sub.fail(err)
		delete(t.subs, id)
	}
	t.subsMu.Unlock()

	close(t.readerDone)
}

func (t *wsTransport) close() (err error) {
	t.closeOnce.Do(func() {
		close(t.closing)

		t.writeMu.Lock()
		const closeTimeout = time.Second
		_ = t.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeTimeout))
		t.writeMu.Unlock()

		err = t.conn.Close()
	})
	<-t.readerDone
	return err
}
