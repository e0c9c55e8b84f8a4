// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type handlerFunc func(params []json.RawMessage) (result any, rpcErr *Error)

type nodeRequest struct {
	Version string            `json:"jsonrpc"`
	ID      uint64            `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type nodeResponse struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

type nodeNotification struct {
	Version string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  struct {
		Subscription string `json:"subscription"`
		Result       any    `json:"result"`
	} `json:"params"`
}

// testNode is an in-process JSON-RPC node serving both
// websocket and HTTP requests.
type testNode struct {
	server   *httptest.Server
	handlers map[string]handlerFunc
	// notifications are pushed right after the response
	// of the subscribe method they are keyed by.
	notifications map[string][]any

	mutex    sync.Mutex
	received []string
	conns    []*websocket.Conn
}

func newTestNode(t *testing.T, handlers map[string]handlerFunc,
	notifications map[string][]any) *testNode {
	t.Helper()

	node := &testNode{
		handlers:      handlers,
		notifications: notifications,
	}
	node.server = httptest.NewServer(node)
	t.Cleanup(node.server.Close)
	return node
}

func (n *testNode) wsURL() string {
	return "ws" + strings.TrimPrefix(n.server.URL, "http")
}

func (n *testNode) httpURL() string {
	return n.server.URL
}

func (n *testNode) methods() []string {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return append([]string(nil), n.received...)
}

func (n *testNode) dropConnections() {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	for _, conn := range n.conns {
		_ = conn.Close()
	}
}

func (n *testNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		n.serveWebsocket(w, r)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req nodeRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n.handle(req))
}

func (n *testNode) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	n.mutex.Lock()
	n.conns = append(n.conns, conn)
	n.mutex.Unlock()

	for {
		var req nodeRequest
		err := conn.ReadJSON(&req)
		if err != nil {
			return
		}

		notifications, subscribe := n.notifications[req.Method]
		if !subscribe {
			err = conn.WriteJSON(n.handle(req))
			if err != nil {
				return
			}
			continue
		}

		n.record(req.Method)
		subscriptionID := fmt.Sprintf("sub-%d", req.ID)
		err = conn.WriteJSON(nodeResponse{
			Version: jsonRPCVersion,
			ID:      req.ID,
			Result:  subscriptionID,
		})
		if err != nil {
			return
		}

		for _, result := range notifications {
			notification := nodeNotification{
				Version: jsonRPCVersion,
				Method:  req.Method,
			}
			notification.Params.Subscription = subscriptionID
			notification.Params.Result = result
			err = conn.WriteJSON(notification)
			if err != nil {
				return
			}
		}
	}
}

func (n *testNode) record(method string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.received = append(n.received, method)
}

func (n *testNode) handle(req nodeRequest) nodeResponse {
	n.record(req.Method)

	response := nodeResponse{
		Version: jsonRPCVersion,
		ID:      req.ID,
	}

	handler, ok := n.handlers[req.Method]
	if !ok {
		response.Error = &Error{Code: -32601, Message: "Method not found"}
		return response
	}

	response.Result, response.Error = handler(req.Params)
	return response
}

func constant(result any) handlerFunc {
	return func([]json.RawMessage) (any, *Error) {
		return result, nil
	}
}

type observation struct {
	method  string
	outcome string
}

type recordingObserver struct {
	mutex        sync.Mutex
	observations []observation
}

func (r *recordingObserver) ObserveRequest(method, outcome string, _ time.Duration) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.observations = append(r.observations, observation{method: method, outcome: outcome})
}
