// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"encoding/json"
)

const jsonRPCVersion = "2.0"

type request struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// response holds both call responses and subscription
// notifications received from the node.
type response struct {
	// JSON-RPC Version
	Version string `json:"jsonrpc"`
	// Request id, absent for notifications
	ID *uint64 `json:"id,omitempty"`
	// Resulting values
	Result json.RawMessage `json:"result,omitempty"`
	// Any generated errors
	Error *Error `json:"error,omitempty"`
	// Method name of a notification
	Method string `json:"method,omitempty"`
	// Params of a notification
	Params *notificationParams `json:"params,omitempty"`
}

type notificationParams struct {
	Subscription json.RawMessage `json:"subscription"`
	Result       json.RawMessage `json:"result"`
}

// subscriptionKey normalises a subscription id, which nodes send
// either as a JSON string or as a JSON number.
func subscriptionKey(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
