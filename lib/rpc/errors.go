// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrResponseVersion           = errors.New("unexpected response version received")
	ErrResponseError             = errors.New("response error received")
	ErrClientClosed              = errors.New("rpc client closed")
	ErrSubscriptionsNotSupported = errors.New("subscriptions are not supported over http")
	ErrUnsupportedScheme         = errors.New("unsupported endpoint scheme")
	ErrHTTPStatus                = errors.New("unexpected http status")
	ErrSubscriptionIDMissing     = errors.New("subscription id missing from response")

	errNullResult = errors.New("unexpected null result")
)

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s (error code %d)", ErrResponseError, e.Message, e.Code)
	if len(e.Data) > 0 && string(e.Data) != "null" {
		s += ": " + string(e.Data)
	}
	return s
}

// Unwrap returns ErrResponseError so callers can match any
// node-side error with errors.Is.
func (e *Error) Unwrap() error {
	return ErrResponseError
}
