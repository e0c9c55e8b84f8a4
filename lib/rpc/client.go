// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package rpc implements a JSON-RPC 2.0 client for Substrate nodes,
// over websocket with subscriptions, or over plain HTTP.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/ChainSafe/argon-client/internal/log"
	"github.com/ChainSafe/argon-client/internal/metrics"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "rpc"))

type transport interface {
	call(ctx context.Context, req request) (json.RawMessage, error)
	close() error
}

// Client is a JSON-RPC client connected to a single node endpoint.
// It is safe for concurrent use.
type Client struct {
	endpoint  string
	settings  settings
	nextID    atomic.Uint64
	transport transport
}

// Dial connects to the endpoint given. The ws and wss schemes
// select the websocket transport, http and https the HTTP transport.
func Dial(ctx context.Context, endpoint string, options ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}

	s := newSettings(options)

	var t transport
	switch u.Scheme {
	case "ws", "wss":
		t, err = dialWebsocket(ctx, endpoint, s)
		if err != nil {
			return nil, err
		}
	case "http", "https":
		t = &httpTransport{
			endpoint: endpoint,
			client:   s.httpClient,
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	logger.Debugf("connected to %s", endpoint)

	return &Client{
		endpoint:  endpoint,
		settings:  s,
		transport: t,
	}, nil
}

// Endpoint returns the endpoint the client is connected to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close closes the client. Pending calls fail with ErrClientClosed.
func (c *Client) Close() error {
	return c.transport.close()
}

// Call calls the method with the params given and JSON decodes
// the result into result, unless result is nil.
func (c *Client) Call(ctx context.Context, method string, result any, params ...any) (err error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	raw, err := c.transport.call(ctx, c.newRequest(method, params))
	c.observe(method, start, err)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}

	if result == nil {
		return nil
	}

	err = json.Unmarshal(raw, result)
	if err != nil {
		return fmt.Errorf("decoding %s result: %s: %w", method, string(raw), err)
	}
	return nil
}

// Subscribe starts a subscription with subscribeMethod. The
// unsubscribeMethod is called when the subscription is closed.
func (c *Client) Subscribe(ctx context.Context, subscribeMethod, unsubscribeMethod string,
	params ...any) (*Subscription, error) {
	ws, ok := c.transport.(*wsTransport)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSubscriptionsNotSupported, subscribeMethod)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	sub := newSubscription(c, ws, unsubscribeMethod, c.settings.subscriptionBuffer)

	start := time.Now()
	_, err := ws.subscribe(ctx, c.newRequest(subscribeMethod, params), sub)
	c.observe(subscribeMethod, start, err)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", subscribeMethod, err)
	}

	logger.Debugf("subscription %s started with %s", sub.id, subscribeMethod)
	return sub, nil
}

func (c *Client) newRequest(method string, params []any) request {
	if params == nil {
		params = []any{}
	}
	return request{
		Version: jsonRPCVersion,
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.settings.timeout)
}

func (c *Client) observe(method string, start time.Time, err error) {
	duration := time.Since(start)

	outcome := metrics.OutcomeOK
	var rpcErr *Error
	switch {
	case err == nil:
	case errors.As(err, &rpcErr):
		outcome = metrics.OutcomeRPCError
	default:
		outcome = metrics.OutcomeTransport
	}
	c.settings.observer.ObserveRequest(method, outcome, duration)

	if err != nil {
		logger.Debugf("%s failed after %s: %s", method, duration, err)
		return
	}
	logger.Tracef("%s took %s", method, duration)
}

// resultOf checks the envelope of a response and returns its result.
func resultOf(resp *response) (json.RawMessage, error) {
	if resp.Version != jsonRPCVersion {
		return nil, fmt.Errorf("%w: %s", ErrResponseVersion, resp.Version)
	}

	if resp.Error != nil {
		return nil, resp.Error
	}

	if resp.Result == nil {
		return json.RawMessage("null"), nil
	}
	return resp.Result, nil
}
