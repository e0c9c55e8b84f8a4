// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Observer records the outcome of each request sent.
type Observer interface {
	ObserveRequest(method, outcome string, duration time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveRequest(string, string, time.Duration) {}

// Option is a functional option for the RPC client.
type Option func(s *settings)

type settings struct {
	timeout            time.Duration
	observer           Observer
	httpClient         *http.Client
	dialer             *websocket.Dialer
	subscriptionBuffer int
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}

	if s.timeout == 0 {
		const defaultTimeout = 30 * time.Second
		s.timeout = defaultTimeout
	}

	if s.observer == nil {
		s.observer = noopObserver{}
	}

	if s.httpClient == nil {
		s.httpClient = http.DefaultClient
	}

	if s.dialer == nil {
		const handshakeTimeout = 10 * time.Second
		s.dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		}
	}

	if s.subscriptionBuffer == 0 {
		const defaultBuffer = 128
		s.subscriptionBuffer = defaultBuffer
	}

	return s
}

// WithTimeout sets the timeout applied to calls whose
// context carries no deadline. It defaults to 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithObserver sets the request observer, typically
// a metrics collector.
func WithObserver(observer Observer) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

// WithHTTPClient sets the HTTP client used by the http transport.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.httpClient = client
	}
}

// WithDialer sets the websocket dialer.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(s *settings) {
		s.dialer = dialer
	}
}

// WithSubscriptionBuffer sets the notification buffer
// size of each subscription.
func WithSubscriptionBuffer(size int) Option {
	return func(s *settings) {
		s.subscriptionBuffer = size
	}
}
