// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package httpserver

import "time"

// Option is a functional option for the HTTP server.
type Option func(s *settings)

type settings struct {
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

func newSettings(options []Option) settings {
	s := settings{
		readTimeout:       10 * time.Second,
		readHeaderTimeout: time.Second,
		shutdownTimeout:   3 * time.Second,
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// WithReadTimeouts sets the request and request header read timeouts,
// 10 seconds and 1 second by default.
func WithReadTimeouts(request, header time.Duration) Option {
	return func(s *settings) {
		s.readTimeout = request
		s.readHeaderTimeout = header
	}
}

// WithShutdownTimeout sets how long the server waits for open
// connections when shutting down, 3 seconds by default.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.shutdownTimeout = timeout
	}
}
