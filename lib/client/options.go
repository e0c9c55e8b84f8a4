// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"github.com/ChainSafe/argon-client/internal/database"
	"github.com/ChainSafe/argon-client/lib/rpc"
)

// Option is a functional option for the client.
type Option func(s *settings)

type settings struct {
	rpc        RPC
	database   database.Database
	rpcOptions []rpc.Option
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

// WithRPC sets the node API to use instead of dialing the
// configured endpoint. The client closes it on Close.
func WithRPC(api RPC) Option {
	return func(s *settings) {
		s.rpc = api
	}
}

// WithDatabase sets the database used for the metadata cache.
// The caller keeps ownership of the database.
func WithDatabase(db database.Database) Option {
	return func(s *settings) {
		s.database = db
	}
}

// WithRPCOptions adds options used when dialing the endpoint.
func WithRPCOptions(options ...rpc.Option) Option {
	return func(s *settings) {
		s.rpcOptions = append(s.rpcOptions, options...)
	}
}
