// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Subscription is an active subscription on a websocket client.
type Subscription struct {
	client            *Client
	transport         *wsTransport
	unsubscribeMethod string

	// id and rawID are set by the reader goroutine before
	// the subscribe response is delivered.
	id    string
	rawID json.RawMessage

	notifications chan json.RawMessage
	errs          chan error
	done          chan struct{}
	once          sync.Once
}

func newSubscription(client *Client, transport *wsTransport,
	unsubscribeMethod string, bufferSize int) *Subscription {
	return &Subscription{
		client:            client,
		transport:         transport,
		unsubscribeMethod: unsubscribeMethod,
		notifications:     make(chan json.RawMessage, bufferSize),
		errs:              make(chan error, 1),
		done:              make(chan struct{}),
	}
}

// ID returns the subscription id assigned by the node.
func (s *Subscription) ID() string {
	return s.id
}

// Notifications returns the channel of notification results.
// It is closed once the subscription ends.
func (s *Subscription) Notifications() <-chan json.RawMessage {
	return s.notifications
}

// Err returns a channel receiving the transport error
// that ended the subscription, if any.
func (s *Subscription) Err() <-chan error {
	return s.errs
}

// Unsubscribe ends the subscription and tells the node to stop it.
// It is safe to call more than once.
func (s *Subscription) Unsubscribe() (err error) {
	s.once.Do(func() {
		close(s.done)
		if !s.transport.removeSubscription(s) {
			return
		}
		err = s.unsubscribeNode()
	})
	return err
}

// abandon ends a subscription whose subscribe call failed. If the
// reader goroutine already registered it, the node is told to stop it.
// Otherwise the reader goroutine does so once the node answers.
func (s *Subscription) abandon() {
	s.once.Do(func() {
		close(s.done)
		if s.transport.removeSubscription(s) {
			go s.unsubscribeNode()
		}
	})
}

func (s *Subscription) unsubscribeNode() error {
	const unsubscribeTimeout = 5 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), unsubscribeTimeout)
	defer cancel()

	err := s.client.Call(ctx, s.unsubscribeMethod, nil, s.rawID)
	if err != nil {
		logger.Debugf("unsubscribing %s: %s", s.id, err)
	}
	return err
}

// fail ends the subscription after a transport failure.
// It must be called with the transport subscriptions lock held.
func (s *Subscription) fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
	close(s.notifications)
}
