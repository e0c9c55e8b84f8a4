// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ChainSafe/argon-client/internal/httpserver"
	"github.com/ChainSafe/argon-client/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "metrics"))

var (
	errServerExited = errors.New("metrics server exited unexpectedly")
	errStopTimeout  = errors.New("metrics server exit timeout")
)

const stopTimeout = 30 * time.Second

// Server is a metrics http server
type Server struct {
	cancel context.CancelFunc
	server *httpserver.Server
	done   chan error
}

// NewServer is a constructor for metrics server. The gatherer
// is served on /metrics, and defaults to the Prometheus
// default gatherer when nil.
func NewServer(address string, gatherer prometheus.Gatherer) (s *Server) {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	m := http.NewServeMux()
	m.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &Server{
		server: httpserver.New("metrics", address, m, logger,
			httpserver.WithShutdownTimeout(time.Second)),
	}
}

// Start will start the metrics server, returning once it listens.
func (s *Server) Start() (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	ready := make(chan struct{})
	s.done = make(chan error)

	go s.server.Run(ctx, ready, s.done)

	select {
	case <-ready:
		logger.Infof("serving metrics at http://%s/metrics", s.server.GetAddress())
		return nil
	case err := <-s.done:
		cancel()
		if err != nil {
			return fmt.Errorf("starting metrics server: %w", err)
		}
		return errServerExited
	}
}

// Address returns the address the server listens on.
func (s *Server) Address() string {
	return s.server.GetAddress()
}

// Stop will stop the metrics server
func (s *Server) Stop() (err error) {
	s.cancel()
	timer := time.NewTimer(stopTimeout)
	defer timer.Stop()
	select {
	case err := <-s.done:
		return err
	case <-timer.C:
		return errStopTimeout
	}
}
