// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "argon"

// Outcome values recorded for each RPC request.
const (
	OutcomeOK        = "ok"
	OutcomeRPCError  = "rpc_error"
	OutcomeTransport = "transport_error"
)

// RPCCollector records JSON-RPC request counts and latencies.
type RPCCollector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRPCCollector registers the RPC collectors with the registerer
// given, or the default registerer if it is nil.
func NewRPCCollector(registerer prometheus.Registerer) *RPCCollector {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)
	return &RPCCollector{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Number of JSON-RPC requests sent, by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Round trip duration of JSON-RPC requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// ObserveRequest records one request for method.
func (c *RPCCollector) ObserveRequest(method, outcome string, duration time.Duration) {
	c.requests.WithLabelValues(method, outcome).Inc()
	c.duration.WithLabelValues(method).Observe(duration.Seconds())
}
