// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RPCCollector_ObserveRequest(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	collector := NewRPCCollector(registry)

	collector.ObserveRequest("state_getStorage", OutcomeOK, time.Millisecond)
	collector.ObserveRequest("state_getStorage", OutcomeOK, time.Millisecond)
	collector.ObserveRequest("state_getStorage", OutcomeRPCError, time.Millisecond)
	collector.ObserveRequest("chain_getHeader", OutcomeTransport, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		collector.requests.WithLabelValues("state_getStorage", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		collector.requests.WithLabelValues("state_getStorage", OutcomeRPCError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		collector.requests.WithLabelValues("chain_getHeader", OutcomeTransport)))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.duration))
}

func Test_Server(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	collector := NewRPCCollector(registry)
	collector.ObserveRequest("system_chain", OutcomeOK, time.Millisecond)

	server := NewServer("127.0.0.1:0", registry)
	require.NoError(t, server.Start())

	response, err := http.Get("http://" + server.Address() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	require.NoError(t, response.Body.Close())

	assert.True(t, strings.Contains(string(body),
		`argon_rpc_requests_total{method="system_chain",outcome="ok"} 1`))

	err = server.Stop()
	assert.NoError(t, err)
}
