package cli

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfyzer/nsgifts-go/internal/adapters/metrics"
	"github.com/lfyzer/nsgifts-go/internal/infrastructure/config"
)

// freePort reserves an ephemeral port and releases it for the server
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestStartMetricsServerServesRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewClientMetricsCollector()
	require.NoError(t, collector.Register(registry))
	collector.RecordRequest("POST", "/api/v1/check_balance", 200, 0.05)

	port := freePort(t)
	cfg := &config.Config{}
	cfg.Metrics.Host = "127.0.0.1"
	cfg.Metrics.Port = port
	cfg.Metrics.Path = "/metrics"

	startMetricsServer(registry, cfg)
	t.Cleanup(stopMetricsServer)

	// Starting again while one is running is a no-op
	first := metricsServer
	startMetricsServer(registry, cfg)
	assert.Same(t, first, metricsServer)

	url := fmt.Sprintf("http://127.0.0.1:%d/metrics", port)
	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		body, err = io.ReadAll(resp.Body)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	assert.Contains(t, string(body), "nsgifts_client_api_requests_total")

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/livez", port))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stopMetricsServer()
	assert.Nil(t, metricsServer)
}

func TestOrderStatusLabel(t *testing.T) {
	assert.Equal(t, "created", orderStatusLabel(1))
	assert.Equal(t, "paid", orderStatusLabel(2))
	assert.Equal(t, "completed", orderStatusLabel(3))
	assert.Equal(t, "cancelled", orderStatusLabel(4))
	assert.Equal(t, "status 9", orderStatusLabel(9))
}
