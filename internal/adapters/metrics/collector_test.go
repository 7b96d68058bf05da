package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfyzer/nsgifts-go/internal/adapters/metrics"
)

func TestClientMetricsCollector_Register(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewClientMetricsCollector()

	require.NoError(t, collector.Register(registry))

	// Double registration is rejected by the registry
	assert.Error(t, collector.Register(registry))
}

func TestClientMetricsCollector_RecordsEvents(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewClientMetricsCollector()
	require.NoError(t, collector.Register(registry))

	collector.RecordRequest("POST", "/api/v1/check_balance", 200, 0.05)
	collector.RecordRetry("/api/v1/check_balance", "connection")
	collector.RecordCooldownTrip("/api/v1/create_order")
	collector.RecordTokenRefresh("success")

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}

	assert.True(t, names["nsgifts_client_api_requests_total"])
	assert.True(t, names["nsgifts_client_api_request_duration_seconds"])
	assert.True(t, names["nsgifts_client_api_retries_total"])
	assert.True(t, names["nsgifts_client_cooldown_trips_total"])
	assert.True(t, names["nsgifts_client_token_refreshes_total"])
}
