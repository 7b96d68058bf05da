package api

// MetricsRecorder receives request-core events. The client calls it on
// the hot path, so implementations must not block.
type MetricsRecorder interface {
	// RecordRequest records a completed HTTP exchange
	RecordRequest(method, endpoint string, status int, seconds float64)

	// RecordRetry records one transport-failure retry with its reason
	RecordRetry(endpoint, reason string)

	// RecordCooldownTrip records a 5xx response opening the cooldown gate
	RecordCooldownTrip(endpoint string)

	// RecordTokenRefresh records a refresh outcome
	// (success, failure, missing_credentials)
	RecordTokenRefresh(outcome string)
}

// noopMetrics is used when no recorder is configured
type noopMetrics struct{}

func (noopMetrics) RecordRequest(string, string, int, float64) {}
func (noopMetrics) RecordRetry(string, string)                 {}
func (noopMetrics) RecordCooldownTrip(string)                  {}
func (noopMetrics) RecordTokenRefresh(string)                  {}
