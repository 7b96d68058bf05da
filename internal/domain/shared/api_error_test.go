package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
)

func TestClassify_StatusKinds(t *testing.T) {
	tests := []struct {
		status int
		kind   shared.ErrorKind
	}{
		{400, shared.KindClient},
		{401, shared.KindAuthentication},
		{402, shared.KindInsufficientFunds},
		{403, shared.KindClient},
		{404, shared.KindNotFound},
		{409, shared.KindClient},
		{422, shared.KindValidation},
		{429, shared.KindRateLimit},
		{500, shared.KindServer},
		{502, shared.KindServer},
		{503, shared.KindServer},
		{504, shared.KindServer},
		{507, shared.KindServer},
		{599, shared.KindServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			err := shared.Classify(tt.status, nil)
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, tt.status, err.Status)
			assert.NotEmpty(t, err.Message)
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	body := []byte(`{"detail": "something broke"}`)

	first := shared.Classify(503, body)
	second := shared.Classify(503, body)

	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.Status, second.Status)
}

func TestClassify_DetailString(t *testing.T) {
	err := shared.Classify(400, []byte(`{"detail": "quantity exceeds stock"}`))

	assert.Equal(t, shared.KindClient, err.Kind)
	assert.Equal(t, "quantity exceeds stock", err.Message)
}

func TestClassify_InsufficientFundsDetail(t *testing.T) {
	body := []byte(`{"message": "not enough funds", "required": 150.5, "available": 20.0, "currency": "RUB"}`)

	err := shared.Classify(402, body)

	assert.Equal(t, shared.KindInsufficientFunds, err.Kind)
	assert.Equal(t, "not enough funds", err.Message)
	assert.Equal(t, 150.5, err.Required)
	assert.Equal(t, 20.0, err.Available)
	assert.Equal(t, "RUB", err.Currency)
}

func TestClassify_ValidationFieldList(t *testing.T) {
	body := []byte(`{"detail": [{"loc": ["body", "quantity"], "msg": "must be positive"}, {"loc": ["body", "custom_id"], "msg": "too long"}]}`)

	err := shared.Classify(422, body)

	assert.Equal(t, shared.KindValidation, err.Kind)
	require.Len(t, err.Fields, 2)
	assert.Equal(t, "quantity", err.Fields[0].Field)
	assert.Equal(t, "must be positive", err.Fields[0].Message)
	assert.Equal(t, "custom_id", err.Fields[1].Field)
}

func TestClassify_RateLimitRetryAfter(t *testing.T) {
	err := shared.Classify(429, []byte(`{"retry_after": 30}`))

	assert.Equal(t, shared.KindRateLimit, err.Kind)
	assert.Equal(t, 30, err.RetryAfter)
}

func TestClassify_NotFoundResource(t *testing.T) {
	err := shared.Classify(404, []byte(`{"message": "order not found", "resource": "order-123"}`))

	assert.Equal(t, shared.KindNotFound, err.Kind)
	assert.Equal(t, "order-123", err.Resource)
}

func TestClassify_NonJSONBody(t *testing.T) {
	err := shared.Classify(500, []byte("<html>Internal Server Error</html>"))

	assert.Equal(t, shared.KindServer, err.Kind)
	assert.Equal(t, "Internal Server Error - Unexpected server condition", err.Message)
	assert.Equal(t, []byte("<html>Internal Server Error</html>"), err.Body)
}

func TestClassify_UnknownStatusFallbackMessage(t *testing.T) {
	err := shared.Classify(418, nil)

	assert.Equal(t, shared.KindClient, err.Kind)
	assert.Equal(t, "Client error 418", err.Message)
}

func TestAPIError_Retryable(t *testing.T) {
	retryable := []shared.ErrorKind{
		shared.KindConnection,
		shared.KindTimeout,
		shared.KindServer,
		shared.KindRateLimit,
	}
	terminal := []shared.ErrorKind{
		shared.KindAPI,
		shared.KindAuthentication,
		shared.KindValidation,
		shared.KindNotFound,
		shared.KindInsufficientFunds,
		shared.KindClient,
	}

	for _, kind := range retryable {
		assert.True(t, (&shared.APIError{Kind: kind}).Retryable(), kind.String())
	}
	for _, kind := range terminal {
		assert.False(t, (&shared.APIError{Kind: kind}).Retryable(), kind.String())
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &shared.APIError{Kind: shared.KindConnection, Message: "connect failed", Err: cause}

	assert.ErrorIs(t, err, cause)
}
