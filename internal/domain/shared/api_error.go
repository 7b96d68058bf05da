package shared

import (
	"encoding/json"
	"fmt"
)

// ErrorKind categorizes API client failures into a closed set of kinds.
// Callers dispatch on Kind instead of on a type hierarchy.
type ErrorKind int

const (
	// KindAPI is the catch-all for failures that fit no other kind
	KindAPI ErrorKind = iota
	// KindConnection covers transport-level failures (refused, DNS, reset)
	KindConnection
	// KindTimeout covers request deadline expiry
	KindTimeout
	// KindAuthentication covers 401 responses and failed token refresh
	KindAuthentication
	// KindValidation covers 422 responses and local payload rejection
	KindValidation
	// KindRateLimit covers 429 responses
	KindRateLimit
	// KindNotFound covers 404 responses
	KindNotFound
	// KindInsufficientFunds covers 402 responses
	KindInsufficientFunds
	// KindClient covers remaining 4xx responses
	KindClient
	// KindServer covers 5xx responses and cooldown fail-fast rejections
	KindServer
)

// String returns the kind name used in error messages and metric labels
func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindRateLimit:
		return "rate_limit"
	case KindNotFound:
		return "not_found"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	default:
		return "api"
	}
}

// FieldError describes a single field rejected by server-side or local
// payload validation.
type FieldError struct {
	Field   string
	Message string
}

// APIError is the error type returned for every client failure. Kind is
// always set; the remaining detail fields are populated per kind: Status
// and Body for HTTP-level failures, RetryAfter for rate limits, the funds
// triple for 402, Fields for validation, Resource for 404.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Body    []byte

	// RetryAfter is the server-suggested wait in seconds (rate limit),
	// or the remaining cooldown in seconds for a fail-fast rejection.
	RetryAfter int

	// Insufficient-funds detail (402)
	Required  float64
	Available float64
	Currency  string

	// Per-field validation detail (422 or local validation)
	Fields []FieldError

	// Resource is the identifier of the missing resource, when the
	// response names one (404)
	Resource string

	Err error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap supports errors.Is/errors.As chains
func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient: worth retrying
// locally (connection, timeout) or after waiting (server, rate limit).
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindConnection, KindTimeout, KindServer, KindRateLimit:
		return true
	default:
		return false
	}
}

// Default messages for statuses whose bodies carry no usable message.
var clientStatusMessages = map[int]string{
	400: "Bad Request - Invalid parameters",
	401: "Unauthorized - Authentication required",
	402: "Payment Required - Insufficient funds",
	403: "Forbidden - Insufficient permissions",
	404: "Not Found - Resource does not exist",
	409: "Conflict - Request conflicts with current state",
	422: "Unprocessable Entity - Invalid request format",
	429: "Too Many Requests - Rate limit exceeded",
}

var serverStatusMessages = map[int]string{
	500: "Internal Server Error - Unexpected server condition",
	502: "Bad Gateway - Invalid response from upstream server",
	503: "Service Unavailable - Server temporarily unavailable",
	504: "Gateway Timeout - Upstream server timeout",
	507: "Insufficient Storage - Server storage limit reached",
}

// errorBody is the superset of detail payloads the API attaches to error
// responses. Unknown fields are ignored; the raw body is preserved on the
// returned error either way.
type errorBody struct {
	Detail     json.RawMessage `json:"detail"`
	Message    string          `json:"message"`
	RetryAfter int             `json:"retry_after"`
	Required   float64         `json:"required"`
	Available  float64         `json:"available"`
	Currency   string          `json:"currency"`
	Resource   string          `json:"resource"`
}

// fieldDetail is one entry of a structured validation error list:
// {"detail": [{"loc": ["body", "quantity"], "msg": "..."}]}
type fieldDetail struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// Classify maps an HTTP status plus optional response body to an APIError.
// It is a pure function: same status and body always yield the same error,
// no I/O, no shared state.
func Classify(status int, body []byte) *APIError {
	var parsed errorBody
	if len(body) > 0 {
		// Best effort; a non-JSON body still classifies by status alone
		_ = json.Unmarshal(body, &parsed)
	}

	message := parsed.Message
	if message == "" && len(parsed.Detail) > 0 {
		// detail is either a plain string or a field error list
		_ = json.Unmarshal(parsed.Detail, &message)
	}

	switch {
	case status == 401:
		return &APIError{
			Kind:    KindAuthentication,
			Status:  status,
			Message: fallback(message, clientStatusMessages[401]),
			Body:    body,
		}

	case status == 402:
		return &APIError{
			Kind:      KindInsufficientFunds,
			Status:    status,
			Message:   fallback(message, clientStatusMessages[402]),
			Body:      body,
			Required:  parsed.Required,
			Available: parsed.Available,
			Currency:  parsed.Currency,
		}

	case status == 404:
		return &APIError{
			Kind:     KindNotFound,
			Status:   status,
			Message:  fallback(message, clientStatusMessages[404]),
			Body:     body,
			Resource: parsed.Resource,
		}

	case status == 422:
		return &APIError{
			Kind:    KindValidation,
			Status:  status,
			Message: fallback(message, clientStatusMessages[422]),
			Body:    body,
			Fields:  parseFieldErrors(parsed.Detail),
		}

	case status == 429:
		return &APIError{
			Kind:       KindRateLimit,
			Status:     status,
			Message:    fallback(message, clientStatusMessages[429]),
			Body:       body,
			RetryAfter: parsed.RetryAfter,
		}

	case status >= 400 && status < 500:
		msg := fallback(message, clientStatusMessages[status])
		return &APIError{
			Kind:    KindClient,
			Status:  status,
			Message: fallback(msg, fmt.Sprintf("Client error %d", status)),
			Body:    body,
		}

	case status >= 500 && status < 600:
		msg := fallback(message, serverStatusMessages[status])
		return &APIError{
			Kind:    KindServer,
			Status:  status,
			Message: fallback(msg, fmt.Sprintf("Server error %d", status)),
			Body:    body,
		}

	default:
		return &APIError{
			Kind:    KindAPI,
			Status:  status,
			Message: fallback(message, fmt.Sprintf("Unexpected status %d", status)),
			Body:    body,
		}
	}
}

// parseFieldErrors extracts per-field messages from a structured error
// list. Each entry's last loc element is the field name.
func parseFieldErrors(detail json.RawMessage) []FieldError {
	if len(detail) == 0 {
		return nil
	}

	var entries []fieldDetail
	if err := json.Unmarshal(detail, &entries); err != nil {
		return nil
	}

	fields := make([]FieldError, 0, len(entries))
	for _, entry := range entries {
		var field string
		if len(entry.Loc) > 0 {
			_ = json.Unmarshal(entry.Loc[len(entry.Loc)-1], &field)
		}
		fields = append(fields, FieldError{Field: field, Message: entry.Msg})
	}
	return fields
}

func fallback(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
