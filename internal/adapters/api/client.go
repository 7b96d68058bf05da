// Package api implements the NS Gifts API client: token lifecycle, a
// shared HTTP session, transient-failure retries with exponential
// backoff, and a server-error cooldown, plus the per-endpoint methods
// built on top of that core.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/lfyzer/nsgifts-go/internal/domain/account"
	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
	"github.com/lfyzer/nsgifts-go/internal/infrastructure/ports"
)

var _ ports.APIClient = (*Client)(nil)

const (
	defaultBaseURL       = "https://api.ns.gifts"
	defaultMaxRetries    = 3
	defaultTimeout       = 30 * time.Second
	defaultCooldown      = 5 * time.Minute
	defaultRefreshBuffer = 5 * time.Minute
	defaultBackoffBase   = time.Second
	defaultRateLimit     = rate.Limit(10)
	defaultRateBurst     = 10
)

// Options configures a Client. The zero value yields production defaults.
type Options struct {
	// BaseURL is the API root; must be http(s)-prefixed
	BaseURL string

	// MaxRetries bounds total attempts for transport-level failures.
	// Zero applies the default; 1 disables retrying.
	MaxRetries int

	// Timeout bounds each individual HTTP exchange
	Timeout time.Duration

	// Cooldown is the fail-fast window opened after a 5xx response
	Cooldown time.Duration

	// RefreshBuffer triggers token refresh this long before expiry
	RefreshBuffer time.Duration

	// BackoffBase is the first retry delay; doubles per failure
	BackoffBase time.Duration

	// RateLimit and RateBurst configure the client-side token bucket
	RateLimit float64
	RateBurst int

	// Clock is injected by tests; nil means RealClock
	Clock shared.Clock

	// Metrics receives request-core events; nil disables recording
	Metrics MetricsRecorder
}

// withDefaults fills unset fields. An unset (zero) MaxRetries gets the
// default attempt budget; a single-attempt client is MaxRetries: 1.
func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.Timeout == 0 {
		o.Timeout = defaultTimeout
	}
	if o.Cooldown == 0 {
		o.Cooldown = defaultCooldown
	}
	if o.RefreshBuffer == 0 {
		o.RefreshBuffer = defaultRefreshBuffer
	}
	if o.BackoffBase == 0 {
		o.BackoffBase = defaultBackoffBase
	}
	if o.RateLimit == 0 {
		o.RateLimit = float64(defaultRateLimit)
	}
	if o.RateBurst == 0 {
		o.RateBurst = defaultRateBurst
	}
	if o.Clock == nil {
		o.Clock = shared.NewRealClock()
	}
	if o.Metrics == nil {
		o.Metrics = noopMetrics{}
	}
	return o
}

func (o Options) validate() error {
	if o.BaseURL == "" {
		return errors.New("base URL cannot be empty")
	}
	if !strings.HasPrefix(o.BaseURL, "http://") && !strings.HasPrefix(o.BaseURL, "https://") {
		return fmt.Errorf("base URL must start with http:// or https://, got %q", o.BaseURL)
	}
	if o.MaxRetries < 1 {
		return fmt.Errorf("max retries must be >= 1, got %d", o.MaxRetries)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", o.Timeout)
	}
	if o.Cooldown < 0 {
		return fmt.Errorf("cooldown must be >= 0, got %s", o.Cooldown)
	}
	if o.RefreshBuffer < 0 {
		return fmt.Errorf("refresh buffer must be >= 0, got %s", o.RefreshBuffer)
	}
	return nil
}

// Client is an authenticated NS Gifts API client. One instance is safe
// for concurrent use: the session and refresh mutexes serialize handle
// creation and token refresh, while request I/O runs fully concurrent.
type Client struct {
	baseURL       string
	maxRetries    int
	timeout       time.Duration
	backoffBase   time.Duration
	refreshBuffer time.Duration

	limiter  *rate.Limiter
	cooldown *CooldownGate
	clock    shared.Clock
	metrics  MetricsRecorder

	// sessionMu guards lazy creation and teardown of the shared session;
	// it is never held during request I/O
	sessionMu sync.Mutex
	session   *http.Client

	// refreshMu serializes token refresh (double-checked under it)
	refreshMu sync.Mutex

	// stateMu guards token and credential state
	stateMu sync.RWMutex
	token   account.Token
	creds   account.Credentials
}

// NewClient creates a client from opts, validating it first
func NewClient(opts Options) (*Client, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid client options: %w", err)
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		maxRetries:    opts.MaxRetries,
		timeout:       opts.Timeout,
		backoffBase:   opts.BackoffBase,
		refreshBuffer: opts.RefreshBuffer,
		limiter:       rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		cooldown:      NewCooldownGate(opts.Cooldown, opts.Clock),
		clock:         opts.Clock,
		metrics:       opts.Metrics,
	}, nil
}

// httpSession returns the shared transport handle, creating it on first
// use. Creation is guarded so concurrent first callers share one handle.
func (c *Client) httpSession() *http.Client {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	if c.session == nil {
		c.session = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     30 * time.Second,
			},
		}
	}
	return c.session
}

// Close releases the shared session and clears token state. Safe to call
// multiple times; subsequent requests would lazily recreate the session.
func (c *Client) Close() {
	c.sessionMu.Lock()
	if c.session != nil {
		c.session.CloseIdleConnections()
		c.session = nil
	}
	c.sessionMu.Unlock()

	c.stateMu.Lock()
	c.token = account.Token{}
	c.stateMu.Unlock()
}

// Authenticated reports whether a token is currently held (it may still
// be near expiry; ensureValidToken handles that before each call)
func (c *Client) Authenticated() bool {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.token.Value != ""
}

// TokenExpiresAt returns the unix expiry of the held token (0 if none)
func (c *Client) TokenExpiresAt() int64 {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.token.ExpiresAt
}

// CooldownActive reports whether the server-error window is open
func (c *Client) CooldownActive() bool {
	return c.cooldown.Active()
}

// CooldownRemaining returns the time left in the server-error window
func (c *Client) CooldownRemaining() time.Duration {
	remaining, _ := c.cooldown.Remaining()
	return remaining
}

// ResetCooldown closes the server-error window manually
func (c *Client) ResetCooldown() {
	c.cooldown.Reset()
}

func (c *Client) tokenValid() bool {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.token.Valid(c.clock.Now(), c.refreshBuffer)
}

func (c *Client) bearerToken() string {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.token.Value
}

// ensureValidToken guarantees a usable token on return, performing at
// most one login network call across all concurrent callers: validity is
// re-checked under the refresh mutex, so waiters that blocked behind the
// refreshing caller find a fresh token and return without logging in.
func (c *Client) ensureValidToken(ctx context.Context) error {
	if c.tokenValid() {
		return nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.tokenValid() {
		return nil
	}

	c.stateMu.RLock()
	creds := c.creds
	c.stateMu.RUnlock()

	if !creds.Set() {
		c.metrics.RecordTokenRefresh("missing_credentials")
		return &shared.APIError{
			Kind:    shared.KindAuthentication,
			Message: "token expired and no credentials set for refresh; call Login first",
		}
	}

	if _, err := c.Login(ctx, creds.Email, creds.Password); err != nil {
		c.metrics.RecordTokenRefresh("failure")
		var apiErr *shared.APIError
		if errors.As(err, &apiErr) && apiErr.Kind == shared.KindAuthentication {
			return err
		}
		return &shared.APIError{
			Kind:    shared.KindAuthentication,
			Message: "token refresh failed",
			Err:     err,
		}
	}

	c.metrics.RecordTokenRefresh("success")
	return nil
}

// authenticated wraps execute with the token guarantee. It is the entry
// point for every endpoint method except Login and Signup.
func (c *Client) authenticated(ctx context.Context, path string, payload, out any) error {
	c.stateMu.RLock()
	hasToken := c.token.Value != ""
	creds := c.creds
	c.stateMu.RUnlock()

	if !hasToken && !creds.Set() {
		return &shared.APIError{
			Kind:    shared.KindAuthentication,
			Message: "authentication required; call Login or Signup first",
		}
	}

	if err := c.ensureValidToken(ctx); err != nil {
		return err
	}
	return c.execute(ctx, http.MethodPost, path, payload, out, false)
}

// tokenEnvelope is the token-bearing part of login/signup responses
type tokenEnvelope struct {
	AccessToken string `json:"access_token"`
	ValidThru   int64  `json:"valid_thru"`
}

// captureToken updates token state from a successful login/signup body.
// A missing valid_thru falls back to the default lifetime.
func (c *Client) captureToken(body []byte) {
	var env tokenEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.AccessToken == "" {
		return
	}

	expiresAt := env.ValidThru
	if expiresAt == 0 {
		expiresAt = c.clock.Now().Add(account.DefaultTokenLifetime).Unix()
	}

	c.stateMu.Lock()
	c.token = account.Token{Value: env.AccessToken, ExpiresAt: expiresAt}
	c.stateMu.Unlock()
}

// setCredentials stores credentials for silent refresh
func (c *Client) setCredentials(email, password string) {
	c.stateMu.Lock()
	c.creds = account.Credentials{Email: email, Password: password}
	c.stateMu.Unlock()
}

// SetCredentials stores credentials without logging in. The first
// authenticated call performs the login; Login does this implicitly.
func (c *Client) SetCredentials(email, password string) {
	c.setCredentials(email, password)
}

// execute performs one logical request. Transport failures retry with
// exponential backoff up to maxRetries attempts; a 401 on a non-auth
// request triggers exactly one token refresh and reissues the request
// without consuming the attempt budget; a 5xx trips the cooldown gate and
// fails immediately; other 4xx fail immediately with a classified error.
func (c *Client) execute(ctx context.Context, method, path string, payload, out any, isAuth bool) error {
	url := c.baseURL + path

	var bodyBytes []byte
	if payload != nil {
		var err error
		bodyBytes, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	var lastErr error
	refreshed := false

	for attempt := 0; attempt < c.maxRetries; {
		// Fail fast while the backend is known unhealthy. Auth requests
		// pass through so a refresh can still succeed during cooldown.
		if remaining, active := c.cooldown.Remaining(); active && !isAuth {
			secs := int(remaining.Seconds())
			return &shared.APIError{
				Kind:       shared.KindServer,
				Message:    fmt.Sprintf("server error cooldown active; avoiding requests for %d more seconds", secs),
				RetryAfter: secs,
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}

		start := c.clock.Now()
		status, respBody, err := c.send(ctx, method, url, bodyBytes)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("request cancelled: %w", ctx.Err())
			}

			kind := transportKind(err)
			lastErr = err
			c.metrics.RecordRetry(path, kind.String())

			attempt++
			if attempt >= c.maxRetries {
				return &shared.APIError{
					Kind:    kind,
					Message: fmt.Sprintf("%s failure after %d attempts", kind, c.maxRetries),
					Err:     err,
				}
			}

			c.clock.Sleep(c.backoffBase * time.Duration(1<<(attempt-1)))
			continue
		}

		c.metrics.RecordRequest(method, path, status, c.clock.Now().Sub(start).Seconds())

		if status >= 200 && status < 300 {
			if isTokenEndpoint(path) {
				c.captureToken(respBody)
			}
			if out != nil {
				if err := json.Unmarshal(respBody, out); err != nil {
					return fmt.Errorf("unmarshal response from %s: %w", path, err)
				}
			}
			return nil
		}

		if status == http.StatusUnauthorized && !isAuth && !refreshed {
			// One refresh-and-reissue per logical request; the reissue
			// keeps the current attempt so it never starves the
			// transport retry budget. The server rejected the token, so
			// drop it regardless of its local expiry.
			refreshed = true
			c.stateMu.Lock()
			c.token = account.Token{}
			c.stateMu.Unlock()
			if err := c.ensureValidToken(ctx); err != nil {
				return err
			}
			continue
		}

		apiErr := shared.Classify(status, respBody)
		if apiErr.Kind == shared.KindServer {
			c.cooldown.Trip()
			c.metrics.RecordCooldownTrip(path)
		}
		return apiErr
	}

	return &shared.APIError{
		Kind:    shared.KindAPI,
		Message: "request failed after all retry attempts",
		Err:     lastErr,
	}
}

// send performs one HTTP exchange with the shared session and a bounded
// deadline. It returns the status and raw body, or a transport error.
func (c *Client) send(ctx context.Context, method, url string, body []byte) (int, []byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpSession().Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// transportKind distinguishes timeouts from other transport failures
func transportKind(err error) shared.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return shared.KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return shared.KindTimeout
	}
	return shared.KindConnection
}
