package steps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/lfyzer/nsgifts-go/internal/adapters/api"
	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
	"github.com/lfyzer/nsgifts-go/test/helpers"
)

// currentClient exposes the active scenario's client context to other
// step files (order journal steps reuse the backend and client).
var currentClient *clientContext

type clientContext struct {
	backend *helpers.FakeBackend
	clock   *shared.MockClock
	client  *api.Client

	maxRetries int
	cooldown   time.Duration

	tokenSeq         atomic.Int32
	rejectFirstToken bool

	lastErr     error
	lastBalance float64
}

func (cc *clientContext) reset() {
	if cc.client != nil {
		cc.client.Close()
	}
	if cc.backend != nil {
		cc.backend.Close()
	}
	cc.backend = nil
	cc.clock = shared.NewMockClock(time.Now())
	cc.client = nil
	cc.maxRetries = 3
	cc.cooldown = 5 * time.Minute
	cc.tokenSeq.Store(0)
	cc.rejectFirstToken = false
	cc.lastErr = nil
	cc.lastBalance = 0
}

func (cc *clientContext) teardown() {
	if cc.client != nil {
		cc.client.Close()
		cc.client = nil
	}
	if cc.backend != nil {
		cc.backend.Close()
		cc.backend = nil
	}
}

// ensureClient lazily builds the client so configuration steps can run
// first
func (cc *clientContext) ensureClient() (*api.Client, error) {
	if cc.client != nil {
		return cc.client, nil
	}
	if cc.backend == nil {
		return nil, fmt.Errorf("no backend running; missing background step")
	}

	client, err := api.NewClient(api.Options{
		BaseURL:     cc.backend.URL(),
		MaxRetries:  cc.maxRetries,
		Cooldown:    cc.cooldown,
		Timeout:     5 * time.Second,
		BackoffBase: time.Second,
		RateLimit:   1000,
		RateBurst:   1000,
		Clock:       cc.clock,
	})
	if err != nil {
		return nil, err
	}
	cc.client = client
	return client, nil
}

// tableToMap converts a single-data-row table into a column->value map
func tableToMap(table *messages.PickleTable) (map[string]string, error) {
	if len(table.Rows) != 2 {
		return nil, fmt.Errorf("expected a header row and one data row, got %d rows", len(table.Rows))
	}
	out := make(map[string]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		out[cell.Value] = table.Rows[1].Cells[i].Value
	}
	return out, nil
}

func (cc *clientContext) aRunningBackend() error {
	cc.backend = helpers.NewFakeBackend()
	return nil
}

func (cc *clientContext) aClientConfiguredWith(table *godog.Table) error {
	values, err := tableToMap(table)
	if err != nil {
		return err
	}

	if raw, ok := values["max_retries"]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("bad max_retries %q: %w", raw, err)
		}
		cc.maxRetries = n
	}
	if raw, ok := values["cooldown"]; ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("bad cooldown %q: %w", raw, err)
		}
		cc.cooldown = d
	}
	return nil
}

func (cc *clientContext) theBackendIssuesTokensValidFor(hours int) error {
	cc.backend.Handle("/api/v1/get_token", func(w http.ResponseWriter, r *http.Request) {
		n := cc.tokenSeq.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token": "tok-%d", "valid_thru": %d, "user_id": 1}`,
			n, time.Now().Add(time.Duration(hours)*time.Hour).Unix())
	})
	return nil
}

func (cc *clientContext) theBackendRejectsTheFirstIssuedToken() error {
	cc.rejectFirstToken = true
	return nil
}

func (cc *clientContext) theBalanceEndpointReturns(balance float64) error {
	cc.backend.Handle("/api/v1/check_balance", func(w http.ResponseWriter, r *http.Request) {
		if cc.rejectFirstToken && r.Header.Get("Authorization") == "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, "%g", balance)
	})
	return nil
}

func (cc *clientContext) theBalanceEndpointFailsWithStatus(status int) error {
	cc.backend.Handle("/api/v1/check_balance", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	return nil
}

func (cc *clientContext) theBackendIsUnreachable() error {
	cc.backend.Close()
	return nil
}

func (cc *clientContext) iHaveConfiguredCredentialsFor(email string) error {
	client, err := cc.ensureClient()
	if err != nil {
		return err
	}
	client.SetCredentials(email, "secret")
	return nil
}

func (cc *clientContext) iLogInAs(email string) error {
	client, err := cc.ensureClient()
	if err != nil {
		return err
	}
	_, cc.lastErr = client.Login(context.Background(), email, "secret")
	return nil
}

func (cc *clientContext) theLoginShouldSucceed() error {
	if cc.lastErr != nil {
		return fmt.Errorf("expected login to succeed, got: %v", cc.lastErr)
	}
	return nil
}

func (cc *clientContext) theClientShouldHoldAToken() error {
	if !cc.client.Authenticated() {
		return fmt.Errorf("expected client to hold a token")
	}
	return nil
}

func (cc *clientContext) iCheckMyBalance() error {
	client, err := cc.ensureClient()
	if err != nil {
		return err
	}
	cc.lastBalance, cc.lastErr = client.CheckBalance(context.Background())
	return nil
}

func (cc *clientContext) theBalanceShouldBe(expected float64) error {
	if cc.lastErr != nil {
		return fmt.Errorf("balance check failed: %v", cc.lastErr)
	}
	if cc.lastBalance != expected {
		return fmt.Errorf("expected balance %g, got %g", expected, cc.lastBalance)
	}
	return nil
}

func (cc *clientContext) theRequestShouldFailWithKind(kind string) error {
	if cc.lastErr == nil {
		return fmt.Errorf("expected a %s error, got success", kind)
	}
	var apiErr *shared.APIError
	if !errors.As(cc.lastErr, &apiErr) {
		return fmt.Errorf("expected an APIError, got: %v", cc.lastErr)
	}
	if apiErr.Kind.String() != kind {
		return fmt.Errorf("expected kind %q, got %q (%v)", kind, apiErr.Kind, apiErr)
	}
	return nil
}

func (cc *clientContext) theFailureShouldMentionAttempts(attempts int) error {
	if cc.lastErr == nil {
		return fmt.Errorf("expected a failure")
	}
	want := fmt.Sprintf("after %d attempts", attempts)
	if !strings.Contains(cc.lastErr.Error(), want) {
		return fmt.Errorf("expected error to mention %q, got: %v", want, cc.lastErr)
	}
	return nil
}

func (cc *clientContext) endpointCallCount(name string, expected int) error {
	paths := map[string]string{
		"balance": "/api/v1/check_balance",
		"login":   "/api/v1/get_token",
	}
	path, ok := paths[name]
	if !ok {
		return fmt.Errorf("unknown endpoint %q", name)
	}
	if got := cc.backend.Requests(path); got != expected {
		return fmt.Errorf("expected %d calls to %s, got %d", expected, path, got)
	}
	return nil
}

func (cc *clientContext) theCooldownWindowShouldBeOpen() error {
	if !cc.client.CooldownActive() {
		return fmt.Errorf("expected cooldown window to be open")
	}
	return nil
}

func (cc *clientContext) theCooldownWindowShouldBeClosed() error {
	if cc.client.CooldownActive() {
		return fmt.Errorf("expected cooldown window to be closed")
	}
	return nil
}

func (cc *clientContext) secondsPass(seconds int) error {
	cc.clock.Advance(time.Duration(seconds) * time.Second)
	return nil
}

// InitializeClientScenario registers authentication, retry and cooldown
// steps
func InitializeClientScenario(sc *godog.ScenarioContext) {
	cc := &clientContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		cc.reset()
		currentClient = cc
		return ctx, nil
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		cc.teardown()
		return ctx, nil
	})

	sc.Step(`^a running NS Gifts backend$`, cc.aRunningBackend)
	sc.Step(`^a client configured with:$`, cc.aClientConfiguredWith)
	sc.Step(`^the backend issues tokens valid for (\d+) hours?$`, cc.theBackendIssuesTokensValidFor)
	sc.Step(`^the backend rejects the first issued token$`, cc.theBackendRejectsTheFirstIssuedToken)
	sc.Step(`^the balance endpoint returns (\d+(?:\.\d+)?)$`, cc.theBalanceEndpointReturns)
	sc.Step(`^the balance endpoint fails with status (\d+)$`, cc.theBalanceEndpointFailsWithStatus)
	sc.Step(`^the backend is unreachable$`, cc.theBackendIsUnreachable)
	sc.Step(`^I have configured credentials for "([^"]*)"$`, cc.iHaveConfiguredCredentialsFor)
	sc.Step(`^I log in as "([^"]*)"$`, cc.iLogInAs)
	sc.Step(`^the login should succeed$`, cc.theLoginShouldSucceed)
	sc.Step(`^the client should hold a token$`, cc.theClientShouldHoldAToken)
	sc.Step(`^I check my balance(?: without logging in)?$`, cc.iCheckMyBalance)
	sc.Step(`^the balance should be (\d+(?:\.\d+)?)$`, cc.theBalanceShouldBe)
	sc.Step(`^the request should fail with kind "([^"]*)"$`, cc.theRequestShouldFailWithKind)
	sc.Step(`^the failure should mention (\d+) attempts$`, cc.theFailureShouldMentionAttempts)
	sc.Step(`^the (balance|login) endpoint should have been called (\d+) times?$`, cc.endpointCallCount)
	sc.Step(`^the cooldown window should be open$`, cc.theCooldownWindowShouldBeOpen)
	sc.Step(`^the cooldown window should be closed$`, cc.theCooldownWindowShouldBeClosed)
	sc.Step(`^(\d+) seconds pass$`, cc.secondsPass)
}
