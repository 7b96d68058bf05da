package api

import (
	"context"
	"net/http"

	"github.com/lfyzer/nsgifts-go/internal/domain/account"
	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
)

// Login authenticates with email (or username) and password. The issued
// token is stored on the client and the credentials are retained so an
// expiring token can be refreshed silently.
func (c *Client) Login(ctx context.Context, email, password string) (*account.LoginResponse, error) {
	payload := account.LoginRequest{Email: email, Password: password}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	c.setCredentials(email, password)

	var resp account.LoginResponse
	if err := c.execute(ctx, http.MethodPost, endpointLogin, payload, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup creates a new account. The account is usable immediately: the
// response token is stored just like a login token.
func (c *Client) Signup(ctx context.Context, username, email, password string) (*account.SignupResponse, error) {
	payload := account.SignupRequest{Username: username, Email: email, Password: password}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	c.setCredentials(email, password)

	var resp account.SignupResponse
	if err := c.execute(ctx, http.MethodPost, endpointSignup, payload, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckBalance returns the current account balance
func (c *Client) CheckBalance(ctx context.Context) (float64, error) {
	var balance float64
	if err := c.authenticated(ctx, endpointBalance, nil, &balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// GetUserInfo returns the authenticated user's profile
func (c *Client) GetUserInfo(ctx context.Context) (*account.UserInfo, error) {
	var info account.UserInfo
	if err := c.authenticated(ctx, endpointUser, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
