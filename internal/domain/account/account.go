// Package account holds credential and token state plus the request and
// response shapes of the user endpoints.
package account

import "time"

// DefaultTokenLifetime is assumed when a login response carries no
// valid_thru timestamp.
const DefaultTokenLifetime = 5400 * time.Second

// Token is the in-memory bearer token state. It is never persisted; a new
// process starts with an empty token and logs in again.
type Token struct {
	// Value is the raw bearer token, empty until a login/signup succeeds
	Value string

	// ExpiresAt is the unix timestamp the token expires at (0 = never set)
	ExpiresAt int64
}

// Valid reports whether the token can still be used: it must be set and
// must not expire within the refresh buffer.
func (t Token) Valid(now time.Time, refreshBuffer time.Duration) bool {
	if t.Value == "" {
		return false
	}
	remaining := t.ExpiresAt - now.Unix()
	return remaining >= int64(refreshBuffer/time.Second)
}

// Credentials are retained in memory after login/signup so an expired
// token can be refreshed silently. Empty credentials at refresh time are
// a terminal authentication failure.
type Credentials struct {
	Email    string
	Password string
}

// Set reports whether both credential fields are present
func (c Credentials) Set() bool {
	return c.Email != "" && c.Password != ""
}

// LoginRequest is the payload of the get_token endpoint
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

// SignupRequest is the payload of the signup endpoint
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

// LoginResponse carries the issued token. ValidThru is unix seconds; a
// zero value means the server omitted it and the default lifetime applies.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ValidThru   int64  `json:"valid_thru"`
	UserID      int64  `json:"user_id"`
}

// SignupResponse carries the token issued for a freshly created account
type SignupResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserInfo is the user profile returned by the user endpoint
type UserInfo struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Login    string   `json:"login"`
	Rights   []string `json:"rights"`
	Balance  float64  `json:"balance"`
}
