package config

import "time"

// ClientConfig holds NS Gifts API client configuration
type ClientConfig struct {
	// Base URL for the NS Gifts API
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Credentials for automatic authentication (optional; the CLI can
	// also log in explicitly). Password is never written back to disk.
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`

	// Maximum attempts for transport-level failures
	MaxRetries int `mapstructure:"max_retries" validate:"min=0"`

	// Per-request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Fail-fast window after a server error
	Cooldown time.Duration `mapstructure:"cooldown" validate:"min=0"`

	// Refresh the token this long before it expires
	TokenRefreshBuffer time.Duration `mapstructure:"token_refresh_buffer" validate:"min=0"`

	// Client-side rate limiting
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds token-bucket settings for outgoing requests
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for the token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}
