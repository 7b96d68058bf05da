package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Client defaults
	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = "https://api.ns.gifts"
	}
	if cfg.Client.MaxRetries == 0 {
		cfg.Client.MaxRetries = 3
	}
	if cfg.Client.Timeout == 0 {
		cfg.Client.Timeout = 30 * time.Second
	}
	if cfg.Client.Cooldown == 0 {
		cfg.Client.Cooldown = 5 * time.Minute
	}
	if cfg.Client.TokenRefreshBuffer == 0 {
		cfg.Client.TokenRefreshBuffer = 5 * time.Minute
	}
	if cfg.Client.RateLimit.Requests == 0 {
		cfg.Client.RateLimit.Requests = 10
	}
	if cfg.Client.RateLimit.Burst == 0 {
		cfg.Client.RateLimit.Burst = 10
	}

	// Database defaults (local journal)
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "nsgifts.db"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9190
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
