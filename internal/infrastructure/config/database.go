package config

import "time"

// DatabaseConfig holds order journal storage configuration
type DatabaseConfig struct {
	// Connection type: "sqlite" or "postgres"
	Type string `mapstructure:"type" validate:"required,oneof=sqlite postgres"`

	// Full connection URL (takes precedence over individual fields)
	URL string `mapstructure:"url"`

	// PostgreSQL connection fields (used if URL is empty)
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// SQLite file path (":memory:" for ephemeral)
	Path string `mapstructure:"path"`

	// Connection pool settings
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
