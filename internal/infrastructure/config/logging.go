package config

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Output destination: stdout, stderr
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr"`

	// Include caller information (file:line)
	IncludeCaller bool `mapstructure:"include_caller"`
}

// MetricsConfig holds metrics exposure configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Host and Port for the Prometheus endpoint
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Path for the metrics endpoint (default: /metrics)
	Path string `mapstructure:"path"`
}
