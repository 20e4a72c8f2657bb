package config

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error"`
	// Format is "console" for human-readable output or "json" for
	// structured logs.
	Format string `mapstructure:"format" validate:"omitempty,oneof=console json"`
}

// ServerConfig holds settings for the REST server used by the editor UI
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// MetricsConfig holds Prometheus metrics settings
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
