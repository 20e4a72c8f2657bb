package config

import "time"

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Type     string     `mapstructure:"type" validate:"required,oneof=sqlite postgres"`
	Path     string     `mapstructure:"path"`
	URL      string     `mapstructure:"url"`
	Host     string     `mapstructure:"host"`
	Port     int        `mapstructure:"port" validate:"min=0,max=65535"`
	User     string     `mapstructure:"user"`
	Password string     `mapstructure:"password"`
	Name     string     `mapstructure:"name"`
	SSLMode  string     `mapstructure:"sslmode"`
	Pool     PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool settings (PostgreSQL only)
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open"`
	MaxIdle     int           `mapstructure:"max_idle"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
