// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Log         LogConfig         `koanf:"log"`
	Telemetry   TelemetryConfig   `koanf:"telemetry"`
	Coordinator CoordinatorConfig `koanf:"coordinator"`
	Store       StoreConfig       `koanf:"store"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	CommitRateLimit RateLimitConfig `koanf:"commit_rate_limit"`
}

// RateLimitConfig holds token bucket settings. A zero RequestsPerSecond
// disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// CoordinatorConfig holds commit coordinator settings.
type CoordinatorConfig struct {
	// MaxChangedObjects is the pending change count at which a coalesced
	// commit is performed immediately instead of waiting for its round.
	MaxChangedObjects int `koanf:"max_changed_objects"`

	// FlushConcurrency bounds how many persistence contexts are committed
	// in parallel during the shutdown flush.
	FlushConcurrency int `koanf:"flush_concurrency"`

	// ShutdownTimeout bounds the whole graceful shutdown sequence.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig selects and configures the object graph backing the service.
type StoreConfig struct {
	Driver         string               `koanf:"driver"`
	Path           string               `koanf:"path"`
	Affinity       string               `koanf:"affinity"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	Enabled       bool          `koanf:"enabled"`
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)
