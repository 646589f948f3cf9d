package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Telemetry.validate(),
		c.Coordinator.validate(),
		c.Store.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.CommitRateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("server.commit_rate_limit.requests_per_second must be >= 0, got %g",
			s.CommitRateLimit.RequestsPerSecond))
	}
	if s.CommitRateLimit.RequestsPerSecond > 0 && s.CommitRateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("server.commit_rate_limit.burst_size must be >= 1 when limiting, got %d",
			s.CommitRateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (c *CoordinatorConfig) validate() error {
	var errs []error

	if c.MaxChangedObjects < 1 {
		errs = append(errs, fmt.Errorf("coordinator.max_changed_objects must be >= 1, got %d", c.MaxChangedObjects))
	}
	if c.FlushConcurrency < 1 {
		errs = append(errs, fmt.Errorf("coordinator.flush_concurrency must be >= 1, got %d", c.FlushConcurrency))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("coordinator.shutdown_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (s *StoreConfig) validate() error {
	var errs []error

	switch s.Driver {
	case DriverMemory:
	case DriverSQLite:
		if s.Path == "" {
			errs = append(errs, errors.New("store.path must not be empty when driver is sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver must be one of: memory, sqlite; got %q", s.Driver))
	}

	// Confinement leaves the store unguarded, and the service mutates it
	// from every request goroutine.
	switch s.Affinity {
	case "private", "main":
		// Valid affinities.
	case "confinement":
		errs = append(errs, errors.New("store.affinity confinement cannot serve concurrent requests; use private or main"))
	default:
		errs = append(errs, fmt.Errorf("store.affinity must be one of: private, main; got %q", s.Affinity))
	}

	if s.CircuitBreaker.Enabled {
		if s.CircuitBreaker.MaxFailures < 1 {
			errs = append(errs, fmt.Errorf("store.circuit_breaker.max_failures must be >= 1, got %d",
				s.CircuitBreaker.MaxFailures))
		}
		if s.CircuitBreaker.Timeout <= 0 {
			errs = append(errs, errors.New("store.circuit_breaker.timeout must be positive"))
		}
	}

	return errors.Join(errs...)
}
