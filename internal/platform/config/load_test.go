package config_test

import (
	"testing"
	"time"

	"github.com/jsamuelsen11/commit-coordinator/internal/platform/config"
)

func TestLoad_LocalProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want \"text\"", cfg.Log.Format)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false for local")
	}
}

func TestLoad_ProdProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("prod")
	if err != nil {
		t.Fatalf("Load(\"prod\") error: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want \"json\"", cfg.Log.Format)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = false, want true for prod")
	}
	if cfg.Telemetry.Exporter != "otlp" {
		t.Errorf("Telemetry.Exporter = %q, want \"otlp\"", cfg.Telemetry.Exporter)
	}
	if cfg.Telemetry.Endpoint == "" {
		t.Error("Telemetry.Endpoint is empty, want non-empty for prod")
	}
}

func TestLoad_ProdProfileStore(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("prod")
	if err != nil {
		t.Fatalf("Load(\"prod\") error: %v", err)
	}

	if cfg.Store.Driver != config.DriverSQLite {
		t.Errorf("Store.Driver = %q, want %q", cfg.Store.Driver, config.DriverSQLite)
	}
	if !cfg.Store.CircuitBreaker.Enabled {
		t.Error("Store.CircuitBreaker.Enabled = false, want true for prod")
	}
	if cfg.Coordinator.ShutdownTimeout != 20*time.Second {
		t.Errorf("Coordinator.ShutdownTimeout = %v, want 20s", cfg.Coordinator.ShutdownTimeout)
	}
	if cfg.Server.CommitRateLimit.RequestsPerSecond != 20 || cfg.Server.CommitRateLimit.BurstSize != 40 {
		t.Errorf("Server.CommitRateLimit = %+v, want 20 rps burst 40", cfg.Server.CommitRateLimit)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080 inherited from base", cfg.Server.Port)
	}
}

func TestLoad_BaseConfigInheritance(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	// These come from base.yaml, not overridden by local.yaml.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want \"0.0.0.0\" (from base)", cfg.Server.Host)
	}
	if cfg.Coordinator.MaxChangedObjects != 100 {
		t.Errorf("Coordinator.MaxChangedObjects = %d, want 100 (from base)", cfg.Coordinator.MaxChangedObjects)
	}
	if cfg.Store.Driver != config.DriverMemory {
		t.Errorf("Store.Driver = %q, want %q (from base)", cfg.Store.Driver, config.DriverMemory)
	}
	if cfg.Store.CircuitBreaker.MaxFailures != 5 {
		t.Errorf("Store.CircuitBreaker.MaxFailures = %d, want 5 (from base)",
			cfg.Store.CircuitBreaker.MaxFailures)
	}
}

func TestLoad_EnvOverrideSimpleKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_PORT", "9090")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env override)", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrideSnakeCaseKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_READ_TIMEOUT", "15s")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := 15 * time.Second
	if cfg.Server.ReadTimeout != want {
		t.Errorf("Server.ReadTimeout = %v, want %v (env override)", cfg.Server.ReadTimeout, want)
	}
}

func TestLoad_EnvOverrideDeeplyNestedKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_STORE_CIRCUIT_BREAKER_MAX_FAILURES", "7")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Store.CircuitBreaker.MaxFailures != 7 {
		t.Errorf("Store.CircuitBreaker.MaxFailures = %d, want 7 (env override)", cfg.Store.CircuitBreaker.MaxFailures)
	}
}

func TestLoad_MissingProfile(t *testing.T) {
	t.Chdir("../../..")

	_, err := config.Load("nonexistent")
	if err == nil {
		t.Fatal("Load(\"nonexistent\") returned nil error, want error")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for port=0")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Log.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for invalid log level")
	}
}

func TestValidate_OtlpWithoutEndpoint(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Exporter = "otlp"
	cfg.Telemetry.Endpoint = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for otlp without endpoint")
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error for valid config: %v", err)
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: config.TelemetryConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
		Coordinator: config.CoordinatorConfig{
			MaxChangedObjects: 100,
			FlushConcurrency:  4,
			ShutdownTimeout:   30 * time.Second,
		},
		Store: config.StoreConfig{
			Driver:   config.DriverMemory,
			Affinity: "private",
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 1,
			},
		},
	}
}

func TestValidate_CoordinatorThreshold(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Coordinator.MaxChangedObjects = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for max_changed_objects=0")
	}
}

func TestValidate_Store(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown driver", func(c *config.Config) { c.Store.Driver = "postgres" }},
		{"sqlite without path", func(c *config.Config) { c.Store.Driver = config.DriverSQLite }},
		{"unknown affinity", func(c *config.Config) { c.Store.Affinity = "thread" }},
		{"confinement affinity", func(c *config.Config) { c.Store.Affinity = "confinement" }},
		{"breaker without failures", func(c *config.Config) {
			c.Store.CircuitBreaker.Enabled = true
			c.Store.CircuitBreaker.MaxFailures = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validBaseConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate() returned nil, want error")
			}
		})
	}
}

func TestValidate_CommitRateLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		limit   config.RateLimitConfig
		wantErr bool
	}{
		{"disabled", config.RateLimitConfig{}, false},
		{"enabled", config.RateLimitConfig{RequestsPerSecond: 2, BurstSize: 4}, false},
		{"negative rate", config.RateLimitConfig{RequestsPerSecond: -1}, true},
		{"no burst", config.RateLimitConfig{RequestsPerSecond: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validBaseConfig()
			cfg.Server.CommitRateLimit = tt.limit
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
