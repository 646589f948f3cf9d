package config

const (
	defaultServerPort      = 8080
	defaultCommitBurstSize = 5

	defaultMaxChangedObjects = 100
	defaultFlushConcurrency  = 4

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"server.commit_rate_limit.requests_per_second": 0,
		"server.commit_rate_limit.burst_size":          defaultCommitBurstSize,

		"log.level":  "info",
		"log.format": "json",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "commitd",

		"coordinator.max_changed_objects": defaultMaxChangedObjects,
		"coordinator.flush_concurrency":   defaultFlushConcurrency,
		"coordinator.shutdown_timeout":    "30s",

		"store.driver":                          DriverMemory,
		"store.path":                            "",
		"store.affinity":                        "private",
		"store.circuit_breaker.enabled":         false,
		"store.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"store.circuit_breaker.timeout":         "30s",
		"store.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
	}
}
