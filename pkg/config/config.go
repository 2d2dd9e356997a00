package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/beaconhq/beacon/pkg/observability"
	"github.com/beaconhq/beacon/pkg/telemetry"
)

// Config holds telemetry bootstrap configuration
type Config struct {
	// Enabled turns the whole facade into a permanent no-op when false
	Enabled bool `yaml:"enabled"`

	// Environment forces the provider branch: "web", "native", or "auto"
	Environment string `yaml:"environment"`

	// Observability configuration
	Observability ObservabilityConfig `yaml:"observability"`

	// Providers configuration
	Providers ProvidersConfig `yaml:"providers"`
}

// ObservabilityConfig holds diagnostic settings for the facade itself
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// ProvidersConfig holds settings for the bundled provider adapters
type ProvidersConfig struct {
	OTel  OTelProviderConfig  `yaml:"otel"`
	Redis RedisProviderConfig `yaml:"redis"`
}

// OTelProviderConfig configures the OpenTelemetry span provider
type OTelProviderConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// RedisProviderConfig configures the Redis stream provider
type RedisProviderConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Addr        string        `yaml:"addr"`
	Stream      string        `yaml:"stream"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Enabled:     getEnvBool("BEACON_ENABLED", true),
		Environment: getEnv("BEACON_ENVIRONMENT", "auto"),
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("BEACON_LOG_LEVEL", "info"),
			MetricsEnabled: getEnvBool("BEACON_METRICS_ENABLED", false),
		},
		Providers: ProvidersConfig{
			OTel: OTelProviderConfig{
				Enabled:     getEnvBool("BEACON_OTEL_ENABLED", false),
				ServiceName: getEnv("BEACON_OTEL_SERVICE_NAME", "beacon"),
			},
			Redis: RedisProviderConfig{
				Enabled:     getEnvBool("BEACON_REDIS_ENABLED", false),
				Addr:        getEnv("BEACON_REDIS_ADDR", "localhost:6379"),
				Stream:      getEnv("BEACON_REDIS_STREAM", "beacon:events"),
				DialTimeout: getEnvDuration("BEACON_REDIS_DIAL_TIMEOUT", 5*time.Second),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile loads configuration from a YAML file, then validates it.
// Bootstrap glue for hosts that prefer a config file over env vars.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{
		Enabled:     true,
		Environment: "auto",
		Observability: ObservabilityConfig{
			LogLevel: "info",
		},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	switch c.Environment {
	case "auto", string(telemetry.EnvWeb), string(telemetry.EnvNative):
	default:
		return fmt.Errorf("invalid environment: %q (want auto, web, or native)", c.Environment)
	}

	if c.Providers.Redis.Enabled && c.Providers.Redis.Addr == "" {
		return fmt.Errorf("redis provider enabled but no address configured")
	}
	if c.Providers.Redis.Enabled && c.Providers.Redis.Stream == "" {
		return fmt.Errorf("redis provider enabled but no stream configured")
	}

	return nil
}

// LogLevel converts the configured level name
func (c *Config) LogLevel() observability.LogLevel {
	return observability.ParseLevel(c.Observability.LogLevel)
}

// DetectFunc builds the environment probe the initializer uses. A forced
// environment always wins; "auto" falls back to the host probe (native
// when none is supplied).
func (c *Config) DetectFunc(probe telemetry.EnvironmentFunc) telemetry.EnvironmentFunc {
	switch c.Environment {
	case string(telemetry.EnvWeb):
		return func() telemetry.Environment { return telemetry.EnvWeb }
	case string(telemetry.EnvNative):
		return func() telemetry.Environment { return telemetry.EnvNative }
	default:
		if probe != nil {
			return probe
		}
		return func() telemetry.Environment { return telemetry.EnvNative }
	}
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration retrieves a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
