package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API listener configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	// MetricsAddress is the side listener for prometheus scrapes; empty
	// disables metrics serving.
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Environment variables
// override file values either way.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN not set (SCOREKEEPER_DATABASE_URL)")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS URL not set (SCOREKEEPER_NATS_URL)")
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SCOREKEEPER_DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("SCOREKEEPER_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("SCOREKEEPER_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("SCOREKEEPER_METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("SCOREKEEPER_ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("SCOREKEEPER_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
}
