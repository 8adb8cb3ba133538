// Package config defines the typed YAML configuration file for neis. Command
// line flags and NEIS_* environment variables (handled by viper in the CLI)
// take precedence over file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/neisdata/neis/internal/dataset"
)

// Config is the top-level neis configuration file.
type Config struct {
	Server  ServerConfig     `yaml:"server"`
	Auth    AuthConfig       `yaml:"auth"`
	Dataset dataset.Manifest `yaml:"dataset"`
	Logging LoggingConfig    `yaml:"logging"`
}

// ServerConfig controls the HTTP server behavior.
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
	CORSOrigins     []string `yaml:"cors_origins"`
	RateLimitPerMin int      `yaml:"rate_limit_per_min"`
}

// AuthConfig controls token issuance and the operator secret.
type AuthConfig struct {
	TokenTTL    string `yaml:"token_ttl"`
	AdminSecret string `yaml:"admin_secret"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present: listen on
// 0.0.0.0:8080, open CORS, 30 minute tokens, CSV dataset under ./data.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: "30s",
			CORSOrigins:     []string{"*"},
		},
		Auth: AuthConfig{
			TokenTTL: "30m",
		},
		Dataset: dataset.DefaultManifest("data"),
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Dataset.Validate(); err != nil {
		return cfg, fmt.Errorf("config dataset: %w", err)
	}
	return cfg, nil
}

// TokenTTL parses the configured token lifetime, falling back to 30 minutes
// on empty or malformed values.
func (c Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.Auth.TokenTTL)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}

// ShutdownTimeout parses the graceful-shutdown window, defaulting to 30s.
func (c Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
