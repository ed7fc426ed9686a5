// Package config loads application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultModules are registered when the config file does not name any.
var DefaultModules = []string{"grammar", "sentiment", "voice", "completion"}

// Config holds all application configuration.
type Config struct {
	Server         ServerConfig              `yaml:"server"`
	Logging        LogConfig                 `yaml:"logging"`
	RateLimit      RateLimitConfig           `yaml:"rate_limit"`
	EnabledModules []string                  `yaml:"enabled_modules"`
	Modules        map[string]map[string]any `yaml:"modules"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host       string `yaml:"host" envconfig:"HOST"`
	Port       string `yaml:"port" envconfig:"PORT"`
	UploadsDir string `yaml:"uploads_dir" envconfig:"UPLOADS_DIR"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Development bool   `yaml:"development" envconfig:"LOG_DEV"`
}

// RateLimitConfig holds HTTP rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `yaml:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int  `yaml:"burst" envconfig:"RATE_LIMIT_BURST"`
	Enabled           bool `yaml:"enabled" envconfig:"RATE_LIMIT_ENABLED"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       "5000",
			UploadsDir: "uploads",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
		EnabledModules: append([]string(nil), DefaultModules...),
		Modules:        make(map[string]map[string]any),
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error: defaults plus
// environment are used, and the caller may want to log a warning via the
// returned found flag.
func Load(path string) (cfg *Config, found bool, err error) {
	cfg = Default()

	data, readErr := os.ReadFile(path)
	switch {
	case readErr == nil:
		found = true
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, true, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(readErr):
		// fall through to env-only config
	default:
		return nil, false, fmt.Errorf("reading config %s: %w", path, readErr)
	}

	if err := envconfig.Process("inkwell", cfg); err != nil {
		return nil, found, fmt.Errorf("applying env overrides: %w", err)
	}
	if cfg.Modules == nil {
		cfg.Modules = make(map[string]map[string]any)
	}
	return cfg, found, nil
}

// LoadEnvFiles loads dotenv-style credential files into the process
// environment. Missing files are skipped silently.
func LoadEnvFiles(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}
