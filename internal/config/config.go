// Package config loads and finalizes the Acuity service configuration.
// Values come from config.toml, an optional per-environment overlay
// (config.<env>.toml), and ACUITY_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/acuity-lab/acuity/pkg/database"
	"github.com/acuity-lab/acuity/pkg/pagination"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvAcuityEnv             = "ACUITY_ENV"
	EnvAcuityShutdownTimeout = "ACUITY_SHUTDOWN_TIMEOUT"
	EnvAcuityVersion         = "ACUITY_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "ACUITY_DB_HOST",
	Port:            "ACUITY_DB_PORT",
	Name:            "ACUITY_DB_NAME",
	User:            "ACUITY_DB_USER",
	Password:        "ACUITY_DB_PASSWORD",
	SSLMode:         "ACUITY_DB_SSL_MODE",
	MaxOpenConns:    "ACUITY_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "ACUITY_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "ACUITY_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "ACUITY_DB_CONN_TIMEOUT",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "ACUITY_PAGE_SIZE_DEFAULT",
	MaxPageSize:     "ACUITY_PAGE_SIZE_MAX",
}

// Config is the root configuration for the Acuity service.
type Config struct {
	Database        database.Config   `toml:"database"`
	Validation      ValidationConfig  `toml:"validation"`
	Batch           BatchConfig       `toml:"batch"`
	Pagination      pagination.Config `toml:"pagination"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the ACUITY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvAcuityEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment
// overlay, and finalizes all values. If no config.toml exists, defaults
// and environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Database.Merge(&overlay.Database)
	c.Validation.Merge(&overlay.Validation)
	c.Batch.Merge(&overlay.Batch)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Validation.Finalize(); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	if err := c.Batch.Finalize(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvAcuityShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvAcuityVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvAcuityEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
