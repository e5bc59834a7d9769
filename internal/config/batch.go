package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvBatchWorkers       = "ACUITY_BATCH_WORKERS"
	EnvBatchLimit         = "ACUITY_BATCH_LIMIT"
	EnvBatchOrderTimeout  = "ACUITY_BATCH_ORDER_TIMEOUT"
	EnvBatchSweepInterval = "ACUITY_BATCH_SWEEP_INTERVAL"
)

// BatchConfig holds the batch sweep parameters: worker pool size, per-run
// order limit, per-order hard timeout, and the sweeper interval.
type BatchConfig struct {
	Workers       int    `toml:"workers"`
	Limit         int    `toml:"limit"`
	OrderTimeout  string `toml:"order_timeout"`
	SweepInterval string `toml:"sweep_interval"`
}

// OrderTimeoutDuration returns OrderTimeout as a time.Duration.
func (c *BatchConfig) OrderTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.OrderTimeout)
	return d
}

// SweepIntervalDuration returns SweepInterval as a time.Duration.
func (c *BatchConfig) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
}

// Finalize applies defaults, environment variable overrides, and
// validation.
func (c *BatchConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *BatchConfig) Merge(overlay *BatchConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.Limit != 0 {
		c.Limit = overlay.Limit
	}
	if overlay.OrderTimeout != "" {
		c.OrderTimeout = overlay.OrderTimeout
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
}

func (c *BatchConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.Limit == 0 {
		c.Limit = 100
	}
	if c.OrderTimeout == "" {
		c.OrderTimeout = "10s"
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "1m"
	}
}

func (c *BatchConfig) loadEnv() {
	if v := os.Getenv(EnvBatchWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvBatchLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Limit = n
		}
	}
	if v := os.Getenv(EnvBatchOrderTimeout); v != "" {
		c.OrderTimeout = v
	}
	if v := os.Getenv(EnvBatchSweepInterval); v != "" {
		c.SweepInterval = v
	}
}

func (c *BatchConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.Limit < 1 {
		return fmt.Errorf("limit must be positive")
	}
	if _, err := time.ParseDuration(c.OrderTimeout); err != nil {
		return fmt.Errorf("invalid order_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.SweepInterval); err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	return nil
}
