package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/acuity-lab/acuity/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[database]
host = "localhost"
port = 5432
name = "acuity"
user = "acuity"
password = "acuity"
ssl_mode = "disable"

[validation.tolerances]
sphere = 0.12
cylinder = 0.12
axis = 2.0
add = 0.12
pd = 1.0

[batch]
workers = 4
limit = 100
order_timeout = "10s"
sweep_interval = "1m"

[pagination]
default_page_size = 25
max_page_size = 50
`

const minimalDB = "[database]\nname = \"acuity\"\nuser = \"acuity\"\n"

const overlayConfig = `
[database]
host = "prodhost"

[batch]
workers = 8
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("db host: got %s, want localhost", cfg.Database.Host)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("batch workers: got %d, want 4", cfg.Batch.Workers)
	}
	if cfg.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.Pagination.DefaultPageSize)
	}
	if cfg.Validation.Tolerances.Sphere != 0.12 {
		t.Errorf("sphere tolerance: got %v, want 0.12", cfg.Validation.Tolerances.Sphere)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv("ACUITY_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Batch.Workers != 8 {
		t.Errorf("batch workers: got %d, want 8 (from overlay)", cfg.Batch.Workers)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("ACUITY_VERSION", "2.0.0")
	t.Setenv("ACUITY_TOLERANCE_SPHERE", "0.25")
	t.Setenv("ACUITY_BATCH_WORKERS", "16")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Validation.Tolerances.Sphere != 0.25 {
		t.Errorf("sphere tolerance: got %v, want 0.25", cfg.Validation.Tolerances.Sphere)
	}
	if cfg.Batch.Workers != 16 {
		t.Errorf("batch workers: got %d, want 16", cfg.Batch.Workers)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("ACUITY_DB_NAME", "testdb")
	t.Setenv("ACUITY_DB_USER", "testuser")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Database.Name != "testdb" {
		t.Errorf("db name from env: got %s, want testdb", cfg.Database.Name)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("batch workers default: got %d, want 4", cfg.Batch.Workers)
	}
	if cfg.Validation.Tolerances.Axis != 2 {
		t.Errorf("axis tolerance default: got %v, want 2", cfg.Validation.Tolerances.Axis)
	}
	if cfg.Validation.Penalties.Critical != 15 {
		t.Errorf("critical penalty default: got %d, want 15", cfg.Validation.Penalties.Critical)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", "batch = {")
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestEnvDefault(t *testing.T) {
	cfg := &config.Config{}
	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}
}

func TestShutdownTimeoutDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if d := cfg.ShutdownTimeoutDuration(); d != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", d)
	}
	if d := cfg.Batch.OrderTimeoutDuration(); d != 10*time.Second {
		t.Errorf("order timeout: got %v, want 10s", d)
	}
	if d := cfg.Batch.SweepIntervalDuration(); d != time.Minute {
		t.Errorf("sweep interval: got %v, want 1m", d)
	}
}

func TestValidationRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name:    "negative tolerance",
			config:  minimalDB + "[validation.tolerances]\nsphere = -0.12\n",
			wantErr: "tolerance sphere must be positive",
		},
		{
			name:    "bad order timeout",
			config:  minimalDB + "[batch]\norder_timeout = \"soon\"\n",
			wantErr: "invalid order_timeout",
		},
		{
			name:    "baseline out of range",
			config:  minimalDB + "[validation.penalties]\ncomplexity_baseline = 250\n",
			wantErr: "complexity_baseline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "config.toml", tt.config)
			chdir(t, dir)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
