package main

import (
	"context"
	"time"

	"github.com/acuity-lab/acuity/internal/config"
	"github.com/acuity-lab/acuity/internal/infrastructure"
	"github.com/acuity-lab/acuity/internal/orders"
	"github.com/acuity-lab/acuity/internal/validations"
)

// Sweeper periodically validates orders still awaiting a result. Each
// tick runs one bounded-concurrency batch; a failing order never aborts
// the sweep.
type Sweeper struct {
	infra       *infrastructure.Infrastructure
	validations validations.System
	interval    time.Duration
	limit       int
}

// NewSweeper assembles the sweeper from the application configuration.
func NewSweeper(cfg *config.Config) (*Sweeper, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	db := infra.Database.Connection()
	orderStore := orders.New(db, infra.Logger)

	system := validations.New(
		db,
		orderStore,
		validations.EngineConfig{
			Tolerances: cfg.Validation.Tolerances,
			Penalties:  cfg.Validation.Penalties,
		},
		cfg.Batch.OrderTimeoutDuration(),
		cfg.Batch.Workers,
		infra.Logger,
		cfg.Pagination,
	)

	infra.Logger.Info(
		"sweeper initialized",
		"version", cfg.Version,
		"env", cfg.Env(),
		"interval", cfg.Batch.SweepInterval,
		"limit", cfg.Batch.Limit,
		"workers", cfg.Batch.Workers,
	)

	return &Sweeper{
		infra:       infra,
		validations: system,
		interval:    cfg.Batch.SweepIntervalDuration(),
		limit:       cfg.Batch.Limit,
	}, nil
}

// Start brings up the infrastructure and launches the sweep loop once
// all subsystems report ready.
func (s *Sweeper) Start() error {
	s.infra.Logger.Info("starting sweeper")

	if err := s.infra.Start(); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
		s.run(s.infra.Lifecycle.Context())
	}()

	return nil
}

// Shutdown stops the sweep loop and closes the infrastructure within the
// given timeout.
func (s *Sweeper) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.infra.Logger.Info("sweep loop stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	stats, err := s.validations.ValidateBatch(ctx, s.limit)
	if err != nil {
		s.infra.Logger.Error("batch sweep failed", "error", err)
		return
	}

	if stats.Processed == 0 && stats.Errors == 0 {
		return
	}

	s.infra.Logger.Info("sweep finished",
		"processed", stats.Processed,
		"auto_approved", stats.AutoApproved,
		"needs_review", stats.NeedsReview,
		"errors", stats.Errors,
	)
}
