package scheduler

import (
	"context"
	"time"

	"github.com/slethware/atlas/internal/country/domain"
	"github.com/slethware/atlas/internal/refreshlock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config controls the periodic refresh loop.
type Config struct {
	Interval time.Duration
	LockTTL  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Interval: 6 * time.Hour,
		LockTTL:  10 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = defaults.Interval
	}
	if c.LockTTL <= 0 {
		c.LockTTL = defaults.LockTTL
	}
	return c
}

type Params struct {
	fx.In

	Log        *zap.Logger
	CountrySvc domain.Service
	Guard      refreshlock.Guard
	Config     Config `optional:"true"`
}

type Scheduler struct {
	log        *zap.Logger
	cfg        Config
	countrySvc domain.Service
	guard      refreshlock.Guard
}

func New(p Params) *Scheduler {
	return &Scheduler{
		log:        p.Log.Named("scheduler"),
		cfg:        p.Config.withDefaults(),
		countrySvc: p.CountrySvc,
		guard:      p.Guard,
	}
}

// RunForever refreshes once at startup, then on every interval tick until
// the context is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	s.log.Info("scheduler started", zap.Duration("interval", s.cfg.Interval))

	s.runOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes one guarded refresh. Overlapping runs are skipped rather
// than queued.
func (s *Scheduler) runOnce(ctx context.Context) {
	token, ok, err := s.guard.TryLock(ctx, refreshlock.RefreshKey, s.cfg.LockTTL)
	if err != nil {
		s.log.Warn("refresh lock unavailable", zap.Error(err))
		return
	}
	if !ok {
		s.log.Info("refresh already in progress, skipping run")
		return
	}
	defer func() {
		if err := s.guard.Release(ctx, refreshlock.RefreshKey, token); err != nil {
			s.log.Warn("refresh lock release failed", zap.Error(err))
		}
	}()

	result, err := s.countrySvc.Refresh(ctx)
	if err != nil {
		s.log.Error("scheduled refresh failed", zap.Error(err))
		return
	}
	s.log.Info("scheduled refresh finished",
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)
}
