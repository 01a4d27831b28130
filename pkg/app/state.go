// Package app holds the per-invocation session state shared by every command.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/config"
	"github.com/harrisonrobin/studydesk/pkg/metrics"
	"github.com/harrisonrobin/studydesk/pkg/storage"
	"github.com/harrisonrobin/studydesk/pkg/timer"
)

// State replaces process-wide globals: everything a command needs is
// reached through it.
type State struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    *storage.Store
	Location *time.Location
	Metrics  *metrics.Recorder
	Timer    *timer.Timer

	clock func() time.Time
}

// Open builds the state for one command, opening the configured storage.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*State, error) {
	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return New(cfg, logger, store, time.Now), nil
}

// New assembles a State from parts. clock is read through Now, which
// converts to the configured timezone.
func New(cfg *config.Config, logger *zap.Logger, store *storage.Store, clock func() time.Time) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Location: cfg.Location(),
		Metrics:  metrics.New(),
		Timer:    timer.New(),
		clock:    clock,
	}
}

// Now is the current time in the configured timezone.
func (s *State) Now() time.Time {
	return s.clock().In(s.Location)
}

// Close flushes metrics when a textfile is configured and closes storage.
func (s *State) Close() error {
	if path := s.Config.Metrics.Textfile; path != "" {
		s.Metrics.LastRun.Set(float64(s.Now().Unix()))
		if err := s.Metrics.WriteTextfile(path); err != nil {
			s.Logger.Warn("Could not write metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}
	return s.Store.Close()
}
