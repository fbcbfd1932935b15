package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const reloadTimeout = 30 * time.Second

// Reloader is the work the scheduler runs on each tick.
type Reloader interface {
	Reload(ctx context.Context) (*TableSnapshot, error)
}

// RefreshScheduler reloads the player table on a cron schedule so that
// out-of-band writes to storage reach readers and websocket subscribers.
type RefreshScheduler struct {
	reloader  Reloader
	schedule  string
	cron      *cron.Cron
	log       *logrus.Entry
	mu        sync.Mutex
	isRunning bool
}

func NewRefreshScheduler(reloader Reloader, schedule string) *RefreshScheduler {
	return &RefreshScheduler{
		reloader: reloader,
		schedule: schedule,
		log:      logger.WithComponent("refresh_scheduler"),
	}
}

// Start begins the scheduled reloads
func (s *RefreshScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresh scheduler is already running")
	}

	// A fresh cron per start, so a restart does not stack a second entry.
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.RunOnce); err != nil {
		return fmt.Errorf("failed to schedule table refresh %q: %w", s.schedule, err)
	}

	s.cron = c
	s.cron.Start()
	s.isRunning = true

	s.log.WithField("schedule", s.schedule).Info("Refresh scheduler started")
	return nil
}

// Stop halts the schedule and waits for a running reload to finish.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.log.Info("Refresh scheduler stopped")
}

func (s *RefreshScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// RunOnce performs a single reload.
func (s *RefreshScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	start := time.Now()
	snap, err := s.reloader.Reload(ctx)
	if err != nil {
		s.log.WithError(err).Error("Scheduled table refresh failed")
		return
	}

	s.log.WithFields(logrus.Fields{
		"version":  snap.Version,
		"rows":     len(snap.Players),
		"duration": time.Since(start).String(),
	}).Info("Scheduled table refresh completed")
}
