// Package scheduler drives periodic monitoring cycles in serve mode.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"kinowatch/internal/monitor"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	monitor  *monitor.Monitor
	schedule string
	logger   *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(m *monitor.Monitor, schedule string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		monitor:  m,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the monitoring job and runs an initial cycle in the
// background, so a fresh deployment has snapshots before the first tick.
func (s *Scheduler) Start() error {
	s.logger.WithField("schedule", s.schedule).Info("Starting scheduler")

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runMonitor()
	})
	if err != nil {
		return fmt.Errorf("failed to add monitoring job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	go s.runMonitor()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runMonitor executes one monitoring cycle over all sources
func (s *Scheduler) runMonitor() {
	s.logger.Info("Running scheduled program check")
	s.monitor.RunAll(context.Background())
	s.logger.Info("Program check completed")
}
