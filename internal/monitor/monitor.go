// Package monitor runs the per-source monitoring cycle: scrape the current
// program, diff it against the stored snapshot, notify subscribers, persist.
package monitor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"kinowatch/internal/cache"
	"kinowatch/internal/diff"
	"kinowatch/internal/metrics"
	"kinowatch/internal/models"
	"kinowatch/internal/notifier"
	"kinowatch/internal/scrapers"
)

// Monitor orchestrates monitoring cycles over all registered sources.
type Monitor struct {
	db       *models.Database
	registry *scrapers.Registry
	notifier *notifier.Notifier
	cache    *cache.ProgramCache
	logger   *logrus.Logger
}

// NewMonitor creates a monitor.
func NewMonitor(db *models.Database, registry *scrapers.Registry, n *notifier.Notifier, c *cache.ProgramCache, logger *logrus.Logger) *Monitor {
	return &Monitor{
		db:       db,
		registry: registry,
		notifier: n,
		cache:    c,
		logger:   logger,
	}
}

// RunAll runs one monitoring cycle for every registered source, sequentially.
// A failing source is logged and skipped; the remaining sources still run.
func (m *Monitor) RunAll(ctx context.Context) {
	for _, scraper := range m.registry.List() {
		if err := m.RunSource(ctx, scraper.SourceID()); err != nil {
			m.logger.WithError(err).WithField("source", scraper.SourceID()).Error("Monitoring cycle failed")
		}
	}
}

// RunSource runs one monitoring cycle for a single source. The snapshot is
// persisted even when notification fails, so a delivery outage cannot cause
// the same changes to be re-announced forever. A persist failure is logged
// but does not fail the cycle.
func (m *Monitor) RunSource(ctx context.Context, sourceID string) error {
	scraper, ok := m.registry.Get(sourceID)
	if !ok {
		return fmt.Errorf("unknown source %q", sourceID)
	}

	log := m.logger.WithField("source", sourceID)
	log.Info("Starting monitoring cycle")

	films, err := scraper.Scrape(ctx)
	if err != nil {
		metrics.MonitorCycles.WithLabelValues(sourceID, "scrape_failed").Inc()
		return fmt.Errorf("failed to scrape %s: %w", sourceID, err)
	}
	metrics.FilmsListed.WithLabelValues(sourceID).Set(float64(len(films)))

	if m.cache != nil {
		m.cache.Put(sourceID, films)
	}

	previous, err := m.db.LoadSnapshot(sourceID)
	if err != nil {
		// Treat an unreadable snapshot as absent: the cycle proceeds and
		// overwrites it with fresh state.
		log.WithError(err).Warn("Failed to load previous snapshot, treating as first run")
		previous = nil
	}

	result := diff.Compare(previous, films)
	metrics.ChangesDetected.WithLabelValues(sourceID, "new").Add(float64(len(result.New)))
	metrics.ChangesDetected.WithLabelValues(sourceID, "updated").Add(float64(len(result.Updated)))
	metrics.ChangesDetected.WithLabelValues(sourceID, "removed").Add(float64(len(result.Removed)))

	if result.Empty() {
		log.WithField("films", len(films)).Info("No program changes")
	} else {
		log.WithFields(logrus.Fields{
			"films":   len(films),
			"new":     len(result.New),
			"updated": len(result.Updated),
			"removed": len(result.Removed),
		}).Info("Program changes detected")

		if stats, err := m.notifier.NotifyUpdate(ctx, sourceID, result); err != nil {
			log.WithError(err).Error("Failed to dispatch notifications")
		} else if stats.Recipients > 0 {
			log.WithFields(logrus.Fields{
				"delivered": stats.Delivered,
				"failed":    stats.Failed,
			}).Info("Notifications dispatched")
		}
	}

	if err := m.db.SaveSnapshot(sourceID, films); err != nil {
		metrics.MonitorCycles.WithLabelValues(sourceID, "persist_failed").Inc()
		log.WithError(err).Error("Failed to persist snapshot")
		return nil
	}

	metrics.MonitorCycles.WithLabelValues(sourceID, "ok").Inc()
	return nil
}
