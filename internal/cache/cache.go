// Package cache holds recently scraped programs so interactive commands do
// not hit the cinema pages on every tap.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"kinowatch/internal/models"
	"kinowatch/internal/scrapers"
)

type entry struct {
	films     []models.Film
	fetchedAt time.Time
}

// ProgramCache caches film listings per source with a TTL. Entries are kept
// past their TTL so a failed refresh can fall back to stale data; freshness
// is judged against the injected clock.
type ProgramCache struct {
	registry *scrapers.Registry
	backing  *gocache.Cache
	ttl      time.Duration
	now      func() time.Time
	logger   *logrus.Logger
}

// NewProgramCache creates a cache over the registry's sources.
func NewProgramCache(registry *scrapers.Registry, ttl time.Duration, logger *logrus.Logger) *ProgramCache {
	return &ProgramCache{
		registry: registry,
		// Expiry is decided by our own clock, not by go-cache, so stale
		// entries survive for the error fallback.
		backing: gocache.New(gocache.NoExpiration, 0),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// SetClock replaces the cache's notion of now. Intended for tests.
func (c *ProgramCache) SetClock(now func() time.Time) {
	c.now = now
}

// GetOrFetch returns the source's film listing, scraping only when the
// cached entry is missing or older than the TTL. When the scrape fails a
// stale entry is returned instead of the error.
func (c *ProgramCache) GetOrFetch(ctx context.Context, sourceID string) ([]models.Film, error) {
	var stale []models.Film
	if raw, ok := c.backing.Get(sourceID); ok {
		cached := raw.(entry)
		age := c.now().Sub(cached.fetchedAt)
		if age < c.ttl {
			c.logger.WithFields(logrus.Fields{
				"source": sourceID,
				"age":    age.Round(time.Second).String(),
			}).Debug("Serving cached program")
			return cached.films, nil
		}
		stale = cached.films
	}

	scraper, ok := c.registry.Get(sourceID)
	if !ok {
		return nil, fmt.Errorf("unknown source %q", sourceID)
	}

	films, err := scraper.Scrape(ctx)
	if err != nil {
		if stale != nil {
			c.logger.WithError(err).WithField("source", sourceID).Warn("Scrape failed, serving stale program")
			return stale, nil
		}
		return nil, fmt.Errorf("failed to fetch program for %s: %w", sourceID, err)
	}

	c.backing.Set(sourceID, entry{films: films, fetchedAt: c.now()}, gocache.NoExpiration)
	return films, nil
}

// Put stores a freshly scraped listing, resetting the entry's age. Used by
// the monitor so interactive commands reuse its scrape instead of repeating
// it.
func (c *ProgramCache) Put(sourceID string, films []models.Film) {
	c.backing.Set(sourceID, entry{films: films, fetchedAt: c.now()}, gocache.NoExpiration)
}
