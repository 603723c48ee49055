package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"kinowatch/internal/models"
	"kinowatch/internal/scrapers"
)

// fakeScraper counts scrapes and can be switched to failing.
type fakeScraper struct {
	films   []models.Film
	err     error
	scrapes int
}

func (f *fakeScraper) SourceID() string    { return "meisengeige" }
func (f *fakeScraper) DisplayName() string { return "Meisengeige" }
func (f *fakeScraper) URL() string         { return "https://example.com" }

func (f *fakeScraper) Scrape(ctx context.Context) ([]models.Film, error) {
	f.scrapes++
	if f.err != nil {
		return nil, f.err
	}
	return f.films, nil
}

func newTestCache(scraper *fakeScraper) (*ProgramCache, *time.Time) {
	registry := scrapers.NewRegistry()
	registry.Register(scraper)

	logger := logrus.New()
	c := NewProgramCache(registry, 5*time.Minute, logger)

	now := time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })
	return c, &now
}

func TestGetOrFetchCachesWithinTTL(t *testing.T) {
	scraper := &fakeScraper{films: []models.Film{{Title: "X"}}}
	c, now := newTestCache(scraper)
	ctx := context.Background()

	if _, err := c.GetOrFetch(ctx, "meisengeige"); err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}

	*now = now.Add(4 * time.Minute)
	films, err := c.GetOrFetch(ctx, "meisengeige")
	if err != nil {
		t.Fatalf("Cached fetch failed: %v", err)
	}
	if scraper.scrapes != 1 {
		t.Errorf("Expected 1 scrape within TTL, got %d", scraper.scrapes)
	}
	if len(films) != 1 || films[0].Title != "X" {
		t.Errorf("Unexpected films: %v", films)
	}
}

func TestGetOrFetchRefreshesAfterTTL(t *testing.T) {
	scraper := &fakeScraper{films: []models.Film{{Title: "X"}}}
	c, now := newTestCache(scraper)
	ctx := context.Background()

	if _, err := c.GetOrFetch(ctx, "meisengeige"); err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}

	*now = now.Add(6 * time.Minute)
	if _, err := c.GetOrFetch(ctx, "meisengeige"); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if scraper.scrapes != 2 {
		t.Errorf("Expected refresh after TTL, got %d scrapes", scraper.scrapes)
	}
}

func TestGetOrFetchFallsBackToStale(t *testing.T) {
	scraper := &fakeScraper{films: []models.Film{{Title: "X"}}}
	c, now := newTestCache(scraper)
	ctx := context.Background()

	if _, err := c.GetOrFetch(ctx, "meisengeige"); err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}

	*now = now.Add(10 * time.Minute)
	scraper.err = errors.New("connection refused")

	films, err := c.GetOrFetch(ctx, "meisengeige")
	if err != nil {
		t.Fatalf("Expected stale fallback, got error: %v", err)
	}
	if len(films) != 1 || films[0].Title != "X" {
		t.Errorf("Expected stale films, got %v", films)
	}
}

func TestGetOrFetchErrorWithoutStale(t *testing.T) {
	scraper := &fakeScraper{err: errors.New("connection refused")}
	c, _ := newTestCache(scraper)

	if _, err := c.GetOrFetch(context.Background(), "meisengeige"); err == nil {
		t.Error("Expected error when no stale data exists")
	}
}

func TestGetOrFetchUnknownSource(t *testing.T) {
	c, _ := newTestCache(&fakeScraper{})

	if _, err := c.GetOrFetch(context.Background(), "no-such-source"); err == nil {
		t.Error("Expected error for unknown source")
	}
}
