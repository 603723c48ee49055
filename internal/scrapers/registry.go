// Package scrapers turns cinema program web pages into film listings.
package scrapers

import (
	"context"

	"kinowatch/internal/models"
)

// Scraper produces the current film listing of one cinema source.
type Scraper interface {
	// SourceID returns the stable source identifier (e.g. "meisengeige").
	SourceID() string
	// DisplayName returns the human-readable source name.
	DisplayName() string
	// URL returns the program page URL.
	URL() string
	// Scrape fetches and parses the current program.
	Scrape(ctx context.Context) ([]models.Film, error)
}

// Registry holds the available cinema sources in registration order.
type Registry struct {
	order    []string
	scrapers map[string]Scraper
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{scrapers: make(map[string]Scraper)}
}

// Register adds a source. Registering the same source ID twice replaces the
// earlier scraper but keeps its position.
func (r *Registry) Register(s Scraper) {
	if _, ok := r.scrapers[s.SourceID()]; !ok {
		r.order = append(r.order, s.SourceID())
	}
	r.scrapers[s.SourceID()] = s
}

// Get returns the scraper for the source ID.
func (r *Registry) Get(sourceID string) (Scraper, bool) {
	s, ok := r.scrapers[sourceID]
	return s, ok
}

// Has reports whether the source is registered.
func (r *Registry) Has(sourceID string) bool {
	_, ok := r.scrapers[sourceID]
	return ok
}

// List returns all registered scrapers in registration order.
func (r *Registry) List() []Scraper {
	out := make([]Scraper, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.scrapers[id])
	}
	return out
}

// DisplayName returns the display name for a source ID, falling back to the
// ID itself for unregistered sources.
func (r *Registry) DisplayName(sourceID string) string {
	if s, ok := r.scrapers[sourceID]; ok {
		return s.DisplayName()
	}
	return sourceID
}
