package models

import "time"

// Showtime represents a single film showtime. The date is the display label
// scraped from the program page (e.g. "Mo.15.12") and is never parsed as a
// calendar date; two dates rendering the same label compare equal.
type Showtime struct {
	Date     string
	Time     string // "HH:MM"
	Room     string
	Language string // e.g. "OV", "OmU"; empty when not announced
}

// ShowtimeKey is the comparable identity of a showtime. Showtime sets are
// compared over these keys, order irrelevant.
type ShowtimeKey struct {
	Date     string
	Time     string
	Room     string
	Language string
}

// Key returns the comparable identity of the showtime.
func (s Showtime) Key() ShowtimeKey {
	return ShowtimeKey{Date: s.Date, Time: s.Time, Room: s.Room, Language: s.Language}
}

// String returns a human-readable representation.
func (s Showtime) String() string {
	out := s.Date + " " + s.Time + " - " + s.Room
	if s.Language != "" {
		out += " (" + s.Language + ")"
	}
	return out
}

// Film represents one film scraped from a cinema program page. Title is the
// identity key within a source; FilmID is an opaque page identifier used only
// for display routing.
type Film struct {
	Title       string
	Genres      []string
	FSKRating   string
	Duration    *int // minutes, nil when the page does not state one
	Description string
	PosterURL   string
	FilmID      string
	Showtimes   []Showtime
}

// ShowtimeSet returns the film's showtimes as a set of keys.
func (f Film) ShowtimeSet() map[ShowtimeKey]struct{} {
	set := make(map[ShowtimeKey]struct{}, len(f.Showtimes))
	for _, st := range f.Showtimes {
		set[st.Key()] = struct{}{}
	}
	return set
}

// ProgramSnapshot is the full film listing of one source captured at one
// point in time. At most one snapshot is persisted per source.
type ProgramSnapshot struct {
	SourceID  string
	Timestamp time.Time
	Films     []Film
}
