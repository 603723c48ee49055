// Package diff computes the change set between two successive program
// listings of the same source.
package diff

import "kinowatch/internal/models"

// Result is the classified delta between the previous snapshot and the
// current listing. New and Updated carry the current version of each record;
// Removed carries the previous version, since no current one exists. The
// order of the slices is unspecified.
type Result struct {
	New     []models.Film
	Removed []models.Film
	Updated []models.Film
}

// Empty reports whether the result carries no changes at all.
func (r Result) Empty() bool {
	return len(r.New) == 0 && len(r.Removed) == 0 && len(r.Updated) == 0
}

// Compare diffs the current listing against the previous snapshot. A nil
// previous snapshot means first run: every film is reported new, so a fresh
// source start is never silent.
//
// Films are matched by title only. Duplicate titles within one listing
// collapse last-write-wins during map construction; a retitled film is
// indistinguishable from a removal plus an addition.
func Compare(previous *models.ProgramSnapshot, current []models.Film) Result {
	if previous == nil {
		return Result{New: current}
	}

	oldFilms := byTitle(previous.Films)
	newFilms := byTitle(current)

	var result Result

	for title, film := range newFilms {
		if _, ok := oldFilms[title]; !ok {
			result.New = append(result.New, film)
		}
	}

	for title, film := range oldFilms {
		if _, ok := newFilms[title]; !ok {
			result.Removed = append(result.Removed, film)
		}
	}

	for title, newFilm := range newFilms {
		oldFilm, ok := oldFilms[title]
		if ok && filmChanged(oldFilm, newFilm) {
			result.Updated = append(result.Updated, newFilm)
		}
	}

	return result
}

func byTitle(films []models.Film) map[string]models.Film {
	m := make(map[string]models.Film, len(films))
	for _, film := range films {
		m[film.Title] = film
	}
	return m
}

// filmChanged is the change predicate for a title present in both listings:
// the description differs or the showtime set differs. Genres, FSK rating,
// duration, poster and film ID are not update-worthy; they are only carried
// along for display.
func filmChanged(oldFilm, newFilm models.Film) bool {
	if oldFilm.Description != newFilm.Description {
		return true
	}

	oldSet := oldFilm.ShowtimeSet()
	newSet := newFilm.ShowtimeSet()
	if len(oldSet) != len(newSet) {
		return true
	}
	for key := range oldSet {
		if _, ok := newSet[key]; !ok {
			return true
		}
	}
	return false
}
