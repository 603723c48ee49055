package notifier

import (
	"strconv"
	"strings"

	"kinowatch/internal/i18n"
	"kinowatch/internal/models"
)

// FormatFilm renders one film as an HTML message: title, genre/duration
// line, then up to maxShowtimes showtimes with a "+N more" suffix when the
// list is cut.
func FormatFilm(locale string, film models.Film, maxShowtimes int) string {
	lines := []string{"• <b>" + film.Title + "</b>"}

	var info []string
	if len(film.Genres) > 0 {
		info = append(info, strings.Join(film.Genres, ", "))
	}
	if film.Duration != nil {
		info = append(info, strconv.Itoa(*film.Duration)+"min")
	}
	if len(info) > 0 {
		lines = append(lines, "  ("+strings.Join(info, ", ")+")")
	}

	shown := film.Showtimes
	if len(shown) > maxShowtimes {
		shown = shown[:maxShowtimes]
	}
	for _, st := range shown {
		lines = append(lines, "  📅 "+st.String())
	}
	if hidden := len(film.Showtimes) - len(shown); hidden > 0 {
		lines = append(lines, "  "+i18n.Translate(locale, "more_showtimes", map[string]string{"count": strconv.Itoa(hidden)}))
	}

	return joinLines(lines)
}

// formatRemoved renders the combined removed listing, untruncated: every
// disappeared title on its own line.
func formatRemoved(locale string, removed []models.Film) string {
	lines := []string{i18n.Translate(locale, "update_removed_films", map[string]string{"count": strconv.Itoa(len(removed))})}
	for _, film := range removed {
		lines = append(lines, "• "+film.Title)
	}
	return joinLines(lines)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
