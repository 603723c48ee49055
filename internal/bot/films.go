package bot

import (
	"context"
	"strconv"
	"strings"

	"kinowatch/internal/i18n"
	"kinowatch/internal/models"
	"kinowatch/internal/services/telegram"
)

const (
	// maxDetailShowtimes bounds the showtime list in a film detail view.
	maxDetailShowtimes = 10
	// maxCaptionDescription keeps the detail caption under Telegram's 1024
	// character photo caption limit.
	maxCaptionDescription = 600
)

// sendFilmList shows the current program as one button per film. Buttons
// carry the film's position in the cached listing.
func (b *Bot) sendFilmList(ctx context.Context, chatID int64, locale, sourceID string) error {
	films, err := b.cache.GetOrFetch(ctx, sourceID)
	if err != nil {
		b.logger.WithError(err).WithField("source", sourceID).Error("Failed to load program for film list")
		return b.send(ctx, chatID, i18n.Translate(locale, "films_error", nil))
	}

	text := i18n.Translate(locale, "films_title", map[string]string{
		"source": b.registry.DisplayName(sourceID),
		"count":  strconv.Itoa(len(films)),
	})

	keyboard := &telegram.InlineKeyboardMarkup{}
	for i, film := range films {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, []telegram.InlineKeyboardButton{{
			Text:         film.Title,
			CallbackData: "film_" + strconv.Itoa(i),
		}})
	}

	return b.sendWithKeyboard(ctx, chatID, text, keyboard)
}

// sendFilmDetail shows one film with poster, description and showtimes. The
// index refers to the cached listing; a refresh in between may shift it, in
// which case the user just gets the film-not-found reply and taps again.
func (b *Bot) sendFilmDetail(ctx context.Context, chatID int64, locale, sourceID string, index int) error {
	films, err := b.cache.GetOrFetch(ctx, sourceID)
	if err != nil {
		b.logger.WithError(err).WithField("source", sourceID).Error("Failed to load program for film detail")
		return b.send(ctx, chatID, i18n.Translate(locale, "films_error", nil))
	}
	if index < 0 || index >= len(films) {
		return b.send(ctx, chatID, i18n.Translate(locale, "film_not_found", nil))
	}
	film := films[index]

	caption := formatFilmDetail(locale, film)
	keyboard := &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: i18n.Translate(locale, "back_to_list", nil), CallbackData: "back_to_list"}},
		},
	}
	opts := &telegram.MessageOptions{ParseMode: "HTML", ReplyMarkup: keyboard}

	if film.PosterURL != "" {
		return b.api.SendPhoto(ctx, chatID, film.PosterURL, caption, opts)
	}
	return b.api.SendMessage(ctx, chatID, caption, opts)
}

func formatFilmDetail(locale string, film models.Film) string {
	lines := []string{"🎬 <b>" + film.Title + "</b>"}

	var info []string
	if len(film.Genres) > 0 {
		info = append(info, strings.Join(film.Genres, ", "))
	}
	if film.FSKRating != "" {
		info = append(info, "FSK "+film.FSKRating)
	}
	if film.Duration != nil {
		info = append(info, strconv.Itoa(*film.Duration)+"min")
	}
	if len(info) > 0 {
		lines = append(lines, strings.Join(info, " | "))
	}

	if film.Description != "" {
		lines = append(lines, "", truncate(film.Description, maxCaptionDescription))
	}

	if len(film.Showtimes) > 0 {
		lines = append(lines, "", i18n.Translate(locale, "showtimes", nil))
		shown := film.Showtimes
		if len(shown) > maxDetailShowtimes {
			shown = shown[:maxDetailShowtimes]
		}
		for _, st := range shown {
			lines = append(lines, "📅 "+st.String())
		}
		if hidden := len(film.Showtimes) - len(shown); hidden > 0 {
			lines = append(lines, i18n.Translate(locale, "more_showtimes", map[string]string{
				"count": strconv.Itoa(hidden),
			}))
		}
	}

	return strings.Join(lines, "\n")
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
