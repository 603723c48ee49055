// Package notifier turns diff results into per-subscriber notification
// deliveries.
package notifier

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"kinowatch/internal/diff"
	"kinowatch/internal/i18n"
	"kinowatch/internal/metrics"
	"kinowatch/internal/models"
	"kinowatch/internal/scrapers"
	"kinowatch/internal/services/telegram"
)

const (
	// maxFilmsPerSection bounds how many new/updated films are sent per
	// recipient; the rest are summarized by the header counts.
	maxFilmsPerSection = 10
	// maxShowtimesPerFilm bounds the showtime list in one film message.
	maxShowtimesPerFilm = 5
)

// Sender is the outbound messaging surface the notifier needs.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, opts *telegram.MessageOptions) error
}

// Stats summarizes one dispatch run.
type Stats struct {
	Recipients int
	Delivered  int
	Failed     int
}

// Notifier resolves subscribers and delivers update messages.
type Notifier struct {
	db       *models.Database
	sender   Sender
	registry *scrapers.Registry
	logger   *logrus.Logger
}

// NewNotifier creates a notifier.
func NewNotifier(db *models.Database, sender Sender, registry *scrapers.Registry, logger *logrus.Logger) *Notifier {
	return &Notifier{
		db:       db,
		sender:   sender,
		registry: registry,
		logger:   logger,
	}
}

// NotifyUpdate sends the diff result to every subscriber of the source. A
// failure for one recipient is counted and logged, never raised, and never
// blocks the remaining recipients. An empty subscriber list or an empty diff
// ends the run without network calls.
func (n *Notifier) NotifyUpdate(ctx context.Context, sourceID string, result diff.Result) (Stats, error) {
	var stats Stats

	if result.Empty() {
		return stats, nil
	}

	chatIDs, err := n.db.GetSubscribersForSource(sourceID)
	if err != nil {
		return stats, err
	}
	if len(chatIDs) == 0 {
		n.logger.WithField("source", sourceID).Debug("No subscribers, skipping notification")
		return stats, nil
	}

	stats.Recipients = len(chatIDs)

	for _, chatID := range chatIDs {
		if err := n.notifyRecipient(ctx, chatID, sourceID, result); err != nil {
			stats.Failed++
			metrics.NotificationsFailed.Inc()

			entry := n.logger.WithError(err).WithFields(logrus.Fields{
				"chat_id": chatID,
				"source":  sourceID,
			})
			if telegram.IsRecipientGone(err) {
				entry.Info("Recipient unreachable, skipping")
			} else {
				entry.Warn("Failed to deliver notification")
			}
			continue
		}
		stats.Delivered++
		metrics.NotificationsSent.Inc()
	}

	n.logger.WithFields(logrus.Fields{
		"source":    sourceID,
		"delivered": stats.Delivered,
		"failed":    stats.Failed,
	}).Info("Notification dispatch completed")

	return stats, nil
}

// notifyRecipient sends the full message sequence for one chat: summary
// header, new films, updated films, removed listing. The first send failure
// aborts the remaining messages for this chat only.
func (n *Notifier) notifyRecipient(ctx context.Context, chatID int64, sourceID string, result diff.Result) error {
	locale, err := n.db.GetLanguage(chatID)
	if err != nil {
		locale = models.DefaultLanguage
	}

	opts := &telegram.MessageOptions{ParseMode: "HTML"}

	header := formatHeader(locale, n.registry.DisplayName(sourceID), sourceURL(n.registry, sourceID), result)
	if err := n.sender.SendMessage(ctx, chatID, header, opts); err != nil {
		return err
	}

	for _, film := range capFilms(result.New, maxFilmsPerSection) {
		if err := n.sender.SendMessage(ctx, chatID, FormatFilm(locale, film, maxShowtimesPerFilm), opts); err != nil {
			return err
		}
	}

	for _, film := range capFilms(result.Updated, maxFilmsPerSection) {
		if err := n.sender.SendMessage(ctx, chatID, FormatFilm(locale, film, maxShowtimesPerFilm), opts); err != nil {
			return err
		}
	}

	if len(result.Removed) > 0 {
		if err := n.sender.SendMessage(ctx, chatID, formatRemoved(locale, result.Removed), opts); err != nil {
			return err
		}
	}

	return nil
}

func capFilms(films []models.Film, limit int) []models.Film {
	if len(films) > limit {
		return films[:limit]
	}
	return films
}

func sourceURL(registry *scrapers.Registry, sourceID string) string {
	if s, ok := registry.Get(sourceID); ok {
		return s.URL()
	}
	return ""
}

func itoa(n int) string { return strconv.Itoa(n) }

func formatHeader(locale, displayName, url string, result diff.Result) string {
	lines := []string{i18n.Translate(locale, "update_header", map[string]string{"source_name": displayName}), ""}

	if len(result.New) > 0 {
		lines = append(lines, i18n.Translate(locale, "update_new_films", map[string]string{"count": itoa(len(result.New))}))
	}
	if len(result.Updated) > 0 {
		lines = append(lines, i18n.Translate(locale, "update_updated_films", map[string]string{"count": itoa(len(result.Updated))}))
	}
	if len(result.Removed) > 0 {
		lines = append(lines, i18n.Translate(locale, "update_removed_films", map[string]string{"count": itoa(len(result.Removed))}))
	}
	if url != "" {
		lines = append(lines, "", "🔗 "+url)
	}

	return joinLines(lines)
}
