package bot

import (
	"context"
	"strconv"
	"strings"

	"kinowatch/internal/i18n"
	"kinowatch/internal/models"
	"kinowatch/internal/services/telegram"
)

// handleCallback routes inline keyboard presses by their data prefix. The
// callback is always answered first so the client stops showing a spinner,
// even when the handler then fails.
func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) error {
	if err := b.api.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		b.logger.WithError(err).Warn("Failed to answer callback query")
	}

	chatID := cb.From.ID
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}
	locale := b.localeFor(chatID)
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "lang_"):
		return b.handleLanguagePicked(ctx, chatID, firstName(&cb.From), strings.TrimPrefix(data, "lang_"))
	case strings.HasPrefix(data, "changelang_"):
		return b.handleLanguageChanged(ctx, chatID, strings.TrimPrefix(data, "changelang_"))
	case strings.HasPrefix(data, "film_"):
		return b.handleFilmPicked(ctx, chatID, locale, strings.TrimPrefix(data, "film_"))
	case data == "back_to_list":
		return b.sendFilmList(ctx, chatID, locale, models.DefaultSourceID)
	case strings.HasPrefix(data, "sub:"):
		return b.handleSubscribe(ctx, chatID, locale, strings.TrimPrefix(data, "sub:"))
	case strings.HasPrefix(data, "unsub:"):
		return b.handleUnsubscribe(ctx, chatID, locale, strings.TrimPrefix(data, "unsub:"))
	default:
		b.logger.WithField("data", data).Warn("Unknown callback data")
		return nil
	}
}

// handleLanguagePicked finishes onboarding: store the language, confirm in
// it, then run the rest of /start.
func (b *Bot) handleLanguagePicked(ctx context.Context, chatID int64, name, locale string) error {
	if !i18n.IsSupported(locale) {
		return nil
	}
	if err := b.db.SetLanguage(chatID, locale); err != nil {
		return err
	}
	if err := b.send(ctx, chatID, i18n.Translate(locale, "language_set", nil)); err != nil {
		return err
	}
	return b.finishStart(ctx, chatID, name, locale)
}

func (b *Bot) handleLanguageChanged(ctx context.Context, chatID int64, locale string) error {
	if !i18n.IsSupported(locale) {
		return nil
	}
	if err := b.db.SetLanguage(chatID, locale); err != nil {
		return err
	}
	return b.send(ctx, chatID, i18n.Translate(locale, "language_set", nil))
}

func (b *Bot) handleFilmPicked(ctx context.Context, chatID int64, locale, rawIndex string) error {
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return b.send(ctx, chatID, i18n.Translate(locale, "film_not_found", nil))
	}
	return b.sendFilmDetail(ctx, chatID, locale, models.DefaultSourceID, index)
}

func (b *Bot) handleSubscribe(ctx context.Context, chatID int64, locale, sourceID string) error {
	if !b.registry.Has(sourceID) {
		return b.send(ctx, chatID, i18n.Translate(locale, "unknown_source", nil))
	}

	added, err := b.db.AddSubscription(chatID, sourceID)
	if err != nil {
		return err
	}

	params := map[string]string{"source_name": b.registry.DisplayName(sourceID)}
	if !added {
		return b.send(ctx, chatID, i18n.Translate(locale, "already_subscribed_source", params))
	}
	return b.send(ctx, chatID, i18n.Translate(locale, "subscribed_to_source", params))
}

func (b *Bot) handleUnsubscribe(ctx context.Context, chatID int64, locale, sourceID string) error {
	if !b.registry.Has(sourceID) {
		return b.send(ctx, chatID, i18n.Translate(locale, "unknown_source", nil))
	}

	removed, err := b.db.RemoveSubscription(chatID, sourceID)
	if err != nil {
		return err
	}

	params := map[string]string{"source_name": b.registry.DisplayName(sourceID)}
	if !removed {
		return b.send(ctx, chatID, i18n.Translate(locale, "not_subscribed_source", params))
	}
	return b.send(ctx, chatID, i18n.Translate(locale, "unsubscribed_from_source", params))
}
