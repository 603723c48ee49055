package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"kinowatch/internal/i18n"
	"kinowatch/internal/services/telegram"
)

// handleStart asks first-time users for a language, then subscribes them to
// the default source. Returning subscribers just get a pointer to the menu.
// The picker prompt itself is rendered in the language the chat's Telegram
// client announces; the choice is only persisted once the user taps a button.
func (b *Bot) handleStart(ctx context.Context, msg *telegram.Message, locale string) error {
	chatID := msg.Chat.ID

	hasLanguage, err := b.db.HasLanguageSet(chatID)
	if err != nil {
		return err
	}
	if !hasLanguage {
		return b.sendLanguageKeyboard(ctx, chatID, i18n.MatchLocale(clientLanguage(msg.From)), "lang_")
	}

	return b.finishStart(ctx, chatID, firstName(msg.From), locale)
}

// finishStart completes the onboarding once a language is known.
func (b *Bot) finishStart(ctx context.Context, chatID int64, name, locale string) error {
	subscribed, err := b.db.IsSubscribed(chatID)
	if err != nil {
		return err
	}
	if subscribed {
		return b.send(ctx, chatID, i18n.Translate(locale, "already_subscribed", map[string]string{"name": name}))
	}

	if _, err := b.db.AddSubscriber(chatID); err != nil {
		return err
	}
	if err := b.db.SetVersion(chatID, BotVersion); err != nil {
		b.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to store announced version")
	}

	lines := []string{
		i18n.Translate(locale, "welcome_title", map[string]string{"name": name}),
		"",
		i18n.Translate(locale, "welcome_desc", nil),
		"",
		i18n.Translate(locale, "capabilities", nil),
		i18n.Translate(locale, "capability_view", nil),
		i18n.Translate(locale, "capability_new", nil),
		i18n.Translate(locale, "capability_updates", nil),
		i18n.Translate(locale, "capability_removed", nil),
		"",
		i18n.Translate(locale, "use_menu", nil),
	}
	return b.send(ctx, chatID, strings.Join(lines, "\n"))
}

func (b *Bot) handleStop(ctx context.Context, chatID int64, locale string) error {
	removed, err := b.db.RemoveSubscriber(chatID)
	if err != nil {
		return err
	}
	if !removed {
		return b.send(ctx, chatID, i18n.Translate(locale, "not_subscribed", nil))
	}
	return b.send(ctx, chatID, i18n.Translate(locale, "unsubscribed", nil))
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64, locale string) error {
	sources, err := b.db.GetUserSources(chatID)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return b.send(ctx, chatID, i18n.Translate(locale, "status_inactive", nil))
	}

	lines := []string{i18n.Translate(locale, "status_active_multi", nil), ""}
	for _, sourceID := range sources {
		count, err := b.db.GetSourceSubscriberCount(sourceID)
		if err != nil {
			return err
		}
		lines = append(lines, i18n.Translate(locale, "status_subscribers", map[string]string{
			"source_name": b.registry.DisplayName(sourceID),
			"count":       strconv.Itoa(count),
		}))
	}
	lines = append(lines, "", i18n.Translate(locale, "use_sources_cmd", nil))

	return b.send(ctx, chatID, strings.Join(lines, "\n"))
}

func (b *Bot) handleLanguage(ctx context.Context, chatID int64, locale string) error {
	return b.sendLanguageKeyboard(ctx, chatID, locale, "changelang_")
}

// sendLanguageKeyboard offers the supported languages. The callback prefix
// distinguishes onboarding ("lang_") from a later change ("changelang_").
func (b *Bot) sendLanguageKeyboard(ctx context.Context, chatID int64, locale, prefix string) error {
	keyboard := &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "🇬🇧 English", CallbackData: prefix + i18n.LocaleEN}},
			{{Text: "🇩🇪 Deutsch", CallbackData: prefix + i18n.LocaleDE}},
			{{Text: "🇷🇺 Русский", CallbackData: prefix + i18n.LocaleRU}},
		},
	}
	return b.sendWithKeyboard(ctx, chatID, i18n.Translate(locale, "choose_language", nil), keyboard)
}

func (b *Bot) handleSources(ctx context.Context, chatID int64, locale string) error {
	keyboard, err := b.sourcesKeyboard(chatID)
	if err != nil {
		return err
	}
	return b.sendWithKeyboard(ctx, chatID, i18n.Translate(locale, "sources_header", nil), keyboard)
}

// sourcesKeyboard renders one row per registered source, marking the chat's
// current subscriptions.
func (b *Bot) sourcesKeyboard(chatID int64) (*telegram.InlineKeyboardMarkup, error) {
	keyboard := &telegram.InlineKeyboardMarkup{}
	for _, scraper := range b.registry.List() {
		subscribed, err := b.db.IsSubscribedTo(chatID, scraper.SourceID())
		if err != nil {
			return nil, err
		}
		button := telegram.InlineKeyboardButton{
			Text:         "➕ " + scraper.DisplayName(),
			CallbackData: "sub:" + scraper.SourceID(),
		}
		if subscribed {
			button.Text = "✅ " + scraper.DisplayName()
			button.CallbackData = "unsub:" + scraper.SourceID()
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, []telegram.InlineKeyboardButton{button})
	}
	return keyboard, nil
}

func (b *Bot) handleBroadcast(ctx context.Context, msg *telegram.Message, locale string) error {
	chatID := msg.Chat.ID

	if !b.cfg.IsAdmin(chatID) {
		return b.send(ctx, chatID, i18n.Translate(locale, "broadcast_no_permission", nil))
	}

	var text string
	if parts := strings.SplitN(strings.TrimSpace(msg.Text), " ", 2); len(parts) == 2 {
		text = strings.TrimSpace(parts[1])
	}
	if text == "" {
		return b.send(ctx, chatID, i18n.Translate(locale, "broadcast_usage", nil))
	}

	chatIDs, err := b.db.GetAllSubscribers()
	if err != nil {
		return err
	}
	if len(chatIDs) == 0 {
		return b.send(ctx, chatID, i18n.Translate(locale, "broadcast_no_subscribers", nil))
	}

	if err := b.send(ctx, chatID, i18n.Translate(locale, "broadcast_sending", map[string]string{
		"count": strconv.Itoa(len(chatIDs)),
	})); err != nil {
		return err
	}

	delivered := 0
	for _, recipient := range chatIDs {
		if err := b.send(ctx, recipient, "📢 "+text); err != nil {
			b.logger.WithError(err).WithField("chat_id", recipient).Warn("Broadcast delivery failed")
			continue
		}
		delivered++
	}

	b.logger.WithFields(logrus.Fields{
		"delivered": delivered,
		"total":     len(chatIDs),
	}).Info("Broadcast completed")

	return b.send(ctx, chatID, i18n.Translate(locale, "broadcast_success", map[string]string{
		"success": strconv.Itoa(delivered),
		"total":   strconv.Itoa(len(chatIDs)),
	}))
}

func firstName(user *telegram.User) string {
	if user == nil || user.FirstName == "" {
		return "there"
	}
	return user.FirstName
}

func clientLanguage(user *telegram.User) string {
	if user == nil {
		return ""
	}
	return user.LanguageCode
}
