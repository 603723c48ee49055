// Package bot implements the interactive chat surface: slash commands,
// inline keyboard callbacks, and the per-user version-update notice.
package bot

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"kinowatch/internal/cache"
	"kinowatch/internal/config"
	"kinowatch/internal/i18n"
	"kinowatch/internal/metrics"
	"kinowatch/internal/models"
	"kinowatch/internal/scrapers"
	"kinowatch/internal/services/telegram"
)

// BotVersion is announced to returning users whose stored version differs.
// Records without a stored version carry the "0.0.0" sentinel and get the
// notice too.
const BotVersion = "1.1.0"

// API is the outbound Telegram surface the bot needs.
type API interface {
	SendMessage(ctx context.Context, chatID int64, text string, opts *telegram.MessageOptions) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts *telegram.MessageOptions) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID string) error
	SetMyCommands(ctx context.Context, commands []telegram.BotCommand, languageCode string) error
}

// Bot routes incoming updates to command and callback handlers.
type Bot struct {
	db       *models.Database
	api      API
	cache    *cache.ProgramCache
	registry *scrapers.Registry
	cfg      *config.Config
	logger   *logrus.Logger
}

// New creates a bot.
func New(db *models.Database, api API, c *cache.ProgramCache, registry *scrapers.Registry, cfg *config.Config, logger *logrus.Logger) *Bot {
	return &Bot{
		db:       db,
		api:      api,
		cache:    c,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}
}

// HandleUpdate processes one incoming update. Handler errors are logged, not
// returned: the webhook must always acknowledge to stop Telegram redelivery.
func (b *Bot) HandleUpdate(ctx context.Context, update telegram.Update) {
	switch {
	case update.CallbackQuery != nil:
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			b.logger.WithError(err).WithField("data", update.CallbackQuery.Data).Error("Callback handler failed")
		}
	case update.Message != nil && update.Message.Text != "":
		if err := b.handleMessage(ctx, update.Message); err != nil {
			b.logger.WithError(err).WithField("chat_id", update.Message.Chat.ID).Error("Message handler failed")
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) error {
	chatID := msg.Chat.ID
	locale := b.localeFor(chatID)

	b.maybeSendVersionNotice(ctx, chatID, locale)

	command := commandName(msg.Text)
	if command == "" {
		return nil
	}
	metrics.CommandsHandled.WithLabelValues(command).Inc()

	b.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"command": command,
	}).Info("Handling command")

	switch command {
	case "/start":
		return b.handleStart(ctx, msg, locale)
	case "/stop":
		return b.handleStop(ctx, chatID, locale)
	case "/status":
		return b.handleStatus(ctx, chatID, locale)
	case "/language":
		return b.handleLanguage(ctx, chatID, locale)
	case "/films":
		return b.sendFilmList(ctx, chatID, locale, models.DefaultSourceID)
	case "/sources":
		return b.handleSources(ctx, chatID, locale)
	case "/broadcast":
		return b.handleBroadcast(ctx, msg, locale)
	default:
		return b.send(ctx, chatID, i18n.Translate(locale, "unknown_command", nil))
	}
}

// commandName extracts the leading slash command, stripping any @botname
// suffix. Returns "" for plain text, which the bot ignores.
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	command := fields[0]
	if at := strings.Index(command, "@"); at != -1 {
		command = command[:at]
	}
	return command
}

// localeFor returns the chat's locale, falling back to the default on any
// store problem.
func (b *Bot) localeFor(chatID int64) string {
	locale, err := b.db.GetLanguage(chatID)
	if err != nil {
		return models.DefaultLanguage
	}
	return locale
}

// maybeSendVersionNotice tells a returning subscriber what changed since
// their last interaction. Failures only lose the notice, never the command.
func (b *Bot) maybeSendVersionNotice(ctx context.Context, chatID int64, locale string) {
	version, err := b.db.GetVersion(chatID)
	if err != nil || version == BotVersion {
		return
	}
	subscribed, err := b.db.IsSubscribed(chatID)
	if err != nil || !subscribed {
		return
	}

	text := i18n.Translate(locale, "version_update", map[string]string{"version": BotVersion})
	if err := b.send(ctx, chatID, text); err != nil {
		b.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to send version notice")
		return
	}
	if err := b.db.SetVersion(chatID, BotVersion); err != nil {
		b.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to store announced version")
	}
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) error {
	return b.api.SendMessage(ctx, chatID, text, &telegram.MessageOptions{ParseMode: "HTML"})
}

func (b *Bot) sendWithKeyboard(ctx context.Context, chatID int64, text string, keyboard *telegram.InlineKeyboardMarkup) error {
	return b.api.SendMessage(ctx, chatID, text, &telegram.MessageOptions{
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	})
}
