package bot

import (
	"context"
	"fmt"

	"kinowatch/internal/i18n"
	"kinowatch/internal/services/telegram"
)

// commandDescriptions holds the localized command menu entries. Not part of
// the i18n tables: the menu is installed once per language at startup, not
// rendered per chat.
var commandDescriptions = map[string]map[string]string{
	i18n.LocaleEN: {
		"start":    "Subscribe to notifications",
		"films":    "Show current program",
		"sources":  "Manage cinema subscriptions",
		"status":   "Show subscription status",
		"language": "Change language",
		"stop":     "Unsubscribe from notifications",
	},
	i18n.LocaleDE: {
		"start":    "Benachrichtigungen abonnieren",
		"films":    "Aktuelles Programm anzeigen",
		"sources":  "Kino-Abonnements verwalten",
		"status":   "Abonnement-Status anzeigen",
		"language": "Sprache ändern",
		"stop":     "Benachrichtigungen abbestellen",
	},
	i18n.LocaleRU: {
		"start":    "Подписаться на уведомления",
		"films":    "Показать текущую программу",
		"sources":  "Управление подписками на кинотеатры",
		"status":   "Статус подписки",
		"language": "Сменить язык",
		"stop":     "Отписаться от уведомлений",
	},
}

var menuOrder = []string{"start", "films", "sources", "status", "language", "stop"}

// SetupCommandMenus installs the command menu for every supported language
// plus the language-independent default.
func (b *Bot) SetupCommandMenus(ctx context.Context) error {
	if err := b.api.SetMyCommands(ctx, menuCommands(i18n.FallbackLocale), ""); err != nil {
		return fmt.Errorf("failed to set default command menu: %w", err)
	}
	for _, locale := range i18n.Locales() {
		if err := b.api.SetMyCommands(ctx, menuCommands(locale), locale); err != nil {
			return fmt.Errorf("failed to set %s command menu: %w", locale, err)
		}
	}
	return nil
}

func menuCommands(locale string) []telegram.BotCommand {
	descriptions, ok := commandDescriptions[locale]
	if !ok {
		descriptions = commandDescriptions[i18n.FallbackLocale]
	}
	commands := make([]telegram.BotCommand, 0, len(menuOrder))
	for _, name := range menuOrder {
		commands = append(commands, telegram.BotCommand{
			Command:     name,
			Description: descriptions[name],
		})
	}
	return commands
}
