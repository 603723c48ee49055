package i18n

// translations holds the per-locale message templates. The English table is
// the reference key set; Validate enforces parity for the other locales.
var translations = map[string]map[string]string{
	LocaleEN: {
		"choose_language":           "🌍 Choose language",
		"language_set":              "✅ Language set: English",
		"welcome_title":             "🎬 <b>Welcome, {name}!</b>",
		"welcome_desc":              "This bot monitors cinema programs in Nuremberg:\n• <b>Meisengeige</b> (Cinecitta)\n• <b>Kinderkino</b> (Filmhaus)",
		"capabilities":              "<b>Features:</b>",
		"capability_view":           "🎥 View current programs",
		"capability_new":            "✨ Notifications about new films",
		"capability_updates":        "🔄 Notifications about showtime changes",
		"capability_removed":        "❌ Notifications about removed films",
		"use_menu":                  "Use /sources to select notification sources.",
		"already_subscribed":        "👋 Hi {name}!\n\nYou are already subscribed to notifications.\n\nUse the command menu (☰) to manage your subscription.",
		"unsubscribed":              "👋 You have unsubscribed from notifications.\n\nYou can subscribe again anytime using /start.",
		"not_subscribed":            "You are not subscribed to notifications.\n\nUse /start to subscribe.",
		"status_inactive":           "❌ <b>Not Subscribed</b>\n\nYou are not receiving notifications.\n\nUse /start to subscribe.",
		"films_title":               "🎬 <b>Current {source} Program</b>\n\nTotal films: {count}\n\nClick on a film to see details:",
		"films_error":               "❌ Failed to load film list. Please try later.",
		"film_not_found":            "❌ Film not found.",
		"showtimes":                 "<b>Showtimes:</b>",
		"more_showtimes":            "... and {count} more showtimes",
		"back_to_list":              "◀️ Back to list",
		"unknown_command":           "Unknown command.\n\nUse the command menu (☰) to manage your subscription.",
		"broadcast_no_permission":   "❌ You don't have permission to send broadcasts.",
		"broadcast_usage":           "📢 Usage: /broadcast <message>\n\nWill send message to all subscribers.",
		"broadcast_sending":         "📤 Sending message to {count} subscribers...",
		"broadcast_success":         "✅ Message successfully sent to {success} out of {total} subscribers.",
		"broadcast_no_subscribers":  "📭 No subscribers to send message to.",
		"subscribed_to_source":      "✅ You subscribed to {source_name}!\n\nYou will receive updates for this cinema's program.",
		"already_subscribed_source": "ℹ️ You are already subscribed to {source_name}",
		"unsubscribed_from_source":  "✅ You unsubscribed from {source_name}",
		"not_subscribed_source":     "ℹ️ You are not subscribed to {source_name}",
		"unknown_source":            "❌ Unknown source",
		"status_active_multi":       "✅ <b>Active Subscriptions</b>",
		"status_subscribers":        "• {source_name} ({count} subscribers)",
		"use_sources_cmd":           "Use /sources to manage subscriptions",
		"sources_header":            "🎬 <b>Cinema Program Sources</b>",
		"version_update":            "🆕 <b>Bot updated to version {version}!</b>\n\nNew: subscribe to several cinemas at once — see /sources.",
		"update_header":             "🎬 <b>{source_name} Program Update</b>",
		"update_new_films":          "✨ <b>New Films ({count}):</b>",
		"update_updated_films":      "🔄 <b>Updated Films ({count}):</b>",
		"update_removed_films":      "❌ <b>Removed Films ({count}):</b>",
	},
	LocaleDE: {
		"choose_language":           "🌍 Sprache wählen",
		"language_set":              "✅ Sprache eingestellt: Deutsch",
		"welcome_title":             "🎬 <b>Willkommen, {name}!</b>",
		"welcome_desc":              "Dieser Bot überwacht die Programme der Kinos in Nürnberg:\n• <b>Meisengeige</b> (Cinecitta)\n• <b>Kinderkino</b> (Filmhaus)",
		"capabilities":              "<b>Funktionen:</b>",
		"capability_view":           "🎥 Aktuelle Programme anzeigen",
		"capability_new":            "✨ Benachrichtigungen über neue Filme",
		"capability_updates":        "🔄 Benachrichtigungen über Vorstellungsänderungen",
		"capability_removed":        "❌ Benachrichtigungen über entfernte Filme",
		"use_menu":                  "Verwenden Sie /sources zur Auswahl der Benachrichtigungsquellen.",
		"already_subscribed":        "👋 Hallo {name}!\n\nSie sind bereits für Benachrichtigungen angemeldet.\n\nVerwenden Sie das Befehlsmenü (☰) zur Verwaltung.",
		"unsubscribed":              "👋 Sie haben sich von Benachrichtigungen abgemeldet.\n\nSie können sich jederzeit mit /start wieder anmelden.",
		"not_subscribed":            "Sie sind nicht für Benachrichtigungen angemeldet.\n\nVerwenden Sie /start zum Abonnieren.",
		"status_inactive":           "❌ <b>Nicht abonniert</b>\n\nSie erhalten keine Benachrichtigungen.\n\nVerwenden Sie /start zum Abonnieren.",
		"films_title":               "🎬 <b>Aktuelles {source}-Programm</b>\n\nFilme insgesamt: {count}\n\nKlicken Sie auf einen Film für Details:",
		"films_error":               "❌ Filmliste konnte nicht geladen werden. Bitte später versuchen.",
		"film_not_found":            "❌ Film nicht gefunden.",
		"showtimes":                 "<b>Vorstellungen:</b>",
		"more_showtimes":            "... und {count} weitere Vorstellungen",
		"back_to_list":              "◀️ Zurück zur Liste",
		"unknown_command":           "Unbekannter Befehl.\n\nVerwenden Sie das Befehlsmenü (☰) zur Verwaltung.",
		"broadcast_no_permission":   "❌ Sie haben keine Berechtigung zum Senden von Broadcasts.",
		"broadcast_usage":           "📢 Verwendung: /broadcast <Nachricht>\n\nSendet Nachricht an alle Abonnenten.",
		"broadcast_sending":         "📤 Sende Nachricht an {count} Abonnenten...",
		"broadcast_success":         "✅ Nachricht erfolgreich an {success} von {total} Abonnenten gesendet.",
		"broadcast_no_subscribers":  "📭 Keine Abonnenten vorhanden.",
		"subscribed_to_source":      "✅ Sie haben {source_name} abonniert!\n\nSie erhalten Updates zum Programm dieses Kinos.",
		"already_subscribed_source": "ℹ️ Sie haben {source_name} bereits abonniert",
		"unsubscribed_from_source":  "✅ Sie haben {source_name} abbestellt",
		"not_subscribed_source":     "ℹ️ Sie haben {source_name} nicht abonniert",
		"unknown_source":            "❌ Unbekannte Quelle",
		"status_active_multi":       "✅ <b>Aktive Abonnements</b>",
		"status_subscribers":        "• {source_name} ({count} Abonnenten)",
		"use_sources_cmd":           "Verwenden Sie /sources zur Verwaltung der Abonnements",
		"sources_header":            "🎬 <b>Kinoprogramm-Quellen</b>",
		"version_update":            "🆕 <b>Bot auf Version {version} aktualisiert!</b>\n\nNeu: mehrere Kinos gleichzeitig abonnieren — siehe /sources.",
		"update_header":             "🎬 <b>{source_name} Programm-Update</b>",
		"update_new_films":          "✨ <b>Neue Filme ({count}):</b>",
		"update_updated_films":      "🔄 <b>Aktualisierte Filme ({count}):</b>",
		"update_removed_films":      "❌ <b>Entfernte Filme ({count}):</b>",
	},
	LocaleRU: {
		"choose_language":           "🌍 Выберите язык",
		"language_set":              "✅ Язык установлен: Русский",
		"welcome_title":             "🎬 <b>Добро пожаловать, {name}!</b>",
		"welcome_desc":              "Этот бот следит за программами кинотеатров Нюрнберга:\n• <b>Meisengeige</b> (Cinecitta)\n• <b>Kinderkino</b> (Filmhaus)",
		"capabilities":              "<b>Возможности:</b>",
		"capability_view":           "🎥 Просмотр текущих программ",
		"capability_new":            "✨ Уведомления о новых фильмах",
		"capability_updates":        "🔄 Уведомления об изменениях сеансов",
		"capability_removed":        "❌ Уведомления об удалении фильмов",
		"use_menu":                  "Используйте /sources для выбора источников уведомлений.",
		"already_subscribed":        "👋 Привет, {name}!\n\nВы уже подписаны на уведомления.\n\nИспользуйте меню команд (☰) для управления подпиской.",
		"unsubscribed":              "👋 Вы отписались от уведомлений.\n\nВы можете подписаться снова в любое время используя команду /start.",
		"not_subscribed":            "Вы не подписаны на уведомления.\n\nИспользуйте команду /start для подписки.",
		"status_inactive":           "❌ <b>Не подписаны</b>\n\nВы не получаете уведомления.\n\nИспользуйте команду /start для подписки.",
		"films_title":               "🎬 <b>Текущая программа {source}</b>\n\nВсего фильмов: {count}\n\nНажмите на фильм чтобы увидеть детали:",
		"films_error":               "❌ Не удалось загрузить список фильмов. Попробуйте позже.",
		"film_not_found":            "❌ Фильм не найден.",
		"showtimes":                 "<b>Сеансы:</b>",
		"more_showtimes":            "... и еще {count} сеансов",
		"back_to_list":              "◀️ Вернуться к списку",
		"unknown_command":           "Неизвестная команда.\n\nИспользуйте меню команд (☰) для управления подпиской.",
		"broadcast_no_permission":   "❌ У вас нет прав для отправки рассылок.",
		"broadcast_usage":           "📢 Использование: /broadcast <сообщение>\n\nОтправит сообщение всем подписчикам.",
		"broadcast_sending":         "📤 Отправка сообщения {count} подписчикам...",
		"broadcast_success":         "✅ Сообщение успешно отправлено {success} из {total} подписчиков.",
		"broadcast_no_subscribers":  "📭 Нет подписчиков для рассылки.",
		"subscribed_to_source":      "✅ Вы подписались на {source_name}!\n\nВы будете получать обновления программы этого кинотеатра.",
		"already_subscribed_source": "ℹ️ Вы уже подписаны на {source_name}",
		"unsubscribed_from_source":  "✅ Вы отписались от {source_name}",
		"not_subscribed_source":     "ℹ️ Вы не подписаны на {source_name}",
		"unknown_source":            "❌ Неизвестный источник",
		"status_active_multi":       "✅ <b>Активные подписки</b>",
		"status_subscribers":        "• {source_name} ({count} подписчиков)",
		"use_sources_cmd":           "Используйте /sources для управления подписками",
		"sources_header":            "🎬 <b>Источники программ кинотеатров</b>",
		"version_update":            "🆕 <b>Бот обновлен до версии {version}!</b>\n\nНовое: подписка сразу на несколько кинотеатров — см. /sources.",
		"update_header":             "🎬 <b>Обновление программы {source_name}</b>",
		"update_new_films":          "✨ <b>Новые фильмы ({count}):</b>",
		"update_updated_films":      "🔄 <b>Обновленные фильмы ({count}):</b>",
		"update_removed_films":      "❌ <b>Удаленные фильмы ({count}):</b>",
	},
}
