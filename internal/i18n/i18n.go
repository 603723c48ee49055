// Package i18n holds the bot's localized message templates. Templates use
// {name}-style placeholders filled by Translate.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Supported locales.
const (
	LocaleEN = "en"
	LocaleDE = "de"
	LocaleRU = "ru"
)

// FallbackLocale is used when a chat's locale is unknown or unsupported.
const FallbackLocale = LocaleEN

var matcher = language.NewMatcher([]language.Tag{
	language.English, // fallback, must come first
	language.German,
	language.Russian,
})

var localeTags = map[int]string{
	0: LocaleEN,
	1: LocaleDE,
	2: LocaleRU,
}

// Locales returns the supported locale codes.
func Locales() []string {
	return []string{LocaleEN, LocaleDE, LocaleRU}
}

// IsSupported reports whether the locale code is one the bot can speak.
func IsSupported(locale string) bool {
	switch locale {
	case LocaleEN, LocaleDE, LocaleRU:
		return true
	}
	return false
}

// MatchLocale maps a Telegram language_code (BCP 47-ish, e.g. "de-AT") to a
// supported locale, falling back to English.
func MatchLocale(code string) string {
	if code == "" {
		return FallbackLocale
	}
	tag, err := language.Parse(code)
	if err != nil {
		return FallbackLocale
	}
	_, index, _ := matcher.Match(tag)
	return localeTags[index]
}

// Translate renders the template for key in the given locale, substituting
// {placeholder} params. Unknown locales fall back to English; an unknown key
// renders as the key itself so a missing entry is visible, not fatal.
func Translate(locale, key string, params map[string]string) string {
	table, ok := translations[locale]
	if !ok {
		table = translations[FallbackLocale]
	}
	text, ok := table[key]
	if !ok {
		text = key
	}
	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

// Validate checks that every locale carries exactly the English key set. Run
// at startup so a half-translated table is caught before it reaches a user.
func Validate() error {
	reference := translations[FallbackLocale]
	for locale, table := range translations {
		if locale == FallbackLocale {
			continue
		}
		for key := range reference {
			if _, ok := table[key]; !ok {
				return fmt.Errorf("locale %q is missing key %q", locale, key)
			}
		}
		for key := range table {
			if _, ok := reference[key]; !ok {
				return fmt.Errorf("locale %q has extra key %q", locale, key)
			}
		}
	}
	return nil
}
