package i18n

import "testing"

func TestValidateLocaleParity(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Locale tables out of sync: %v", err)
	}
}

func TestTranslateSubstitution(t *testing.T) {
	got := Translate(LocaleEN, "welcome_title", map[string]string{"name": "Ada"})
	want := "🎬 <b>Welcome, Ada!</b>"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTranslateUnknownLocaleFallsBack(t *testing.T) {
	got := Translate("fr", "unknown_source", nil)
	want := Translate(LocaleEN, "unknown_source", nil)
	if got != want {
		t.Errorf("Unknown locale should fall back to English, got %q", got)
	}
}

func TestTranslateUnknownKeyRendersKey(t *testing.T) {
	if got := Translate(LocaleEN, "no_such_key", nil); got != "no_such_key" {
		t.Errorf("Unknown key should render as itself, got %q", got)
	}
}

func TestMatchLocale(t *testing.T) {
	cases := map[string]string{
		"de":    LocaleDE,
		"de-AT": LocaleDE,
		"ru":    LocaleRU,
		"en-US": LocaleEN,
		"fr":    LocaleEN,
		"":      LocaleEN,
		"???":   LocaleEN,
	}
	for code, want := range cases {
		if got := MatchLocale(code); got != want {
			t.Errorf("MatchLocale(%q) = %q, want %q", code, got, want)
		}
	}
}
