package ui

import "testing"

func TestLocalizationSetLanguage(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		expected string
	}{
		{name: "russian", lang: LanguageRussian, expected: LanguageRussian},
		{name: "portuguese", lang: LanguagePortuguese, expected: LanguagePortuguese},
		{name: "system maps to english", lang: LanguageSystem, expected: LanguageEnglish},
		{name: "unknown keeps current", lang: "de", expected: LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalization()
			l.SetLanguage(tt.lang)
			if got := l.GetCurrentLanguage(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestLocalizationGetText(t *testing.T) {
	l := NewLocalization()
	if got := l.GetText(KeyUsage); got != "Usage: ytmp4 <URL> [output_directory]" {
		t.Errorf("unexpected usage text %q", got)
	}
	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("expected key fallback, got %q", got)
	}
}

func TestLocalizationComplete(t *testing.T) {
	l := NewLocalization()
	english := l.texts[LanguageEnglish]
	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !ok {
			t.Fatalf("no texts for %s", lang)
		}
		for key := range english {
			if _, ok := texts[key]; !ok {
				t.Errorf("%s is missing %s", lang, key)
			}
		}
	}
}

func TestLocalizationAvailableLanguages(t *testing.T) {
	languages := NewLocalization().GetAvailableLanguages()
	for _, lang := range []string{LanguageEnglish, LanguageRussian, LanguagePortuguese} {
		if languages[lang] == "" {
			t.Errorf("expected a display name for %s", lang)
		}
	}
	if _, ok := languages[LanguageSystem]; ok {
		t.Error("system is an alias, not a language")
	}
}
