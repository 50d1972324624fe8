package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguagesHaveSameKeys(t *testing.T) {
	for _, lang := range AvailableLanguages() {
		for key := range translations[EN] {
			_, ok := translations[lang][key]
			assert.True(t, ok, "%s: missing key %q", lang, key)
		}
		assert.Len(t, translations[lang], len(translations[EN]), "%s: extra keys", lang)
	}
}

func TestTFallbacks(t *testing.T) {
	defer SetLanguage(GetLanguage())

	SetLanguage(RU)
	assert.Equal(t, "Выход", T("menu_quit"))
	assert.Equal(t, "no_such_key", T("no_such_key"))

	SetLanguage("de")
	assert.Equal(t, RU, GetLanguage(), "unknown language must be ignored")

	SetLanguage(EN)
	assert.Equal(t, "Quit", T("menu_quit"))
}
