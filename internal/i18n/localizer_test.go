package i18n

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	l := New()

	testCases := []struct {
		accept   string
		expected language.Tag
	}{
		{"", language.English},
		{"tr", language.Turkish},
		{"tr-TR,tr;q=0.9,en;q=0.8", language.Turkish},
		{"de-AT", language.German},
		{"ru", language.Russian},
		{"fr-FR,de;q=0.5", language.German},
		{"ja", language.English},
		{"not a header;;", language.English},
	}

	for _, tc := range testCases {
		t.Run(tc.accept, func(t *testing.T) {
			assert.Equal(t, tc.expected, l.Match(tc.accept))
		})
	}
}

func TestT(t *testing.T) {
	l := New()

	assert.Equal(t, "Invalid access code.", l.T(language.English, KeyInvalidCode))
	assert.Equal(t, "Geçersiz erişim kodu.", l.T(language.Turkish, KeyInvalidCode))
	assert.Equal(t, "Ungültiger Zugangscode.", l.T(language.German, KeyInvalidCode))

	// Missing translations fall back to English.
	assert.Equal(t, l.T(language.English, KeyInvalidUsername), l.T(language.German, KeyInvalidUsername))

	assert.Equal(t, "Budget must be between 100 and 100000.", l.T(language.English, KeyInvalidBudget, "100", "100000"))
	assert.Equal(t, "no_such_key", l.T(language.English, "no_such_key"))
}

func TestEveryLanguageHasEveryPrompt(t *testing.T) {
	for _, lang := range []string{"en", "tr", "ru", "de"} {
		for _, key := range []string{KeyPromptSignIn, KeyPromptUpgradePro, KeyPromptUpgradeUltimate} {
			_, ok := messages[lang][key]
			assert.True(t, ok, "%s is missing %s", lang, key)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	l := New()

	assert.Equal(t, "1,234.50", l.FormatPrice(language.English, decimal.RequireFromString("1234.5")))
	assert.Equal(t, "1.234,50", l.FormatPrice(language.Turkish, decimal.RequireFromString("1234.5")))
	assert.Equal(t, "1.234,50", l.FormatPrice(language.German, decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.3812", l.FormatPrice(language.English, decimal.RequireFromString("0.38123")))
}
