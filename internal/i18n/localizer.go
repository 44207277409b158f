// Package i18n negotiates the display language and formats messages and
// prices for it. English is the fallback for any missing translation.
package i18n

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Supported lists the display languages, fallback first.
var Supported = []language.Tag{language.English, language.Turkish, language.Russian, language.German}

// Localizer resolves message keys per language.
type Localizer struct {
	matcher language.Matcher
	catalog *catalog.Builder
}

// New builds a localizer over the bundled messages.
func New() *Localizer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	fallback := messages["en"]
	for _, tag := range Supported {
		base, _ := tag.Base()
		translated := messages[base.String()]
		for key, msg := range fallback {
			if t, ok := translated[key]; ok {
				msg = t
			}
			// Keys are constants and messages are static, so SetString cannot fail.
			_ = b.SetString(tag, key, msg)
		}
	}
	return &Localizer{matcher: language.NewMatcher(Supported), catalog: b}
}

// Match picks the best supported language for an Accept-Language header or
// a bare tag such as "tr".
func (l *Localizer) Match(accept string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, index, _ := l.matcher.Match(tags...)
	return Supported[index]
}

// T returns the message for key in tag. Unknown keys are returned as is.
func (l *Localizer) T(tag language.Tag, key string, args ...interface{}) string {
	return l.printer(tag).Sprintf(key, args...)
}

// FormatPrice formats a price with the separators of tag. Prices below one
// keep four fraction digits, everything else two.
func (l *Localizer) FormatPrice(tag language.Tag, price decimal.Decimal) string {
	digits := 2
	if price.Abs().LessThan(decimal.NewFromInt(1)) {
		digits = 4
	}
	f, _ := price.Round(int32(digits)).Float64()
	return l.printer(tag).Sprint(number.Decimal(f, number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
}

func (l *Localizer) printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(l.catalog))
}
