// Package localeutil stands in for the ICU services (BreakIterator,
// Transliterator, RuleBasedNumberFormat) the reference implementation
// relies on. golang.org/x/text supplies locale tags, case folding, and
// normalization forms; github.com/rivo/uniseg supplies the same UAX #29
// boundary algorithms ICU's BreakIterator implements.
package localeutil

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locale wraps a resolved language.Tag and the case-folding transform built
// for it. An empty or unrecognized tag resolves to language.Und (the root
// locale), matching ICU's fallback when no locale is configured.
type Locale struct {
	tag   language.Tag
	lower cases.Caser
}

// NewLocale resolves a BCP 47 tag string into a Locale. An empty string or
// a tag golang.org/x/text cannot parse both fall back to the root locale
// rather than returning an error — a missing locale is not a config error.
func NewLocale(bcp47 string) Locale {
	tag := language.Und

	if bcp47 != "" {
		if parsed, err := language.Parse(bcp47); err == nil {
			tag = parsed
		}
	}

	return Locale{
		tag:   tag,
		lower: cases.Lower(tag),
	}
}

// Tag returns the resolved language tag.
func (l Locale) Tag() language.Tag {
	return l.tag
}

// Lowercase applies the locale's case-folding rules, e.g. Turkish dotless
// İ/ı handling when the tag is tr.
func (l Locale) Lowercase(s string) string {
	return l.lower.String(s)
}
