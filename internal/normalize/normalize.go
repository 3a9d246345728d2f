// Package normalize turns raw input text into one processed string per
// sentence, with every numeral token that parses as a plain decimal number
// replaced by its spoken-word reading. A numeral token that does not parse
// (e.g. "1,000" or "42nd") keeps its digits. The char encoder iterates each
// sentence's grapheme clusters directly.
package normalize

import (
	"strings"

	"github.com/example/go-voxcore/internal/localeutil"
)

// Normalizer holds the resolved locale used for case folding; everything
// else in the pipeline (transliteration, segmentation, number spellout) is
// locale-independent in this implementation.
type Normalizer struct {
	locale localeutil.Locale
}

// New builds a Normalizer for the given BCP 47 tag. An empty tag resolves
// to the root locale.
func New(bcp47 string) *Normalizer {
	return &Normalizer{locale: localeutil.NewLocale(bcp47)}
}

// Sentences lowercases and transliterates text, then splits it into
// per-sentence strings with every numeral token replaced by its spelled
// form. A single leading space is inserted before transliteration, matching
// the reference's own preprocessing step (many voice models were trained
// expecting a leading space before the first word).
func (n *Normalizer) Sentences(text string) []string {
	lowered := n.locale.Lowercase(text)
	withLeadingSpace := " " + lowered
	transliterated := localeutil.Transliterate(withLeadingSpace)

	sentences := localeutil.Sentences(transliterated)
	out := make([]string, 0, len(sentences))

	for _, sentence := range sentences {
		out = append(out, expandNumbers(sentence))
	}

	return out
}

// Graphemes splits a single already-normalized sentence into extended
// grapheme clusters, the unit the char encoder consumes.
func Graphemes(sentence string) []string {
	return localeutil.Graphemes(sentence)
}

func expandNumbers(sentence string) string {
	words := localeutil.Words(sentence)

	hasNumeric := false

	for _, w := range words {
		if w.IsNumeric {
			hasNumeric = true
			break
		}
	}

	if !hasNumeric {
		return sentence
	}

	var b strings.Builder

	remaining := sentence

	for _, w := range words {
		if !w.IsNumeric {
			continue
		}

		idx := strings.Index(remaining, w.Text)
		if idx < 0 {
			continue
		}

		value, isInt, ok := localeutil.ParseNumber(w.Text)
		if !ok {
			continue
		}

		b.WriteString(remaining[:idx])
		b.WriteString(localeutil.Spell(value, isInt))
		remaining = remaining[idx+len(w.Text):]
	}

	b.WriteString(remaining)

	return b.String()
}
