package localeutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Transliterate strips accents and other combining marks from s: it
// decomposes to NFD, drops every rune in Unicode category Mn (nonspacing
// mark), and recomposes to NFC. This is the closest pure-Go equivalent to
// the reference's ICU Transliterator rule ("NFD; [:Mn:] Remove; NFC"),
// used after lowercasing during text normalization.
func Transliterate(s string) string {
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}

		b.WriteRune(r)
	}

	return norm.NFC.String(b.String())
}

// NFDFold decomposes s to NFD without stripping marks, used by the voice
// encoder when mapping a phoneme string to its lookup codepoint.
func NFDFold(s string) string {
	return norm.NFD.String(s)
}
