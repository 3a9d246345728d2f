package localeutil

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Sentences splits s on Unicode UAX #29 sentence boundaries, the same
// algorithm family ICU's BreakIterator uses in sentence mode.
func Sentences(s string) []string {
	var out []string

	state := -1
	remaining := s

	for len(remaining) > 0 {
		sentence, rest, newState := uniseg.FirstSentenceInString(remaining, state)
		if strings.TrimSpace(sentence) != "" {
			out = append(out, sentence)
		}

		remaining = rest
		state = newState
	}

	return out
}

// Word is one UAX #29 word-boundary token plus whether it begins with a
// decimal digit, the signal the text normalizer uses to route it through
// number parsing instead of char-by-char encoding.
type Word struct {
	Text      string
	IsNumeric bool
}

// Words splits s on Unicode UAX #29 word boundaries. Pure-whitespace and
// punctuation-only segments are dropped, matching ICU's word iterator
// usage in the reference (which only cares about "real" words).
func Words(s string) []Word {
	var out []Word

	state := -1
	remaining := s

	for len(remaining) > 0 {
		word, rest, newState := uniseg.FirstWordInString(remaining, state)
		remaining = rest
		state = newState

		trimmed := strings.TrimSpace(word)
		if trimmed == "" || !containsLetterOrDigit(trimmed) {
			continue
		}

		first, _ := firstRune(trimmed)
		out = append(out, Word{Text: trimmed, IsNumeric: unicode.IsDigit(first)})
	}

	return out
}

// Graphemes splits s into extended grapheme clusters (UAX #29 grapheme
// mode), the unit the char encoder and voice encoder both iterate over.
func Graphemes(s string) []string {
	var out []string

	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}

	return out
}

func containsLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}

	return 0, false
}
