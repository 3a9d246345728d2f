// Package charenc turns a normalized sentence's grapheme clusters into the
// CharId sequence fed to the phonemizer model.
package charenc

import "github.com/example/go-voxcore/internal/config"

// Encode canonicalizes each grapheme via tables.CharMap and resolves it to
// a CharId via tables.CharIDMap. A grapheme with no entry after
// canonicalization is silently dropped — not every normalized character
// necessarily has a phonemizer vocabulary slot (stray punctuation, for
// instance), and the reference treats that as expected, not an error.
func Encode(graphemes []string, tables *config.PhonemizerTables) []int64 {
	ids := make([]int64, 0, len(graphemes))

	for _, g := range graphemes {
		canonical := tables.Canonicalize(g)

		id, ok := tables.CharID(canonical)
		if !ok {
			continue
		}

		ids = append(ids, id)
	}

	return ids
}
