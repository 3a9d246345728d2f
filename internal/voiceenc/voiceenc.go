// Package voiceenc maps a phoneme string sequence into the acoustic model's
// fixed phoneme-ID vocabulary and frames it with the reserved BOS/PAD/EOS
// IDs the model was trained against.
package voiceenc

import (
	"github.com/example/go-voxcore/internal/config"
	"github.com/example/go-voxcore/internal/localeutil"
)

// Encode maps phonemes to voice-model phoneme IDs via tables.PhonemeToID and
// frames the result as [BOS, PAD] + interleaved(id, PAD)... + [EOS].
//
// Each phoneme (possibly a multi-codepoint string, e.g. an affricate) is
// NFD-folded then split into codepoints before lookup, since the voice
// vocabulary's own phoneme_id_map is reduced to one codepoint per entry; a
// codepoint with no PhonemeToID entry after folding is dropped rather than
// failing the whole utterance.
func Encode(phonemes []string, tables *config.VoiceTables) []int64 {
	ids := make([]int64, 0, len(phonemes)*2+3)

	ids = append(ids, config.IDBOS, config.IDPad)

	for _, ph := range phonemes {
		folded := localeutil.NFDFold(ph)

		for _, cp := range folded {
			id, ok := tables.PhonemeToID[cp]
			if !ok {
				continue
			}

			ids = append(ids, id, config.IDPad)
		}
	}

	ids = append(ids, config.IDEOS)

	return ids
}
