package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// defaultStressChar is the IPA primary-stress mark used when a phonemizer
// config omits stress_char.
const defaultStressChar = 'ˈ'

// PhonemizerTables are the immutable, construction-time-compiled lookup
// tables a phonemizer config document produces. The char encoder looks a
// grapheme up in CharMap first (character canonicalization — e.g. curly
// quotes folded to straight ones), then looks the canonicalized string up
// in CharIDMap to get the CharId fed to the phonemizer model. A grapheme
// absent from CharIDMap after canonicalization is dropped by the caller,
// not an error.
type PhonemizerTables struct {
	CharMap   map[string]string
	CharIDMap map[string]int64

	// PhonemeMap is an optional phoneme->phoneme substitution table,
	// applied after G2P and before voice-ID lookup. It is parsed and
	// always available, but ApplyPhonemeMap gates whether the pipeline
	// actually consults it; see ApplyPhonemeMap.
	PhonemeMap map[string]string

	// ApplyPhonemeMap defaults to false: phoneme_map is present in every
	// observed reference config but the reference binary never threads it
	// into the encoding path, so callers must opt in explicitly to get the
	// alternate reading.
	ApplyPhonemeMap bool

	StressChar rune

	// PhonemeToID/IDToPhoneme decode the phonemizer model's own CTC output
	// classes back into phoneme strings, keyed by the full phoneme_id_map
	// entry rather than its leading codepoint — unlike the voice config's
	// phoneme_id_map, a phonemizer phoneme is never reduced to a single
	// rune, so a multi-codepoint CTC class (e.g. a post-NFD diphthong or
	// affricate) survives intact. This is a separate vocabulary from the
	// voice model's phoneme_id_map — the two models were trained
	// independently and need not share class indices.
	PhonemeToID map[string]int64
	IDToPhoneme map[int64]string

	// BlankID is the CTC blank class in PhonemeToID/IDToPhoneme, resolved
	// from the phoneme_id_map entry for PHONEME_PAD ('_') and defaulting
	// to 0 if that entry is absent.
	BlankID int64
}

type phonemizerDocument struct {
	CharMap      map[string]string  `json:"char_map"`
	CharIDMap    map[string]int64   `json:"char_id_map"`
	PhonemeMap   map[string]string  `json:"phoneme_map"`
	PhonemeIDMap map[string][]int64 `json:"phoneme_id_map"`
	StressChar   string             `json:"stress_char"`
}

// LoadPhonemizerTables reads and compiles a phonemizer config document from disk.
func LoadPhonemizerTables(path string) (*PhonemizerTables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phonemizer config: %w", err)
	}

	return ParsePhonemizerTables(raw)
}

// ParsePhonemizerTables compiles a phonemizer config document already read
// into memory.
func ParsePhonemizerTables(raw []byte) (*PhonemizerTables, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode phonemizer config: %w", err)
	}

	if err := requirePresent(fields, "char_id_map"); err != nil {
		return nil, fmt.Errorf("phonemizer config: %w", err)
	}

	var doc phonemizerDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode phonemizer config: %w", err)
	}

	if len(doc.CharIDMap) == 0 {
		return nil, fmt.Errorf("phonemizer config: char_id_map must not be empty")
	}

	charMap := doc.CharMap
	if charMap == nil {
		charMap = map[string]string{}
	}

	stressChar := defaultStressChar
	if doc.StressChar != "" {
		if cp, ok := firstCodepoint(doc.StressChar); ok {
			stressChar = cp
		}
	}

	phonemeMap := doc.PhonemeMap
	if phonemeMap == nil {
		phonemeMap = map[string]string{}
	}

	phonemeToID := make(map[string]int64, len(doc.PhonemeIDMap))
	idToPhoneme := make(map[int64]string, len(doc.PhonemeIDMap))

	for phoneme, ids := range doc.PhonemeIDMap {
		if len(ids) == 0 || phoneme == "" {
			continue
		}

		phonemeToID[phoneme] = ids[0]
		idToPhoneme[ids[0]] = phoneme
	}

	blankID := int64(0)
	if id, ok := phonemeToID[string(PhonemePad)]; ok {
		blankID = id
	}

	return &PhonemizerTables{
		CharMap:         charMap,
		CharIDMap:       doc.CharIDMap,
		PhonemeMap:      phonemeMap,
		ApplyPhonemeMap: false,
		StressChar:      stressChar,
		PhonemeToID:     phonemeToID,
		IDToPhoneme:     idToPhoneme,
		BlankID:         blankID,
	}, nil
}

// Canonicalize applies CharMap to a single grapheme, returning the
// grapheme unchanged if it has no substitution entry.
func (t *PhonemizerTables) Canonicalize(grapheme string) string {
	if replacement, ok := t.CharMap[grapheme]; ok {
		return replacement
	}

	return grapheme
}

// CharID resolves a single (already-canonicalized) grapheme to its CharId.
func (t *PhonemizerTables) CharID(canonical string) (int64, bool) {
	id, ok := t.CharIDMap[canonical]
	return id, ok
}
