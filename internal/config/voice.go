package config

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"
)

// VoiceTables are the immutable, construction-time-compiled lookup tables
// a voice config document produces. Nothing downstream touches the raw
// JSON document again once these are built.
type VoiceTables struct {
	NumSpeakers int
	SampleRate  int

	// PhonemeToID and IDToPhoneme are inverses of each other, keyed by the
	// first Unicode codepoint of each phoneme_id_map entry (multi-rune
	// phoneme strings only ever contribute their leading codepoint, same
	// as the reference's get_codepoint helper).
	PhonemeToID map[rune]int64
	IDToPhoneme map[int64]rune

	NoiseScale  float32
	LengthScale float32
	NoiseWScale float32
}

type voiceInferenceOverrides struct {
	NoiseScale  *float32 `json:"noise_scale"`
	LengthScale *float32 `json:"length_scale"`
	NoiseWScale *float32 `json:"noise_w_scale"`
}

type voiceDocument struct {
	NumSpeakers  int                 `json:"num_speakers"`
	SampleRate   int                 `json:"sample_rate"`
	PhonemeIDMap map[string][]int64  `json:"phoneme_id_map"`
	Inference    *voiceInferenceOverrides `json:"inference"`
}

// LoadVoiceTables reads and compiles a voice config document from disk.
func LoadVoiceTables(path string) (*VoiceTables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read voice config: %w", err)
	}

	return ParseVoiceTables(raw)
}

// ParseVoiceTables compiles a voice config document already read into
// memory. Presence is checked by decoding into a raw field map first, so a
// present-but-null field is rejected rather than silently treated as
// absent, matching the reference's field-presence checks.
func ParseVoiceTables(raw []byte) (*VoiceTables, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode voice config: %w", err)
	}

	for _, required := range []string{"num_speakers", "sample_rate", "phoneme_id_map"} {
		if err := requirePresent(fields, required); err != nil {
			return nil, fmt.Errorf("voice config: %w", err)
		}
	}

	var doc voiceDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode voice config: %w", err)
	}

	if doc.NumSpeakers < 1 {
		return nil, fmt.Errorf("voice config: num_speakers must be >= 1, got %d", doc.NumSpeakers)
	}

	if doc.SampleRate < 1 {
		return nil, fmt.Errorf("voice config: sample_rate must be positive, got %d", doc.SampleRate)
	}

	if len(doc.PhonemeIDMap) == 0 {
		return nil, fmt.Errorf("voice config: phoneme_id_map must not be empty")
	}

	phonemeToID := make(map[rune]int64, len(doc.PhonemeIDMap))
	idToPhoneme := make(map[int64]rune, len(doc.PhonemeIDMap))

	for phoneme, ids := range doc.PhonemeIDMap {
		if len(ids) == 0 {
			continue
		}

		cp, ok := firstCodepoint(phoneme)
		if !ok {
			continue
		}

		id := ids[0]
		phonemeToID[cp] = id
		idToPhoneme[id] = cp
	}

	scales := resolveInferenceOverrides(doc.Inference)

	return &VoiceTables{
		NumSpeakers: doc.NumSpeakers,
		SampleRate:  doc.SampleRate,
		PhonemeToID: phonemeToID,
		IDToPhoneme: idToPhoneme,
		NoiseScale:  scales.noise,
		LengthScale: scales.length,
		NoiseWScale: scales.noiseW,
	}, nil
}

type resolvedScales struct {
	noise, length, noiseW float32
}

func resolveInferenceOverrides(overrides *voiceInferenceOverrides) resolvedScales {
	scales := resolvedScales{
		noise:  DefaultNoiseScale,
		length: DefaultLengthScale,
		noiseW: DefaultNoiseWScale,
	}

	if overrides == nil {
		return scales
	}

	if overrides.NoiseScale != nil {
		scales.noise = *overrides.NoiseScale
	}

	if overrides.LengthScale != nil {
		scales.length = *overrides.LengthScale
	}

	if overrides.NoiseWScale != nil {
		scales.noiseW = *overrides.NoiseWScale
	}

	return scales
}

// firstCodepoint extracts the leading Unicode codepoint of a phoneme key,
// mirroring the reference's get_codepoint helper: an empty string yields
// no codepoint rather than an error, since a config may legitimately
// contain stray empty keys that should just be skipped.
func firstCodepoint(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, false
	}

	return r, true
}

func requirePresent(fields map[string]json.RawMessage, key string) error {
	raw, ok := fields[key]
	if !ok {
		return fmt.Errorf("missing required field %q", key)
	}

	if string(raw) == "null" {
		return fmt.Errorf("required field %q is present but null", key)
	}

	return nil
}
