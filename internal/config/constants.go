package config

// Reserved character IDs that frame every voice-encoded phoneme sequence.
// These match the fixed vocabulary positions the acoustic model was trained
// against and are never looked up in a phoneme_id_map.
const (
	IDPad int64 = 0
	IDBOS int64 = 1
	IDEOS int64 = 2
)

// Reserved phoneme runes, documentary only: voices encode BOS/PAD/EOS as the
// IDs above, never as the literal characters below, but config authors use
// these characters when they need to name the reserved slots in prose.
const (
	PhonemePad rune = '_'
	PhonemeBOS rune = '^'
	PhonemeEOS rune = '$'
)

// Default synthesis scales, used whenever a voice config's inference
// overrides are absent or only partially specified.
const (
	DefaultLengthScale  float32 = 1.0
	DefaultNoiseScale   float32 = 0.667
	DefaultNoiseWScale  float32 = 0.8
	DefaultStressThresh float32 = 0.5
)
