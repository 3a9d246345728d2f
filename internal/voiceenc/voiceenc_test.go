package voiceenc

import (
	"reflect"
	"testing"

	"github.com/example/go-voxcore/internal/config"
)

func testTables(t *testing.T) *config.VoiceTables {
	t.Helper()

	tables, err := config.ParseVoiceTables([]byte(`{
		"num_speakers": 1,
		"sample_rate": 22050,
		"phoneme_id_map": {"k": [5], "a": [6], "t": [7]}
	}`))
	if err != nil {
		t.Fatalf("ParseVoiceTables: %v", err)
	}

	return tables
}

func TestEncode_FramesWithBOSPadEOS(t *testing.T) {
	got := Encode([]string{"k", "a", "t"}, testTables(t))

	want := []int64{
		config.IDBOS, config.IDPad,
		5, config.IDPad,
		6, config.IDPad,
		7, config.IDPad,
		config.IDEOS,
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Encode() = %v, want %v", got, want)
	}
}

func TestEncode_DropsUnmappedPhonemes(t *testing.T) {
	got := Encode([]string{"k", "z", "a"}, testTables(t))

	want := []int64{
		config.IDBOS, config.IDPad,
		5, config.IDPad,
		6, config.IDPad,
		config.IDEOS,
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Encode() = %v, want %v", got, want)
	}
}

func TestEncode_Empty(t *testing.T) {
	got := Encode(nil, testTables(t))

	want := []int64{config.IDBOS, config.IDPad, config.IDEOS}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Encode(nil) = %v, want %v", got, want)
	}
}

func TestEncode_MultiCodepointPhonemeSplitsIntoEachCodepoint(t *testing.T) {
	tables, err := config.ParseVoiceTables([]byte(`{
		"num_speakers": 1,
		"sample_rate": 22050,
		"phoneme_id_map": {"k": [5], "a": [6], "t": [7]}
	}`))
	if err != nil {
		t.Fatalf("ParseVoiceTables: %v", err)
	}

	// "kat" arriving as one multi-codepoint phoneme string (as the
	// phonemizer's CTC collapse may now legitimately produce) still
	// resolves one voice-model ID per codepoint.
	got := Encode([]string{"kat"}, tables)

	want := []int64{
		config.IDBOS, config.IDPad,
		5, config.IDPad,
		6, config.IDPad,
		7, config.IDPad,
		config.IDEOS,
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Encode() = %v, want %v", got, want)
	}
}
