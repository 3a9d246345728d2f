package stress

import (
	"context"
	"reflect"
	"testing"

	"github.com/example/go-voxcore/internal/config"
	"github.com/example/go-voxcore/internal/onnx"
)

// fakeRunner stands in for a loaded stress session: it returns a fixed
// probability tensor under a fixed output name regardless of input.
type fakeRunner struct {
	outputName string
	probs      []float32
	shape      []int64
}

func (f *fakeRunner) Run(_ context.Context, _ map[string]*onnx.Tensor) (map[string]*onnx.Tensor, error) {
	t, err := onnx.NewTensor(f.probs, f.shape)
	if err != nil {
		return nil, err
	}

	return map[string]*onnx.Tensor{f.outputName: t}, nil
}

func (f *fakeRunner) OutputNames() []string {
	return []string{f.outputName}
}

func testTables() *config.PhonemizerTables {
	tables, err := config.ParsePhonemizerTables([]byte(`{
		"char_id_map": {"a": 1},
		"phoneme_id_map": {"_": [0], "k": [1], "a": [2], "t": [3]},
		"stress_char": "ˈ"
	}`))
	if err != nil {
		panic(err)
	}

	return tables
}

func TestRun_InsertsStressAboveThreshold(t *testing.T) {
	phonemes := []string{"k", "a", "t"}
	probs := []float32{0.1, 0.9, 0.2}

	p := New(&fakeRunner{
		outputName: "probs",
		probs:      probs,
		shape:      []int64{1, int64(len(probs))},
	}, testTables())

	got, err := p.Run(context.Background(), phonemes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"k", "ˈ", "a", "t"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Run() = %v, want %v", got, want)
	}
}

func TestRun_NoneAboveThresholdLeavesPhonemesUnchanged(t *testing.T) {
	phonemes := []string{"k", "a", "t"}
	probs := []float32{0.1, 0.2, 0.3}

	p := New(&fakeRunner{
		outputName: "probs",
		probs:      probs,
		shape:      []int64{1, int64(len(probs))},
	}, testTables())

	got, err := p.Run(context.Background(), phonemes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"k", "a", "t"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Run() = %v, want %v", got, want)
	}
}

func TestRun_LengthMismatchSkipsStressInsertion(t *testing.T) {
	phonemes := []string{"k", "a", "t"}
	probs := []float32{0.9, 0.9} // wrong length

	p := New(&fakeRunner{
		outputName: "probs",
		probs:      probs,
		shape:      []int64{1, int64(len(probs))},
	}, testTables())

	got, err := p.Run(context.Background(), phonemes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !reflect.DeepEqual(got, phonemes) {
		t.Fatalf("Run() = %v, want unchanged %v", got, phonemes)
	}
}

func TestRun_EmptyInputSkipsModel(t *testing.T) {
	p := New(&fakeRunner{}, testTables())

	got, err := p.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(got) != 0 {
		t.Fatalf("Run(nil) = %v, want empty", got)
	}
}

func TestRun_UsesOwnRunnerOutputNamesNotASiblings(t *testing.T) {
	// A stress runner whose output is named differently from a typical
	// phonemizer's "logits" must still resolve correctly through its own
	// OutputNames(), never a hardcoded or borrowed name.
	phonemes := []string{"a"}
	probs := []float32{0.9}

	p := New(&fakeRunner{
		outputName: "stress_probabilities",
		probs:      probs,
		shape:      []int64{1, 1},
	}, testTables())

	got, err := p.Run(context.Background(), phonemes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"ˈ", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Run() = %v, want %v", got, want)
	}
}

func TestRun_KeepsMultiCodepointPhonemeIntact(t *testing.T) {
	tables, err := config.ParsePhonemizerTables([]byte(`{
		"char_id_map": {"a": 1},
		"phoneme_id_map": {"_": [0], "tʃ": [1], "a": [2]},
		"stress_char": "ˈ"
	}`))
	if err != nil {
		t.Fatalf("ParsePhonemizerTables: %v", err)
	}

	phonemes := []string{"tʃ", "a"}
	probs := []float32{0.9, 0.1}

	p := New(&fakeRunner{
		outputName: "probs",
		probs:      probs,
		shape:      []int64{1, int64(len(probs))},
	}, tables)

	got, err := p.Run(context.Background(), phonemes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"ˈ", "tʃ", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Run() = %v, want %v (the affricate must survive as one element, not a truncated rune)", got, want)
	}
}
