package g2p

import (
	"context"
	"reflect"
	"testing"

	"github.com/example/go-voxcore/internal/config"
	"github.com/example/go-voxcore/internal/onnx"
)

// fakeRunner stands in for a loaded ONNX session: it returns a fixed
// logits tensor under a fixed output name regardless of input, which is
// enough to exercise the argmax+CTC collapse logic without ONNX Runtime.
type fakeRunner struct {
	outputName string
	logits     []float32
	shape      []int64
}

func (f *fakeRunner) Run(_ context.Context, _ map[string]*onnx.Tensor) (map[string]*onnx.Tensor, error) {
	t, err := onnx.NewTensor(f.logits, f.shape)
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
		"phoneme_id_map": {"_": [0], "k": [1], "a": [2], "t": [3]}
	}`))
	if err != nil {
		panic(err)
	}

	return tables
}

// logitsForClasses builds a one-hot logits tensor of shape [1, frames, classes].
func logitsForClasses(classes []int64, numClasses int) []float32 {
	out := make([]float32, len(classes)*numClasses)

	for f, c := range classes {
		out[f*numClasses+int(c)] = 10.0
	}

	return out
}

func TestRun_CollapsesBlanksAndRepeats(t *testing.T) {
	// classes: blank k k a blank blank t -> collapse -> k a t
	classes := []int64{0, 1, 1, 2, 0, 0, 3}
	numClasses := 4

	p := New(&fakeRunner{
		outputName: "logits",
		logits:     logitsForClasses(classes, numClasses),
		shape:      []int64{1, int64(len(classes)), int64(numClasses)},
	}, testTables())

	got, err := p.Run(context.Background(), []int64{1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"k", "a", "t"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Run() = %v, want %v", got, want)
	}
}

func TestRun_RepeatAfterBlankIsNotCollapsed(t *testing.T) {
	// k blank k -> both k's survive since a blank separates them.
	classes := []int64{1, 0, 1}
	numClasses := 4

	p := New(&fakeRunner{
		outputName: "logits",
		logits:     logitsForClasses(classes, numClasses),
		shape:      []int64{1, int64(len(classes)), int64(numClasses)},
	}, testTables())

	got, err := p.Run(context.Background(), []int64{1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"k", "k"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Run() = %v, want %v", got, want)
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

func TestCollapseCTC_NoBlankNoAdjacentRepeatsInvariant(t *testing.T) {
	idToPhoneme := map[int64]string{1: "k", 2: "a"}
	got := collapseCTC([]int64{1, 1, 0, 1, 2, 2}, 0, idToPhoneme)

	// Within each blank-free run of frames the collapse leaves no adjacent
	// repeats; only a blank lets a phoneme repeat.
	for _, run := range [][]int64{{1, 1}, {1, 2, 2}} {
		seg := collapseCTC(run, 0, idToPhoneme)
		for i := 1; i < len(seg); i++ {
			if seg[i] == seg[i-1] {
				t.Fatalf("collapseCTC(%v) produced adjacent repeat in %v", run, seg)
			}
		}
	}

	want := []string{"k", "k", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("collapseCTC() = %v, want %v", got, want)
	}
}

func TestRun_KeepsMultiCodepointPhonemeIntact(t *testing.T) {
	tables, err := config.ParsePhonemizerTables([]byte(`{
		"char_id_map": {"a": 1},
		"phoneme_id_map": {"_": [0], "tʃ": [1], "a": [2]}
	}`))
	if err != nil {
		t.Fatalf("ParsePhonemizerTables: %v", err)
	}

	// classes: blank tʃ a -> collapse -> ["tʃ", "a"], the affricate surviving
	// as one string element rather than being truncated to its first rune.
	classes := []int64{0, 1, 2}
	numClasses := 3

	p := New(&fakeRunner{
		outputName: "logits",
		logits:     logitsForClasses(classes, numClasses),
		shape:      []int64{1, int64(len(classes)), int64(numClasses)},
	}, tables)

	got, err := p.Run(context.Background(), []int64{1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"tʃ", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Run() = %v, want %v", got, want)
	}
}
