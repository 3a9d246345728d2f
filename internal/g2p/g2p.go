// Package g2p runs the grapheme-to-phoneme model and collapses its CTC
// output into a phoneme sequence. A phoneme is a string, not a rune: the
// phonemizer's own vocabulary keys phoneme_id_map entries by their full
// string (see internal/config.PhonemizerTables), so a multi-codepoint CTC
// class survives the collapse intact.
package g2p

import (
	"context"
	"fmt"

	"github.com/example/go-voxcore/internal/config"
	"github.com/example/go-voxcore/internal/onnx"
)

// Phonemizer wraps the phonemizer ONNX model behind the pipeline's own
// vocabulary: CharId sequence in, CTC-collapsed phoneme strings out.
type Phonemizer struct {
	runner onnx.Model
	tables *config.PhonemizerTables
}

// New builds a Phonemizer over an already-constructed Runner and the
// phonemizer config's compiled tables.
func New(runner onnx.Model, tables *config.PhonemizerTables) *Phonemizer {
	return &Phonemizer{runner: runner, tables: tables}
}

// Run feeds charIDs through the phonemizer model and returns the
// CTC-collapsed phoneme sequence. An empty input produces an empty output
// without invoking the model.
func (p *Phonemizer) Run(ctx context.Context, charIDs []int64) ([]string, error) {
	if len(charIDs) == 0 {
		return nil, nil
	}

	input, err := onnx.NewTensor(charIDs, []int64{1, int64(len(charIDs))})
	if err != nil {
		return nil, fmt.Errorf("g2p input tensor: %w", err)
	}

	outputs, err := p.runner.Run(ctx, map[string]*onnx.Tensor{"input_ids": input})
	if err != nil {
		return nil, fmt.Errorf("g2p run: %w", err)
	}

	// Output names are read from this Phonemizer's own runner, never a
	// sibling model's — see the stress stage for why that distinction
	// matters here.
	names := p.runner.OutputNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("g2p run: runner produced no named outputs")
	}

	out := outputs[names[0]]
	if out == nil {
		return nil, fmt.Errorf("g2p run: missing output %q", names[0])
	}

	shape := out.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("g2p output: expected 3D logits tensor, got shape %v", shape)
	}

	logits, err := onnx.ExtractFloat32(out)
	if err != nil {
		return nil, fmt.Errorf("g2p output: %w", err)
	}

	numFrames := int(shape[1])
	numClasses := int(shape[2])

	classIDs := argmaxPerFrame(logits, numFrames, numClasses)

	return collapseCTC(classIDs, p.tables.BlankID, p.tables.IDToPhoneme), nil
}

func argmaxPerFrame(logits []float32, numFrames, numClasses int) []int64 {
	ids := make([]int64, numFrames)

	for f := range numFrames {
		base := f * numClasses
		best := 0
		bestVal := logits[base]

		for c := 1; c < numClasses; c++ {
			v := logits[base+c]
			if v > bestVal {
				bestVal = v
				best = c
			}
		}

		ids[f] = int64(best)
	}

	return ids
}

// collapseCTC applies the standard CTC collapse: a blank frame is dropped
// and resets the "previous class" memory, so a phoneme may legally repeat
// immediately after a blank; two consecutive identical non-blank frames
// collapse into a single phoneme.
func collapseCTC(classIDs []int64, blankID int64, idToPhoneme map[int64]string) []string {
	var out []string

	prev := int64(-1)
	havePrev := false

	for _, id := range classIDs {
		if id == blankID {
			havePrev = false
			continue
		}

		if havePrev && id == prev {
			continue
		}

		if p, ok := idToPhoneme[id]; ok {
			out = append(out, p)
		}

		prev = id
		havePrev = true
	}

	return out
}
