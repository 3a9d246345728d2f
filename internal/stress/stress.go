// Package stress runs the stress-prediction model and inserts the stress
// marker character before any phoneme the model marks as stressed.
package stress

import (
	"context"
	"fmt"

	"github.com/example/go-voxcore/internal/config"
	"github.com/example/go-voxcore/internal/onnx"
)

// Predictor wraps the stress ONNX model.
type Predictor struct {
	runner onnx.Model
	tables *config.PhonemizerTables
}

// New builds a Predictor over an already-constructed Runner and the
// phonemizer config's compiled tables (shared with the G2P stage, since
// the stress model consumes the same phoneme ID vocabulary the phonemizer
// model produces).
func New(runner onnx.Model, tables *config.PhonemizerTables) *Predictor {
	return &Predictor{runner: runner, tables: tables}
}

// Run predicts per-phoneme stress and inserts tables.StressChar before
// every phoneme whose predicted probability exceeds the stress threshold.
// If the model's output length does not match the input phoneme count,
// stress insertion is skipped entirely and phonemes is returned unchanged
// — a shape mismatch here reflects a model/config pairing problem, not a
// reason to fail synthesis outright.
func (p *Predictor) Run(ctx context.Context, phonemes []string) ([]string, error) {
	if len(phonemes) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(phonemes))
	for i, ph := range phonemes {
		ids[i] = p.tables.PhonemeToID[ph]
	}

	input, err := onnx.NewTensor(ids, []int64{1, int64(len(ids))})
	if err != nil {
		return nil, fmt.Errorf("stress input tensor: %w", err)
	}

	outputs, err := p.runner.Run(ctx, map[string]*onnx.Tensor{"phoneme_ids": input})
	if err != nil {
		return nil, fmt.Errorf("stress run: %w", err)
	}

	// Output names MUST come from this stress Predictor's own runner, not
	// the phonemizer's — the two models have independent output layouts
	// even when they happen to share an input vocabulary.
	names := p.runner.OutputNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("stress run: runner produced no named outputs")
	}

	out := outputs[names[0]]
	if out == nil {
		return nil, fmt.Errorf("stress run: missing output %q", names[0])
	}

	probs, err := onnx.ExtractFloat32(out)
	if err != nil {
		return nil, fmt.Errorf("stress output: %w", err)
	}

	if len(probs) != len(phonemes) {
		return phonemes, nil
	}

	result := make([]string, 0, len(phonemes)*2)

	for i, ph := range phonemes {
		if probs[i] > config.DefaultStressThresh {
			result = append(result, string(p.tables.StressChar))
		}

		result = append(result, ph)
	}

	return result, nil
}
