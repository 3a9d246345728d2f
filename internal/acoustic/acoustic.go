// Package acoustic runs the voice model to synthesize raw audio samples
// from a framed phoneme-ID sequence.
package acoustic

import (
	"context"
	"fmt"

	"github.com/example/go-voxcore/internal/config"
	"github.com/example/go-voxcore/internal/onnx"
)

// Options carries the per-call synthesis scales and optional speaker
// selection, overriding the voice config's defaults when non-zero/non-nil.
type Options struct {
	SpeakerID   int64
	LengthScale float32
	NoiseScale  float32
	NoiseWScale float32
}

// Synthesizer wraps the acoustic (voice) ONNX model.
type Synthesizer struct {
	runner onnx.Model
	tables *config.VoiceTables
}

// New builds a Synthesizer over an already-constructed Runner and the
// voice config's compiled tables.
func New(runner onnx.Model, tables *config.VoiceTables) *Synthesizer {
	return &Synthesizer{runner: runner, tables: tables}
}

// Run invokes the voice model over a framed phoneme-ID sequence (as
// produced by the voiceenc package) and returns the flat float32 audio
// samples it produces. sid is only included in the model inputs when the
// voice config declares more than one speaker.
func (s *Synthesizer) Run(ctx context.Context, ids []int64, opts Options) ([]float32, error) {
	if opts.NoiseScale == 0 {
		opts.NoiseScale = s.tables.NoiseScale
	}

	if opts.LengthScale == 0 {
		opts.LengthScale = s.tables.LengthScale
	}

	if opts.NoiseWScale == 0 {
		opts.NoiseWScale = s.tables.NoiseWScale
	}

	input, err := onnx.NewTensor(ids, []int64{1, int64(len(ids))})
	if err != nil {
		return nil, fmt.Errorf("acoustic input tensor: %w", err)
	}

	inputLengths, err := onnx.NewTensor([]int64{int64(len(ids))}, []int64{1})
	if err != nil {
		return nil, fmt.Errorf("acoustic input_lengths tensor: %w", err)
	}

	scales, err := onnx.NewTensor(
		[]float32{opts.NoiseScale, opts.LengthScale, opts.NoiseWScale},
		[]int64{3},
	)
	if err != nil {
		return nil, fmt.Errorf("acoustic scales tensor: %w", err)
	}

	inputs := map[string]*onnx.Tensor{
		"input":         input,
		"input_lengths": inputLengths,
		"scales":        scales,
	}

	if s.tables.NumSpeakers > 1 {
		sid, err := onnx.NewTensor([]int64{opts.SpeakerID}, []int64{1})
		if err != nil {
			return nil, fmt.Errorf("acoustic sid tensor: %w", err)
		}

		inputs["sid"] = sid
	}

	outputs, err := s.runner.Run(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("acoustic run: %w", err)
	}

	names := s.runner.OutputNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("acoustic run: runner produced no named outputs")
	}

	out := outputs[names[0]]
	if out == nil {
		return nil, fmt.Errorf("acoustic run: missing output %q", names[0])
	}

	samples, err := onnx.ExtractFloat32(out)
	if err != nil {
		return nil, fmt.Errorf("acoustic output: %w", err)
	}

	return samples, nil
}

// DefaultOptions returns the voice config's own scales as synthesis
// options, with speaker 0 selected.
func DefaultOptions(tables *config.VoiceTables) Options {
	return Options{
		SpeakerID:   0,
		LengthScale: tables.LengthScale,
		NoiseScale:  tables.NoiseScale,
		NoiseWScale: tables.NoiseWScale,
	}
}
