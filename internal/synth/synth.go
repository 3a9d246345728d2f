// Package synth wires the normalization, encoding, G2P, stress, voice
// encoding, and acoustic synthesis stages into the streaming Start/Next
// API a caller drives one sentence at a time.
package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/go-voxcore/internal/acoustic"
	"github.com/example/go-voxcore/internal/charenc"
	"github.com/example/go-voxcore/internal/config"
	"github.com/example/go-voxcore/internal/g2p"
	"github.com/example/go-voxcore/internal/normalize"
	"github.com/example/go-voxcore/internal/onnx"
	"github.com/example/go-voxcore/internal/stress"
	"github.com/example/go-voxcore/internal/voiceenc"
)

// ErrDone is returned by Next once the pending sentence queue has drained;
// it is not itself a failure, but signals callers to stop requesting chunks
// for the current Start call.
var ErrDone = errors.New("synth: no pending sentences")

// Config names the three model files and two (optional) config documents a
// Synthesizer is built from, plus the locale used for text normalization
// and the ORT runtime settings shared by all three sessions.
type Config struct {
	Locale string

	VoiceModelPath  string
	VoiceConfigPath string // defaults to VoiceModelPath + ".json"

	PhonemizerModelPath  string
	PhonemizerConfigPath string // defaults to PhonemizerModelPath + ".json"

	StressModelPath string

	Runtime onnx.RunnerConfig
}

// Options carries the per-utterance synthesis knobs.
type Options struct {
	SpeakerID   int64
	LengthScale float32
	NoiseScale  float32
	NoiseWScale float32
}

// AudioChunk is one sentence's worth of synthesized audio plus the
// intermediate representations the caller can inspect for observability.
type AudioChunk struct {
	Samples    []float32
	SampleRate int
	IsLast     bool

	Chars      []string
	Phonemes   []string
	PhonemeIDs []int64
}

type pendingSentence struct {
	chars   []string
	charIDs []int64
}

// Synthesizer owns the three model sessions, compiled config tables, and
// the per-sentence pending queue Start populates and Next drains. A
// Synthesizer either holds a fully-loaded triple of models or construction
// fails and no Synthesizer exists — there is no partially-initialized state.
type Synthesizer struct {
	locale string

	// closer releases whatever ONNX sessions New actually opened; nil when
	// the Synthesizer was built over caller-supplied onnx.Model values (as
	// tests do) rather than real Runners.
	closer func()

	voiceTables      *config.VoiceTables
	phonemizerTables *config.PhonemizerTables

	normalizer *normalize.Normalizer
	phonemizer *g2p.Phonemizer
	stressor   *stress.Predictor
	acoustic   *acoustic.Synthesizer

	options Options
	pending []pendingSentence
}

// New constructs a Synthesizer, loading both config documents and all
// three ONNX sessions. Any failure releases whatever sessions were already
// opened and returns a nil Synthesizer.
func New(cfg Config) (*Synthesizer, error) {
	voiceConfigPath := cfg.VoiceConfigPath
	if voiceConfigPath == "" {
		voiceConfigPath = cfg.VoiceModelPath + ".json"
	}

	phonemizerConfigPath := cfg.PhonemizerConfigPath
	if phonemizerConfigPath == "" {
		phonemizerConfigPath = cfg.PhonemizerModelPath + ".json"
	}

	voiceTables, err := config.LoadVoiceTables(voiceConfigPath)
	if err != nil {
		return nil, fmt.Errorf("synth: voice config: %w", err)
	}

	phonemizerTables, err := config.LoadPhonemizerTables(phonemizerConfigPath)
	if err != nil {
		return nil, fmt.Errorf("synth: phonemizer config: %w", err)
	}

	phonemizerRunner, err := onnx.NewRunner(onnx.ModelSpec{Name: "phonemizer", Path: cfg.PhonemizerModelPath}, cfg.Runtime)
	if err != nil {
		return nil, fmt.Errorf("synth: phonemizer model: %w", err)
	}

	stressRunner, err := onnx.NewRunner(onnx.ModelSpec{Name: "stress", Path: cfg.StressModelPath}, cfg.Runtime)
	if err != nil {
		phonemizerRunner.Close()
		return nil, fmt.Errorf("synth: stress model: %w", err)
	}

	voiceRunner, err := onnx.NewRunner(onnx.ModelSpec{Name: "voice", Path: cfg.VoiceModelPath}, cfg.Runtime)
	if err != nil {
		phonemizerRunner.Close()
		stressRunner.Close()
		return nil, fmt.Errorf("synth: voice model: %w", err)
	}

	s := newFromModels(cfg.Locale, phonemizerRunner, stressRunner, voiceRunner, voiceTables, phonemizerTables)
	s.closer = func() {
		phonemizerRunner.Close()
		stressRunner.Close()
		voiceRunner.Close()
	}

	return s, nil
}

// newFromModels builds a Synthesizer directly over already-constructed
// models and compiled tables, independent of how those models were
// created. Production code reaches this only through New; tests use it
// directly with in-memory fakes so the streaming queue logic can be
// exercised without a real ONNX Runtime shared library.
func newFromModels(locale string, phonemizerModel, stressModel, voiceModel onnx.Model, voiceTables *config.VoiceTables, phonemizerTables *config.PhonemizerTables) *Synthesizer {
	s := &Synthesizer{
		locale:           locale,
		voiceTables:      voiceTables,
		phonemizerTables: phonemizerTables,
		normalizer:       normalize.New(locale),
		phonemizer:       g2p.New(phonemizerModel, phonemizerTables),
		stressor:         stress.New(stressModel, phonemizerTables),
		acoustic:         acoustic.New(voiceModel, voiceTables),
	}

	s.options = s.DefaultOptions()

	return s
}

// DefaultOptions returns speaker 0 with the voice config's own scales.
func (s *Synthesizer) DefaultOptions() Options {
	return Options{
		SpeakerID:   0,
		LengthScale: s.voiceTables.LengthScale,
		NoiseScale:  s.voiceTables.NoiseScale,
		NoiseWScale: s.voiceTables.NoiseWScale,
	}
}

// Start clears the pending queue, normalizes and char-encodes text, and
// enqueues one CharId vector per non-empty sentence. opts may be nil, in
// which case DefaultOptions() is used.
func (s *Synthesizer) Start(text string, opts *Options) error {
	if opts != nil {
		s.options = *opts
	} else {
		s.options = s.DefaultOptions()
	}

	s.pending = s.pending[:0]

	for _, sentence := range s.normalizer.Sentences(text) {
		chars := normalize.Graphemes(sentence)
		if len(chars) == 0 {
			continue
		}

		charIDs := charenc.Encode(chars, s.phonemizerTables)
		if len(charIDs) == 0 {
			continue
		}

		// Chars reports only the graphemes the char encoder kept.
		kept := make([]string, 0, len(charIDs))
		for _, g := range chars {
			if _, ok := s.phonemizerTables.CharID(s.phonemizerTables.Canonicalize(g)); ok {
				kept = append(kept, g)
			}
		}

		s.pending = append(s.pending, pendingSentence{chars: kept, charIDs: charIDs})
	}

	return nil
}

// Next dequeues one pending sentence and runs it through G2P, stress
// insertion, voice encoding, and acoustic synthesis. Once the queue is
// empty, Next returns ErrDone with an AudioChunk carrying zero samples and
// IsLast set — calling Next again after that continues to return ErrDone
// rather than panicking or re-running the last sentence.
func (s *Synthesizer) Next(ctx context.Context) (AudioChunk, error) {
	if len(s.pending) == 0 {
		return AudioChunk{SampleRate: s.voiceTables.SampleRate, IsLast: true}, ErrDone
	}

	item := s.pending[0]
	s.pending = s.pending[1:]
	isLast := len(s.pending) == 0

	phonemes, err := s.phonemizer.Run(ctx, item.charIDs)
	if err != nil {
		slog.Error("g2p inference failed", "error", err)
		return AudioChunk{}, fmt.Errorf("synth: g2p: %w", err)
	}

	stressed, err := s.stressor.Run(ctx, phonemes)
	if err != nil {
		slog.Error("stress inference failed", "error", err)
		return AudioChunk{}, fmt.Errorf("synth: stress: %w", err)
	}

	if s.phonemizerTables.ApplyPhonemeMap {
		for i, ph := range stressed {
			if mapped, ok := s.phonemizerTables.PhonemeMap[ph]; ok {
				stressed[i] = mapped
			}
		}
	}

	phonemeIDs := voiceenc.Encode(stressed, s.voiceTables)

	samples, err := s.acoustic.Run(ctx, phonemeIDs, acoustic.Options{
		SpeakerID:   s.options.SpeakerID,
		LengthScale: s.options.LengthScale,
		NoiseScale:  s.options.NoiseScale,
		NoiseWScale: s.options.NoiseWScale,
	})
	if err != nil {
		slog.Error("acoustic inference failed", "error", err)
		return AudioChunk{}, fmt.Errorf("synth: acoustic: %w", err)
	}

	return AudioChunk{
		Samples:    samples,
		SampleRate: s.voiceTables.SampleRate,
		IsLast:     isLast,
		Chars:      item.chars,
		Phonemes:   stressed,
		PhonemeIDs: phonemeIDs,
	}, nil
}

// Close releases all three ONNX sessions. Safe to call multiple times; a
// no-op for a Synthesizer built over caller-supplied models.
func (s *Synthesizer) Close() {
	if s.closer != nil {
		s.closer()
	}
}
