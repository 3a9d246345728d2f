package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/example/go-voxcore/internal/audio"
	"github.com/example/go-voxcore/internal/onnx"
	"github.com/example/go-voxcore/internal/synth"
	"github.com/spf13/cobra"
)

func newSynthCmd() *cobra.Command {
	var text string
	var out string
	var speakerID int64
	var lengthScale float32
	var noiseScale float32
	var noiseWScale float32
	var useDefaultScales bool
	var normalizePeak bool
	var dcBlock bool
	var fadeInMS float64
	var fadeOutMS float64

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize text to a WAV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputText, err := readSynthText(text, os.Stdin)
			if err != nil {
				return err
			}

			info, err := onnx.Bootstrap(onnx.RuntimeConfig{
				ORTLibraryPath: activeCfg.Runtime.ORTLibraryPath,
				ORTVersion:     activeCfg.Runtime.ORTVersion,
			})
			if err != nil {
				return fmt.Errorf("bootstrap ort runtime: %w", err)
			}

			s, err := synth.New(synth.Config{
				Locale:               activeCfg.Locale,
				VoiceModelPath:       activeCfg.Paths.VoiceModelPath,
				VoiceConfigPath:      activeCfg.Paths.VoiceConfigPath,
				PhonemizerModelPath:  activeCfg.Paths.PhonemizerModelPath,
				PhonemizerConfigPath: activeCfg.Paths.PhonemizerConfigPath,
				StressModelPath:      activeCfg.Paths.StressModelPath,
				Runtime: onnx.RunnerConfig{
					LibraryPath: info.LibraryPath,
				},
			})
			if err != nil {
				return fmt.Errorf("construct synthesizer: %w", err)
			}
			defer s.Close()

			var opts *synth.Options
			if !useDefaultScales {
				opts = &synth.Options{
					SpeakerID:   speakerID,
					LengthScale: lengthScale,
					NoiseScale:  noiseScale,
					NoiseWScale: noiseWScale,
				}
			}

			if err := s.Start(inputText, opts); err != nil {
				return fmt.Errorf("start synthesis: %w", err)
			}

			samples, sampleRate, err := drain(cmd.Context(), s)
			if err != nil {
				return err
			}

			var hooks []audio.Hook

			if dcBlock {
				hooks = append(hooks, func(s []float32) []float32 { return audio.DCBlock(s, sampleRate) })
			}

			if fadeInMS > 0 {
				hooks = append(hooks, func(s []float32) []float32 { return audio.FadeIn(s, sampleRate, fadeInMS) })
			}

			if fadeOutMS > 0 {
				hooks = append(hooks, func(s []float32) []float32 { return audio.FadeOut(s, sampleRate, fadeOutMS) })
			}

			if normalizePeak {
				hooks = append(hooks, audio.PeakNormalize)
			}

			samples = audio.ApplyHooks(samples, hooks...)

			wavData, err := audio.EncodeWAV(samples, sampleRate)
			if err != nil {
				return fmt.Errorf("encode wav: %w", err)
			}

			return os.WriteFile(out, wavData, 0o644)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to synthesize (reads stdin if omitted)")
	cmd.Flags().StringVar(&out, "out", "out.wav", "Output WAV file path")
	cmd.Flags().Int64Var(&speakerID, "speaker-id", 0, "Speaker ID for multi-speaker voices")
	cmd.Flags().Float32Var(&lengthScale, "length-scale", 1.0, "Phoneme duration scale")
	cmd.Flags().Float32Var(&noiseScale, "noise-scale", 0.667, "Stochastic duration noise scale")
	cmd.Flags().Float32Var(&noiseWScale, "noise-w-scale", 0.8, "Stochastic duration predictor noise scale")
	cmd.Flags().BoolVar(&useDefaultScales, "default-scales", true, "Use the voice config's own scales instead of the flags above")
	cmd.Flags().BoolVar(&normalizePeak, "normalize", false, "Peak-normalize the output audio")
	cmd.Flags().BoolVar(&dcBlock, "dc-block", false, "Remove DC offset from the output audio")
	cmd.Flags().Float64Var(&fadeInMS, "fade-in-ms", 0, "Fade-in duration in milliseconds")
	cmd.Flags().Float64Var(&fadeOutMS, "fade-out-ms", 0, "Fade-out duration in milliseconds")

	return cmd
}

// readSynthText returns text if non-empty, otherwise reads all of stdin.
func readSynthText(text string, stdin io.Reader) (string, error) {
	if text != "" {
		return text, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return string(data), nil
}

// drain calls Next repeatedly until the queue is exhausted, concatenating
// every chunk's samples in order.
func drain(ctx context.Context, s *synth.Synthesizer) ([]float32, int, error) {
	var samples []float32
	sampleRate := 0

	for {
		chunk, err := s.Next(ctx)
		if errors.Is(err, synth.ErrDone) {
			if sampleRate == 0 {
				sampleRate = chunk.SampleRate
			}

			break
		}

		if err != nil {
			return nil, 0, fmt.Errorf("synthesize chunk: %w", err)
		}

		samples = append(samples, chunk.Samples...)
		sampleRate = chunk.SampleRate

		if chunk.IsLast {
			break
		}
	}

	return samples, sampleRate, nil
}
