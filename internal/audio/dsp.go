package audio

import "math"

// PeakNormalize scales samples so the peak amplitude reaches 1.0. Silent
// input (peak 0) is returned unchanged rather than dividing by zero.
func PeakNormalize(samples []float32) []float32 {
	var peak float32

	for _, s := range samples {
		if a := float32(math.Abs(float64(s))); a > peak {
			peak = a
		}
	}

	if peak == 0 {
		return samples
	}

	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = s / peak
	}

	return out
}

// DCBlock removes DC offset with a one-pole high-pass filter
// (y[n] = x[n] - x[n-1] + r*y[n-1]), a standard cheap DC blocker that
// leaves audio-band content effectively untouched.
func DCBlock(samples []float32, sampleRate int) []float32 {
	if len(samples) == 0 {
		return samples
	}

	const r = 0.995

	out := make([]float32, len(samples))

	var prevIn, prevOut float32

	for i, x := range samples {
		y := x - prevIn + r*prevOut
		out[i] = y
		prevIn = x
		prevOut = y
	}

	return out
}

// FadeIn applies a linear fade-in ramp over the given duration in
// milliseconds, leaving samples beyond the ramp unmodified.
func FadeIn(samples []float32, sampleRate int, ms float64) []float32 {
	out := append([]float32(nil), samples...)

	fadeSamples := fadeSampleCount(sampleRate, ms, len(out))
	for i := 0; i < fadeSamples; i++ {
		out[i] *= float32(i) / float32(fadeSamples)
	}

	return out
}

// FadeOut applies a linear fade-out ramp over the given duration in
// milliseconds, leaving samples before the ramp unmodified.
func FadeOut(samples []float32, sampleRate int, ms float64) []float32 {
	out := append([]float32(nil), samples...)

	fadeSamples := fadeSampleCount(sampleRate, ms, len(out))
	start := len(out) - fadeSamples

	for i := start; i < len(out); i++ {
		pos := len(out) - 1 - i
		out[i] *= float32(pos) / float32(fadeSamples)
	}

	return out
}

func fadeSampleCount(sampleRate int, ms float64, total int) int {
	n := int(ms / 1000.0 * float64(sampleRate))
	if n > total {
		n = total
	}

	if n < 1 {
		n = 1
	}

	return n
}
