package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ClickTrain generates unit clicks every period samples, starting at 0.
// A non-positive period yields a single click.
func ClickTrain(period, length int) []float64 {
	out := make([]float64, length)
	if length == 0 {
		return out
	}
	if period <= 0 {
		out[0] = 1
		return out
	}
	for i := 0; i < length; i += period {
		out[i] = 1
	}
	return out
}

// Peaks returns the indices of samples whose magnitude exceeds threshold.
func Peaks(data []float64, threshold float64) []int {
	var idx []int
	for i, v := range data {
		if math.Abs(v) > threshold {
			idx = append(idx, i)
		}
	}
	return idx
}
