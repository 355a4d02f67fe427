// Package level measures signal levels for metering.
package level

import "math"

// Stats holds level statistics of a block of samples.
//
//nolint:revive
type Stats struct {
	Length         int
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	PeakPos        int
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes the level statistics of signal.
func Calculate(signal []float64) Stats {
	var m Meter
	m.Update(signal)
	return m.Result()
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// Meter accumulates level statistics across blocks. The zero value is
// ready to use.
type Meter struct {
	n       int
	sumSq   float64
	peak    float64
	peakPos int
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
			m.peakPos = m.n
		}
		m.sumSq += x * x
		m.n++
	}
}

// Result returns the statistics of everything since the last Reset.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return emptyStats()
	}

	rms := math.Sqrt(m.sumSq / float64(m.n))
	var crest, crestdB float64
	if rms > 0 {
		crest = m.peak / rms
		crestdB = ampTodB(crest)
	}

	return Stats{
		Length:         m.n,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           m.peak,
		Peak_dB:        ampTodB(m.peak),
		PeakPos:        m.peakPos,
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         m.sumSq,
	}
}

// Reset clears the accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}
