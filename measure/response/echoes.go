package response

import (
	"math"
)

// Echo is one repeat in an echo train.
type Echo struct {
	Index     int     // sample index of the peak
	Amplitude float64 // signed peak value
}

// Echoes finds the repeats of an echo train. Each contiguous run of
// samples with |v| >= threshold yields one Echo at its largest magnitude.
// threshold must be positive.
func Echoes(ir []float64, threshold float64) []Echo {
	if threshold <= 0 {
		return nil
	}

	var (
		out    []Echo
		inRun  bool
		peak   Echo
		peakAb float64
	)
	for i, v := range ir {
		a := math.Abs(v)
		if a < threshold {
			if inRun {
				out = append(out, peak)
				inRun = false
			}
			continue
		}
		if !inRun || a > peakAb {
			peak = Echo{Index: i, Amplitude: v}
			peakAb = a
		}
		inRun = true
	}
	if inRun {
		out = append(out, peak)
	}
	return out
}

// DecayTime estimates the time in seconds for the echo train to fall by
// 60 dB, from a least-squares fit of echo level against position.
func DecayTime(echoes []Echo, sampleRate float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}
	if len(echoes) < 2 {
		return 0, ErrNoDecay
	}

	var sumX, sumY, sumXX, sumXY float64
	for _, e := range echoes {
		x := float64(e.Index)
		y := 20 * math.Log10(math.Abs(e.Amplitude))
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(len(echoes))
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, ErrNoDecay
	}

	// dB per sample
	slope := (n*sumXY - sumX*sumY) / denom
	if slope >= 0 || math.IsNaN(slope) {
		return 0, ErrNoDecay
	}
	return -60 / (slope * sampleRate), nil
}
