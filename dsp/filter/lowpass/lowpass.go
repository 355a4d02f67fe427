package lowpass

import (
	"math"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/filter/biquad"
	"github.com/cwbudde/algo-echo/dsp/filter/design"
)

const (
	// MinCutoff is the lowest cutoff frequency the filter accepts, in Hz.
	MinCutoff = 1.0
	// MinQ is the lowest resonance the filter accepts. Below it the
	// response droops well before the cutoff.
	MinQ = 0.1
	// nyquistGuard keeps the designed cutoff strictly below Nyquist.
	nyquistGuard = 0.499
)

// Side selects one of the two filter histories.
type Side int

const (
	Left Side = iota
	Right
)

// Filter is a stereo resonant lowpass sharing one coefficient set.
type Filter struct {
	coeffs biquad.Coefficients
	states [2]biquad.State

	sampleRate float64
	cutoff     float64
	q          float64
	valid      bool
}

// New returns a filter that passes the signal through until
// SetCoefficients is called.
func New() *Filter {
	return &Filter{coeffs: biquad.Identity()}
}

// Design returns the coefficients for sampleRate, cutoffHz and q after
// guarding the inputs: cutoff is clamped to [MinCutoff, Nyquist), a cutoff
// at or above Nyquist bypasses the filter, and q is raised to MinQ.
func Design(sampleRate, cutoffHz, q float64) biquad.Coefficients {
	if !core.IsPositive(sampleRate) {
		return biquad.Identity()
	}
	if cutoffHz >= sampleRate/2 || math.IsNaN(cutoffHz) {
		return biquad.Identity()
	}
	if math.IsNaN(q) {
		q = design.DefaultQ
	}
	cutoffHz = core.Clamp(cutoffHz, MinCutoff, sampleRate*nyquistGuard)
	if q < MinQ {
		q = MinQ
	}
	c := design.Lowpass(cutoffHz, q, sampleRate)
	if !c.Stable() {
		return biquad.Identity()
	}
	return c
}

// SetCoefficients recomputes the shared coefficients if sampleRate,
// cutoffHz or q differ from the previous call. It reports whether a
// recomputation happened.
func (f *Filter) SetCoefficients(sampleRate, cutoffHz, q float64) bool {
	if f.valid && sampleRate == f.sampleRate && cutoffHz == f.cutoff && q == f.q {
		return false
	}
	f.coeffs = Design(sampleRate, cutoffHz, q)
	f.sampleRate = sampleRate
	f.cutoff = cutoffHz
	f.q = q
	f.valid = true
	return true
}

// Coefficients returns the current coefficient snapshot.
func (f *Filter) Coefficients() biquad.Coefficients {
	return f.coeffs
}

// Process filters one sample on the given side.
func (f *Filter) Process(side Side, x float64) float64 {
	if side != Right {
		side = Left
	}
	return f.states[side].Process(f.coeffs, x)
}

// ProcessSample filters one sample on the left side.
func (f *Filter) ProcessSample(x float64) float64 {
	return f.Process(Left, x)
}

// Reset clears both histories. Coefficients are kept.
func (f *Filter) Reset() {
	f.states[Left].Reset()
	f.states[Right].Reset()
}
