package echo

import "github.com/cwbudde/algo-echo/dsp/tempo"

// Params are the per-sample control values of the echo.
type Params struct {
	Feedback  float64 // fraction of the echo fed back, [0, 1]
	Cutoff    float64 // feedback lowpass cutoff in Hz
	Resonance float64 // feedback lowpass Q, >= 0.5 for a stable sound
	Dry       float64 // input gain, [0, 1]
	Wet       float64 // echo gain, [0, 1]
	Division  tempo.Division
	Timing    tempo.Timing
}

// DefaultParams returns a quarter-note echo with moderate feedback.
func DefaultParams() Params {
	return Params{
		Feedback:  0.625,
		Cutoff:    15000,
		Resonance: 0.707,
		Dry:       1,
		Wet:       1,
		Division:  tempo.Quarter,
		Timing:    tempo.Straight,
	}
}

// ParamSource yields the smoothed parameters of successive samples.
type ParamSource interface {
	Next() Params
}

// Fixed is a ParamSource that returns the same parameters every sample.
type Fixed Params

// Next returns p unchanged.
func (p Fixed) Next() Params { return Params(p) }
