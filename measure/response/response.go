package response

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by response measurements.
var (
	ErrEmptyIR           = errors.New("response: impulse response is empty")
	ErrInvalidFFTSize    = errors.New("response: FFT size must be a power of two >= 2")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrNoDecay           = errors.New("response: echo train does not decay")
)

// SampleProcessor maps one input sample to one output sample.
type SampleProcessor interface {
	ProcessSample(x float64) float64
}

// ProcessorFunc adapts a function to SampleProcessor.
type ProcessorFunc func(x float64) float64

// ProcessSample calls f(x).
func (f ProcessorFunc) ProcessSample(x float64) float64 { return f(x) }

// Impulse feeds a unit impulse followed by n-1 zeros through p and
// returns the n output samples.
func Impulse(p SampleProcessor, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	out[0] = p.ProcessSample(1)
	for i := 1; i < n; i++ {
		out[i] = p.ProcessSample(0)
	}
	return out
}

// Option configures Spectrum.
type Option func(*config)

type config struct {
	window     window.Type
	windowOpts []window.Option
}

// WithWindow tapers the impulse response before the transform.
// The default is rectangular.
func WithWindow(t window.Type, opts ...window.Option) Option {
	return func(c *config) {
		c.window = t
		c.windowOpts = opts
	}
}

// Spectrum returns |H[k]| for bins 0..fftSize/2 of ir. Responses longer
// than fftSize are truncated, shorter ones zero-padded.
func Spectrum(ir []float64, fftSize int, opts ...Option) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	cfg := config{window: window.TypeRectangular}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	frame := make([]float64, min(len(ir), fftSize))
	copy(frame, ir)
	window.Apply(cfg.window, frame, cfg.windowOpts...)

	in := make([]complex128, fftSize)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// MagnitudeDB converts a magnitude spectrum to dB in place and returns it.
func MagnitudeDB(mag []float64) []float64 {
	for i, v := range mag {
		mag[i] = core.LinearToDB(v)
	}
	return mag
}

// BinFrequency returns the center frequency of bin in Hz.
func BinFrequency(bin, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(bin) * sampleRate / float64(fftSize)
}

// Bin returns the bin nearest to freqHz.
func Bin(freqHz float64, fftSize int, sampleRate float64) int {
	if sampleRate <= 0 {
		return 0
	}
	k := int(freqHz*float64(fftSize)/sampleRate + 0.5)
	return int(core.Clamp(float64(k), 0, float64(fftSize/2)))
}
