package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-echo/dsp/filter/lowpass"
	"github.com/cwbudde/algo-echo/dsp/window"
	"github.com/cwbudde/algo-echo/internal/testutil"
)

func TestImpulseIdentity(t *testing.T) {
	ir := Impulse(ProcessorFunc(func(x float64) float64 { return x }), 8)
	testutil.RequireSliceNearlyEqual(t, ir, testutil.Impulse(8, 0), 0)
	if Impulse(ProcessorFunc(func(x float64) float64 { return x }), 0) != nil {
		t.Fatal("n=0 should return nil")
	}
}

func TestSpectrumOfUnitImpulseIsFlat(t *testing.T) {
	mag, err := Spectrum(testutil.Impulse(64, 0), 256)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	if len(mag) != 129 {
		t.Fatalf("len = %d, want 129", len(mag))
	}
	for k, v := range mag {
		if math.Abs(v-1) > 1e-12 {
			t.Fatalf("bin %d = %v, want 1", k, v)
		}
	}
}

func TestSpectrumMatchesLowpassResponse(t *testing.T) {
	const (
		sr      = 48000.0
		fftSize = 4096
	)
	f := lowpass.New()
	f.SetCoefficients(sr, 1000, 0.707)
	ir := Impulse(f, fftSize)

	mag, err := Spectrum(ir, fftSize)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	c := f.Coefficients()
	for _, k := range []int{0, 10, 85, 200, 1000, fftSize / 2} {
		want := math.Sqrt(c.MagnitudeSquared(BinFrequency(k, fftSize, sr), sr))
		if math.Abs(mag[k]-want) > 1e-6 {
			t.Errorf("bin %d: got %v, want %v", k, mag[k], want)
		}
	}
}

func TestSpectrumWindowLeavesHead(t *testing.T) {
	// A right-sloped window does not touch the first half, so an impulse
	// at index 0 still has a flat spectrum.
	mag, err := Spectrum(testutil.Impulse(64, 0), 64,
		WithWindow(window.TypeHann, window.WithSlope(window.SlopeRight)))
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	for k, v := range mag {
		if math.Abs(v-1) > 1e-12 {
			t.Fatalf("bin %d = %v, want 1", k, v)
		}
	}
}

func TestSpectrumErrors(t *testing.T) {
	if _, err := Spectrum(nil, 64); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("empty: err = %v", err)
	}
	for _, n := range []int{0, 1, 3, 100} {
		if _, err := Spectrum([]float64{1}, n); !errors.Is(err, ErrInvalidFFTSize) {
			t.Fatalf("size %d: err = %v", n, err)
		}
	}
}

func TestBinMapping(t *testing.T) {
	if got := BinFrequency(10, 1024, 48000); math.Abs(got-468.75) > 1e-12 {
		t.Fatalf("BinFrequency = %v", got)
	}
	if got := BinFrequency(1, 0, 48000); got != 0 {
		t.Fatalf("BinFrequency with zero size = %v", got)
	}
	if got := Bin(468.75, 1024, 48000); got != 10 {
		t.Fatalf("Bin = %d, want 10", got)
	}
	if got := Bin(1e9, 1024, 48000); got != 512 {
		t.Fatalf("Bin above Nyquist = %d, want 512", got)
	}
}

func TestMagnitudeDB(t *testing.T) {
	got := MagnitudeDB([]float64{1, 0.1, 0})
	if got[0] != 0 || math.Abs(got[1]+20) > 1e-12 || !math.IsInf(got[2], -1) {
		t.Fatalf("MagnitudeDB = %v", got)
	}
}
