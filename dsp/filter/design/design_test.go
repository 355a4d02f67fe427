package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-echo/dsp/filter/biquad"
)

func TestLowpassMatchesCookbook(t *testing.T) {
	got := Lowpass(1000, DefaultQ, 48000)
	want := biquad.Coefficients{
		B0: 0.003916126660547,
		B1: 0.007832253321095,
		B2: 0.003916126660547,
		A1: -1.815341082704568,
		A2: 0.831005589346757,
	}
	for i, pair := range [][2]float64{
		{got.B0, want.B0}, {got.B1, want.B1}, {got.B2, want.B2}, {got.A1, want.A1}, {got.A2, want.A2},
	} {
		if math.Abs(pair[0]-pair[1]) > 1e-9 {
			t.Fatalf("coefficient %d: got %.15f want %.15f", i, pair[0], pair[1])
		}
	}
}

func TestLowpassResponseShape(t *testing.T) {
	sr := 48000.0
	for _, q := range []float64{0.5, DefaultQ, 1.5, 3} {
		c := Lowpass(2000, q, sr)
		if !c.Stable() {
			t.Fatalf("q=%v: unstable %+v", q, c)
		}
		if dc := c.DCGain(); math.Abs(dc-1) > 1e-9 {
			t.Fatalf("q=%v: DC gain %v", q, dc)
		}
		// Gain at the corner equals Q.
		if g := math.Sqrt(c.MagnitudeSquared(2000, sr)); math.Abs(g-q) > 1e-6 {
			t.Fatalf("q=%v: corner gain %v", q, g)
		}
		if c.MagnitudeDB(16000, sr) > -24 {
			t.Fatalf("q=%v: stopband too high: %v dB", q, c.MagnitudeDB(16000, sr))
		}
	}
}

func TestHighpassResponseShape(t *testing.T) {
	c := Highpass(500, DefaultQ, 44100)
	if !c.Stable() {
		t.Fatalf("unstable %+v", c)
	}
	if math.Abs(c.DCGain()) > 1e-9 {
		t.Fatalf("DC gain %v, want 0", c.DCGain())
	}
	if db := c.MagnitudeDB(10000, 44100); math.Abs(db) > 0.1 {
		t.Fatalf("passband gain %v dB", db)
	}
}

func TestInvalidInputs(t *testing.T) {
	zero := biquad.Coefficients{}
	cases := []struct {
		name        string
		freq, q, sr float64
	}{
		{"zero freq", 0, 1, 48000},
		{"nyquist", 24000, 1, 48000},
		{"above nyquist", 30000, 1, 48000},
		{"zero rate", 1000, 1, 0},
		{"nan freq", math.NaN(), 1, 48000},
	}
	for _, tc := range cases {
		if got := Lowpass(tc.freq, tc.q, tc.sr); got != zero {
			t.Fatalf("%s: Lowpass = %+v, want zero", tc.name, got)
		}
		if got := Highpass(tc.freq, tc.q, tc.sr); got != zero {
			t.Fatalf("%s: Highpass = %+v, want zero", tc.name, got)
		}
	}
}

func TestInvalidQFallsBackToDefault(t *testing.T) {
	if Lowpass(1000, 0, 48000) != Lowpass(1000, DefaultQ, 48000) {
		t.Fatal("q=0 should use DefaultQ")
	}
	if Lowpass(1000, math.Inf(1), 48000) != Lowpass(1000, DefaultQ, 48000) {
		t.Fatal("q=Inf should use DefaultQ")
	}
}
