package lowpass

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-echo/dsp/filter/design"
	"github.com/cwbudde/algo-echo/internal/testutil"
)

func TestNewIsBypass(t *testing.T) {
	f := New()
	if !f.Coefficients().IsIdentity() {
		t.Fatalf("new filter coefficients = %+v", f.Coefficients())
	}
	if got := f.Process(Left, 0.3); got != 0.3 {
		t.Fatalf("bypass output = %v", got)
	}
}

func TestSetCoefficientsChangeDetection(t *testing.T) {
	f := New()
	if !f.SetCoefficients(44100, 15000, 0.707) {
		t.Fatal("first call should recompute")
	}
	if f.SetCoefficients(44100, 15000, 0.707) {
		t.Fatal("unchanged inputs should not recompute")
	}
	if !f.SetCoefficients(44100, 14999, 0.707) {
		t.Fatal("cutoff change should recompute")
	}
	if !f.SetCoefficients(44100, 14999, 0.8) {
		t.Fatal("resonance change should recompute")
	}
	if !f.SetCoefficients(48000, 14999, 0.8) {
		t.Fatal("sample rate change should recompute")
	}
}

func TestCoefficientsIndependentOfCallFrequency(t *testing.T) {
	a, b := New(), New()
	in := testutil.DeterministicSine(300, 44100, 0.5, 512)
	a.SetCoefficients(44100, 2000, 1.2)
	for i, x := range in {
		b.SetCoefficients(44100, 2000, 1.2)
		ya := a.Process(Left, x)
		yb := b.Process(Left, x)
		if ya != yb {
			t.Fatalf("sample %d: %v != %v", i, ya, yb)
		}
	}
}

func TestDCConvergence(t *testing.T) {
	for _, tc := range []struct{ cutoff, q float64 }{
		{20, 0.5}, {200, 0.707}, {2000, 3}, {15000, 0.707},
	} {
		f := New()
		f.SetCoefficients(44100, tc.cutoff, tc.q)
		var y float64
		for i := 0; i < 44100*2; i++ {
			y = f.Process(Left, 0.75)
		}
		if math.Abs(y-0.75) > 1e-6 {
			t.Fatalf("cutoff=%v q=%v: steady state %v, want 0.75", tc.cutoff, tc.q, y)
		}
	}
}

func TestCutoffClamped(t *testing.T) {
	sr := 48000.0
	for _, cutoff := range []float64{-100, 0, 0.001, math.Inf(-1)} {
		c := Design(sr, cutoff, 0.707)
		if c != design.Lowpass(MinCutoff, 0.707, sr) {
			t.Fatalf("cutoff %v: got %+v", cutoff, c)
		}
		if !c.Stable() {
			t.Fatalf("cutoff %v: unstable", cutoff)
		}
	}
	near := Design(sr, 23999.9, 0.707)
	if near != design.Lowpass(sr*nyquistGuard, 0.707, sr) {
		t.Fatalf("near-Nyquist cutoff not clamped: %+v", near)
	}
}

func TestNyquistBypasses(t *testing.T) {
	for _, cutoff := range []float64{24000, 30000, math.Inf(1), math.NaN()} {
		if c := Design(48000, cutoff, 0.707); !c.IsIdentity() {
			t.Fatalf("cutoff %v: got %+v, want identity", cutoff, c)
		}
	}
	if c := Design(0, 1000, 0.707); !c.IsIdentity() {
		t.Fatalf("invalid rate: got %+v", c)
	}
}

func TestResonanceGuard(t *testing.T) {
	if Design(48000, 1000, 0) != Design(48000, 1000, MinQ) {
		t.Fatal("q below MinQ not raised")
	}
	if Design(48000, 1000, math.NaN()) != design.Lowpass(1000, design.DefaultQ, 48000) {
		t.Fatal("NaN q should use DefaultQ")
	}
}

func TestAllCoefficientsStable(t *testing.T) {
	for _, sr := range []float64{22050, 44100, 96000} {
		for cutoff := 20.0; cutoff < 30000; cutoff *= 1.5 {
			for _, q := range []float64{0.5, 0.707, 1, 2, 3} {
				c := Design(sr, cutoff, q)
				if !c.Stable() {
					t.Fatalf("sr=%v cutoff=%v q=%v unstable: %+v", sr, cutoff, q, c)
				}
			}
		}
	}
}

func TestSidesAreIndependent(t *testing.T) {
	f := New()
	f.SetCoefficients(44100, 1000, 2)
	f.Process(Left, 1)
	for i := 0; i < 16; i++ {
		if got := f.Process(Right, 0); got != 0 {
			t.Fatalf("right side leaked at %d: %v", i, got)
		}
	}
	f.Reset()
	if got := f.Process(Left, 0); got != 0 {
		t.Fatalf("left history not cleared: %v", got)
	}
}

func TestProcessSampleUsesLeft(t *testing.T) {
	a, b := New(), New()
	a.SetCoefficients(44100, 500, 1)
	b.SetCoefficients(44100, 500, 1)
	for i := 0; i < 8; i++ {
		x := float64(i%3) - 1
		if a.ProcessSample(x) != b.Process(Left, x) {
			t.Fatalf("ProcessSample diverged at %d", i)
		}
	}
}

func TestAttenuatesAboveCutoff(t *testing.T) {
	f := New()
	f.SetCoefficients(48000, 500, design.DefaultQ)
	in := testutil.DeterministicSine(8000, 48000, 1, 4800)
	peak := 0.0
	for i, x := range in {
		y := f.Process(Left, x)
		if i > 480 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}
	// Second-order rolloff: four octaves above the corner is about -48 dB.
	if peak > 0.01 {
		t.Fatalf("8 kHz leaked through 500 Hz lowpass: peak %v", peak)
	}
}
