package host

import (
	"math"
	"testing"
)

func TestSmoother(t *testing.T) {
	t.Run("Linear", func(t *testing.T) {
		s := NewSmoother(LinearSmoothing, 10)
		s.Reset(0)
		s.SetTarget(1)
		for i := range 10 {
			want := float64(i+1) * 0.1
			if got := s.Next(); math.Abs(got-want) > 1e-9 {
				t.Fatalf("sample %d: got %v, want %v", i, got, want)
			}
		}
		if s.IsSmoothing() {
			t.Fatal("still smoothing after ramp")
		}
		if got := s.Next(); got != 1 {
			t.Fatalf("after ramp: got %v, want 1", got)
		}
	})

	t.Run("Exponential", func(t *testing.T) {
		s := NewSmoother(ExponentialSmoothing, 0.9)
		s.SetTarget(1)
		prev := 0.0
		for range 50 {
			v := s.Next()
			if v <= prev || v > 1 {
				t.Fatalf("not approaching monotonically: %v after %v", v, prev)
			}
			prev = v
		}
		for range 200 {
			s.Next()
		}
		if s.IsSmoothing() || s.Current() != 1 {
			t.Fatalf("did not settle: %v", s.Current())
		}
	})

	t.Run("Logarithmic", func(t *testing.T) {
		s := NewSmoother(LogarithmicSmoothing, 4)
		s.Reset(100)
		s.SetTarget(1600)
		want := []float64{200, 400, 800, 1600}
		for i, w := range want {
			if got := s.Next(); math.Abs(got-w) > 1e-6 {
				t.Fatalf("sample %d: got %v, want %v", i, got, w)
			}
		}
		if s.IsSmoothing() {
			t.Fatal("still smoothing after ramp")
		}
	})
}

func TestSmootherRetarget(t *testing.T) {
	s := NewSmoother(LinearSmoothing, 10)
	s.SetTarget(1)
	for range 5 {
		s.Next()
	}
	// Returning to the current value ends the ramp.
	s.SetTarget(s.Current())
	if s.IsSmoothing() {
		t.Fatal("retarget to current value should stop smoothing")
	}
	// Reversing mid-ramp restarts from the current value.
	s.SetTarget(0)
	for range 10 {
		s.Next()
	}
	if s.Current() != 0 {
		t.Fatalf("got %v, want 0", s.Current())
	}
}

func TestSmootherZeroRateJumps(t *testing.T) {
	s := NewSmoother(LinearSmoothing, 0)
	s.SetTarget(3)
	if s.IsSmoothing() || s.Next() != 3 {
		t.Fatalf("zero rate should jump, got %v", s.Current())
	}
}

func TestSmootherSetTime(t *testing.T) {
	lin := NewSmoother(LinearSmoothing, 0)
	lin.SetTime(48000, 20)
	lin.SetTarget(1)
	n := 0
	for lin.IsSmoothing() {
		lin.Next()
		n++
	}
	if n != 960 {
		t.Fatalf("linear ramp took %d samples, want 960", n)
	}

	exp := NewSmoother(ExponentialSmoothing, 0)
	exp.SetTime(48000, 20)
	if want := math.Exp(-6.908 / 960); math.Abs(exp.rate-want) > 1e-15 {
		t.Fatalf("rate = %v, want %v", exp.rate, want)
	}
}
