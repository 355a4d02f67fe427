package tempo

import (
	"errors"
	"testing"
)

func TestBeatsTable(t *testing.T) {
	want := map[Division]float64{
		ThirtySecond: 0.125,
		Sixteenth:    0.25,
		Eighth:       0.5,
		Quarter:      1,
		Half:         2,
		Whole:        4,
		TwoBars:      8,
		FourBars:     16,
	}
	for d, beats := range want {
		if got := Beats(d, Straight); got != beats {
			t.Fatalf("Beats(%s, straight) = %v, want %v", d, got, beats)
		}
	}
}

func TestTimingFactors(t *testing.T) {
	tests := []struct {
		timing Timing
		want   float64
	}{
		{Straight, 1},
		{Dotted, 1.5},
		{Triplet, 0.75},
	}
	for _, tc := range tests {
		if got := Beats(Quarter, tc.timing); got != tc.want {
			t.Fatalf("Beats(1/4, %s) = %v, want %v", tc.timing, got, tc.want)
		}
	}
}

func TestMaxBeatsIsLongestStraight(t *testing.T) {
	for _, d := range Divisions() {
		if d.Beats() > MaxBeats {
			t.Fatalf("%s has %v beats > MaxBeats", d, d.Beats())
		}
	}
	if got := Beats(FourBars, Dotted); got != MaxBeats*DottedFactor {
		t.Fatalf("dotted 4 bars = %v, want %v", got, MaxBeats*DottedFactor)
	}
}

func TestSamplesQuarterAt120(t *testing.T) {
	if got := Samples(Quarter, Straight, 44100, 120); got != 22050 {
		t.Fatalf("Samples = %d, want 22050", got)
	}
}

func TestSamplesTruncates(t *testing.T) {
	// 0.125 beats * 60 * 44100 / 133 = 2486.84...
	if got := Samples(ThirtySecond, Straight, 44100, 133); got != 2486 {
		t.Fatalf("Samples = %d, want 2486", got)
	}
}

func TestSamplesBoundedByMaxSamples(t *testing.T) {
	rates := []float64{22050, 44100, 48000, 96000, 192000}
	tempos := []float64{20, 60, 90, 120, 174, 300}
	for _, sr := range rates {
		for _, bpm := range tempos {
			limit := MaxSamples(sr, bpm)
			for _, d := range Divisions() {
				for _, tm := range Timings() {
					n := Samples(d, tm, sr, bpm)
					if n < 0 || n > limit {
						t.Fatalf("Samples(%s,%s,%v,%v) = %d outside [0,%d]", d, tm, sr, bpm, n, limit)
					}
				}
			}
		}
	}
}

func TestDivisionBars(t *testing.T) {
	if got := Quarter.Bars(); got != 0.25 {
		t.Fatalf("Quarter.Bars() = %v", got)
	}
	if got := FourBars.Bars(); got != 4 {
		t.Fatalf("FourBars.Bars() = %v", got)
	}
	// One bar is four beats under the quarter-note convention.
	for _, d := range Divisions() {
		if d.Beats() != 4*d.Bars() {
			t.Fatalf("%s: beats %v != 4*bars %v", d, d.Beats(), d.Bars())
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, d := range Divisions() {
		got, err := ParseDivision(d.String())
		if err != nil || got != d {
			t.Fatalf("ParseDivision(%q) = %v, %v", d.String(), got, err)
		}
	}
	for _, tm := range Timings() {
		got, err := ParseTiming(tm.String())
		if err != nil || got != tm {
			t.Fatalf("ParseTiming(%q) = %v, %v", tm.String(), got, err)
		}
	}
	if got, err := ParseTiming(" Dotted "); err != nil || got != Dotted {
		t.Fatalf("ParseTiming case-insensitive: %v, %v", got, err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseDivision("1/3"); !errors.Is(err, ErrUnknownDivision) {
		t.Fatalf("expected ErrUnknownDivision, got %v", err)
	}
	if _, err := ParseTiming("swing"); !errors.Is(err, ErrUnknownTiming) {
		t.Fatalf("expected ErrUnknownTiming, got %v", err)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	if got := Division(42).Beats(); got != 1 {
		t.Fatalf("invalid division beats = %v, want 1", got)
	}
	if got := Timing(-1).Factor(); got != 1 {
		t.Fatalf("invalid timing factor = %v, want 1", got)
	}
	if Division(8).Valid() || Timing(3).Valid() {
		t.Fatal("out-of-range values reported valid")
	}
	if got := Division(9).String(); got != "Division(9)" {
		t.Fatalf("String = %q", got)
	}
}
