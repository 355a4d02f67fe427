package tempo

import (
	"errors"
	"fmt"
	"strings"
)

// MaxBeats is the beat length of the longest division (4 bars).
// Timing modifiers are not factored in; the dotted worst case is
// MaxBeats*DottedFactor.
const MaxBeats = 16.0

// DottedFactor is the largest timing multiplier.
const DottedFactor = 1.5

// ErrUnknownDivision is returned when a division name cannot be parsed.
var ErrUnknownDivision = errors.New("tempo: unknown note division")

// ErrUnknownTiming is returned when a timing name cannot be parsed.
var ErrUnknownTiming = errors.New("tempo: unknown timing")

// Division is a note length expressed in bars.
type Division int

// Note divisions, shortest first.
const (
	ThirtySecond Division = iota // 1/32 bar
	Sixteenth                    // 1/16 bar
	Eighth                       // 1/8 bar
	Quarter                      // 1/4 bar
	Half                         // 1/2 bar
	Whole                        // 1 bar
	TwoBars                      // 2 bars
	FourBars                     // 4 bars

	divisionCount
)

var divisionBeats = [divisionCount]float64{1.0 / 8, 1.0 / 4, 1.0 / 2, 1, 2, 4, 8, 16}

var divisionBars = [divisionCount]float64{1.0 / 32, 1.0 / 16, 1.0 / 8, 1.0 / 4, 1.0 / 2, 1, 2, 4}

var divisionNames = [divisionCount]string{"1/32", "1/16", "1/8", "1/4", "1/2", "1", "2", "4"}

// Divisions returns all divisions in ascending length.
func Divisions() []Division {
	out := make([]Division, divisionCount)
	for i := range out {
		out[i] = Division(i)
	}
	return out
}

// Valid reports whether d is one of the defined divisions.
func (d Division) Valid() bool {
	return d >= 0 && d < divisionCount
}

// Beats returns the straight length of d in beats.
func (d Division) Beats() float64 {
	if !d.Valid() {
		return divisionBeats[Quarter]
	}
	return divisionBeats[d]
}

// Bars returns the length of d in bars.
func (d Division) Bars() float64 {
	if !d.Valid() {
		return divisionBars[Quarter]
	}
	return divisionBars[d]
}

// String returns the bar notation, e.g. "1/4".
func (d Division) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Division(%d)", int(d))
	}
	return divisionNames[d]
}

// ParseDivision parses the bar notation produced by String.
func ParseDivision(s string) (Division, error) {
	s = strings.TrimSpace(s)
	for i, name := range divisionNames {
		if s == name {
			return Division(i), nil
		}
	}
	return Quarter, fmt.Errorf("%w: %q", ErrUnknownDivision, s)
}

// Timing scales a division's beat length.
type Timing int

// Timing modifiers. Straight is the zero value.
const (
	Straight Timing = iota
	Dotted
	Triplet

	timingCount
)

var timingFactors = [timingCount]float64{1.0, DottedFactor, 0.75}

var timingNames = [timingCount]string{"straight", "dotted", "triplet"}

// Timings returns all timing modifiers.
func Timings() []Timing {
	return []Timing{Straight, Dotted, Triplet}
}

// Valid reports whether t is one of the defined timings.
func (t Timing) Valid() bool {
	return t >= 0 && t < timingCount
}

// Factor returns the beat multiplier of t.
func (t Timing) Factor() float64 {
	if !t.Valid() {
		return 1
	}
	return timingFactors[t]
}

// String returns the lower-case timing name.
func (t Timing) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Timing(%d)", int(t))
	}
	return timingNames[t]
}

// ParseTiming parses a timing name (case-insensitive).
func ParseTiming(s string) (Timing, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range timingNames {
		if s == name {
			return Timing(i), nil
		}
	}
	return Straight, fmt.Errorf("%w: %q", ErrUnknownTiming, s)
}

// Beats returns the length of division d under timing t in beats.
func Beats(d Division, t Timing) float64 {
	return d.Beats() * t.Factor()
}

// Samples converts d and t to a sample count at sampleRate and bpm,
// truncated toward zero. bpm must be > 0.
func Samples(d Division, t Timing, sampleRate, bpm float64) int {
	return int(Beats(d, t) * 60 * sampleRate / bpm)
}

// MaxSamples returns the worst-case delay length in samples (the dotted
// longest division), truncated toward zero. bpm must be > 0.
func MaxSamples(sampleRate, bpm float64) int {
	return int(MaxBeats * DottedFactor * 60 * sampleRate / bpm)
}
