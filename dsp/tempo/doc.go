// Package tempo converts musical note lengths into beat and sample counts.
//
// A [Division] names a note length in bars (1/32 through 4 bars) and a
// [Timing] scales it (straight, dotted, triplet). The conversion uses the
// quarter-note beat convention, so the "1/4" division is exactly one beat:
//
//	beats := tempo.Beats(tempo.Quarter, tempo.Dotted)            // 1.5
//	n := tempo.Samples(tempo.Quarter, tempo.Straight, 44100, 120) // 22050
//
// Both enumerations are closed and backed by fixed lookup tables.
package tempo
