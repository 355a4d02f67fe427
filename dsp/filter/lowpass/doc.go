// Package lowpass provides the resonant second-order lowpass used in an
// echo feedback path.
//
// A [Filter] owns one shared coefficient snapshot and the independent
// left/right histories. Coefficients are recomputed only when the sample
// rate, cutoff or resonance changes, so calling [Filter.SetCoefficients]
// once per sample costs a comparison in steady state.
package lowpass
