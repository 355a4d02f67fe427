// Package biquad provides second-order IIR filter runtime primitives.
//
// [Coefficients] is an immutable, a0-normalized coefficient snapshot. A
// [State] holds the two-sample input and output history of one channel and
// runs the Direct Form I difference equation against whatever snapshot it
// is handed, so several channels can share one coefficient set without
// aliasing.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
