// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing, using the RBJ audio-EQ
// cookbook equations (bilinear transform of the analog prototype with
// frequency pre-warping).
package design
