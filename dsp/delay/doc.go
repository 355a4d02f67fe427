// Package delay provides a tempo-synchronized circular delay line.
//
// A [Line] is sized for the worst-case note length at the current sample
// rate and tempo, and reallocated only when either of those changes. Per
// sample, [Line.SetDelay] selects the delay length from a note division and
// timing, and [Line.Process] reads the delayed sample before writing the
// new one.
package delay
