// Package host provides the collaborators the echo engine expects from a
// plugin host: smoothed parameters with ranges and defaults, and the
// transport supplying sample rate and tempo per block.
package host
