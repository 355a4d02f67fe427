// Package echo implements a tempo-synchronized stereo echo: a delay line
// per channel, a resonant lowpass in the feedback path and a dry/wet mix.
//
// Signal flow per channel and sample:
//
//	filtered = lowpass(x + feedback*previousEcho)
//	echo     = delay(filtered)
//	out      = dry*x + wet*echo
//
// The fed-back value is the previous sample's delay output, so successive
// repeats are spaced one sample further apart than the delay length.
//
// # Usage
//
// The host calls [Engine.BeginBlock] once per block with the current sample
// rate and tempo, then processes samples with the smoothed parameters of
// that sample:
//
//	e, err := echo.New(core.WithSampleRate(48000), core.WithTempo(120))
//	if err := e.BeginBlock(48000, bpm); err != nil { ... }
//	for i := range left {
//		left[i], right[i] = e.ProcessSample(params.Next(), left[i], right[i])
//	}
//
// [Engine.ProcessBlock] and [Engine.ProcessBuffer] run the same pipeline over
// planar slices or an interleaved go-audio buffer.
//
// An Engine is not safe for concurrent use. Only tempo and sample-rate
// changes allocate.
package echo
