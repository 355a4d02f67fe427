// Package playback drives the echo engine from an audio device callback.
//
// A Renderer pulls blocks from a source, runs them through the engine and
// encodes interleaved float32 little-endian frames. Control changes from
// other goroutines are queued and applied on the audio goroutine at the
// next block boundary, so the engine itself is never shared. Player
// connects a Renderer to the default output device through oto.
package playback
