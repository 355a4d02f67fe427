// Package source loads audio files into memory as stereo float buffers
// and streams them block by block for the echo engine.
//
// Supported containers are WAV and AIFF (8, 16, 24 and 32-bit PCM), MP3
// and Ogg Vorbis. Mono files are duplicated to both channels; files with
// more than two channels keep the first two. Samples are normalized to
// [-1, 1).
package source
