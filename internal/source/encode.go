package source

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

// WriteWAV encodes buf as integer PCM WAV at bitDepth (16, 24 or 32).
// Samples are clipped to [-1, 1].
func WriteWAV(w io.WriteSeeker, buf *audio.FloatBuffer, bitDepth int) error {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 {
		return ErrInvalidFile
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	full := float64(int64(1)<<(bitDepth-1)) - 1
	ints := &audio.IntBuffer{
		Format:         buf.Format,
		Data:           make([]int, len(buf.Data)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range buf.Data {
		ints.Data[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * full))
	}

	enc := wav.NewEncoder(w, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels, wavFormatPCM)
	if err := enc.Write(ints); err != nil {
		return fmt.Errorf("source: wav encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("source: wav encode: %w", err)
	}
	return nil
}
