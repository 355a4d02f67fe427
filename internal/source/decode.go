package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// DecodeFunc decodes a whole stream into an interleaved stereo buffer.
type DecodeFunc func(r io.ReadSeeker) (*audio.FloatBuffer, error)

var decoders = map[string]DecodeFunc{
	".wav":  DecodeWAV,
	".wave": DecodeWAV,
	".aif":  DecodeAIFF,
	".aiff": DecodeAIFF,
	".mp3":  DecodeMP3,
	".ogg":  DecodeVorbis,
	".oga":  DecodeVorbis,
}

// Extensions returns the file extensions Open understands.
func Extensions() []string {
	return []string{".wav", ".wave", ".aif", ".aiff", ".mp3", ".ogg", ".oga"}
}

// Open decodes the file at path, choosing the decoder by extension.
func Open(path string) (*audio.FloatBuffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	buf, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", filepath.Base(path), err)
	}
	return buf, nil
}

// pcmDecoder is the chunked read API shared by the go-audio decoders.
type pcmDecoder interface {
	IsValidFile() bool
	ReadInfo()
	Format() *audio.Format
	PCMBuffer(buf *audio.IntBuffer) (int, error)
}

// DecodeWAV decodes a PCM WAV stream.
func DecodeWAV(r io.ReadSeeker) (*audio.FloatBuffer, error) {
	d := wav.NewDecoder(r)
	return decodePCM(d, func() int { return int(d.BitDepth) })
}

// DecodeAIFF decodes a PCM AIFF stream.
func DecodeAIFF(r io.ReadSeeker) (*audio.FloatBuffer, error) {
	d := aiff.NewDecoder(r)
	return decodePCM(d, func() int { return int(d.BitDepth) })
}

func decodePCM(d pcmDecoder, bitDepth func() int) (*audio.FloatBuffer, error) {
	if !d.IsValidFile() {
		return nil, ErrInvalidFile
	}
	d.ReadInfo()

	format := d.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrInvalidFile
	}
	depth := bitDepth()
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	chunk := &audio.IntBuffer{
		Format:         format,
		Data:           make([]int, 4096*format.NumChannels),
		SourceBitDepth: depth,
	}
	scale := 1 / float64(int64(1)<<(depth-1))
	var samples []float64
	for {
		n, err := d.PCMBuffer(chunk)
		for _, v := range chunk.Data[:n] {
			if depth == 8 {
				v -= 128
			}
			samples = append(samples, float64(v)*scale)
		}
		if err == io.EOF || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return stereoBuffer(samples, format.NumChannels, format.SampleRate)
}

// DecodeMP3 decodes an MP3 stream. The decoder always produces 16-bit
// stereo.
func DecodeMP3(r io.ReadSeeker) (*audio.FloatBuffer, error) {
	d, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, err
	}

	samples := make([]float64, len(raw)/2)
	for i := range samples {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float64(v) / 32768
	}
	return stereoBuffer(samples, 2, d.SampleRate())
}

// DecodeVorbis decodes an Ogg Vorbis stream.
func DecodeVorbis(r io.ReadSeeker) (*audio.FloatBuffer, error) {
	d, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	chunk := make([]float32, 4096*d.Channels())
	var samples []float64
	for {
		n, err := d.Read(chunk)
		for _, v := range chunk[:n] {
			samples = append(samples, float64(v))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return stereoBuffer(samples, d.Channels(), d.SampleRate())
}

// stereoBuffer reshapes interleaved samples with the given channel count
// into an interleaved stereo buffer.
func stereoBuffer(samples []float64, channels, sampleRate int) (*audio.FloatBuffer, error) {
	if channels <= 0 {
		return nil, ErrInvalidFile
	}
	frames := len(samples) / channels
	if frames == 0 {
		return nil, ErrEmpty
	}

	var data []float64
	switch channels {
	case 2:
		data = samples[:frames*2]
	case 1:
		data = make([]float64, 2*frames)
		for i, v := range samples[:frames] {
			data[2*i] = v
			data[2*i+1] = v
		}
	default:
		data = make([]float64, 2*frames)
		for i := range frames {
			data[2*i] = samples[i*channels]
			data[2*i+1] = samples[i*channels+1]
		}
	}

	return &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:   data,
	}, nil
}
