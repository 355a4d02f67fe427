package source

import (
	"io"

	"github.com/go-audio/audio"
)

// Looper streams an in-memory stereo buffer in blocks, optionally
// wrapping at the end.
type Looper struct {
	buf  *audio.FloatBuffer
	pos  int // frame index
	loop bool
}

// NewLooper returns a Looper over buf, which must be stereo.
func NewLooper(buf *audio.FloatBuffer, loop bool) (*Looper, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels != 2 {
		return nil, ErrNotStereo
	}
	if len(buf.Data) < 2 {
		return nil, ErrEmpty
	}
	return &Looper{buf: buf, loop: loop}, nil
}

// SampleRate returns the rate of the underlying buffer.
func (l *Looper) SampleRate() int { return l.buf.Format.SampleRate }

// Frames returns the length of the underlying buffer in frames.
func (l *Looper) Frames() int { return len(l.buf.Data) / 2 }

// Position returns the next frame to be read.
func (l *Looper) Position() int { return l.pos }

// Read copies the next frames into dst (interleaved stereo) and
// returns the number of frames written. When the buffer is exhausted and
// looping is off the rest of dst is zeroed and io.EOF is returned.
func (l *Looper) Read(dst []float64) (int, error) {
	want := len(dst) / 2
	total := l.Frames()
	n := 0
	for n < want {
		if l.pos >= total {
			if !l.loop {
				clear(dst[2*n:])
				return n, io.EOF
			}
			l.pos = 0
		}
		c := min(want-n, total-l.pos)
		copy(dst[2*n:2*(n+c)], l.buf.Data[2*l.pos:2*(l.pos+c)])
		n += c
		l.pos += c
	}
	return n, nil
}

// Rewind restarts from the first frame.
func (l *Looper) Rewind() { l.pos = 0 }
