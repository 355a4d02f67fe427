package delay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-echo/dsp/tempo"
)

// MaxCapacity bounds the buffer length a Line will allocate.
const MaxCapacity = 1 << 25

var (
	ErrInvalidSampleRate = errors.New("delay: sample rate must be > 0")
	ErrInvalidTempo      = errors.New("delay: tempo must be > 0")
	ErrCapacityExceeded  = errors.New("delay: capacity exceeds MaxCapacity")
)

// Line is a circular delay line whose length follows musical time.
//
// The buffer holds one slot more than the dotted four-bar delay so that
// every delay produced by tempo.Samples is strictly below Len.
type Line struct {
	buffer       []float64
	writePos     int
	delaySamples int

	sampleRate float64
	bpm        float64
}

// New returns a delay line sized for sampleRate and bpm.
func New(sampleRate, bpm float64) (*Line, error) {
	d := &Line{}
	if err := d.Resize(sampleRate, bpm); err != nil {
		return nil, err
	}
	return d, nil
}

// Capacity returns the buffer length needed at sampleRate and bpm.
func Capacity(sampleRate, bpm float64) (int, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return 0, fmt.Errorf("%w: %f", ErrInvalidTempo, bpm)
	}
	worst := tempo.MaxBeats * tempo.DottedFactor * 60 * sampleRate / bpm
	if worst >= MaxCapacity {
		return 0, fmt.Errorf("%w: %.0f samples at %.2f Hz, %.2f BPM", ErrCapacityExceeded, worst, sampleRate, bpm)
	}
	return int(worst) + 1, nil
}

// Resize reallocates the buffer for sampleRate and bpm, filled with
// silence, and rewinds the write position. On error the line is unchanged.
func (d *Line) Resize(sampleRate, bpm float64) error {
	size, err := Capacity(sampleRate, bpm)
	if err != nil {
		return err
	}
	d.buffer = make([]float64, size)
	d.writePos = 0
	d.sampleRate = sampleRate
	d.bpm = bpm
	if d.delaySamples >= size {
		d.delaySamples = size - 1
	}
	return nil
}

// SetDelay selects the delay length for division and timing. The buffer is
// resized first if sampleRate or bpm differ from the last resize.
func (d *Line) SetDelay(div tempo.Division, timing tempo.Timing, sampleRate, bpm float64) error {
	if sampleRate != d.sampleRate || bpm != d.bpm || len(d.buffer) == 0 {
		if err := d.Resize(sampleRate, bpm); err != nil {
			return err
		}
	}
	d.SetDelaySamples(tempo.Samples(div, timing, sampleRate, bpm))
	return nil
}

// SetDelaySamples sets the delay directly, clamped to [0, Len()-1].
func (d *Line) SetDelaySamples(n int) {
	if n < 0 {
		n = 0
	}
	if size := len(d.buffer); n >= size {
		n = size - 1
	}
	d.delaySamples = n
}

// Process reads the sample written Delay() calls ago, then stores x.
// With a zero delay the input passes straight through.
func (d *Line) Process(x float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return x
	}
	readPos := (d.writePos + size - d.delaySamples) % size
	y := d.buffer[readPos]
	d.buffer[d.writePos] = x
	if d.delaySamples == 0 {
		y = x
	}
	d.writePos = (d.writePos + 1) % size
	return y
}

// Len returns the buffer capacity in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Delay returns the current delay in samples.
func (d *Line) Delay() int {
	return d.delaySamples
}

// SampleRate returns the sample rate of the last resize.
func (d *Line) SampleRate() float64 { return d.sampleRate }

// Tempo returns the tempo in BPM of the last resize.
func (d *Line) Tempo() float64 { return d.bpm }

// Reset clears line state without reallocating.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
