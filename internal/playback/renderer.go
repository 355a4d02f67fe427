package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/echo"
	"github.com/cwbudde/algo-echo/internal/host"
	"github.com/cwbudde/algo-echo/internal/source"
	"github.com/cwbudde/algo-echo/stats/level"
	"github.com/go-audio/audio"
)

const bytesPerFrame = 8 // two float32 channels

// Update changes parameters or transport. It runs on the audio goroutine.
type Update func(p *host.Parameters, t *host.Transport) error

// Status is a snapshot of the settings in effect.
type Status struct {
	Transport host.Transport
	Params    echo.Params
	Delay     int // samples
	Finished  bool
	Level     level.Stats // output since the previous Status call
}

// Renderer is an io.Reader of processed float32 LE stereo frames.
type Renderer struct {
	mu      sync.Mutex
	pending []Update
	status  Status
	meter   level.Meter
	err     error

	finished atomic.Bool

	// Owned by the reading goroutine.
	engine    *echo.Engine
	params    *host.Parameters
	transport host.Transport
	src       *source.Looper
	blockSize int
	frame     audio.FloatBuffer
	scratch   []float64
}

// NewRenderer returns a renderer playing src at bpm with initial params.
// Block size options bound the latency of control changes.
func NewRenderer(src *source.Looper, bpm float64, params echo.Params, opts ...core.ProcessorOption) (*Renderer, error) {
	transport := host.Transport{SampleRate: float64(src.SampleRate()), Tempo: bpm}
	if err := transport.Validate(); err != nil {
		return nil, err
	}

	opts = append(opts[:len(opts):len(opts)], core.WithSampleRate(transport.SampleRate), core.WithTempo(bpm))
	cfg := core.ApplyProcessorOptions(opts...)
	engine, err := echo.New(opts...)
	if err != nil {
		return nil, err
	}

	p := host.NewParameters(transport.SampleRate)
	if err := p.Apply(params); err != nil {
		return nil, err
	}
	// Start at the requested values rather than ramping from defaults.
	for _, id := range host.IDs() {
		if _, err := p.Jump(id, p.Target(id)); err != nil {
			return nil, err
		}
	}

	r := &Renderer{
		engine:    engine,
		params:    p,
		transport: transport,
		src:       src,
		blockSize: cfg.BlockSize,
		frame: audio.FloatBuffer{
			Format: &audio.Format{NumChannels: 2, SampleRate: src.SampleRate()},
		},
		scratch: make([]float64, 2*cfg.BlockSize),
	}
	r.status = Status{Transport: transport, Params: p.Targets()}
	return r, nil
}

// SampleRate returns the output rate in Hz.
func (r *Renderer) SampleRate() int { return r.src.SampleRate() }

// Queue schedules u for the next block boundary. Safe for concurrent use.
func (r *Renderer) Queue(u Update) {
	r.mu.Lock()
	r.pending = append(r.pending, u)
	r.mu.Unlock()
}

// Status returns the settings applied at the last block boundary.
func (r *Renderer) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.status
	s.Finished = r.finished.Load()
	s.Level = r.meter.Result()
	r.meter.Reset()
	return s
}

// Err returns the last error raised by an update or the engine.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Finished reports whether a non-looping source has been exhausted. The
// echo tail keeps playing afterwards.
func (r *Renderer) Finished() bool { return r.finished.Load() }

// beginBlock applies queued updates and configures the engine.
func (r *Renderer) beginBlock() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, u := range r.pending {
		t := r.transport
		if err := u(r.params, &t); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		r.transport = t
	}
	clear(r.pending)
	r.pending = r.pending[:0]

	if err := r.engine.BeginBlock(r.transport.SampleRate, r.transport.Tempo); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		r.err = errors.Join(errs...)
	}
	r.status = Status{
		Transport: host.Transport{SampleRate: r.engine.SampleRate(), Tempo: r.engine.Tempo()},
		Params:    r.params.Targets(),
		Delay:     r.engine.Delay(),
	}
}

// Read fills p with whole frames and never returns an error; the echo
// tail keeps sounding after the source ends.
func (r *Renderer) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	off := 0
	for done := 0; done < frames; {
		n := min(r.blockSize, frames-done)
		r.beginBlock()

		data := r.scratch[:2*n]
		if r.finished.Load() {
			clear(data)
		} else if _, err := r.src.Read(data); errors.Is(err, io.EOF) {
			r.finished.Store(true)
		}

		r.frame.Data = data
		err := r.engine.ProcessBuffer(&r.frame, r.transport.Tempo, r.params)
		r.mu.Lock()
		if err != nil {
			r.err = err
			clear(data)
		}
		r.meter.Update(data)
		r.mu.Unlock()

		for _, v := range data {
			s := float32(core.Clamp(v, -1, 1))
			binary.LittleEndian.PutUint32(p[off:], math.Float32bits(s))
			off += 4
		}
		done += n
	}
	return off, nil
}
