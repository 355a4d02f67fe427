package echo

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/delay"
	"github.com/cwbudde/algo-echo/dsp/filter/biquad"
	"github.com/cwbudde/algo-echo/dsp/filter/lowpass"
	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
)

var (
	// ErrNilBuffer is returned when ProcessBuffer receives no buffer or format.
	ErrNilBuffer = errors.New("echo: nil buffer or format")
	// ErrChannelCount is returned for buffers that are not stereo.
	ErrChannelCount = errors.New("echo: buffer must have 2 channels")
)

// Engine is the stereo echo: two channels sharing one coefficient set.
type Engine struct {
	cfg        core.ProcessorConfig
	channels   [2]*Channel
	filter     *lowpass.Filter
	sampleRate float64
	bpm        float64

	wetL, wetR []float64
	dry, wet   []float64
	inL, inR   []float64
}

// New returns an engine provisioned for the configured sample rate, tempo
// and block size.
func New(opts ...core.ProcessorOption) (*Engine, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	e := &Engine{
		cfg:    cfg,
		filter: lowpass.New(),
	}
	for i := range e.channels {
		ch, err := NewChannel(cfg.SampleRate, cfg.Tempo)
		if err != nil {
			return nil, fmt.Errorf("echo: %w", err)
		}
		e.channels[i] = ch
	}
	e.sampleRate = cfg.SampleRate
	e.bpm = cfg.Tempo
	e.provision(cfg.BlockSize)
	return e, nil
}

func (e *Engine) provision(n int) {
	e.wetL = core.EnsureLen(e.wetL, n)
	e.wetR = core.EnsureLen(e.wetR, n)
	e.dry = core.EnsureLen(e.dry, n)
	e.wet = core.EnsureLen(e.wet, n)
	e.inL = core.EnsureLen(e.inL, n)
	e.inR = core.EnsureLen(e.inR, n)
}

// BeginBlock applies the block's sample rate and tempo. When either changed
// both delay lines are reallocated and the feedback registers cleared. An
// invalid rate or tempo returns an error and keeps the previous setup.
func (e *Engine) BeginBlock(sampleRate, bpm float64) error {
	if sampleRate == e.sampleRate && bpm == e.bpm {
		return nil
	}
	if _, err := delay.Capacity(sampleRate, bpm); err != nil {
		return fmt.Errorf("echo: %w", err)
	}
	for _, ch := range e.channels {
		if err := ch.resize(sampleRate, bpm); err != nil {
			return fmt.Errorf("echo: %w", err)
		}
	}
	e.sampleRate = sampleRate
	e.bpm = bpm
	return nil
}

// configure applies the per-sample delay length and filter coefficients.
func (e *Engine) configure(p Params) biquad.Coefficients {
	for _, ch := range e.channels {
		// Rate and tempo match the last resize, so SetDelay cannot fail here.
		_ = ch.line.SetDelay(p.Division, p.Timing, e.sampleRate, e.bpm)
	}
	e.filter.SetCoefficients(e.sampleRate, p.Cutoff, p.Resonance)
	return e.filter.Coefficients()
}

// ProcessSample runs one stereo frame with parameters p.
func (e *Engine) ProcessSample(p Params, left, right float64) (float64, float64) {
	c := e.configure(p)
	outL := e.channels[0].Process(c, left, p.Feedback, p.Dry, p.Wet)
	outR := e.channels[1].Process(c, right, p.Feedback, p.Dry, p.Wet)
	return outL, outR
}

// ProcessBlock processes left and right in place, pulling one parameter
// set per frame from src. Only the common length of both slices is
// processed. Blocks larger than the configured block size grow the scratch
// buffers once.
func (e *Engine) ProcessBlock(left, right []float64, src ParamSource) {
	n := min(len(left), len(right))
	if n == 0 {
		return
	}
	if n > len(e.wetL) {
		e.provision(n)
	}
	wetL, wetR := e.wetL[:n], e.wetR[:n]
	dry, wet := e.dry[:n], e.wet[:n]
	for i := range n {
		p := src.Next()
		c := e.configure(p)
		wetL[i] = e.channels[0].echo(c, left[i], p.Feedback)
		wetR[i] = e.channels[1].echo(c, right[i], p.Feedback)
		dry[i] = p.Dry
		wet[i] = p.Wet
	}
	vecmath.MulBlockInPlace(wetL, wet)
	vecmath.MulBlockInPlace(wetR, wet)
	vecmath.MulBlockInPlace(left[:n], dry)
	vecmath.MulBlockInPlace(right[:n], dry)
	vecmath.AddBlockInPlace(left[:n], wetL)
	vecmath.AddBlockInPlace(right[:n], wetR)
}

// ProcessBuffer processes an interleaved stereo buffer in place at the
// buffer's sample rate and the given tempo.
func (e *Engine) ProcessBuffer(buf *audio.FloatBuffer, bpm float64, src ParamSource) error {
	if buf == nil || buf.Format == nil {
		return ErrNilBuffer
	}
	if buf.Format.NumChannels != 2 {
		return fmt.Errorf("%w: got %d", ErrChannelCount, buf.Format.NumChannels)
	}
	if err := e.BeginBlock(float64(buf.Format.SampleRate), bpm); err != nil {
		return err
	}
	frames := len(buf.Data) / 2
	if frames > len(e.inL) {
		e.provision(frames)
	}
	left, right := e.inL[:frames], e.inR[:frames]
	core.Deinterleave(left, right, buf.Data)
	e.ProcessBlock(left, right, src)
	core.Interleave(buf.Data, left, right)
	return nil
}

// Reset silences both channels without reallocating.
func (e *Engine) Reset() {
	for _, ch := range e.channels {
		ch.Reset()
	}
}

// SampleRate returns the sample rate of the current delay buffers.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Tempo returns the tempo of the current delay buffers.
func (e *Engine) Tempo() float64 { return e.bpm }

// Capacity returns the per-channel delay buffer length.
func (e *Engine) Capacity() int { return e.channels[0].Capacity() }

// Delay returns the current delay length in samples.
func (e *Engine) Delay() int { return e.channels[0].Delay() }

// Coefficients returns the lowpass snapshot used by the last sample.
func (e *Engine) Coefficients() biquad.Coefficients { return e.filter.Coefficients() }

// Channel returns the channel for side 0 (left) or 1 (right).
func (e *Engine) Channel(side int) *Channel {
	if side == 1 {
		return e.channels[1]
	}
	return e.channels[0]
}
