package echo

import (
	"github.com/cwbudde/algo-echo/dsp/delay"
	"github.com/cwbudde/algo-echo/dsp/filter/biquad"
)

// Channel is the signal path of one side: lowpass history, delay line and
// the feedback register holding the previous delay output.
type Channel struct {
	line     *delay.Line
	state    biquad.State
	feedback float64
}

// NewChannel returns a channel whose delay line is sized for sampleRate
// and bpm.
func NewChannel(sampleRate, bpm float64) (*Channel, error) {
	line, err := delay.New(sampleRate, bpm)
	if err != nil {
		return nil, err
	}
	return &Channel{line: line}, nil
}

// Process runs one sample through the channel with the given coefficient
// snapshot and gains.
func (c *Channel) Process(coeffs biquad.Coefficients, x, feedback, dry, wet float64) float64 {
	return dry*x + wet*c.echo(coeffs, x, feedback)
}

// echo advances the filter, delay and feedback register and returns the
// delayed sample.
func (c *Channel) echo(coeffs biquad.Coefficients, x, feedback float64) float64 {
	filtered := c.state.Process(coeffs, x+feedback*c.feedback)
	delayed := c.line.Process(filtered)
	c.feedback = delayed
	return delayed
}

// Feedback returns the current feedback register.
func (c *Channel) Feedback() float64 { return c.feedback }

// Delay returns the delay length in samples.
func (c *Channel) Delay() int { return c.line.Delay() }

// Capacity returns the delay buffer length in samples.
func (c *Channel) Capacity() int { return c.line.Len() }

// resize reallocates the delay line and clears the feedback register.
func (c *Channel) resize(sampleRate, bpm float64) error {
	if err := c.line.Resize(sampleRate, bpm); err != nil {
		return err
	}
	c.feedback = 0
	return nil
}

// Reset silences the channel without reallocating.
func (c *Channel) Reset() {
	c.line.Reset()
	c.state.Reset()
	c.feedback = 0
}
