package biquad

import "github.com/cwbudde/algo-echo/dsp/core"

// State is the Direct Form I history of one filter channel: the last two
// inputs and the last two outputs.
type State struct {
	x1, x2 float64
	y1, y2 float64
}

// Process filters one sample with c and advances the history.
func (s *State) Process(c Coefficients, x float64) float64 {
	y := c.B0*x + c.B1*s.x1 + c.B2*s.x2 - c.A1*s.y1 - c.A2*s.y2
	y = core.FlushDenormals(y)

	s.x2, s.x1 = s.x1, x
	s.y2, s.y1 = s.y1, y
	return y
}

// ProcessBlock filters buf in place with c. Zero-alloc.
func (s *State) ProcessBlock(c Coefficients, buf []float64) {
	x1, x2, y1, y2 := s.x1, s.x2, s.y1, s.y2
	for i, x := range buf {
		y := core.FlushDenormals(c.B0*x + c.B1*x1 + c.B2*x2 - c.A1*y1 - c.A2*y2)
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}
	s.x1, s.x2, s.y1, s.y2 = x1, x2, y1, y2
}

// Reset clears the history.
func (s *State) Reset() {
	*s = State{}
}

// History returns the stored samples as [x1, x2, y1, y2].
func (s *State) History() [4]float64 {
	return [4]float64{s.x1, s.x2, s.y1, s.y2}
}
