package host

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/delay"
)

// Tempo bounds accepted from users.
const (
	MinTempo = 20.0
	MaxTempo = 400.0
)

// Transport is the host timeline state delivered with every block.
type Transport struct {
	SampleRate float64
	Tempo      float64 // beats per minute
}

// Validate reports whether the engine can be configured for t.
func (t Transport) Validate() error {
	if _, err := delay.Capacity(t.SampleRate, t.Tempo); err != nil {
		return fmt.Errorf("host: transport: %w", err)
	}
	return nil
}

// WithTempo returns t at bpm, clamped to [MinTempo, MaxTempo].
func (t Transport) WithTempo(bpm float64) Transport {
	if math.IsNaN(bpm) {
		return t
	}
	t.Tempo = core.Clamp(bpm, MinTempo, MaxTempo)
	return t
}

// Nudge returns t with the tempo moved by delta BPM.
func (t Transport) Nudge(delta float64) Transport {
	return t.WithTempo(t.Tempo + delta)
}

// String renders t as "120.00 BPM @ 44100 Hz".
func (t Transport) String() string {
	return fmt.Sprintf("%.2f BPM @ %.0f Hz", t.Tempo, t.SampleRate)
}
