package source

import (
	"math"

	"github.com/go-audio/audio"
)

const (
	clickMs        = 30.0
	clickAccentHz  = 1500.0
	clickHz        = 1000.0
	clickAmplitude = 0.5
	beatsPerBar    = 4
)

// Click renders a metronome of bars 4/4 bars at bpm: a short decaying
// tone on every beat, higher on the downbeat. It is a handy dry signal for
// hearing the echo spacing.
func Click(sampleRate int, bpm float64, bars int) *audio.FloatBuffer {
	if sampleRate <= 0 || bpm <= 0 || bars <= 0 {
		return nil
	}
	sr := float64(sampleRate)
	beatLen := int(60 * sr / bpm)
	beats := bars * beatsPerBar
	clickLen := min(int(clickMs*sr/1000), beatLen)
	tau := float64(clickLen) / 5

	data := make([]float64, 2*beats*beatLen)
	for b := range beats {
		freq := clickHz
		if b%beatsPerBar == 0 {
			freq = clickAccentHz
		}
		start := b * beatLen
		for i := range clickLen {
			v := clickAmplitude * math.Exp(-float64(i)/tau) * math.Sin(2*math.Pi*freq*float64(i)/sr)
			data[2*(start+i)] = v
			data[2*(start+i)+1] = v
		}
	}
	return &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:   data,
	}
}
