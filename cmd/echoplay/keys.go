package main

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-echo/dsp/tempo"
	"github.com/cwbudde/algo-echo/internal/host"
	"github.com/cwbudde/algo-echo/internal/playback"
)

const (
	tempoStep     = 1.0
	amountStep    = 0.05
	resonanceStep = 0.1
	cutoffRatio   = 1.25
)

const keyHelp = "keys: +/- tempo  d/D division  t timing  f/F feedback  c/C cutoff  r/R resonance  w/W wet  q quit"

// keyUpdate maps a key press to a control change.
func keyUpdate(key byte) (playback.Update, bool) {
	switch key {
	case '+', '=':
		return nudgeTempo(tempoStep), true
	case '-', '_':
		return nudgeTempo(-tempoStep), true
	case 'd':
		return stepDivision(1), true
	case 'D':
		return stepDivision(-1), true
	case 't', 'T':
		return nextTiming, true
	case 'f':
		return nudge(host.Feedback, amountStep), true
	case 'F':
		return nudge(host.Feedback, -amountStep), true
	case 'c':
		return scale(host.Cutoff, cutoffRatio), true
	case 'C':
		return scale(host.Cutoff, 1/cutoffRatio), true
	case 'r':
		return nudge(host.Resonance, resonanceStep), true
	case 'R':
		return nudge(host.Resonance, -resonanceStep), true
	case 'w':
		return nudge(host.Wet, amountStep), true
	case 'W':
		return nudge(host.Wet, -amountStep), true
	}
	return nil, false
}

// isQuit reports q, Q, Ctrl-C and Esc.
func isQuit(key byte) bool {
	return key == 'q' || key == 'Q' || key == 3 || key == 27
}

func nudgeTempo(delta float64) playback.Update {
	return func(_ *host.Parameters, t *host.Transport) error {
		*t = t.Nudge(delta)
		return nil
	}
}

func stepDivision(step int) playback.Update {
	return func(p *host.Parameters, _ *host.Transport) error {
		all := tempo.Divisions()
		i := slices.Index(all, p.Division())
		i = (i + step + len(all)) % len(all)
		return p.SetDivision(all[i])
	}
}

func nextTiming(p *host.Parameters, _ *host.Transport) error {
	all := tempo.Timings()
	i := slices.Index(all, p.Timing())
	return p.SetTiming(all[(i+1)%len(all)])
}

func nudge(id host.ID, delta float64) playback.Update {
	return func(p *host.Parameters, _ *host.Transport) error {
		_, err := p.Set(id, p.Target(id)+delta)
		return err
	}
}

func scale(id host.ID, ratio float64) playback.Update {
	return func(p *host.Parameters, _ *host.Transport) error {
		v := math.Round(p.Target(id) * ratio)
		_, err := p.Set(id, v)
		return err
	}
}
