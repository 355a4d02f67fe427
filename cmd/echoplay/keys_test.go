package main

import (
	"testing"

	"github.com/cwbudde/algo-echo/dsp/tempo"
	"github.com/cwbudde/algo-echo/internal/host"
)

func press(t *testing.T, p *host.Parameters, tr *host.Transport, keys string) {
	t.Helper()
	for i := range len(keys) {
		u, ok := keyUpdate(keys[i])
		if !ok {
			t.Fatalf("key %q not mapped", keys[i])
		}
		if err := u(p, tr); err != nil {
			t.Fatalf("key %q: %v", keys[i], err)
		}
	}
}

func TestTempoKeys(t *testing.T) {
	p := host.NewParameters(48000)
	tr := host.Transport{SampleRate: 48000, Tempo: 120}
	press(t, p, &tr, "+++-")
	if tr.Tempo != 122 {
		t.Fatalf("tempo = %v, want 122", tr.Tempo)
	}
}

func TestDivisionKeysWrap(t *testing.T) {
	p := host.NewParameters(48000)
	var tr host.Transport
	press(t, p, &tr, "d")
	if p.Division() != tempo.Half {
		t.Fatalf("division = %v, want 1/2", p.Division())
	}
	if err := p.SetDivision(tempo.FourBars); err != nil {
		t.Fatal(err)
	}
	press(t, p, &tr, "d")
	if p.Division() != tempo.ThirtySecond {
		t.Fatalf("division = %v, want 1/32", p.Division())
	}
	press(t, p, &tr, "D")
	if p.Division() != tempo.FourBars {
		t.Fatalf("division = %v, want 4", p.Division())
	}
}

func TestTimingKeyCycles(t *testing.T) {
	p := host.NewParameters(48000)
	var tr host.Transport
	want := []tempo.Timing{tempo.Dotted, tempo.Triplet, tempo.Straight}
	for _, w := range want {
		press(t, p, &tr, "t")
		if p.Timing() != w {
			t.Fatalf("timing = %v, want %v", p.Timing(), w)
		}
	}
}

func TestParameterKeysClamp(t *testing.T) {
	p := host.NewParameters(48000)
	var tr host.Transport
	press(t, p, &tr, "ffffffffff")
	if got := p.Target(host.Feedback); got != 1 {
		t.Fatalf("feedback = %v, want 1", got)
	}
	press(t, p, &tr, "cc")
	if got := p.Target(host.Cutoff); got != 20000 {
		t.Fatalf("cutoff = %v, want 20000", got)
	}
	press(t, p, &tr, "C")
	if got := p.Target(host.Cutoff); got != 16000 {
		t.Fatalf("cutoff = %v, want 16000", got)
	}
	press(t, p, &tr, "W")
	if got := p.Target(host.Wet); got != 0.95 {
		t.Fatalf("wet = %v, want 0.95", got)
	}
}

func TestUnmappedAndQuitKeys(t *testing.T) {
	if _, ok := keyUpdate('x'); ok {
		t.Fatal("x should not be mapped")
	}
	for _, k := range []byte{'q', 'Q', 3, 27} {
		if !isQuit(k) {
			t.Fatalf("%q should quit", k)
		}
	}
	if isQuit('f') {
		t.Fatal("f should not quit")
	}
}
