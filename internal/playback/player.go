package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// DefaultBufferSize is the device buffer requested from oto.
const DefaultBufferSize = 50 * time.Millisecond

// Player plays a Renderer on the default output device. Only one Player
// may exist per process.
type Player struct {
	ctx      *oto.Context
	player   *oto.Player
	renderer *Renderer

	mu      sync.Mutex
	started bool
}

// NewPlayer opens the output device at the renderer's sample rate.
func NewPlayer(r *Renderer, bufferSize time.Duration) (*Player, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   r.SampleRate(),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("playback: open device: %w", err)
	}
	<-ready

	return &Player{
		ctx:      ctx,
		player:   ctx.NewPlayer(r),
		renderer: r,
	}, nil
}

// Renderer returns the renderer feeding the device.
func (p *Player) Renderer() *Renderer { return p.renderer }

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.player.Play()
		p.started = true
	}
}

// IsPlaying reports whether the device is consuming audio.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && p.player.IsPlaying()
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = false
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("playback: close: %w", err)
	}
	return nil
}
