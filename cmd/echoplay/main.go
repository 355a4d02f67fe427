// Command echoplay plays an audio file through the tempo-synced echo.
//
// Usage:
//
//	echoplay [flags] [file]
//
// WAV, AIFF, MP3 and Ogg Vorbis files are supported. With -click, or
// without a file, a metronome click at the current tempo is played. On a
// terminal the echo can be adjusted live with single key presses. With -o
// the result is rendered to a WAV file instead of played.
//
// Examples:
//
//	echoplay -bpm 96 -division 1/8 -timing dotted loop.wav
//	echoplay -click -bpm 140 -feedback 0.8 -cutoff 3000
//	echoplay -o wet.wav -tail 6 vocals.ogg
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/echo"
	"github.com/cwbudde/algo-echo/dsp/tempo"
	"github.com/cwbudde/algo-echo/internal/host"
	"github.com/cwbudde/algo-echo/internal/playback"
	"github.com/cwbudde/algo-echo/internal/source"
	"github.com/go-audio/audio"
	"golang.org/x/term"
)

type options struct {
	bpm        float64
	params     echo.Params
	loop       bool
	click      bool
	clickRate  int
	clickBars  int
	blockSize  int
	bufferSize time.Duration
	output     string
	bitDepth   int
	tail       float64
}

func main() {
	def := echo.DefaultParams()
	bpm := flag.Float64("bpm", 120, "tempo in beats per minute")
	division := flag.String("division", def.Division.String(), "note division (1/32 ... 4)")
	timing := flag.String("timing", def.Timing.String(), "straight, dotted or triplet")
	feedback := flag.Float64("feedback", def.Feedback, "feedback amount [0, 1]")
	cutoff := flag.Float64("cutoff", def.Cutoff, "feedback lowpass cutoff in Hz [20, 20000]")
	resonance := flag.Float64("resonance", def.Resonance, "feedback lowpass Q [0.5, 3]")
	dry := flag.Float64("dry", def.Dry, "dry level [0, 1]")
	wet := flag.Float64("wet", def.Wet, "echo level [0, 1]")
	loop := flag.Bool("loop", false, "loop the source")
	click := flag.Bool("click", false, "play a metronome click instead of a file")
	clickRate := flag.Int("rate", 48000, "sample rate of the click source")
	clickBars := flag.Int("bars", 1, "length of the click source in bars")
	blockSize := flag.Int("block", 256, "processing block size in frames")
	bufferMs := flag.Int("buffer", 50, "device buffer in milliseconds")
	output := flag.String("o", "", "render to this WAV file instead of playing")
	bitDepth := flag.Int("bits", 24, "bit depth of the rendered WAV (16, 24, 32)")
	tail := flag.Float64("tail", 4, "seconds of echo tail after a non-looping source")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: echoplay [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a file or a click through a tempo-synced stereo echo.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n%s\n", keyHelp)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echoplay -bpm 96 -division 1/8 -timing dotted loop.wav\n")
		fmt.Fprintf(os.Stderr, "  echoplay -click -bpm 140 -feedback 0.8 -cutoff 3000\n")
		fmt.Fprintf(os.Stderr, "  echoplay -o wet.wav -tail 6 vocals.ogg\n")
	}
	flag.Parse()

	div, err := tempo.ParseDivision(*division)
	if err != nil {
		fail(2, err)
	}
	tim, err := tempo.ParseTiming(*timing)
	if err != nil {
		fail(2, err)
	}

	opts := options{
		bpm: *bpm,
		params: echo.Params{
			Feedback:  *feedback,
			Cutoff:    *cutoff,
			Resonance: *resonance,
			Dry:       *dry,
			Wet:       *wet,
			Division:  div,
			Timing:    tim,
		},
		loop:       *loop,
		click:      *click || flag.NArg() == 0,
		clickRate:  *clickRate,
		clickBars:  *clickBars,
		blockSize:  *blockSize,
		bufferSize: time.Duration(*bufferMs) * time.Millisecond,
		output:     *output,
		bitDepth:   *bitDepth,
		tail:       *tail,
	}

	clip, err := loadSource(opts, flag.Arg(0))
	if err != nil {
		fail(1, err)
	}

	if opts.output != "" {
		if err := render(opts, clip); err != nil {
			fail(1, err)
		}
		return
	}
	if err := play(opts, clip); err != nil {
		fail(1, err)
	}
}

func fail(code int, err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(code)
}

func loadSource(opts options, path string) (*audio.FloatBuffer, error) {
	if opts.click {
		clip := source.Click(opts.clickRate, opts.bpm, opts.clickBars)
		if clip == nil {
			return nil, errors.New("invalid click settings")
		}
		return clip, nil
	}
	return source.Open(path)
}

// render processes the whole clip plus tail offline and writes a WAV file.
func render(opts options, clip *audio.FloatBuffer) error {
	sr := clip.Format.SampleRate
	tailFrames := int(opts.tail * float64(sr))
	buf := &audio.FloatBuffer{
		Format: clip.Format,
		Data:   make([]float64, len(clip.Data)+2*tailFrames),
	}
	copy(buf.Data, clip.Data)

	e, err := echo.New(
		core.WithSampleRate(float64(sr)),
		core.WithTempo(opts.bpm),
		core.WithBlockSize(opts.blockSize),
	)
	if err != nil {
		return err
	}
	params := host.NewParameters(float64(sr))
	if err := params.Apply(opts.params); err != nil {
		return err
	}
	for _, id := range host.IDs() {
		if _, err := params.Jump(id, params.Target(id)); err != nil {
			return err
		}
	}
	if err := e.ProcessBuffer(buf, opts.bpm, params); err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := source.WriteWAV(f, buf, opts.bitDepth); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s: %.2f s at %d Hz, %s\n",
		opts.output, float64(len(buf.Data)/2)/float64(sr), sr, params)
	return nil
}

func play(opts options, clip *audio.FloatBuffer) error {
	looper, err := source.NewLooper(clip, opts.loop || opts.click)
	if err != nil {
		return err
	}
	r, err := playback.NewRenderer(looper, opts.bpm, opts.params, core.WithBlockSize(opts.blockSize))
	if err != nil {
		return err
	}
	player, err := playback.NewPlayer(r, opts.bufferSize)
	if err != nil {
		return err
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys, restore, err := readKeys(ctx)
	if err != nil {
		return err
	}
	defer restore()

	player.Start()
	return controlLoop(ctx, r, keys, opts.tail)
}

// readKeys switches stdin to raw mode and streams key presses. When stdin
// is not a terminal the returned channel never delivers.
func readKeys(ctx context.Context) (<-chan byte, func(), error) {
	keys := make(chan byte, 16)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return keys, func() {}, nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("raw terminal: %w", err)
	}
	restore := func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(os.Stderr, "\r\n")
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys, restore, nil
}

func controlLoop(ctx context.Context, r *playback.Renderer, keys <-chan byte, tail float64) error {
	fmt.Fprintf(os.Stderr, "%s\r\n", keyHelp)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	var finishedAt time.Time
	var lastErr error
	for {
		select {
		case <-ctx.Done():
			return nil
		case k := <-keys:
			if isQuit(k) {
				return nil
			}
			if u, ok := keyUpdate(k); ok {
				r.Queue(u)
			}
		case now := <-ticker.C:
			st := r.Status()
			fmt.Fprintf(os.Stderr, "\r\033[K%s  %s  delay %d  peak %5.1f dB",
				st.Transport, paramsLine(st.Params), st.Delay, math.Max(st.Level.Peak_dB, -99))
			if err := r.Err(); err != nil && err != lastErr {
				fmt.Fprintf(os.Stderr, "\r\n%v\r\n", err)
				lastErr = err
			}
			if st.Finished {
				if finishedAt.IsZero() {
					finishedAt = now
				}
				if now.Sub(finishedAt).Seconds() >= tail {
					return nil
				}
			}
		}
	}
}

func paramsLine(p echo.Params) string {
	fb, _ := host.SpecOf(host.Feedback)
	cut, _ := host.SpecOf(host.Cutoff)
	res, _ := host.SpecOf(host.Resonance)
	w, _ := host.SpecOf(host.Wet)
	return fmt.Sprintf("%s %s  fb %s  cut %s  q %s  wet %s",
		p.Division, p.Timing, fb.Format(p.Feedback), cut.Format(p.Cutoff), res.Format(p.Resonance), w.Format(p.Wet))
}
