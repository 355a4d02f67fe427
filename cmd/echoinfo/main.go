// Command echoinfo prints the timing and response of the tempo-synced echo.
//
// Usage:
//
//	echoinfo [flags] [section ...]
//
// Sections are delays, echoes and filter. Without arguments all three are
// printed.
//
// Examples:
//
//	echoinfo -bpm 133 delays
//	echoinfo -division 1/8 -timing dotted -feedback 0.7 echoes
//	echoinfo -cutoff 2000 -resonance 2 filter
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/delay"
	"github.com/cwbudde/algo-echo/dsp/echo"
	"github.com/cwbudde/algo-echo/dsp/filter/lowpass"
	"github.com/cwbudde/algo-echo/dsp/tempo"
	"github.com/cwbudde/algo-echo/measure/response"
)

type settings struct {
	sampleRate float64
	bpm        float64
	params     echo.Params
	seconds    float64
	threshold  float64
	fftSize    int
}

type section struct {
	name  string
	print func(w io.Writer, s settings) error
}

var sections = []section{
	{"delays", printDelays},
	{"echoes", printEchoes},
	{"filter", printFilter},
}

func main() {
	def := echo.DefaultParams()
	rate := flag.Float64("rate", 44100, "sample rate in Hz")
	bpm := flag.Float64("bpm", 120, "tempo in beats per minute")
	division := flag.String("division", def.Division.String(), "note division (1/32 ... 4)")
	timing := flag.String("timing", def.Timing.String(), "straight, dotted or triplet")
	feedback := flag.Float64("feedback", def.Feedback, "feedback amount [0, 1]")
	cutoff := flag.Float64("cutoff", def.Cutoff, "feedback lowpass cutoff in Hz")
	resonance := flag.Float64("resonance", def.Resonance, "feedback lowpass Q")
	seconds := flag.Float64("length", 4, "impulse response length in seconds")
	threshold := flag.Float64("threshold", 1e-3, "minimum echo amplitude")
	fftSize := flag.Int("fft", 16384, "FFT size for the measured filter response")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: echoinfo [flags] [section ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints delay lengths, the echo train and the feedback filter response.\n")
		fmt.Fprintf(os.Stderr, "Sections: delays, echoes, filter. Without arguments, prints all.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echoinfo -bpm 133 delays\n")
		fmt.Fprintf(os.Stderr, "  echoinfo -division 1/8 -timing dotted -feedback 0.7 echoes\n")
		fmt.Fprintf(os.Stderr, "  echoinfo -cutoff 2000 -resonance 2 filter\n")
	}
	flag.Parse()

	div, err := tempo.ParseDivision(*division)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	tim, err := tempo.ParseTiming(*timing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if _, err := delay.Capacity(*rate, *bpm); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	s := settings{
		sampleRate: *rate,
		bpm:        *bpm,
		params: echo.Params{
			Feedback:  *feedback,
			Cutoff:    *cutoff,
			Resonance: *resonance,
			Dry:       0,
			Wet:       1,
			Division:  div,
			Timing:    tim,
		},
		seconds:   *seconds,
		threshold: *threshold,
		fftSize:   *fftSize,
	}

	selected, err := resolveSections(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	for i, sec := range selected {
		if i > 0 {
			fmt.Println()
		}
		if err := sec.print(os.Stdout, s); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", sec.name, err)
			os.Exit(1)
		}
	}
}

func resolveSections(names []string) ([]section, error) {
	if len(names) == 0 {
		return sections, nil
	}
	var out []section
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		found := false
		for _, sec := range sections {
			if sec.name == name {
				out = append(out, sec)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown section %q", name)
		}
	}
	return out, nil
}

func printDelays(w io.Writer, s settings) error {
	capacity, err := delay.Capacity(s.sampleRate, s.bpm)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Delay lengths at %.2f BPM, %.0f Hz (buffer %d samples)\n\n", s.bpm, s.sampleRate, capacity)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Division\tBars\tTiming\tSamples\tTime [ms]\n")
	fmt.Fprintf(tw, "--------\t----\t------\t-------\t---------\n")
	for _, d := range tempo.Divisions() {
		for _, t := range tempo.Timings() {
			n := tempo.Samples(d, t, s.sampleRate, s.bpm)
			fmt.Fprintf(tw, "%s\t%.4g\t%s\t%d\t%.2f\n", d, d.Bars(), t, n, 1000*float64(n)/s.sampleRate)
		}
	}
	return tw.Flush()
}

func printEchoes(w io.Writer, s settings) error {
	e, err := echo.New(core.WithSampleRate(s.sampleRate), core.WithTempo(s.bpm))
	if err != nil {
		return err
	}
	p := s.params
	ir := response.Impulse(response.ProcessorFunc(func(x float64) float64 {
		y, _ := e.ProcessSample(p, x, 0)
		return y
	}), int(s.seconds*s.sampleRate))

	echoes := response.Echoes(ir, s.threshold)
	fmt.Fprintf(w, "Echo train: %s %s, feedback %.3f, cutoff %.0f Hz, Q %.3f (delay %d samples)\n\n",
		p.Division, p.Timing, p.Feedback, p.Cutoff, p.Resonance, e.Delay())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tSample\tTime [ms]\tAmplitude\tLevel [dB]\n")
	fmt.Fprintf(tw, "-\t------\t---------\t---------\t----------\n")
	for i, ec := range echoes {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.6f\t%.2f\n",
			i+1, ec.Index, 1000*float64(ec.Index)/s.sampleRate, ec.Amplitude, core.LinearToDB(math.Abs(ec.Amplitude)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if rt, err := response.DecayTime(echoes, s.sampleRate); err == nil {
		fmt.Fprintf(w, "\nDecay to -60 dB: %.3f s\n", rt)
	}
	return nil
}

var filterFrequencies = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 15000, 20000}

func printFilter(w io.Writer, s settings) error {
	f := lowpass.New()
	f.SetCoefficients(s.sampleRate, s.params.Cutoff, s.params.Resonance)
	c := f.Coefficients()

	mag, err := response.Spectrum(response.Impulse(f, s.fftSize), s.fftSize)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Feedback lowpass: cutoff %.0f Hz, Q %.3f at %.0f Hz\n", s.params.Cutoff, s.params.Resonance, s.sampleRate)
	fmt.Fprintf(w, "b0=%.9f b1=%.9f b2=%.9f a1=%.9f a2=%.9f\n\n", c.B0, c.B1, c.B2, c.A1, c.A2)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tDesign [dB]\tMeasured [dB]\n")
	fmt.Fprintf(tw, "---------\t-----------\t-------------\n")
	for _, freq := range filterFrequencies {
		if freq >= s.sampleRate/2 {
			break
		}
		bin := response.Bin(freq, s.fftSize, s.sampleRate)
		fmt.Fprintf(tw, "%.0f\t%.2f\t%.2f\n", freq, c.MagnitudeDB(freq, s.sampleRate), core.LinearToDB(mag[bin]))
	}
	return tw.Flush()
}
