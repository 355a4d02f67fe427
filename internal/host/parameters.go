package host

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/echo"
	"github.com/cwbudde/algo-echo/dsp/tempo"
)

// ErrUnknownParam is returned for a parameter ID or name that does not exist.
var ErrUnknownParam = errors.New("host: unknown parameter")

// DefaultSmoothingMs is the ramp time applied to continuous parameters.
const DefaultSmoothingMs = 20.0

// ID identifies a continuous echo parameter.
type ID int

const (
	Feedback ID = iota
	Cutoff
	Resonance
	Dry
	Wet
	numParams
)

// Unit selects how a parameter value is displayed.
type Unit int

const (
	UnitPercent Unit = iota
	UnitHertz
	UnitPlain
)

// Spec describes the range and default of a parameter.
type Spec struct {
	Name      string
	Min       float64
	Max       float64
	Default   float64
	Unit      Unit
	Smoothing SmoothingType
}

var specs = [numParams]Spec{
	Feedback:  {Name: "Feedback", Min: 0, Max: 1, Default: 0.625, Unit: UnitPercent, Smoothing: LinearSmoothing},
	Cutoff:    {Name: "Cutoff", Min: 20, Max: 20000, Default: 15000, Unit: UnitHertz, Smoothing: LogarithmicSmoothing},
	Resonance: {Name: "Resonance", Min: 0.5, Max: 3, Default: 0.707, Unit: UnitPlain, Smoothing: LinearSmoothing},
	Dry:       {Name: "Dry", Min: 0, Max: 1, Default: 1, Unit: UnitPercent, Smoothing: LinearSmoothing},
	Wet:       {Name: "Wet", Min: 0, Max: 1, Default: 1, Unit: UnitPercent, Smoothing: LinearSmoothing},
}

// IDs returns all parameter IDs in declaration order.
func IDs() []ID {
	return []ID{Feedback, Cutoff, Resonance, Dry, Wet}
}

// SpecOf returns the description of id.
func SpecOf(id ID) (Spec, error) {
	if id < 0 || id >= numParams {
		return Spec{}, fmt.Errorf("%w: %d", ErrUnknownParam, int(id))
	}
	return specs[id], nil
}

// Lookup finds a parameter by case-insensitive name.
func Lookup(name string) (ID, error) {
	for id, s := range specs {
		if strings.EqualFold(s.Name, name) {
			return ID(id), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// String returns the parameter name.
func (id ID) String() string {
	if id < 0 || id >= numParams {
		return "ID(" + strconv.Itoa(int(id)) + ")"
	}
	return specs[id].Name
}

// Clamp limits v to the range of the parameter.
func (s Spec) Clamp(v float64) float64 {
	return core.Clamp(v, s.Min, s.Max)
}

// Format renders v the way the parameter is displayed.
func (s Spec) Format(v float64) string {
	switch s.Unit {
	case UnitPercent:
		return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
	case UnitHertz:
		if v >= 1000 {
			return strconv.FormatFloat(v/1000, 'f', 2, 64) + " kHz"
		}
		return strconv.FormatFloat(v, 'f', 2, 64) + " Hz"
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// Parameters is the echo's parameter set. Continuous values are smoothed
// per sample; division and timing switch immediately.
//
// Parameters is not safe for concurrent use.
type Parameters struct {
	smoothers [numParams]*Smoother
	division  tempo.Division
	timing    tempo.Timing
}

// NewParameters returns the defaults, smoothed over DefaultSmoothingMs at
// sampleRate.
func NewParameters(sampleRate float64) *Parameters {
	p := &Parameters{
		division: tempo.Quarter,
		timing:   tempo.Straight,
	}
	for id, s := range specs {
		sm := NewSmoother(s.Smoothing, 0)
		sm.SetTime(sampleRate, DefaultSmoothingMs)
		sm.Reset(s.Default)
		p.smoothers[id] = sm
	}
	return p
}

// SetSampleRate rescales smoothing times for a new sample rate.
func (p *Parameters) SetSampleRate(sampleRate float64) {
	for _, sm := range p.smoothers {
		sm.SetTime(sampleRate, DefaultSmoothingMs)
	}
}

// Set clamps v to the range of id, starts smoothing toward it and returns
// the clamped value.
func (p *Parameters) Set(id ID, v float64) (float64, error) {
	s, err := SpecOf(id)
	if err != nil {
		return 0, err
	}
	v = s.Clamp(v)
	p.smoothers[id].SetTarget(v)
	return v, nil
}

// Jump sets id without smoothing.
func (p *Parameters) Jump(id ID, v float64) (float64, error) {
	s, err := SpecOf(id)
	if err != nil {
		return 0, err
	}
	v = s.Clamp(v)
	p.smoothers[id].Reset(v)
	return v, nil
}

// Target returns the value id is heading to.
func (p *Parameters) Target(id ID) float64 {
	if id < 0 || id >= numParams {
		return 0
	}
	return p.smoothers[id].Target()
}

// SetDivision selects the note division.
func (p *Parameters) SetDivision(d tempo.Division) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", tempo.ErrUnknownDivision, int(d))
	}
	p.division = d
	return nil
}

// SetTiming selects the timing modifier.
func (p *Parameters) SetTiming(t tempo.Timing) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", tempo.ErrUnknownTiming, int(t))
	}
	p.timing = t
	return nil
}

// Division returns the selected note division.
func (p *Parameters) Division() tempo.Division { return p.division }

// Timing returns the selected timing modifier.
func (p *Parameters) Timing() tempo.Timing { return p.timing }

// Next advances every smoother one sample and returns the values for that
// sample.
func (p *Parameters) Next() echo.Params {
	return echo.Params{
		Feedback:  p.smoothers[Feedback].Next(),
		Cutoff:    p.smoothers[Cutoff].Next(),
		Resonance: p.smoothers[Resonance].Next(),
		Dry:       p.smoothers[Dry].Next(),
		Wet:       p.smoothers[Wet].Next(),
		Division:  p.division,
		Timing:    p.timing,
	}
}

// Targets returns the parameter set the smoothers are heading to.
func (p *Parameters) Targets() echo.Params {
	return echo.Params{
		Feedback:  p.Target(Feedback),
		Cutoff:    p.Target(Cutoff),
		Resonance: p.Target(Resonance),
		Dry:       p.Target(Dry),
		Wet:       p.Target(Wet),
		Division:  p.division,
		Timing:    p.timing,
	}
}

// Apply sets every value of params as a smoothed target.
func (p *Parameters) Apply(params echo.Params) error {
	if err := p.SetDivision(params.Division); err != nil {
		return err
	}
	if err := p.SetTiming(params.Timing); err != nil {
		return err
	}
	values := [numParams]float64{
		Feedback:  params.Feedback,
		Cutoff:    params.Cutoff,
		Resonance: params.Resonance,
		Dry:       params.Dry,
		Wet:       params.Wet,
	}
	for id, v := range values {
		if _, err := p.Set(ID(id), v); err != nil {
			return err
		}
	}
	return nil
}

// String summarizes the targets, e.g. "1/4 dotted feedback=62.50% ...".
func (p *Parameters) String() string {
	var b strings.Builder
	b.WriteString(p.division.String())
	b.WriteByte(' ')
	b.WriteString(p.timing.String())
	for _, id := range IDs() {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(specs[id].Name))
		b.WriteByte('=')
		b.WriteString(specs[id].Format(p.Target(id)))
	}
	return b.String()
}
