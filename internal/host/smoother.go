package host

import "math"

// SmoothingType selects how a Smoother approaches its target.
type SmoothingType int

const (
	// LinearSmoothing moves in equal steps over a fixed number of samples.
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing is a one-pole lowpass toward the target.
	ExponentialSmoothing
	// LogarithmicSmoothing moves in equal ratios, for frequencies.
	LogarithmicSmoothing
)

const (
	defaultThreshold = 1e-4
	logFloor         = 1e-3
)

// Smoother removes zipper noise from parameter changes.
//
// rate is a sample count for linear and logarithmic smoothing and a
// pole coefficient in (0, 1) for exponential smoothing.
type Smoother struct {
	kind      SmoothingType
	rate      float64
	threshold float64

	current   float64
	target    float64
	smoothing bool

	step      float64
	remaining int

	logCurrent float64
	logTarget  float64
	logStep    float64
}

// NewSmoother returns a smoother resting at 0.
func NewSmoother(kind SmoothingType, rate float64) *Smoother {
	return &Smoother{
		kind:      kind,
		rate:      rate,
		threshold: defaultThreshold,
	}
}

// SetTarget starts a ramp toward target from the current value.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold && !s.smoothing {
		return
	}
	s.target = target

	if s.rate <= 0 || math.Abs(target-s.current) < s.threshold {
		s.Reset(target)
		return
	}
	s.smoothing = true
	s.remaining = int(math.Ceil(s.rate))

	switch s.kind {
	case LinearSmoothing:
		s.step = (target - s.current) / s.rate
	case LogarithmicSmoothing:
		s.logCurrent = math.Log(math.Max(s.current, logFloor))
		s.logTarget = math.Log(math.Max(target, logFloor))
		s.logStep = (s.logTarget - s.logCurrent) / s.rate
	}
}

// Next advances one sample and returns the smoothed value.
func (s *Smoother) Next() float64 {
	if !s.smoothing {
		return s.current
	}

	switch s.kind {
	case ExponentialSmoothing:
		s.current += (s.target - s.current) * (1 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.Reset(s.target)
		}
	case LinearSmoothing:
		s.remaining--
		if s.remaining <= 0 {
			s.Reset(s.target)
			break
		}
		s.current += s.step
	case LogarithmicSmoothing:
		s.remaining--
		if s.remaining <= 0 {
			s.Reset(s.target)
			break
		}
		s.logCurrent += s.logStep
		s.current = math.Exp(s.logCurrent)
	}
	return s.current
}

// Reset jumps to value and stops smoothing.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.smoothing = false
}

// Current returns the last smoothed value without advancing.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the value being approached.
func (s *Smoother) Target() float64 { return s.target }

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool { return s.smoothing }

// SetRate changes the rate for subsequent targets.
func (s *Smoother) SetRate(rate float64) { s.rate = rate }

// SetTime sets the rate so a ramp lasts about ms milliseconds at
// sampleRate. For exponential smoothing that is the time to fall 60 dB.
func (s *Smoother) SetTime(sampleRate, ms float64) {
	samples := sampleRate * ms / 1000
	if samples <= 0 {
		s.rate = 0
		return
	}
	if s.kind == ExponentialSmoothing {
		s.rate = math.Exp(-6.908 / samples)
		return
	}
	s.rate = samples
}
