package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored:
//
//	        B0 + B1*z^-1 + B2*z^-2
//	H(z) = ------------------------
//	         1 + A1*z^-1 + A2*z^-2
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns coefficients that pass the input through unchanged.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// IsIdentity reports whether c passes the input through unchanged.
func (c Coefficients) IsIdentity() bool {
	return c == Identity()
}

// DCGain returns H(1), the gain at 0 Hz.
func (c Coefficients) DCGain() float64 {
	return (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
}

// Poles returns the z-plane poles of the denominator
// 1 + A1*z^-1 + A2*z^-2 = 0.
func (c Coefficients) Poles() [2]complex128 {
	disc := cmplx.Sqrt(complex(c.A1*c.A1-4*c.A2, 0))
	return [2]complex128{
		(-complex(c.A1, 0) + disc) / 2,
		(-complex(c.A1, 0) - disc) / 2,
	}
}

// Stable reports whether both poles lie strictly inside the unit circle
// and all coefficients are finite.
func (c Coefficients) Stable() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	for _, p := range c.Poles() {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}
	return true
}
