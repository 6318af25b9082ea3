package evaluator

import (
	"math"
	"math/cmplx"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the magnitude below which a merged amplitude counts as cancelled,
// and the tolerance used when comparing amplitudes.
const Epsilon = 1e-9

// Amplitude is the complex weight of one branch of a superposition.
type Amplitude complex128

// One is the amplitude of a plain, non-superposed value.
const One Amplitude = 1

// Polar builds an amplitude from a magnitude and a phase in radians.
func Polar(magnitude, phase float64) Amplitude {
	return Amplitude(cmplx.Rect(magnitude, phase))
}

func (a Amplitude) Magnitude() float64 { return cmplx.Abs(complex128(a)) }

// Phase is the angle in radians, in (-π, π].
func (a Amplitude) Phase() float64 { return cmplx.Phase(complex128(a)) }

// Probability is the squared magnitude.
func (a Amplitude) Probability() float64 {
	r, i := real(a), imag(a)
	return r*r + i*i
}

func (a Amplitude) Flip() Amplitude { return -a }

func (a Amplitude) IsZero() bool { return a.Magnitude() < Epsilon }

// IsFlipped reports whether the phase is π, i.e. the amplitude is a negative real.
func (a Amplitude) IsFlipped() bool {
	if a.IsZero() {
		return false
	}
	return scalar.EqualWithinAbs(math.Abs(a.Phase()), math.Pi, 1e-6)
}

// ApproxEqual compares both components within Epsilon.
func (a Amplitude) ApproxEqual(b Amplitude) bool {
	return scalar.EqualWithinAbs(real(a), real(b), Epsilon) &&
		scalar.EqualWithinAbs(imag(a), imag(b), Epsilon)
}

// IsOne reports a unit amplitude with zero phase.
func (a Amplitude) IsOne() bool { return a.ApproxEqual(One) }

// String renders the amplitude rounded to four decimals: 0.7071, -0.5, 0.5i, 0.5-0.5i.
func (a Amplitude) String() string {
	re := round4(real(a))
	im := round4(imag(a))
	switch {
	case im == 0:
		return formatFloat(re)
	case re == 0:
		return formatFloat(im) + "i"
	case im < 0:
		return formatFloat(re) + formatFloat(im) + "i"
	default:
		return formatFloat(re) + "+" + formatFloat(im) + "i"
	}
}

func round4(x float64) float64 {
	r := math.Round(x*1e4) / 1e4
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
