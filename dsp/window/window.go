package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeBlackman
)

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeBlackman:
		return "blackman"
	default:
		return "unknown"
	}
}

// Generate returns window coefficients of the given type and length.
// Unknown types fall back to rectangular.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	den := float64(length - 1)

	for i := range out {
		x := 2 * math.Pi * float64(i) / den
		switch t {
		case TypeHann:
			out[i] = 0.5 - 0.5*math.Cos(x)
		case TypeBlackman:
			out[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
		default:
			out[i] = 1
		}
	}

	return out
}

// CoherentGain returns the mean coefficient value, the amplitude scaling a
// window applies to a bin-centred sinusoid.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	gain := vecmath.Sum(coeffs) / float64(len(coeffs))
	if gain == 0 {
		return 0, errZeroCoherentGain
	}

	return gain, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}
