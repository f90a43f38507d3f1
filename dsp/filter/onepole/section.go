package onepole

import (
	"math"

	"github.com/cwbudde/algo-osc/dsp/core"
)

const (
	minPole = 1e-7
	maxPole = 0.999999

	minWarp = 1e-6
	maxWarp = 1e6

	minNormalizedCutoff = 1e-7
	maxNormalizedCutoff = 0.4999
)

// Coefficients holds the transfer function of a first-order section.
//
// The sign convention follows Direct Form II Transposed:
//
//	y = B0*x + d
//	d = B1*x - A1*y
type Coefficients struct {
	B0, B1 float64 // feedforward
	A1     float64 // feedback
}

// Section is a first-order filter with coefficients and one state variable.
type Section struct {
	Coefficients

	d float64
}

// SetPole tunes the section as y = (1-p)*x + p*y[n-1].
// p is clamped to [1e-7, 0.999999]; state is kept.
func (s *Section) SetPole(p float64) {
	p = core.Clamp(p, minPole, maxPole)
	s.Coefficients = Coefficients{B0: 1 - p, B1: 0, A1: -p}
}

// SetFirstOrderLowPass tunes a bilinear-transform first-order low-pass from
// the prewarped frequency k = tan(pi*fc/fs). k is clamped to a positive
// finite range so |A1| < 1. State is kept.
func (s *Section) SetFirstOrderLowPass(k float64) {
	k = core.Clamp(k, minWarp, maxWarp)
	g := k / (k + 1)
	s.Coefficients = Coefficients{B0: g, B1: g, A1: (k - 1) / (k + 1)}
}

// SetCutoff tunes a bilinear low-pass at cutoffHz.
func (s *Section) SetCutoff(cutoffHz, sampleRate float64) {
	s.SetFirstOrderLowPass(TanPi(cutoffHz / sampleRate))
}

// SetSmoothing tunes a one-pole smoother whose pole is exp(-2*pi*fc/fs).
func (s *Section) SetSmoothing(cutoffHz, sampleRate float64) {
	fc := core.Clamp(cutoffHz/sampleRate, minNormalizedCutoff, maxNormalizedCutoff)
	s.SetPole(mathExp(-2 * math.Pi * fc))
}

// Pole returns the feedback pole location (-A1).
func (s *Section) Pole() float64 {
	return -s.A1
}

// Stable reports whether the pole lies strictly inside the unit circle.
func (s *Section) Stable() bool {
	return math.Abs(s.A1) < 1
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d
	s.d = core.FlushDenormals(s.B1*x - s.A1*y)

	return y
}

// ProcessBlock filters a block of samples in place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Reset clears the filter memory. Coefficients are kept.
func (s *Section) Reset() {
	s.d = 0
}

// TanPi returns tan(pi*x) with x clamped below Nyquist, the prewarp used
// by [Section.SetFirstOrderLowPass].
func TanPi(x float64) float64 {
	return math.Tan(math.Pi * core.Clamp(x, minNormalizedCutoff, maxNormalizedCutoff))
}
