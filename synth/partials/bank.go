// Package partials implements the phase-accumulator bank of the additive
// organ voice.
package partials

import "math"

// Count is the number of partials in a bank.
const Count = 9

// HarmonicRatios are the partial frequencies relative to the fundamental,
// in drawbar order 16', 8', 5⅓', 4', 2⅔', 2', 1⅗', 1⅓', 1'.
var HarmonicRatios = [Count]float64{0.5, 1, 1.5, 2, 3, 4, 5, 6, 8}

// Bank holds one normalized phase and increment per partial.
type Bank struct {
	phases [Count]float64
	incs   [Count]float64
}

// SetFundamental sets every increment to ratio*w0, where w0 is the
// fundamental in cycles per sample. Non-finite or negative w0 stops the
// bank; phases are kept.
func (b *Bank) SetFundamental(w0 float64) {
	if !(w0 >= 0) || math.IsInf(w0, 0) {
		w0 = 0
	}
	for i, r := range HarmonicRatios {
		b.incs[i] = wrap(r * w0)
	}
}

// Increment returns the per-sample phase increment of partial i.
func (b *Bank) Increment(i int) float64 {
	return b.incs[i]
}

// Phase returns the current phase of partial i.
func (b *Bank) Phase(i int) float64 {
	return b.phases[i]
}

// Phases returns a copy of all phases.
func (b *Bank) Phases() [Count]float64 {
	return b.phases
}

// Sines writes sin(2*pi*phase) of every partial into dst.
func (b *Bank) Sines(dst *[Count]float64) {
	for i, p := range b.phases {
		dst[i] = math.Sin(2 * math.Pi * p)
	}
}

// Advance steps every phase by its increment and drops the integer part.
func (b *Bank) Advance() {
	for i := range b.phases {
		b.phases[i] = wrap(b.phases[i] + b.incs[i])
	}
}

// Reset zeroes all phases.
func (b *Bank) Reset() {
	b.phases = [Count]float64{}
}

// wrap keeps the fractional part of a non-negative value in [0,1).
func wrap(p float64) float64 {
	p -= math.Floor(p)
	if p >= 1 {
		p = 0
	}
	return p
}
