package registration

import (
	"fmt"
	"math"
)

// Partials is the number of weighted partials in a registration.
const Partials = 9

// Weights is one amplitude per partial, in harmonic-ratio order.
type Weights [Partials]float64

// Preset is a named drawbar registration.
type Preset struct {
	Name    string
	Weights Weights
}

// Sum returns the total of the preset weights.
func (p Preset) Sum() float64 {
	total := 0.0
	for _, w := range p.Weights {
		total += w
	}
	return total
}

// Validate reports whether every weight is finite and non-negative and at
// least one is positive.
func (p Preset) Validate() error {
	for i, w := range p.Weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("registration %q weight[%d] must be finite and >= 0: %v", p.Name, i, w)
		}
	}
	if p.Sum() <= 0 {
		return fmt.Errorf("registration %q must have a positive weight", p.Name)
	}
	return nil
}

// Normalized returns the weights scaled so they sum to 1.
// A preset without positive weight normalizes to the unison partial alone.
func (p Preset) Normalized() Weights {
	var out Weights

	total := p.Sum()
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		out[1] = 1
		return out
	}

	for i, w := range p.Weights {
		out[i] = w / total
	}

	return out
}

// Drawbars builds a preset from organ drawbar positions 0..8 given in the
// partial order of [Weights].
func Drawbars(name string, positions ...int) Preset {
	p := Preset{Name: name}
	for i := 0; i < Partials && i < len(positions); i++ {
		pos := positions[i]
		if pos < 0 {
			pos = 0
		}
		if pos > 8 {
			pos = 8
		}
		p.Weights[i] = float64(pos) / 8
	}
	return p
}
