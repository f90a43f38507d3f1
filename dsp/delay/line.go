package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-osc/dsp/core"
	"github.com/cwbudde/algo-osc/dsp/interp"
)

// MinFractionalLag is the smallest lag accepted by [Line.ReadFrac].
const MinFractionalLag = 2.0

// Option configures a Line at construction time.
type Option func(*Line) error

// WithMode selects the interpolation used by [Line.ReadFractional].
func WithMode(mode interp.Mode) Option {
	return func(d *Line) error {
		if !mode.Valid() {
			return fmt.Errorf("delay interpolation mode is invalid: %d", mode)
		}
		d.mode = mode
		return nil
	}
}

// Line is a circular delay line with a power-of-two capacity.
type Line struct {
	buffer   []float64
	mask     int
	writePos int
	maxLag   float64
	mode     interp.Mode
}

// New returns a delay line of fixed size. size must be a power of two.
func New(size int, opts ...Option) (*Line, error) {
	if size < 4 || size&(size-1) != 0 {
		return nil, fmt.Errorf("delay size must be a power of two >= 4: %d", size)
	}

	d := &Line{
		buffer: make([]float64, size),
		mask:   size - 1,
		maxLag: math.Nextafter(float64(size), 0),
		mode:   interp.Linear,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation mode used by ReadFractional.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// ClampLag limits lag to [MinFractionalLag, Len()).
func (d *Line) ClampLag(lag float64) float64 {
	return core.Clamp(lag, MinFractionalLag, d.maxLag)
}

// Write writes one sample and advances the cursor.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos = (d.writePos + 1) & d.mask
}

// Read reads an integer delay in samples. Read(1) is the most recent write.
func (d *Line) Read(delay int) float64 {
	return d.buffer[(d.writePos-delay)&d.mask]
}

// ReadFrac reads lag samples behind the cursor with linear interpolation.
// lag is clamped to [2, Len()).
func (d *Line) ReadFrac(lag float64) float64 {
	lag = d.ClampLag(lag)

	p := int(lag)
	t := lag - float64(p)

	return interp.Linear2(t, d.Read(p), d.Read(p+1))
}

// ReadFractional reads with the configured interpolation mode.
// lag is clamped to [2, Len()).
func (d *Line) ReadFractional(lag float64) float64 {
	if d.mode == interp.Linear {
		return d.ReadFrac(lag)
	}

	lag = d.ClampLag(lag)

	p := int(lag)
	t := lag - float64(p)

	return interp.Hermite4(t, d.Read(p-1), d.Read(p), d.Read(p+1), d.Read(p+2))
}

// Clear zeroes the buffer and resets the cursor without reallocating.
func (d *Line) Clear() {
	core.Zero(d.buffer)
	d.writePos = 0
}
