package voice

import (
	"fmt"

	"github.com/cwbudde/algo-osc/dsp/core"
	"github.com/cwbudde/algo-osc/dsp/filter/onepole"
	"github.com/cwbudde/algo-osc/dsp/shaper"
	"github.com/cwbudde/algo-osc/synth/partials"
	"github.com/cwbudde/algo-osc/synth/registration"
	"github.com/cwbudde/algo-vecmath"
)

const (
	organTonePole   = 0.8
	organDriveClip  = 0.05
	organOutputClip = 0.125
	organMinDrive   = 1
	organMaxDrive   = 2
)

// OrganOption configures an Organ.
type OrganOption func(*Organ) error

// WithOrganSampleRate sets the sample rate the voice runs at.
func WithOrganSampleRate(sampleRate float64) OrganOption {
	return func(o *Organ) error {
		if sampleRate <= 0 || !core.IsFinite(sampleRate) {
			return fmt.Errorf("organ sample rate must be > 0 and finite: %v", sampleRate)
		}
		o.cfg.SampleRate = sampleRate
		return nil
	}
}

// WithRegistrations replaces the preset table.
func WithRegistrations(table *registration.Table) OrganOption {
	return func(o *Organ) error {
		if table == nil || table.Len() == 0 {
			return fmt.Errorf("organ registration table must not be empty")
		}
		o.table = table
		return nil
	}
}

// WithOutputShaping enables or disables the tone filter before the drive
// stage and the low-pass and soft clip after it.
func WithOutputShaping(enabled bool) OrganOption {
	return func(o *Organ) error {
		o.shaping = enabled
		return nil
	}
}

// Organ is an additive voice mixing nine sine partials by the selected
// registration.
type Organ struct {
	cfg     core.ProcessorConfig
	table   *registration.Table
	shaping bool

	bank    partials.Bank
	weights [partials.Count]float64
	sines   [partials.Count]float64
	preset  int

	tone onepole.Section
	post onepole.Section

	selector float64
	drive    float64
	mod      Ramp
	pending  events
}

// NewOrgan returns an organ voice with the ten-preset table and output
// shaping enabled.
func NewOrgan(opts ...OrganOption) (*Organ, error) {
	o := &Organ{
		cfg:     core.DefaultProcessorConfig(),
		table:   registration.Extended(),
		shaping: true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	o.Init()
	return o, nil
}

// Init zeroes phases, filter state and modulation, tunes the filters and
// installs the first preset.
func (o *Organ) Init() {
	o.bank = partials.Bank{}
	o.tone.SetPole(organTonePole)
	o.tone.Reset()
	o.post.SetFirstOrderLowPass(onepole.TanPi(0.45))
	o.post.Reset()
	o.selector = 0
	o.drive = organMinDrive
	o.mod.Set(0)
	o.pending = events{}
	o.installPreset()
}

// UpdatePitch sets the partial increments from the fundamental w0.
func (o *Organ) UpdatePitch(w0 float64) {
	o.bank.SetFundamental(w0)
}

// SetParameter handles ParamShape (registration select) and
// ParamShiftShape (drive).
func (o *Organ) SetParameter(id Param, value float64) {
	switch id {
	case ParamShape:
		o.selector = unit(value)
		o.pending.presetChanged = true
	case ParamShiftShape:
		o.drive = DriveCurve(value)
	}
}

// NoteOn requests that the smoothed modulation jump to the next target.
// Phases keep running.
func (o *Organ) NoteOn() {
	o.pending.reset = true
}

// NoteOff has no effect on the organ.
func (o *Organ) NoteOff() {}

// Render fills out with the organ signal.
func (o *Organ) Render(out []float64, mod float64) {
	if len(out) == 0 {
		return
	}

	ev := o.pending.drain()
	if ev.presetChanged {
		o.installPreset()
	}
	if ev.reset {
		o.mod.Set(mod)
	}
	o.mod.Begin(mod, len(out))

	for i := range out {
		o.bank.Sines(&o.sines)
		sig := vecmath.DotProduct(o.weights[:], o.sines[:])

		if o.shaping {
			sig = o.tone.ProcessSample(sig)
		}

		drive := core.Clamp(o.drive+o.mod.Value(), organMinDrive, organMaxDrive)
		sig = shaper.SoftClip(organDriveClip, sig*drive)

		if o.shaping {
			sig = shaper.SoftClip(organOutputClip, o.post.ProcessSample(sig))
		}

		out[i] = sig

		o.bank.Advance()
		o.mod.Advance()
	}
}

// Preset returns the index of the installed registration.
func (o *Organ) Preset() int {
	return o.preset
}

// Weights returns the installed, normalized partial weights.
func (o *Organ) Weights() [partials.Count]float64 {
	return o.weights
}

// Phases returns the partial phases.
func (o *Organ) Phases() [partials.Count]float64 {
	return o.bank.Phases()
}

// Registrations returns the preset table.
func (o *Organ) Registrations() *registration.Table {
	return o.table
}

// SampleRate returns the configured sample rate.
func (o *Organ) SampleRate() float64 {
	return o.cfg.SampleRate
}

func (o *Organ) installPreset() {
	w, i := o.table.Select(o.selector)
	o.weights = w
	o.preset = i
}
