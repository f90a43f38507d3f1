package voice

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-osc/dsp/core"
	"github.com/cwbudde/algo-osc/dsp/delay"
	"github.com/cwbudde/algo-osc/dsp/filter/onepole"
	"github.com/cwbudde/algo-osc/dsp/interp"
	"github.com/cwbudde/algo-osc/dsp/shaper"
	"github.com/cwbudde/algo-osc/dsp/signal"
)

const (
	// DefaultDelaySize is the string buffer capacity in samples.
	DefaultDelaySize = 4096

	pluckLoopClip   = 0.05
	pluckDriveClip  = 0.05
	pluckOutputClip = 0.125
)

// PluckOption configures a Pluck.
type PluckOption func(*Pluck) error

// WithPluckSampleRate sets the sample rate the voice runs at. The burst
// length scales with it.
func WithPluckSampleRate(sampleRate float64) PluckOption {
	return func(p *Pluck) error {
		if sampleRate <= 0 || !core.IsFinite(sampleRate) {
			return fmt.Errorf("pluck sample rate must be > 0 and finite: %v", sampleRate)
		}
		p.cfg.SampleRate = sampleRate
		return nil
	}
}

// WithDelaySize sets the string buffer capacity, a power of two. It bounds
// the lowest playable pitch to sampleRate/size.
func WithDelaySize(size int) PluckOption {
	return func(p *Pluck) error {
		if size < 4 || size&(size-1) != 0 {
			return fmt.Errorf("pluck delay size must be a power of two >= 4: %d", size)
		}
		p.delaySize = size
		return nil
	}
}

// WithDelayInterpolation selects how the loop reads between delay samples.
// Linear is the default; Hermite keeps more high-frequency energy per pass.
func WithDelayInterpolation(mode interp.Mode) PluckOption {
	return func(p *Pluck) error {
		if !mode.Valid() {
			return fmt.Errorf("pluck interpolation mode is invalid: %d", mode)
		}
		p.mode = mode
		return nil
	}
}

// WithNoiseSeed fixes the excitation noise sequence.
func WithNoiseSeed(seed uint32) PluckOption {
	return func(p *Pluck) error {
		p.seed = seed
		return nil
	}
}

// WithPluckOutputShaping enables or disables the output low-pass and soft
// clip after the drive stage.
func WithPluckOutputShaping(enabled bool) PluckOption {
	return func(p *Pluck) error {
		p.shaping = enabled
		return nil
	}
}

// Pluck is a plucked-string voice: a noise burst excites a lossy,
// low-passed fractional delay loop tuned to the fundamental period.
type Pluck struct {
	cfg       core.ProcessorConfig
	delaySize int
	mode      interp.Mode
	seed      uint32
	shaping   bool

	line    *delay.Line
	noise   signal.Noise
	impulse onepole.Section
	post    onepole.Section

	length float64
	last   float64
	burst  int

	damping       float64
	attenuation   float64
	drive         float64
	attackMs      float64
	inharmonicity float64
	impulsePole   float64

	mod     Ramp
	pending events
}

// NewPluck returns a plucked-string voice with a 4096-sample string buffer.
func NewPluck(opts ...PluckOption) (*Pluck, error) {
	p := &Pluck{
		cfg:       core.DefaultProcessorConfig(),
		delaySize: DefaultDelaySize,
		shaping:   true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	line, err := delay.New(p.delaySize, delay.WithMode(p.mode))
	if err != nil {
		return nil, fmt.Errorf("pluck: %w", err)
	}
	p.line = line
	p.Init()

	return p, nil
}

// Init clears the string, tunes the filters and restores the default
// controls: damping 0.5, minimum attenuation, unity drive, 10 ms attack.
func (p *Pluck) Init() {
	p.line.Clear()
	p.noise.Seed(p.seed)
	p.impulsePole = 0.9
	p.impulse.SetPole(p.impulsePole)
	p.impulse.Reset()
	p.post.SetFirstOrderLowPass(onepole.TanPi(0.45))
	p.post.Reset()

	p.length = float64(p.line.Len() - 1)
	p.last = 0
	p.burst = 0

	p.damping = DampingCurve(0.5)
	p.attenuation = AttenuationCurve(0)
	p.drive = DriveCurve(0)
	p.attackMs = AttackCurve(1)
	p.inharmonicity = 0

	p.mod.Set(0)
	p.pending = events{}
}

// UpdatePitch sets the loop length to one period, clamped to the buffer.
func (p *Pluck) UpdatePitch(w0 float64) {
	period := float64(p.line.Len() - 1)
	if w0 > 0 && !math.IsInf(w0, 0) {
		period = 1 / w0
	}
	p.length = p.line.ClampLag(period)
}

// SetParameter maps ParamShape to damping, ParamShiftShape to the burst
// tone, ParamID1 to attenuation, ParamID2 to drive, ParamID3 to attack
// and ParamID4 to inharmonicity.
func (p *Pluck) SetParameter(id Param, value float64) {
	switch id {
	case ParamShape:
		p.damping = DampingCurve(value)
	case ParamShiftShape:
		p.impulsePole = ImpulsePoleCurve(value)
		p.impulse.SetPole(p.impulsePole)
	case ParamID1:
		p.attenuation = AttenuationCurve(value)
	case ParamID2:
		p.drive = DriveCurve(value)
	case ParamID3:
		p.attackMs = AttackCurve(value)
	case ParamID4:
		// Stored for a future dispersion stage; not used by the loop.
		p.inharmonicity = unit(value)
	}
}

// NoteOn requests a new pluck at the next Render.
func (p *Pluck) NoteOn() {
	p.pending.reset = true
}

// NoteOff has no effect; the string rings out.
func (p *Pluck) NoteOff() {}

// Render fills out with the string signal.
func (p *Pluck) Render(out []float64, mod float64) {
	if len(out) == 0 {
		return
	}

	if ev := p.pending.drain(); ev.reset {
		p.trigger()
		p.mod.Set(mod)
	}
	p.mod.Begin(mod, len(out))

	loss := 1 - p.attenuation

	for i := range out {
		delayed := p.line.ReadFractional(p.length)

		d := core.Clamp(p.damping+p.mod.Value(), minDamping, maxDamping)
		sig := loss * (d*delayed + (1-d)*p.last)

		if p.burst > 0 {
			p.burst--
			sig += p.impulse.ProcessSample(p.noise.Next())
		}

		fed := shaper.SoftClip(pluckLoopClip, sig)
		p.line.Write(fed)
		p.last = fed

		y := shaper.SoftClip(pluckDriveClip, sig*p.drive)
		if p.shaping {
			y = shaper.SoftClip(pluckOutputClip, p.post.ProcessSample(y))
		}
		out[i] = y

		p.mod.Advance()
	}
}

// trigger restarts the string. Filter memories carry over so the output
// stays continuous across retriggers.
func (p *Pluck) trigger() {
	p.line.Clear()
	p.last = 0
	p.burst = BurstLength(p.attackMs, p.cfg.SamplesPerMs())
}

// BurstLength returns the excitation length in samples for an attack in
// milliseconds, rounded to the nearest sample.
func BurstLength(attackMs, samplesPerMs float64) int {
	n := math.Round(attackMs * samplesPerMs)
	if !(n > 0) {
		return 0
	}
	return int(n)
}

// Burst returns the remaining excitation samples.
func (p *Pluck) Burst() int {
	return p.burst
}

// Interpolation returns the delay read mode of the loop.
func (p *Pluck) Interpolation() interp.Mode {
	return p.line.Mode()
}

// Length returns the loop length in samples.
func (p *Pluck) Length() float64 {
	return p.length
}

// Attenuation returns the per-pass loop loss.
func (p *Pluck) Attenuation() float64 {
	return p.attenuation
}

// Inharmonicity returns the stored inharmonicity control.
func (p *Pluck) Inharmonicity() float64 {
	return p.inharmonicity
}

// SampleRate returns the configured sample rate.
func (p *Pluck) SampleRate() float64 {
	return p.cfg.SampleRate
}
