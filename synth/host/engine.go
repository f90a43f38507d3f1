package host

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-osc/dsp/core"
	"github.com/cwbudde/algo-osc/synth/voice"
)

// Kind selects the voice an Engine runs.
type Kind int

const (
	KindOrgan Kind = iota
	KindPluck
)

// Kinds lists every voice kind.
var Kinds = []Kind{KindOrgan, KindPluck}

func (k Kind) String() string {
	switch k {
	case KindOrgan:
		return "organ"
	case KindPluck:
		return "pluck"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses "organ" or "pluck".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "organ", "hammond":
		return KindOrgan, nil
	case "pluck", "string":
		return KindPluck, nil
	default:
		return 0, fmt.Errorf("unknown voice kind: %q", s)
	}
}

// Option configures an Engine.
type Option func(*engineConfig) error

type engineConfig struct {
	proc      []core.ProcessorOption
	organOpts []voice.OrganOption
	pluckOpts []voice.PluckOption
}

// WithSampleRate sets the engine and voice sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(c *engineConfig) error {
		if sampleRate <= 0 || !core.IsFinite(sampleRate) {
			return fmt.Errorf("engine sample rate must be > 0 and finite: %v", sampleRate)
		}
		c.proc = append(c.proc, core.WithSampleRate(sampleRate))
		return nil
	}
}

// WithBlockSize sets the scratch block length. Longer host buffers are
// rendered in chunks of this size.
func WithBlockSize(blockSize int) Option {
	return func(c *engineConfig) error {
		if blockSize <= 0 {
			return fmt.Errorf("engine block size must be > 0: %d", blockSize)
		}
		c.proc = append(c.proc, core.WithBlockSize(blockSize))
		return nil
	}
}

// WithOrganOptions forwards options to the organ voice.
func WithOrganOptions(opts ...voice.OrganOption) Option {
	return func(c *engineConfig) error {
		c.organOpts = append(c.organOpts, opts...)
		return nil
	}
}

// WithPluckOptions forwards options to the pluck voice.
func WithPluckOptions(opts ...voice.PluckOption) Option {
	return func(c *engineConfig) error {
		c.pluckOpts = append(c.pluckOpts, opts...)
		return nil
	}
}

// Engine drives one voice from the fixed-point boundary.
type Engine struct {
	kind    Kind
	cfg     core.ProcessorConfig
	voice   voice.Voice
	scratch []float64
	raw     [NumParams]uint16
}

// NewEngine builds an engine for kind.
func NewEngine(kind Kind, opts ...Option) (*Engine, error) {
	var cfg engineConfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	proc := core.ApplyProcessorOptions(cfg.proc...)

	var (
		v   voice.Voice
		err error
	)
	switch kind {
	case KindOrgan:
		organOpts := append([]voice.OrganOption{voice.WithOrganSampleRate(proc.SampleRate)}, cfg.organOpts...)
		v, err = voice.NewOrgan(organOpts...)
	case KindPluck:
		pluckOpts := append([]voice.PluckOption{voice.WithPluckSampleRate(proc.SampleRate)}, cfg.pluckOpts...)
		v, err = voice.NewPluck(pluckOpts...)
	default:
		return nil, fmt.Errorf("unknown voice kind: %d", int(kind))
	}
	if err != nil {
		return nil, fmt.Errorf("%s engine: %w", kind, err)
	}

	return &Engine{
		kind:    kind,
		cfg:     proc,
		voice:   v,
		scratch: make([]float64, proc.BlockSize),
	}, nil
}

// Kind returns the voice kind.
func (e *Engine) Kind() Kind {
	return e.kind
}

// SampleRate returns the engine sample rate.
func (e *Engine) SampleRate() float64 {
	return e.cfg.SampleRate
}

// BlockSize returns the scratch block length.
func (e *Engine) BlockSize() int {
	return e.cfg.BlockSize
}

// Voice returns the owned voice.
func (e *Engine) Voice() voice.Voice {
	return e.voice
}

// Initialize restores the voice to its constructed state and forgets the
// last parameter values.
func (e *Engine) Initialize() {
	e.voice.Init()
	e.raw = [NumParams]uint16{}
}

// RenderBlock renders len(out) Q31 samples at the packed pitch with the
// Q31 shape LFO as modulation target.
func (e *Engine) RenderBlock(pitch uint16, shapeLFO int32, out []int32) {
	w0 := PitchToW0(pitch, e.cfg.SampleRate)
	mod := Q31ToFloat(shapeLFO)

	for start := 0; start < len(out); start += len(e.scratch) {
		n := min(len(e.scratch), len(out)-start)
		buf := e.scratch[:n]

		e.voice.UpdatePitch(w0)
		e.voice.Render(buf, mod)

		dst := out[start : start+n]
		for i, v := range buf {
			dst[i] = FloatToQ31(v)
		}
	}
}

// RenderFloat renders len(out) samples at fundamental w0 (cycles per
// sample) with modulation target mod in [-1,1].
func (e *Engine) RenderFloat(w0, mod float64, out []float64) {
	for start := 0; start < len(out); start += len(e.scratch) {
		end := min(start+len(e.scratch), len(out))
		e.voice.UpdatePitch(w0)
		e.voice.Render(out[start:end], mod)
	}
}

// NoteOn forwards a note-on to the voice.
func (e *Engine) NoteOn() {
	e.voice.NoteOn()
}

// NoteOff forwards a note-off to the voice.
func (e *Engine) NoteOff() {
	e.voice.NoteOff()
}

// SetParameter scales a raw value for the slot and forwards it. Unknown
// slots are ignored.
func (e *Engine) SetParameter(index ParamIndex, raw uint16) {
	if !index.Valid() {
		return
	}
	e.raw[index] = raw
	e.voice.SetParameter(index.Voice(), index.Normalize(raw))
}

// SetValue sets a slot from a normalized value in [0,1].
func (e *Engine) SetValue(index ParamIndex, v float64) {
	e.SetParameter(index, index.Raw(v))
}

// Parameter returns the last raw value set on a slot.
func (e *Engine) Parameter(index ParamIndex) uint16 {
	if !index.Valid() {
		return 0
	}
	return e.raw[index]
}
