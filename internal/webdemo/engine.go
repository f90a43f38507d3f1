// Package webdemo runs a voice behind a 16-step sequencer for the browser
// demo. It has no syscall/js dependency so it can be tested natively.
package webdemo

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-osc/dsp/filter/onepole"
	"github.com/cwbudde/algo-osc/measure/tone"
	"github.com/cwbudde/algo-osc/synth/host"
)

const (
	stepCount    = 16
	defaultTempo = 110

	// controlBlock is the render granularity of the LFO smoother.
	controlBlock   = 64
	lfoSmoothingHz = 8

	defaultToneHz = 8000
	minToneHz     = 20
)

// StepConfig defines one sequencer step.
type StepConfig struct {
	Enabled bool
	Note    float64
}

// Engine owns one voice engine and the sequencer driving it.
type Engine struct {
	sampleRate float64
	engine     *host.Engine

	note      float64
	lfo       float64
	mod       float64
	lfoSmooth onepole.Section
	tone      onepole.Section
	toneHz    float64

	tempoBPM             float64
	running              bool
	steps                [stepCount]StepConfig
	currentStep          int
	samplesUntilNextStep float64

	scratch []float64
	history []float64
	histPos int
}

// NewEngine creates a demo engine running kind ("organ" or "pluck").
func NewEngine(sampleRate float64, kind string) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %f", sampleRate)
	}
	e := &Engine{
		sampleRate: sampleRate,
		note:       69,
		tempoBPM:   defaultTempo,
		scratch:    make([]float64, controlBlock),
		history:    make([]float64, 8192),
	}
	e.lfoSmooth.SetSmoothing(lfoSmoothingHz, sampleRate/controlBlock)
	e.SetTone(defaultToneHz)
	for i := range e.steps {
		e.steps[i] = StepConfig{Note: 57}
	}
	if err := e.SetVoice(kind); err != nil {
		return nil, err
	}
	return e, nil
}

// SetVoice swaps the running voice. Parameters are reset.
func (e *Engine) SetVoice(kind string) error {
	k, err := host.ParseKind(kind)
	if err != nil {
		return err
	}
	engine, err := host.NewEngine(k, host.WithSampleRate(e.sampleRate))
	if err != nil {
		return err
	}
	e.engine = engine
	return nil
}

// Voice returns the running voice kind.
func (e *Engine) Voice() string {
	return e.engine.Kind().String()
}

// SetParameter sets a named control to a value in [0,1].
func (e *Engine) SetParameter(name string, v float64) error {
	index, err := host.LookupParam(e.engine.Kind(), name)
	if err != nil {
		return err
	}
	e.engine.SetValue(index, v)
	return nil
}

// SetLFO sets the modulation target in [-1,1].
func (e *Engine) SetLFO(v float64) {
	e.lfo = min(max(v, -1), 1)
}

// Modulation returns the smoothed LFO value applied to the last block.
func (e *Engine) Modulation() float64 {
	return e.mod
}

// SetTone sets the cutoff of the master low-pass. The cutoff is limited to
// [20 Hz, fs/4], where the filter has no overshoot.
func (e *Engine) SetTone(cutoffHz float64) {
	if math.IsNaN(cutoffHz) {
		return
	}
	e.toneHz = min(max(cutoffHz, minToneHz), e.sampleRate/4)
	e.tone.SetCutoff(e.toneHz, e.sampleRate)
}

// Tone returns the master low-pass cutoff in Hz.
func (e *Engine) Tone() float64 {
	return e.toneHz
}

// NoteOn sets the pitch and triggers the voice.
func (e *Engine) NoteOn(note float64) {
	e.note = min(max(note, 0), 127)
	e.engine.NoteOn()
}

// NoteOff releases the voice.
func (e *Engine) NoteOff() {
	e.engine.NoteOff()
}

// Render fills dst with the next samples.
func (e *Engine) Render(dst []float32) {
	for len(dst) > 0 {
		n := min(len(dst), len(e.scratch))
		if e.running {
			n = min(n, e.samplesToStep())
		}
		buf := e.scratch[:n]

		w0 := host.NoteFrequency(e.note) / e.sampleRate
		e.mod = e.lfoSmooth.ProcessSample(e.lfo)
		e.engine.RenderFloat(w0, e.mod, buf)
		e.tone.ProcessBlock(buf)

		for i, v := range buf {
			dst[i] = float32(v)
			e.history[e.histPos] = v
			e.histPos = (e.histPos + 1) % len(e.history)
		}
		dst = dst[n:]

		if e.running {
			e.advance(n)
		}
	}
}

// Analyze measures the most recent output.
func (e *Engine) Analyze() (tone.Result, error) {
	ordered := make([]float64, len(e.history))
	n := copy(ordered, e.history[e.histPos:])
	copy(ordered[n:], e.history[:e.histPos])
	return tone.Analyze(ordered, tone.Config{SampleRate: e.sampleRate, MaxPeaks: 4})
}
