package main

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-osc/dsp/interp"
	"github.com/cwbudde/algo-osc/synth/host"
	"github.com/cwbudde/algo-osc/synth/registration"
	"github.com/cwbudde/algo-osc/synth/score"
	"github.com/cwbudde/algo-osc/synth/voice"
)

// VoiceFlags selects and configures the voice for render and play.
type VoiceFlags struct {
	Voice   string             `short:"V" default:"organ" enum:"organ,pluck" help:"Voice to run (organ, pluck)"`
	Note    float64            `short:"n" default:"69" help:"MIDI note, fractions allowed"`
	Seconds float64            `short:"s" default:"2" help:"Duration in seconds"`
	Rate    int                `default:"48000" help:"Sample rate in Hz"`
	Block   int                `default:"64" help:"Render block size in frames"`
	LFO     float64            `default:"0" help:"Modulation target in [-1,1]"`
	Param   map[string]float64 `short:"p" placeholder:"NAME=VALUE" help:"Set a control to a value in [0,1], e.g. -p drive=0.5"`
	Script  string             `type:"existingfile" placeholder:"FILE" help:"Lua performance script; replaces note, seconds and lfo"`
	Classic bool               `help:"Use the two-preset organ registration table"`
	Plain   bool               `help:"Disable output shaping filters"`
	Seed    uint32             `help:"Excitation noise seed for the pluck voice"`
	Interp  string             `default:"linear" enum:"linear,hermite" help:"String delay interpolation for the pluck voice (linear, hermite)"`
}

func (f *VoiceFlags) validate() error {
	if f.Rate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d", f.Rate)
	}
	if !(f.Seconds > 0) || math.IsInf(f.Seconds, 0) {
		return fmt.Errorf("duration must be > 0: %v", f.Seconds)
	}
	if f.Note < 0 || f.Note > 127 {
		return fmt.Errorf("note must be in [0,127]: %v", f.Note)
	}
	if f.LFO < -1 || f.LFO > 1 {
		return fmt.Errorf("lfo must be in [-1,1]: %v", f.LFO)
	}
	return nil
}

func (f *VoiceFlags) engine() (*host.Engine, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	kind, err := host.ParseKind(f.Voice)
	if err != nil {
		return nil, err
	}
	mode, err := interp.ParseMode(f.Interp)
	if err != nil {
		return nil, err
	}

	opts := []host.Option{
		host.WithSampleRate(float64(f.Rate)),
		host.WithBlockSize(f.Block),
		host.WithPluckOptions(
			voice.WithNoiseSeed(f.Seed),
			voice.WithDelayInterpolation(mode),
			voice.WithPluckOutputShaping(!f.Plain),
		),
		host.WithOrganOptions(voice.WithOutputShaping(!f.Plain)),
	}
	if f.Classic {
		opts = append(opts, host.WithOrganOptions(voice.WithRegistrations(registration.Classic())))
	}

	engine, err := host.NewEngine(kind, opts...)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(f.Param))
	for name := range f.Param {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := f.Param[name]
		index, err := host.LookupParam(kind, name)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > 1 || math.IsNaN(v) {
			return nil, fmt.Errorf("parameter %s must be in [0,1]: %v", name, v)
		}
		engine.SetValue(index, v)
	}

	return engine, nil
}

// w0 returns the fundamental of the configured note in cycles per sample.
func (f *VoiceFlags) w0() float64 {
	return host.NoteFrequency(f.Note) / float64(f.Rate)
}

func (f *VoiceFlags) frames() int {
	return int(math.Round(f.Seconds * float64(f.Rate)))
}

// perform renders the whole performance offline.
func (f *VoiceFlags) perform(ctx context.Context, a *app) ([]float64, *host.Engine, error) {
	engine, err := f.engine()
	if err != nil {
		return nil, nil, err
	}

	if f.Script != "" {
		runner, err := score.NewRunner(engine, score.WithLogf(a.logf))
		if err != nil {
			return nil, nil, err
		}
		a.logf("[SCORE] running %s on %s", f.Script, engine.Kind())
		out, err := runner.RunFile(ctx, f.Script)
		if err != nil {
			return nil, nil, err
		}
		return out, engine, nil
	}

	a.logf("[RENDER] %s note %.2f for %.3fs at %d Hz", engine.Kind(), f.Note, f.Seconds, f.Rate)
	engine.NoteOn()
	out := make([]float64, f.frames())
	engine.RenderFloat(f.w0(), f.LFO, out)

	return out, engine, nil
}
