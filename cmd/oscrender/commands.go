package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/cwbudde/algo-osc/dsp/core"
	"github.com/cwbudde/algo-osc/internal/cli"
	"github.com/cwbudde/algo-osc/internal/playback"
	"github.com/cwbudde/algo-osc/internal/wavio"
	"github.com/cwbudde/algo-osc/measure/tone"
	"github.com/cwbudde/algo-osc/synth/host"
	"github.com/cwbudde/algo-osc/synth/registration"
)

// RenderCmd renders a voice to a WAV file.
type RenderCmd struct {
	VoiceFlags `embed:""`

	Bits   int    `default:"24" enum:"16,24,32" help:"Output bit depth (16, 24, 32)"`
	Output string `arg:"" type:"path" help:"Output WAV file"`
}

// Run implements the render command.
func (c *RenderCmd) Run(a *app) error {
	out, engine, err := c.perform(context.Background(), a)
	if err != nil {
		return err
	}

	if err := wavio.WriteMono(c.Output, out, c.Rate, c.Bits); err != nil {
		return err
	}
	a.logf("[RENDER] wrote %d frames to %s", len(out), c.Output)

	cli.PrintSection(os.Stdout, "Rendered "+engine.Kind().String())
	cli.PrintKV(os.Stdout, "File", c.Output)
	cli.PrintKV(os.Stdout, "Duration", fmt.Sprintf("%.3f s", float64(len(out))/float64(c.Rate)))
	return printLevels(out, float64(c.Rate))
}

// PlayCmd plays a voice on the default audio device.
type PlayCmd struct {
	VoiceFlags `embed:""`
}

// Run implements the play command.
func (c *PlayCmd) Run(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var src playback.Source
	if c.Script != "" {
		out, _, err := c.perform(ctx, a)
		if err != nil {
			return err
		}
		src = playback.NewSliceSource(out)
	} else {
		engine, err := c.engine()
		if err != nil {
			return err
		}
		engine.NoteOn()
		src = playback.NewEngineSource(engine, c.w0(), c.LFO, c.frames())
	}

	player, err := playback.Open(c.Rate)
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	defer player.Close()

	a.logf("[PLAY] %s at %d Hz", c.Voice, c.Rate)
	if err := player.Play(ctx, src); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// PresetsCmd lists the organ registrations and the voice controls.
type PresetsCmd struct {
	Classic bool `help:"Show the two-preset table"`
}

// Run implements the presets command.
func (c *PresetsCmd) Run() error {
	table := registration.Extended()
	if c.Classic {
		table = registration.Classic()
	}

	cli.PrintSection(os.Stdout, "Organ registrations  (16' 8' 5⅓' 4' 2⅔' 2' 1⅗' 1⅓' 1')")
	first, last := knobRanges(table)
	for i, p := range table.Presets() {
		cli.PrintKV(os.Stdout, p.Name, fmt.Sprintf("%s   shape %4d-%4d", drawbars(p), first[i], last[i]))
	}

	for _, kind := range host.Kinds {
		fmt.Println()
		cli.PrintSection(os.Stdout, "Controls: "+kind.String())
		for _, info := range host.Params(kind) {
			cli.PrintKV(os.Stdout, info.Name, info.Index.String())
		}
	}
	return nil
}

// knobRanges returns the raw shape knob span selecting each preset.
func knobRanges(table *registration.Table) (first, last []int) {
	first = make([]int, table.Len())
	last = make([]int, table.Len())
	for i := range first {
		first[i] = -1
	}
	for raw := 0; raw <= host.MaxKnob; raw++ {
		i := table.Index(host.KnobToFloat(uint16(raw)))
		if first[i] < 0 {
			first[i] = raw
		}
		last[i] = raw
	}
	return first, last
}

// drawbars prints a preset as drawbar positions 0..8 relative to its
// loudest partial.
func drawbars(p registration.Preset) string {
	peak := 0.0
	for _, w := range p.Weights {
		peak = max(peak, w)
	}

	parts := make([]string, len(p.Weights))
	for i, w := range p.Weights {
		pos := 0
		if peak > 0 {
			pos = int(w/peak*8 + 0.5)
		}
		parts[i] = fmt.Sprint(pos)
	}
	return strings.Join(parts, "  ")
}

// AnalyzeCmd measures a WAV file.
type AnalyzeCmd struct {
	File string `arg:"" type:"existingfile" help:"WAV file to analyze"`
}

// Run implements the analyze command.
func (c *AnalyzeCmd) Run(a *app) error {
	samples, rate, err := wavio.ReadMono(c.File)
	if err != nil {
		return err
	}
	a.logf("[ANALYZE] %s: %d frames at %d Hz", c.File, len(samples), rate)

	cli.PrintSection(os.Stdout, "Analysis")
	cli.PrintKV(os.Stdout, "File", c.File)
	cli.PrintKV(os.Stdout, "Sample rate", fmt.Sprintf("%d Hz", rate))
	cli.PrintKV(os.Stdout, "Duration", fmt.Sprintf("%.3f s", float64(len(samples))/float64(rate)))
	return printLevels(samples, float64(rate))
}

// analysisFrames bounds the FFT length used for pitch estimation.
const analysisFrames = 1 << 16

func printLevels(samples []float64, sampleRate float64) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to analyze")
	}
	segment := samples
	if len(segment) > analysisFrames {
		segment = segment[:analysisFrames]
	}

	res, err := tone.Analyze(segment, tone.Config{SampleRate: sampleRate, MaxPeaks: 5})
	if err != nil {
		return err
	}

	cli.PrintKV(os.Stdout, "Peak", fmt.Sprintf("%.2f dBFS", res.PeakDB))
	cli.PrintKV(os.Stdout, "RMS", fmt.Sprintf("%.2f dBFS", core.LinearToDB(res.RMS)))
	if len(res.Peaks) == 0 {
		cli.PrintKV(os.Stdout, "Pitch", "silent")
		return nil
	}
	cli.PrintKV(os.Stdout, "Pitch", fmt.Sprintf("%.2f Hz", res.DominantFreq))
	for i, p := range res.Peaks {
		cli.PrintKV(os.Stdout, fmt.Sprintf("Partial %d", i+1),
			fmt.Sprintf("%8.2f Hz  %6.2f dB", p.Freq, core.LinearToDB(p.Level)))
	}
	return nil
}
