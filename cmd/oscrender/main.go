// Command oscrender renders, plays and inspects the organ and pluck voices.
//
// Usage:
//
//	oscrender render [flags] <output.wav>
//	oscrender play [flags]
//	oscrender presets [--classic]
//	oscrender analyze <input.wav>
//
// Examples:
//
//	oscrender render -V organ -n 57 -p registration=0.35 organ.wav
//	oscrender render -V pluck -p attack=0.3 -p damping=0.6 -s 3 pluck.wav
//	oscrender render --script riff.lua riff.wav
//	oscrender play -V pluck -n 40
//	oscrender analyze pluck.wav
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-osc/internal/cli"
)

var version = "0.1.0"

type versionFlag bool

// BeforeReset prints the version and exits before any validation.
func (versionFlag) BeforeReset(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(vars["version"])
	app.Exit(0)
	return nil
}

// CLI defines the command-line interface.
type CLI struct {
	Version versionFlag `short:"v" help:"Show version information"`
	Debug   string      `type:"path" placeholder:"FILE" help:"Write a debug log of script events to FILE"`

	Render  RenderCmd  `cmd:"" help:"Render a voice to a WAV file"`
	Play    PlayCmd    `cmd:"" help:"Play a voice on the audio device"`
	Presets PresetsCmd `cmd:"" help:"List organ registrations and voice parameters"`
	Analyze AnalyzeCmd `cmd:"" help:"Measure pitch and level of a WAV file"`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("oscrender"),
		kong.Description("Organ and plucked-string oscillator voices"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter("algo-osc", "Organ and plucked-string oscillator voices")),
	)

	app, closeLog, err := newApp(cliArgs.Debug)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	defer closeLog()

	if err := ctx.Run(app); err != nil {
		app.logf("[MAIN] %s failed: %v", ctx.Command(), err)
		cli.PrintError(err.Error())
		closeLog()
		os.Exit(1)
	}
}

// app carries state shared by every command.
type app struct {
	logf func(format string, args ...any)
}

func newApp(debugPath string) (*app, func(), error) {
	a := &app{logf: func(string, ...any) {}}
	if debugPath == "" {
		return a, func() {}, nil
	}

	debugLog, err := os.Create(debugPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	a.logf = func(format string, args ...any) {
		fmt.Fprintf(debugLog, format+"\n", args...)
	}
	return a, func() { debugLog.Close() }, nil
}
