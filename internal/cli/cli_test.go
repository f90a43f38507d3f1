package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type testApp struct {
	Verbose bool `short:"v" help:"Talk more"`

	Render struct {
		Rate   int    `default:"48000" help:"Sample rate"`
		Output string `arg:"" help:"Output file"`
	} `cmd:"" help:"Render a voice"`

	Presets struct{} `cmd:"" help:"List presets"`
}

func TestStyledHelpPrinterDescribesCommand(t *testing.T) {
	var buf bytes.Buffer
	var app testApp
	parser, err := kong.New(&app, kong.Name("osc"), kong.Writers(&buf, &buf))
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	ctx, err := parser.Parse([]string{"render", "out.wav"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	printer := StyledHelpPrinter("osc", "oscillator tools")
	if err := printer(kong.HelpOptions{}, ctx); err != nil {
		t.Fatalf("printer error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Render a voice", "--rate", "48000", "Output file", "--verbose"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatKV(t *testing.T) {
	line := FormatKV("Peak", "-3.0 dBFS")
	if !strings.Contains(line, "Peak:") || !strings.Contains(line, "-3.0 dBFS") {
		t.Fatalf("FormatKV() = %q", line)
	}

	var buf bytes.Buffer
	PrintKV(&buf, "Rate", 48000)
	PrintSection(&buf, "Result")
	if !strings.Contains(buf.String(), "48000") || !strings.Contains(buf.String(), "Result") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
