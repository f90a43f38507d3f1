//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-osc/internal/webdemo"
)

var (
	demo  *webdemo.Engine
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		e, err := webdemo.NewEngine(floatArg(args, 0, 48000), stringArg(args, 1, "organ"))
		if err != nil {
			return err.Error()
		}
		demo = e
		return js.Null()
	}))

	bind(api, "setVoice", 1, func(args []js.Value) error {
		return demo.SetVoice(args[0].String())
	})
	bind(api, "noteOn", 0, func(args []js.Value) error {
		demo.NoteOn(floatArg(args, 0, 69))
		return nil
	})
	bind(api, "noteOff", 0, func([]js.Value) error {
		demo.NoteOff()
		return nil
	})
	bind(api, "setParameter", 2, func(args []js.Value) error {
		return demo.SetParameter(args[0].String(), args[1].Float())
	})
	bind(api, "setLFO", 1, func(args []js.Value) error {
		demo.SetLFO(args[0].Float())
		return nil
	})
	bind(api, "setTone", 1, func(args []js.Value) error {
		demo.SetTone(args[0].Float())
		return nil
	})
	bind(api, "setTransport", 1, func(args []js.Value) error {
		demo.SetTransport(args[0].Float())
		return nil
	})
	bind(api, "setRunning", 1, func(args []js.Value) error {
		demo.SetRunning(args[0].Bool())
		return nil
	})
	bind(api, "setSteps", 1, func(args []js.Value) error {
		demo.SetSteps(decodeSteps(args[0]))
		return nil
	})

	api.Set("render", export(func(args []js.Value) any {
		n := 0
		if demo != nil && len(args) > 0 {
			n = max(args[0].Int(), 0)
		}
		samples := make([]float32, n)
		if demo != nil {
			demo.Render(samples)
		}
		arr := js.Global().Get("Float32Array").New(n)
		for i, v := range samples {
			arr.SetIndex(i, v)
		}
		return arr
	}))

	api.Set("analyze", export(func([]js.Value) any {
		if demo == nil {
			return js.Null()
		}
		res, err := demo.Analyze()
		if err != nil {
			return err.Error()
		}
		return map[string]any{
			"pitch":  res.DominantFreq,
			"peakDB": res.PeakDB,
			"rms":    res.RMS,
		}
	}))

	api.Set("currentStep", export(func([]js.Value) any {
		if demo == nil {
			return -1
		}
		return demo.CurrentStep()
	}))

	js.Global().Set("AlgoOscDemo", api)
	select {}
}

// bind exports a call that needs an initialized demo and at least minArgs
// arguments. Errors are returned to JS as strings, success as null.
func bind(api js.Value, name string, minArgs int, fn func([]js.Value) error) {
	api.Set(name, export(func(args []js.Value) any {
		if demo == nil || len(args) < minArgs {
			return js.Null()
		}
		if err := fn(args); err != nil {
			return err.Error()
		}
		return js.Null()
	}))
}

func decodeSteps(arr js.Value) []webdemo.StepConfig {
	steps := make([]webdemo.StepConfig, arr.Length())
	for i := range steps {
		item := arr.Index(i)
		steps[i] = webdemo.StepConfig{
			Enabled: item.Get("enabled").Truthy(),
			Note:    item.Get("note").Float(),
		}
	}
	return steps
}

func floatArg(args []js.Value, i int, def float64) float64 {
	if i < len(args) && args[i].Type() == js.TypeNumber {
		return args[i].Float()
	}
	return def
}

func stringArg(args []js.Value, i int, def string) string {
	if i < len(args) && args[i].Type() == js.TypeString {
		return args[i].String()
	}
	return def
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
