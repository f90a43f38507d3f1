package score

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-osc/synth/host"
	lua "github.com/yuin/gopher-lua"
)

const defaultMaxSeconds = 600.0

// ErrTooLong is returned when a script renders past the duration limit.
var ErrTooLong = errors.New("score: performance exceeds duration limit")

// Option configures a Runner.
type Option func(*Runner) error

// WithMaxSeconds limits the total rendered duration.
func WithMaxSeconds(seconds float64) Option {
	return func(r *Runner) error {
		if !(seconds > 0) || math.IsInf(seconds, 0) {
			return fmt.Errorf("score duration limit must be > 0 and finite: %v", seconds)
		}
		r.maxSeconds = seconds
		return nil
	}
}

// WithLogf receives one line per script event.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(r *Runner) error {
		r.logf = logf
		return nil
	}
}

// Runner executes scripts against one engine. A Runner is not safe for
// concurrent use.
type Runner struct {
	engine     *host.Engine
	maxSeconds float64
	logf       func(format string, args ...any)

	note    float64
	lfo     float64
	out     []float64
	overrun bool
}

// NewRunner returns a runner for engine.
func NewRunner(engine *host.Engine, opts ...Option) (*Runner, error) {
	if engine == nil {
		return nil, fmt.Errorf("score: engine must not be nil")
	}
	r := &Runner{
		engine:     engine,
		maxSeconds: defaultMaxSeconds,
		logf:       func(string, ...any) {},
		note:       69,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.logf == nil {
		r.logf = func(string, ...any) {}
	}
	return r, nil
}

// RunString executes a script and returns the rendered samples.
func (r *Runner) RunString(ctx context.Context, src string) ([]float64, error) {
	return r.run(ctx, func(L *lua.LState) error { return L.DoString(src) })
}

// RunFile executes a script file and returns the rendered samples.
func (r *Runner) RunFile(ctx context.Context, path string) ([]float64, error) {
	return r.run(ctx, func(L *lua.LState) error { return L.DoFile(path) })
}

func (r *Runner) run(ctx context.Context, exec func(*lua.LState) error) ([]float64, error) {
	r.out = r.out[:0]
	r.note = 69
	r.lfo = 0
	r.overrun = false

	L := newState()
	defer L.Close()

	if ctx != nil {
		L.SetContext(ctx)
	}
	r.register(L)

	if err := exec(L); err != nil {
		if r.overrun {
			return nil, ErrTooLong
		}
		if ctx != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("score: %w", ctx.Err())
		}
		return nil, fmt.Errorf("score: %w", err)
	}

	out := make([]float64, len(r.out))
	copy(out, r.out)
	return out, nil
}

func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	return L
}

func (r *Runner) register(L *lua.LState) {
	funcs := map[string]lua.LGFunction{
		"param":       r.luaParam,
		"note":        r.luaNote,
		"note_on":     r.luaNoteOn,
		"note_off":    r.luaNoteOff,
		"lfo":         r.luaLFO,
		"render":      r.luaRender,
		"rest":        r.luaRest,
		"sample_rate": r.luaSampleRate,
		"voice":       r.luaVoice,
	}
	for name, fn := range funcs {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func (r *Runner) luaParam(L *lua.LState) int {
	name := L.CheckString(1)
	v := float64(L.CheckNumber(2))

	index, err := host.LookupParam(r.engine.Kind(), name)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if v < 0 || v > 1 || math.IsNaN(v) {
		L.ArgError(2, fmt.Sprintf("value must be in [0,1]: %v", v))
		return 0
	}

	r.engine.SetValue(index, v)
	r.logf("%8.3fs param %s = %.3f", r.seconds(), name, v)
	return 0
}

func (r *Runner) luaNote(L *lua.LState) int {
	n := float64(L.CheckNumber(1))
	fine := float64(L.OptNumber(2, 0))
	if n < 0 || n > 127 || math.IsNaN(n) {
		L.ArgError(1, fmt.Sprintf("note must be in [0,127]: %v", n))
		return 0
	}
	if fine < 0 || fine > 255 || math.IsNaN(fine) {
		L.ArgError(2, fmt.Sprintf("fine must be in [0,255]: %v", fine))
		return 0
	}

	r.note = n + fine/256
	r.logf("%8.3fs note %.2f (%.2f Hz)", r.seconds(), r.note, host.NoteFrequency(r.note))
	return 0
}

func (r *Runner) luaNoteOn(L *lua.LState) int {
	r.engine.NoteOn()
	r.logf("%8.3fs note on", r.seconds())
	return 0
}

func (r *Runner) luaNoteOff(L *lua.LState) int {
	r.engine.NoteOff()
	r.logf("%8.3fs note off", r.seconds())
	return 0
}

func (r *Runner) luaLFO(L *lua.LState) int {
	v := float64(L.CheckNumber(1))
	if v < -1 || v > 1 || math.IsNaN(v) {
		L.ArgError(1, fmt.Sprintf("lfo must be in [-1,1]: %v", v))
		return 0
	}
	r.lfo = v
	return 0
}

func (r *Runner) luaRender(L *lua.LState) int {
	n := r.frames(L)
	start := len(r.out)
	r.out = append(r.out, make([]float64, n)...)

	w0 := host.NoteFrequency(r.note) / r.engine.SampleRate()
	r.engine.RenderFloat(w0, r.lfo, r.out[start:])
	r.logf("%8.3fs render %d frames", float64(start)/r.engine.SampleRate(), n)
	return 0
}

func (r *Runner) luaRest(L *lua.LState) int {
	n := r.frames(L)
	r.out = append(r.out, make([]float64, n)...)
	return 0
}

func (r *Runner) luaSampleRate(L *lua.LState) int {
	L.Push(lua.LNumber(r.engine.SampleRate()))
	return 1
}

func (r *Runner) luaVoice(L *lua.LState) int {
	L.Push(lua.LString(r.engine.Kind().String()))
	return 1
}

// frames converts the duration argument to a frame count and enforces the
// duration limit.
func (r *Runner) frames(L *lua.LState) int {
	seconds := float64(L.CheckNumber(1))
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		L.ArgError(1, fmt.Sprintf("duration must be >= 0 and finite: %v", seconds))
		return 0
	}

	sr := r.engine.SampleRate()
	n := int(math.Round(seconds * sr))
	if float64(len(r.out)+n) > r.maxSeconds*sr {
		r.overrun = true
		L.RaiseError("%v", ErrTooLong)
		return 0
	}
	return n
}

func (r *Runner) seconds() float64 {
	return float64(len(r.out)) / r.engine.SampleRate()
}
