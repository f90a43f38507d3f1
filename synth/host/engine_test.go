package host

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-osc/synth/voice"
)

func newTestEngine(t testing.TB, kind Kind, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(kind, opts...)
	if err != nil {
		t.Fatalf("NewEngine(%v) error = %v", kind, err)
	}
	return e
}

func TestNewEngineValidation(t *testing.T) {
	if _, err := NewEngine(Kind(9)); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if _, err := NewEngine(KindOrgan, WithSampleRate(-1)); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
	if _, err := NewEngine(KindOrgan, WithBlockSize(0)); err == nil {
		t.Fatal("expected error for zero block size")
	}
	if _, err := NewEngine(KindPluck, WithPluckOptions(voice.WithDelaySize(100))); err == nil {
		t.Fatal("expected voice option error to propagate")
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"organ": KindOrgan, " Pluck ": KindPluck, "hammond": KindOrgan} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("saw"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRenderBlockChunksMatchFloatPath(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			a := newTestEngine(t, kind, WithBlockSize(32))
			b := newTestEngine(t, kind, WithBlockSize(32))
			a.NoteOn()
			b.NoteOn()

			pitch := uint16(57 << 8)
			q := make([]int32, 100)
			a.RenderBlock(pitch, 0, q)

			f := make([]float64, 100)
			b.RenderFloat(PitchToW0(pitch, 48000), 0, f)

			for i := range q {
				if q[i] != FloatToQ31(f[i]) {
					t.Fatalf("sample %d: q31 %d, float %v", i, q[i], f[i])
				}
			}
		})
	}
}

func TestRenderBlockStaysBelowFullScale(t *testing.T) {
	for _, kind := range Kinds {
		e := newTestEngine(t, kind)
		e.SetParameter(ParamShape, 700)
		e.SetParameter(ParamShiftShape, 1023)
		e.SetParameter(ParamID2, 100)
		e.NoteOn()

		out := make([]int32, 64)
		for block := 0; block < 500; block++ {
			e.RenderBlock(69<<8, math.MaxInt32, out)
			for i, v := range out {
				if math.Abs(Q31ToFloat(v)) >= 1 {
					t.Fatalf("%v block %d sample %d saturates: %d", kind, block, i, v)
				}
			}
		}
	}
}

func TestSetParameterRecordsRaw(t *testing.T) {
	e := newTestEngine(t, KindPluck)
	e.SetParameter(ParamID3, 40)
	if e.Parameter(ParamID3) != 40 {
		t.Fatalf("Parameter(ID3) = %d", e.Parameter(ParamID3))
	}
	e.SetParameter(ParamIndex(99), 1)
	if e.Parameter(ParamIndex(99)) != 0 {
		t.Fatal("invalid slot must read as 0")
	}

	// 40% attack is 4 ms, 192 samples at 48 kHz.
	e.NoteOn()
	e.RenderFloat(0.01, 0, make([]float64, 1))
	if got := e.Voice().(*voice.Pluck).Burst(); got != 191 {
		t.Fatalf("burst = %d, want 191", got)
	}

	e.Initialize()
	if e.Parameter(ParamID3) != 0 {
		t.Fatal("Initialize must forget parameters")
	}
}

func TestSetValue(t *testing.T) {
	e := newTestEngine(t, KindOrgan)
	e.SetValue(ParamShape, 0.5)
	if got := e.Parameter(ParamShape); got != 512 {
		t.Fatalf("raw shape = %d, want 512", got)
	}
	e.SetValue(ParamID1, 0.25)
	if got := e.Parameter(ParamID1); got != 25 {
		t.Fatalf("raw id1 = %d, want 25", got)
	}
}

func TestOrganRegistrationFromKnob(t *testing.T) {
	e := newTestEngine(t, KindOrgan)
	organ := e.Voice().(*voice.Organ)

	e.SetParameter(ParamShape, 1023)
	e.RenderFloat(0.01, 0, make([]float64, 1))
	if organ.Preset() != organ.Registrations().Len()-1 {
		t.Fatalf("full knob selected preset %d", organ.Preset())
	}
}

func TestLookupParam(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		want ParamIndex
	}{
		{KindOrgan, "registration", ParamShape},
		{KindOrgan, "drive", ParamShiftShape},
		{KindPluck, "drive", ParamID2},
		{KindPluck, "Attack", ParamID3},
		{KindPluck, "id6", ParamID6},
		{KindOrgan, "shift-shape", ParamShiftShape},
	}
	for _, tt := range tests {
		got, err := LookupParam(tt.kind, tt.name)
		if err != nil || got != tt.want {
			t.Fatalf("LookupParam(%v, %q) = %v, %v; want %v", tt.kind, tt.name, got, err, tt.want)
		}
	}
	if _, err := LookupParam(KindOrgan, "damping"); err == nil {
		t.Fatal("organ has no damping control")
	}
}

func TestParamIndexMapping(t *testing.T) {
	if ParamShape.Voice() != voice.ParamShape || ParamID1.Voice() != voice.ParamID1 {
		t.Fatal("slot mapping broken")
	}
	if ParamIndex(8).Valid() {
		t.Fatal("slot 8 must be invalid")
	}
	if !ParamShape.Knob() || ParamID2.Knob() {
		t.Fatal("knob classification broken")
	}
}

func TestRenderBlockDoesNotAllocate(t *testing.T) {
	e := newTestEngine(t, KindPluck)
	out := make([]int32, 256)
	allocs := testing.AllocsPerRun(50, func() {
		e.SetParameter(ParamShape, 300)
		e.NoteOn()
		e.RenderBlock(60<<8, 1<<29, out)
	})
	if allocs != 0 {
		t.Fatalf("RenderBlock allocates %.1f times", allocs)
	}
}

func BenchmarkRenderBlock(b *testing.B) {
	e := newTestEngine(b, KindOrgan)
	out := make([]int32, 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.RenderBlock(69<<8, 0, out)
	}
}
