package voice

// Param identifies a host parameter slot. Each voice maps slots to its own
// controls; unknown slots are ignored.
type Param int

const (
	ParamShape Param = iota
	ParamShiftShape
	ParamID1
	ParamID2
	ParamID3
	ParamID4
	ParamID5
	ParamID6
)

var paramNames = [...]string{"shape", "shift-shape", "id1", "id2", "id3", "id4", "id5", "id6"}

func (p Param) String() string {
	if p < 0 || int(p) >= len(paramNames) {
		return "unknown"
	}
	return paramNames[p]
}

// Voice is the contract shared by every oscillator voice.
type Voice interface {
	// Init restores the freshly constructed state.
	Init()
	// UpdatePitch sets the fundamental in cycles per sample.
	UpdatePitch(w0 float64)
	// SetParameter records a normalized parameter value in [0,1].
	SetParameter(id Param, value float64)
	// Render fills out, ramping the smoothed modulation toward mod.
	Render(out []float64, mod float64)
	NoteOn()
	NoteOff()
}

var (
	_ Voice = (*Organ)(nil)
	_ Voice = (*Pluck)(nil)
)

// events are one-shot requests drained at the start of a render block.
type events struct {
	presetChanged bool
	reset         bool
}

func (e *events) drain() events {
	pending := *e
	*e = events{}
	return pending
}

// Ramp moves a value linearly to a target across one block.
type Ramp struct {
	value float64
	step  float64
}

// Value returns the current value.
func (r *Ramp) Value() float64 {
	return r.value
}

// Set jumps to v and stops moving.
func (r *Ramp) Set(v float64) {
	r.value = v
	r.step = 0
}

// Begin plans n steps from the current value to target.
func (r *Ramp) Begin(target float64, n int) {
	if n <= 0 {
		r.step = 0
		return
	}
	r.step = (target - r.value) / float64(n)
}

// Advance moves one step.
func (r *Ramp) Advance() {
	r.value += r.step
}
