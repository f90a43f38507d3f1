package registration

import "fmt"

// Order of weights: 16', 8', 5⅓', 4', 2⅔', 2', 1⅗', 1⅓', 1'.
var (
	Pop       = Preset{Name: "pop", Weights: Weights{1, 0, 0, 0, 0, 0, 0, 0, 1}}
	Flute     = Drawbars("flute", 0, 8, 0, 6, 0, 2, 0, 0, 0)
	Oboe      = Drawbars("oboe", 0, 4, 0, 6, 6, 6, 4, 2, 0)
	Diapason  = Drawbars("diapason", 0, 8, 0, 7, 6, 5, 4, 3, 2)
	Cello     = Drawbars("cello", 0, 5, 7, 5, 4, 3, 2, 1, 0)
	String    = Drawbars("string", 0, 1, 0, 3, 4, 5, 6, 7, 8)
	VoxHumana = Drawbars("vox humana", 0, 4, 7, 4, 0, 0, 0, 0, 0)
	Horn      = Drawbars("horn", 0, 8, 8, 7, 6, 5, 4, 0, 0)
	Tibia     = Drawbars("tibia", 8, 8, 0, 8, 0, 0, 0, 0, 8)
	Jazz      = Preset{Name: "jazz", Weights: Weights{1, 1, 1, 0, 0, 0, 0, 0, 1}}
)

// Table maps the registration control onto a fixed set of presets.
type Table struct {
	presets []Preset
}

// NewTable returns a table over the given presets in control order.
func NewTable(presets ...Preset) (*Table, error) {
	if len(presets) == 0 {
		return nil, fmt.Errorf("registration table must not be empty")
	}
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return &Table{presets: append([]Preset(nil), presets...)}, nil
}

// Extended returns the ten-preset table.
func Extended() *Table {
	return mustTable(Pop, Flute, Oboe, Diapason, Cello, String, VoxHumana, Horn, Tibia, Jazz)
}

// Classic returns the two-preset table.
func Classic() *Table {
	return mustTable(Pop, Jazz)
}

func mustTable(presets ...Preset) *Table {
	t, err := NewTable(presets...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of presets.
func (t *Table) Len() int {
	return len(t.presets)
}

// Preset returns preset i.
func (t *Table) Preset(i int) Preset {
	return t.presets[i]
}

// Presets returns a copy of the presets in control order.
func (t *Table) Presets() []Preset {
	return append([]Preset(nil), t.presets...)
}

// Index maps a control value to a preset index. The domain [0,1) is split
// into Len equal ranges; a value exactly on a boundary belongs to the range
// above it. Values outside [0,1) and NaN are clamped to the end ranges.
func (t *Table) Index(control float64) int {
	n := len(t.presets)
	if !(control > 0) {
		return 0
	}
	for i := 1; i < n; i++ {
		if control < float64(i)/float64(n) {
			return i - 1
		}
	}
	return n - 1
}

// Select returns the normalized weights and index for a control value.
func (t *Table) Select(control float64) (Weights, int) {
	i := t.Index(control)
	return t.presets[i].Normalized(), i
}
