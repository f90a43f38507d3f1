package host

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-osc/synth/voice"
)

// ParamIndex is a parameter slot as numbered on the host boundary.
type ParamIndex uint16

const (
	ParamID1 ParamIndex = iota
	ParamID2
	ParamID3
	ParamID4
	ParamID5
	ParamID6
	ParamShape
	ParamShiftShape
)

// NumParams is the number of parameter slots.
const NumParams = 8

var paramVoice = [NumParams]voice.Param{
	ParamID1:        voice.ParamID1,
	ParamID2:        voice.ParamID2,
	ParamID3:        voice.ParamID3,
	ParamID4:        voice.ParamID4,
	ParamID5:        voice.ParamID5,
	ParamID6:        voice.ParamID6,
	ParamShape:      voice.ParamShape,
	ParamShiftShape: voice.ParamShiftShape,
}

// Valid reports whether i names a slot.
func (i ParamIndex) Valid() bool {
	return i < NumParams
}

// Knob reports whether the slot takes a 10-bit knob value rather than a
// percentage.
func (i ParamIndex) Knob() bool {
	return i == ParamShape || i == ParamShiftShape
}

// Normalize maps a raw value for this slot to [0,1].
func (i ParamIndex) Normalize(raw uint16) float64 {
	if i.Knob() {
		return KnobToFloat(raw)
	}
	return PercentToFloat(raw)
}

// Raw maps a normalized value back to the slot's raw range.
func (i ParamIndex) Raw(v float64) uint16 {
	limit := float64(MaxPercent)
	if i.Knob() {
		limit = MaxKnob
	}
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(v*limit + 0.5)
}

// Voice returns the voice parameter the slot drives.
func (i ParamIndex) Voice() voice.Param {
	if !i.Valid() {
		return voice.Param(-1)
	}
	return paramVoice[i]
}

func (i ParamIndex) String() string {
	switch i {
	case ParamShape:
		return "shape"
	case ParamShiftShape:
		return "shift-shape"
	}
	if i.Valid() {
		return fmt.Sprintf("id%d", int(i)+1)
	}
	return fmt.Sprintf("param(%d)", int(i))
}

// ParamInfo describes what a slot controls on one voice kind.
type ParamInfo struct {
	Index ParamIndex
	Name  string
}

var paramNames = map[Kind][]ParamInfo{
	KindOrgan: {
		{ParamShape, "registration"},
		{ParamShiftShape, "drive"},
	},
	KindPluck: {
		{ParamShape, "damping"},
		{ParamShiftShape, "tone"},
		{ParamID1, "attenuation"},
		{ParamID2, "drive"},
		{ParamID3, "attack"},
		{ParamID4, "inharmonicity"},
	},
}

// Params lists the slots a voice kind responds to.
func Params(k Kind) []ParamInfo {
	return append([]ParamInfo(nil), paramNames[k]...)
}

// LookupParam resolves a control name or slot name ("shape", "id3") for a
// voice kind.
func LookupParam(k Kind, name string) (ParamIndex, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range paramNames[k] {
		if p.Name == name || p.Index.String() == name {
			return p.Index, nil
		}
	}
	for i := ParamIndex(0); i < NumParams; i++ {
		if i.String() == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s parameter: %q", k, name)
}
