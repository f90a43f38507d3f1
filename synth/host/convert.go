package host

import "math"

const (
	q31Scale = 1 << 31

	// MaxKnob is the largest raw value of the shape knobs.
	MaxKnob = 1023
	// MaxPercent is the largest raw value of the ID parameters.
	MaxPercent = 100
)

// NoteFrequency returns the equal-tempered frequency of a fractional MIDI
// note, A4 = 69 = 440 Hz.
func NoteFrequency(note float64) float64 {
	return 440 * math.Exp2((note-69)/12)
}

// NoteToW0 returns the fundamental in cycles per sample for a note plus
// fine/256 semitone.
func NoteToW0(note, fine uint8, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return NoteFrequency(float64(note)+float64(fine)/256) / sampleRate
}

// PitchToW0 decodes a packed pitch word.
func PitchToW0(pitch uint16, sampleRate float64) float64 {
	return NoteToW0(uint8(pitch>>8), uint8(pitch&0xFF), sampleRate)
}

// PackPitch encodes a fractional note as a pitch word, saturating at the
// representable range.
func PackPitch(note float64) uint16 {
	if !(note > 0) {
		return 0
	}
	v := math.Round(note * 256)
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

// Q31ToFloat converts a Q31 value to [-1, 1).
func Q31ToFloat(q int32) float64 {
	return float64(q) / q31Scale
}

// FloatToQ31 converts x to Q31 with saturation. NaN maps to zero.
func FloatToQ31(x float64) int32 {
	if math.IsNaN(x) {
		return 0
	}
	v := math.Round(x * q31Scale)
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	if v <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// KnobToFloat maps a 10-bit knob value to [0,1].
func KnobToFloat(raw uint16) float64 {
	return float64(min(raw, MaxKnob)) / MaxKnob
}

// PercentToFloat maps a percent value to [0,1].
func PercentToFloat(raw uint16) float64 {
	return float64(min(raw, MaxPercent)) / MaxPercent
}
