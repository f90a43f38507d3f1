// Package host adapts a voice to the fixed-point oscillator boundary.
//
// The boundary passes pitch as a packed note number (high byte) plus a
// fraction of a semitone in 1/256 steps (low byte), a Q31 shape LFO, raw
// 16-bit parameter values and a Q31 output buffer. Engine converts these to
// the normalized float domain of package voice and back. An Engine owns
// exactly one voice and a preallocated scratch block; it performs no
// allocation after construction.
package host
