// Package voice implements the monophonic oscillator voices: an additive
// drawbar organ and a noise-excited plucked string.
//
// Both voices share one lifecycle. A host calls UpdatePitch once per block
// with the fundamental in cycles per sample, then Render with the block's
// modulation target. Parameter and note events only record pending state;
// it is applied at the start of the next Render. Render, SetParameter,
// NoteOn, NoteOff and UpdatePitch never allocate and never block.
//
// Voices are not safe for concurrent use.
package voice
