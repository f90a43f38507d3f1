// Package score renders Lua performance scripts through a host Engine.
//
// A script drives one voice with these globals:
//
//	param(name, v)    set a control by name ("drive", "attack", "id3") to v in [0,1]
//	note(n [, fine])  set the pitch to MIDI note n plus fine/256 semitone
//	note_on()         trigger the voice
//	note_off()        release the voice
//	lfo(v)            set the modulation target in [-1,1]
//	render(seconds)   render the voice
//	rest(seconds)     append silence without advancing the voice
//	sample_rate()     return the engine sample rate
//	voice()           return the voice kind name
//
// Only the base, table, string and math libraries are opened.
package score
