// Package tone measures rendered oscillator output: spectral peaks, the
// dominant frequency, peak and RMS level, and block peak envelopes.
//
// It is an offline tool for tests and the command line renderer; nothing
// here is meant to run inside a render callback.
package tone
