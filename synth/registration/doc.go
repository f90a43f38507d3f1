// Package registration holds the drawbar-style amplitude presets of the
// additive organ voice.
//
// A Preset weights the nine partials 16', 8', 5⅓', 4', 2⅔', 2', 1⅗', 1⅓'
// and 1'. A Table partitions the normalized registration control [0,1) into
// equal, contiguous, lower-closed ranges, one per preset, and installs the
// selected weights normalized to unit sum.
package registration
