// Package delay provides a fixed-capacity circular delay line with
// fractional reads, the resonator core of waveguide string models.
//
// Capacity is fixed at construction and must be a power of two, so cursor
// arithmetic is a mask. Reads never fail: lags are clamped into the valid
// range instead of being rejected, which keeps the line safe to use inside
// a real-time render loop.
package delay
