// Package shaper provides stateless saturation curves for bounding signal
// amplitude inside feedback loops and at voice outputs.
package shaper

import "math"

// MaxSoftClipThreshold is the largest cubic coefficient for which
// [SoftClip] stays monotonic on [-1, 1].
const MaxSoftClipThreshold = 1.0 / 3.0

// MinSoftClipThreshold is the smallest cubic coefficient [SoftClip] applies.
// Zero, negative and NaN thresholds are raised to it, so the output peak
// 1-c always stays below 1+c.
const MinSoftClipThreshold = 1e-6

// Clip1 hard-limits x to [-1, 1]. NaN maps to 0.
func Clip1(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	case math.IsNaN(x):
		return 0
	default:
		return x
	}
}

// SoftClip applies a cubic soft saturation x - c*x^3 to x limited to
// [-1, 1]. The result is odd, monotonic and peaks at 1-c, strictly inside
// ±(1+c) however large the input is.
//
// c is clamped to [MinSoftClipThreshold, MaxSoftClipThreshold].
func SoftClip(c, x float64) float64 {
	c = clampThreshold(c)
	x = Clip1(x)
	return x - c*x*x*x
}

func clampThreshold(c float64) float64 {
	if c > MaxSoftClipThreshold {
		return MaxSoftClipThreshold
	}
	if c > MinSoftClipThreshold {
		return c
	}
	return MinSoftClipThreshold
}
