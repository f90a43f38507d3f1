package voice

import "github.com/cwbudde/algo-osc/dsp/core"

const (
	minDamping = 1e-6
	maxDamping = 0.999999

	minAttenuation = 0.01
	maxAttenuation = 0.343

	maxAttackMs = 10

	minImpulsePole = 1e-7
	maxImpulsePole = 0.999999
)

func unit(v float64) float64 {
	return core.Clamp(v, 0, 1)
}

// DriveCurve maps a normalized control to a gain in [1,2].
func DriveCurve(v float64) float64 {
	return 1 + unit(v)
}

// DampingCurve inverts the control so larger values damp more.
func DampingCurve(v float64) float64 {
	return 1 - core.Clamp(v, 1e-7, 0.999999)
}

// AttenuationCurve maps a control to the per-pass loop loss.
func AttenuationCurve(v float64) float64 {
	x := 0.1 + 0.6*unit(v)
	return core.Clamp(x*x*x, minAttenuation, maxAttenuation)
}

// AttackCurve maps a control to the noise burst length in milliseconds.
func AttackCurve(v float64) float64 {
	return maxAttackMs * unit(v)
}

// ImpulsePoleCurve maps the tone control to the excitation filter pole.
// Larger values darken the burst.
func ImpulsePoleCurve(v float64) float64 {
	x := 1 - unit(v)
	return core.Clamp(1-x*x*x, minImpulsePole, maxImpulsePole)
}
