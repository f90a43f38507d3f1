package partials

import (
	"math"
	"testing"
)

func TestPhasesStayInUnitRange(t *testing.T) {
	var b Bank
	for _, w0 := range []float64{0, 1e-6, 440.0 / 48000, 0.1, 0.37, 0.49999} {
		b.SetFundamental(w0)
		for n := 0; n < 20000; n++ {
			b.Advance()
			for i := 0; i < Count; i++ {
				p := b.Phase(i)
				if p < 0 || p >= 1 {
					t.Fatalf("w0=%v n=%d: phase[%d] = %v outside [0,1)", w0, n, i, p)
				}
			}
		}
	}
}

func TestIncrementsFollowRatios(t *testing.T) {
	var b Bank
	w0 := 440.0 / 48000
	b.SetFundamental(w0)
	for i, r := range HarmonicRatios {
		if got := b.Increment(i); math.Abs(got-r*w0) > 1e-15 {
			t.Fatalf("inc[%d] = %v, want %v", i, got, r*w0)
		}
	}
}

func TestIncrementsWrapAboveOne(t *testing.T) {
	var b Bank
	b.SetFundamental(0.25)
	// 8 * 0.25 = 2 cycles per sample is the same as standing still.
	if got := b.Increment(8); got != 0 {
		t.Fatalf("inc[8] = %v, want 0", got)
	}
	// 6 * 0.25 = 1.5 wraps to 0.5.
	if got := b.Increment(7); got != 0.5 {
		t.Fatalf("inc[7] = %v, want 0.5", got)
	}
}

func TestInvalidFundamentalStopsBank(t *testing.T) {
	for _, w0 := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		var b Bank
		b.SetFundamental(w0)
		for i := 0; i < Count; i++ {
			if b.Increment(i) != 0 {
				t.Fatalf("w0=%v: inc[%d] = %v, want 0", w0, i, b.Increment(i))
			}
		}
	}
}

func TestSinesFollowPhase(t *testing.T) {
	var b Bank
	b.SetFundamental(0.125)

	var s [Count]float64
	b.Sines(&s)
	for i, v := range s {
		if v != 0 {
			t.Fatalf("sin[%d] at zero phase = %v", i, v)
		}
	}

	b.Advance()
	b.Sines(&s)
	// Unison partial is at phase 1/8.
	if math.Abs(s[1]-math.Sin(math.Pi/4)) > 1e-12 {
		t.Fatalf("sin[1] = %v, want %v", s[1], math.Sin(math.Pi/4))
	}
}

func TestResetZeroesPhases(t *testing.T) {
	var b Bank
	b.SetFundamental(0.01)
	for i := 0; i < 10; i++ {
		b.Advance()
	}
	b.Reset()
	if b.Phases() != ([Count]float64{}) {
		t.Fatalf("phases after reset = %v", b.Phases())
	}
	if b.Increment(1) != 0.01 {
		t.Fatalf("reset must keep increments, got %v", b.Increment(1))
	}
}

func BenchmarkBank(b *testing.B) {
	var bank Bank
	bank.SetFundamental(440.0 / 48000)
	var s [Count]float64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bank.Sines(&s)
		bank.Advance()
	}
}
