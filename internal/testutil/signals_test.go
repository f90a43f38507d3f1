package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1 at a quarter period", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 64)
	b := DeterministicNoise(42, 0.5, 64)
	c := DeterministicNoise(43, 0.5, 64)

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if math.Abs(a[i]) > 0.5 {
			t.Fatalf("a[%d] = %v exceeds amplitude", i, a[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}
	if MaxAbs(Impulse(4, 10)) != 0 {
		t.Fatal("out-of-range impulse must be silent")
	}
}

func TestDC(t *testing.T) {
	for i, v := range DC(0.5, 4) {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestBlockPeaks(t *testing.T) {
	data := []float64{0.1, -0.4, 0.2, 0.3, -0.05, 0.01, 9}
	got := BlockPeaks(data, 3)
	want := []float64{0.4, 0.3}
	RequireSliceNearlyEqual(t, got, want, 0)

	if BlockPeaks(data, 0) != nil {
		t.Fatal("zero block size must return nil")
	}
}
