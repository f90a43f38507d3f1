package signal

import "testing"

func TestNoiseDeterministic(t *testing.T) {
	a := NewNoise(42)
	b := NewNoise(42)
	for i := 0; i < 1000; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("sample %d: %v != %v", i, x, y)
		}
	}
}

func TestNoiseZeroSeedUsesDefault(t *testing.T) {
	a := NewNoise(0)
	b := NewNoise(defaultNoiseSeed)
	if a.Next() != b.Next() {
		t.Fatal("zero seed did not select the default seed")
	}
}

func TestNoiseRangeAndMean(t *testing.T) {
	n := NewNoise(7)
	buf := make([]float64, 1<<16)
	n.Fill(buf, 1)

	sum := 0.0
	for i, v := range buf {
		if v < -1 || v >= 1 {
			t.Fatalf("buf[%d] = %v outside [-1, 1)", i, v)
		}
		sum += v
	}
	if mean := sum / float64(len(buf)); mean > 0.02 || mean < -0.02 {
		t.Fatalf("mean = %v, want near 0", mean)
	}
}

func TestNoiseReseed(t *testing.T) {
	n := NewNoise(3)
	first := n.Next()
	n.Next()
	n.Seed(3)
	if got := n.Next(); got != first {
		t.Fatalf("after reseed got %v, want %v", got, first)
	}
}

func TestNoiseFillScales(t *testing.T) {
	a := NewNoise(9)
	b := NewNoise(9)
	buf := make([]float64, 16)
	b.Fill(buf, 0.25)
	for i, v := range buf {
		if want := 0.25 * a.Next(); v != want {
			t.Fatalf("buf[%d] = %v, want %v", i, v, want)
		}
	}
}

func BenchmarkNoiseNext(b *testing.B) {
	n := NewNoise(1)
	var acc float64
	for i := 0; i < b.N; i++ {
		acc += n.Next()
	}
	_ = acc
}
