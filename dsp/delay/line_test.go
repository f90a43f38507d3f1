package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-osc/dsp/interp"
	"github.com/cwbudde/algo-osc/internal/testutil"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// fillRamp fills a delay line with a linear ramp [0, 1, 2, ..., size-1].
func fillRamp(d *Line) {
	for i := 0; i < d.Len(); i++ {
		d.Write(float64(i))
	}
}

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	for _, size := range []int{0, -1, 3, 100, 4095} {
		if _, err := New(size); err == nil {
			t.Fatalf("expected error for size=%d", size)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(4096)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 4096 {
		t.Fatalf("Len: got %d want 4096", d.Len())
	}

	if d.Mode() != interp.Linear {
		t.Fatalf("default mode: got %v want Linear", d.Mode())
	}
}

func TestNewWithOptions(t *testing.T) {
	d, err := New(16, WithMode(interp.Hermite))
	if err != nil {
		t.Fatal(err)
	}

	if d.Mode() != interp.Hermite {
		t.Fatalf("mode: got %v want Hermite", d.Mode())
	}

	if _, err := New(16, WithMode(interp.Mode(42))); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from write head
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		d.Write(float64(i))
	}
	// buffer should contain [8, 9, 6, 7], writePos=2
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}
	if got := d.Read(4); got != 6 {
		t.Fatalf("got %v want 6", got)
	}
}

// --- fractional reads ---

func TestReadFracLinearRamp(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)
	// With a linear ramp, linear interpolation is exact.
	got := d.ReadFrac(5.5)

	want := float64(d.Len()) - 5.5 // 26.5
	if !approxEqual(got, want, 1e-10) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestReadFracClampsLowLag(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)

	want := d.Read(2)
	for _, lag := range []float64{-10, 0, 1, 1.999, math.NaN(), math.Inf(-1)} {
		if got := d.ReadFrac(lag); got != want {
			t.Fatalf("lag=%v: got %v want %v", lag, got, want)
		}
	}
}

func TestReadFracNeverLeavesBuffer(t *testing.T) {
	d, err := New(64)
	if err != nil {
		t.Fatal(err)
	}

	noise := testutil.DeterministicNoise(7, 1, 3*d.Len())
	for _, x := range noise {
		d.Write(x)
	}

	lags := []float64{
		-1e9, -1, 0, 1.5, 2, 2.25, 31.7, 62.999, 63, 63.5,
		63.999999, 64, 64.5, 1000, 1e12, math.Inf(1), math.NaN(),
	}
	out := make([]float64, len(lags))
	for i, lag := range lags {
		out[i] = d.ReadFrac(lag)
		if math.Abs(out[i]) > 1 {
			t.Fatalf("lag=%v: interpolated %v outside the written range", lag, out[i])
		}
	}
	testutil.RequireFinite(t, out)
}

func TestReadFracNearCapacity(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)
	// lag 8 is clamped just below capacity: it reads between Read(7) and
	// the oldest sample at the cursor.
	got := d.ReadFrac(8)
	if !approxEqual(got, d.Read(8), 1e-9) {
		t.Fatalf("got %v want %v", got, d.Read(8))
	}
}

func TestClearIdempotence(t *testing.T) {
	d, err := New(4096)
	if err != nil {
		t.Fatal(err)
	}

	for _, x := range testutil.DeterministicNoise(1, 0.9, 5000) {
		d.Write(x)
	}

	d.Clear()
	d.Clear()

	for lag := 2.0; lag < float64(d.Len()); lag += 13.37 {
		if got := d.ReadFrac(lag); got != 0 {
			t.Fatalf("after Clear ReadFrac(%v) = %v, want 0", lag, got)
		}
	}
}

func TestReadFractionalHermite(t *testing.T) {
	d, err := New(32, WithMode(interp.Hermite))
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)
	got := d.ReadFractional(5.5)

	want := float64(d.Len()) - 5.5
	if !approxEqual(got, want, 1e-10) {
		t.Fatalf("Hermite: got %v want %v", got, want)
	}
}

func TestAllModesDCPreservation(t *testing.T) {
	for _, mode := range []interp.Mode{interp.Linear, interp.Hermite} {
		d, err := New(32, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < d.Len(); i++ {
			d.Write(42.0)
		}

		if got := d.ReadFractional(5.3); !approxEqual(got, 42.0, 1e-9) {
			t.Fatalf("%v DC: got %v want 42", mode, got)
		}
	}
}

func TestAllModesSineQuality(t *testing.T) {
	freq := 0.02 // low frequency relative to sample rate
	size := 256

	modes := []struct {
		mode interp.Mode
		tol  float64
	}{
		{interp.Linear, 0.01},
		{interp.Hermite, 1e-4},
	}

	for _, tc := range modes {
		d, err := New(size, WithMode(tc.mode))
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < size; i++ {
			d.Write(math.Sin(2 * math.Pi * freq * float64(i)))
		}

		lag := 20.37
		// Read(k) returns the sample written at index (size-k).
		want := math.Sin(2 * math.Pi * freq * (float64(size) - lag))
		got := d.ReadFractional(lag)

		if diff := math.Abs(got - want); diff > tc.tol {
			t.Fatalf("%v sine: got %v want %v (err=%e, tol=%e)", tc.mode, got, want, diff, tc.tol)
		}
	}
}

func TestReadFracDoesNotAllocate(t *testing.T) {
	d, err := New(4096)
	if err != nil {
		t.Fatal(err)
	}

	allocs := testing.AllocsPerRun(100, func() {
		d.Write(d.ReadFrac(109.09))
	})
	if allocs != 0 {
		t.Fatalf("ReadFrac/Write allocated %v times", allocs)
	}
}

// --- benchmarks ---

func BenchmarkReadFrac(b *testing.B) {
	d, _ := New(4096)
	fillRamp(d)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.ReadFrac(100.37)
	}
}

func BenchmarkReadFractionalHermite(b *testing.B) {
	d, _ := New(4096, WithMode(interp.Hermite))
	fillRamp(d)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.ReadFractional(100.37)
	}
}
