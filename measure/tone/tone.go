package tone

import (
	"errors"
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-osc/dsp/core"
	"github.com/cwbudde/algo-osc/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultMinFreq         = 20.0
	defaultMaxPeaks        = 8
	defaultPeakThresholdDB = -40.0
)

var errEmptySignal = errors.New("tone: signal must not be empty")

// Config holds analysis parameters.
type Config struct {
	SampleRate      float64
	FFTSize         int // 0 selects the next power of two >= len(signal)
	MinFreq         float64
	MaxFreq         float64 // 0 selects Nyquist
	MaxPeaks        int
	PeakThresholdDB float64 // relative to the strongest bin
	WindowType      window.Type
}

// Peak is one spectral peak.
type Peak struct {
	Freq  float64 // Hz, parabolically interpolated
	Level float64 // linear amplitude estimate
}

// Result holds tone measurement results.
type Result struct {
	DominantFreq float64
	Peaks        []Peak // strongest first
	Peak         float64
	PeakDB       float64
	RMS          float64
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 || !core.IsFinite(cfg.SampleRate) {
		cfg.SampleRate = core.DefaultProcessorConfig().SampleRate
	}
	if cfg.MinFreq <= 0 {
		cfg.MinFreq = defaultMinFreq
	}
	if cfg.MaxFreq <= 0 || cfg.MaxFreq > cfg.SampleRate/2 {
		cfg.MaxFreq = cfg.SampleRate / 2
	}
	if cfg.MaxPeaks <= 0 {
		cfg.MaxPeaks = defaultMaxPeaks
	}
	if cfg.PeakThresholdDB == 0 {
		cfg.PeakThresholdDB = defaultPeakThresholdDB
	}
	if cfg.WindowType == window.TypeRectangular {
		cfg.WindowType = window.TypeHann
	}
	return cfg
}

// Analyze measures level and spectral peaks of a time-domain signal.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, errEmptySignal
	}

	cfg = normalizeConfig(cfg)

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}
	if fftSize < len(signal) {
		return Result{}, fmt.Errorf("tone: fft size %d shorter than signal %d", fftSize, len(signal))
	}

	res := Result{
		Peak: vecmath.MaxAbs(signal),
		RMS:  math.Sqrt(vecmath.DotProduct(signal, signal) / float64(len(signal))),
	}
	res.PeakDB = core.LinearToDB(res.Peak)

	mag, err := magnitudeSpectrum(signal, fftSize, cfg.WindowType)
	if err != nil {
		return Result{}, err
	}

	res.Peaks = findPeaks(mag, fftSize, cfg)
	if len(res.Peaks) > 0 {
		res.DominantFreq = res.Peaks[0].Freq
	}

	return res, nil
}

// magnitudeSpectrum returns amplitude-calibrated |X[k]| for bins [0..N/2].
func magnitudeSpectrum(signal []float64, fftSize int, winType window.Type) ([]float64, error) {
	coeffs := window.Generate(winType, len(signal))
	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		return nil, err
	}

	frame := append([]float64(nil), signal...)
	if err := window.ApplyCoefficientsInPlace(frame, coeffs); err != nil {
		return nil, err
	}

	in := make([]complex128, fftSize)
	for i, x := range frame {
		in[i] = complex(x, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("tone: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("tone: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	vecmath.ScaleBlockInPlace(mag, 2/(float64(len(signal))*gain))

	return mag, nil
}

func findPeaks(mag []float64, fftSize int, cfg Config) []Peak {
	binHz := cfg.SampleRate / float64(fftSize)

	lo := int(math.Ceil(cfg.MinFreq / binHz))
	if lo < 1 {
		lo = 1
	}
	hi := int(cfg.MaxFreq / binHz)
	if hi > len(mag)-2 {
		hi = len(mag) - 2
	}
	if lo > hi {
		return nil
	}

	strongest := vecmath.MaxAbs(mag[lo : hi+1])
	if strongest == 0 {
		return nil
	}
	floor := strongest * core.DBToLinear(cfg.PeakThresholdDB)

	var peaks []Peak
	for k := lo; k <= hi; k++ {
		a, b, c := mag[k-1], mag[k], mag[k+1]
		if b < floor || b <= a || b < c {
			continue
		}

		delta := 0.0
		if den := a - 2*b + c; den != 0 {
			delta = 0.5 * (a - c) / den
		}
		peaks = append(peaks, Peak{
			Freq:  (float64(k) + delta) * binHz,
			Level: b - 0.25*(a-c)*delta,
		})
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].Level > peaks[j].Level })
	if len(peaks) > cfg.MaxPeaks {
		peaks = peaks[:cfg.MaxPeaks]
	}

	return peaks
}

// Envelope returns the absolute peak of each consecutive block of size
// samples. A trailing partial block is included.
func Envelope(signal []float64, size int) []float64 {
	if size <= 0 || len(signal) == 0 {
		return nil
	}

	out := make([]float64, 0, (len(signal)+size-1)/size)
	for start := 0; start < len(signal); start += size {
		end := start + size
		if end > len(signal) {
			end = len(signal)
		}
		out = append(out, vecmath.MaxAbs(signal[start:end]))
	}

	return out
}

// NonIncreasing reports whether env never grows by more than tol between
// consecutive entries, and the first index where it does.
func NonIncreasing(env []float64, tol float64) (bool, int) {
	for i := 1; i < len(env); i++ {
		if env[i] > env[i-1]+tol {
			return false, i
		}
	}
	return true, -1
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
