// Package wavio reads and writes mono PCM WAV files.
package wavio

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcmFormat = 1

// SupportedBitDepth reports whether WriteMono can encode bitDepth.
func SupportedBitDepth(bitDepth int) bool {
	return bitDepth == 16 || bitDepth == 24 || bitDepth == 32
}

// WriteMono writes samples in [-1,1] as a mono PCM WAV file. Samples
// outside the range are clipped.
func WriteMono(path string, samples []float64, sampleRate, bitDepth int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid wav sample-rate: %d", sampleRate)
	}
	if !SupportedBitDepth(bitDepth) {
		return fmt.Errorf("unsupported wav bit depth: %d", bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}

	scale := fullScale(bitDepth)
	for i, v := range samples {
		buf.Data[i] = quantize(v, scale)
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("write wav %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize wav %s: %w", path, err)
	}
	return f.Close()
}

// ReadMono reads a PCM WAV file and returns its samples in [-1,1] and its
// sample rate. Multi-channel files are mixed down.
func ReadMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}

	numCh := buf.Format.NumChannels
	srcRate := buf.Format.SampleRate
	if srcRate <= 0 {
		return nil, 0, fmt.Errorf("invalid wav sample-rate: %d", srcRate)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	scale := fullScale(bitDepth)

	frames := len(buf.Data) / numCh
	out := make([]float64, frames)
	for i := range out {
		sum := 0
		for ch := 0; ch < numCh; ch++ {
			sum += buf.Data[i*numCh+ch]
		}
		out[i] = float64(sum) / float64(numCh) / scale
	}

	return out, srcRate, nil
}

func fullScale(bitDepth int) float64 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	return math.Exp2(float64(bitDepth - 1))
}

func quantize(v, scale float64) int {
	if math.IsNaN(v) {
		return 0
	}
	q := math.Round(v * scale)
	if q > scale-1 {
		q = scale - 1
	}
	if q < -scale {
		q = -scale
	}
	return int(q)
}
