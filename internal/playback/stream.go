// Package playback streams rendered voices to the system audio device.
package playback

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cwbudde/algo-osc/dsp/core"
	"github.com/cwbudde/algo-osc/synth/host"
)

const bytesPerSample = 4

// Source produces mono samples. Fill returns how many samples it wrote;
// fewer than len(buf) ends the stream.
type Source interface {
	Fill(buf []float64) int
}

// SliceSource plays back pre-rendered samples.
type SliceSource struct {
	samples []float64
	pos     int
}

// NewSliceSource returns a source over samples.
func NewSliceSource(samples []float64) *SliceSource {
	return &SliceSource{samples: samples}
}

// Fill implements Source.
func (s *SliceSource) Fill(buf []float64) int {
	n := copy(buf, s.samples[s.pos:])
	s.pos += n
	return n
}

// EngineSource renders an engine live at a fixed pitch for a number of
// frames.
type EngineSource struct {
	engine    *host.Engine
	w0, mod   float64
	remaining int
}

// NewEngineSource renders frames samples from engine at w0 with modulation
// target mod.
func NewEngineSource(engine *host.Engine, w0, mod float64, frames int) *EngineSource {
	return &EngineSource{engine: engine, w0: w0, mod: mod, remaining: max(frames, 0)}
}

// Fill implements Source.
func (s *EngineSource) Fill(buf []float64) int {
	n := min(len(buf), s.remaining)
	s.engine.RenderFloat(s.w0, s.mod, buf[:n])
	s.remaining -= n
	return n
}

// Stream adapts a Source to a float32 little-endian mono byte stream.
type Stream struct {
	src   Source
	block []float64
	done  bool
}

// NewStream returns a stream over src.
func NewStream(src Source) *Stream {
	return &Stream{src: src, block: make([]float64, 1024)}
}

// Read implements io.Reader. After the source ends the final partial
// request is padded with silence and later reads return io.EOF.
func (s *Stream) Read(p []byte) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	numSamples := len(p) / bytesPerSample
	if numSamples == 0 {
		return 0, nil
	}
	s.block = core.EnsureLen(s.block, numSamples)
	block := s.block

	n := s.src.Fill(block)
	if n < numSamples {
		clear(block[n:])
		s.done = true
	}

	for i, v := range block {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(float32(v)))
	}

	return numSamples * bytesPerSample, nil
}
