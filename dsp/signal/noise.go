package signal

const defaultNoiseSeed = 0x9E3779B9

// Noise is an allocation-free white noise source for use inside render
// loops. It is a 32-bit xorshift generator; output is uniform in [-1, 1).
type Noise struct {
	state uint32
}

// NewNoise returns a noise source. A zero seed selects the default seed.
func NewNoise(seed uint32) *Noise {
	n := &Noise{}
	n.Seed(seed)
	return n
}

// Seed restarts the sequence. A zero seed selects the default seed.
func (n *Noise) Seed(seed uint32) {
	if seed == 0 {
		seed = defaultNoiseSeed
	}
	n.state = seed
}

// Next returns the next noise sample.
func (n *Noise) Next() float64 {
	x := n.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	n.state = x

	return float64(int32(x)) / (1 << 31)
}

// Fill writes len(buf) noise samples scaled by amplitude.
func (n *Noise) Fill(buf []float64, amplitude float64) {
	for i := range buf {
		buf[i] = amplitude * n.Next()
	}
}
