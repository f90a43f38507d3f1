//go:build !headless

package playback

import (
	"context"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player owns the audio device context. Only one Player may exist per
// process.
type Player struct {
	ctx *oto.Context
}

// Open initializes mono float32 output at sampleRate.
func Open(sampleRate int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &Player{ctx: ctx}, nil
}

// Play streams src until it ends or ctx is canceled.
func (p *Player) Play(ctx context.Context, src Source) error {
	player := p.ctx.NewPlayer(NewStream(src))
	defer player.Close()

	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

// Close suspends the device.
func (p *Player) Close() error {
	return p.ctx.Suspend()
}
