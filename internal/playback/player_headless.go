//go:build headless

package playback

import (
	"context"
	"errors"
)

// ErrNoDevice is returned by headless builds.
var ErrNoDevice = errors.New("playback: audio output not available in headless build")

// Player is unavailable in headless builds.
type Player struct{}

// Open always fails in headless builds.
func Open(sampleRate int) (*Player, error) {
	return nil, ErrNoDevice
}

// Play always fails in headless builds.
func (p *Player) Play(ctx context.Context, src Source) error {
	return ErrNoDevice
}

// Close is a no-op.
func (p *Player) Close() error {
	return nil
}
