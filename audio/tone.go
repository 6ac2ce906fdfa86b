//go:build !headless

package audio

import (
	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"
)

// Tone plays a square wave on the default audio device while the sound
// timer is active.
type Tone struct {
	ctx    *oto.Context
	player *oto.Player
	wave   *square
}

// NewTone opens the audio device and starts a gated square wave of hz.
func NewTone(hz int, volume float64) (Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, errors.Wrap(err, "opening audio device")
	}
	<-ready

	wave := newSquare(hz, volume)
	player := ctx.NewPlayer(wave)
	player.Play()

	return &Tone{
		ctx:    ctx,
		player: player,
		wave:   wave,
	}, nil
}

func (t *Tone) SetTone(on bool) {
	t.wave.SetTone(on)
}

func (t *Tone) Close() error {
	t.wave.SetTone(false)
	return t.player.Close()
}
