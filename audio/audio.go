package audio

import (
	"encoding/binary"
	"sync/atomic"
)

// SampleRate of the generated tone in Hz.
const SampleRate = 44100

// Beeper plays the sound timer tone.
type Beeper interface {
	SetTone(on bool)
	Close() error
}

// Silent is a Beeper without output.
type Silent struct{}

func (Silent) SetTone(bool) {}

func (Silent) Close() error { return nil }

// square is an io.Reader producing a mono signed 16-bit little endian square
// wave, or silence while the gate is off.
type square struct {
	gate      atomic.Bool
	amplitude int16
	halfCycle int
	pos       int
}

func newSquare(hz int, volume float64) *square {
	if hz <= 0 {
		hz = 440
	}
	half := SampleRate / (2 * hz)
	if half < 1 {
		half = 1
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &square{
		amplitude: int16(volume * 32767),
		halfCycle: half,
	}
}

func (s *square) SetTone(on bool) {
	s.gate.Store(on)
}

func (s *square) Read(p []byte) (int, error) {
	n := len(p) &^ 1
	on := s.gate.Load()
	for i := 0; i < n; i += 2 {
		var v int16
		if on {
			v = s.amplitude
			if (s.pos/s.halfCycle)%2 == 1 {
				v = -s.amplitude
			}
		}
		s.pos = (s.pos + 1) % (2 * s.halfCycle)
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
	}
	return n, nil
}
