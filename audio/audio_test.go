package audio

import (
	"encoding/binary"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func samples(t *testing.T, s *square, n int) []int16 {
	t.Helper()
	buf := make([]byte, 2*n)
	read, err := s.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, len(buf), read)

	out := make([]int16, n)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
	}
	return out
}

func TestSquare_Silent(t *testing.T) {
	s := newSquare(440, 0.5)
	for _, v := range samples(t, s, 256) {
		assert.Equal(t, int16(0), v)
	}
}

func TestSquare_Wave(t *testing.T) {
	// 22050 Hz gives a half cycle of a single sample
	s := newSquare(SampleRate/2, 1)
	s.SetTone(true)

	got := samples(t, s, 4)
	assert.Equal(t, int16(32767), got[0])
	assert.Equal(t, int16(-32767), got[1])
	assert.Equal(t, int16(32767), got[2])
	assert.Equal(t, int16(-32767), got[3])
}

func TestSquare_Params(t *testing.T) {
	tests := []struct {
		name     string
		hz       int
		volume   float64
		wantHalf int
		wantAmp  int16
	}{
		{"a440", 440, 0.5, SampleRate / 880, 16383},
		{"default frequency", 0, 0, SampleRate / 880, 0},
		{"too high", SampleRate * 2, 2, 1, 32767},
		{"negative volume", 1000, -1, SampleRate / 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSquare(tt.hz, tt.volume)
			assert.Equal(t, tt.wantHalf, s.halfCycle)
			assert.Equal(t, tt.wantAmp, s.amplitude)
		})
	}
}

func TestSilent(t *testing.T) {
	var b Beeper = Silent{}
	b.SetTone(true)
	assert.NoError(t, b.Close())
}
