package display

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestBuffer_Draw(t *testing.T) {
	tests := []struct {
		name   string
		x, y   byte
		sprite []byte
		lit    [][2]int
	}{
		{"top left", 0, 0, []byte{0x80}, [][2]int{{0, 0}}},
		{"full row", 8, 4, []byte{0xFF}, [][2]int{{8, 4}, {15, 4}}},
		{"wraps right edge", 62, 0, []byte{0xF0}, [][2]int{{62, 0}, {63, 0}, {0, 0}, {1, 0}}},
		{"wraps bottom edge", 0, 31, []byte{0x80, 0x80}, [][2]int{{0, 31}, {0, 0}}},
		{"start coordinates modulo screen", 64 + 3, 32 + 2, []byte{0x80}, [][2]int{{3, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			assert.False(t, b.Draw(tt.x, tt.y, tt.sprite))
			for _, p := range tt.lit {
				assert.True(t, b.Pixel(p[0], p[1]))
			}
		})
	}
}

func TestBuffer_DrawTwiceRestores(t *testing.T) {
	sprites := [][]byte{
		{0xF0, 0x90, 0x90, 0x90, 0xF0},
		{0xFF},
		{0x81, 0x42, 0x24, 0x18},
	}
	for x := 0; x < 80; x += 5 {
		for y := 0; y < 40; y += 3 {
			for _, s := range sprites {
				b := New()
				b.Draw(1, 1, []byte{0xAA, 0x55})
				before := b.Snapshot()

				b.Draw(byte(x), byte(y), s)
				collision := b.Draw(byte(x), byte(y), s)

				assert.True(t, collision)
				assert.True(t, before == b.Snapshot())
			}
		}
	}
}

func TestBuffer_Collision(t *testing.T) {
	b := New()
	assert.False(t, b.Draw(0, 0, []byte{0x80}))
	assert.False(t, b.Draw(1, 0, []byte{0x80}))
	assert.True(t, b.Draw(0, 0, []byte{0xC0}))
	assert.False(t, b.Pixel(0, 0))
	assert.False(t, b.Pixel(1, 0))
}

func TestBuffer_Clear(t *testing.T) {
	b := New()
	b.Draw(10, 10, []byte{0xFF, 0xFF})
	v := b.Version()

	b.Clear()

	assert.True(t, Frame{} == b.Snapshot())
	assert.True(t, b.Version() > v)
}

func TestBuffer_PixelOutside(t *testing.T) {
	b := New()
	assert.False(t, b.Pixel(-1, 0))
	assert.False(t, b.Pixel(Width, 0))
	assert.False(t, b.Pixel(0, Height))
}

func TestFrame_HalfBlocks(t *testing.T) {
	b := New()
	b.Draw(0, 0, []byte{0xC0, 0x80})
	b.Draw(2, 1, []byte{0x80})

	f := b.Snapshot()
	lines := f.HalfBlocks()

	assert.Len(t, lines, Height/2)
	assert.Equal(t, "█▀▄", string([]rune(lines[0])[:3]))
}
