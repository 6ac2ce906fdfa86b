package display

import (
	"strings"
	"sync"
)

const (
	Width  = 64
	Height = 32
)

// Frame is a copy of the display contents, indexed [y][x].
type Frame [Height][Width]bool

// Buffer is the 64x32 monochrome frame buffer.
// It is shared between the run loop, which draws into it,
// and the frontend goroutine, which renders snapshots.
type Buffer struct {
	mu      sync.RWMutex
	pixels  Frame
	version uint64
}

// New returns a cleared buffer.
func New() *Buffer {
	return &Buffer{}
}

// Clear turns every pixel off.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pixels = Frame{}
	b.version++
}

// Draw XORs an 8-pixel wide sprite onto the buffer with its top left corner at (x, y).
// The start coordinates are taken modulo the screen size and every pixel wraps
// around the edges. Draw reports whether any lit pixel was turned off.
func (b *Buffer) Draw(x, y byte, sprite []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	collision := false
	x0, y0 := int(x)%Width, int(y)%Height
	for row, line := range sprite {
		py := (y0 + row) % Height
		for bit := 0; bit < 8; bit++ {
			if line&(0x80>>bit) == 0 {
				continue
			}
			px := (x0 + bit) % Width
			if b.pixels[py][px] {
				collision = true
			}
			b.pixels[py][px] = !b.pixels[py][px]
		}
	}
	b.version++
	return collision
}

// Pixel returns the state of the pixel at (x, y). Coordinates outside the
// screen are reported as off.
func (b *Buffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pixels[y][x]
}

// Snapshot copies the current frame.
func (b *Buffer) Snapshot() Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pixels
}

// Version is incremented on every change to the buffer.
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// HalfBlocks renders the frame as Height/2 lines of Width runes, two pixel
// rows per character cell.
func (f *Frame) HalfBlocks() []string {
	lines := make([]string, 0, Height/2)
	var sb strings.Builder
	for y := 0; y < Height; y += 2 {
		sb.Reset()
		for x := 0; x < Width; x++ {
			top, bottom := f[y][x], f[y+1][x]
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}
