package window

import "chip8/display"

// colours of lit and unlit pixels, RGBA
var (
	onColor  = [4]byte{0xE0, 0xF8, 0xD0, 0xFF}
	offColor = [4]byte{0x08, 0x18, 0x20, 0xFF}
)

// fillPixels writes frame into dst as RGBA, row by row. dst must hold
// display.Width*display.Height*4 bytes.
func fillPixels(dst []byte, frame *display.Frame) {
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			c := offColor
			if frame[y][x] {
				c = onColor
			}
			copy(dst[(y*display.Width+x)*4:], c[:])
		}
	}
}
