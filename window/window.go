//go:build !headless

package window

import (
	"context"
	"strings"
	"unicode"

	"chip8/display"
	"chip8/keypad"
	"chip8/system"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// Game is the ebiten frontend. Keys are sampled on every tick and the
// display is uploaded whenever it changed.
type Game struct {
	ctx  context.Context
	sys  *system.System
	keys map[ebiten.Key]byte

	img     *ebiten.Image
	pixels  []byte
	version uint64
}

// Run opens a window scaled by scale and boots the program read from name.
// It returns when the window is closed, Esc is pressed, ctx is cancelled or
// the CPU faults. It must be called from the main goroutine.
func Run(ctx context.Context, sys *system.System, km keypad.Keymap, scale int, name string, rom []byte) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- sys.Boot(ctx, name, rom)
		cancel()
	}()

	g := &Game{
		ctx:    ctx,
		sys:    sys,
		keys:   keyTable(km),
		pixels: make([]byte, display.Width*display.Height*4),
	}

	ebiten.SetWindowSize(display.Width*scale, display.Height*scale)
	ebiten.SetWindowTitle("CHIP-8")
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(clockTPS)

	err := ebiten.RunGame(g)
	cancel()
	sysErr := <-runErr
	if err != nil {
		return errors.Wrap(err, "window")
	}
	return sysErr
}

// keys are sampled at the timer rate
const clockTPS = 60

func (g *Game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	kp := g.sys.Keypad()
	for k, key := range g.keys {
		pressed := ebiten.IsKeyPressed(k)
		if pressed == kp.IsPressed(key) {
			continue
		}
		if pressed {
			kp.Press(key)
		} else {
			kp.Release(key)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(display.Width, display.Height)
		g.version = ^uint64(0)
	}
	if v := g.sys.Display().Version(); v != g.version {
		frame := g.sys.Display().Snapshot()
		fillPixels(g.pixels, &frame)
		g.img.WritePixels(g.pixels)
		g.version = v
	}
	screen.DrawImage(g.img, nil)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return display.Width, display.Height
}

// keyTable maps the ebiten keys named by the keymap runes to keypad keys.
func keyTable(km keypad.Keymap) map[ebiten.Key]byte {
	byRune := make(map[rune]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := k.String()
		switch {
		case len(name) == 1:
			byRune[unicode.ToLower(rune(name[0]))] = k
		case len(name) == 6 && strings.HasPrefix(name, "Digit"):
			byRune[rune(name[5])] = k
		}
	}

	table := make(map[ebiten.Key]byte, len(km))
	for r, key := range km {
		if k, ok := byRune[r]; ok {
			table[k] = key
		}
	}
	return table
}
