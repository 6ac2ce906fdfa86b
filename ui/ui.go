package ui

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"chip8/clock"
	"chip8/display"
	"chip8/keypad"
	"chip8/system"

	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"
)

// View names.
const (
	ScreenView    = "screen"
	RegistersView = "registers"
	StatusView    = "status"
)

// terminals only report key-down events, so every press is a timed tap
const keyHold = 120 * time.Millisecond

// UI is the gocui frontend: the display, the registers and the status console.
type UI struct {
	g      *gocui.Gui
	sys    *system.System
	keymap keypad.Keymap

	regs        registerDiff
	legend      string
	lastVersion uint64
}

// New binds the frontend to g. The status view must be used by the
// console.Gui handed to the system.
func New(g *gocui.Gui, sys *system.System, keymap keypad.Keymap) (*UI, error) {
	u := &UI{
		g:      g,
		sys:    sys,
		keymap: keymap,
		legend: "Keys " + keymap.Legend(),
	}
	g.SetManagerFunc(u.layout)
	if err := u.layout(g); err != nil {
		return nil, err
	}
	if err := u.bindKeys(); err != nil {
		return nil, err
	}
	return u, nil
}

// Run boots the program read from name while the gocui main loop is
// active. It returns when the user quits, ctx is cancelled or the CPU faults.
func (u *UI) Run(ctx context.Context, name string, rom []byte) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- u.sys.Boot(ctx, name, rom)
		u.g.Update(func(*gocui.Gui) error {
			return gocui.ErrQuit
		})
	}()
	go u.refresh(ctx)

	err := u.g.MainLoop()
	cancel()
	sysErr := <-runErr

	if err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "terminal ui")
	}
	return sysErr
}

// refresh redraws the screen and registers at the timer rate.
// gocui allows updating the views only through Update.
func (u *UI) refresh(ctx context.Context) {
	ticker := time.NewTicker(time.Second / clock.Rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.g.Update(u.draw)
		}
	}
}

func (u *UI) draw(g *gocui.Gui) error {
	if version := u.sys.Display().Version(); version != u.lastVersion {
		v, err := g.View(ScreenView)
		if err != nil {
			return err
		}
		u.lastVersion = version
		frame := u.sys.Display().Snapshot()
		v.Clear()
		for _, line := range frame.HalfBlocks() {
			fmt.Fprintln(v, line)
		}
	}

	v, err := g.View(RegistersView)
	if err != nil {
		return err
	}
	v.Clear()
	fmt.Fprint(v, u.registersText())
	return nil
}

// registersText is the registers view content: the registers, the timers
// and the key legend.
func (u *UI) registersText() string {
	timers := u.sys.Timers()
	regs := u.regs.render(u.sys.Registers(), timers.Delay(), timers.Sound(), timers.SoundActive())
	return regs + "\n" + u.legend
}

// gocui layout
func (u *UI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	// up -> screen, 64x16 half-block cells
	if v, err := g.SetView(ScreenView, 0, 0, display.Width+1, display.Height/2+1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "CHIP-8"
	}

	// middle -> register values
	regTop := display.Height/2 + 2
	if v, err := g.SetView(RegistersView, 0, regTop, max(maxX-1, display.Width+1), regTop+5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
	}

	// down -> status
	statusTop := regTop + 6
	if v, err := g.SetView(StatusView, 0, statusTop, max(maxX-1, display.Width+1), max(maxY-1, statusTop+2)); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
		v.Autoscroll = true
		v.Wrap = true
	}
	return nil
}

func (u *UI) bindKeys() error {
	if err := u.g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return err
	}
	for r, key := range u.keymap {
		key := key
		handler := func(g *gocui.Gui, v *gocui.View) error {
			u.sys.Keypad().Tap(key, keyHold)
			return nil
		}
		if err := u.g.SetKeybinding("", r, gocui.ModNone, handler); err != nil {
			return err
		}
		if upper := unicode.ToUpper(r); upper != r {
			if err := u.g.SetKeybinding("", upper, gocui.ModNone, handler); err != nil {
				return err
			}
		}
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
