package terminal

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"chip8/clock"
	"chip8/display"
	"chip8/keypad"
	"chip8/system"

	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	keyEscape = 0x1b
	keyHold   = 120 * time.Millisecond

	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	home        = "\x1b[H"
)

// Terminal renders the display with half-block characters and turns
// keystrokes into keypad taps.
type Terminal struct {
	sys    *system.System
	keymap keypad.Keymap
	out    io.Writer

	originalTerminalConfig unix.Termios
	version                uint64
	drawn                  bool
}

func New(sys *system.System, keymap keypad.Keymap, out io.Writer) *Terminal {
	return &Terminal{
		sys:    sys,
		keymap: keymap,
		out:    out,
	}
}

// Run puts stdin in raw mode and boots the program read from name. It
// returns when Esc is pressed, ctx is cancelled or the CPU faults.
func (t *Terminal) Run(ctx context.Context, name string, rom []byte) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if w < display.Width || h < display.Height/2+1 {
			return errors.Errorf("terminal is %dx%d, need at least %dx%d",
				w, h, display.Width, display.Height/2+1)
		}
	}

	if err := t.enableRawMode(); err != nil {
		return err
	}
	defer t.disableRawMode()

	io.WriteString(t.out, hideCursor+clearScreen)
	defer io.WriteString(t.out, showCursor+"\n")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go t.pollKeyboard(ctx, cancel, os.Stdin)

	runErr := make(chan error, 1)
	go func() {
		runErr <- t.sys.Boot(ctx, name, rom)
		cancel()
	}()

	ticker := time.NewTicker(time.Second / clock.Rate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.render()
			return <-runErr
		case <-ticker.C:
			t.render()
		}
	}
}

// pollKeyboard forwards keystrokes until ctx is done. The pending read
// blocks until the next key arrives.
func (t *Terminal) pollKeyboard(ctx context.Context, quit func(), in io.Reader) {
	buf := make([]byte, 16)
	for ctx.Err() == nil {
		n, err := in.Read(buf)
		if err != nil {
			quit()
			return
		}
		if t.input(buf[:n]) {
			quit()
			return
		}
	}
}

// input taps the keys named by buf and reports whether Esc was pressed.
func (t *Terminal) input(buf []byte) bool {
	for _, b := range buf {
		if b == keyEscape {
			return true
		}
		if key, ok := t.keymap.Lookup(rune(b)); ok {
			t.sys.Keypad().Tap(key, keyHold)
		}
	}
	return false
}

// render redraws the screen when the display changed since the last frame.
func (t *Terminal) render() {
	v := t.sys.Display().Version()
	if t.drawn && v == t.version {
		return
	}
	t.version, t.drawn = v, true

	frame := t.sys.Display().Snapshot()
	var sb strings.Builder
	sb.WriteString(home)
	for _, line := range frame.HalfBlocks() {
		sb.WriteString(line)
		sb.WriteString("\r\n")
	}
	io.WriteString(t.out, sb.String())
}

// this configures the terminal to run without line buffering and echo
func (t *Terminal) enableRawMode() error {
	if err := termios.Tcgetattr(os.Stdin.Fd(), &t.originalTerminalConfig); err != nil {
		return errors.Wrap(err, "reading terminal attributes")
	}
	raw := t.originalTerminalConfig
	raw.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &raw); err != nil {
		return errors.Wrap(err, "enabling raw mode")
	}
	return nil
}

func (t *Terminal) disableRawMode() {
	_ = termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &t.originalTerminalConfig)
}
