package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"chip8/audio"
	"chip8/config"
	"chip8/console"
	"chip8/cpu"
	"chip8/keypad"
	"chip8/logger"
	"chip8/system"
	"chip8/terminal"
	"chip8/ui"
	"chip8/window"

	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// process exit codes
const (
	exitOK = iota
	exitFailure
	exitLoad
	exitUnimplemented
	exitStack
	exitMemory
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: chip8 <rom>")
		return exitFailure
	}
	path := args[0]

	rom, err := system.ReadROM(path)
	if err != nil {
		fmt.Fprintf(stderr, "chip8: %v\n", err)
		return exitCode(err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "chip8: %v\n", err)
		return exitFailure
	}

	log, closeLog, err := openLog(cfg, config.CacheFile)
	if err != nil {
		fmt.Fprintf(stderr, "chip8: %v\n", err)
		return exitFailure
	}
	defer closeLog()

	km, err := keypad.ParseKeymap(cfg.Keymap)
	if err != nil {
		fmt.Fprintf(stderr, "chip8: %v\n", err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sys, err := start(ctx, cfg, log, km, path, rom)
	if sys != nil {
		defer sys.Close()
	}
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "chip8: %v\n", err)
	var fault *cpu.Fault
	if errors.As(err, &fault) && sys != nil {
		fmt.Fprint(stderr, sys.DumpState())
	}
	return exitCode(err)
}

// openLog opens the configured log. The text frontends own the terminal, so
// without a log file they log to the cache directory, or nowhere when there
// is none.
func openLog(cfg config.Config, cacheFile func(string) string) (*logrus.Logger, func() error, error) {
	path := cfg.LogFile
	if path == "" && cfg.Frontend != config.FrontendWindow {
		path = cacheFile("chip8.log")
		if path == "" {
			l := logger.Discard()
			if cfg.Debug {
				l.SetLevel(logrus.DebugLevel)
			}
			return l, func() error { return nil }, nil
		}
	}
	return logger.New(path, cfg.Debug)
}

// start builds the system for the configured frontend and runs rom until
// the user quits or the CPU faults.
func start(ctx context.Context, cfg config.Config, log *logrus.Logger, km keypad.Keymap,
	path string, rom []byte) (*system.System, error) {
	beeper := newBeeper(cfg, log)

	switch cfg.Frontend {
	case config.FrontendWindow:
		sys := system.New(cfg, log, console.NewSimple(os.Stdout), beeper)
		return sys, window.Run(ctx, sys, km, cfg.Scale, path, rom)

	case config.FrontendTerminal:
		sys := system.New(cfg, log, console.NewSimple(log.Writer()), beeper)
		return sys, terminal.New(sys, km, os.Stdout).Run(ctx, path, rom)

	default:
		g, err := gocui.NewGui(gocui.OutputNormal)
		if err != nil {
			_ = beeper.Close()
			return nil, errors.Wrap(err, "creating terminal ui")
		}
		defer g.Close()

		sys := system.New(cfg, log, console.NewGui(g, ui.StatusView), beeper)
		u, err := ui.New(g, sys, km)
		if err != nil {
			return sys, errors.Wrap(err, "creating terminal ui")
		}
		return sys, u.Run(ctx, path, rom)
	}
}

// newBeeper opens the audio device, falling back to silence.
func newBeeper(cfg config.Config, log *logrus.Logger) audio.Beeper {
	if cfg.Volume == 0 {
		return audio.Silent{}
	}
	b, err := audio.NewTone(cfg.ToneHz, cfg.Volume)
	if err != nil {
		log.WithError(err).Warn("audio unavailable, running silent")
		return audio.Silent{}
	}
	return b
}

// exitCode maps a run result to the process exit status.
func exitCode(err error) int {
	var loadErr *system.LoadError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &loadErr):
		return exitLoad
	case errors.Is(err, cpu.ErrUnimplementedOpcode):
		return exitUnimplemented
	case cpu.IsStackFault(err):
		return exitStack
	case errors.Is(err, cpu.ErrMemoryOutOfBounds):
		return exitMemory
	}
	return exitFailure
}
