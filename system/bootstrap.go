package system

import (
	"context"
	"fmt"
	"os"

	"chip8/cpu"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MaxROMSize is the largest program that fits between ProgramStart and the
// end of memory.
const MaxROMSize = cpu.MemorySize - cpu.ProgramStart

var (
	ErrEmptyROM    = errors.New("rom is empty")
	ErrROMTooLarge = errors.New("rom too large")
)

// LoadError reports a ROM that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading rom: %v", e.Err)
	}
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ReadROM reads the program at path and checks that it fits in memory.
func ReadROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if err := checkSize(data); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return data, nil
}

func checkSize(data []byte) error {
	switch {
	case len(data) == 0:
		return ErrEmptyROM
	case len(data) > MaxROMSize:
		return errors.Wrapf(ErrROMTooLarge, "%d bytes, limit %d", len(data), MaxROMSize)
	}
	return nil
}

// Load resets the machine and copies data to ProgramStart.
func (sys *System) Load(data []byte) error {
	return sys.LoadNamed("", data)
}

// LoadNamed is Load for a program read from name.
func (sys *System) LoadNamed(name string, data []byte) error {
	if err := checkSize(data); err != nil {
		return &LoadError{Path: name, Err: err}
	}

	sys.mu.Lock()
	defer sys.mu.Unlock()

	sys.cpu.Reset()
	sys.timers.Reset()
	sys.display.Clear()
	sys.keypad.Flush()
	if err := sys.cpu.LoadProgram(cpu.ProgramStart, data); err != nil {
		return &LoadError{Path: name, Err: err}
	}
	sys.rom = name

	sys.log.WithFields(logrus.Fields{
		"rom":   name,
		"bytes": len(data),
	}).Info("ROM loaded")
	_ = sys.console.WriteConsole(fmt.Sprintf("Loaded %s (%d bytes)", name, len(data)))
	return nil
}

// Boot loads the program read from name and runs it until ctx is cancelled
// or the CPU faults.
func (sys *System) Boot(ctx context.Context, name string, data []byte) error {
	if err := sys.LoadNamed(name, data); err != nil {
		return err
	}
	return sys.Run(ctx)
}
