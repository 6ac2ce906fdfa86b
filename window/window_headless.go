//go:build headless

package window

import (
	"context"

	"chip8/keypad"
	"chip8/system"

	"github.com/pkg/errors"
)

// Run is unavailable in headless builds.
func Run(ctx context.Context, sys *system.System, km keypad.Keymap, scale int, name string, rom []byte) error {
	return errors.New("window frontend not available in headless builds")
}
