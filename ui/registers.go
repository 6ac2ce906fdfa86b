package ui

import (
	"fmt"
	"strings"

	"chip8/cpu"

	"github.com/mgutz/ansi"
)

var (
	chSame = ansi.ColorCode("default")
	chNew  = ansi.ColorCode("yellow+b")
)

// registerDiff renders register values, highlighting the ones that changed
// since the previous render.
type registerDiff struct {
	old      cpu.Registers
	oldDelay byte
	oldSound byte
	seen     bool
}

func colorize(s string, changed bool) string {
	color := chSame
	if changed {
		color = chNew
	}
	return color + s + ansi.Reset
}

// render formats the registers and timers. beep marks a sounding tone.
func (d *registerDiff) render(regs cpu.Registers, delay, sound byte, beep bool) string {
	changed := func(a, b interface{}) bool {
		return d.seen && a != b
	}

	var sb strings.Builder
	for i, v := range regs.V {
		fmt.Fprintf(&sb, "V%X %s ", i, colorize(fmt.Sprintf("%02X", v), changed(v, d.old.V[i])))
		if i == 7 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "I %s  PC %s  SP %s  DT %s  ST %s  %s",
		colorize(fmt.Sprintf("%03X", regs.I), changed(regs.I, d.old.I)),
		colorize(fmt.Sprintf("%03X", regs.PC), changed(regs.PC, d.old.PC)),
		colorize(fmt.Sprintf("%X", regs.SP), changed(regs.SP, d.old.SP)),
		colorize(fmt.Sprintf("%02X", delay), changed(delay, d.oldDelay)),
		colorize(fmt.Sprintf("%02X", sound), changed(sound, d.oldSound)),
		regs.State)
	if beep {
		sb.WriteString("  " + colorize("BEEP", true))
	}

	d.old, d.oldDelay, d.oldSound = regs, delay, sound
	d.seen = true
	return sb.String()
}
