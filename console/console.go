package console

import "strings"

// Console receives emulator status messages: ROM loaded, halted, faults.
type Console interface {
	WriteConsole(msg string) error
}

// lines splits msg into its non-empty lines.
func lines(msg string) []string {
	var out []string
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
