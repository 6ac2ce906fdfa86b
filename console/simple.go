package console

import (
	"fmt"
	"io"
	"sync"
)

// Simple console writing status lines to a writer, prefixed with a dot.
type Simple struct {
	mu          sync.Mutex
	w           io.Writer
	currentLine int
}

// NewSimple returns a console writing to w.
func NewSimple(w io.Writer) *Simple {
	return &Simple{w: w}
}

// WriteConsole writes every non-empty line of msg.
func (c *Simple) WriteConsole(msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range lines(msg) {
		if _, err := fmt.Fprintf(c.w, ". %s\n", line); err != nil {
			return err
		}
		c.currentLine++
	}
	return nil
}

// Lines returns the number of lines written so far.
func (c *Simple) Lines() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLine
}
