package console

import (
	"fmt"

	"github.com/jroimartin/gocui"
)

// Gui console appending status lines to a gocui view.
type Gui struct {
	g    *gocui.Gui
	view string
}

// NewGui returns a console writing to the named view of g.
func NewGui(g *gocui.Gui, view string) *Gui {
	return &Gui{g: g, view: view}
}

// WriteConsole queues msg for the gocui main loop.
func (c *Gui) WriteConsole(msg string) error {
	ls := lines(msg)
	if len(ls) == 0 {
		return nil
	}
	c.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(c.view)
		if err != nil {
			return err
		}
		for _, line := range ls {
			fmt.Fprintf(v, ". %s\n", line)
		}
		return nil
	})
	return nil
}
