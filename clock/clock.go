package clock

import (
	"context"
	"time"
)

// Rate is the timer frequency in Hz.
const Rate = 60

// Clock decrements a Timers pair at Rate.
type Clock struct {
	timers *Timers
	period time.Duration
}

func New(timers *Timers) *Clock {
	return &Clock{
		timers: timers,
		period: time.Second / Rate,
	}
}

// Run ticks the timers until ctx is done.
func (c *Clock) Run(ctx context.Context) {
	ticker := time.NewTicker(c.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.timers.Tick()
		}
	}
}
