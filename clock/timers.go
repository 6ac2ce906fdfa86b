package clock

import "sync"

// SoundObserver is notified whenever the sound timer switches between
// zero and non-zero.
type SoundObserver interface {
	SetTone(on bool)
}

// Timers holds the delay and sound timer registers. They are written by the
// run loop and decremented by the Clock goroutine.
type Timers struct {
	mu       sync.Mutex
	delay    byte
	sound    byte
	observer SoundObserver
}

// NewTimers returns zeroed timers reporting sound transitions to observer,
// which may be nil.
func NewTimers(observer SoundObserver) *Timers {
	return &Timers{observer: observer}
}

func (t *Timers) Delay() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.delay
}

func (t *Timers) SetDelay(v byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.delay = v
}

func (t *Timers) Sound() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sound
}

func (t *Timers) SetSound(v byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := t.sound > 0
	t.sound = v
	t.notify(was)
}

// SoundActive reports whether the tone should currently be playing.
func (t *Timers) SoundActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sound > 0
}

// Tick decrements each non-zero timer by one.
func (t *Timers) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.delay > 0 {
		t.delay--
	}
	was := t.sound > 0
	if t.sound > 0 {
		t.sound--
	}
	t.notify(was)
}

// Reset zeroes both timers.
func (t *Timers) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := t.sound > 0
	t.delay, t.sound = 0, 0
	t.notify(was)
}

// must be called with the lock held
func (t *Timers) notify(was bool) {
	now := t.sound > 0
	if t.observer != nil && now != was {
		t.observer.SetTone(now)
	}
}
