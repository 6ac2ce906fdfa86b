package keypad

import (
	"sync"
	"time"
)

// Keys is the number of keys on the hex keypad.
const Keys = 16

const eventBuffer = 16

// Event is a key press. Seq numbers presses in the order they happened.
type Event struct {
	Key byte
	Seq uint64
}

// Keypad tracks which of the 16 keys are held down and publishes presses
// as events for LD Vx, K.
type Keypad struct {
	mu      sync.Mutex
	pressed [Keys]bool
	seq     uint64
	holds   [Keys]*time.Timer
	events  chan Event
}

func New() *Keypad {
	return &Keypad{
		events: make(chan Event, eventBuffer),
	}
}

// Press marks key as held and publishes a press event. When nobody consumes
// the events the oldest pending one is dropped.
func (k *Keypad) Press(key byte) {
	key &= 0xF
	k.mu.Lock()
	k.pressed[key] = true
	k.seq++
	ev := Event{Key: key, Seq: k.seq}
	k.mu.Unlock()

	for {
		select {
		case k.events <- ev:
			return
		default:
		}
		select {
		case <-k.events:
		default:
		}
	}
}

// Release lifts key and cancels a pending Tap release.
func (k *Keypad) Release(key byte) {
	key &= 0xF
	k.mu.Lock()
	defer k.mu.Unlock()
	k.stopHold(key)
	k.pressed[key] = false
}

// Tap presses key and releases it after hold. Frontends that only see
// key-down events use this; a repeated tap extends the hold.
func (k *Keypad) Tap(key byte, hold time.Duration) {
	key &= 0xF
	k.Press(key)

	k.mu.Lock()
	defer k.mu.Unlock()
	k.stopHold(key)
	var t *time.Timer
	t = time.AfterFunc(hold, func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		// superseded by a later tap
		if k.holds[key] != t {
			return
		}
		k.holds[key] = nil
		k.pressed[key] = false
	})
	k.holds[key] = t
}

// must be called with the lock held
func (k *Keypad) stopHold(key byte) {
	if t := k.holds[key]; t != nil {
		t.Stop()
		k.holds[key] = nil
	}
}

func (k *Keypad) IsPressed(key byte) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[key&0xF]
}

// Seq returns the sequence number of the latest press. Events with a
// greater Seq happened afterwards.
func (k *Keypad) Seq() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.seq
}

// Events returns the stream of key presses.
func (k *Keypad) Events() <-chan Event {
	return k.events
}

// Flush drops pending press events.
func (k *Keypad) Flush() {
	for {
		select {
		case <-k.events:
		default:
			return
		}
	}
}
