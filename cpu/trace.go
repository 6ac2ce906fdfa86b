package cpu

import "sync"

// TraceBuffer is a bounded FIFO of recently executed instructions. When
// full, the oldest entry is dropped.
type TraceBuffer struct {
	mu      sync.Mutex
	items   []string
	maxSize int
}

// NewTraceBuffer creates an empty buffer holding at most maxSize entries.
func NewTraceBuffer(maxSize int) *TraceBuffer {
	if maxSize < 1 {
		maxSize = 1
	}
	return &TraceBuffer{
		items:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Enqueue adds an item to the rear of the queue.
func (q *TraceBuffer) Enqueue(item string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == q.maxSize {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, item)
}

// Lines returns a copy of the buffered entries, oldest first.
func (q *TraceBuffer) Lines() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.items...)
}
