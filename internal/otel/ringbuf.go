package otel

import "sync"

// DefaultRingSize is the ring capacity used by the debug overlay.
const DefaultRingSize = 256

// RingBuffer keeps the most recent events in memory. Goroutine-safe.
type RingBuffer struct {
	mu     sync.Mutex
	events []Event
	next   int
	full   bool
}

// NewRingBuffer creates a ring holding up to size events.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{events: make([]Event, size)}
}

// Push stores e, overwriting the oldest event when full.
// Extra is copied so later mutation by the caller is not observed.
func (r *RingBuffer) Push(e Event) {
	if e.Extra != nil {
		cp := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			cp[k] = v
		}
		e.Extra = cp
	}

	r.mu.Lock()
	r.events[r.next] = e
	r.next++
	if r.next == len(r.events) {
		r.next = 0
		r.full = true
	}
	r.mu.Unlock()
}

func (r *RingBuffer) lenLocked() int {
	if r.full {
		return len(r.events)
	}
	return r.next
}

// Last returns up to n of the newest events, oldest first.
func (r *RingBuffer) Last(n int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.lenLocked()
	if n <= 0 || count == 0 {
		return nil
	}
	if n > count {
		n = count
	}

	out := make([]Event, n)
	size := len(r.events)
	start := (r.next - n + size) % size
	for i := 0; i < n; i++ {
		out[i] = r.events[(start+i)%size]
	}
	return out
}

// Len returns how many events are stored.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lenLocked()
}

// Cap returns the ring capacity.
func (r *RingBuffer) Cap() int {
	return len(r.events)
}

// Stats counts stored events by kind.
func (r *RingBuffer) Stats() map[EventKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[EventKind]int)
	for i := 0; i < r.lenLocked(); i++ {
		counts[r.events[i].Kind]++
	}
	return counts
}
