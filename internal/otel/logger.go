package otel

// The drain goroutine is the only reader of l.queue and the only writer to l.w.
// l.mu guards the ring pointer alone; the ring has its own lock.

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

// queueSize is the capacity of the async write queue.
const queueSize = 2048

// Emitter accepts events. *Logger and Scope implement it; tests record into a slice.
type Emitter interface {
	Emit(e Event)
}

type queued struct {
	line []byte
	ev   Event
}

// Logger writes events as JSONL on a background goroutine.
// Emit never blocks: when the queue is full the event is counted as dropped.
type Logger struct {
	mu        sync.Mutex
	ring      *RingBuffer
	sessionID string
	queue     chan queued
	w         io.Writer
	dropped   atomic.Uint64
	closed    atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewLogger starts a Logger writing to w. Call Close to flush.
func NewLogger(w io.Writer) *Logger {
	var sid [8]byte
	_, _ = rand.Read(sid[:])

	l := &Logger{
		sessionID: hex.EncodeToString(sid[:]),
		queue:     make(chan queued, queueSize),
		w:         w,
		done:      make(chan struct{}),
	}
	go l.drain()
	return l
}

// NewNullLogger returns a Logger that discards output.
func NewNullLogger() *Logger {
	return NewLogger(io.Discard)
}

// OpenFile creates (or appends to) a JSONL log at path and returns a Logger
// over it together with the file so the caller can close it after Close.
func OpenFile(path string) (*Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open event log: %w", err)
	}
	return NewLogger(f), f, nil
}

func (l *Logger) drain() {
	defer close(l.done)
	for q := range l.queue {
		if _, err := l.w.Write(q.line); err != nil {
			l.dropped.Add(1)
		}

		l.mu.Lock()
		ring := l.ring
		l.mu.Unlock()
		if ring != nil {
			ring.Push(q.ev)
		}
	}
}

// Emit stamps Time (if zero) and SessionID and queues the event.
// Safe to call concurrently with Close; late events are dropped.
func (l *Logger) Emit(e Event) {
	defer func() {
		if recover() != nil {
			l.dropped.Add(1)
		}
	}()

	if l.closed.Load() {
		l.dropped.Add(1)
		return
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = l.sessionID

	line, err := json.Marshal(e)
	if err != nil {
		l.dropped.Add(1)
		return
	}
	line = append(line, '\n')

	select {
	case l.queue <- queued{line: line, ev: e}:
	default:
		l.dropped.Add(1)
	}
}

// Info emits an info-level event.
func (l *Logger) Info(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

// Warn emits a warn-level event.
func (l *Logger) Warn(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelWarn, Kind: kind, Comp: comp, Msg: msg})
}

// Error emits an error-level event. A nil err is logged as an empty string.
func (l *Logger) Error(kind EventKind, comp string, err error) {
	l.Emit(Event{Level: LevelError, Kind: kind, Comp: comp, Err: errString(err)})
}

// SetRingBuffer attaches a ring buffer for live inspection.
func (l *Logger) SetRingBuffer(ring *RingBuffer) {
	l.mu.Lock()
	l.ring = ring
	l.mu.Unlock()
}

// SessionID returns the random ID stamped on every event of this run.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// Dropped returns the number of events lost since creation.
func (l *Logger) Dropped() uint64 {
	return l.dropped.Load()
}

// Close flushes queued events and stops the drain goroutine. Idempotent.
func (l *Logger) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.queue)
		<-l.done

		if d := l.dropped.Load(); d > 0 {
			fmt.Fprintf(os.Stderr, "cinecluster: %d events dropped during session %s\n", d, l.sessionID)
		}
	})
}

// Scope binds a component name to an Emitter.
type Scope struct {
	out  Emitter
	comp string
}

// NewScope returns a Scope emitting to out as comp. A nil out discards.
func NewScope(out Emitter, comp string) Scope {
	return Scope{out: out, comp: comp}
}

// Emit fills in Comp and forwards the event.
func (s Scope) Emit(e Event) {
	if s.out == nil {
		return
	}
	if e.Comp == "" {
		e.Comp = s.comp
	}
	s.out.Emit(e)
}

// Info emits an info-level event for the scope's component.
func (s Scope) Info(kind EventKind, msg string) {
	s.Emit(Event{Level: LevelInfo, Kind: kind, Msg: msg})
}

// Warn emits a warn-level event for the scope's component.
func (s Scope) Warn(kind EventKind, msg string) {
	s.Emit(Event{Level: LevelWarn, Kind: kind, Msg: msg})
}

// Error emits an error-level event for the scope's component.
func (s Scope) Error(kind EventKind, err error) {
	s.Emit(Event{Level: LevelError, Kind: kind, Err: errString(err)})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
