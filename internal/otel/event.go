// Package otel provides structured observability for cinecluster.
//
// Events are typed structs serialized as JSONL lines. The Logger writes
// events asynchronously via a buffered channel and background drain goroutine.
// An optional RingBuffer keeps recent events in memory for the debug overlay.
package otel

import (
	"time"

	"github.com/goccy/go-json"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an observability event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Genre list
	KindGenresStart    EventKind = "genres.start"
	KindGenresComplete EventKind = "genres.complete"
	KindGenresError    EventKind = "genres.error"

	// Cluster requests
	KindClusterStart    EventKind = "cluster.start"
	KindClusterComplete EventKind = "cluster.complete"
	KindClusterError    EventKind = "cluster.error"

	// Trigger cycles
	KindCycleIgnored EventKind = "cycle.ignored"
	KindCycleIdle    EventKind = "cycle.idle"
	KindAnimPhase    EventKind = "anim.phase"

	// Results view
	KindSortApply EventKind = "sort.apply"

	// UI events
	KindKeyPress EventKind = "ui.key"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"

	// Trace events
	KindMsgReceived EventKind = "trace.msg_received"
)

// Event is the universal observability record. Every field except Kind and
// Time is optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"`       // "ui", "api", "main"
	SessionID string         `json:"session_id,omitempty"` // random hex, same for entire app run
	CycleID   string         `json:"cycle,omitempty"`      // trigger cycle correlation ID
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Count     int            `json:"count,omitempty"`
	Genre     string         `json:"genre,omitempty"`
	Rating    string         `json:"rating,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON implements json.Marshaler, converting Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	a := struct {
		Alias
	}{Alias: Alias(e)}
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
