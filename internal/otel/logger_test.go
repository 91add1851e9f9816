package otel

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	raw := strings.TrimSpace(buf.String())
	if raw == "" {
		return nil
	}
	var out []map[string]any
	for i, line := range strings.Split(raw, "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line %d: invalid JSON: %v", i, err)
		}
		out = append(out, m)
	}
	return out
}

func TestEmitWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindClusterStart, Level: LevelInfo, Comp: "ui", Genre: "Drama", Rating: "7.5", CycleID: "c1"})
	l.Close()

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	got := lines[0]
	for key, want := range map[string]any{"kind": "cluster.start", "level": "info", "comp": "ui", "genre": "Drama", "rating": "7.5", "cycle": "c1"} {
		if got[key] != want {
			t.Errorf("%s = %v, want %v", key, got[key], want)
		}
	}
	if sid, _ := got["session_id"].(string); len(sid) != 16 {
		t.Errorf("session_id = %q, want 16 hex chars", sid)
	}
}

func TestEmitSetsTime(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	before := time.Now()
	l.Emit(Event{Kind: KindStartup})
	l.Close()
	after := time.Now()

	var ev Event
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Time.Before(before) || ev.Time.After(after) {
		t.Errorf("time %v not in [%v, %v]", ev.Time, before, after)
	}
	if ev.SessionID != l.SessionID() {
		t.Errorf("session_id = %q, want %q", ev.SessionID, l.SessionID())
	}
}

func TestDurSerializedAsMs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindClusterComplete, Dur: 250 * time.Millisecond})
	l.Close()

	lines := decodeLines(t, &buf)
	if durMs, _ := lines[0]["dur_ms"].(float64); durMs != 250 {
		t.Errorf("dur_ms = %v, want 250", lines[0]["dur_ms"])
	}
}

func TestOmitEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindStartup})
	l.Close()

	line := strings.TrimSpace(buf.String())
	for _, field := range []string{"dur_ms", "count", "genre", "rating", "err", "msg", "extra", "cycle"} {
		if strings.Contains(line, `"`+field+`"`) {
			t.Errorf("field %q should be omitted: %s", field, line)
		}
	}
}

func TestConcurrentEmit(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Emit(Event{Kind: KindKeyPress, Comp: "test"})
		}()
	}
	wg.Wait()
	l.Close()

	if got := len(decodeLines(t, &buf)); got != 100 {
		t.Errorf("expected 100 lines, got %d", got)
	}
}

func TestCloseIdempotentAndDropsLateEvents(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Info(KindStartup, "main", "start")
	l.Close()
	l.Close()

	l.Info(KindShutdown, "main", "late")
	if l.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", l.Dropped())
	}
	if got := len(decodeLines(t, &buf)); got != 1 {
		t.Errorf("expected 1 line, got %d", got)
	}
}

type blockingWriter struct {
	started chan struct{}
	block   chan struct{}
	once    sync.Once
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	w.once.Do(func() {
		close(w.started)
		<-w.block
	})
	return len(p), nil
}

func TestDropWhenQueueFull(t *testing.T) {
	bw := &blockingWriter{started: make(chan struct{}), block: make(chan struct{})}
	l := NewLogger(bw)

	l.Emit(Event{Kind: KindKeyPress})
	<-bw.started

	for i := 0; i < queueSize+10; i++ {
		l.Emit(Event{Kind: KindKeyPress})
	}
	if l.Dropped() == 0 {
		t.Error("expected drops when the queue is full")
	}

	close(bw.block)
	l.Close()
}

func TestLevelHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Info(KindStartup, "main", "starting")
	l.Warn(KindCycleIgnored, "ui", "busy")
	l.Error(KindGenresError, "ui", errors.New("HTTP error: 500"))
	l.Error(KindError, "main", nil)
	l.Close()

	lines := decodeLines(t, &buf)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	tests := []struct {
		level, kind, comp string
	}{
		{"info", "sys.startup", "main"},
		{"warn", "cycle.ignored", "ui"},
		{"error", "genres.error", "ui"},
		{"error", "sys.error", "main"},
	}
	for i, tt := range tests {
		if lines[i]["level"] != tt.level || lines[i]["kind"] != tt.kind || lines[i]["comp"] != tt.comp {
			t.Errorf("line %d = %v, want %+v", i, lines[i], tt)
		}
	}
	if lines[2]["err"] != "HTTP error: 500" {
		t.Errorf("err = %v", lines[2]["err"])
	}
}

func TestRingBufferReceivesEvents(t *testing.T) {
	l := NewNullLogger()
	ring := NewRingBuffer(8)
	l.SetRingBuffer(ring)

	l.Info(KindGenresComplete, "ui", "3 genres")
	l.Close()

	last := ring.Last(1)
	if len(last) != 1 || last[0].Kind != KindGenresComplete {
		t.Errorf("ring = %v", last)
	}
}

type recorder struct {
	events []Event
}

func (r *recorder) Emit(e Event) { r.events = append(r.events, e) }

func TestScope(t *testing.T) {
	rec := &recorder{}
	s := NewScope(rec, "api")

	s.Info(KindClusterStart, "go")
	s.Warn(KindCycleIgnored, "busy")
	s.Error(KindClusterError, errors.New("timeout"))
	s.Emit(Event{Kind: KindSortApply, Comp: "override"})

	if len(rec.events) != 4 {
		t.Fatalf("recorded %d events, want 4", len(rec.events))
	}
	if rec.events[0].Comp != "api" || rec.events[0].Level != LevelInfo {
		t.Errorf("event 0 = %+v", rec.events[0])
	}
	if rec.events[2].Err != "timeout" || rec.events[2].Level != LevelError {
		t.Errorf("event 2 = %+v", rec.events[2])
	}
	if rec.events[3].Comp != "override" {
		t.Errorf("explicit Comp should be kept, got %q", rec.events[3].Comp)
	}

	// Zero Scope discards without panicking.
	NewScope(nil, "x").Info(KindStartup, "ignored")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	l, f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Info(KindStartup, "main", "hello")
	l.Close()
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"sys.startup"`) {
		t.Errorf("log file missing event: %s", data)
	}
}
