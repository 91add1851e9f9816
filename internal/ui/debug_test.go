package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/cinecluster/internal/otel"
)

func TestDebugOverlayNilRing(t *testing.T) {
	if got := debugOverlay(nil, 80, 24); got != "" {
		t.Errorf("debugOverlay(nil) should return empty string, got %q", got)
	}
}

func TestDebugOverlayRendersStats(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	now := time.Now()
	ring.Push(otel.Event{Kind: otel.KindGenresComplete, Time: now})
	ring.Push(otel.Event{Kind: otel.KindClusterStart, Time: now})
	ring.Push(otel.Event{Kind: otel.KindClusterStart, Time: now})
	ring.Push(otel.Event{Kind: otel.KindClusterComplete, Time: now})
	ring.Push(otel.Event{Kind: otel.KindClusterError, Time: now})
	ring.Push(otel.Event{Kind: otel.KindCycleIgnored, Time: now})

	got := debugOverlay(ring, 100, 40)

	for _, want := range []string{
		"Request Stats",
		"1 complete, 0 errors",
		"2 started, 1 complete, 1 errors",
		"0 finished, 1 ignored",
		"6 / 64 events",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("overlay missing %q, got:\n%s", want, got)
		}
	}
}

func TestDebugOverlayRecentEvents(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	ring.Push(otel.Event{Kind: otel.KindGenresStart, Time: time.Now(), Msg: "hello world"})
	ring.Push(otel.Event{Kind: otel.KindClusterError, Time: time.Now(), Err: "timeout"})
	ring.Push(otel.Event{Kind: otel.KindClusterStart, Time: time.Now(), CycleID: "abcdef1234567890"})

	got := debugOverlay(ring, 100, 40)

	if !strings.Contains(got, "Recent Events") {
		t.Error("overlay should contain 'Recent Events' header")
	}
	if !strings.Contains(got, "hello world") {
		t.Errorf("overlay should show event message, got:\n%s", got)
	}
	if !strings.Contains(got, "ERR:timeout") {
		t.Errorf("overlay should show error, got:\n%s", got)
	}
	if !strings.Contains(got, "cycle:abcdef12") {
		t.Errorf("overlay should show truncated cycle ID, got:\n%s", got)
	}
}

func TestDebugOverlayTruncatesToHeight(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	for range 30 {
		ring.Push(otel.Event{Kind: otel.KindAnimPhase, Time: time.Now()})
	}
	got := debugOverlay(ring, 80, 12)
	if n := strings.Count(got, "\n") + 1; n > 12 {
		t.Errorf("overlay has %d lines, want at most 12", n)
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "0ms"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{3 * time.Minute, "3m"},
	}
	for _, tt := range tests {
		if got := formatAge(tt.d); got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDebugToggle(t *testing.T) {
	ring := otel.NewRingBuffer(16)
	app := NewAppWithConfig(AppConfig{Ring: ring})
	app = resize(app)

	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'D'}})
	app = m.(App)
	if !strings.Contains(app.View(), "[DEBUG]") {
		t.Error("D should open the debug overlay")
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'D'}})
	app = m.(App)
	if strings.Contains(app.View(), "[DEBUG]") {
		t.Error("second D should close the debug overlay")
	}
}
