package main

import (
	"strings"
	"testing"
)

const sampleLog = `{"t":"2026-01-02T10:00:00Z","level":"info","kind":"genres.complete","comp":"ui","count":3}
{"t":"2026-01-02T10:00:01Z","level":"info","kind":"cluster.start","comp":"ui","cycle":"0123456789abcdef","genre":"Drama","rating":"7.5"}
not json
{"t":"2026-01-02T10:00:02Z","level":"warn","kind":"cycle.ignored","comp":"ui","cycle":"0123456789abcdef"}

{"t":"2026-01-02T10:00:03Z","level":"error","kind":"cluster.error","comp":"ui","cycle":"0123456789abcdef","err":"HTTP error: 500 Internal Server Error","dur_ms":42.5}
`

func TestReadTailLines(t *testing.T) {
	all := func(eventRecord) bool { return true }

	got := readTailLines(strings.NewReader(sampleLog), 2, all)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	if got[0].ev.Kind != "cycle.ignored" || got[1].ev.Kind != "cluster.error" {
		t.Errorf("tail = %s, %s", got[0].ev.Kind, got[1].ev.Kind)
	}

	if got := readTailLines(strings.NewReader(sampleLog), 10, all); len(got) != 4 {
		t.Errorf("malformed and blank lines should be skipped, got %d", len(got))
	}
	if got := readTailLines(strings.NewReader(sampleLog), 0, all); got != nil {
		t.Errorf("n=0 should return nil, got %d", len(got))
	}
}

func TestEventFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter eventFilter
		want   int
	}{
		{"none", eventFilter{}, 4},
		{"kind prefix", eventFilter{kind: "cluster"}, 2},
		{"min level", eventFilter{minLevel: "warn"}, 2},
		{"cycle prefix", eventFilter{cycle: "01234567"}, 3},
		{"comp", eventFilter{comp: "main"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readTailLines(strings.NewReader(sampleLog), 50, tt.filter.match)
			if len(got) != tt.want {
				t.Errorf("matched %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFormatEvent(t *testing.T) {
	lines := readTailLines(strings.NewReader(sampleLog), 50, func(eventRecord) bool { return true })

	start := formatEvent(lines[1].ev)
	for _, want := range []string{"INFO", "cluster.start", `genre="Drama" rating=7.5`, "cycle=01234567"} {
		if !strings.Contains(start, want) {
			t.Errorf("formatted start missing %q: %s", want, start)
		}
	}

	fail := formatEvent(lines[3].ev)
	for _, want := range []string{"ERROR", "(42.5ms)", "err=HTTP error: 500"} {
		if !strings.Contains(fail, want) {
			t.Errorf("formatted error missing %q: %s", want, fail)
		}
	}
}
