package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitLevels(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)
	t.Cleanup(func() { Init(&bytes.Buffer{}, false) })

	Debug("hidden")
	Info("shown", "genre", "Drama")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug should be filtered at info level:\n%s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "genre=Drama") {
		t.Errorf("info line missing fields:\n%s", out)
	}

	buf.Reset()
	Init(&buf, true)
	Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug should pass at debug level:\n%s", buf.String())
	}
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)
	t.Cleanup(func() { Init(&bytes.Buffer{}, false) })

	WithPrefix("events").Warn("log missing")
	if !strings.Contains(buf.String(), "events") || !strings.Contains(buf.String(), "log missing") {
		t.Errorf("prefixed line = %q", buf.String())
	}
}
