package otel

import (
	"os"
	"sync/atomic"
)

// traceEnabled is read on every UI message, so it is a single atomic load.
var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("CINECLUSTER_TRACE") != "")
}

// TraceEnabled reports whether CINECLUSTER_TRACE is set.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// SetTraceEnabled overrides the trace flag; used by tests in other packages.
func SetTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
