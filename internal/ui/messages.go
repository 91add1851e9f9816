// Package ui provides the Bubble Tea TUI for cinecluster.
package ui

import (
	"time"

	"github.com/abelbrown/cinecluster/internal/cluster"
)

// GenresLoaded is sent once the genre list request settles.
type GenresLoaded struct {
	Genres []string
	Err    error
}

// ClusterLoaded is sent when a cluster request settles. CycleID ties it to the
// trigger cycle that issued it.
type ClusterLoaded struct {
	CycleID string
	Genre   string
	Rating  string
	Result  *cluster.Result
	Dur     time.Duration
	Err     error
}

// phaseMsg advances the clapperboard of one cycle to the given phase.
type phaseMsg struct {
	cycleID string
	phase   Phase
}

// frameMsg drives the clapperboard spring.
type frameMsg struct{}
