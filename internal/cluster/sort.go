package cluster

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode is the client-chosen ordering of items inside each cluster.
type SortMode int

const (
	SortNone   SortMode = iota // server order
	SortTitle                  // ascending, locale-aware
	SortRating                 // descending, ties keep their order
)

// Modes lists every sort mode in the order the sort bar shows them.
var Modes = []SortMode{SortNone, SortTitle, SortRating}

func (m SortMode) String() string {
	switch m {
	case SortTitle:
		return "title"
	case SortRating:
		return "rating"
	default:
		return "none"
	}
}

// ParseSortMode maps "none", "title" and "rating" to a SortMode.
func ParseSortMode(s string) (SortMode, bool) {
	switch s {
	case "none", "":
		return SortNone, true
	case "title":
		return SortTitle, true
	case "rating":
		return SortRating, true
	}
	return SortNone, false
}

// Sort reorders the items of every cluster in r in place.
// A nil result is a no-op so callers may sort before any data has arrived.
func Sort(r *Result, mode SortMode) {
	if r == nil {
		return
	}

	var less func(a, b Item) int
	switch mode {
	case SortTitle:
		col := collate.New(language.Und)
		less = func(a, b Item) int { return col.CompareString(a.Title, b.Title) }
	case SortRating:
		less = func(a, b Item) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return
	}

	for i := range r.Clusters {
		slices.SortStableFunc(r.Clusters[i].Items, less)
	}
}
