// Package cluster holds the clustered catalog returned by the cluster service,
// the client-side sort modes applied to it, and the cache of the current result.
package cluster

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Result is the payload of GET /cluster. A missing "clusters" field decodes
// to a nil slice and renders the same as zero clusters.
type Result struct {
	Clusters []Cluster `json:"clusters"`
}

// Cluster is one group of items with a server-computed average rating.
// AvgRating is never recalculated on the client.
type Cluster struct {
	AvgRating float64 `json:"avg_rating"`
	Items     []Item  `json:"items"`
}

// Item is a single catalog entry. Only its position within a cluster changes.
type Item struct {
	ID     ID       `json:"id"`
	Title  string   `json:"title"`
	Rating float64  `json:"rating"`
	Genres []string `json:"genres"`
	Poster string   `json:"poster"`
}

// ID is an item identifier. The service may send it as a JSON number or string.
type ID string

// UnmarshalJSON accepts both `42` and `"42"`.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// GenreList joins genres for display.
func (it Item) GenreList() string {
	return strings.Join(it.Genres, ", ")
}

// Empty reports whether r has nothing to show. Safe on a nil receiver.
func (r *Result) Empty() bool {
	return r == nil || len(r.Clusters) == 0
}
