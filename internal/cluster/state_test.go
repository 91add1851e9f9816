package cluster

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"
)

func TestStateZeroValue(t *testing.T) {
	var s State
	if s.Mode() != SortNone {
		t.Errorf("Mode() = %v, want none", s.Mode())
	}
	if s.HasResults() {
		t.Error("zero State should have no results")
	}
	if s.SetSort(SortTitle) {
		t.Error("SetSort with no result should report false")
	}
	if s.Mode() != SortNone {
		t.Error("SetSort with no result must not change the mode")
	}
}

func TestStateReplaceResetsMode(t *testing.T) {
	var s State
	s.Replace(&Result{Clusters: []Cluster{clusterWithRatings("a", 1, 2)}})
	if !s.SetSort(SortRating) {
		t.Fatal("SetSort should apply to a cached result")
	}
	if s.Mode() != SortRating {
		t.Fatalf("Mode() = %v, want rating", s.Mode())
	}

	next := &Result{Clusters: []Cluster{clusterWithRatings("b", 3, 4)}}
	s.Replace(next)
	if s.Mode() != SortNone {
		t.Errorf("Replace should reset mode, got %v", s.Mode())
	}
	if s.Result() != next {
		t.Error("Replace should install the new result wholesale")
	}
	if got := ratingsOf(s.Result().Clusters[0].Items); !reflect.DeepEqual(got, []float64{3, 4}) {
		t.Errorf("new result must arrive unsorted, got %v", got)
	}
}

func TestStateSortMutatesSharedResult(t *testing.T) {
	r := &Result{Clusters: []Cluster{clusterWithRatings("a", 1, 3, 2)}}
	var s State
	s.Replace(r)

	s.SetSort(SortRating)
	s.SetSort(SortRating)

	// The caller's pointer sees the in-place reorder.
	if got := ratingsOf(r.Clusters[0].Items); !reflect.DeepEqual(got, []float64{3, 2, 1}) {
		t.Errorf("ratings = %v, want [3 2 1]", got)
	}
}

func TestStateEmptyResult(t *testing.T) {
	var s State
	s.Replace(&Result{})
	if s.HasResults() {
		t.Error("empty clusters should not count as results")
	}
	var nilState *State
	if nilState.HasResults() {
		t.Error("nil State should not have results")
	}
}

func TestDecodeResult(t *testing.T) {
	body := `{"clusters":[{"avg_rating":7.25,"items":[
		{"id":12,"title":"Heat","rating":8.3,"genres":["Crime","Drama"],"poster":"https://img/heat.jpg"},
		{"id":"tt01","title":"Ran","rating":8.2,"genres":[],"poster":""}
	]}]}`

	var r Result
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(r.Clusters) != 1 || len(r.Clusters[0].Items) != 2 {
		t.Fatalf("unexpected shape: %+v", r)
	}
	items := r.Clusters[0].Items
	if items[0].ID != "12" || items[1].ID != "tt01" {
		t.Errorf("ids = %q, %q", items[0].ID, items[1].ID)
	}
	if items[0].GenreList() != "Crime, Drama" {
		t.Errorf("GenreList() = %q", items[0].GenreList())
	}
	if r.Clusters[0].AvgRating != 7.25 {
		t.Errorf("avg_rating = %v", r.Clusters[0].AvgRating)
	}
}

func TestDecodeMissingClusters(t *testing.T) {
	var r Result
	if err := json.Unmarshal([]byte(`{}`), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !r.Empty() {
		t.Error("missing clusters should decode as empty")
	}
}
