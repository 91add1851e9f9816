package cluster

// State is the result cache: the one current Result and the one current
// SortMode. Every render reads exactly this pair. There is no history.
//
// Not safe for concurrent use; it is owned by the UI update loop.
type State struct {
	result *Result
	mode   SortMode
}

// Replace installs a freshly fetched result and resets the sort mode.
// The previous result is dropped, never merged.
func (s *State) Replace(r *Result) {
	s.result = r
	s.mode = SortNone
}

// SetSort records mode and reorders the cached result in place.
// Returns false when there is nothing cached to sort.
func (s *State) SetSort(mode SortMode) bool {
	if s.result.Empty() {
		return false
	}
	s.mode = mode
	Sort(s.result, mode)
	return true
}

// Result returns the cached result, or nil before the first success.
func (s *State) Result() *Result { return s.result }

// Mode returns the active sort mode.
func (s *State) Mode() SortMode { return s.mode }

// HasResults reports whether there is at least one cluster to show.
func (s *State) HasResults() bool {
	return s != nil && !s.result.Empty()
}
