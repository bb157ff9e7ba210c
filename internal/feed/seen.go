package feed

// seenSet is a bounded set of event IDs with FIFO eviction. Oldest entries
// drop first; with overlap windows far shorter than the eviction horizon,
// that is exactly the set that can no longer reappear in a query window.
// Not safe for concurrent use; the feed loop is the only caller.
type seenSet struct {
	cap   int
	ids   map[string]struct{}
	order []string
	head  int
}

func newSeenSet(cap int) *seenSet {
	if cap < 1 {
		cap = 1
	}
	return &seenSet{
		cap:   cap,
		ids:   make(map[string]struct{}, cap),
		order: make([]string, cap),
	}
}

// has reports whether the ID is present without recording it.
func (s *seenSet) has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// add records the ID and reports whether it was new.
func (s *seenSet) add(id string) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	if len(s.ids) == s.cap {
		delete(s.ids, s.order[s.head])
	}
	s.ids[id] = struct{}{}
	s.order[s.head] = id
	s.head = (s.head + 1) % s.cap
	return true
}
