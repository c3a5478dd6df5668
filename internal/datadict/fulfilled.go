package datadict

import (
	"slices"
	"sync"
	"sync/atomic"
)

// ShapeID identifies one selection-set, fragment, or inline-fragment type.
type ShapeID uint64

var lastShapeID atomic.Uint64

// NewShapeID allocates a process-unique shape identity.
func NewShapeID() ShapeID { return ShapeID(lastShapeID.Add(1)) }

// fulfilledSet is a copy-on-write set. Readers load the current snapshot
// without locking; writers copy and swap under mu. A reader racing a writer
// sees the id either absent (and re-validates) or present, never a partial map.
type fulfilledSet struct {
	mu   sync.Mutex
	snap atomic.Pointer[map[ShapeID]struct{}]
}

func newFulfilledSet() *fulfilledSet {
	s := &fulfilledSet{}
	empty := map[ShapeID]struct{}{}
	s.snap.Store(&empty)
	return s
}

func (s *fulfilledSet) contains(id ShapeID) bool {
	_, ok := (*s.snap.Load())[id]
	return ok
}

func (s *fulfilledSet) add(ids ...ShapeID) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := *s.snap.Load()
	missing := false
	for _, id := range ids {
		if _, ok := cur[id]; !ok {
			missing = true
			break
		}
	}
	if !missing {
		return
	}
	next := make(map[ShapeID]struct{}, len(cur)+len(ids))
	for id := range cur {
		next[id] = struct{}{}
	}
	for _, id := range ids {
		next[id] = struct{}{}
	}
	s.snap.Store(&next)
}

func (s *fulfilledSet) clone() *fulfilledSet {
	out := &fulfilledSet{}
	out.snap.Store(s.snap.Load())
	return out
}

func (s *fulfilledSet) snapshot() []ShapeID {
	cur := *s.snap.Load()
	out := make([]ShapeID, 0, len(cur))
	for id := range cur {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
