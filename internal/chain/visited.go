package chain

import "sync"

// Visited is the process-wide set of commit hashes already reported.
//
// It is shared by every concurrent traversal for the duration of one run;
// membership is insert-only and checked with an atomic test-and-add so a
// hash can be claimed by exactly one traversal.
type Visited struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewVisited creates an empty visited set
func NewVisited() *Visited {
	return &Visited{
		seen: make(map[string]struct{}),
	}
}

// TestAndAdd atomically inserts hash and reports whether it was absent.
// A false return means another traversal (or an earlier step of this one)
// already claimed the hash.
func (v *Visited) TestAndAdd(hash string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.seen[hash]; ok {
		return false
	}
	v.seen[hash] = struct{}{}
	return true
}

// Len returns the number of hashes claimed so far
func (v *Visited) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
