// Package reftrack implements the per-call identity stack (component C8 of
// the codec) that lets a single encode/decode walk preserve shared and
// cyclic references inside composite values.
package reftrack

// Tracker is an identity-based stack of previously seen composite values.
// It is created lazily on the first composite value of a top-level
// encode/decode call and discarded with the call; it must never be shared
// across calls.
//
// Identity is tracked by a caller-supplied key, typically the pointer to
// the composite's own backing struct. Lookups are a linear scan: the
// graphs this codec walks are shallow in practice, and a linear vector
// avoids paying for a hash map on the common case of no shared references
// at all.
type Tracker struct {
	seen []any
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{}
}

// IndexOf returns the index at which key was previously pushed, and
// whether it was found at all. Comparison is by identity (key equality),
// not by the pointed-to value's contents.
func (t *Tracker) IndexOf(key any) (int, bool) {
	for i, k := range t.seen {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// Push registers key at the next index and returns that index. The
// encoder calls this before walking a composite's children so that a
// self-reference resolves to the index the composite itself will occupy.
func (t *Tracker) Push(key any) int {
	t.seen = append(t.seen, key)
	return len(t.seen) - 1
}

// Len returns the number of values registered so far.
func (t *Tracker) Len() int {
	return len(t.seen)
}

// Get returns the key previously pushed at index i. It is the decode-side
// counterpart of IndexOf/Push: resolving an OBJECT_STACK index back to the
// value the corresponding encode-side push saw at that index.
func (t *Tracker) Get(i int) (any, bool) {
	if i < 0 || i >= len(t.seen) {
		return nil, false
	}
	return t.seen[i], true
}
