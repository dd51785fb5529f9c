// Package cached implements the "compute once, compare hash, re-fetch on
// tick" wrapper used to keep the header strip cheap to redraw.
package cached

import "sync"

// Cached holds the last value a producer returned, plus the hash of
// that value, so repeated Lookup calls can report whether anything
// actually changed without the caller diffing structs by hand.
type Cached[T any] struct {
	producer func() (T, error)
	hashFn   func(T) uint64

	mu        sync.Mutex
	lastValue T
	lastHash  uint64
	hasValue  bool
}

// New wraps producer, using hashFn to detect whether a freshly produced
// value differs from the last one stored.
func New[T any](producer func() (T, error), hashFn func(T) uint64) *Cached[T] {
	return &Cached[T]{producer: producer, hashFn: hashFn}
}

// Lookup calls the producer, hashes the result, and updates the stored
// value iff the hash changed (or this is the first call), returning the
// fresh value either way and whether it differs from what was
// previously stored.
func (c *Cached[T]) Lookup() (value T, changed bool, err error) {
	v, err := c.producer()
	if err != nil {
		var zero T
		return zero, false, err
	}
	h := c.hashFn(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasValue || h != c.lastHash {
		c.lastValue = v
		c.lastHash = h
		c.hasValue = true
		return v, true, nil
	}
	return c.lastValue, false, nil
}

// Value returns the last stored value without invoking the producer,
// and whether one has ever been stored.
func (c *Cached[T]) Value() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastValue, c.hasValue
}

// Invalidate clears the stored value so the next Lookup always reports
// changed, regardless of hash. Called when a RepoWatcher tick fires
//.
func (c *Cached[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.lastValue = zero
	c.lastHash = 0
	c.hasValue = false
}
