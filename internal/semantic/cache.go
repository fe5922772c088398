package semantic

import "fmt"

// EqualityCache memoizes primitive deep-equality results at a given path. It
// is bounded the same way as the similarity cache: when full, the whole cache
// is dropped. The cache lives and dies with its owning Engine, so a fresh
// engine per comparison session starts clean.
type EqualityCache struct {
	entries map[string]bool
	maxSize int
}

// NewEqualityCache creates a bounded equality cache.
func NewEqualityCache(maxSize int) *EqualityCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &EqualityCache{
		entries: make(map[string]bool),
		maxSize: maxSize,
	}
}

// Get looks up a memoized equality result.
func (ec *EqualityCache) Get(path string, a, b any) (bool, bool) {
	v, ok := ec.entries[equalityKey(path, a, b)]
	return v, ok
}

// Put memoizes an equality result, evicting everything when the bound is hit.
func (ec *EqualityCache) Put(path string, a, b any, equal bool) {
	if len(ec.entries) >= ec.maxSize {
		ec.entries = make(map[string]bool)
	}
	ec.entries[equalityKey(path, a, b)] = equal
}

// Len reports the number of memoized entries.
func (ec *EqualityCache) Len() int {
	return len(ec.entries)
}

// equalityKey fingerprints a primitive comparison by path and both values.
func equalityKey(path string, a, b any) string {
	return fmt.Sprintf("%s|%T:%v|%T:%v", path, a, a, b, b)
}
