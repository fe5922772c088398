package inline

import "fmt"

// fingerprintPrefixLen bounds how much of each string participates in a cache
// key.
const fingerprintPrefixLen = 24

// SimilarityCache memoizes string-similarity results across one comparison
// session. It is bounded: when full, the whole cache is dropped rather than
// tracking per-entry age. Callers reset it between independent sessions.
type SimilarityCache struct {
	entries map[string]float64
	maxSize int
}

// NewSimilarityCache creates a bounded similarity cache.
func NewSimilarityCache(maxSize int) *SimilarityCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &SimilarityCache{
		entries: make(map[string]float64),
		maxSize: maxSize,
	}
}

// Get looks up a memoized similarity for the given pair.
func (sc *SimilarityCache) Get(a, b string) (float64, bool) {
	v, ok := sc.entries[fingerprint(a, b)]
	return v, ok
}

// Put memoizes a similarity result, evicting everything when the bound is hit.
func (sc *SimilarityCache) Put(a, b string, similarity float64) {
	if len(sc.entries) >= sc.maxSize {
		sc.entries = make(map[string]float64)
	}
	sc.entries[fingerprint(a, b)] = similarity
}

// Len reports the number of memoized entries.
func (sc *SimilarityCache) Len() int {
	return len(sc.entries)
}

// Reset drops all memoized entries. Invoked at the start of each independent
// comparison session to avoid cross-session result bleed.
func (sc *SimilarityCache) Reset() {
	sc.entries = make(map[string]float64)
}

// fingerprint keys a string pair by lengths and bounded prefixes so oversized
// lines do not blow up the cache.
func fingerprint(a, b string) string {
	return fmt.Sprintf("%d:%d:%s\x00%s", len(a), len(b), prefix(a), prefix(b))
}

// prefix returns at most fingerprintPrefixLen bytes of s.
func prefix(s string) string {
	if len(s) > fingerprintPrefixLen {
		return s[:fingerprintPrefixLen]
	}
	return s
}
