package cache

import (
	"github.com/xrash/smetrics"

	"go.jot.dev/jot/internal/core/domain"
)

// Jaro-Winkler parameters; the standard boost threshold and prefix size.
const (
	jaroWinklerBoost  = 0.7
	jaroWinklerPrefix = 4
)

// Fuzzy finds near-duplicate cache entries by string similarity.
// It only reads entries; promotion of a match to a new cache key is the
// orchestrator's job.
type Fuzzy struct {
	threshold float64
}

// NewFuzzy creates a matcher with the given similarity threshold in (0,1].
// An out-of-range threshold falls back to the default of 0.85.
func NewFuzzy(threshold float64) *Fuzzy {
	if threshold <= 0 || threshold > 1 {
		threshold = domain.DefaultConfig().Cache.FuzzyThreshold
	}
	return &Fuzzy{threshold: threshold}
}

// Threshold returns the configured similarity threshold.
func (f *Fuzzy) Threshold() float64 {
	return f.threshold
}

// Match scans entries (most recently used first, as produced by
// Exact.Snapshot) and returns the entry with the highest Jaro-Winkler
// similarity to key, provided it reaches the threshold. On an exact score
// tie the most-recently-used entry wins, which falls out of the strict
// greater-than comparison over the MRU-ordered scan.
func (f *Fuzzy) Match(key domain.NormalizedKey, entries []domain.CacheEntry) (domain.CacheEntry, float64, bool) {
	var (
		best      domain.CacheEntry
		bestScore float64
		found     bool
	)
	for _, entry := range entries {
		score := Similarity(key, entry.Key)
		if score < f.threshold {
			continue
		}
		if score > bestScore {
			best = entry
			bestScore = score
			found = true
		}
	}
	return best, bestScore, found
}

// Similarity returns the normalized Jaro-Winkler similarity of two keys
// in [0,1]. It is symmetric and Similarity(x,x) == 1.
func Similarity(a, b domain.NormalizedKey) float64 {
	return smetrics.JaroWinkler(string(a), string(b), jaroWinklerBoost, jaroWinklerPrefix)
}
