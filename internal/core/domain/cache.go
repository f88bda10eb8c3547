package domain

import "time"

// CacheEntry holds a parsed result keyed by its normalized input.
// Entries are owned exclusively by the exact cache; the fuzzy matcher
// only reads them.
type CacheEntry struct {
	Key        NormalizedKey
	Result     ParsedResult
	LastAccess time.Time
	Hits       int
}
