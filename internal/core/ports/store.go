package ports

import (
	"context"

	"go.jot.dev/jot/internal/core/domain"
)

// TaskStore persists finalized task records and serves ranked reads for
// the cache warmer. Schema and query execution live behind this interface.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type TaskStore interface {
	// Save durably stores a parsed task together with the raw input that
	// produced it. Returns the record ID.
	Save(ctx context.Context, raw string, result domain.ParsedResult) (int64, error)

	// TopEntries returns up to k cache entries for the most frequently
	// submitted prior inputs, most frequent first.
	TopEntries(ctx context.Context, k int) ([]domain.CacheEntry, error)

	// Close releases the underlying database handle.
	Close() error
}
