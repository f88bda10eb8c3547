package ports

import (
	"context"

	"go.jot.dev/jot/internal/core/domain"
)

// ParseRequest carries one input through the tier chain.
type ParseRequest struct {
	// Raw is the original text, casing preserved for title extraction.
	Raw string
	// Key is the normalized cache identity of Raw.
	Key domain.NormalizedKey
}

// Tier is one strategy in the parsing chain. Tiers are evaluated in a
// fixed order; a tier that cannot serve the request misses with
// domain.ErrNoMatch (or domain.ErrInsufficient for the pattern tier) and
// the chain advances. A tier never mutates cache entries; all write-back
// is performed by the orchestrator.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type Tier interface {
	// Name returns the tier tag stamped onto results this tier produces.
	Name() domain.Tier

	// Attempt tries to produce a result for the request.
	Attempt(ctx context.Context, req ParseRequest) (domain.ParsedResult, error)
}

// Parser turns raw text into a structured task record.
// Implemented by the pipeline orchestrator and by the daemon client.
type Parser interface {
	Parse(ctx context.Context, raw string) (domain.ParsedResult, error)
}
