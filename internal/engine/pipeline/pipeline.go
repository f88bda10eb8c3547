// Package pipeline implements the tiered parse orchestrator.
//
// A request walks an ordered chain of tiers, cheapest and most precise
// first: exact cache, fuzzy cache, deterministic patterns, generative
// fallback. The first tier to produce a result short-circuits the chain;
// the orchestrator then writes the final result back into the exact cache
// under the request's normalized key. Adding or reordering tiers is a
// construction-time change, not a rewrite.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.jot.dev/jot/internal/adapters/cache"
	"go.jot.dev/jot/internal/adapters/extract"
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline sequences the tiers and performs write-back. It owns no
// long-lived state of its own; the caches and fallback client are
// borrowed shared state.
type Pipeline struct {
	tiers []ports.Tier
	cache *cache.Exact
	log   ports.Logger
}

var _ ports.Parser = (*Pipeline)(nil)

// New creates a pipeline over the given tier order.
func New(exact *cache.Exact, tiers []ports.Tier, log ports.Logger) *Pipeline {
	return &Pipeline{
		tiers: tiers,
		cache: exact,
		log:   log,
	}
}

// BuildDefault assembles the standard four-tier chain: exact, fuzzy,
// pattern, fallback.
func BuildDefault(
	exact *cache.Exact,
	matcher *cache.Fuzzy,
	engine *extract.Engine,
	client ports.FallbackClient,
	log ports.Logger,
) *Pipeline {
	tiers := []ports.Tier{
		NewExactTier(exact),
		NewFuzzyTier(exact, matcher),
		NewPatternTier(engine),
		NewFallbackTier(engine, client, log),
	}
	return New(exact, tiers, log)
}

// Parse runs one request through the chain. The returned result carries
// exactly one tier tag; every resolution is also written back into the
// exact cache so repeats become exact hits.
func (p *Pipeline) Parse(ctx context.Context, raw string) (domain.ParsedResult, error) {
	key, err := domain.Normalize(raw)
	if err != nil {
		return domain.ParsedResult{}, err
	}

	req := ports.ParseRequest{Raw: raw, Key: key}
	for _, tier := range p.tiers {
		result, err := tier.Attempt(ctx, req)
		if errors.Is(err, domain.ErrNoMatch) || errors.Is(err, domain.ErrInsufficient) {
			continue
		}
		if err != nil {
			return domain.ParsedResult{}, zerr.Wrap(err, fmt.Sprintf("%s tier failed", tier.Name()))
		}

		p.cache.Put(key, result)
		return result, nil
	}

	// The fallback tier degrades instead of missing, so an exhausted
	// chain means it was not configured at all.
	return domain.ParsedResult{}, zerr.Wrap(domain.ErrNoMatch, "no tier produced a result")
}
