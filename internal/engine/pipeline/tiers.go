package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.jot.dev/jot/internal/adapters/cache"
	"go.jot.dev/jot/internal/adapters/extract"
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
)

// exactTier serves requests from the exact cache.
type exactTier struct {
	cache *cache.Exact
}

// NewExactTier creates the exact-lookup tier over the shared cache.
func NewExactTier(c *cache.Exact) ports.Tier {
	return &exactTier{cache: c}
}

func (t *exactTier) Name() domain.Tier { return domain.TierExact }

func (t *exactTier) Attempt(_ context.Context, req ports.ParseRequest) (domain.ParsedResult, error) {
	result, ok := t.cache.Get(req.Key)
	if !ok {
		return domain.ParsedResult{}, domain.ErrNoMatch
	}
	result.Tier = domain.TierExact
	return result, nil
}

// fuzzyTier serves requests from a near-duplicate cache entry. It reads a
// snapshot of the cache; the orchestrator's write-back creates the alias
// entry under the new key so the next repeat is an exact hit.
type fuzzyTier struct {
	cache   *cache.Exact
	matcher *cache.Fuzzy
}

// NewFuzzyTier creates the fuzzy-lookup tier.
func NewFuzzyTier(c *cache.Exact, matcher *cache.Fuzzy) ports.Tier {
	return &fuzzyTier{cache: c, matcher: matcher}
}

func (t *fuzzyTier) Name() domain.Tier { return domain.TierFuzzy }

func (t *fuzzyTier) Attempt(_ context.Context, req ports.ParseRequest) (domain.ParsedResult, error) {
	entry, _, ok := t.matcher.Match(req.Key, t.cache.Snapshot())
	if !ok {
		return domain.ParsedResult{}, domain.ErrNoMatch
	}
	result := entry.Result.Clone()
	result.Tier = domain.TierFuzzy
	return result, nil
}

// patternTier runs the deterministic extractors over the raw text.
type patternTier struct {
	engine *extract.Engine
}

// NewPatternTier creates the pattern-extraction tier.
func NewPatternTier(engine *extract.Engine) ports.Tier {
	return &patternTier{engine: engine}
}

func (t *patternTier) Name() domain.Tier { return domain.TierPattern }

func (t *patternTier) Attempt(_ context.Context, req ports.ParseRequest) (domain.ParsedResult, error) {
	result := t.engine.Extract(req.Raw)
	if !t.engine.Sufficient(result) {
		return domain.ParsedResult{}, domain.ErrInsufficient
	}
	return result, nil
}

// fallbackTier asks the slow generative service, merging its answer over
// the pattern engine's partial extraction. It never fails: a timeout or
// service error degrades to the partial result with reduced confidence.
type fallbackTier struct {
	engine *extract.Engine
	client ports.FallbackClient
	log    ports.Logger
}

// NewFallbackTier creates the terminal fallback tier.
func NewFallbackTier(engine *extract.Engine, client ports.FallbackClient, log ports.Logger) ports.Tier {
	return &fallbackTier{engine: engine, client: client, log: log}
}

func (t *fallbackTier) Name() domain.Tier { return domain.TierFallback }

func (t *fallbackTier) Attempt(ctx context.Context, req ports.ParseRequest) (domain.ParsedResult, error) {
	partial := t.engine.Extract(req.Raw)

	if t.client == nil {
		partial.Confidence = domain.ConfidencePartial
		return partial, nil
	}

	answer, err := t.client.Interpret(ctx, req.Raw)
	if err != nil {
		if !errors.Is(err, domain.ErrFallbackTimeout) && !errors.Is(err, domain.ErrFallbackUnavailable) {
			t.log.Error(err)
		} else {
			t.log.Warn(fmt.Sprintf("fallback degraded for key %016x: %v", req.Key.Fingerprint(), err))
		}
		partial.Confidence = domain.ConfidencePartial
		return partial, nil
	}

	return merge(partial, answer), nil
}

// merge lets the service's structured answer override the partial
// extraction field by field, keeping partial values where the service
// stayed silent.
func merge(partial, answer domain.ParsedResult) domain.ParsedResult {
	merged := answer
	if merged.Title == "" {
		merged.Title = partial.Title
	}
	if merged.Due == nil {
		merged.Due = partial.Due
	}
	if len(merged.Tags) == 0 {
		merged.Tags = partial.Tags
	}
	if !merged.PriorityExplicit && partial.PriorityExplicit {
		merged.Priority = partial.Priority
		merged.PriorityExplicit = true
	}
	merged.Tier = domain.TierFallback
	merged.Confidence = domain.ConfidenceFull
	return merged
}
