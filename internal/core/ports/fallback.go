package ports

import (
	"context"

	"go.jot.dev/jot/internal/core/domain"
)

// FallbackClient calls the slow general-purpose interpretation service.
//
//go:generate mockgen -source=fallback.go -destination=mocks/mock_fallback.go -package=mocks
type FallbackClient interface {
	// Interpret sends the raw text to the service and returns its
	// structured answer. Errors are domain.ErrFallbackTimeout or
	// domain.ErrFallbackUnavailable; callers recover from both.
	Interpret(ctx context.Context, raw string) (domain.ParsedResult, error)

	// Warm issues a no-op request purely to eliminate first-call latency.
	Warm(ctx context.Context) error

	// Healthy reports whether the service answers at all.
	Healthy(ctx context.Context) bool
}
