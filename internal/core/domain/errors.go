package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidInput is returned when the raw input is empty or not parseable text.
	ErrInvalidInput = zerr.New("invalid input")

	// ErrNoMatch signals that a tier produced no result. It is expected
	// control flow, not a failure: the chain advances to the next tier.
	ErrNoMatch = zerr.New("no match")

	// ErrInsufficient signals that the pattern engine found nothing
	// actionable, so the orchestrator should try the fallback tier.
	ErrInsufficient = zerr.New("extraction insufficient")

	// ErrFallbackTimeout is returned when the fallback service exceeds its
	// deadline. Recovered locally with a degraded result.
	ErrFallbackTimeout = zerr.New("fallback timed out")

	// ErrFallbackUnavailable is returned when the fallback service fails or
	// returns an undecodable response. Recovered locally with a degraded result.
	ErrFallbackUnavailable = zerr.New("fallback unavailable")

	// ErrShuttingDown is returned to connections arriving while the daemon
	// is draining.
	ErrShuttingDown = zerr.New("daemon shutting down")

	// ErrDaemonNotRunning is returned when no resident process is reachable.
	ErrDaemonNotRunning = zerr.New("daemon not running")
)
