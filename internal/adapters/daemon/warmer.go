package daemon

import (
	"context"
	"fmt"
	"time"

	"go.jot.dev/jot/internal/adapters/cache"
	"go.jot.dev/jot/internal/core/ports"
)

// Warmer primes the daemon after startup: it wakes the fallback model
// and preloads the exact cache with the most frequent stored inputs.
// All failures are logged and swallowed; a cold daemon still serves.
type Warmer struct {
	client ports.FallbackClient
	store  ports.TaskStore
	cache  *cache.Exact
	topK   int
	log    ports.Logger
}

// NewWarmer creates a warmer. client and store may each be nil, which
// skips the corresponding step.
func NewWarmer(
	client ports.FallbackClient,
	store ports.TaskStore,
	exact *cache.Exact,
	topK int,
	log ports.Logger,
) *Warmer {
	return &Warmer{
		client: client,
		store:  store,
		cache:  exact,
		topK:   topK,
		log:    log,
	}
}

// Run performs the warm-up steps. Meant to run as a detached task while
// the server is already accepting connections.
func (w *Warmer) Run(ctx context.Context) {
	w.preload(ctx)
	w.warmModel(ctx)
}

// preload fills the exact cache from the store, least frequent first so
// the hottest entries end up most recently used.
func (w *Warmer) preload(ctx context.Context) {
	if w.store == nil || w.topK <= 0 {
		return
	}

	entries, err := w.store.TopEntries(ctx, w.topK)
	if err != nil {
		w.log.Warn(fmt.Sprintf("cache preload failed: %v", err))
		return
	}

	for i := len(entries) - 1; i >= 0; i-- {
		w.cache.Put(entries[i].Key, entries[i].Result)
	}
	w.log.Info(fmt.Sprintf("preloaded %d cache entries", len(entries)))
}

// warmModel probes the fallback service and issues a throwaway
// generation so the first real fallback request does not pay the model
// load time. An unreachable service is logged once here instead of
// surfacing as a timeout on every insufficient input.
func (w *Warmer) warmModel(ctx context.Context) {
	if w.client == nil {
		return
	}

	if !w.client.Healthy(ctx) {
		w.log.Warn("fallback service unavailable, parsing degrades to patterns only")
		return
	}

	start := time.Now()
	if err := w.client.Warm(ctx); err != nil {
		w.log.Warn(fmt.Sprintf("model warm-up failed: %v", err))
		return
	}
	w.log.Info(fmt.Sprintf("model warm-up done in %s", time.Since(start).Round(time.Millisecond)))
}
