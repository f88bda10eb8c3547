package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.jot.dev/jot/internal/adapters/config"
	"go.jot.dev/jot/internal/core/domain"
)

const (
	// ExactNodeID is the unique identifier for the exact cache Graft node.
	ExactNodeID graft.ID = "adapter.cache.exact"
	// FuzzyNodeID is the unique identifier for the fuzzy matcher Graft node.
	FuzzyNodeID graft.ID = "adapter.cache.fuzzy"
)

func init() {
	graft.Register(graft.Node[*Exact]{
		ID:        ExactNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Exact, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewExact(cfg.Cache.Capacity), nil
		},
	})

	graft.Register(graft.Node[*Fuzzy]{
		ID:        FuzzyNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Fuzzy, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewFuzzy(cfg.Cache.FuzzyThreshold), nil
		},
	})
}
