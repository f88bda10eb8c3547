package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.jot.dev/jot/internal/adapters/cache"   //nolint:depguard // Wired in engine wiring
	"go.jot.dev/jot/internal/adapters/config"  //nolint:depguard // Wired in engine wiring
	"go.jot.dev/jot/internal/adapters/extract" //nolint:depguard // Wired in engine wiring
	"go.jot.dev/jot/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.jot.dev/jot/internal/adapters/ollama"  //nolint:depguard // Wired in engine wiring
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cache.ExactNodeID,
			cache.FuzzyNodeID,
			ollama.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			exact, err := graft.Dep[*cache.Exact](ctx)
			if err != nil {
				return nil, err
			}

			matcher, err := graft.Dep[*cache.Fuzzy](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			var client ports.FallbackClient
			if cfg.Fallback.Enabled {
				client, err = graft.Dep[ports.FallbackClient](ctx)
				if err != nil {
					return nil, err
				}
			}

			engine := extract.NewEngine(cfg.Cache.MinTitleLen)
			return BuildDefault(exact, matcher, engine, client, log), nil
		},
	})
}
