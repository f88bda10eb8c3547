package ollama

import (
	"context"

	"github.com/grindlemire/graft"
	"go.jot.dev/jot/internal/adapters/config"
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
)

// NodeID is the unique identifier for the fallback client Graft node.
const NodeID graft.ID = "adapter.ollama"

func init() {
	graft.Register(graft.Node[ports.FallbackClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.FallbackClient, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Fallback), nil
		},
	})
}
