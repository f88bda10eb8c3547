package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.jot.dev/jot/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
)

// NodeID is the unique identifier for the task store Graft node.
const NodeID graft.ID = "adapter.store"

func init() {
	graft.Register(graft.Node[ports.TaskStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.TaskStore, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return Open(cfg.Store.Path)
		},
	})
}
