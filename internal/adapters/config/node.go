package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.jot.dev/jot/internal/core/domain"
)

// NodeID is the unique identifier for the resolved configuration Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (domain.Config, error) {
			return NewLoader().Load(domain.DefaultConfigPath())
		},
	})
}
