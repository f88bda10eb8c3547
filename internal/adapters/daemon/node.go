package daemon

import (
	"context"

	"github.com/grindlemire/graft"
	"go.jot.dev/jot/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
)

// NodeID is the unique identifier for the daemon connector Graft node.
const NodeID graft.ID = "adapter.daemon"

func init() {
	graft.Register(graft.Node[ports.DaemonConnector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.DaemonConnector, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewConnector(cfg.Daemon)
		},
	})
}
