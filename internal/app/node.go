package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.jot.dev/jot/internal/adapters/cache"  //nolint:depguard // Wired in app layer
	"go.jot.dev/jot/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.jot.dev/jot/internal/adapters/daemon" //nolint:depguard // Wired in app layer
	"go.jot.dev/jot/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.jot.dev/jot/internal/adapters/ollama" //nolint:depguard // Wired in app layer
	"go.jot.dev/jot/internal/adapters/store"  //nolint:depguard // Wired in app layer
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.jot.dev/jot/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cache.ExactNodeID,
			pipeline.NodeID,
			daemon.NodeID,
			store.NodeID,
			ollama.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			store.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	exact, err := graft.Dep[*cache.Exact](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	connector, err := graft.Dep[ports.DaemonConnector](ctx)
	if err != nil {
		return nil, err
	}

	taskStore, err := graft.Dep[ports.TaskStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	var fallback ports.FallbackClient
	if cfg.Fallback.Enabled {
		fallback, err = graft.Dep[ports.FallbackClient](ctx)
		if err != nil {
			return nil, err
		}
	}

	return New(parser, exact, connector, taskStore, fallback, cfg, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	taskStore, err := graft.Dep[ports.TaskStore](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    application,
		Logger: log,
		Config: cfg,
		Store:  taskStore,
	}, nil
}
