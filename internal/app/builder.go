package app

import (
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
)

// Components contains all the initialized application components.
// It is the value the dependency graph resolves for the entry point.
type Components struct {
	App    *App
	Logger ports.Logger
	Config domain.Config
	Store  ports.TaskStore
}
