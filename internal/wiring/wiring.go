// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.jot.dev/jot/internal/adapters/cache"
	_ "go.jot.dev/jot/internal/adapters/config"
	_ "go.jot.dev/jot/internal/adapters/daemon"
	_ "go.jot.dev/jot/internal/adapters/logger"
	_ "go.jot.dev/jot/internal/adapters/ollama"
	_ "go.jot.dev/jot/internal/adapters/store"
	// Register app and engine nodes.
	_ "go.jot.dev/jot/internal/app"
	_ "go.jot.dev/jot/internal/engine/pipeline"
)
