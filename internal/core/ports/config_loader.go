package ports

import "go.jot.dev/jot/internal/core/domain"

// ConfigLoader loads the application configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, applying defaults for
	// missing fields. A missing file yields the full defaults.
	Load(path string) (domain.Config, error)
}
