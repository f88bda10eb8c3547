// Package config provides the YAML configuration loader for jot.
package config

import (
	"os"
	"time"

	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// jotfile represents the structure of the config.yaml file. All fields
// are optional; missing fields keep their defaults.
type jotfile struct {
	Cache    cacheDTO    `yaml:"cache"`
	Fallback fallbackDTO `yaml:"fallback"`
	Daemon   daemonDTO   `yaml:"daemon"`
	Store    storeDTO    `yaml:"store"`
}

type cacheDTO struct {
	Capacity       *int     `yaml:"capacity"`
	FuzzyThreshold *float64 `yaml:"fuzzy_threshold"`
	MinTitleLen    *int     `yaml:"min_title_len"`
	WarmTopK       *int     `yaml:"warm_top_k"`
}

type fallbackDTO struct {
	Enabled       *bool  `yaml:"enabled"`
	BaseURL       string `yaml:"base_url"`
	Model         string `yaml:"model"`
	TimeoutMs     *int   `yaml:"timeout_ms"`
	ColdTimeoutMs *int   `yaml:"cold_timeout_ms"`
}

type daemonDTO struct {
	Socket      string `yaml:"socket"`
	IdleTimeout string `yaml:"idle_timeout"`
	GracePeriod string `yaml:"grace_period"`
}

type storeDTO struct {
	Path string `yaml:"path"`
}

// Loader implements ports.ConfigLoader.
type Loader struct{}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configuration file at path and merges it over the
// defaults. A missing file is not an error: it yields the full defaults.
func (l *Loader) Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, zerr.Wrap(err, "failed to read config file")
	}

	var file jotfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, zerr.Wrap(err, "failed to parse config file")
	}

	applyCache(&cfg.Cache, file.Cache)
	applyFallback(&cfg.Fallback, file.Fallback)
	if err := applyDaemon(&cfg.Daemon, file.Daemon); err != nil {
		return cfg, err
	}
	if file.Store.Path != "" {
		cfg.Store.Path = file.Store.Path
	}

	if cfg.Cache.FuzzyThreshold <= 0 || cfg.Cache.FuzzyThreshold > 1 {
		return cfg, zerr.With(zerr.New("fuzzy_threshold must be in (0,1]"),
			"fuzzy_threshold", cfg.Cache.FuzzyThreshold)
	}
	if cfg.Cache.Capacity <= 0 {
		return cfg, zerr.With(zerr.New("cache capacity must be positive"),
			"capacity", cfg.Cache.Capacity)
	}

	return cfg, nil
}

func applyCache(cfg *domain.CacheConfig, dto cacheDTO) {
	if dto.Capacity != nil {
		cfg.Capacity = *dto.Capacity
	}
	if dto.FuzzyThreshold != nil {
		cfg.FuzzyThreshold = *dto.FuzzyThreshold
	}
	if dto.MinTitleLen != nil {
		cfg.MinTitleLen = *dto.MinTitleLen
	}
	if dto.WarmTopK != nil {
		cfg.WarmTopK = *dto.WarmTopK
	}
}

func applyFallback(cfg *domain.FallbackConfig, dto fallbackDTO) {
	if dto.Enabled != nil {
		cfg.Enabled = *dto.Enabled
	}
	if dto.BaseURL != "" {
		cfg.BaseURL = dto.BaseURL
	}
	if dto.Model != "" {
		cfg.Model = dto.Model
	}
	if dto.TimeoutMs != nil {
		cfg.Timeout = time.Duration(*dto.TimeoutMs) * time.Millisecond
	}
	if dto.ColdTimeoutMs != nil {
		cfg.ColdTimeout = time.Duration(*dto.ColdTimeoutMs) * time.Millisecond
	}
}

func applyDaemon(cfg *domain.DaemonConfig, dto daemonDTO) error {
	if dto.Socket != "" {
		cfg.SocketPath = dto.Socket
	}
	if dto.IdleTimeout != "" {
		d, err := time.ParseDuration(dto.IdleTimeout)
		if err != nil {
			return zerr.Wrap(err, "invalid daemon idle_timeout")
		}
		cfg.IdleTimeout = d
	}
	if dto.GracePeriod != "" {
		d, err := time.ParseDuration(dto.GracePeriod)
		if err != nil {
			return zerr.Wrap(err, "invalid daemon grace_period")
		}
		cfg.GracePeriod = d
	}
	return nil
}
