package domain

import "time"

// Config is the resolved application configuration. Loading and default
// application live in the config adapter; this type carries no YAML tags.
type Config struct {
	Cache    CacheConfig
	Fallback FallbackConfig
	Daemon   DaemonConfig
	Store    StoreConfig
}

// CacheConfig configures the exact cache and fuzzy matcher.
type CacheConfig struct {
	// Capacity bounds the exact cache; least-recently-used entries are
	// evicted beyond it.
	Capacity int
	// FuzzyThreshold is the minimum similarity in (0,1] for a fuzzy hit.
	FuzzyThreshold float64
	// MinTitleLen is the minimum cleaned-title length (in runes) for the
	// pattern tier to be sufficient when no other field was extracted.
	MinTitleLen int
	// WarmTopK is how many frequent prior entries the warmer preloads.
	WarmTopK int
}

// FallbackConfig configures the slow generative fallback client.
type FallbackConfig struct {
	Enabled bool
	BaseURL string
	Model   string
	// Timeout bounds a normal fallback call.
	Timeout time.Duration
	// ColdTimeout bounds the first (warm-up) call, which may pay
	// model-load latency.
	ColdTimeout time.Duration
}

// DaemonConfig configures the resident process.
type DaemonConfig struct {
	SocketPath string
	PIDPath    string
	LogPath    string
	// IdleTimeout auto-stops the daemon after inactivity.
	IdleTimeout time.Duration
	// GracePeriod bounds how long in-flight requests may finish during
	// shutdown before connections are force-closed.
	GracePeriod time.Duration
}

// StoreConfig configures the persistent task store.
type StoreConfig struct {
	Path string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Capacity:       1000,
			FuzzyThreshold: 0.85,
			MinTitleLen:    20,
			WarmTopK:       100,
		},
		Fallback: FallbackConfig{
			Enabled:     true,
			BaseURL:     "http://localhost:11434",
			Model:       "qwen2.5:7b",
			Timeout:     800 * time.Millisecond,
			ColdTimeout: 15 * time.Second,
		},
		Daemon: DaemonConfig{
			SocketPath:  DefaultSocketPath(),
			PIDPath:     DefaultPIDPath(),
			LogPath:     DefaultDaemonLogPath(),
			IdleTimeout: 30 * time.Minute,
			GracePeriod: 5 * time.Second,
		},
		Store: StoreConfig{
			Path: DefaultStorePath(),
		},
	}
}
