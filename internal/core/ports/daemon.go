package ports

import (
	"context"
	"time"

	"go.jot.dev/jot/internal/core/domain"
)

// DaemonStatus represents the current state of the resident process.
type DaemonStatus struct {
	Running       bool
	PID           int
	Uptime        time.Duration
	LastActivity  time.Time
	IdleRemaining time.Duration
	CacheLen      int
}

// DaemonClient defines the interface for talking to the resident process.
//
//go:generate mockgen -source=daemon.go -destination=mocks/mock_daemon.go -package=mocks
type DaemonClient interface {
	// Parse submits one raw-text parse command.
	Parse(ctx context.Context, raw string) (domain.ParsedResult, error)

	// Ping checks that the daemon is alive and resets its idle timer.
	Ping(ctx context.Context) error

	// Status returns the current daemon status.
	Status(ctx context.Context) (*DaemonStatus, error)

	// Shutdown requests a graceful daemon shutdown.
	Shutdown(ctx context.Context) error

	// Close releases client resources.
	Close() error
}

// DaemonConnector manages the daemon lifecycle from the CLI side.
type DaemonConnector interface {
	// Connect returns a client, spawning the daemon if necessary.
	Connect(ctx context.Context) (DaemonClient, error)

	// IsRunning checks if the daemon is running and responsive.
	IsRunning() bool

	// Spawn starts a new daemon process in the background.
	Spawn(ctx context.Context) error
}
