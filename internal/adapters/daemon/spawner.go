package daemon

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	pollInterval    = 100 * time.Millisecond
	maxPollDuration = 5 * time.Second
)

// Connector implements ports.DaemonConnector. It spawns the current
// binary in daemon mode and waits for the socket to answer.
type Connector struct {
	executablePath string
	cfg            domain.DaemonConfig
}

var _ ports.DaemonConnector = (*Connector)(nil)

// NewConnector creates a daemon connector for the current binary.
func NewConnector(cfg domain.DaemonConfig) (*Connector, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine executable path")
	}
	return &Connector{executablePath: exe, cfg: cfg}, nil
}

// Connect returns a client, spawning the daemon if necessary.
func (c *Connector) Connect(ctx context.Context) (ports.DaemonClient, error) {
	client, err := Dial(c.cfg.SocketPath)
	if err == nil {
		if pingErr := client.Ping(ctx); pingErr == nil {
			return client, nil
		}
		_ = client.Close()
	}

	if spawnErr := c.Spawn(ctx); spawnErr != nil {
		return nil, spawnErr
	}

	client, err = Dial(c.cfg.SocketPath)
	if err != nil {
		return nil, zerr.Wrap(err, "daemon client creation failed")
	}

	if pingErr := client.Ping(ctx); pingErr != nil {
		_ = client.Close()
		return nil, zerr.Wrap(pingErr, "daemon started but is not responsive")
	}

	return client, nil
}

// IsRunning checks if the daemon is running and responsive.
func (c *Connector) IsRunning() bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	return c.isRunningWithCtx(ctx)
}

func (c *Connector) isRunningWithCtx(ctx context.Context) bool {
	client, err := Dial(c.cfg.SocketPath)
	if err != nil {
		return false
	}
	defer func() { _ = client.Close() }()

	return client.Ping(ctx) == nil
}

// Spawn starts the daemon process in the background, detached from the
// caller's session so it survives the CLI invocation.
func (c *Connector) Spawn(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(c.cfg.SocketPath), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create daemon directory")
	}

	//nolint:gosec // G304: log path comes from config, not request input
	logFile, err := os.OpenFile(c.cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.PrivateFilePerm)
	if err != nil {
		return zerr.Wrap(err, "failed to open daemon log")
	}

	//nolint:gosec // G204: executablePath is controlled, args are fixed literals
	cmd := exec.Command(c.executablePath, "daemon", "serve")
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		return zerr.Wrap(err, "failed to spawn daemon")
	}

	go func() {
		_ = cmd.Wait()
		_ = logFile.Close()
	}()

	return c.waitForDaemonStartup(ctx)
}

// waitForDaemonStartup polls the socket until the daemon answers.
func (c *Connector) waitForDaemonStartup(ctx context.Context) error {
	start := time.Now()
	for time.Since(start) < maxPollDuration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if c.isRunningWithCtx(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return zerr.New("daemon failed to start within timeout")
}
