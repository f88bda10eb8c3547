// Package app implements the application layer for jot.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.jot.dev/jot/internal/adapters/cache"
	"go.jot.dev/jot/internal/adapters/daemon"
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	parser    ports.Parser
	exact     *cache.Exact
	connector ports.DaemonConnector
	store     ports.TaskStore
	fallback  ports.FallbackClient
	cfg       domain.Config
	logger    ports.Logger
	out       io.Writer
}

// New creates a new App instance.
func New(
	parser ports.Parser,
	exact *cache.Exact,
	connector ports.DaemonConnector,
	store ports.TaskStore,
	fallback ports.FallbackClient,
	cfg domain.Config,
	log ports.Logger,
) *App {
	return &App{
		parser:    parser,
		exact:     exact,
		connector: connector,
		store:     store,
		fallback:  fallback,
		cfg:       cfg,
		logger:    log,
		out:       os.Stdout,
	}
}

// WithOutput redirects command output. Used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// ParseOptions configuration for the Parse and Add methods.
type ParseOptions struct {
	NoDaemon bool
}

// Parse turns one raw input into a task record, preferring the resident
// daemon for its warm caches and falling back to an in-process parse
// when the daemon is unavailable.
func (a *App) Parse(ctx context.Context, raw string, opts ParseOptions) (domain.ParsedResult, error) {
	result, err := a.parse(ctx, raw, opts)
	if err != nil {
		return domain.ParsedResult{}, err
	}
	return result, a.printResult(result)
}

// Add parses raw input and durably stores the accepted record.
func (a *App) Add(ctx context.Context, raw string, opts ParseOptions) error {
	result, err := a.parse(ctx, raw, opts)
	if err != nil {
		return err
	}

	id, err := a.store.Save(ctx, raw, result)
	if err != nil {
		return zerr.Wrap(err, "failed to store task")
	}

	if err := a.printResult(result); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "saved task %d\n", id)
	return nil
}

func (a *App) parse(ctx context.Context, raw string, opts ParseOptions) (domain.ParsedResult, error) {
	if !opts.NoDaemon && a.connector != nil {
		result, err := a.parseViaDaemon(ctx, raw)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return domain.ParsedResult{}, err
		}
		a.logger.Warn(fmt.Sprintf("daemon parse failed, parsing locally: %v", err))
	}

	return a.parser.Parse(ctx, raw)
}

func (a *App) parseViaDaemon(ctx context.Context, raw string) (domain.ParsedResult, error) {
	client, err := a.connector.Connect(ctx)
	if err != nil {
		return domain.ParsedResult{}, err
	}
	defer func() { _ = client.Close() }()

	return client.Parse(ctx, raw)
}

// ServeDaemon runs the resident front in the current process until the
// context is canceled, the idle timeout fires, or a shutdown command
// arrives. Logs are redirected to the daemon log file for the lifetime
// of the server.
func (a *App) ServeDaemon(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.Daemon.LogPath), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create daemon directory")
	}
	logFile, err := os.OpenFile(a.cfg.Daemon.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.PrivateFilePerm)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("cannot open daemon log, logging to stderr: %v", err))
	} else {
		a.logger.SetOutput(logFile)
		defer func() { _ = logFile.Close() }()
	}

	lifecycle := daemon.NewLifecycle(a.cfg.Daemon.IdleTimeout)
	warmer := daemon.NewWarmer(a.fallback, a.store, a.exact, a.cfg.Cache.WarmTopK, a.logger)
	server := daemon.NewServer(a.parser, a.exact, lifecycle, warmer, a.cfg.Daemon, a.logger)
	return server.Serve(ctx)
}

// DaemonStatus prints whether the daemon is running and its vitals.
func (a *App) DaemonStatus(ctx context.Context) error {
	if a.connector != nil && !a.connector.IsRunning() {
		_, _ = fmt.Fprintln(a.out, "daemon: not running")
		return nil
	}

	client, err := daemon.Dial(a.cfg.Daemon.SocketPath)
	if err != nil {
		if errors.Is(err, domain.ErrDaemonNotRunning) {
			_, _ = fmt.Fprintln(a.out, "daemon: not running")
			return nil
		}
		return err
	}
	defer func() { _ = client.Close() }()

	status, err := client.Status(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to query daemon status")
	}

	_, _ = fmt.Fprintf(a.out, "daemon: running (pid %d)\n", status.PID)
	_, _ = fmt.Fprintf(a.out, "  uptime:         %s\n", status.Uptime.Round(time.Second))
	_, _ = fmt.Fprintf(a.out, "  last activity:  %s\n", status.LastActivity.Format(time.RFC3339))
	_, _ = fmt.Fprintf(a.out, "  idle shutdown:  in %s\n", status.IdleRemaining.Round(time.Second))
	_, _ = fmt.Fprintf(a.out, "  cached entries: %d\n", status.CacheLen)
	return nil
}

// StopDaemon asks a running daemon to drain and exit.
func (a *App) StopDaemon(ctx context.Context) error {
	client, err := daemon.Dial(a.cfg.Daemon.SocketPath)
	if err != nil {
		if errors.Is(err, domain.ErrDaemonNotRunning) {
			_, _ = fmt.Fprintln(a.out, "daemon: not running")
			return nil
		}
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Shutdown(ctx); err != nil {
		return zerr.Wrap(err, "failed to stop daemon")
	}
	_, _ = fmt.Fprintln(a.out, "daemon: stopping")
	return nil
}

func (a *App) printResult(result domain.ParsedResult) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return zerr.Wrap(err, "failed to render result")
	}
	return nil
}
