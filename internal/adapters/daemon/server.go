package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.jot.dev/jot/internal/adapters/cache"
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Server is the resident front. It owns the listener and connection
// tasks; the parse pipeline and caches are shared state constructed at
// startup and borrowed by every connection.
type Server struct {
	parser    ports.Parser
	cache     *cache.Exact
	lifecycle *Lifecycle
	warmer    *Warmer
	cfg       domain.DaemonConfig
	log       ports.Logger

	listener net.Listener
	draining atomic.Bool
	conns    sync.Map // net.Conn -> struct{}
	wg       sync.WaitGroup
}

// NewServer creates a daemon server. warmer may be nil.
func NewServer(
	parser ports.Parser,
	exact *cache.Exact,
	lifecycle *Lifecycle,
	warmer *Warmer,
	cfg domain.DaemonConfig,
	log ports.Logger,
) *Server {
	return &Server{
		parser:    parser,
		cache:     exact,
		lifecycle: lifecycle,
		warmer:    warmer,
		cfg:       cfg,
		log:       log,
	}
}

// Serve binds the unix socket and serves connections until the context
// is canceled or the lifecycle triggers shutdown. In-flight requests get
// the configured grace period; connections arriving during the drain are
// rejected with an explicit shutting-down status.
func (s *Server) Serve(ctx context.Context) error {
	socketPath := s.cfg.SocketPath

	if err := os.MkdirAll(filepath.Dir(socketPath), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create daemon directory")
	}
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return zerr.Wrap(err, "failed to remove stale socket")
	}

	lis, err := net.Listen("unix", socketPath)
	if err != nil {
		return zerr.Wrap(err, "failed to listen on unix socket")
	}
	s.listener = lis

	if err := os.Chmod(socketPath, domain.SocketPerm); err != nil {
		_ = lis.Close()
		return zerr.Wrap(err, "failed to set socket permissions")
	}
	if err := s.writePIDFile(); err != nil {
		_ = lis.Close()
		return err
	}
	defer s.cleanup()

	s.log.Info(fmt.Sprintf("daemon listening on %s", socketPath))

	g, gctx := errgroup.WithContext(ctx)

	if s.warmer != nil {
		// Detached: warm-up failure is logged inside Run, never fatal.
		warmCtx, cancelWarm := context.WithCancel(gctx)
		defer cancelWarm()
		go s.warmer.Run(warmCtx)
	}

	g.Go(func() error {
		return s.acceptLoop(gctx)
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.lifecycle.ShutdownChan():
			s.log.Info("idle timeout or shutdown request, draining")
		}
		s.drain()
		return nil
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// acceptLoop accepts connections until the listener closes. During the
// drain window new connections get an explicit rejection instead of a
// silent drop.
func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return zerr.Wrap(err, "accept failed")
		}

		if s.draining.Load() {
			s.reject(conn)
			continue
		}

		s.wg.Add(1)
		s.conns.Store(conn, struct{}{})
		go func() {
			defer s.wg.Done()
			defer s.conns.Delete(conn)
			defer conn.Close() //nolint:errcheck // best effort
			s.handleConn(ctx, conn)
		}()
	}
}

// drain stops admitting work, waits out the grace period for in-flight
// requests, then force-closes whatever remains.
func (s *Server) drain() {
	s.draining.Store(true)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.cfg.GracePeriod):
		s.log.Warn("grace period elapsed, force-closing connections")
		s.conns.Range(func(key, _ any) bool {
			_ = key.(net.Conn).Close()
			return true
		})
	}

	_ = s.listener.Close()
}

// reject answers a connection arriving during shutdown with an explicit
// status so the caller can retry or run without the resident process.
func (s *Server) reject(conn net.Conn) {
	defer conn.Close() //nolint:errcheck // best effort
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	resp := errorResponse(ErrorKindShuttingDown, "daemon is shutting down")
	_ = json.NewEncoder(conn).Encode(resp)
}

// handleConn serves one connection. Frames are handled strictly in
// arrival order; a client disconnect terminates only this task.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.log.Warn(fmt.Sprintf("dropping connection: %v", err))
			}
			return
		}

		resp, shutdown := s.handleRequest(ctx, req)
		if err := encoder.Encode(resp); err != nil {
			return
		}
		if shutdown {
			s.lifecycle.Shutdown()
			return
		}
	}
}

// handleRequest dispatches one command. The second return value requests
// a daemon shutdown after the response has been written.
func (s *Server) handleRequest(ctx context.Context, req Request) (Response, bool) {
	s.lifecycle.Touch()

	switch req.Command {
	case CommandParse:
		result, err := s.parser.Parse(ctx, req.RawText)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				return errorResponse(ErrorKindInvalidInput, err.Error()), false
			}
			s.log.Error(err)
			return errorResponse(ErrorKindInternal, err.Error()), false
		}
		return Response{Status: StatusOK, Result: &result}, false

	case CommandPing:
		return Response{Status: StatusOK}, false

	case CommandStatus:
		return Response{Status: StatusOK, Info: s.status()}, false

	case CommandShutdown:
		return Response{Status: StatusOK}, true

	default:
		return errorResponse(ErrorKindUnknownCommand, fmt.Sprintf("unknown command %q", req.Command)), false
	}
}

func (s *Server) status() *StatusInfo {
	return &StatusInfo{
		PID:                  os.Getpid(),
		UptimeSeconds:        int64(s.lifecycle.Uptime().Seconds()),
		LastActivityUnix:     s.lifecycle.LastActivity().Unix(),
		IdleRemainingSeconds: int64(s.lifecycle.IdleRemaining().Seconds()),
		CacheLen:             s.cache.Len(),
	}
}

func (s *Server) writePIDFile() error {
	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(s.cfg.PIDPath, []byte(pid), domain.PrivateFilePerm); err != nil {
		return zerr.Wrap(err, "failed to write PID file")
	}
	return nil
}

func (s *Server) cleanup() {
	_ = os.Remove(s.cfg.SocketPath)
	_ = os.Remove(s.cfg.PIDPath)
}
