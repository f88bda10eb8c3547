package daemon_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.jot.dev/jot/internal/adapters/cache"
	"go.jot.dev/jot/internal/adapters/daemon"
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type serverFixture struct {
	cfg    domain.DaemonConfig
	parser *mocks.MockParser
	exact  *cache.Exact
	errCh  chan error
	done   chan struct{}
	cancel context.CancelFunc
}

func startServer(t *testing.T, idleTimeout time.Duration) *serverFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	cfg := domain.DaemonConfig{
		SocketPath:  filepath.Join(dir, "jot.sock"),
		PIDPath:     filepath.Join(dir, "jot.pid"),
		LogPath:     filepath.Join(dir, "daemon.log"),
		IdleTimeout: idleTimeout,
		GracePeriod: 3 * time.Second,
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	parser := mocks.NewMockParser(ctrl)
	exact := cache.NewExact(10)
	lifecycle := daemon.NewLifecycle(idleTimeout)
	server := daemon.NewServer(parser, exact, lifecycle, nil, cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		errCh <- server.Serve(ctx)
		close(done)
	}()

	// Wait for the socket to appear.
	require.Eventually(t, func() bool {
		_, err := os.Stat(cfg.SocketPath)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	return &serverFixture{cfg: cfg, parser: parser, exact: exact, errCh: errCh, done: done, cancel: cancel}
}

func TestServer_PingAndStatus(t *testing.T) {
	f := startServer(t, time.Hour)

	client, err := daemon.Dial(f.cfg.SocketPath)
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck // test cleanup

	require.NoError(t, client.Ping(context.Background()))

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.Equal(t, os.Getpid(), status.PID)
	assert.Equal(t, 0, status.CacheLen)
}

func TestServer_ParseRoundTrip(t *testing.T) {
	f := startServer(t, time.Hour)

	due := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	f.parser.EXPECT().
		Parse(gomock.Any(), "submit report tomorrow at 3pm").
		Return(domain.ParsedResult{
			Title:      "submit report",
			Due:        &due,
			Priority:   domain.PriorityMedium,
			Tier:       domain.TierPattern,
			Confidence: domain.ConfidenceFull,
		}, nil)

	client, err := daemon.Dial(f.cfg.SocketPath)
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck // test cleanup

	got, err := client.Parse(context.Background(), "submit report tomorrow at 3pm")
	require.NoError(t, err)
	assert.Equal(t, "submit report", got.Title)
	require.NotNil(t, got.Due)
	assert.True(t, due.Equal(*got.Due))
	assert.Equal(t, domain.TierPattern, got.Tier)
}

func TestServer_InvalidInputMapsAcrossTheWire(t *testing.T) {
	f := startServer(t, time.Hour)

	f.parser.EXPECT().
		Parse(gomock.Any(), gomock.Any()).
		Return(domain.ParsedResult{}, domain.ErrInvalidInput)

	client, err := daemon.Dial(f.cfg.SocketPath)
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck // test cleanup

	_, err = client.Parse(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestServer_SequentialRequestsOnOneConnection(t *testing.T) {
	f := startServer(t, time.Hour)

	f.parser.EXPECT().
		Parse(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, raw string) (domain.ParsedResult, error) {
			return domain.ParsedResult{Title: raw, Tier: domain.TierPattern, Confidence: domain.ConfidenceFull}, nil
		}).
		Times(3)

	client, err := daemon.Dial(f.cfg.SocketPath)
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck // test cleanup

	for _, raw := range []string{"first", "second", "third"} {
		got, err := client.Parse(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, raw, got.Title)
	}
}

func TestServer_ShutdownCommandStopsServer(t *testing.T) {
	f := startServer(t, time.Hour)

	client, err := daemon.Dial(f.cfg.SocketPath)
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck // test cleanup

	require.NoError(t, client.Shutdown(context.Background()))

	select {
	case err := <-f.errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after shutdown command")
	}

	// Socket and PID file are cleaned up.
	_, statErr := os.Stat(f.cfg.SocketPath)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(f.cfg.PIDPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestServer_RejectsConnectionsDuringDrain(t *testing.T) {
	f := startServer(t, time.Hour)

	// Keep one connection open so the drain window stays open for the
	// whole grace period.
	held, err := daemon.Dial(f.cfg.SocketPath)
	require.NoError(t, err)
	defer held.Close() //nolint:errcheck // test cleanup

	trigger, err := daemon.Dial(f.cfg.SocketPath)
	require.NoError(t, err)
	require.NoError(t, trigger.Shutdown(context.Background()))
	_ = trigger.Close()

	// A connection arriving inside the grace period gets an explicit
	// shutting-down rejection instead of a silent drop.
	var rejectErr error
	require.Eventually(t, func() bool {
		late, dialErr := daemon.Dial(f.cfg.SocketPath)
		if dialErr != nil {
			return false
		}
		defer late.Close() //nolint:errcheck // test cleanup
		rejectErr = late.Ping(context.Background())
		return errors.Is(rejectErr, domain.ErrShuttingDown)
	}, 2*time.Second, 20*time.Millisecond)
	assert.True(t, errors.Is(rejectErr, domain.ErrShuttingDown))
}

func TestServer_IdleTimeoutStopsServer(t *testing.T) {
	f := startServer(t, 100*time.Millisecond)

	select {
	case err := <-f.errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after idle timeout")
	}
}

func TestServer_WritesPIDFile(t *testing.T) {
	f := startServer(t, time.Hour)

	data, err := os.ReadFile(f.cfg.PIDPath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDial_NoSocketMapsToNotRunning(t *testing.T) {
	_, err := daemon.Dial(filepath.Join(t.TempDir(), "missing.sock"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDaemonNotRunning))
}
