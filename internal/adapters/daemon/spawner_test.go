package daemon_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.jot.dev/jot/internal/adapters/daemon"
	"go.jot.dev/jot/internal/core/domain"
)

func TestConnector_IsRunningFalseWithoutSocket(t *testing.T) {
	c, err := daemon.NewConnector(domain.DaemonConfig{
		SocketPath:  filepath.Join(t.TempDir(), "jot.sock"),
		IdleTimeout: time.Minute,
	})
	require.NoError(t, err)

	assert.False(t, c.IsRunning())
}

func TestConnector_IsRunningTrueAgainstLiveServer(t *testing.T) {
	f := startServer(t, time.Hour)

	c, err := daemon.NewConnector(f.cfg)
	require.NoError(t, err)

	assert.True(t, c.IsRunning())
}

func TestConnector_ConnectReusesRunningDaemon(t *testing.T) {
	f := startServer(t, time.Hour)

	c, err := daemon.NewConnector(f.cfg)
	require.NoError(t, err)

	client, err := c.Connect(t.Context())
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck // test cleanup

	require.NoError(t, client.Ping(t.Context()))
}
