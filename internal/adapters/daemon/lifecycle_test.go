package daemon_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.jot.dev/jot/internal/adapters/daemon"
)

func TestLifecycle_IdleTimeoutFires(t *testing.T) {
	l := daemon.NewLifecycle(50 * time.Millisecond)

	select {
	case <-l.ShutdownChan():
	case <-time.After(2 * time.Second):
		t.Fatal("idle timeout never fired")
	}
}

func TestLifecycle_TouchResetsTimer(t *testing.T) {
	l := daemon.NewLifecycle(150 * time.Millisecond)

	// Keep touching for longer than the timeout; it must not fire.
	deadline := time.Now().Add(400 * time.Millisecond)
	for time.Now().Before(deadline) {
		l.Touch()
		select {
		case <-l.ShutdownChan():
			t.Fatal("shutdown fired despite activity")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestLifecycle_ShutdownIdempotent(t *testing.T) {
	l := daemon.NewLifecycle(time.Hour)

	l.Shutdown()
	l.Shutdown()

	select {
	case <-l.ShutdownChan():
	default:
		t.Fatal("shutdown channel not closed")
	}
}

func TestLifecycle_DisabledTimeout(t *testing.T) {
	l := daemon.NewLifecycle(0)

	assert.Equal(t, time.Duration(0), l.IdleRemaining())
	select {
	case <-l.ShutdownChan():
		t.Fatal("shutdown fired with auto-shutdown disabled")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLifecycle_Vitals(t *testing.T) {
	l := daemon.NewLifecycle(time.Hour)

	l.Touch()

	assert.GreaterOrEqual(t, l.Uptime(), time.Duration(0))
	assert.False(t, l.LastActivity().IsZero())
	remaining := l.IdleRemaining()
	assert.Greater(t, remaining, 59*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)
}
