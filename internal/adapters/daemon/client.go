package daemon

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.trai.ch/zerr"
)

// dialTimeout bounds the initial socket connect.
const dialTimeout = 2 * time.Second

// Client talks to a running daemon over its unix socket. One client owns
// one connection; requests are framed JSON served in order.
type Client struct {
	conn    net.Conn
	encoder *json.Encoder
	decoder *json.Decoder
}

var _ ports.DaemonClient = (*Client)(nil)

// Dial connects to the daemon socket. A refused or missing socket maps
// to ErrDaemonNotRunning so callers can fall through to local parsing.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrDaemonNotRunning, err.Error())
	}
	return &Client{
		conn:    conn,
		encoder: json.NewEncoder(conn),
		decoder: json.NewDecoder(conn),
	}, nil
}

// Parse sends raw text to the daemon and returns the parsed record.
func (c *Client) Parse(ctx context.Context, raw string) (domain.ParsedResult, error) {
	resp, err := c.roundTrip(ctx, Request{Command: CommandParse, RawText: raw})
	if err != nil {
		return domain.ParsedResult{}, err
	}
	if resp.Result == nil {
		return domain.ParsedResult{}, zerr.New("daemon returned no result")
	}
	return *resp.Result, nil
}

// Ping checks that the daemon answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.roundTrip(ctx, Request{Command: CommandPing})
	return err
}

// Status reports the daemon's runtime state.
func (c *Client) Status(ctx context.Context) (*ports.DaemonStatus, error) {
	resp, err := c.roundTrip(ctx, Request{Command: CommandStatus})
	if err != nil {
		return nil, err
	}
	if resp.Info == nil {
		return nil, zerr.New("daemon returned no status info")
	}
	return &ports.DaemonStatus{
		Running:       true,
		PID:           resp.Info.PID,
		Uptime:        time.Duration(resp.Info.UptimeSeconds) * time.Second,
		LastActivity:  time.Unix(resp.Info.LastActivityUnix, 0),
		IdleRemaining: time.Duration(resp.Info.IdleRemainingSeconds) * time.Second,
		CacheLen:      resp.Info.CacheLen,
	}, nil
}

// Shutdown asks the daemon to drain and exit.
func (c *Client) Shutdown(ctx context.Context) error {
	_, err := c.roundTrip(ctx, Request{Command: CommandShutdown})
	return err
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// roundTrip writes one frame and reads one frame, honoring the context
// deadline via the connection deadline.
func (c *Client) roundTrip(ctx context.Context, req Request) (Response, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetDeadline(deadline)
		defer c.conn.SetDeadline(time.Time{}) //nolint:errcheck // best effort
	}

	if err := c.encoder.Encode(req); err != nil {
		return Response{}, zerr.Wrap(domain.ErrDaemonNotRunning, err.Error())
	}

	var resp Response
	if err := c.decoder.Decode(&resp); err != nil {
		return Response{}, zerr.Wrap(domain.ErrDaemonNotRunning, err.Error())
	}

	if resp.Status == StatusError {
		return Response{}, decodeError(resp)
	}
	return resp, nil
}

// decodeError maps a wire error kind back to its domain sentinel.
func decodeError(resp Response) error {
	switch resp.ErrorKind {
	case ErrorKindInvalidInput:
		return zerr.Wrap(domain.ErrInvalidInput, resp.Message)
	case ErrorKindShuttingDown:
		return zerr.Wrap(domain.ErrShuttingDown, resp.Message)
	default:
		return zerr.With(zerr.New(resp.Message), "kind", resp.ErrorKind)
	}
}
