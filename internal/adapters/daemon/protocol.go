// Package daemon implements the resident front: a long-lived process
// holding the warmed caches and fallback client, serving parse commands
// over a unix domain socket with a newline-framed JSON protocol.
package daemon

import (
	"go.jot.dev/jot/internal/core/domain"
)

// Commands understood by the resident front.
const (
	CommandParse    = "parse"
	CommandPing     = "ping"
	CommandStatus   = "status"
	CommandShutdown = "shutdown"
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Error kinds carried in error responses, mapped back to domain
// sentinels on the client side.
const (
	ErrorKindInvalidInput   = "invalid_input"
	ErrorKindShuttingDown   = "shutting_down"
	ErrorKindUnknownCommand = "unknown_command"
	ErrorKindInternal       = "internal"
)

// Request is one framed client command. Frames are newline-delimited
// JSON; requests on a single connection are served in arrival order.
type Request struct {
	Command string `json:"command"`
	RawText string `json:"raw_text,omitempty"`
}

// StatusInfo reports the resident process state.
type StatusInfo struct {
	PID                  int   `json:"pid"`
	UptimeSeconds        int64 `json:"uptime_seconds"`
	LastActivityUnix     int64 `json:"last_activity_unix"`
	IdleRemainingSeconds int64 `json:"idle_remaining_seconds"`
	CacheLen             int   `json:"cache_len"`
}

// Response is one framed server answer.
type Response struct {
	Status    string               `json:"status"`
	Result    *domain.ParsedResult `json:"result,omitempty"`
	Info      *StatusInfo          `json:"info,omitempty"`
	ErrorKind string               `json:"error,omitempty"`
	Message   string               `json:"message,omitempty"`
}

// errorResponse builds an error frame.
func errorResponse(kind, message string) Response {
	return Response{Status: StatusError, ErrorKind: kind, Message: message}
}
