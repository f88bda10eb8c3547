package domain

import (
	"os"
	"path/filepath"
)

const (
	// JotDirName is the name of the per-user jot data directory.
	JotDirName = ".jot"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"

	// SocketFileName is the name of the daemon's unix socket.
	SocketFileName = "jot.sock"

	// PIDFileName is the name of the daemon's PID file.
	PIDFileName = "jot.pid"

	// DaemonLogFile is the name of the daemon log file.
	DaemonLogFile = "daemon.log"

	// StoreFileName is the name of the task database file.
	StoreFileName = "jot.db"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// SocketPerm is the permission for the daemon socket (rw-------).
	SocketPerm = 0o600
)

// JotDir returns the root directory for jot metadata, honoring JOT_DIR.
// Falls back to the current directory when no home directory is available.
func JotDir() string {
	if dir := os.Getenv("JOT_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return JotDirName
	}
	return filepath.Join(home, JotDirName)
}

// DefaultConfigPath returns the default path of the configuration file.
func DefaultConfigPath() string {
	if path := os.Getenv("JOT_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(JotDir(), ConfigFileName)
}

// DefaultSocketPath returns the default path of the daemon socket.
// Absence of this file signals that no resident process is running.
func DefaultSocketPath() string {
	return filepath.Join(JotDir(), SocketFileName)
}

// DefaultPIDPath returns the default path of the daemon PID file.
func DefaultPIDPath() string {
	return filepath.Join(JotDir(), PIDFileName)
}

// DefaultDaemonLogPath returns the default path of the daemon log file.
func DefaultDaemonLogPath() string {
	return filepath.Join(JotDir(), DaemonLogFile)
}

// DefaultStorePath returns the default path of the task database.
func DefaultStorePath() string {
	return filepath.Join(JotDir(), StoreFileName)
}
