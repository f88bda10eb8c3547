// Package store persists accepted task records in a local SQLite
// database and answers frequency queries used to warm the cache.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.trai.ch/zerr"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	raw_input       TEXT NOT NULL,
	normalized_key  TEXT NOT NULL,
	fingerprint     INTEGER NOT NULL,
	title           TEXT NOT NULL,
	due_at          TEXT,
	priority        INTEGER NOT NULL,
	priority_set    INTEGER NOT NULL DEFAULT 0,
	tags            TEXT NOT NULL DEFAULT '[]',
	tier            TEXT NOT NULL,
	confidence      TEXT NOT NULL,
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_key ON tasks(normalized_key);
`

// SQLite stores task records in a single-file database.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.TaskStore = (*SQLite)(nil)

// Open opens (and if needed creates) the database at path.
func Open(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create store directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open task store")
	}
	// Single writer keeps modernc/sqlite away from SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, "failed to initialize task store schema")
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// Save records one accepted parse and returns the new row ID.
func (s *SQLite) Save(ctx context.Context, raw string, result domain.ParsedResult) (int64, error) {
	key, err := domain.Normalize(raw)
	if err != nil {
		return 0, err
	}

	tags, err := json.Marshal(result.Tags)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to encode tags")
	}

	var due any
	if result.Due != nil {
		due = result.Due.Format(time.RFC3339)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (raw_input, normalized_key, fingerprint, title, due_at,
			priority, priority_set, tags, tier, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		raw,
		string(key),
		int64(key.Fingerprint()), //nolint:gosec // G115: stored as raw bits
		result.Title,
		due,
		int(result.Priority),
		boolToInt(result.PriorityExplicit),
		string(tags),
		string(result.Tier),
		string(result.Confidence),
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to save task")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, zerr.Wrap(err, "failed to read task id")
	}
	return id, nil
}

// TopEntries returns cache entries for the k most frequently saved
// inputs, most frequent first. Each entry carries the latest stored
// result for its key.
func (s *SQLite) TopEntries(ctx context.Context, k int) ([]domain.CacheEntry, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT normalized_key, title, due_at, priority, priority_set,
			tags, tier, confidence, COUNT(*) AS hits, MAX(created_at)
		FROM tasks
		GROUP BY normalized_key
		ORDER BY hits DESC, MAX(id) DESC
		LIMIT ?`, k)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to query top tasks")
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var entries []domain.CacheEntry
	for rows.Next() {
		var (
			key, title, tags, tier, confidence, createdAt string
			due                                           sql.NullString
			priority, prioritySet, hits                   int
		)
		if err := rows.Scan(&key, &title, &due, &priority, &prioritySet,
			&tags, &tier, &confidence, &hits, &createdAt); err != nil {
			return nil, zerr.Wrap(err, "failed to scan task row")
		}

		entry, err := buildEntry(key, title, due, priority, prioritySet, tags, tier, confidence, hits, createdAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to iterate task rows")
	}
	return entries, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func buildEntry(
	key, title string,
	due sql.NullString,
	priority, prioritySet int,
	tags, tier, confidence string,
	hits int,
	createdAt string,
) (domain.CacheEntry, error) {
	result := domain.ParsedResult{
		Title:            title,
		Priority:         domain.Priority(priority),
		PriorityExplicit: prioritySet != 0,
		Tier:             domain.Tier(tier),
		Confidence:       domain.Confidence(confidence),
	}

	if due.Valid {
		t, err := time.Parse(time.RFC3339, due.String)
		if err != nil {
			return domain.CacheEntry{}, zerr.Wrap(err, "failed to parse stored due date")
		}
		result.Due = &t
	}

	if err := json.Unmarshal([]byte(tags), &result.Tags); err != nil {
		return domain.CacheEntry{}, zerr.Wrap(err, "failed to decode stored tags")
	}

	last, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.CacheEntry{}, zerr.Wrap(err, "failed to parse stored timestamp")
	}

	return domain.CacheEntry{
		Key:        domain.NormalizedKey(key),
		Result:     result,
		LastAccess: last,
		Hits:       hits,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
