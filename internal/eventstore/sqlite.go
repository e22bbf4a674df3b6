package eventstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/webdoc/internal/foundation/errors"
)

// MemoryPath opens a private in-memory history.
const MemoryPath = ":memory:"

const historySchema = `
CREATE TABLE IF NOT EXISTS generation_events (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT    NOT NULL,
	event_type  TEXT    NOT NULL,
	recorded_ms INTEGER NOT NULL,
	payload     BLOB    NOT NULL,
	metadata    TEXT
);
CREATE INDEX IF NOT EXISTS idx_generation_events_run ON generation_events(run_id);
CREATE INDEX IF NOT EXISTS idx_generation_events_recorded ON generation_events(recorded_ms);
`

const selectEvents = `SELECT seq, run_id, event_type, recorded_ms, payload, metadata FROM generation_events`

// SQLiteStore keeps generation run events in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (creating when absent) the history database at dbPath.
// Missing parent directories are created. MemoryPath gives a throwaway store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, ErrDatabaseOpenFailed.Message()).
				WithContext("path", dbPath).
				Build()
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryEventStore, ErrDatabaseOpenFailed.Message()).
			WithContext("path", dbPath).
			Build()
	}
	// Every pooled connection to ":memory:" would get its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryEventStore, ErrInitializeSchemaFailed.Message()).
			WithContext("path", dbPath).
			Build()
	}
	return &SQLiteStore{db: db}, nil
}

// Append stores one event stamped with the current time.
func (s *SQLiteStore) Append(ctx context.Context, runID, eventType string, payload []byte, metadata map[string]string) error {
	var meta []byte
	if metadata != nil {
		var err error
		if meta, err = json.Marshal(metadata); err != nil {
			return errors.WrapError(err, errors.CategoryEventStore, ErrEventAppendFailed.Message()).
				WithContext("run_id", runID).
				Build()
		}
	}
	if payload == nil {
		payload = []byte{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generation_events (run_id, event_type, recorded_ms, payload, metadata) VALUES (?, ?, ?, ?, ?)`,
		runID, eventType, time.Now().UnixMilli(), payload, meta)
	if err != nil {
		return errors.WrapError(err, errors.CategoryEventStore, ErrEventAppendFailed.Message()).
			WithContext("run_id", runID).
			WithContext("event_type", eventType).
			Build()
	}
	return nil
}

// GetByRunID returns the events of one run in insertion order.
func (s *SQLiteStore) GetByRunID(ctx context.Context, runID string) ([]Event, error) {
	return s.query(ctx, selectEvents+` WHERE run_id = ? ORDER BY seq`, runID)
}

// GetRange returns events recorded within [start, end], millisecond precision.
func (s *SQLiteStore) GetRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	return s.query(ctx, selectEvents+` WHERE recorded_ms BETWEEN ? AND ? ORDER BY seq`,
		start.UnixMilli(), end.UnixMilli())
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryEventStore, ErrEventQueryFailed.Message()).Build()
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryEventStore, ErrEventQueryFailed.Message()).Build()
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (*BaseEvent, error) {
	var (
		ev       BaseEvent
		recorded int64
		meta     []byte
	)
	if err := rows.Scan(&ev.EventID, &ev.EventRunID, &ev.EventType, &recorded, &ev.EventPayload, &meta); err != nil {
		return nil, errors.WrapError(err, errors.CategoryEventStore, ErrEventQueryFailed.Message()).Build()
	}
	ev.EventTimestamp = time.UnixMilli(recorded)
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &ev.EventMetadata); err != nil {
			return nil, errors.WrapError(err, errors.CategoryEventStore, "corrupt event metadata").
				WithContext("run_id", ev.EventRunID).
				WithContext("seq", ev.EventID).
				Build()
		}
	}
	return &ev, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
