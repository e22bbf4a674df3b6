package eventstore

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.home.luguber.info/inful/webdoc/internal/foundation/errors"
)

const testRunID = "run-123"

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(MemoryPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEventStoreAppendAndRetrieve(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	payload := []byte(`{"test": "data"}`)
	if err := store.Append(ctx, testRunID, "TestEvent", payload, map[string]string{"key": "value"}); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}

	events, err := store.GetByRunID(ctx, testRunID)
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	event := events[0]
	if event.RunID() != testRunID {
		t.Errorf("expected run_id %s, got %s", testRunID, event.RunID())
	}
	if event.Type() != "TestEvent" {
		t.Errorf("expected event_type TestEvent, got %s", event.Type())
	}
	if !bytes.Equal(event.Payload(), payload) {
		t.Errorf("expected payload %s, got %s", payload, event.Payload())
	}
	if event.Metadata()["key"] != "value" {
		t.Errorf("expected metadata key=value, got %v", event.Metadata())
	}
}

func TestEventStoreGetRange(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	now := time.Now()

	for range 3 {
		if err := store.Append(ctx, "run-1", "Event", []byte("data"), nil); err != nil {
			t.Fatalf("failed to append event: %v", err)
		}
	}

	events, err := store.GetRange(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("failed to get range: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("expected 3 events, got %d", len(events))
	}

	events, err = store.GetRange(ctx, now.Add(-2*time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("failed to get range: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events before the run, got %d", len(events))
	}
}

func TestEventStoreMultipleRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	_ = store.Append(ctx, "run-1", "Event1", []byte("data1"), nil)
	_ = store.Append(ctx, "run-2", "Event2", []byte("data2"), nil)
	_ = store.Append(ctx, "run-1", "Event3", []byte("data3"), nil)

	events, err := store.GetByRunID(ctx, "run-1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events for run-1, got %d", len(events))
	}
	if events[1].Type() != "Event3" {
		t.Errorf("expected events in append order, got %s last", events[1].Type())
	}
}

func TestEventStoreCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history", "runs.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Append(t.Context(), testRunID, TypeGenerationStarted, []byte(`{}`), nil); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file at %s: %v", path, err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	events, err := reopened.GetByRunID(t.Context(), testRunID)
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 persisted event, got %d", len(events))
	}
}

func TestEventStoreClosedStoreReportsEventStoreError(t *testing.T) {
	store, err := NewSQLiteStore(MemoryPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	err = store.Append(t.Context(), testRunID, TypeGenerationStarted, nil, nil)
	if !errors.HasCategory(err, errors.CategoryEventStore) {
		t.Fatalf("expected eventstore error on append, got %v", err)
	}
	if _, err := store.GetByRunID(t.Context(), testRunID); !errors.HasCategory(err, errors.CategoryEventStore) {
		t.Fatalf("expected eventstore error on query, got %v", err)
	}
}
