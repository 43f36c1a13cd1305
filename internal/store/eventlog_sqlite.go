package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Event is one applied command, recorded for `memopad events`.
type Event struct {
	ID       string          `json:"id"`
	TS       time.Time       `json:"ts"`
	Type     string          `json:"type"`
	EntityID string          `json:"entityId"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// EventLog is an append-only history of document mutations in a sqlite file
// next to the document. It is strictly best-effort: callers must never fail
// a mutation because the log was unavailable.
type EventLog struct {
	db *sql.DB
}

// OpenEventLog opens (creating if needed) events.sqlite.
func (s Store) OpenEventLog(ctx context.Context) (*EventLog, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.eventsPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers across processes; busy_timeout
	// avoids "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateEventLog(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &EventLog{db: db}, nil
}

func migrateEventLog(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// seq gives a total append order; wall-clock timestamps collide
		// when mutations land within the same millisecond.
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT NOT NULL UNIQUE,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, seq);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (l *EventLog) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Append records one event.
func (l *EventLog) Append(ctx context.Context, eventType, entityID string, payload any) error {
	if l == nil || l.db == nil {
		return nil
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if payload == nil {
		pb = []byte("{}")
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO events (event_id, ts_unixms, type, entity_id, payload_json) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), time.Now().UnixMilli(), eventType, entityID, string(pb))
	return err
}

// Tail returns the most recent events, newest first. limit <= 0 returns all.
func (l *EventLog) Tail(ctx context.Context, limit int) ([]Event, error) {
	return l.query(ctx, "", limit)
}

// ForEntity returns the most recent events for one entity, newest first.
func (l *EventLog) ForEntity(ctx context.Context, entityID string, limit int) ([]Event, error) {
	return l.query(ctx, entityID, limit)
}

func (l *EventLog) query(ctx context.Context, entityID string, limit int) ([]Event, error) {
	if l == nil || l.db == nil {
		return []Event{}, nil
	}
	q := `SELECT event_id, ts_unixms, type, entity_id, payload_json FROM events`
	args := []any{}
	if entityID != "" {
		q += ` WHERE entity_id = ?`
		args = append(args, entityID)
	}
	q += ` ORDER BY seq DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var ev Event
		var ms int64
		var payload string
		if err := rows.Scan(&ev.ID, &ms, &ev.Type, &ev.EntityID, &payload); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(ms)
		ev.Payload = json.RawMessage(payload)
		out = append(out, ev)
	}
	return out, rows.Err()
}
