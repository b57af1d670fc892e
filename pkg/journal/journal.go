// Package journal records container lifecycle events to SQLite for post-hoc
// diagnosis: which controller was attached where, when animations were
// built, and in what order handles were torn down. Journals can be exported
// as xz-compressed JSON-lines bundles for sharing.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/go-drift/gantry/pkg/contain"
)

const schemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	at      TEXT NOT NULL,
	type    TEXT NOT NULL,
	handle  TEXT NOT NULL,
	detail  BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_handle ON events(handle);
`

// Entry is one recorded lifecycle event.
type Entry struct {
	ID         int64
	At         time.Time
	Type       string
	Handle     uuid.UUID
	Controller string
	Container  string
}

// detail is the msgpack-encoded portion of a row: display-only fields that
// may grow without schema changes.
type detail struct {
	Controller string `msgpack:"controller"`
	Container  string `msgpack:"container"`
}

// Store is an event journal backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal database at path and ensures the schema
// is current.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	// Lifecycle events arrive from a single frame loop; one connection also
	// keeps :memory: journals coherent.
	db.SetMaxOpenConns(1)
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func ensureSchema(db *sql.DB) error {
	ver, err := currentSchemaVersion(db)
	if err != nil {
		return fmt.Errorf("journal: check schema version: %w", err)
	}
	if ver >= schemaVersion {
		return nil
	}
	if _, err := db.Exec(schemaV1); err != nil {
		return fmt.Errorf("journal: create schema: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_meta (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("journal: record schema version: %w", err)
	}
	return nil
}

// currentSchemaVersion returns the version from schema_meta, or 0 for a
// fresh database.
func currentSchemaVersion(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_meta'
	`).Scan(&count)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	var ver int
	err = db.QueryRow("SELECT version FROM schema_meta LIMIT 1").Scan(&ver)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return ver, err
}

// Record persists one lifecycle event.
func (s *Store) Record(ev contain.Event) error {
	blob, err := msgpack.Marshal(detail{
		Controller: typeName(ev.Controller),
		Container:  typeName(ev.Container),
	})
	if err != nil {
		return fmt.Errorf("journal: encode detail: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO events (at, type, handle, detail) VALUES (?, ?, ?, ?)",
		ev.At.UTC().Format(time.RFC3339Nano), ev.Type.String(), ev.Handle.String(), blob,
	)
	if err != nil {
		return fmt.Errorf("journal: insert event: %w", err)
	}
	return nil
}

func typeName(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%T", v)
}

// Attach records registry's lifecycle events to the store. The returned
// function removes the subscription. Recording is best effort: a failed
// insert drops the event rather than disturbing the container.
func Attach(registry *contain.Registry, store *Store) func() {
	return registry.AddObserver(contain.ObserverFunc(func(ev contain.Event) {
		_ = store.Record(ev)
	}))
}

// Recent returns up to n events, newest first. n <= 0 returns everything.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = -1
	}
	rows, err := s.db.Query(`
		SELECT id, at, type, handle, detail
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("journal: query events: %w", err)
	}
	return collectEntries(rows)
}

// ForHandle returns every event recorded for one handle, oldest first.
func (s *Store) ForHandle(id uuid.UUID) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, at, type, handle, detail
		FROM events
		WHERE handle = ?
		ORDER BY id ASC
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("journal: query events for %s: %w", id, err)
	}
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: scan events: %w", err)
	}
	return out, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e      Entry
		at     string
		handle string
		blob   []byte
	)
	if err := rows.Scan(&e.ID, &at, &e.Type, &handle, &blob); err != nil {
		return Entry{}, fmt.Errorf("journal: scan event: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return Entry{}, fmt.Errorf("journal: event %d: bad timestamp %q: %w", e.ID, at, err)
	}
	e.At = t

	hid, err := uuid.Parse(handle)
	if err != nil {
		return Entry{}, fmt.Errorf("journal: event %d: bad handle %q: %w", e.ID, handle, err)
	}
	e.Handle = hid

	var d detail
	if err := msgpack.Unmarshal(blob, &d); err != nil {
		return Entry{}, fmt.Errorf("journal: event %d: decode detail: %w", e.ID, err)
	}
	e.Controller = d.Controller
	e.Container = d.Container
	return e, nil
}

// exportEntry is the JSON-lines form written by ExportXZ.
type exportEntry struct {
	ID         int64  `json:"id"`
	At         string `json:"at"`
	Type       string `json:"type"`
	Handle     string `json:"handle"`
	Controller string `json:"controller,omitempty"`
	Container  string `json:"container,omitempty"`
}

// ExportXZ writes every event to w as xz-compressed JSON lines, oldest
// first.
func (s *Store) ExportXZ(w io.Writer) error {
	entries, err := s.Recent(0)
	if err != nil {
		return err
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("journal: start xz stream: %w", err)
	}
	enc := json.NewEncoder(xw)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		line := exportEntry{
			ID:         e.ID,
			At:         e.At.UTC().Format(time.RFC3339Nano),
			Type:       e.Type,
			Handle:     e.Handle.String(),
			Controller: e.Controller,
			Container:  e.Container,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("journal: encode event %d: %w", e.ID, err)
		}
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("journal: close xz stream: %w", err)
	}
	return nil
}
