// Package storage is the SQLite persistence layer: the notes table holding
// diary records and the sessions table holding each user's serialized
// conversation context.
//
// Timestamps are stored as text in diary.TimeLayout with a fixed zone
// offset applied at write time. Reads parse them back in the same zone and
// never re-derive the offset from the stored string.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avdeyev/healthdiary/internal/diary"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Config holds store configuration.
type Config struct {
	Path     string
	Location *time.Location
}

// Store is the SQLite-backed record and session store.
type Store struct {
	db  *sql.DB
	loc *time.Location
}

// New opens the database at cfg.Path, applies the performance pragmas and
// runs migrations.
func New(cfg Config) (*Store, error) {
	db, err := openDB("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("storage: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, loc: cfg.Location}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("storage: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS notes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL,
			severity   INTEGER NOT NULL,
			text       TEXT    NOT NULL,
			created_at TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id);

		CREATE TABLE IF NOT EXISTS sessions (
			user_id    INTEGER PRIMARY KEY,
			context    TEXT    NOT NULL,
			updated_at TEXT    NOT NULL DEFAULT (datetime('now'))
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Records ─────────────────────────────────────────────────────────────────

// AddRecord inserts a record and returns its store-assigned id.
func (s *Store) AddRecord(userID int64, severity int, text string, ts time.Time) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO notes (user_id, severity, text, created_at) VALUES (?, ?, ?, ?)`,
		userID, severity, text, ts.In(s.loc).Format(diary.TimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: record id: %w", err)
	}
	return id, nil
}

// ListRecords returns all of one user's records in insertion order.
// Rows whose timestamp no longer parses are skipped rather than failing
// the whole listing.
func (s *Store) ListRecords(userID int64) ([]diary.Record, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, severity, text, created_at FROM notes WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: list records: %w", err)
	}
	defer rows.Close()

	var records []diary.Record
	for rows.Next() {
		var r diary.Record
		var createdAt string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Severity, &r.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: scan record: %w", err)
		}
		ts, err := time.ParseInLocation(diary.TimeLayout, createdAt, s.loc)
		if err != nil {
			continue
		}
		r.Timestamp = ts
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list records: %w", err)
	}
	return records, nil
}

// DeleteRecord removes one record, scoped to its owner. Deleting an id
// that does not exist, or belongs to another user, is a no-op.
func (s *Store) DeleteRecord(userID, id int64) error {
	if _, err := s.db.Exec(`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("storage: delete record %d: %w", id, err)
	}
	return nil
}

// CountRecords returns the number of records a user has.
func (s *Store) CountRecords(userID int64) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: count records: %w", err)
	}
	return n, nil
}

// ─── Sessions ────────────────────────────────────────────────────────────────

// LoadSession returns a user's serialized session context, or nil when the
// user has none yet.
func (s *Store) LoadSession(userID int64) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT context FROM sessions WHERE user_id = ?`, userID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load session: %w", err)
	}
	return blob, nil
}

// SaveSession upserts a user's serialized session context.
func (s *Store) SaveSession(userID int64, blob []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (user_id, context, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(user_id) DO UPDATE SET context = excluded.context, updated_at = excluded.updated_at`,
		userID, blob,
	)
	if err != nil {
		return fmt.Errorf("storage: save session: %w", err)
	}
	return nil
}
