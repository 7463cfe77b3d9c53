// Package store provides SQLite-backed persistence for event
// participants, keyed by the identifier encoded into badge QR codes.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Participant is one registered event attendee.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Resolver is the lookup capability the badge handler consumes. A nil
// resolver means QR payloads are taken verbatim instead of resolved.
type Resolver interface {
	Resolve(id string) (*Participant, error)
}

// ParticipantStore manages SQLite storage for participants.
type ParticipantStore struct {
	db *sql.DB
}

const createParticipantsTable = `
CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);
`

// NewParticipantStore opens (or creates) the SQLite database at dbPath,
// initialises the schema, and returns a ready-to-use store.
func NewParticipantStore(dbPath string) (*ParticipantStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(createParticipantsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema statement: %w", err)
	}

	return &ParticipantStore{db: db}, nil
}

// Resolve returns the participant registered under id, or (nil, nil)
// when the identifier is unknown. A miss is not an error.
func (s *ParticipantStore) Resolve(id string) (*Participant, error) {
	const query = `SELECT id, name, category FROM participants WHERE id = ?`

	var p Participant
	err := s.db.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve participant: %w", err)
	}
	return &p, nil
}

// Put inserts or updates a participant record.
func (s *ParticipantStore) Put(p *Participant) error {
	const query = `
		INSERT INTO participants (id, name, category, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, category = excluded.category
	`

	_, err := s.db.Exec(query, p.ID, p.Name, p.Category, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put participant: %w", err)
	}
	return nil
}

// List returns participants ordered by registration time (newest
// first), then by id for a stable order within the same second.
func (s *ParticipantStore) List(limit int) ([]Participant, error) {
	const query = `
		SELECT id, name, category
		FROM participants
		ORDER BY created_at DESC, id
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var out []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Category); err != nil {
			return nil, fmt.Errorf("scan participant row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participant rows: %w", err)
	}

	return out, nil
}

// Delete removes a participant, reporting whether a row existed.
func (s *ParticipantStore) Delete(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete participant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete participant: %w", err)
	}
	return n > 0, nil
}

// Close closes the underlying database connection.
func (s *ParticipantStore) Close() error {
	return s.db.Close()
}
