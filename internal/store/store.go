// Package store persists analysis sessions in a local SQLite database so a
// game can be resumed across restarts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/DevJPM/sh-support/engine"
)

// ErrSessionNotFound reports a lookup for a session name that was never
// saved (or has been deleted).
var ErrSessionNotFound = errors.New("session not found")

// Session is one saved analysis session.
type Session struct {
	ID          string
	Name        string
	UpdatedAt   time.Time
	Snapshot    engine.Snapshot
	PlayerNames map[engine.PlayerID]string
}

// Store wraps the session database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	state        BLOB NOT NULL,
	player_names BLOB NOT NULL,
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);
`

// Open opens (creating if necessary) the session database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing session database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save upserts a session under its name. New sessions get a random ID;
// saving over an existing name keeps its ID and creation time.
func (s *Store) Save(ctx context.Context, name string, snap engine.Snapshot, playerNames map[engine.PlayerID]string) error {
	state, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	nameBlob, err := json.Marshal(playerNames)
	if err != nil {
		return fmt.Errorf("encoding player names: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, state, player_names, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			state = excluded.state,
			player_names = excluded.player_names,
			updated_at = excluded.updated_at`,
		uuid.NewString(), name, state, nameBlob, now, now)
	if err != nil {
		return fmt.Errorf("saving session %q: %w", name, err)
	}
	return nil
}

// Load fetches a session by name. The caller re-validates the snapshot via
// engine.RestoreGameState; the store only guarantees it decodes.
func (s *Store) Load(ctx context.Context, name string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, state, player_names, updated_at
		FROM sessions WHERE name = ?`, name)

	var (
		sess     Session
		state    []byte
		nameBlob []byte
	)
	err := row.Scan(&sess.ID, &sess.Name, &state, &nameBlob, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("loading session %q: %w", name, err)
	}
	if err := json.Unmarshal(state, &sess.Snapshot); err != nil {
		return Session{}, fmt.Errorf("decoding session %q: %w", name, err)
	}
	if err := json.Unmarshal(nameBlob, &sess.PlayerNames); err != nil {
		return Session{}, fmt.Errorf("decoding player names of %q: %w", name, err)
	}
	return sess, nil
}

// List returns the saved sessions, most recently updated first, without
// their state payloads.
func (s *Store) List(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, updated_at FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Name, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Delete removes a saved session by name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting session %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
