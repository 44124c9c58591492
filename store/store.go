// Package store persists in-progress drafts to a local sqlite database so
// a session interrupted mid-edit can be resumed. The journal entry for a
// trip is written on every draft change and removed when the session's
// transaction reaches a terminal state.
package store

import (
	"database/sql"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/packpal/packpal/internal/file"
)

// Entry is a journaled draft for one trip.
type Entry struct {
	// TripID of the draft.
	TripID int64
	// Time at which the entry was created.
	CreationTimestamp int64
	// Time at which the entry was last written.
	UpdateTimestamp int64
	// The draft snapshot, as JSON.
	Snapshot []byte
}

// Store implements the sqlite draft journal.
type Store struct {
	db *sql.DB
}

// New store at the given path.
func New(dbPath string) (*Store, error) {
	if err := file.CreateDirectoryIfNotExist(filepath.Dir(dbPath)); err != nil {
		return nil, errors.Wrap(err, "creating store directory")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	// Create drafts table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS drafts (
			trip_id INTEGER PRIMARY KEY,
			creation_timestamp INTEGER NOT NULL,
			update_timestamp INTEGER NOT NULL,
			snapshot TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating drafts table")
	}

	return &Store{
		db: db,
	}, nil
}

// Save upserts the journal entry for a trip.
func (s *Store) Save(tripID int64, snapshot []byte) error {
	now := time.Now().UnixMicro()
	_, err := s.db.Exec(`
		INSERT INTO drafts (trip_id, creation_timestamp, update_timestamp, snapshot)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (trip_id) DO UPDATE SET
			update_timestamp = excluded.update_timestamp,
			snapshot = excluded.snapshot`,
		tripID, now, now, string(snapshot),
	)
	if err != nil {
		return errors.Wrap(err, "upserting draft")
	}
	return nil
}

// Get returns the journal entry for a trip, or nil if none exists.
func (s *Store) Get(tripID int64) (*Entry, error) {
	row := s.db.QueryRow(`
		SELECT trip_id, creation_timestamp, update_timestamp, snapshot
		FROM drafts
		WHERE trip_id = ?
	`, tripID)

	entry := &Entry{}
	var snapshot string
	if err := row.Scan(&entry.TripID, &entry.CreationTimestamp, &entry.UpdateTimestamp, &snapshot); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "querying draft")
	}
	entry.Snapshot = []byte(snapshot)
	return entry, nil
}

// Delete removes the journal entry for a trip. Deleting an absent entry is
// not an error.
func (s *Store) Delete(tripID int64) error {
	if _, err := s.db.Exec(`DELETE FROM drafts WHERE trip_id = ?`, tripID); err != nil {
		return errors.Wrap(err, "deleting draft")
	}
	return nil
}

// Close the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
