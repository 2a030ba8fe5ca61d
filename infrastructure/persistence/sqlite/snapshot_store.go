// Package sqlite implements the snapshot store on a local SQLite file
// using ncruces/go-sqlite3 through database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"creativerse-backend/application/ports"
	pkgerrors "creativerse-backend/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SnapshotStore is a key to JSON blob table. Writes serialize the value
// before taking the lock so a marshal failure never holds the db.
type SnapshotStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSnapshotStore opens (or creates) the snapshot database at path.
// Use ":memory:" in tests.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, pkgerrors.NewStorageError("open snapshot database", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pkgerrors.NewStorageError("create snapshot schema", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Put stores value as JSON under key, replacing any previous value.
func (s *SnapshotStore) Put(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.NewStorageError("encode snapshot "+key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES (?, ?, strftime('%s', 'now') * 1000)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(raw))
	if err != nil {
		return pkgerrors.NewStorageError("write snapshot "+key, err)
	}
	return nil
}

// Get decodes the value stored under key into dest. The bool result
// reports whether the key existed.
func (s *SnapshotStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.NewStorageError("read snapshot "+key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return true, pkgerrors.NewStorageError("decode snapshot "+key, err)
	}
	return true, nil
}

// Delete removes the value stored under key. Missing keys are not an error.
func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return pkgerrors.NewStorageError("delete snapshot "+key, err)
	}
	return nil
}

// Keys lists every stored key in sorted order.
func (s *SnapshotStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM snapshots ORDER BY key`)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list snapshot keys", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, pkgerrors.NewStorageError("scan snapshot key", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)
