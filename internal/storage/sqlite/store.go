// Package sqlite keeps save slots in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/qydan/unoflip/internal/persist"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS save_slots (
	name       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store is a persist.SlotStore backed by one SQLite file.
type Store struct {
	sqlDB *sql.DB
}

var _ persist.SlotStore = (*Store)(nil)

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSlot creates or replaces the slot.
func (s *Store) PutSlot(ctx context.Context, name string, data []byte) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("slot name is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO save_slots (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, data, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put slot %q: %w", name, err)
	}
	return nil
}

// GetSlot returns the slot's bytes or persist.ErrSlotNotFound.
func (s *Store) GetSlot(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM save_slots WHERE name = ?`, strings.TrimSpace(name)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", persist.ErrSlotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %q: %w", name, err)
	}
	return data, nil
}

// ListSlots returns every slot, most recently saved first.
func (s *Store) ListSlots(ctx context.Context) ([]persist.SlotInfo, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name, length(data), updated_at FROM save_slots ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []persist.SlotInfo
	for rows.Next() {
		var info persist.SlotInfo
		var updated int64
		if err := rows.Scan(&info.Name, &info.Size, &updated); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		info.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}
