package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qydan/unoflip/internal/persist"
)

// SlotStore keeps save slots in the save_slots table.
type SlotStore struct {
	pool *pgxpool.Pool
}

var _ persist.SlotStore = (*SlotStore)(nil)

func NewSlotStore(pool *pgxpool.Pool) *SlotStore {
	return &SlotStore{pool: pool}
}

// PutSlot creates or replaces the slot.
func (s *SlotStore) PutSlot(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("slot name is required")
	}
	q := `
		INSERT INTO save_slots (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	if _, err := s.pool.Exec(ctx, q, name, data); err != nil {
		return fmt.Errorf("put slot %q: %w", name, err)
	}
	return nil
}

// GetSlot returns the slot's bytes or persist.ErrSlotNotFound.
func (s *SlotStore) GetSlot(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM save_slots WHERE name = $1`, name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", persist.ErrSlotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %q: %w", name, err)
	}
	return data, nil
}

// ListSlots returns every slot, most recently saved first.
func (s *SlotStore) ListSlots(ctx context.Context) ([]persist.SlotInfo, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, octet_length(data), updated_at FROM save_slots ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []persist.SlotInfo
	for rows.Next() {
		var info persist.SlotInfo
		if err := rows.Scan(&info.Name, &info.Size, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
