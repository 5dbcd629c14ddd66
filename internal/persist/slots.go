package persist

import (
	"context"
	"errors"
	"time"
)

// ErrSlotNotFound is returned by SlotStore implementations for unknown slot names.
var ErrSlotNotFound = errors.New("save slot not found")

// SlotInfo describes one stored save.
type SlotInfo struct {
	Name      string    `json:"name"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotStore keeps encoded snapshots under human-chosen slot names.
type SlotStore interface {
	PutSlot(ctx context.Context, name string, data []byte) error
	GetSlot(ctx context.Context, name string) ([]byte, error)
	ListSlots(ctx context.Context) ([]SlotInfo, error)
}
