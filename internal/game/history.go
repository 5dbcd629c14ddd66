package game

import "github.com/qydan/unoflip/internal/models"

// History holds the undo and redo stacks of game snapshots. Stacks grow at the end.
type History struct {
	limit int
	undo  []models.GameState
	redo  []models.GameState
}

// NewHistory returns an empty history keeping at most limit undo entries.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = models.DefaultUndoLimit
	}
	return &History{limit: limit}
}

// Record stores a copy of s as the newest undo entry and drops every redo entry,
// since a fresh move invalidates undone futures.
func (h *History) Record(s models.GameState) {
	h.pushUndo(s.Clone())
	h.redo = h.redo[:0]
}

// pushUndo appends to the undo stack, evicting the oldest entry past the limit.
func (h *History) pushUndo(s models.GameState) {
	h.undo = append(h.undo, s)
	if len(h.undo) > h.limit {
		h.undo = append(h.undo[:0], h.undo[len(h.undo)-h.limit:]...)
	}
}

// Undo pushes current onto the redo stack and returns the newest undo entry.
func (h *History) Undo(current models.GameState) (models.GameState, bool) {
	if len(h.undo) == 0 {
		return models.GameState{}, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current.Clone())
	return prev, true
}

// Redo pushes current onto the undo stack and returns the newest redo entry.
func (h *History) Redo(current models.GameState) (models.GameState, bool) {
	if len(h.redo) == 0 {
		return models.GameState{}, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.pushUndo(current.Clone())
	return next, true
}

// Clear forgets every snapshot.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the sizes of the undo and redo stacks.
func (h *History) Len() (undo, redo int) { return len(h.undo), len(h.redo) }
