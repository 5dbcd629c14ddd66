package game

import "errors"

// Errors returned by engine operations. Callers match them with errors.Is; the returned
// error usually wraps one of these with the offending card or index.
var (
	ErrInvalidIndex  = errors.New("invalid hand index")
	ErrIllegalMove   = errors.New("illegal move")
	ErrInvalidColor  = errors.New("invalid wild color")
	ErrNotYetActed   = errors.New("perform an action before advancing the turn")
	ErrMustAdvance   = errors.New("advance the turn before acting again")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrGameOver      = errors.New("game is over")
	ErrDeckExhausted = errors.New("draw pile and discard pile are exhausted")
	ErrUnknownAction = errors.New("unknown action")
	ErrPlayerCount   = errors.New("unsupported number of players")
)
