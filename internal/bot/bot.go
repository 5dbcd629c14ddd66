// Package bot chooses moves for computer-controlled players.
package bot

import (
	"math/rand"

	"github.com/qydan/unoflip/internal/models"
)

// MoveKind is what a bot decided to do with its turn.
type MoveKind uint8

const (
	MoveDraw MoveKind = iota
	MovePlay
	MovePlayWild
)

func (k MoveKind) String() string {
	switch k {
	case MovePlay:
		return "play"
	case MovePlayWild:
		return "play_wild"
	default:
		return "draw"
	}
}

// Move is a bot decision. Index and Color are only meaningful for the play kinds.
type Move struct {
	Kind  MoveKind
	Index int
	Color models.Color
}

// Turn is what a bot may look at when deciding.
type Turn struct {
	Hand        []models.Card
	Top         models.Card
	ActiveColor models.Color
	Side        models.Side
	Rand        *rand.Rand
}

// Strategy picks a move for the current AI player.
type Strategy interface {
	ChooseMove(t Turn) Move
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(t Turn) Move

func (f StrategyFunc) ChooseMove(t Turn) Move { return f(t) }
