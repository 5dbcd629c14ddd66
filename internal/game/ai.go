package game

import (
	"fmt"

	"github.com/qydan/unoflip/internal/bot"
	"github.com/qydan/unoflip/internal/models"
)

// RunAITurn advances a finished turn, or lets the strategy act for an AI player.
// It does nothing when a human is to act.
func (g *UnoGame) RunAITurn() error {
	st := &g.state
	if st.Over {
		return ErrGameOver
	}
	if st.MustAdvance {
		return g.AdvanceTurn()
	}
	p := st.CurrentPlayer()
	if !p.IsAI {
		return nil
	}

	top, _ := st.TopDiscard()
	move := g.strategy.ChooseMove(bot.Turn{
		Hand:        p.HandCopy(),
		Top:         top,
		ActiveColor: st.ActiveColor,
		Side:        st.Side,
		Rand:        g.rng,
	})
	g.logger.WithField("player", p.Name).Debugf("ai chose %s %d %s", move.Kind, move.Index, move.Color)

	switch move.Kind {
	case bot.MovePlayWild:
		return g.PlayWild(move.Index, move.Color)
	case bot.MovePlay:
		return g.Play(move.Index)
	default:
		return g.Draw()
	}
}

// AutoPlay runs AI turns while an AI player holds the turn, at most limit steps.
// It returns the number of steps taken; every play and every advance counts as one.
func (g *UnoGame) AutoPlay(limit int) (int, error) {
	steps := 0
	for steps < limit && !g.state.Over && g.state.CurrentPlayer().IsAI {
		if err := g.RunAITurn(); err != nil {
			return steps, err
		}
		steps++
	}
	return steps, nil
}

// HandleAction dispatches one adapter command to the engine.
func (g *UnoGame) HandleAction(action models.GameAction) error {
	switch action.ActionType {
	case models.ActionPlay:
		if c, err := g.handCard(action.Index); err == nil && c.IsWild(g.state.Side) && action.Color != models.ColorNone {
			return g.PlayWild(action.Index, action.Color)
		}
		return g.Play(action.Index)
	case models.ActionDraw:
		return g.Draw()
	case models.ActionNext:
		if g.state.MustAdvance {
			return g.AdvanceTurn()
		}
		return g.RunAITurn()
	case models.ActionAI:
		return g.RunAITurn()
	case models.ActionUndo:
		return g.Undo()
	case models.ActionRedo:
		return g.Redo()
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action.ActionType)
}
