package game

import (
	"fmt"

	"github.com/qydan/unoflip/internal/models"
	"github.com/sirupsen/logrus"
)

// resolveEffect applies the rank effect of a card that is already on the discard pile,
// then either ends the round or leaves the table awaiting AdvanceTurn.
func (g *UnoGame) resolveEffect(played models.Card) {
	st := &g.state
	actor := st.CurrentPlayer().Name
	side := st.Side
	rank := played.Rank(side)
	msg := fmt.Sprintf("%s played %s", actor, played.Text(side))
	if played.IsWild(side) {
		msg += fmt.Sprintf(" and chose %s", st.ActiveColor)
	}

	st.NextSteps = 1
	switch rank {
	case models.RankFlip:
		st.Side = st.Side.Flip()
		top, _ := st.TopDiscard()
		st.ActiveColor = top.Color(st.Side)
		if top.IsWild(st.Side) {
			st.ActiveColor = st.Side.SafeColor()
		}
		msg += fmt.Sprintf(". FLIP! %s side up", st.Side)
	case models.RankDrawFive:
		victim := g.victimDraws(5)
		st.NextSteps = 2
		msg += fmt.Sprintf(". %s draws 5", victim)
	case models.RankSkipEveryone:
		st.NextSteps = 0
		msg += ". Play again!"
	case models.RankReverse:
		st.Direction = -st.Direction
		msg += ". Reverse"
	case models.RankSkip:
		st.NextSteps = 2
		msg += ". Skip"
	case models.RankDrawOne:
		victim := g.victimDraws(1)
		st.NextSteps = 2
		msg += fmt.Sprintf(". %s draws 1", victim)
	case models.RankWildDrawTwo:
		victim := g.victimDraws(2)
		st.NextSteps = 2
		msg += fmt.Sprintf(". %s draws 2", victim)
	case models.RankWildDrawColor:
		victim, n := g.victimDrawsUntil(st.ActiveColor)
		st.NextSteps = 2
		msg += fmt.Sprintf(". %s draws %d until %s", victim, n, st.ActiveColor)
	}

	hand := st.CurrentPlayer().Hand
	g.logger.WithFields(logrus.Fields{
		"player": actor,
		"card":   played.Text(side),
		"color":  st.ActiveColor,
	}).Debug("card played")
	g.logAction(actor, "play", map[string]interface{}{
		"card":        played.Text(side),
		"activeColor": st.ActiveColor.String(),
		"side":        st.Side.String(),
		"handSize":    len(hand),
	})

	if len(hand) == 0 {
		g.handleRoundWin()
		return
	}
	st.MustAdvance = true
	st.Info = msg + "."
	g.notifyViews()
}

// victimDraws deals n cards to the next player and returns their name.
func (g *UnoGame) victimDraws(n int) string {
	idx := g.state.NextIndex()
	if got := g.dealTo(idx, n); got < n {
		g.logger.Warnf("only %d of %d penalty cards could be dealt", got, n)
	}
	return g.state.Players[idx].Name
}

// victimDrawsUntil deals cards to the next player one at a time until one of color
// (on the side currently up) is drawn or both piles run out.
func (g *UnoGame) victimDrawsUntil(color models.Color) (string, int) {
	st := &g.state
	idx := st.NextIndex()
	victim := &st.Players[idx]
	drawn := 0
	for {
		c, ok := g.drawOrRecycle()
		if !ok {
			g.logger.Warnf("piles exhausted after %d cards while drawing for %s", drawn, color)
			break
		}
		victim.Hand = append(victim.Hand, c)
		drawn++
		if c.Color(st.Side) == color {
			break
		}
	}
	return victim.Name, drawn
}
