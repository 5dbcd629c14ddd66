package game

import (
	"fmt"
	"strings"

	"github.com/qydan/unoflip/internal/models"
	"github.com/sirupsen/logrus"
)

// RoundPoints is the value of every card still held at the end of a round, scored on side.
func RoundPoints(players []models.Player, side models.Side) int {
	total := 0
	for _, p := range players {
		total += p.HandPoints(side)
	}
	return total
}

// handleRoundWin credits the current player, who has just emptied their hand, and either
// ends the game or deals the next round.
func (g *UnoGame) handleRoundWin() {
	st := &g.state
	winner := st.CurrentPlayer()
	points := RoundPoints(st.Players, st.Side)
	winner.AddScore(points)

	var b strings.Builder
	fmt.Fprintf(&b, "%s wins round! Points: +%d\nTotal Scores:\n", winner.Name, points)
	for _, p := range st.Players {
		fmt.Fprintf(&b, "%s: %d\n", p.Name, p.Score)
	}
	summary := b.String()

	g.logger.WithFields(logrus.Fields{
		"winner": winner.Name,
		"points": points,
		"score":  winner.Score,
		"round":  st.Round,
	}).Info("round won")
	g.logAction(winner.Name, "round_win", map[string]interface{}{
		"points": points,
		"score":  winner.Score,
		"round":  st.Round,
	})

	if winner.Score >= g.Rules.WinningScore {
		st.Over = true
		st.MustAdvance = false
		st.Info = fmt.Sprintf("GAME OVER. %s WINS!", winner.Name)
		g.notifyViews()
		for _, v := range g.views {
			v.HandleGameEnd(summary + "\nGAME OVER!")
		}
		g.logger.WithField("winner", winner.Name).Info("game over")
		g.logAction(winner.Name, "game_end", map[string]interface{}{"score": winner.Score})
		return
	}

	st.Info = "Round Over. Next round starting..."
	g.notifyViews()
	for _, v := range g.views {
		v.HandleRoundEnd(summary)
	}
	g.initializeRound()
}
