// internal/game/view.go
package game

import (
	"github.com/google/uuid"
	"github.com/qydan/unoflip/internal/models"
)

// View is implemented by anything that presents the game: the websocket adapter, the
// terminal client, or a test stub. The engine calls it synchronously, in registration order.
type View interface {
	// HandleUpdate is called after every completed state change.
	HandleUpdate(ev Event)
	// HandleRoundEnd is called when a round is won but nobody reached the winning score.
	HandleRoundEnd(summary string)
	// HandleGameEnd is called once, when a round winner reaches the winning score.
	HandleGameEnd(summary string)
	// PromptForWildColor asks for the color of a wild card about to be played.
	// Returning ColorNone declines, and the play fails with ErrInvalidColor.
	PromptForWildColor() models.Color
}

// PlayerSummary is the public view of one seat.
type PlayerSummary struct {
	Name     string `json:"name"`
	IsAI     bool   `json:"isAI"`
	HandSize int    `json:"handSize"`
	Score    int    `json:"score"`
}

// Event is the snapshot handed to views. Every view receives its own copy of Hand and Players.
type Event struct {
	GameID            uuid.UUID       `json:"gameId"`
	Round             int             `json:"round"`
	Hand              []models.Card   `json:"hand"`
	TopCardText       string          `json:"topCardText"`
	CurrentPlayerName string          `json:"currentPlayerName"`
	Info              string          `json:"info"`
	MustAdvance       bool            `json:"mustAdvance"`
	ActiveColor       models.Color    `json:"activeColor"`
	Side              models.Side     `json:"side"`
	IsAIPlayer        bool            `json:"isAIPlayer"`
	Players           []PlayerSummary `json:"players"`
	DrawPileSize      int             `json:"drawPileSize"`
	CanUndo           bool            `json:"canUndo"`
	CanRedo           bool            `json:"canRedo"`
	Over              bool            `json:"over"`
}

// IsDark reports whether the dark side is up.
func (e Event) IsDark() bool { return e.Side == models.SideDark }

// AddView registers v and immediately sends it the current snapshot.
func (g *UnoGame) AddView(v View) {
	g.views = append(g.views, v)
	v.HandleUpdate(g.Snapshot())
}

// RemoveView detaches v. It reports whether v was registered.
func (g *UnoGame) RemoveView(v View) bool {
	for i, existing := range g.views {
		if existing == v {
			g.views = append(g.views[:i], g.views[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot builds the event describing the current state.
func (g *UnoGame) Snapshot() Event {
	st := &g.state
	p := st.CurrentPlayer()

	topText := "None"
	if top, ok := st.TopDiscard(); ok {
		topText = top.Text(st.Side)
	}
	if st.ActiveColor != models.ColorNone {
		topText += " [" + st.ActiveColor.String() + "]"
	}

	players := make([]PlayerSummary, len(st.Players))
	for i, pl := range st.Players {
		players[i] = PlayerSummary{Name: pl.Name, IsAI: pl.IsAI, HandSize: len(pl.Hand), Score: pl.Score}
	}

	return Event{
		GameID:            g.ID,
		Round:             st.Round,
		Hand:              p.HandCopy(),
		TopCardText:       topText,
		CurrentPlayerName: p.Name,
		Info:              st.Info,
		MustAdvance:       st.MustAdvance,
		ActiveColor:       st.ActiveColor,
		Side:              st.Side,
		IsAIPlayer:        p.IsAI,
		Players:           players,
		DrawPileSize:      len(st.DrawPile),
		CanUndo:           g.history.CanUndo(),
		CanRedo:           g.history.CanRedo(),
		Over:              st.Over,
	}
}

func (g *UnoGame) notifyViews() {
	if len(g.views) == 0 {
		return
	}
	ev := g.Snapshot()
	last := len(g.views) - 1
	for i, v := range g.views {
		if i < last {
			v.HandleUpdate(ev.clone())
			continue
		}
		v.HandleUpdate(ev)
	}
}

// clone copies the slices so each view owns its event.
func (e Event) clone() Event {
	hand := make([]models.Card, len(e.Hand))
	copy(hand, e.Hand)
	players := make([]PlayerSummary, len(e.Players))
	copy(players, e.Players)
	e.Hand, e.Players = hand, players
	return e
}

// promptWildColor asks the views in order and returns the first valid answer.
func (g *UnoGame) promptWildColor() models.Color {
	for _, v := range g.views {
		if c := v.PromptForWildColor(); g.state.Side.HasColor(c) {
			return c
		}
	}
	return models.ColorNone
}
