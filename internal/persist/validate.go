package persist

import (
	"fmt"

	"github.com/qydan/unoflip/internal/models"
)

func corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))
}

// Validate checks the structural invariants a decoded snapshot must satisfy before an
// engine is rebuilt from it.
func Validate(snap Snapshot) error {
	if snap.Version != Version {
		return corrupt("unsupported version %d", snap.Version)
	}
	rules := snap.Rules.WithDefaults()
	if err := rules.Validate(); err != nil {
		return corrupt("rules: %v", err)
	}

	st := snap.State
	n := len(st.Players)
	if n < rules.MinPlayers || n > rules.MaxPlayers {
		return corrupt("%d players outside %d..%d", n, rules.MinPlayers, rules.MaxPlayers)
	}
	if st.Current < 0 || st.Current >= n {
		return corrupt("current player %d out of range", st.Current)
	}
	if st.Direction != 1 && st.Direction != -1 {
		return corrupt("direction %d", st.Direction)
	}
	if st.NextSteps < 0 || st.NextSteps > 2 {
		return corrupt("next steps %d", st.NextSteps)
	}
	if !st.ActiveColor.Valid() || st.ActiveColor == models.ColorWild {
		return corrupt("active color %s", st.ActiveColor)
	}
	if st.Side != models.SideLight && st.Side != models.SideDark {
		return corrupt("side %d", st.Side)
	}
	if len(st.Discard) == 0 && st.ActiveColor != models.ColorNone {
		return corrupt("active color %s without a discard", st.ActiveColor)
	}

	cards := make([]models.Card, 0, models.DeckSize)
	cards = append(append(cards, st.DrawPile...), st.Discard...)
	for i, p := range st.Players {
		if p.Name == "" {
			return corrupt("player %d has no name", i)
		}
		cards = append(cards, p.Hand...)
	}
	for _, c := range cards {
		if !c.Valid() {
			return corrupt("invalid card %v", c)
		}
	}
	// every card of the deck sits in exactly one pile or hand
	if !models.IsFlipDeck(cards) {
		return corrupt("%d cards in play do not form one deck", len(cards))
	}
	return nil
}
