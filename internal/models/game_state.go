package models

// DeckSize is the number of cards in a Uno Flip deck: two copies of the 56 colored
// cards plus the two dedicated wilds. The sum of pile and hand sizes always equals it.
const DeckSize = 2*56 + 2

// GameState is everything that describes a game at one instant. It is the unit that the
// undo history copies and that save files encode. The draw pile and discard pile are stacks
// whose top is the last element.
type GameState struct {
	Players     []Player `json:"players" cbor:"1,keyasint"`
	DrawPile    []Card   `json:"drawPile" cbor:"2,keyasint"`
	Discard     []Card   `json:"discard" cbor:"3,keyasint"`
	Current     int      `json:"current" cbor:"4,keyasint"`
	Direction   int      `json:"direction" cbor:"5,keyasint"`
	MustAdvance bool     `json:"mustAdvance" cbor:"6,keyasint"`
	ActiveColor Color    `json:"activeColor" cbor:"7,keyasint"`
	NextSteps   int      `json:"nextSteps" cbor:"8,keyasint"`
	Side        Side     `json:"side" cbor:"9,keyasint"`
	Info        string   `json:"info" cbor:"10,keyasint"`
	Round       int      `json:"round" cbor:"11,keyasint"`
	Over        bool     `json:"over" cbor:"12,keyasint"`
}

// Clone returns a deep copy that shares no slices with s.
func (s GameState) Clone() GameState {
	out := s
	if s.Players != nil {
		out.Players = make([]Player, len(s.Players))
		for i, p := range s.Players {
			out.Players[i] = p
			out.Players[i].Hand = cloneCards(p.Hand)
		}
	}
	out.DrawPile = cloneCards(s.DrawPile)
	out.Discard = cloneCards(s.Discard)
	return out
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// CurrentPlayer returns the player whose turn it is.
func (s *GameState) CurrentPlayer() *Player {
	return &s.Players[s.Current]
}

// TopDiscard returns the top of the discard pile, if any.
func (s *GameState) TopDiscard() (Card, bool) {
	if len(s.Discard) == 0 {
		return Card{}, false
	}
	return s.Discard[len(s.Discard)-1], true
}

// PlayerIndex normalizes idx into [0, len(Players)).
func (s *GameState) PlayerIndex(idx int) int {
	n := len(s.Players)
	return ((idx % n) + n) % n
}

// NextIndex is the seat that follows the current one in the current direction.
func (s *GameState) NextIndex() int {
	return s.PlayerIndex(s.Current + s.Direction)
}

// CardCount is the number of cards across both piles and every hand.
func (s GameState) CardCount() int {
	n := len(s.DrawPile) + len(s.Discard)
	for _, p := range s.Players {
		n += len(p.Hand)
	}
	return n
}
