package game

import (
	"math/rand"

	"github.com/qydan/unoflip/internal/models"
)

// BuildFlipDeck returns an unshuffled Uno Flip deck of models.DeckSize cards.
func BuildFlipDeck() []models.Card {
	return models.FlipDeck()
}

func shuffleCards(r *rand.Rand, cards []models.Card) {
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// canDraw reports whether drawOrRecycle would yield a card.
func (g *UnoGame) canDraw() bool {
	return len(g.state.DrawPile) > 0 || len(g.state.Discard) > 1
}

// drawOrRecycle pops the top of the draw pile, first reshuffling everything under the
// discard top back into it when the pile is empty. ok is false when both piles are spent.
func (g *UnoGame) drawOrRecycle() (c models.Card, ok bool) {
	st := &g.state
	if len(st.DrawPile) == 0 {
		g.recycle()
	}
	if len(st.DrawPile) == 0 {
		g.logger.Error("draw pile and discard pile exhausted")
		return models.Card{}, false
	}
	c = st.DrawPile[len(st.DrawPile)-1]
	st.DrawPile = st.DrawPile[:len(st.DrawPile)-1]
	return c, true
}

// recycle moves every discard except the top card into the draw pile and shuffles it.
func (g *UnoGame) recycle() {
	st := &g.state
	if len(st.Discard) <= 1 {
		return
	}
	top := st.Discard[len(st.Discard)-1]
	back := make([]models.Card, len(st.Discard)-1)
	copy(back, st.Discard[:len(st.Discard)-1])
	shuffleCards(g.rng, back)

	st.DrawPile = append(st.DrawPile, back...)
	st.Discard = append(st.Discard[:0], top)
	g.logger.WithField("drawPile", len(st.DrawPile)).Info("reshuffled discard pile into draw pile")
	g.logAction("", "reshuffle", map[string]interface{}{"drawPile": len(st.DrawPile)})
}

// dealTo draws n cards into the hand of player idx, stopping early if the piles run dry.
func (g *UnoGame) dealTo(idx, n int) int {
	p := &g.state.Players[idx]
	dealt := 0
	for ; dealt < n; dealt++ {
		c, ok := g.drawOrRecycle()
		if !ok {
			break
		}
		p.Hand = append(p.Hand, c)
	}
	return dealt
}
