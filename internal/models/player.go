package models

// Player is one seat at the table. Name and IsAI are fixed at creation; Hand holds cards in
// the order they were received and Score is only changed by round-end scoring.
type Player struct {
	Name  string `json:"name" cbor:"1,keyasint"`
	IsAI  bool   `json:"isAI" cbor:"2,keyasint"`
	Hand  []Card `json:"hand" cbor:"3,keyasint"`
	Score int    `json:"score" cbor:"4,keyasint"`
}

// NewPlayer creates a player with an empty hand and zero score.
func NewPlayer(name string, isAI bool) Player {
	return Player{Name: name, IsAI: isAI, Hand: []Card{}}
}

// AddScore credits round points to the player's cumulative score.
func (p *Player) AddScore(points int) {
	p.Score += points
}

// ResetHand discards every held card, used when a new round is dealt.
func (p *Player) ResetHand() {
	p.Hand = p.Hand[:0]
}

// RemoveCard takes the card at idx out of the hand, keeping the order of the rest.
func (p *Player) RemoveCard(idx int) Card {
	c := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	return c
}

// HandCopy returns a copy of the hand that the caller may keep.
func (p Player) HandCopy() []Card {
	out := make([]Card, len(p.Hand))
	copy(out, p.Hand)
	return out
}

// HandPoints sums the scoring value of every held card on the given side.
func (p Player) HandPoints(side Side) int {
	total := 0
	for _, c := range p.Hand {
		total += c.Points(side)
	}
	return total
}
