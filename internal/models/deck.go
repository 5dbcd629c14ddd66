package models

// ColorPairs pairs each light color with the dark color printed on the back.
var ColorPairs = [4][2]Color{
	{ColorRed, ColorOrange},
	{ColorBlue, ColorPink},
	{ColorGreen, ColorTeal},
	{ColorYellow, ColorPurple},
}

// FlipDeck returns an unshuffled Uno Flip deck of DeckSize cards.
func FlipDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for copyN := 0; copyN < 2; copyN++ {
		for _, pair := range ColorPairs {
			light, dark := pair[0], pair[1]
			for r := RankZero; r <= RankNine; r++ {
				deck = append(deck, NewCard(light, r, dark, r))
			}
			deck = append(deck,
				NewCard(light, RankFlip, dark, RankFlip),
				NewCard(light, RankDrawOne, dark, RankDrawFive),
				NewCard(light, RankSkip, dark, RankSkipEveryone),
				NewCard(light, RankReverse, dark, RankReverse),
			)
		}
	}
	return append(deck,
		NewCard(ColorWild, RankWild, ColorWild, RankWildDrawColor),
		NewCard(ColorWild, RankWildDrawTwo, ColorWild, RankWildDrawColor),
	)
}

// IsFlipDeck reports whether cards hold exactly the cards of one FlipDeck, in any order.
func IsFlipDeck(cards []Card) bool {
	if len(cards) != DeckSize {
		return false
	}
	counts := make(map[Card]int, DeckSize/2)
	for _, c := range FlipDeck() {
		counts[c]++
	}
	for _, c := range cards {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}
