package bot

import "github.com/qydan/unoflip/internal/models"

// Heuristic plays aggressively: the first matching action card, then the first matching
// plain card, and keeps wilds as a last resort before drawing.
type Heuristic struct{}

// ChooseMove implements Strategy.
func (Heuristic) ChooseMove(t Turn) Move {
	best, wild := -1, -1
	for i, c := range t.Hand {
		if !c.Matches(t.Top, t.ActiveColor, t.Side) {
			continue
		}
		if c.IsWild(t.Side) {
			if wild == -1 {
				wild = i
			}
			continue
		}
		if c.IsAction(t.Side) {
			best = i
			break
		}
		if best == -1 {
			best = i
		}
	}

	switch {
	case best != -1:
		return Move{Kind: MovePlay, Index: best}
	case wild != -1:
		return Move{Kind: MovePlayWild, Index: wild, Color: pickColor(t)}
	default:
		return Move{Kind: MoveDraw}
	}
}

// pickColor chooses uniformly among the active side's colors.
func pickColor(t Turn) models.Color {
	opts := t.Side.Colors()
	if t.Rand == nil {
		return opts[0]
	}
	return opts[t.Rand.Intn(len(opts))]
}
