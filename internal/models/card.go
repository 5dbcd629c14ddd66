// internal/models/card.go
package models

import (
	"fmt"
	"strings"
)

// Color is the color printed on one side of a card, or the active color of the table.
type Color uint8

const (
	ColorNone Color = iota // no active color yet
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPink
	ColorTeal
	ColorPurple
	ColorOrange
	ColorWild
)

var colorNames = [...]string{"NONE", "RED", "GREEN", "BLUE", "YELLOW", "PINK", "TEAL", "PURPLE", "ORANGE", "WILD"}

// LightColors and DarkColors are the four playable colors of each side, in table order.
var (
	LightColors = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow}
	DarkColors  = []Color{ColorTeal, ColorPink, ColorPurple, ColorOrange}
)

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Valid reports whether c is one of the declared colors.
func (c Color) Valid() bool { return c <= ColorWild }

// MarshalText encodes the color by name so JSON payloads read "TEAL" rather than 6.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts a color name, case-insensitively.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor maps a color name to its Color.
func ParseColor(s string) (Color, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color %q", s)
}

// Rank is the number or action printed on one side of a card.
// RankZero..RankNine double as their point values.
type Rank uint8

const (
	RankZero Rank = iota
	RankOne
	RankTwo
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankSkip
	RankReverse
	RankDrawOne
	RankWild
	RankFlip
	RankDrawFive
	RankSkipEveryone
	RankWildDrawColor
	RankWildDrawTwo
)

var rankNames = [...]string{
	"ZERO", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
	"SKIP", "REVERSE", "DRAW_ONE", "WILD", "FLIP", "DRAW_FIVE", "SKIP_EVERYONE",
	"WILD_DRAW_COLOR", "WILD_DRAW_TWO",
}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return fmt.Sprintf("Rank(%d)", uint8(r))
}

// Valid reports whether r is one of the declared ranks.
func (r Rank) Valid() bool { return r <= RankWildDrawTwo }

// IsNumeric reports whether r is ZERO..NINE.
func (r Rank) IsNumeric() bool { return r <= RankNine }

// Points returns the round-end scoring value of a rank.
func (r Rank) Points() int {
	switch r {
	case RankWildDrawColor:
		return 60
	case RankWildDrawTwo:
		return 50
	case RankWild:
		return 40
	case RankDrawFive, RankFlip, RankSkipEveryone:
		return 30
	case RankSkip, RankReverse, RankDrawOne:
		return 20
	}
	if r.IsNumeric() {
		return int(r)
	}
	return 0
}

// Side selects which face of every card is in play.
type Side uint8

const (
	SideLight Side = iota
	SideDark
)

func (s Side) String() string {
	if s == SideDark {
		return "DARK"
	}
	return "LIGHT"
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts "LIGHT" or "DARK", case-insensitively.
func (s *Side) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "LIGHT":
		*s = SideLight
	case "DARK":
		*s = SideDark
	default:
		return fmt.Errorf("unknown side %q", string(b))
	}
	return nil
}

// Flip returns the opposite side.
func (s Side) Flip() Side {
	if s == SideDark {
		return SideLight
	}
	return SideDark
}

// Colors returns the four playable colors of the side.
func (s Side) Colors() []Color {
	if s == SideDark {
		return DarkColors
	}
	return LightColors
}

// SafeColor is the active color used when a wild card is turned up on this side.
func (s Side) SafeColor() Color {
	if s == SideDark {
		return ColorTeal
	}
	return ColorRed
}

// HasColor reports whether c is one of the side's four playable colors.
func (s Side) HasColor(c Color) bool {
	for _, sc := range s.Colors() {
		if sc == c {
			return true
		}
	}
	return false
}

// Card is a two-sided Uno Flip card. It is a comparable value; two cards are equal
// when both faces are equal.
type Card struct {
	LightColor Color `json:"lightColor" cbor:"1,keyasint"`
	LightRank  Rank  `json:"lightRank" cbor:"2,keyasint"`
	DarkColor  Color `json:"darkColor" cbor:"3,keyasint"`
	DarkRank   Rank  `json:"darkRank" cbor:"4,keyasint"`
}

// NewCard builds a card from its light and dark faces.
func NewCard(lightColor Color, lightRank Rank, darkColor Color, darkRank Rank) Card {
	return Card{LightColor: lightColor, LightRank: lightRank, DarkColor: darkColor, DarkRank: darkRank}
}

// Color returns the card's color on the given side.
func (c Card) Color(side Side) Color {
	if side == SideDark {
		return c.DarkColor
	}
	return c.LightColor
}

// Rank returns the card's rank on the given side.
func (c Card) Rank(side Side) Rank {
	if side == SideDark {
		return c.DarkRank
	}
	return c.LightRank
}

// IsWild reports whether the card is a wild on the given side.
func (c Card) IsWild(side Side) bool {
	switch c.Rank(side) {
	case RankWild, RankWildDrawTwo, RankWildDrawColor:
		return true
	}
	return false
}

// IsAction reports whether the card is a non-wild action card on the given side.
func (c Card) IsAction(side Side) bool {
	switch c.Rank(side) {
	case RankSkip, RankReverse, RankDrawOne, RankDrawFive, RankFlip:
		return true
	}
	return false
}

// Matches reports whether c may be played on top while activeColor is in force.
func (c Card) Matches(top Card, activeColor Color, side Side) bool {
	if c.IsWild(side) {
		return true
	}
	return c.Color(side) == activeColor || c.Rank(side) == top.Rank(side)
}

// Points is the card's scoring value on the given side.
func (c Card) Points(side Side) int { return c.Rank(side).Points() }

// Text renders one face, e.g. "RED-FIVE".
func (c Card) Text(side Side) string {
	return c.Color(side).String() + "-" + c.Rank(side).String()
}

// String renders both faces, e.g. "RED-FIVE / TEAL-FIVE".
func (c Card) String() string {
	return c.Text(SideLight) + " / " + c.Text(SideDark)
}

// Valid reports whether every face field holds a declared value.
func (c Card) Valid() bool {
	return c.LightColor.Valid() && c.DarkColor.Valid() && c.LightRank.Valid() && c.DarkRank.Valid()
}
