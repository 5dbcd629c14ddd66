package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardFaces(t *testing.T) {
	c := NewCard(ColorBlue, RankDrawOne, ColorPink, RankDrawFive)

	assert.Equal(t, ColorBlue, c.Color(SideLight))
	assert.Equal(t, RankDrawFive, c.Rank(SideDark))
	assert.Equal(t, "BLUE-DRAW_ONE", c.Text(SideLight))
	assert.Equal(t, "BLUE-DRAW_ONE / PINK-DRAW_FIVE", c.String())
	assert.Equal(t, 20, c.Points(SideLight))
	assert.Equal(t, 30, c.Points(SideDark))
	assert.True(t, c.IsAction(SideLight))
	assert.False(t, c.IsWild(SideDark))
}

func TestCardMatches(t *testing.T) {
	top := NewCard(ColorRed, RankFive, ColorOrange, RankFive)
	wild := NewCard(ColorWild, RankWild, ColorWild, RankWildDrawColor)

	tests := []struct {
		name   string
		card   Card
		active Color
		side   Side
		want   bool
	}{
		{"same color", NewCard(ColorRed, RankNine, ColorOrange, RankNine), ColorRed, SideLight, true},
		{"same rank", NewCard(ColorBlue, RankFive, ColorPink, RankFive), ColorRed, SideLight, true},
		{"neither", NewCard(ColorBlue, RankSix, ColorPink, RankSix), ColorRed, SideLight, false},
		{"active color after wild", NewCard(ColorBlue, RankSix, ColorPink, RankSix), ColorBlue, SideLight, true},
		{"wild always", wild, ColorGreen, SideDark, true},
		{"dark face", NewCard(ColorGreen, RankOne, ColorTeal, RankOne), ColorTeal, SideDark, true},
		{"light face ignored on dark", NewCard(ColorRed, RankOne, ColorTeal, RankOne), ColorOrange, SideDark, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.Matches(top, tt.active, tt.side))
		})
	}
}

func TestRankPoints(t *testing.T) {
	assert.Equal(t, 0, RankZero.Points())
	assert.Equal(t, 9, RankNine.Points())
	assert.Equal(t, 20, RankSkip.Points())
	assert.Equal(t, 20, RankReverse.Points())
	assert.Equal(t, 30, RankFlip.Points())
	assert.Equal(t, 30, RankSkipEveryone.Points())
	assert.Equal(t, 40, RankWild.Points())
	assert.Equal(t, 50, RankWildDrawTwo.Points())
	assert.Equal(t, 60, RankWildDrawColor.Points())
}

func TestSideColors(t *testing.T) {
	assert.Equal(t, SideDark, SideLight.Flip())
	assert.Equal(t, ColorTeal, SideDark.SafeColor())
	assert.Equal(t, ColorRed, SideLight.SafeColor())
	assert.True(t, SideDark.HasColor(ColorPurple))
	assert.False(t, SideDark.HasColor(ColorRed))
	assert.False(t, SideLight.HasColor(ColorWild))
	assert.False(t, SideLight.HasColor(ColorNone))
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(GameAction{ActionType: ActionPlay, Index: 2, Color: ColorTeal})
	require.NoError(t, err)
	assert.JSONEq(t, `{"action_type":"play","index":2,"color":"TEAL"}`, string(data))

	var a GameAction
	require.NoError(t, json.Unmarshal([]byte(`{"action_type":"play","color":"purple"}`), &a))
	assert.Equal(t, ColorPurple, a.Color)

	assert.Error(t, json.Unmarshal([]byte(`{"color":"MAUVE"}`), &a))

	_, err = ParseColor(" green ")
	assert.NoError(t, err)
}

func TestGameStateClone(t *testing.T) {
	s := GameState{
		Players:  []Player{NewPlayer("a", false), {Name: "b"}},
		DrawPile: []Card{NewCard(ColorRed, RankOne, ColorOrange, RankOne)},
	}
	s.Players[0].Hand = append(s.Players[0].Hand, NewCard(ColorBlue, RankTwo, ColorPink, RankTwo))

	c := s.Clone()
	require.Equal(t, s, c)
	assert.Nil(t, c.Discard)
	assert.Nil(t, c.Players[1].Hand)

	c.Players[0].Hand[0] = Card{}
	c.DrawPile[0] = Card{}
	c.Players[0].Score = 9
	assert.Equal(t, ColorBlue, s.Players[0].Hand[0].LightColor)
	assert.Equal(t, ColorRed, s.DrawPile[0].LightColor)
	assert.Zero(t, s.Players[0].Score)
}

func TestPlayerIndex(t *testing.T) {
	s := GameState{Players: make([]Player, 3), Current: 0, Direction: -1}
	assert.Equal(t, 2, s.NextIndex())
	assert.Equal(t, 1, s.PlayerIndex(-2))
	assert.Equal(t, 0, s.PlayerIndex(6))
}

func TestPlayerHand(t *testing.T) {
	p := NewPlayer("a", false)
	p.Hand = []Card{
		NewCard(ColorRed, RankOne, ColorOrange, RankOne),
		NewCard(ColorWild, RankWild, ColorWild, RankWildDrawColor),
		NewCard(ColorRed, RankSkip, ColorOrange, RankSkipEveryone),
	}
	assert.Equal(t, 61, p.HandPoints(SideLight))
	assert.Equal(t, 91, p.HandPoints(SideDark))

	removed := p.RemoveCard(1)
	assert.True(t, removed.IsWild(SideLight))
	assert.Equal(t, RankSkip, p.Hand[1].LightRank)

	p.AddScore(12)
	p.ResetHand()
	assert.Empty(t, p.Hand)
	assert.Equal(t, 12, p.Score)
}
