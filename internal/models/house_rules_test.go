package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseRulesDefaults(t *testing.T) {
	r := DefaultHouseRules()
	assert.Equal(t, DefaultHandSize, r.HandSize)
	assert.Equal(t, DefaultWinningScore, r.WinningScore)
	assert.Equal(t, DefaultUndoLimit, r.UndoLimit)
	require.NoError(t, r.Validate())
}

func TestParseRules(t *testing.T) {
	r, err := ParseRules(map[string]interface{}{"handSize": float64(5), "winningScore": 250, "undoLimit": nil}, DefaultHouseRules())
	require.NoError(t, err)
	assert.Equal(t, 5, r.HandSize)
	assert.Equal(t, 250, r.WinningScore)
	assert.Equal(t, DefaultUndoLimit, r.UndoLimit)

	tests := []struct {
		name  string
		input map[string]interface{}
	}{
		{"wrong type", map[string]interface{}{"handSize": "seven"}},
		{"fraction", map[string]interface{}{"handSize": 6.5}},
		{"negative", map[string]interface{}{"winningScore": float64(-1)}},
		{"too many cards", map[string]interface{}{"handSize": float64(30)}},
		{"one player", map[string]interface{}{"minPlayers": float64(1)}},
		{"eight players", map[string]interface{}{"maxPlayers": float64(8)}},
		{"more than four", map[string]interface{}{"minPlayers": float64(5), "maxPlayers": float64(5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules(tt.input, DefaultHouseRules())
			assert.Error(t, err)
		})
	}
}

func TestFlipDeckSet(t *testing.T) {
	deck := FlipDeck()
	require.Len(t, deck, DeckSize)
	assert.True(t, IsFlipDeck(deck))

	reversed := make([]Card, len(deck))
	for i, c := range deck {
		reversed[len(deck)-1-i] = c
	}
	assert.True(t, IsFlipDeck(reversed))

	assert.False(t, IsFlipDeck(deck[1:]))
	assert.False(t, IsFlipDeck(append(append([]Card(nil), deck[1:]...), deck[2])))
	assert.False(t, IsFlipDeck(nil))
}
