// internal/models/house_rules.go
package models

import "fmt"

// Defaults applied to zero-valued HouseRules fields.
const (
	DefaultHandSize     = 7
	DefaultWinningScore = 500
	DefaultUndoLimit    = 50
	DefaultMinPlayers   = 2
	DefaultMaxPlayers   = 4
)

// HouseRules captures the table configuration for one game.
type HouseRules struct {
	// HandSize is the number of cards dealt to each player at the start of a round.
	HandSize int `json:"handSize" cbor:"1,keyasint"`

	// WinningScore ends the game once a round winner's cumulative score reaches it.
	WinningScore int `json:"winningScore" cbor:"2,keyasint"`

	// UndoLimit caps the undo stack; the oldest snapshot is evicted past it.
	UndoLimit int `json:"undoLimit" cbor:"3,keyasint"`

	MinPlayers int `json:"minPlayers" cbor:"4,keyasint"`
	MaxPlayers int `json:"maxPlayers" cbor:"5,keyasint"`
}

// DefaultHouseRules returns the standard Uno Flip table rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{}.WithDefaults()
}

// WithDefaults fills every zero field with its default.
func (h HouseRules) WithDefaults() HouseRules {
	if h.HandSize == 0 {
		h.HandSize = DefaultHandSize
	}
	if h.WinningScore == 0 {
		h.WinningScore = DefaultWinningScore
	}
	if h.UndoLimit == 0 {
		h.UndoLimit = DefaultUndoLimit
	}
	if h.MinPlayers == 0 {
		h.MinPlayers = DefaultMinPlayers
	}
	if h.MaxPlayers == 0 {
		h.MaxPlayers = DefaultMaxPlayers
	}
	return h
}

// Validate rejects rule sets the engine cannot play with.
func (h HouseRules) Validate() error {
	switch {
	case h.HandSize < 1:
		return fmt.Errorf("handSize must be positive")
	case h.WinningScore < 1:
		return fmt.Errorf("winningScore must be positive")
	case h.UndoLimit < 1:
		return fmt.Errorf("undoLimit must be positive")
	case h.MinPlayers < 2:
		return fmt.Errorf("minPlayers must be at least 2")
	case h.MaxPlayers < h.MinPlayers:
		return fmt.Errorf("maxPlayers must not be below minPlayers")
	case h.MaxPlayers > DefaultMaxPlayers:
		return fmt.Errorf("maxPlayers must be at most %d", DefaultMaxPlayers)
	case h.MaxPlayers*h.HandSize >= DeckSize:
		return fmt.Errorf("%d players with %d cards each would exhaust the deck", h.MaxPlayers, h.HandSize)
	}
	return nil
}

// Update will update the house rules with the new rules provided.
// Keys that are absent or null are ignored and the old value persists.
func (h *HouseRules) Update(newRules map[string]interface{}) error {
	assignInt := func(field *int, key string) error {
		val, exists := newRules[key]
		if !exists || val == nil {
			return nil
		}
		// JSON numbers decode as float64
		switch v := val.(type) {
		case float64:
			if v != float64(int(v)) {
				return fmt.Errorf("%s must be a whole number", key)
			}
			*field = int(v)
		case int:
			*field = v
		default:
			return fmt.Errorf("invalid type for %s", key)
		}
		if *field < 0 {
			return fmt.Errorf("%s must be non-negative", key)
		}
		return nil
	}

	if err := assignInt(&h.HandSize, "handSize"); err != nil {
		return err
	}
	if err := assignInt(&h.WinningScore, "winningScore"); err != nil {
		return err
	}
	if err := assignInt(&h.UndoLimit, "undoLimit"); err != nil {
		return err
	}
	if err := assignInt(&h.MinPlayers, "minPlayers"); err != nil {
		return err
	}
	return assignInt(&h.MaxPlayers, "maxPlayers")
}

// ParseRules applies a map of overrides on top of current and validates the result.
func ParseRules(rules map[string]interface{}, current HouseRules) (HouseRules, error) {
	houseRules := current
	if err := houseRules.Update(rules); err != nil {
		return current, err
	}
	houseRules = houseRules.WithDefaults()
	return houseRules, houseRules.Validate()
}
