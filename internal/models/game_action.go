package models

// Action types accepted by the engine's command dispatcher.
const (
	ActionPlay = "play"
	ActionDraw = "draw"
	ActionNext = "next"
	ActionAI   = "ai"
	ActionUndo = "undo"
	ActionRedo = "redo"
)

// GameAction captures a command issued by an input adapter (websocket client, terminal).
// For "play", Index selects the hand card and Color is the chosen color for wilds.
type GameAction struct {
	ActionType string `json:"action_type"`
	Index      int    `json:"index,omitempty"`
	Color      Color  `json:"color,omitempty"`
}
