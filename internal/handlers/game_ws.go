// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/qydan/unoflip/internal/game"
	"github.com/qydan/unoflip/internal/middleware"
	"github.com/qydan/unoflip/internal/models"
	"github.com/sirupsen/logrus"
)

// maxAutoSteps bounds the AI moves run after a single client command.
const maxAutoSteps = 64

// GameMessage is one client command. Type is a models.Action* value or "ping".
type GameMessage struct {
	Type  string       `json:"type"`
	Index int          `json:"index,omitempty"`
	Color models.Color `json:"color,omitempty"`
}

// wsView forwards engine notifications to one websocket client.
type wsView struct {
	conn   *websocket.Conn
	logger *logrus.Entry
}

func (v *wsView) HandleUpdate(ev game.Event) {
	sendWsMessage(v.conn, v.logger, map[string]interface{}{"type": "update", "state": ev})
}

func (v *wsView) HandleRoundEnd(summary string) {
	sendWsMessage(v.conn, v.logger, map[string]interface{}{"type": "round_end", "summary": summary})
}

func (v *wsView) HandleGameEnd(summary string) {
	sendWsMessage(v.conn, v.logger, map[string]interface{}{"type": "game_end", "summary": summary})
}

// PromptForWildColor declines: a websocket client sends its color with the play command.
func (v *wsView) PromptForWildColor() models.Color { return models.ColorNone }

// GameWSHandler upgrades the HTTP connection to WebSocket for a specific game instance,
// attaches the client as a view and runs the read loop.
func GameWSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid game_id format", http.StatusBadRequest)
			return
		}
		sess, ok := gs.GameStore.GetSession(gameID)
		if !ok {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		sess.Mu.Lock()
		over := sess.Game.IsOver()
		sess.Mu.Unlock()
		if over {
			http.Error(w, "Game has already ended", http.StatusGone)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"game"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for game %s: %v", gameID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "game" {
			logger.Warnf("Client for game %s connected with invalid subprotocol: %s", gameID, c.Subprotocol())
			c.Close(BadSubprotocolError, "Client must use the 'game' subprotocol.")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		view := &wsView{conn: c, logger: logger.WithField("game", gameID)}
		sess.Mu.Lock()
		sess.Game.AddView(view)
		sess.Mu.Unlock()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		err = readGameMessages(ctx, c, sess, view.logger)

		sess.Mu.Lock()
		sess.Game.RemoveView(view)
		sess.Mu.Unlock()
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
		c.Close(websocket.StatusNormalClosure, "")
	}
}

// readGameMessages reads client commands until the connection closes, applying each one
// under the session lock and letting AI seats respond before the lock is released.
func readGameMessages(ctx context.Context, c *websocket.Conn, sess *game.Session, logger *logrus.Entry) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			logger.Warnf("Received non-text message type %d. Ignoring.", msgType)
			continue
		}

		var msg GameMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sendWsError(c, logger, "invalid_json", "Invalid JSON format.")
			continue
		}
		if msg.Type == "ping" {
			sendWsMessage(c, logger, map[string]string{"type": "pong"})
			continue
		}
		logger.Debugf("Received action '%s'", msg.Type)

		sess.Mu.Lock()
		err = sess.Game.HandleAction(models.GameAction{ActionType: msg.Type, Index: msg.Index, Color: msg.Color})
		if err == nil {
			autoPlay(sess.Game)
		}
		sess.Mu.Unlock()

		if err != nil {
			sendWsError(c, logger, errorCode(err), err.Error())
		}
	}
}

// autoPlay lets AI seats act until a human holds the turn. Callers hold the session lock.
func autoPlay(g *game.UnoGame) {
	if _, err := g.AutoPlay(maxAutoSteps); err != nil {
		logrus.WithError(err).WithField("game", g.ID).Warn("ai turn failed")
	}
}

// errorCode maps engine errors to stable identifiers for clients.
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidIndex):
		return "invalid_index"
	case errors.Is(err, game.ErrIllegalMove):
		return "illegal_move"
	case errors.Is(err, game.ErrInvalidColor):
		return "invalid_color"
	case errors.Is(err, game.ErrNotYetActed):
		return "not_yet_acted"
	case errors.Is(err, game.ErrMustAdvance):
		return "must_advance"
	case errors.Is(err, game.ErrNothingToUndo):
		return "nothing_to_undo"
	case errors.Is(err, game.ErrNothingToRedo):
		return "nothing_to_redo"
	case errors.Is(err, game.ErrGameOver):
		return "game_over"
	case errors.Is(err, game.ErrDeckExhausted):
		return "deck_exhausted"
	case errors.Is(err, game.ErrUnknownAction):
		return "unknown_action"
	}
	return "error"
}

// sendWsMessage marshals a message and writes it with a timeout.
func sendWsMessage(c *websocket.Conn, logger *logrus.Entry, message interface{}) {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		logger.Errorf("Error marshaling WebSocket message: %v", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Write(writeCtx, websocket.MessageText, msgBytes); err != nil {
		status := websocket.CloseStatus(err)
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			logger.Warnf("Error writing WebSocket message: %v", err)
		}
	}
}

// sendWsError sends a structured error message to the client.
func sendWsError(c *websocket.Conn, logger *logrus.Entry, code, errorMsg string) {
	sendWsMessage(c, logger, map[string]interface{}{
		"type":    "error",
		"code":    code,
		"message": errorMsg,
	})
}
