// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/qydan/unoflip/internal/game"
	"github.com/qydan/unoflip/internal/models"
	"github.com/qydan/unoflip/internal/persist"
)

// CreateGameRequest is the body of POST /game/create. Players wins over NumPlayers;
// with neither, two human seats are created.
type CreateGameRequest struct {
	Players    []models.Player        `json:"players"`
	NumPlayers int                    `json:"numPlayers"`
	HouseRules map[string]interface{} `json:"houseRules"`
}

// CreateGameHandler seats the requested players and deals the first round.
func (s *GameServer) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	rules, err := models.ParseRules(req.HouseRules, s.Rules)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid house rules: %v", err), http.StatusBadRequest)
		return
	}

	players := req.Players
	if len(players) == 0 {
		n := req.NumPlayers
		if n == 0 {
			n = rules.MinPlayers
		}
		for i := 1; i <= n; i++ {
			players = append(players, models.NewPlayer(fmt.Sprintf("Player %d", i), false))
		}
	}

	g, err := game.NewUnoGame(players, rules, s.gameOptions()...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess := s.GameStore.AddGame(g)

	// seats before the first human act straight away
	sess.Mu.Lock()
	autoPlay(sess.Game)
	sess.Mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{"game_id": g.ID})
}

// SaveGameHandler stores the game under the slot query parameter.
func (s *GameServer) SaveGameHandler(w http.ResponseWriter, r *http.Request) {
	if s.Slots == nil {
		http.Error(w, "save slots are not configured", http.StatusServiceUnavailable)
		return
	}
	gameID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid game id", http.StatusBadRequest)
		return
	}
	slot := r.URL.Query().Get("slot")
	if slot == "" {
		http.Error(w, "missing slot", http.StatusBadRequest)
		return
	}
	sess, ok := s.GameStore.GetSession(gameID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	sess.Mu.Lock()
	err = sess.Game.SaveSlot(r.Context(), s.Slots, slot)
	sess.Mu.Unlock()
	if err != nil {
		s.Logger.WithError(err).Errorf("save game %s to slot %q", gameID, slot)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"game_id": gameID, "slot": slot})
}

// LoadGameHandler restores the slot named by the query parameter as a live game.
// A live game with the same id is replaced.
func (s *GameServer) LoadGameHandler(w http.ResponseWriter, r *http.Request) {
	if s.Slots == nil {
		http.Error(w, "save slots are not configured", http.StatusServiceUnavailable)
		return
	}
	slot := r.URL.Query().Get("slot")
	if slot == "" {
		http.Error(w, "missing slot", http.StatusBadRequest)
		return
	}

	g, err := game.LoadSlot(r.Context(), s.Slots, slot, s.gameOptions()...)
	switch {
	case errors.Is(err, persist.ErrSlotNotFound):
		http.Error(w, "slot not found", http.StatusNotFound)
		return
	case errors.Is(err, persist.ErrCorruptData):
		http.Error(w, "slot holds unreadable data", http.StatusUnprocessableEntity)
		return
	case err != nil:
		s.Logger.WithError(err).Errorf("load slot %q", slot)
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}
	s.GameStore.AddGame(g)
	writeJSON(w, http.StatusOK, map[string]interface{}{"game_id": g.ID, "slot": slot})
}

// ListSlotsHandler lists stored saves.
func (s *GameServer) ListSlotsHandler(w http.ResponseWriter, r *http.Request) {
	if s.Slots == nil {
		http.Error(w, "save slots are not configured", http.StatusServiceUnavailable)
		return
	}
	slots, err := s.Slots.ListSlots(r.Context())
	if err != nil {
		s.Logger.WithError(err).Error("list slots")
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}
	if slots == nil {
		slots = []persist.SlotInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"slots": slots})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
