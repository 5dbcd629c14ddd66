// internal/handlers/api_server.go
package handlers

import (
	"net/http"

	"github.com/qydan/unoflip/internal/middleware"
)

// Routes returns the HTTP handler serving every game endpoint.
func (s *GameServer) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /game/create", s.CreateGameHandler)
	mux.HandleFunc("POST /game/{id}/save", s.SaveGameHandler)
	mux.HandleFunc("POST /game/load", s.LoadGameHandler)
	mux.HandleFunc("GET /slots", s.ListSlotsHandler)
	mux.HandleFunc("GET /game/ws/{id}", GameWSHandler(s.Logger, s))

	return middleware.LogMiddleware(s.Logger)(mux)
}
