// internal/handlers/game_server.go
package handlers

import (
	"github.com/qydan/unoflip/internal/game"
	"github.com/qydan/unoflip/internal/models"
	"github.com/qydan/unoflip/internal/persist"
	"github.com/sirupsen/logrus"
)

// GameServer holds the live sessions and the backends that games are wired to.
type GameServer struct {
	GameStore *game.GameStore
	Rules     models.HouseRules
	Logger    *logrus.Logger

	// Slots stores named saves; nil disables the save and load routes.
	Slots persist.SlotStore
	// Publisher receives every engine action; nil disables the action log.
	Publisher game.ActionPublisher
}

func NewGameServer(logger *logrus.Logger, rules models.HouseRules) *GameServer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GameServer{
		GameStore: game.NewGameStore(),
		Rules:     rules.WithDefaults(),
		Logger:    logger,
	}
}

// gameOptions wires new and loaded games to the server's logger and publisher.
func (s *GameServer) gameOptions() []game.Option {
	opts := []game.Option{game.WithLogger(logrus.NewEntry(s.Logger))}
	if s.Publisher != nil {
		opts = append(opts, game.WithPublisher(s.Publisher))
	}
	return opts
}
