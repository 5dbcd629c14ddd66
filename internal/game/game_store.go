package game

import (
	"sync"

	"github.com/google/uuid"
)

// Session pairs a game with the lock its adapters hold around every engine call.
type Session struct {
	Mu   sync.Mutex
	Game *UnoGame
}

// GameStore indexes live sessions by game id.
type GameStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewGameStore() *GameStore {
	return &GameStore{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// AddGame registers g, replacing any session with the same id.
func (s *GameStore) AddGame(g *UnoGame) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{Game: g}
	s.sessions[g.ID] = sess
	return sess
}

func (s *GameStore) GetSession(id uuid.UUID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, exists := s.sessions[id]
	return sess, exists
}

func (s *GameStore) DeleteGame(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len is the number of live sessions.
func (s *GameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
