package service

import (
	"sync"
)

// GameManager is the in-memory registry of hosted games.
type GameManager struct {
	games map[string]*Session
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*Session),
	}
}

func (gm *GameManager) AddGame(s *Session) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[s.ID]; exists {
		return ErrGameExists
	}
	gm.games[s.ID] = s
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return s, nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.games, gameID)
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
