package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules/internal/model"
)

type GameMode string

const (
	ModeTwoPlayer GameMode = "two_player"
	ModeComputer  GameMode = "computer"
)

func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "two_player", "twoplayer", "pvp":
		return ModeTwoPlayer, nil
	case "computer", "ai", "pve":
		return ModeComputer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGameMode, s)
}

// GameOptions is what a client picks when it opens a game.
type GameOptions struct {
	Mode          GameMode          `json:"mode"`
	Difficulty    model.TierMode    `json:"difficulty"`
	ComputerColor model.PlayerColor `json:"computerColor,omitempty"`
}

// GameView is the state a client sees: the rules state plus the session
// around it.
type GameView struct {
	GameID string `json:"gameId"`
	GameOptions
	model.GameState
	Winner        *model.PlayerColor          `json:"winner"`
	HistoryLength int                         `json:"historyLength"`
	CurrentIndex  int                         `json:"currentIndex"`
	ElapsedMs     map[model.PlayerColor]int64 `json:"elapsedMs"`
}

// Session is one hosted game. mu serializes the compound operations the
// service runs on it (a move, the clock switch and a computer reply).
type Session struct {
	ID          string
	Options     GameOptions
	mu          sync.Mutex
	game        *model.Game
	clocks      map[model.PlayerColor]*Clock
	connections *GameConnections
}

func newSession(id string, opts GameOptions, now func() time.Time) *Session {
	s := &Session{
		ID:      id,
		Options: opts,
		clocks: map[model.PlayerColor]*Clock{
			model.PlayerColorWhite: NewClock(now),
			model.PlayerColorBlack: NewClock(now),
		},
		connections: NewGameConnections(),
	}
	s.reset()
	return s
}

// reset replaces the game with a fresh one and zeroes both clocks.
func (s *Session) reset() {
	s.game = model.NewGame(s.ID)
	for _, c := range s.clocks {
		c.Reset()
	}
	s.syncClocks()
}

// syncClocks runs the clock of the side to move and stops the other. Both
// stop once the game is over.
func (s *Session) syncClocks() {
	toMove := s.game.ToMove()
	over := s.game.Status().IsTerminal()
	for color, c := range s.clocks {
		if color == toMove && !over {
			c.Start()
		} else {
			c.Stop()
		}
	}
}

func (s *Session) isComputerTurn() bool {
	return s.Options.Mode == ModeComputer &&
		s.game.ToMove() == s.Options.ComputerColor &&
		!s.game.Status().IsTerminal()
}

func (s *Session) view() GameView {
	state := s.game.GetState()
	v := GameView{
		GameID:        s.ID,
		GameOptions:   s.Options,
		GameState:     state,
		HistoryLength: s.game.HistoryLength(),
		CurrentIndex:  s.game.CurrentIndex(),
		ElapsedMs:     make(map[model.PlayerColor]int64, len(s.clocks)),
	}
	if winner, ok := state.Winner(); ok {
		v.Winner = &winner
	}
	for color, c := range s.clocks {
		v.ElapsedMs[color] = c.Elapsed().Milliseconds()
	}
	return v
}
