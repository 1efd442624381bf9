package model

import (
	"sync"
)

// The Game struct owns one board and its history. Every exported method
// takes the lock, so a Game can be shared between goroutines even though the
// rules themselves run sequentially.
type Game struct {
	ID      string
	mu      sync.Mutex
	state   GameState
	history *History
}

type GameState struct {
	Board           *BoardState    `json:"boardState"`
	ToMove          PlayerColor    `json:"toMove"`
	LastMove        *LastMove      `json:"lastMove"`
	HalfmoveClock   int            `json:"halfmoveClock"`
	PositionHistory []Fingerprint  `json:"-"`
	Status          GameStatus     `json:"status"`
	IsCheck         bool           `json:"isCheck"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
}

func NewGame(id string) *Game {
	state := newGameState()
	return &Game{
		ID:      id,
		state:   state,
		history: newHistory(takeSnapshot(&state)),
	}
}

func newGameState() GameState {
	board := newBoard()
	return GameState{
		Board:           board,
		ToMove:          PlayerColorWhite,
		LastMove:        nil,
		HalfmoveClock:   0,
		PositionHistory: []Fingerprint{fingerprint(board)},
		Status:          StatusInProgress,
		IsCheck:         false,
		CapturedPieces:  newCapturedPieces(),
	}
}

func (s *GameState) clone() GameState {
	c := *s
	c.Board = s.Board.clone()
	if s.LastMove != nil {
		last := *s.LastMove
		c.LastMove = &last
	}
	c.PositionHistory = append([]Fingerprint(nil), s.PositionHistory...)
	c.CapturedPieces = s.CapturedPieces.clone()
	return c
}

// Winner returns the side that delivered checkmate.
func (s *GameState) Winner() (PlayerColor, bool) {
	if s.Status != StatusCheckmate {
		return "", false
	}
	return s.ToMove.Opponent(), true
}

// GetState returns a deep copy of the current state.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.clone()
}

func (g *Game) Status() GameStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Status
}

func (g *Game) ToMove() PlayerColor {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.ToMove
}

// LegalDestinations lists where the piece on pos may go. Only the side to
// move has destinations; an empty square or an opposing piece yields none.
func (g *Game) LegalDestinations(pos Position) ([]Position, error) {
	if !pos.Valid() {
		return nil, ErrInvalidSquare
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	piece := g.state.Board.At(pos)
	if piece == nil || piece.Color != g.state.ToMove {
		return []Position{}, nil
	}
	return g.state.legalDestinations(pos), nil
}

// LegalMoves lists every legal move of color, whether or not it is to move.
func (g *Game) LegalMoves(color PlayerColor) []SimpleMove {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.legalMoves(color)
}

// IsInCheck reports whether color's king is attacked.
func (g *Game) IsInCheck(color PlayerColor) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return isKingInCheck(g.state.Board, color)
}

// IsSquareAttacked reports whether any piece of attacker bears on pos.
func (g *Game) IsSquareAttacked(pos Position, attacker PlayerColor) (bool, error) {
	if !pos.Valid() {
		return false, ErrInvalidSquare
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return isSquareAttacked(g.state.Board, pos, attacker), nil
}
