package model

import "fmt"

// Setup describes an arbitrary starting position.
type Setup struct {
	Pieces        map[Position]Piece
	ToMove        PlayerColor
	HalfmoveClock int
	LastMove      *LastMove
}

// NewGameFromSetup starts a game from setup. The position needs exactly one
// king per side and the side not to move must not be in check. Status is
// evaluated straight away.
func NewGameFromSetup(id string, setup Setup) (*Game, error) {
	board := &BoardState{}
	kings := map[PlayerColor]int{}
	for pos, piece := range setup.Pieces {
		if !pos.Valid() {
			return nil, fmt.Errorf("%w: %v is off the board", ErrInvalidSetup, pos)
		}
		if piece.Color != PlayerColorWhite && piece.Color != PlayerColorBlack {
			return nil, fmt.Errorf("%w: unknown color %q at %v", ErrInvalidSetup, piece.Color, pos)
		}
		switch piece.Type {
		case King:
			kings[piece.Color]++
		case Queen, Rook, Bishop, Knight, Pawn:
		default:
			return nil, fmt.Errorf("%w: unknown piece %q at %v", ErrInvalidSetup, piece.Type, pos)
		}
		p := piece
		board.set(pos, &p)
	}
	if kings[PlayerColorWhite] != 1 || kings[PlayerColorBlack] != 1 {
		return nil, fmt.Errorf("%w: need one king per side, have white=%d black=%d",
			ErrInvalidSetup, kings[PlayerColorWhite], kings[PlayerColorBlack])
	}

	toMove := setup.ToMove
	if toMove == "" {
		toMove = PlayerColorWhite
	}
	if isKingInCheck(board, toMove.Opponent()) {
		return nil, fmt.Errorf("%w: %s is in check with %s to move", ErrInvalidSetup, toMove.Opponent(), toMove)
	}

	state := GameState{
		Board:           board,
		ToMove:          toMove,
		HalfmoveClock:   setup.HalfmoveClock,
		PositionHistory: []Fingerprint{fingerprint(board)},
		CapturedPieces:  newCapturedPieces(),
	}
	if setup.LastMove != nil {
		last := *setup.LastMove
		state.LastMove = &last
	}
	state.evaluate()

	return &Game{
		ID:      id,
		state:   state,
		history: newHistory(takeSnapshot(&state)),
	}, nil
}
