package model

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Game. Check them with errors.Is.
var (
	// ErrInvalidSquare indicates coordinates outside the board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrNoPieceAtSquare indicates a move from an empty square.
	ErrNoPieceAtSquare = errors.New("no piece at square")

	// ErrIllegalMove indicates a destination outside the legal set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNotYourTurn indicates a move by the side not to move.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrGameOver indicates a move after checkmate, stalemate or a draw.
	ErrGameOver = errors.New("game is over")

	// ErrNavigationOutOfRange indicates a history index outside [0, len-1].
	ErrNavigationOutOfRange = errors.New("navigation index out of range")

	// ErrInvalidSetup indicates a position the engine cannot play from.
	ErrInvalidSetup = errors.New("invalid setup")

	ErrInvalidTierMode = errors.New("unknown tier mode")
)

// MoveError ties a failure to the move that caused it.
type MoveError struct {
	From Position
	To   Position
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s-%s: %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
