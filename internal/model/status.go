package model

import (
	"fmt"
	"sort"
	"strings"
)

type GameStatus string

const (
	StatusInProgress                 GameStatus = "in_progress"
	StatusCheck                      GameStatus = "check"
	StatusCheckmate                  GameStatus = "checkmate"
	StatusStalemate                  GameStatus = "stalemate"
	StatusDrawByRepetition           GameStatus = "draw_by_repetition"
	StatusDrawByFiftyMove            GameStatus = "draw_by_fifty_move"
	StatusDrawByInsufficientMaterial GameStatus = "draw_by_insufficient_material"
)

// IsTerminal reports whether no further moves are played.
func (s GameStatus) IsTerminal() bool {
	return s != StatusInProgress && s != StatusCheck
}

func (s GameStatus) IsDraw() bool {
	switch s {
	case StatusStalemate, StatusDrawByRepetition, StatusDrawByFiftyMove, StatusDrawByInsufficientMaterial:
		return true
	}
	return false
}

const (
	fiftyMoveLimit  = 50
	repetitionLimit = 3
)

// Fingerprint identifies piece placement only. Side to move, castling rights
// and en passant are not part of it.
type Fingerprint string

func fingerprint(board *BoardState) Fingerprint {
	entries := make([]string, 0, 32)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if piece := board.Board[y][x]; piece != nil {
				entries = append(entries, fmt.Sprintf("%s_%s_%d_%d", piece.Color, piece.Type, y, x))
			}
		}
	}
	sort.Strings(entries)
	return Fingerprint(strings.Join(entries, ","))
}

// evaluate refreshes IsCheck and Status for the side to move. A draw rule
// that holds replaces whatever the check/mate pass produced.
func (s *GameState) evaluate() {
	s.IsCheck = isKingInCheck(s.Board, s.ToMove)
	s.Status = StatusInProgress
	if s.IsCheck {
		s.Status = StatusCheck
		if !s.hasLegalMove(s.ToMove) {
			s.Status = StatusCheckmate
		}
	} else if !s.hasLegalMove(s.ToMove) {
		s.Status = StatusStalemate
	}

	switch {
	case s.isThreefoldRepetition():
		s.Status = StatusDrawByRepetition
	case s.HalfmoveClock >= fiftyMoveLimit:
		s.Status = StatusDrawByFiftyMove
	case hasInsufficientMaterial(s.Board):
		s.Status = StatusDrawByInsufficientMaterial
	}
}

func (s *GameState) isThreefoldRepetition() bool {
	current := fingerprint(s.Board)
	count := 0
	for _, fp := range s.PositionHistory {
		if fp == current {
			count++
		}
	}
	return count >= repetitionLimit
}

// hasInsufficientMaterial covers bare kings and a single minor piece against
// a bare king. Other drawn material balances are not detected.
func hasInsufficientMaterial(board *BoardState) bool {
	white, black := board.squares(PlayerColorWhite), board.squares(PlayerColorBlack)
	switch {
	case len(white) == 1 && len(black) == 1:
		return true
	case len(white) == 2 && len(black) == 1:
		return hasMinorPiece(board, white)
	case len(black) == 2 && len(white) == 1:
		return hasMinorPiece(board, black)
	}
	return false
}

func hasMinorPiece(board *BoardState, squares []Position) bool {
	for _, pos := range squares {
		if t := board.At(pos).Type; t == Knight || t == Bishop {
			return true
		}
	}
	return false
}
