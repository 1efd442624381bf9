package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

// forward is the row delta a pawn of this color moves by.
func (c PlayerColor) forward() int {
	if c == PlayerColorWhite {
		return -1
	}
	return 1
}

func (c PlayerColor) homeRow() int {
	if c == PlayerColorWhite {
		return 7
	}
	return 0
}

func (c PlayerColor) pawnRow() int {
	if c == PlayerColorWhite {
		return 6
	}
	return 1
}

func (c PlayerColor) promotionRow() int {
	if c == PlayerColorWhite {
		return 0
	}
	return 7
}

// Piece is a man on the board. Its square is wherever the grid holds it.
type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	HasMoved bool        `json:"hasMoved"`
}

// Position is a square: X is the column, Y the row. Row 0 is black's back rank.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Valid() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

type BoardState struct {
	Board [8][8]*Piece `json:"board"`
}

func (b *BoardState) At(p Position) *Piece {
	return b.Board[p.Y][p.X]
}

func (b *BoardState) set(p Position, piece *Piece) {
	b.Board[p.Y][p.X] = piece
}

func (b *BoardState) clone() *BoardState {
	c := &BoardState{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if piece := b.Board[y][x]; piece != nil {
				cp := *piece
				c.Board[y][x] = &cp
			}
		}
	}
	return c
}

// squares returns the occupied squares of color in row-major order.
func (b *BoardState) squares(color PlayerColor) []Position {
	var out []Position
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if piece := b.Board[y][x]; piece != nil && piece.Color == color {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

// kingPosition panics when color has no king: every reachable board has
// exactly one per side.
func (b *BoardState) kingPosition(color PlayerColor) Position {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if piece := b.Board[y][x]; piece != nil && piece.Type == King && piece.Color == color {
				return Position{X: x, Y: y}
			}
		}
	}
	panic(fmt.Sprintf("model: no %s king on board", color))
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() *BoardState {
	board := &BoardState{}
	for x := 0; x < 8; x++ {
		board.Board[0][x] = &Piece{Type: backRank[x], Color: PlayerColorBlack}
		board.Board[1][x] = &Piece{Type: Pawn, Color: PlayerColorBlack}
		board.Board[6][x] = &Piece{Type: Pawn, Color: PlayerColorWhite}
		board.Board[7][x] = &Piece{Type: backRank[x], Color: PlayerColorWhite}
	}
	return board
}
