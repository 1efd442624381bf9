package model

// PromotionPolicy decides what a pawn becomes on the far rank.
type PromotionPolicy int

const (
	// PromoteToQueen always promotes to a queen. No other piece is offered.
	PromoteToQueen PromotionPolicy = iota
)

// Promotion is the policy the executor applies.
const Promotion = PromoteToQueen

func (p PromotionPolicy) promote(pawn *Piece) *Piece {
	return &Piece{Type: Queen, Color: pawn.Color, HasMoved: true}
}

type castleSide struct {
	kingTo   int
	rookFrom int
	rookTo   int
	empty    []int
}

var (
	kingside  = castleSide{kingTo: 6, rookFrom: 7, rookTo: 5, empty: []int{5, 6}}
	queenside = castleSide{kingTo: 2, rookFrom: 0, rookTo: 3, empty: []int{1, 2, 3}}
)

func castleSideFor(kingTo int) castleSide {
	if kingTo > 4 {
		return kingside
	}
	return queenside
}

func (s *GameState) castlingDestinations(from Position) []Position {
	king := s.Board.At(from)
	if king == nil || king.Type != King || king.HasMoved {
		return nil
	}
	if from != (Position{X: 4, Y: king.Color.homeRow()}) {
		return nil
	}
	if isKingInCheck(s.Board, king.Color) {
		return nil
	}
	var dests []Position
	for _, side := range []castleSide{kingside, queenside} {
		if s.canCastle(from, king.Color, side) {
			dests = append(dests, Position{X: side.kingTo, Y: from.Y})
		}
	}
	return dests
}

func (s *GameState) canCastle(from Position, color PlayerColor, side castleSide) bool {
	rook := s.Board.At(Position{X: side.rookFrom, Y: from.Y})
	if rook == nil || rook.Type != Rook || rook.Color != color || rook.HasMoved {
		return false
	}
	for _, x := range side.empty {
		if s.Board.At(Position{X: x, Y: from.Y}) != nil {
			return false
		}
	}
	lo, hi := from.X, side.kingTo
	if lo > hi {
		lo, hi = hi, lo
	}
	for x := lo; x <= hi; x++ {
		if isSquareAttacked(s.Board, Position{X: x, Y: from.Y}, color.Opponent()) {
			return false
		}
	}
	return true
}

// enPassantDestination returns the capture square for the pawn on from when
// the previous move was an adjacent enemy pawn's double step.
func (s *GameState) enPassantDestination(from Position) (Position, bool) {
	pawn := s.Board.At(from)
	last := s.LastMove
	if pawn == nil || pawn.Type != Pawn || !last.isPawnDoubleStep() || last.Color == pawn.Color {
		return Position{}, false
	}
	if from.Y != last.To.Y || abs(from.X-last.To.X) != 1 {
		return Position{}, false
	}
	if victim := s.Board.At(last.To); victim == nil || victim.Type != Pawn || victim.Color == pawn.Color {
		return Position{}, false
	}
	to := Position{X: last.To.X, Y: last.To.Y + pawn.Color.forward()}
	if s.Board.At(to) != nil {
		return Position{}, false
	}
	return to, true
}
