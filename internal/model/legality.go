package model

// isGeometricMove reports whether the piece on from may move to to by its
// movement pattern alone. Castling and en passant are not geometric moves and
// the mover's own king is not considered.
func isGeometricMove(board *BoardState, from, to Position) bool {
	piece := board.At(from)
	if piece == nil || from == to {
		return false
	}
	if target := board.At(to); target != nil && target.Color == piece.Color {
		return false
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	switch piece.Type {
	case Pawn:
		return isPawnMove(board, piece, from, to)
	case Rook:
		return (dx == 0 || dy == 0) && isPathClear(board, from, to)
	case Bishop:
		return abs(dx) == abs(dy) && isPathClear(board, from, to)
	case Queen:
		return (dx == 0 || dy == 0 || abs(dx) == abs(dy)) && isPathClear(board, from, to)
	case King:
		return abs(dx) <= 1 && abs(dy) <= 1
	case Knight:
		return (abs(dx) == 2 && abs(dy) == 1) || (abs(dx) == 1 && abs(dy) == 2)
	}
	return false
}

func isPawnMove(board *BoardState, pawn *Piece, from, to Position) bool {
	dir := pawn.Color.forward()
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == 0 && dy == dir:
		return board.At(to) == nil
	case dx == 0 && dy == 2*dir:
		return !pawn.HasMoved &&
			from.Y == pawn.Color.pawnRow() &&
			board.At(Position{X: from.X, Y: from.Y + dir}) == nil &&
			board.At(to) == nil
	case abs(dx) == 1 && dy == dir:
		target := board.At(to)
		return target != nil && target.Color != pawn.Color
	}
	return false
}

// isPathClear checks the squares strictly between from and to along a rank,
// file or diagonal.
func isPathClear(board *BoardState, from, to Position) bool {
	stepX, stepY := sign(to.X-from.X), sign(to.Y-from.Y)
	for pos := (Position{X: from.X + stepX, Y: from.Y + stepY}); pos != to; pos = (Position{X: pos.X + stepX, Y: pos.Y + stepY}) {
		if board.At(pos) != nil {
			return false
		}
	}
	return true
}

// attacks reports whether the piece on from bears on to. Pawns attack their
// forward diagonals whether or not anything stands there.
func attacks(board *BoardState, from, to Position) bool {
	piece := board.At(from)
	if piece == nil {
		return false
	}
	if piece.Type == Pawn {
		return to.Y-from.Y == piece.Color.forward() && abs(to.X-from.X) == 1
	}
	return isGeometricMove(board, from, to)
}

func isSquareAttacked(board *BoardState, pos Position, attacker PlayerColor) bool {
	for _, from := range board.squares(attacker) {
		if attacks(board, from, pos) {
			return true
		}
	}
	return false
}

func isKingInCheck(board *BoardState, color PlayerColor) bool {
	return isSquareAttacked(board, board.kingPosition(color), color.Opponent())
}

// hypothetical plays from-to on the board, including the bypassed pawn of an
// en passant capture, the rook of a castling move and the queen of a
// promotion, runs fn, then puts every square back. Nothing else in the state
// is touched.
func (b *BoardState) hypothetical(from, to Position, fn func()) {
	mover, target := b.At(from), b.At(to)
	var (
		bypassed      Position
		bypassedPiece *Piece
		rookFrom      Position
		rookTo        Position
		rook          *Piece
	)
	defer func() {
		if rook != nil {
			b.set(rookTo, nil)
			b.set(rookFrom, rook)
		}
		b.set(to, target)
		b.set(from, mover)
		if bypassedPiece != nil {
			b.set(bypassed, bypassedPiece)
		}
	}()

	placed := mover
	switch {
	case mover.Type == Pawn && from.X != to.X && target == nil:
		bypassed = Position{X: to.X, Y: from.Y}
		bypassedPiece = b.At(bypassed)
		b.set(bypassed, nil)
	case mover.Type == King && abs(to.X-from.X) == 2:
		side := castleSideFor(to.X)
		rookFrom, rookTo = Position{X: side.rookFrom, Y: from.Y}, Position{X: side.rookTo, Y: from.Y}
		if rook = b.At(rookFrom); rook != nil {
			b.set(rookFrom, nil)
			b.set(rookTo, rook)
		}
	}
	if mover.Type == Pawn && to.Y == mover.Color.promotionRow() {
		placed = Promotion.promote(mover)
	}
	b.set(from, nil)
	b.set(to, placed)
	fn()
}

// leavesKingInCheck reports whether playing from-to exposes the mover's king.
func (b *BoardState) leavesKingInCheck(from, to Position) bool {
	color := b.At(from).Color
	inCheck := false
	b.hypothetical(from, to, func() {
		inCheck = isKingInCheck(b, color)
	})
	return inCheck
}

// legalDestinations lists every square the piece on from may legally reach,
// regardless of whose turn it is.
func (s *GameState) legalDestinations(from Position) []Position {
	piece := s.Board.At(from)
	if piece == nil {
		return []Position{}
	}
	dests := []Position{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			to := Position{X: x, Y: y}
			if isGeometricMove(s.Board, from, to) && !s.Board.leavesKingInCheck(from, to) {
				dests = append(dests, to)
			}
		}
	}
	switch piece.Type {
	case King:
		dests = append(dests, s.castlingDestinations(from)...)
	case Pawn:
		if to, ok := s.enPassantDestination(from); ok && !s.Board.leavesKingInCheck(from, to) {
			dests = append(dests, to)
		}
	}
	return dests
}

func (s *GameState) legalMoves(color PlayerColor) []SimpleMove {
	moves := []SimpleMove{}
	for _, from := range s.Board.squares(color) {
		for _, to := range s.legalDestinations(from) {
			moves = append(moves, SimpleMove{From: from, To: to})
		}
	}
	return moves
}

func (s *GameState) hasLegalMove(color PlayerColor) bool {
	for _, from := range s.Board.squares(color) {
		if len(s.legalDestinations(from)) > 0 {
			return true
		}
	}
	return false
}
