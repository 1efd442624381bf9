package model

// apply plays from-to on the state with every side effect of the move. It
// trusts that the move is legal; the only requirement is a piece on from.
func (s *GameState) apply(from, to Position) {
	piece := s.Board.At(from)
	captured := s.Board.At(to)

	s.LastMove = &LastMove{Piece: piece.Type, Color: piece.Color, From: from, To: to}

	if piece.Type == King && abs(to.X-from.X) == 2 {
		side := castleSideFor(to.X)
		rookFrom, rookTo := Position{X: side.rookFrom, Y: from.Y}, Position{X: side.rookTo, Y: from.Y}
		if rook := s.Board.At(rookFrom); rook != nil {
			s.Board.set(rookFrom, nil)
			s.Board.set(rookTo, rook)
			rook.HasMoved = true
		}
	}

	if piece.Type == Pawn && from.X != to.X && captured == nil {
		bypassed := Position{X: to.X, Y: from.Y}
		captured = s.Board.At(bypassed)
		s.Board.set(bypassed, nil)
	}
	if captured != nil {
		s.CapturedPieces.add(piece.Color, *captured)
	}

	moved := piece
	if piece.Type == Pawn && to.Y == piece.Color.promotionRow() {
		moved = Promotion.promote(piece)
	}
	moved.HasMoved = true
	s.Board.set(from, nil)
	s.Board.set(to, moved)

	if piece.Type == Pawn || captured != nil {
		s.HalfmoveClock = 0
	} else {
		s.HalfmoveClock++
	}

	s.PositionHistory = append(s.PositionHistory, fingerprint(s.Board))
	s.ToMove = s.ToMove.Opponent()
	s.evaluate()
}

// Execute plays from-to without checking it against the legal set; callers
// pick destinations from LegalDestinations. It fails without touching the
// game when from is off the board or empty.
func (g *Game) Execute(from, to Position) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.executeMove(from, to)
}

func (g *Game) executeMove(from, to Position) error {
	if !from.Valid() || !to.Valid() {
		return &MoveError{From: from, To: to, Err: ErrInvalidSquare}
	}
	if g.state.Board.At(from) == nil {
		return &MoveError{From: from, To: to, Err: ErrNoPieceAtSquare}
	}

	g.history.recordBeforeMove(takeSnapshot(&g.state))
	g.state.apply(from, to)
	g.history.recordAfterMove(takeSnapshot(&g.state))
	return nil
}

// MakeMove validates from-to against the side to move and its legal
// destinations before executing it.
func (g *Game) MakeMove(from, to Position) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.validateMove(from, to); err != nil {
		return err
	}
	return g.executeMove(from, to)
}

func (g *Game) validateMove(from, to Position) error {
	if !from.Valid() || !to.Valid() {
		return &MoveError{From: from, To: to, Err: ErrInvalidSquare}
	}
	if g.state.Status.IsTerminal() {
		return &MoveError{From: from, To: to, Err: ErrGameOver}
	}
	piece := g.state.Board.At(from)
	if piece == nil {
		return &MoveError{From: from, To: to, Err: ErrNoPieceAtSquare}
	}
	if piece.Color != g.state.ToMove {
		return &MoveError{From: from, To: to, Err: ErrNotYourTurn}
	}
	for _, dest := range g.state.legalDestinations(from) {
		if dest == to {
			return nil
		}
	}
	return &MoveError{From: from, To: to, Err: ErrIllegalMove}
}
