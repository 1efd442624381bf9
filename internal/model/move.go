package model

// SimpleMove is a from/to pair as the presentation layer sends it.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// LastMove is the immediately preceding move. En passant eligibility is read
// from it and nothing older.
type LastMove struct {
	Piece PieceType   `json:"piece"`
	Color PlayerColor `json:"color"`
	From  Position    `json:"from"`
	To    Position    `json:"to"`
}

func (m *LastMove) isPawnDoubleStep() bool {
	return m != nil && m.Piece == Pawn && abs(m.To.Y-m.From.Y) == 2
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

func (c CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]Piece, 0, len(c.White)), c.White...),
		Black: append(make([]Piece, 0, len(c.Black)), c.Black...),
	}
}

// add records a piece captured by color.
func (c *CapturedPieces) add(by PlayerColor, piece Piece) {
	switch by {
	case PlayerColorWhite:
		c.White = append(c.White, piece)
	case PlayerColorBlack:
		c.Black = append(c.Black, piece)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
