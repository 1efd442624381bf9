package model

import (
	"sort"
	"testing"
)

var diagramPieces = map[rune]PieceType{
	'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn,
}

// diagramSetup reads eight rows, black's back rank first. Upper case is white,
// lower case black and '.' an empty square. Pieces standing on their starting
// squares are unmoved; everything else is marked as moved.
func diagramSetup(t *testing.T, rows [8]string, toMove PlayerColor) Setup {
	t.Helper()
	setup := Setup{Pieces: map[Position]Piece{}, ToMove: toMove}
	for y, row := range rows {
		if len(row) != 8 {
			t.Fatalf("row %d has %d squares, want 8", y, len(row))
		}
		for x, r := range row {
			if r == '.' {
				continue
			}
			color := PlayerColorBlack
			if r >= 'A' && r <= 'Z' {
				color = PlayerColorWhite
				r += 'a' - 'A'
			}
			typ, ok := diagramPieces[r]
			if !ok {
				t.Fatalf("row %d: unknown piece %q", y, r)
			}
			pos := Position{X: x, Y: y}
			setup.Pieces[pos] = Piece{Type: typ, Color: color, HasMoved: !onStartSquare(typ, color, pos)}
		}
	}
	return setup
}

func onStartSquare(typ PieceType, color PlayerColor, pos Position) bool {
	switch typ {
	case Pawn:
		return pos.Y == color.pawnRow()
	case King:
		return pos == Position{X: 4, Y: color.homeRow()}
	case Rook:
		return pos.Y == color.homeRow() && (pos.X == 0 || pos.X == 7)
	}
	return false
}

func diagramGame(t *testing.T, rows [8]string, toMove PlayerColor) *Game {
	t.Helper()
	g, err := NewGameFromSetup("test", diagramSetup(t, rows, toMove))
	if err != nil {
		t.Fatalf("NewGameFromSetup() error: %v", err)
	}
	return g
}

// sq converts a square name such as "e2" to a Position.
func sq(t *testing.T, name string) Position {
	t.Helper()
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		t.Fatalf("bad square %q", name)
	}
	return Position{X: int(name[0] - 'a'), Y: 8 - int(name[1]-'0')}
}

func squares(t *testing.T, names ...string) []Position {
	t.Helper()
	out := make([]Position, 0, len(names))
	for _, n := range names {
		out = append(out, sq(t, n))
	}
	return sortPositions(out)
}

func sortPositions(ps []Position) []Position {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
	return ps
}

// play makes each move, given as "e2e4", through the validating entry point.
func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if len(m) != 4 {
			t.Fatalf("bad move %q", m)
		}
		if err := g.MakeMove(sq(t, m[:2]), sq(t, m[2:])); err != nil {
			t.Fatalf("MakeMove(%s) error: %v", m, err)
		}
	}
}

func destinations(t *testing.T, g *Game, from string) []Position {
	t.Helper()
	dests, err := g.LegalDestinations(sq(t, from))
	if err != nil {
		t.Fatalf("LegalDestinations(%s) error: %v", from, err)
	}
	return sortPositions(dests)
}

func containsPosition(ps []Position, p Position) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
