package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
)

var fenLetters = map[PieceType]byte{
	King: 'k', Queen: 'q', Rook: 'r', Bishop: 'b', Knight: 'n', Pawn: 'p',
}

// toFEN writes the state in Forsyth-Edwards notation. Castling flags follow
// the has-moved bits of the king and corner rooks.
func toFEN(s *GameState) string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			piece := s.Board.Board[y][x]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := fenLetters[piece.Type]
			if piece.Color == PlayerColorWhite {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y < 7 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if s.ToMove == PlayerColorBlack {
		side = "b"
	}

	castling := ""
	for _, c := range []struct {
		color  PlayerColor
		rookX  int
		letter string
	}{
		{PlayerColorWhite, 7, "K"}, {PlayerColorWhite, 0, "Q"},
		{PlayerColorBlack, 7, "k"}, {PlayerColorBlack, 0, "q"},
	} {
		king := s.Board.At(Position{X: 4, Y: c.color.homeRow()})
		rook := s.Board.At(Position{X: c.rookX, Y: c.color.homeRow()})
		if king != nil && king.Type == King && king.Color == c.color && !king.HasMoved &&
			rook != nil && rook.Type == Rook && rook.Color == c.color && !rook.HasMoved {
			castling += c.letter
		}
	}
	if castling == "" {
		castling = "-"
	}

	ep := "-"
	if s.LastMove.isPawnDoubleStep() {
		ep = Position{X: s.LastMove.To.X, Y: (s.LastMove.From.Y + s.LastMove.To.Y) / 2}.String()
	}
	return fmt.Sprintf("%s %s %s %s %d 1", sb.String(), side, castling, ep, s.HalfmoveClock)
}

// fromSquare converts a dragontoothmg square index, a1 = 0 and h8 = 63.
func fromSquare(sq uint8) Position {
	return Position{X: int(sq % 8), Y: 7 - int(sq/8)}
}

func moveKey(from, to Position) string {
	return from.String() + to.String()
}

func oracleMoves(fen string) (moves []string, inCheck bool) {
	board := dragontoothmg.ParseFen(fen)
	seen := map[string]bool{}
	for _, m := range board.GenerateLegalMoves() {
		// promotions come once per piece choice
		key := moveKey(fromSquare(m.From()), fromSquare(m.To()))
		if !seen[key] {
			seen[key] = true
			moves = append(moves, key)
		}
	}
	sort.Strings(moves)
	return moves, board.OurKingInCheck()
}

func ourMoves(g *Game) []string {
	var moves []string
	for _, m := range g.LegalMoves(g.ToMove()) {
		moves = append(moves, moveKey(m.From, m.To))
	}
	sort.Strings(moves)
	return moves
}

var (
	rookRays   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightHops = [][2]int{{1, 2}, {2, 1}, {-1, 2}, {-2, 1}, {1, -2}, {2, -1}, {-1, -2}, {-2, -1}}
)

// rayScanAttacked looks outward from pos for an attacker, the way an engine
// does, instead of asking every piece whether it reaches pos.
func rayScanAttacked(board *BoardState, pos Position, attacker PlayerColor) bool {
	is := func(p Position, types ...PieceType) bool {
		piece := board.At(p)
		if piece == nil || piece.Color != attacker {
			return false
		}
		for _, t := range types {
			if piece.Type == t {
				return true
			}
		}
		return false
	}
	slide := func(rays [][2]int, types ...PieceType) bool {
		for _, r := range rays {
			for p := (Position{X: pos.X + r[0], Y: pos.Y + r[1]}); p.Valid(); p = (Position{X: p.X + r[0], Y: p.Y + r[1]}) {
				if board.At(p) != nil {
					if is(p, types...) {
						return true
					}
					break
				}
			}
		}
		return false
	}

	if slide(rookRays, Rook, Queen) || slide(bishopRays, Bishop, Queen) {
		return true
	}
	for _, h := range knightHops {
		if p := (Position{X: pos.X + h[0], Y: pos.Y + h[1]}); p.Valid() && is(p, Knight) {
			return true
		}
	}
	for _, r := range append(rookRays, bishopRays...) {
		if p := (Position{X: pos.X + r[0], Y: pos.Y + r[1]}); p.Valid() && is(p, King) {
			return true
		}
	}
	behind := pos.Y - attacker.forward()
	for _, dx := range []int{-1, 1} {
		if p := (Position{X: pos.X + dx, Y: behind}); p.Valid() && is(p, Pawn) {
			return true
		}
	}
	return false
}

func TestLegalMovesMatchOracle(t *testing.T) {
	fixed := []string{
		"e2e4", "d7d5", "e4e5", "f7f5", // en passant on f6
		"g1f3", "g8f6", "f1c4", "e7e6", // both kings ready to castle
	}
	g := NewGame("oracle")
	compareWithOracle(t, g, "start")
	for i, m := range fixed {
		play(t, g, m)
		compareWithOracle(t, g, fmt.Sprintf("fixed ply %d", i+1))
	}

	rnd := NewRand(20240611)
	for game := 0; game < 40; game++ {
		g := NewGame("oracle")
		for ply := 0; ply < 160 && !g.Status().IsTerminal(); ply++ {
			moves := g.LegalMoves(g.ToMove())
			m := moves[rnd.Intn(len(moves))]
			if err := g.MakeMove(m.From, m.To); err != nil {
				t.Fatalf("game %d ply %d: MakeMove(%v, %v) error: %v", game, ply, m.From, m.To, err)
			}
			if !compareWithOracle(t, g, fmt.Sprintf("game %d ply %d", game, ply)) {
				return
			}
		}
	}
}

func compareWithOracle(t *testing.T, g *Game, label string) bool {
	t.Helper()
	state := g.GetState()
	fen := toFEN(&state)

	want, wantCheck := oracleMoves(fen)
	got := ourMoves(g)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%s %s: legal moves mismatch (-oracle +ours):\n%s", label, fen, diff)
		return false
	}
	if state.IsCheck != wantCheck {
		t.Errorf("%s %s: IsCheck = %v, oracle says %v", label, fen, state.IsCheck, wantCheck)
		return false
	}

	king := state.Board.kingPosition(state.ToMove)
	if scan := rayScanAttacked(state.Board, king, state.ToMove.Opponent()); scan != state.IsCheck {
		t.Errorf("%s %s: ray scan check = %v, IsCheck = %v", label, fen, scan, state.IsCheck)
		return false
	}

	noMoves := len(got) == 0
	switch state.Status {
	case StatusCheckmate:
		if !state.IsCheck || !noMoves {
			t.Errorf("%s %s: checkmate with check=%v moves=%d", label, fen, state.IsCheck, len(got))
			return false
		}
	case StatusStalemate:
		if state.IsCheck || !noMoves {
			t.Errorf("%s %s: stalemate with check=%v moves=%d", label, fen, state.IsCheck, len(got))
			return false
		}
	case StatusInProgress, StatusCheck:
		if noMoves {
			t.Errorf("%s %s: status %s but no legal moves", label, fen, state.Status)
			return false
		}
	}
	return true
}

func TestSquareAttackMatchesRayScan(t *testing.T) {
	rnd := NewRand(7)
	for game := 0; game < 10; game++ {
		g := NewGame("rays")
		for ply := 0; ply < 80 && !g.Status().IsTerminal(); ply++ {
			state := g.GetState()
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					pos := Position{X: x, Y: y}
					for _, attacker := range []PlayerColor{PlayerColorWhite, PlayerColorBlack} {
						if occupant := state.Board.At(pos); occupant != nil && occupant.Color == attacker {
							continue
						}
						got, err := g.IsSquareAttacked(pos, attacker)
						if err != nil {
							t.Fatalf("IsSquareAttacked(%v) error: %v", pos, err)
						}
						if want := rayScanAttacked(state.Board, pos, attacker); got != want {
							t.Fatalf("game %d ply %d %s: IsSquareAttacked(%v, %s) = %v, ray scan %v",
								game, ply, toFEN(&state), pos, attacker, got, want)
						}
					}
				}
			}
			moves := g.LegalMoves(g.ToMove())
			m := moves[rnd.Intn(len(moves))]
			if err := g.MakeMove(m.From, m.To); err != nil {
				t.Fatalf("MakeMove error: %v", err)
			}
		}
	}
}
