package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// pickRand records every range it is asked for and answers with pick.
type pickRand struct {
	pick  func(n int) int
	calls []int
}

func (r *pickRand) Intn(n int) int {
	r.calls = append(r.calls, n)
	return r.pick(n)
}

func pickFirst() *pickRand { return &pickRand{pick: func(int) int { return 0 }} }
func pickLast() *pickRand { return &pickRand{pick: func(n int) int { return n - 1 }} }

func TestParseTierMode(t *testing.T) {
	tests := []struct {
		in      string
		want    TierMode
		wantErr bool
	}{
		{in: "random", want: TierRandom},
		{in: "easy", want: TierRandom},
		{in: "Captures", want: TierCaptures},
		{in: "medium", want: TierCaptures},
		{in: " checks ", want: TierChecks},
		{in: "hard", want: TierChecks},
		{in: "impossible", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTierMode(tt.in)
		if (err != nil) != tt.wantErr || (err != nil && !errors.Is(err, ErrInvalidTierMode)) {
			t.Errorf("ParseTierMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTierMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

var mateInOneRows = [8]string{
	"......k.",
	".....ppp",
	"........",
	"........",
	"......N.",
	"........",
	"........",
	"R.....K.",
}

func TestSelectPrefersMate(t *testing.T) {
	g := diagramGame(t, mateInOneRows, PlayerColorWhite)
	rnd := pickLast()

	move, ok := g.SelectHeuristicMove(PlayerColorWhite, TierChecks, rnd)
	if !ok {
		t.Fatal("SelectHeuristicMove() found no move")
	}
	want := SimpleMove{From: sq(t, "a1"), To: sq(t, "a8")}
	if move != want {
		t.Errorf("move = %v-%v, want a1-a8", move.From, move.To)
	}
	if diff := cmp.Diff([]int{1}, rnd.calls); diff != "" {
		t.Errorf("Intn ranges (-want +got):\n%s", diff)
	}
}

func TestSelectFallsBackToCheck(t *testing.T) {
	g := diagramGame(t, [8]string{
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K...",
	}, PlayerColorWhite)

	move, ok := g.SelectHeuristicMove(PlayerColorWhite, TierChecks, pickFirst())
	if !ok {
		t.Fatal("SelectHeuristicMove() found no move")
	}
	if want := (SimpleMove{From: sq(t, "a1"), To: sq(t, "a8")}); move != want {
		t.Errorf("move = %v-%v, want the only check a1-a8", move.From, move.To)
	}
	if g.Status() != StatusInProgress {
		t.Errorf("selecting a move changed the status to %s", g.Status())
	}
}

var knightCaptureRows = [8]string{
	"....k...",
	"........",
	"........",
	"n.......",
	"........",
	"........",
	"........",
	"R...K...",
}

func TestSelectCaptures(t *testing.T) {
	for _, mode := range []TierMode{TierCaptures, TierChecks} {
		t.Run(string(mode), func(t *testing.T) {
			g := diagramGame(t, knightCaptureRows, PlayerColorWhite)
			rnd := pickLast()
			move, ok := g.SelectHeuristicMove(PlayerColorWhite, mode, rnd)
			if !ok {
				t.Fatal("SelectHeuristicMove() found no move")
			}
			if want := (SimpleMove{From: sq(t, "a1"), To: sq(t, "a5")}); move != want {
				t.Errorf("move = %v-%v, want a1-a5", move.From, move.To)
			}
			if diff := cmp.Diff([]int{1}, rnd.calls); diff != "" {
				t.Errorf("Intn ranges (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectEnPassantCountsAsCapture(t *testing.T) {
	g := NewGame("sel")
	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5")

	move, ok := g.SelectHeuristicMove(PlayerColorWhite, TierCaptures, pickFirst())
	if !ok {
		t.Fatal("SelectHeuristicMove() found no move")
	}
	if want := (SimpleMove{From: sq(t, "e5"), To: sq(t, "d6")}); move != want {
		t.Errorf("move = %v-%v, want the en passant capture e5-d6", move.From, move.To)
	}
}

func TestSelectWithoutCapturesUsesAllMoves(t *testing.T) {
	g := diagramGame(t, mateInOneRows, PlayerColorWhite)
	all := g.LegalMoves(PlayerColorWhite)

	for _, mode := range []TierMode{TierRandom, TierCaptures} {
		rnd := pickLast()
		move, ok := g.SelectHeuristicMove(PlayerColorWhite, mode, rnd)
		if !ok {
			t.Fatalf("%s: no move", mode)
		}
		if move != all[len(all)-1] {
			t.Errorf("%s: move = %v-%v, want the last legal move", mode, move.From, move.To)
		}
		if diff := cmp.Diff([]int{len(all)}, rnd.calls); diff != "" {
			t.Errorf("%s: Intn ranges (-want +got):\n%s", mode, diff)
		}
	}
}

func TestSelectNoLegalMove(t *testing.T) {
	g := NewGame("fool")
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	for _, mode := range []TierMode{TierRandom, TierCaptures, TierChecks} {
		rnd := pickFirst()
		if _, ok := g.SelectHeuristicMove(PlayerColorWhite, mode, rnd); ok {
			t.Errorf("%s: found a move for a mated side", mode)
		}
		if len(rnd.calls) != 0 {
			t.Errorf("%s: Intn called %d times", mode, len(rnd.calls))
		}
	}
}

func TestSelectDoesNotChangeState(t *testing.T) {
	g := diagramGame(t, mateInOneRows, PlayerColorWhite)
	before := g.GetState()
	length := g.HistoryLength()

	for _, mode := range []TierMode{TierRandom, TierCaptures, TierChecks} {
		g.SelectHeuristicMove(PlayerColorWhite, mode, NewRand(7))
	}
	if diff := cmp.Diff(before, g.GetState()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
	if g.HistoryLength() != length {
		t.Errorf("HistoryLength() = %d, want %d", g.HistoryLength(), length)
	}
}

func TestSelectedMovesAreLegal(t *testing.T) {
	rnd := NewRand(42)
	for _, mode := range []TierMode{TierRandom, TierCaptures, TierChecks} {
		g := NewGame("selfplay")
		for ply := 0; ply < 60 && !g.Status().IsTerminal(); ply++ {
			color := g.ToMove()
			move, ok := g.SelectHeuristicMove(color, mode, rnd)
			if !ok {
				t.Fatalf("%s ply %d: no move in a live game", mode, ply)
			}
			if err := g.MakeMove(move.From, move.To); err != nil {
				t.Fatalf("%s ply %d: selected move rejected: %v", mode, ply, err)
			}
		}
	}
}
