package model

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/rand"
)

// TierMode picks how hard the computer opponent tries.
type TierMode string

const (
	// TierRandom plays any legal move.
	TierRandom TierMode = "random"
	// TierCaptures prefers captures.
	TierCaptures TierMode = "captures"
	// TierChecks prefers mates, then checks, then captures.
	TierChecks TierMode = "checks"
)

// ParseTierMode accepts the mode names and the difficulty aliases easy,
// medium and hard.
func ParseTierMode(s string) (TierMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "easy":
		return TierRandom, nil
	case "captures", "medium":
		return TierCaptures, nil
	case "checks", "hard":
		return TierChecks, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTierMode, s)
}

// Rand is the source of the uniform pick inside a tier.
type Rand interface {
	Intn(n int) int
}

func NewRand(seed uint64) Rand {
	return rand.New(rand.NewSource(seed))
}

func NewTimeSeededRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// SelectHeuristicMove picks a move for color. It reports false when color has
// no legal move, which the status already shows as mate or stalemate.
func (g *Game) SelectHeuristicMove(color PlayerColor, mode TierMode, rnd Rand) (SimpleMove, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return selectMove(&g.state, color, mode, rnd)
}

func selectMove(s *GameState, color PlayerColor, mode TierMode, rnd Rand) (SimpleMove, bool) {
	moves := s.legalMoves(color)
	if len(moves) == 0 {
		return SimpleMove{}, false
	}

	var tiers [][]SimpleMove
	switch mode {
	case TierChecks:
		tiers = append(tiers,
			filterMoves(moves, func(m SimpleMove) bool { return s.deliversMate(color, m) }),
			filterMoves(moves, func(m SimpleMove) bool { return s.deliversCheck(color, m) }),
		)
		fallthrough
	case TierCaptures:
		tiers = append(tiers, filterMoves(moves, s.isCapture))
	}
	tiers = append(tiers, moves)

	for _, tier := range tiers {
		if len(tier) > 0 {
			return tier[rnd.Intn(len(tier))], true
		}
	}
	return SimpleMove{}, false
}

func filterMoves(moves []SimpleMove, keep func(SimpleMove) bool) []SimpleMove {
	var out []SimpleMove
	for _, m := range moves {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s *GameState) isCapture(m SimpleMove) bool {
	if s.Board.At(m.To) != nil {
		return true
	}
	// a legal diagonal pawn move onto an empty square is en passant
	return s.Board.At(m.From).Type == Pawn && m.From.X != m.To.X
}

func (s *GameState) deliversCheck(color PlayerColor, m SimpleMove) bool {
	check := false
	s.Board.hypothetical(m.From, m.To, func() {
		check = isKingInCheck(s.Board, color.Opponent())
	})
	return check
}

// deliversMate plays m on a private copy so the real state never moves.
func (s *GameState) deliversMate(color PlayerColor, m SimpleMove) bool {
	c := s.clone()
	c.ToMove = color
	c.apply(m.From, m.To)
	return c.IsCheck && !c.hasLegalMove(c.ToMove)
}
