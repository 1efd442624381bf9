package model

// Snapshot is a frozen copy of a GameState.
type Snapshot struct {
	state GameState
}

func takeSnapshot(s *GameState) Snapshot {
	return Snapshot{state: s.clone()}
}

// State returns a copy, so the snapshot itself never changes.
func (s Snapshot) State() GameState {
	return s.state.clone()
}

// History is the linear list of positions a game went through. Entry i is the
// position after i moves; the last entry is the live position until the
// caller navigates away from it. There is no branching: moving from an
// earlier entry drops every entry after it.
type History struct {
	snapshots []Snapshot
	index     int
}

func newHistory(initial Snapshot) *History {
	return &History{snapshots: []Snapshot{initial}}
}

func (h *History) Len() int {
	return len(h.snapshots)
}

func (h *History) Index() int {
	return h.index
}

// recordBeforeMove truncates everything after the current index and stores
// pre as the current entry.
func (h *History) recordBeforeMove(pre Snapshot) {
	h.snapshots = append(h.snapshots[:h.index], pre)
}

func (h *History) recordAfterMove(post Snapshot) {
	h.snapshots = append(h.snapshots, post)
	h.index = len(h.snapshots) - 1
}

func (h *History) stepTo(index int) (Snapshot, bool) {
	if index < 0 || index >= len(h.snapshots) {
		return Snapshot{}, false
	}
	h.index = index
	return h.snapshots[index], true
}

func (g *Game) HistoryLength() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.Len()
}

func (g *Game) CurrentIndex() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.Index()
}

// NavigateTo restores the position at index. An index outside the history
// changes nothing and reports ErrNavigationOutOfRange.
func (g *Game) NavigateTo(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap, ok := g.history.stepTo(index)
	if !ok {
		return ErrNavigationOutOfRange
	}
	g.state = snap.State()
	return nil
}
