package core

// Reason explains why an input was not applied.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonNotAdjacent
	ReasonColorMismatch
	ReasonDuplicate
	ReasonBudgetExhausted
	ReasonNotPlaying
	ReasonPaused
	ReasonEmptyInventory
	ReasonOutOfBounds
	ReasonTooShort
)

// String returns the string representation of a reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNotAdjacent:
		return "not-adjacent"
	case ReasonColorMismatch:
		return "color-mismatch"
	case ReasonDuplicate:
		return "duplicate"
	case ReasonBudgetExhausted:
		return "budget-exhausted"
	case ReasonNotPlaying:
		return "not-playing"
	case ReasonPaused:
		return "paused"
	case ReasonEmptyInventory:
		return "empty-inventory"
	case ReasonOutOfBounds:
		return "out-of-bounds"
	case ReasonTooShort:
		return "too-short"
	default:
		return "unknown"
	}
}

// Outcome is what an extension attempt did to the path.
type Outcome uint8

const (
	OutcomeRejected Outcome = iota
	OutcomeSeeded
	OutcomeAppended
	OutcomeBacktracked
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSeeded:
		return "seeded"
	case OutcomeAppended:
		return "appended"
	case OutcomeBacktracked:
		return "backtracked"
	default:
		return "rejected"
	}
}

// ExtendResult reports the outcome of Path.Extend.
type ExtendResult struct {
	Outcome Outcome
	Reason  Reason
}

// Accepted returns true unless the extension was rejected.
func (r ExtendResult) Accepted() bool {
	return r.Outcome != OutcomeRejected
}

func rejected(reason Reason) ExtendResult {
	return ExtendResult{Outcome: OutcomeRejected, Reason: reason}
}

// Path is an ordered selection of tiles.
type Path []Tile

// Extend returns the path with t applied as the next gesture:
//   - an empty path is seeded with t
//   - t equal to the second-to-last tile pops the last (backtrack)
//   - otherwise t is appended if it is new, adjacent to the last tile and
//     shares its color (or either is rainbow)
//
// A rejected extension returns the receiver unchanged.
func (p Path) Extend(t Tile) (Path, ExtendResult) {
	if len(p) == 0 {
		return Path{t}, ExtendResult{Outcome: OutcomeSeeded}
	}
	if len(p) > 1 && p[len(p)-2].Pos() == t.Pos() {
		out := make(Path, len(p)-1)
		copy(out, p)
		return out, ExtendResult{Outcome: OutcomeBacktracked}
	}
	if p.Contains(t.Pos()) {
		return p, rejected(ReasonDuplicate)
	}
	last := p[len(p)-1]
	if !last.Pos().Adjacent(t.Pos()) {
		return p, rejected(ReasonNotAdjacent)
	}
	if !last.Connects(t) {
		return p, rejected(ReasonColorMismatch)
	}
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, t), ExtendResult{Outcome: OutcomeAppended}
}

// Contains reports whether a tile at pos is already selected.
func (p Path) Contains(pos Pos) bool {
	for _, t := range p {
		if t.Pos() == pos {
			return true
		}
	}
	return false
}

// Last returns the most recently selected tile.
func (p Path) Last() (Tile, bool) {
	if len(p) == 0 {
		return Tile{}, false
	}
	return p[len(p)-1], true
}

// HasGem reports whether any tile in the path is a gem.
func (p Path) HasGem() bool {
	for _, t := range p {
		if t.Gem {
			return true
		}
	}
	return false
}

// IsSquare reports whether four tiles of the path sit on the corners of
// an axis-aligned rectangle. Paths shorter than four never qualify.
func IsSquare(p Path) bool {
	if len(p) < 4 {
		return false
	}
	for i := 0; i < len(p); i++ {
		for j := 0; j < len(p); j++ {
			a, b := p[i].Pos(), p[j].Pos()
			if a.Row >= b.Row || a.Col >= b.Col {
				continue
			}
			if p.Contains(P(a.Row, b.Col)) && p.Contains(P(b.Row, a.Col)) {
				return true
			}
		}
	}
	return false
}
