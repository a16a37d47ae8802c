package core

// MatchKind classifies a resolved path by the clear it triggered.
type MatchKind uint8

const (
	MatchPlain MatchKind = iota
	MatchSquare
	MatchBomb
	MatchLightning
)

// String returns the string representation of a match kind.
func (k MatchKind) String() string {
	switch k {
	case MatchPlain:
		return "plain"
	case MatchSquare:
		return "square"
	case MatchBomb:
		return "bomb"
	case MatchLightning:
		return "lightning"
	default:
		return "unknown"
	}
}

// Scoring holds the point constants for match resolution.
type Scoring struct {
	PointsPerTile    int `json:"points_per_tile"`
	ComboBonus       int `json:"combo_bonus"`
	GemMultiplier    int `json:"gem_multiplier"`
	SquareMultiplier int `json:"square_multiplier"`
}

// DefaultScoring returns the standard point values.
func DefaultScoring() Scoring {
	return Scoring{PointsPerTile: 10, ComboBonus: 5, GemMultiplier: 3, SquareMultiplier: 2}
}

// Resolution describes what resolving a path clears and scores.
type Resolution struct {
	Kind       MatchKind
	Color      Color // color of the first tile
	Cleared    []Pos
	Multiplier int
	Points     int
	Square     bool
}

// Resolve computes the effect of committing path p on g with the given
// combo count. It does not modify g. Paths shorter than two tiles
// resolve to nothing and ok is false.
//
// The clear set is chosen by the first rule that applies: bombs clear
// their 3×3 neighborhoods, lightning clears full rows and columns, a
// square clears every tile of the first color plus every rainbow, and
// otherwise only the path itself is cleared. Only occupied cells count.
func Resolve(g *Grid, p Path, combo int, s Scoring) (res Resolution, ok bool) {
	if len(p) < 2 {
		return Resolution{}, false
	}
	res.Color = p[0].Color
	res.Square = IsSquare(p)

	var bombs, bolts []Tile
	for _, t := range p {
		if t.Bomb {
			bombs = append(bombs, t)
		}
		if t.Lightning {
			bolts = append(bolts, t)
		}
	}

	set := newPosSet(g)
	switch {
	case len(bombs) > 0:
		res.Kind = MatchBomb
		for _, b := range bombs {
			for r := b.Row - 1; r <= b.Row+1; r++ {
				for c := b.Col - 1; c <= b.Col+1; c++ {
					set.add(P(r, c))
				}
			}
		}
	case len(bolts) > 0:
		res.Kind = MatchLightning
		for _, l := range bolts {
			for i := 0; i < g.Size(); i++ {
				set.add(P(i, l.Col))
				set.add(P(l.Row, i))
			}
		}
	case res.Square:
		res.Kind = MatchSquare
		for _, t := range g.Tiles() {
			if t.Color == res.Color || t.Rainbow {
				set.add(t.Pos())
			}
		}
	default:
		res.Kind = MatchPlain
		for _, t := range p {
			set.add(t.Pos())
		}
	}
	res.Cleared = set.list

	res.Multiplier = 1
	if p.HasGem() {
		res.Multiplier = s.GemMultiplier
	} else if res.Square {
		res.Multiplier = s.SquareMultiplier
	}
	res.Points = len(res.Cleared)*res.Multiplier*s.PointsPerTile + combo*s.ComboBonus
	return res, true
}

// Remove empties every listed cell of g.
func Remove(g *Grid, cleared []Pos) {
	for _, p := range cleared {
		g.Clear(p)
	}
}

// ClearArea returns the occupied cells of the 3×3 block centered on c,
// clamped to the board.
func ClearArea(g *Grid, c Pos) []Pos {
	set := newPosSet(g)
	for r := c.Row - 1; r <= c.Row+1; r++ {
		for col := c.Col - 1; col <= c.Col+1; col++ {
			set.add(P(r, col))
		}
	}
	return set.list
}

// posSet collects occupied, in-bounds positions without duplicates,
// keeping insertion order.
type posSet struct {
	g    *Grid
	seen map[Pos]struct{}
	list []Pos
}

func newPosSet(g *Grid) *posSet {
	return &posSet{g: g, seen: make(map[Pos]struct{})}
}

func (s *posSet) add(p Pos) {
	if _, ok := s.g.At(p); !ok {
		return
	}
	if _, dup := s.seen[p]; dup {
		return
	}
	s.seen[p] = struct{}{}
	s.list = append(s.list, p)
}
