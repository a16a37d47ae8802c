package core

// Rarity holds the thresholds a roll must exceed for each special flag.
type Rarity struct {
	Rainbow   float64
	Gem       float64
	Bomb      float64
	Lightning float64
}

// BaseRarity applies to the first level.
var BaseRarity = Rarity{Rainbow: 0.92, Gem: 0.95, Bomb: 0.97, Lightning: 0.96}

// DeepRarity applies from level 2 onward.
var DeepRarity = Rarity{Rainbow: 0.90, Gem: 0.93, Bomb: 0.95, Lightning: 0.94}

// RollTile draws one tile at p. The draw order is fixed: color, rainbow,
// gem, bomb, lightning. Seeded boards depend on it.
func RollTile(p Pos, r Rarity, src Source) Tile {
	t := Tile{Row: p.Row, Col: p.Col}
	t.Color = Color(intn(src, int(ColorCount)))
	t.Rainbow = src.Next() > r.Rainbow
	t.Gem = src.Next() > r.Gem
	t.Bomb = src.Next() > r.Bomb
	t.Lightning = src.Next() > r.Lightning
	return t
}

// Generate fills a new size×size grid row by row. No check is made that
// a playable move exists.
func Generate(size int, r Rarity, src Source) *Grid {
	g := NewGrid(size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			g.Place(RollTile(P(row, col), r, src))
		}
	}
	return g
}
