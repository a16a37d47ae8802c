package core

import "strings"

// Grid is a square board of cells stored in row-major order:
// index = row*size + col.
type Grid struct {
	size  int
	cells []Cell
}

// Cell holds a tile or nothing.
type Cell struct {
	Tile   Tile
	Filled bool
}

// NewGrid creates an empty size×size grid.
func NewGrid(size int) *Grid {
	return &Grid{size: size, cells: make([]Cell, size*size)}
}

// NewGridFromTiles creates a grid with the given tiles placed at their positions.
func NewGridFromTiles(size int, tiles []Tile) *Grid {
	g := NewGrid(size)
	for _, t := range tiles {
		g.Place(t)
	}
	return g
}

// Size returns the side length.
func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.size + p.Col
}

// InBounds returns true if p lies on the board.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

// At returns the tile at p and whether the cell is occupied.
func (g *Grid) At(p Pos) (Tile, bool) {
	if !g.InBounds(p) {
		return Tile{}, false
	}
	c := g.cells[g.index(p)]
	return c.Tile, c.Filled
}

// Place puts t at its own position, replacing whatever was there.
func (g *Grid) Place(t Tile) {
	p := t.Pos()
	if g.InBounds(p) {
		g.cells[g.index(p)] = Cell{Tile: t, Filled: true}
	}
}

// Clear empties the cell at p.
func (g *Grid) Clear(p Pos) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = Cell{}
	}
}

// Occupied returns the number of filled cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// Tiles returns all placed tiles in row-major order.
func (g *Grid) Tiles() []Tile {
	tiles := make([]Tile, 0, len(g.cells))
	for _, c := range g.cells {
		if c.Filled {
			tiles = append(tiles, c.Tile)
		}
	}
	return tiles
}

// Rows returns the board as rows of cells, for renderers.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.size)
	for r := range rows {
		rows[r] = make([]Cell, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.size != o.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Settled reports whether no column has an empty cell above a filled one.
func (g *Grid) Settled() bool {
	for col := 0; col < g.size; col++ {
		hole := false
		for row := g.size - 1; row >= 0; row-- {
			_, ok := g.At(P(row, col))
			if !ok {
				hole = true
			} else if hole {
				return false
			}
		}
	}
	return true
}

// Collapse drops every tile to the lowest free cell of its column,
// keeping relative order, then fills the emptied top cells with fresh
// tiles rolled from src.
func (g *Grid) Collapse(r Rarity, src Source) {
	for col := 0; col < g.size; col++ {
		empty := 0
		for row := g.size - 1; row >= 0; row-- {
			t, ok := g.At(P(row, col))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				g.Clear(P(row, col))
				g.Place(t.At(P(row+empty, col)))
			}
		}
		for row := 0; row < empty; row++ {
			g.Place(RollTile(P(row, col), r, src))
		}
	}
}

// Shuffle permutes the placed tiles (Fisher–Yates) and re-homes them in
// row-major order. Cells left over are filled with fresh tiles.
func (g *Grid) Shuffle(r Rarity, src Source) {
	tiles := g.Tiles()
	for i := len(tiles) - 1; i > 0; i-- {
		j := intn(src, i+1)
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
	idx := 0
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			p := P(row, col)
			if idx < len(tiles) {
				g.Place(tiles[idx].At(p))
				idx++
				continue
			}
			g.Place(RollTile(p, r, src))
		}
	}
}

// String renders the grid as ASCII, one row per line. Specials are
// lower-case, empty cells are '.'.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			t, ok := g.At(P(row, col))
			switch {
			case !ok:
				b.WriteByte('.')
			case t.Special():
				b.WriteString(strings.ToLower(string(t.Color.Char())))
			default:
				b.WriteRune(t.Color.Char())
			}
		}
		if row < g.size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
