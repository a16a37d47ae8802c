// Package core provides the rules engine for the dots puzzle: board
// generation, path selection, match resolution, gravity, targets, the bot
// opponent and the mode state machine. It is UI-agnostic and deterministic
// for a given Source.
package core

import "strings"

// Color is one of the five dot colors.
type Color uint8

const (
	ColorRed Color = iota
	ColorTeal
	ColorBlue
	ColorOrange
	ColorMint
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorTeal:
		return "teal"
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	case ColorMint:
		return "mint"
	default:
		return "unknown"
	}
}

// Char returns a single character for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorTeal:
		return 'T'
	case ColorBlue:
		return 'B'
	case ColorOrange:
		return 'O'
	case ColorMint:
		return 'M'
	default:
		return '?'
	}
}

// Hex returns the display color.
func (c Color) Hex() string {
	switch c {
	case ColorRed:
		return "#FF6B6B"
	case ColorTeal:
		return "#4ECDC4"
	case ColorBlue:
		return "#45B7D1"
	case ColorOrange:
		return "#FFA07A"
	case ColorMint:
		return "#98D8C8"
	default:
		return "#FFFFFF"
	}
}

// ParseColor converts a name or initial to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return ColorRed, true
	case "teal", "t":
		return ColorTeal, true
	case "blue", "b":
		return ColorBlue, true
	case "orange", "o":
		return ColorOrange, true
	case "mint", "m":
		return ColorMint, true
	default:
		return ColorRed, false
	}
}

// AllColors returns the palette in draw order.
func AllColors() []Color {
	return []Color{ColorRed, ColorTeal, ColorBlue, ColorOrange, ColorMint}
}

// Pos addresses a cell by row and column. Row 0 is the top.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// P is shorthand for Pos{row, col}.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// Adjacent reports whether q is one orthogonal step away from p.
func (p Pos) Adjacent(q Pos) bool {
	return abs(p.Row-q.Row)+abs(p.Col-q.Col) == 1
}

// Tile is a dot on the board. Tiles are values: moving or clearing
// one produces a new Tile or removes it from the grid.
type Tile struct {
	Color     Color `json:"color"`
	Row       int   `json:"row"`
	Col       int   `json:"col"`
	Rainbow   bool  `json:"rainbow,omitempty"`
	Gem       bool  `json:"gem,omitempty"`
	Bomb      bool  `json:"bomb,omitempty"`
	Lightning bool  `json:"lightning,omitempty"`
}

// Pos returns the tile's position.
func (t Tile) Pos() Pos {
	return Pos{Row: t.Row, Col: t.Col}
}

// At returns a copy of the tile re-homed to p.
func (t Tile) At(p Pos) Tile {
	t.Row, t.Col = p.Row, p.Col
	return t
}

// Special reports whether any special flag is set.
func (t Tile) Special() bool {
	return t.Rainbow || t.Gem || t.Bomb || t.Lightning
}

// Connects reports whether t and u may be consecutive in a path by color.
func (t Tile) Connects(u Tile) bool {
	return t.Rainbow || u.Rainbow || t.Color == u.Color
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
