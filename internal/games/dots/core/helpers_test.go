package core_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

// gridFrom builds a board of plain tiles from rows of color initials.
func gridFrom(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	g := core.NewGrid(len(rows))
	for r, row := range rows {
		if len(row) != len(rows) {
			t.Fatalf("row %d has %d cells, want %d", r, len(row), len(rows))
		}
		for c, ch := range row {
			if ch == '.' {
				continue
			}
			color, ok := core.ParseColor(string(ch))
			if !ok {
				t.Fatalf("bad color %q at %d,%d", ch, r, c)
			}
			g.Place(core.Tile{Color: color, Row: r, Col: c})
		}
	}
	return g
}

// at returns the tile at row, col or fails the test.
func at(t *testing.T, g *core.Grid, row, col int) core.Tile {
	t.Helper()
	tile, ok := g.At(core.P(row, col))
	if !ok {
		t.Fatalf("no tile at %d,%d", row, col)
	}
	return tile
}

// setFlags replaces the tile at row, col with one carrying the given flags.
func setFlags(t *testing.T, g *core.Grid, row, col int, edit func(*core.Tile)) {
	t.Helper()
	tile := at(t, g, row, col)
	edit(&tile)
	g.Place(tile)
}

// playing starts a session in mode and returns it ready for input.
func playing(t *testing.T, mode core.Mode, rule core.Rule) core.Session {
	t.Helper()
	s := core.NewSession(core.DefaultRules(), core.NewXorshift(42))
	s, _ = s.Apply(core.StartMode{Mode: mode, Rule: rule, Date: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)})
	if s.Phase == core.PhaseMatchmaking {
		s, _ = s.Apply(core.Tick{DT: 20 * time.Second})
	}
	if s.Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.Phase)
	}
	return s
}

// mustApply applies ev and fails on rejection.
func mustApply(t *testing.T, s core.Session, ev core.Event) core.Session {
	t.Helper()
	next, eff := s.Apply(ev)
	if !eff.Accepted() {
		t.Fatalf("%s rejected: %v", core.EventName(ev), eff.Reason)
	}
	return next
}

// swipe selects the given cells in order and commits them.
func swipe(t *testing.T, s core.Session, cells ...core.Pos) (core.Session, core.Effect) {
	t.Helper()
	for i, p := range cells {
		var ev core.Event = core.SelectExtend{Row: p.Row, Col: p.Col}
		if i == 0 {
			ev = core.SelectStart{Row: p.Row, Col: p.Col}
		}
		s = mustApply(t, s, ev)
	}
	return s.Apply(core.SelectEnd{})
}

// trackOnly returns targets with a single tracked color.
func trackOnly(color core.Color, required int) core.Targets {
	var tg core.Targets
	tg.Tracked[color] = true
	tg.Required[color] = required
	return tg
}
