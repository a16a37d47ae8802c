package storage

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-dots/internal/match"
)

func TestExportMatchesParquet(t *testing.T) {
	store := openTestStore(t)
	store.SaveResult(match.Result{MatchID: "m1", Mode: "classic", Score: 120, Level: 2, Winner: "none", EndReason: "out_of_moves"})
	store.SaveResult(match.Result{MatchID: "m2", Mode: "pvp", Rule: "level", Opponent: "Theo", Score: 300, BotScore: 2100, Level: 2, Winner: "bot", EndReason: "level_race"})

	out := filepath.Join(t.TempDir(), "export", "matches.parquet")
	n, err := store.ExportMatches(out)
	if err != nil {
		t.Fatalf("ExportMatches() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ExportMatches() wrote %d rows, expected 2", n)
	}

	rows, err := ReadMatchesParquet(out)
	if err != nil {
		t.Fatalf("ReadMatchesParquet() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("read %d rows, expected 2", len(rows))
	}
	if rows[0].MatchID != "m1" || rows[0].Score != 120 || rows[0].Level != 2 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Rule != "level" || rows[1].Opponent != "Theo" || rows[1].BotScore != 2100 || rows[1].Winner != "bot" {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

func TestExportEmpty(t *testing.T) {
	store := openTestStore(t)
	out := filepath.Join(t.TempDir(), "empty.parquet")
	n, err := store.ExportMatches(out)
	if err != nil {
		t.Fatalf("ExportMatches() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("wrote %d rows, expected 0", n)
	}
	rows, err := ReadMatchesParquet(out)
	if err != nil {
		t.Fatalf("ReadMatchesParquet() failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("read %d rows from empty export", len(rows))
	}
}
