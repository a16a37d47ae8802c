package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/tui-dots/internal/match"
)

// MatchRow is one finished game in the Parquet export.
type MatchRow struct {
	MatchID      string `parquet:"match_id,dict"`
	Mode         string `parquet:"mode,dict"`
	Rule         string `parquet:"rule,dict"`
	Opponent     string `parquet:"opponent,dict"`
	Score        int32  `parquet:"score"`
	BotScore     int32  `parquet:"bot_score"`
	Level        int32  `parquet:"level"`
	Stars        int32  `parquet:"stars"`
	Winner       string `parquet:"winner,dict"`
	EndReason    string `parquet:"end_reason,dict"`
	Round        int32  `parquet:"round"`
	PlayerRounds int32  `parquet:"player_rounds"`
	BotRounds    int32  `parquet:"bot_rounds"`
	DurationSecs int32  `parquet:"duration_secs"`
	FinishedAt   int64  `parquet:"finished_at_unix"`
}

// NewMatchRow converts a stored result.
func NewMatchRow(r match.Result) MatchRow {
	return MatchRow{
		MatchID:      r.MatchID,
		Mode:         r.Mode,
		Rule:         r.Rule,
		Opponent:     r.Opponent,
		Score:        int32(r.Score),    //nolint:gosec // scores fit in int32
		BotScore:     int32(r.BotScore), //nolint:gosec // scores fit in int32
		Level:        int32(r.Level),    //nolint:gosec // small
		Stars:        int32(r.Stars),    //nolint:gosec // small
		Winner:       r.Winner,
		EndReason:    r.EndReason,
		Round:        int32(r.Round),        //nolint:gosec // small
		PlayerRounds: int32(r.PlayerRounds), //nolint:gosec // small
		BotRounds:    int32(r.BotRounds),    //nolint:gosec // small
		DurationSecs: int32(r.DurationSecs), //nolint:gosec // small
		FinishedAt:   r.FinishedAt.Unix(),
	}
}

// WriteMatchesParquet writes rows to outPath with zstd compression.
// The file is written to a temp path and renamed into place.
func WriteMatchesParquet(outPath string, rows []MatchRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("storage: create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "dots_match_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("storage: rename parquet: %w", err)
	}
	return nil
}

// ReadMatchesParquet loads an export written by WriteMatchesParquet.
func ReadMatchesParquet(path string) ([]MatchRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: open parquet: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("storage: stat parquet: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("storage: read parquet: %w", err)
	}

	reader := parquet.NewGenericReader[MatchRow](pf)
	defer reader.Close()

	rows := make([]MatchRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("storage: read parquet rows: %w", err)
	}
	return rows[:n], nil
}

// ExportMatches writes every stored game to outPath and returns the
// number of rows written.
func (s *Store) ExportMatches(outPath string) (int, error) {
	results, err := s.AllMatches()
	if err != nil {
		return 0, err
	}
	rows := make([]MatchRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, NewMatchRow(r))
	}
	if err := WriteMatchesParquet(outPath, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
