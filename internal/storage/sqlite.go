// Package storage provides SQLite-based persistence for scores, finished
// games and daily results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-dots/internal/match"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Mode      string
	Score     int
	Level     int
	CreatedAt time.Time
}

// DailyEntry is one finished daily game.
type DailyEntry struct {
	Date      string
	Score     int
	Level     int
	Stars     int
	CreatedAt time.Time
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	Wins       int
	Losses     int
	Draws      int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			rule TEXT NOT NULL DEFAULT '',
			opponent TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL DEFAULT 0,
			bot_score INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			stars INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT 'none',
			end_reason TEXT NOT NULL,
			round INTEGER NOT NULL DEFAULT 1,
			player_rounds INTEGER NOT NULL DEFAULT 0,
			bot_rounds INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_mode ON matches(mode);
		CREATE INDEX IF NOT EXISTS idx_matches_match_id ON matches(match_id);

		CREATE TABLE IF NOT EXISTS daily_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			stars INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_daily_date ON daily_results(date, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a new score for the given mode.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(mode string, score, level int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (mode, score, level) VALUES (?, ?, ?)",
		mode, score, level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given mode.
// Results are ordered by score descending.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, score, level, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Score, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveResult implements match.ResultSaver. Every finished game becomes a
// match row and a score; daily games also record a daily result.
func (s *Store) SaveResult(r match.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		`INSERT INTO matches
		 (match_id, mode, rule, opponent, score, bot_score, level, stars, winner,
		  end_reason, round, player_rounds, bot_rounds, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.Mode, r.Rule, r.Opponent, r.Score, r.BotScore, r.Level, r.Stars,
		r.Winner, r.EndReason, r.Round, r.PlayerRounds, r.BotRounds, r.DurationSecs,
	); err != nil {
		return fmt.Errorf("storage: cannot save match: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO scores (mode, score, level) VALUES (?, ?, ?)",
		r.Mode, r.Score, r.Level,
	); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}

	if r.Daily != "" {
		if _, err := tx.Exec(
			"INSERT INTO daily_results (date, score, level, stars) VALUES (?, ?, ?, ?)",
			r.Daily, r.Score, r.Level, r.Stars,
		); err != nil {
			return fmt.Errorf("storage: cannot save daily result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return nil
}

// Ensure Store implements the runner's persistence hooks
var (
	_ match.ResultSaver     = (*Store)(nil)
	_ match.HighScoreSource = (*Store)(nil)
)

const matchColumns = `match_id, mode, rule, opponent, score, bot_score, level, stars, winner,
	end_reason, round, player_rounds, bot_rounds, duration_secs, created_at`

func scanResult(rows *sql.Rows) (match.Result, error) {
	var r match.Result
	var createdAt any
	err := rows.Scan(
		&r.MatchID, &r.Mode, &r.Rule, &r.Opponent, &r.Score, &r.BotScore, &r.Level,
		&r.Stars, &r.Winner, &r.EndReason, &r.Round, &r.PlayerRounds, &r.BotRounds,
		&r.DurationSecs, &createdAt,
	)
	r.FinishedAt = parseTime(createdAt)
	return r, err
}

// RecentMatches retrieves the most recent finished games, newest first.
// An empty mode matches every mode.
func (s *Store) RecentMatches(mode string, limit int) ([]match.Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR mode = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []match.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// AllMatches retrieves every finished game in insertion order.
func (s *Store) AllMatches() ([]match.Result, error) {
	rows, err := s.db.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []match.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// DailyResults retrieves the results recorded for a date (YYYY-MM-DD),
// best first.
func (s *Store) DailyResults(date string, limit int) ([]DailyEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT date, score, level, stars, created_at
		 FROM daily_results
		 WHERE date = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query daily results: %w", err)
	}
	defer rows.Close()

	var entries []DailyEntry
	for rows.Next() {
		var e DailyEntry
		var createdAt any
		if err := rows.Scan(&e.Date, &e.Score, &e.Level, &e.Stars, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestDaily returns the best result for a date, or nil when the daily
// has not been played.
func (s *Store) BestDaily(date string) (*DailyEntry, error) {
	var e DailyEntry
	var createdAt any
	err := s.db.QueryRow(
		`SELECT date, score, level, stars, created_at
		 FROM daily_results
		 WHERE date = ?
		 ORDER BY score DESC, id ASC
		 LIMIT 1`,
		date,
	).Scan(&e.Date, &e.Score, &e.Level, &e.Stars, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query daily result: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// GetModeStats retrieves aggregated statistics for a mode.
func (s *Store) GetModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(winner = 'player'), 0),
		        COALESCE(SUM(winner = 'bot'), 0),
		        COALESCE(SUM(winner = 'draw'), 0),
		        MAX(created_at)
		 FROM matches WHERE mode = ?`,
		mode,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore,
		&stats.Wins, &stats.Losses, &stats.Draws, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllModeStats retrieves statistics for every mode that has been played.
func (s *Store) GetAllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT mode FROM matches`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list modes: %w", err)
	}
	var modes []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan mode: %w", err)
		}
		modes = append(modes, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	stats := make(map[string]*ModeStats, len(modes))
	for _, m := range modes {
		st, err := s.GetModeStats(m)
		if err != nil {
			return nil, err
		}
		stats[m] = st
	}
	return stats, nil
}
