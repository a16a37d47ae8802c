// Package match drives dots sessions. A Runner owns one session and
// feeds it player events and timer ticks from a single ordered queue,
// so every transition happens on one goroutine.
package match

import (
	"time"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

// SessionID identifies a connected client (SSH connection, websocket).
type SessionID string

// MatchID identifies one runner. It stays the same across new games and
// rounds; each finished game gets its own Result.
type MatchID string

// Update is published to subscribers after every applied event.
type Update struct {
	MatchID  MatchID
	Event    string
	Effect   core.Effect
	Snapshot core.Snapshot
}

// Result is the outcome of a game that reached GameOver or Won.
type Result struct {
	MatchID      string
	Mode         string
	Rule         string
	Opponent     string
	Score        int
	BotScore     int
	Level        int
	Stars        int
	Winner       string // player, bot, draw or none
	EndReason    string
	Round        int
	PlayerRounds int
	BotRounds    int
	Daily        string // YYYY-MM-DD for daily games
	DurationSecs int
	FinishedAt   time.Time
}

// NewResult summarizes a terminal session.
func NewResult(id MatchID, s core.Session) Result {
	r := Result{
		MatchID:      string(id),
		Mode:         s.Mode.String(),
		Opponent:     s.Opponent,
		Score:        s.Score,
		BotScore:     s.BotScore,
		Level:        s.Level,
		Stars:        s.Stars,
		Winner:       s.Result.String(),
		EndReason:    s.Reason.String(),
		Round:        s.Round,
		PlayerRounds: s.PlayerRounds,
		BotRounds:    s.BotRounds,
		DurationSecs: int(s.Elapsed / time.Second),
		FinishedAt:   time.Now(),
	}
	if s.Mode == core.ModePvP {
		r.Rule = s.Rule.String()
	}
	if s.Mode == core.ModeDaily {
		r.Daily = s.Date.Format(time.DateOnly)
	}
	return r
}

// ResultSaver persists finished games.
// This allows the runner to save results without depending on the storage package.
type ResultSaver interface {
	SaveResult(result Result) error
}

// HighScoreSource supplies the stored best score for a mode.
type HighScoreSource interface {
	HighScore(mode string) (int, error)
}
