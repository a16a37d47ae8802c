package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
	"github.com/vovakirdan/tui-dots/internal/match"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

type modeInfo struct {
	Name   string   `json:"name"`
	Title  string   `json:"title"`
	Versus bool     `json:"versus"`
	Rules  []string `json:"rules,omitempty"`
}

type scoreInfo struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

type dailyInfo struct {
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"created_at"`
}

type matchInfo struct {
	MatchID      string    `json:"match_id"`
	Mode         string    `json:"mode"`
	Rule         string    `json:"rule,omitempty"`
	Opponent     string    `json:"opponent,omitempty"`
	Score        int       `json:"score"`
	BotScore     int       `json:"bot_score"`
	Level        int       `json:"level"`
	Stars        int       `json:"stars"`
	Winner       string    `json:"winner"`
	EndReason    string    `json:"end_reason"`
	Round        int       `json:"round"`
	PlayerRounds int       `json:"player_rounds"`
	BotRounds    int       `json:"bot_rounds"`
	Daily        string    `json:"daily,omitempty"`
	DurationSecs int       `json:"duration_secs"`
	FinishedAt   time.Time `json:"finished_at"`
}

type statsInfo struct {
	Games      int       `json:"games"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	Draws      int       `json:"draws"`
	LastPlayed time.Time `json:"last_played"`
}

func newMatchInfo(r match.Result) matchInfo {
	return matchInfo(r)
}

func newDailyInfo(e storage.DailyEntry) dailyInfo {
	return dailyInfo{Score: e.Score, Level: e.Level, Stars: e.Stars, CreatedAt: e.CreatedAt}
}

// limitParam reads ?limit=, falling back to def and capping at 100.
func limitParam(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, 100)
}

// handleModes lists the playable modes.
func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	modes := make([]modeInfo, 0, len(core.AllModes()))
	for _, m := range core.AllModes() {
		info := modeInfo{Name: m.String(), Title: m.Title(), Versus: m.Versus()}
		if m == core.ModePvP {
			info.Rules = []string{core.RuleRounds.String(), core.RuleLevel.String(), core.RuleScore.String()}
		}
		modes = append(modes, info)
	}
	writeJSON(w, http.StatusOK, modes)
}

// handleScores returns the top scores for one mode.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	mode, ok := core.ParseMode(chi.URLParam(r, "mode"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_mode")
		return
	}
	entries, err := s.cfg.Store.TopScores(mode.String(), limitParam(r, 10))
	if err != nil {
		s.logger.Error("cannot load scores", "mode", mode, "err", err)
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	scores := make([]scoreInfo, 0, len(entries))
	for i, e := range entries {
		scores = append(scores, scoreInfo{Rank: i + 1, Score: e.Score, Level: e.Level, CreatedAt: e.CreatedAt})
	}
	writeJSON(w, http.StatusOK, map[string]any{"mode": mode.String(), "scores": scores})
}

// handleStats returns per-mode totals.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	all, err := s.cfg.Store.GetAllModeStats()
	if err != nil {
		s.logger.Error("cannot load stats", "err", err)
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	out := make(map[string]statsInfo, len(all))
	for mode, st := range all {
		out[mode] = statsInfo{
			Games:      st.GamesCount,
			HighScore:  st.HighScore,
			AvgScore:   st.AvgScore,
			Wins:       st.Wins,
			Losses:     st.Losses,
			Draws:      st.Draws,
			LastPlayed: st.LastPlayed,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDaily returns the daily seed and leaderboard for ?date= or today.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := time.Parse(time.DateOnly, q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_date")
			return
		}
		date = d
	}
	key := date.Format(time.DateOnly)

	entries, err := s.cfg.Store.DailyResults(key, limitParam(r, 10))
	if err != nil {
		s.logger.Error("cannot load daily results", "date", key, "err", err)
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	results := make([]dailyInfo, 0, len(entries))
	for _, e := range entries {
		results = append(results, newDailyInfo(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":    key,
		"seed":    core.DailySeed(date, 1),
		"results": results,
	})
}

// handleMatches returns recent match results, optionally for ?mode=.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	var mode string
	if q := r.URL.Query().Get("mode"); q != "" {
		m, ok := core.ParseMode(q)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown_mode")
			return
		}
		mode = m.String()
	}
	results, err := s.cfg.Store.RecentMatches(mode, limitParam(r, 20))
	if err != nil {
		s.logger.Error("cannot load matches", "err", err)
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	out := make([]matchInfo, 0, len(results))
	for _, res := range results {
		out = append(out, newMatchInfo(res))
	}
	writeJSON(w, http.StatusOK, out)
}
