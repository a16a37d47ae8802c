package core_test

import (
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

// basicRows has a red pair at (0,0)-(0,1) and a teal pair at (3,2)-(3,3).
var basicRows = []string{
	"RRTB",
	"TBOM",
	"BOMR",
	"OMTT",
}

func TestTwoTileMove(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)
	s.Grid = gridFrom(t, basicRows...)
	s.Targets = trackOnly(core.ColorBlue, 5)
	before := s
	orig := s.Grid.Clone()

	s, eff := swipe(t, s, core.P(0, 0), core.P(0, 1))
	if !eff.Accepted() || eff.Match == nil {
		t.Fatalf("commit rejected: %v", eff.Reason)
	}
	if s.Score != 20 {
		t.Errorf("score = %d, want 20", s.Score)
	}
	if s.Moves != 29 {
		t.Errorf("moves = %d, want 29", s.Moves)
	}
	if s.Combo != 1 {
		t.Errorf("combo = %d, want 1", s.Combo)
	}
	if s.Targets.Collected[core.ColorBlue] != 0 {
		t.Error("untracked color credited to targets")
	}
	if s.Grid.Occupied() != 16 || !s.Grid.Settled() {
		t.Error("grid not refilled after commit")
	}
	if len(s.Selection) != 0 {
		t.Error("selection survived commit")
	}
	if !before.Grid.Equal(orig) {
		t.Error("commit modified the previous state's grid")
	}
	if s.HighScore != 20 {
		t.Errorf("high score = %d, want 20", s.HighScore)
	}

	// second move earns the combo bonus
	s, _ = swipe(t, s, core.P(3, 2), core.P(3, 3))
	if s.Score != 20+25 {
		t.Errorf("score = %d, want 45", s.Score)
	}
}

func TestSelectionRejections(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)
	s.Grid = gridFrom(t,
		"RRRT",
		"BTOM",
		"BOMR",
		"OMRT",
	)
	s = mustApply(t, s, core.SelectStart{Row: 0, Col: 0})
	s = mustApply(t, s, core.SelectExtend{Row: 0, Col: 1})
	s = mustApply(t, s, core.SelectExtend{Row: 0, Col: 2})

	tests := []struct {
		name   string
		ev     core.Event
		reason core.Reason
	}{
		{"duplicate", core.SelectExtend{Row: 0, Col: 0}, core.ReasonDuplicate},
		{"not adjacent", core.SelectExtend{Row: 1, Col: 0}, core.ReasonNotAdjacent},
		{"color mismatch", core.SelectExtend{Row: 1, Col: 2}, core.ReasonColorMismatch},
		{"out of bounds", core.SelectExtend{Row: 9, Col: 9}, core.ReasonOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, eff := s.Apply(tt.ev)
			if eff.Reason != tt.reason {
				t.Errorf("reason = %v, want %v", eff.Reason, tt.reason)
			}
			if len(next.Selection) != 3 || next.Score != s.Score || next.Moves != s.Moves {
				t.Error("rejected gesture changed state")
			}
		})
	}

	s, eff := s.Apply(core.SelectExtend{Row: 0, Col: 1})
	if eff.Extend.Outcome != core.OutcomeBacktracked || len(s.Selection) != 2 {
		t.Errorf("backtrack: outcome %v len %d", eff.Extend.Outcome, len(s.Selection))
	}
}

func TestShortSelectionIsDiscarded(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)
	s = mustApply(t, s, core.SelectStart{Row: 1, Col: 1})
	s, eff := s.Apply(core.SelectEnd{})
	if eff.Reason != core.ReasonTooShort {
		t.Errorf("reason = %v, want too-short", eff.Reason)
	}
	if s.Moves != 30 || s.Score != 0 || len(s.Selection) != 0 {
		t.Errorf("single tile changed state: moves %d score %d sel %d", s.Moves, s.Score, len(s.Selection))
	}
}

func TestBudgetExhausted(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)
	s.Moves = 0
	if _, eff := s.Apply(core.SelectStart{Row: 0, Col: 0}); eff.Reason != core.ReasonBudgetExhausted {
		t.Errorf("reason = %v, want budget-exhausted", eff.Reason)
	}
}

func TestLevelCompleteOnLastMove(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)
	s.Grid = gridFrom(t,
		"BBBB",
		"TRTB",
		"RTRT",
		"TRTR",
	)
	tg := trackOnly(core.ColorRed, 5)
	tg.Tracked[core.ColorBlue] = true
	tg.Required[core.ColorBlue] = 5
	tg.Collected[core.ColorRed] = 5
	s.Targets = tg
	s.Moves = 1

	s, eff := swipe(t, s, core.P(0, 0), core.P(0, 1), core.P(0, 2), core.P(0, 3), core.P(1, 3))
	if !eff.Accepted() {
		t.Fatalf("commit rejected: %v", eff.Reason)
	}
	if s.Phase != core.PhaseLevelComplete {
		t.Fatalf("phase = %v, want level_complete", s.Phase)
	}
	if s.Stars != 1 {
		t.Errorf("stars = %d, want 1", s.Stars)
	}
	if s.Moves != 0 {
		t.Errorf("moves = %d, want 0", s.Moves)
	}
	if s.Targets.Collected[core.ColorBlue] != 5 {
		t.Errorf("blue collected = %d, want 5", s.Targets.Collected[core.ColorBlue])
	}
	if _, eff := s.Apply(core.SelectStart{Row: 0, Col: 0}); eff.Reason != core.ReasonNotPlaying {
		t.Errorf("input after completion: reason %v, want not-playing", eff.Reason)
	}
}

func TestOutOfMovesEndsClassic(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)
	s.Grid = gridFrom(t, basicRows...)
	s.Targets = trackOnly(core.ColorMint, 50)
	s.Moves = 1
	s.Combo = 4
	s, eff := swipe(t, s, core.P(0, 0), core.P(0, 1))
	if s.Phase != core.PhaseGameOver || s.Reason != core.EndOutOfMoves || !eff.Ended {
		t.Fatalf("phase %v reason %v ended %v", s.Phase, s.Reason, eff.Ended)
	}
	if s.Combo != 0 {
		t.Errorf("combo = %d, want 0", s.Combo)
	}
	if _, eff := s.Apply(core.Tick{DT: time.Second}); eff.Reason != core.ReasonNotPlaying {
		t.Errorf("tick after game over: reason %v", eff.Reason)
	}
}

func TestNextLevelGrowsBoard(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)
	if _, eff := s.Apply(core.NextLevel{}); eff.Reason != core.ReasonNotPlaying {
		t.Errorf("next level while playing: reason %v", eff.Reason)
	}
	s.Phase = core.PhaseLevelComplete
	s.Moves = 3
	s.Combo = 2
	s = mustApply(t, s, core.NextLevel{})
	if s.Level != 2 || s.Grid.Size() != 5 || s.Moves != 30 || s.Combo != 0 {
		t.Errorf("level %d size %d moves %d combo %d", s.Level, s.Grid.Size(), s.Moves, s.Combo)
	}
	if len(s.Targets.Colors()) != 2 {
		t.Errorf("level 2 tracks %d colors, want 2", len(s.Targets.Colors()))
	}

	s.Level = 7
	s.Phase = core.PhaseLevelComplete
	s = mustApply(t, s, core.NextLevel{})
	if s.Grid.Size() != 8 {
		t.Errorf("level 8 size = %d, want 8", s.Grid.Size())
	}
}

func TestWinAfterLastLevel(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)
	s.Level = 10
	s.Phase = core.PhaseLevelComplete
	s, eff := s.Apply(core.NextLevel{})
	if s.Phase != core.PhaseWon || !eff.Ended {
		t.Errorf("phase = %v ended %v, want won", s.Phase, eff.Ended)
	}
}

func TestScoreRace(t *testing.T) {
	s := playing(t, core.ModePvP, core.RuleScore)
	s.Grid = gridFrom(t, basicRows...)
	s.Targets = trackOnly(core.ColorMint, 50)
	s.Score = 1990
	s.BotScore = 1500

	s, eff := swipe(t, s, core.P(0, 0), core.P(0, 1))
	if s.Score != 2010 {
		t.Fatalf("score = %d, want 2010", s.Score)
	}
	if s.Phase != core.PhaseGameOver || s.Reason != core.EndScoreRace || !eff.Ended {
		t.Fatalf("phase %v reason %v, want game over by score race", s.Phase, s.Reason)
	}
	if s.Result != core.SidePlayer || s.Winner() != core.SidePlayer {
		t.Errorf("result %v winner %v, want player", s.Result, s.Winner())
	}

	// a bot update arriving after the lock changes nothing
	late, eff := s.Apply(core.Tick{DT: 3 * time.Second})
	if eff.Accepted() || late.BotScore != 1500 || late.Winner() != core.SidePlayer {
		t.Errorf("late tick: reason %v bot %d winner %v", eff.Reason, late.BotScore, late.Winner())
	}
}

func TestScoreRaceBotCrosses(t *testing.T) {
	tests := []struct {
		name   string
		player int
		want   core.Side
	}{
		{"bot alone", 0, core.SideBot},
		{"both past target, bot update", 2100, core.SideBot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := playing(t, core.ModePvP, core.RuleScore)
			s.Score = tt.player
			s.BotScore = 1999
			s, eff := s.Apply(core.Tick{DT: 1500 * time.Millisecond})
			if eff.BotPoints < 5 {
				t.Fatalf("bot points = %d, want at least the fallback", eff.BotPoints)
			}
			if s.Phase != core.PhaseGameOver || s.Winner() != tt.want {
				t.Errorf("phase %v winner %v, want %v", s.Phase, s.Winner(), tt.want)
			}
		})
	}
}

func TestBranchedSessionsKeepOwnWinner(t *testing.T) {
	s0 := playing(t, core.ModePvP, core.RuleScore)
	s0.Grid = gridFrom(t, basicRows...)
	s0.Targets = trackOnly(core.ColorMint, 50)
	s0.Score = 1990
	s0.BotScore = 1999

	a, _ := swipe(t, s0, core.P(0, 0), core.P(0, 1))
	if a.Phase != core.PhaseGameOver || a.Winner() != core.SidePlayer {
		t.Fatalf("player branch: phase %v winner %v, want player", a.Phase, a.Winner())
	}

	b, _ := s0.Apply(core.Tick{DT: 1500 * time.Millisecond})
	if b.Phase != core.PhaseGameOver || b.Result != core.SideBot || b.Winner() != core.SideBot {
		t.Errorf("bot branch: phase %v result %v winner %v, want bot", b.Phase, b.Result, b.Winner())
	}
	if b.Score != 1990 {
		t.Errorf("bot branch score = %d, want 1990", b.Score)
	}

	if s0.Phase != core.PhasePlaying || s0.Winner() != core.SideNone {
		t.Errorf("original: phase %v winner %v, want untouched", s0.Phase, s0.Winner())
	}
}

func TestBranchedSessionsReplayRandomness(t *testing.T) {
	s0 := playing(t, core.ModePvP, core.RuleRounds)
	a, _ := s0.Apply(core.Tick{DT: 15 * time.Second})
	b, _ := s0.Apply(core.Tick{DT: 15 * time.Second})
	if a.BotScore == 0 || a.BotScore != b.BotScore {
		t.Errorf("bot scores %d and %d from the same state", a.BotScore, b.BotScore)
	}
}

func TestBotWaitsForSelection(t *testing.T) {
	s := playing(t, core.ModePvP, core.RuleRounds)
	s = mustApply(t, s, core.SelectStart{Row: 0, Col: 0})
	s, eff := s.Apply(core.Tick{DT: 1500 * time.Millisecond})
	if s.BotScore != 0 || eff.BotPoints != 0 {
		t.Errorf("bot scored %d while the player was selecting", s.BotScore)
	}
	s, _ = s.Apply(core.Pause{})
	s, _ = s.Apply(core.Resume{})
	s, eff = s.Apply(core.Tick{DT: 1500 * time.Millisecond})
	if s.BotScore == 0 || eff.BotPoints != s.BotScore {
		t.Errorf("bot score = %d after idle interval, effect %d", s.BotScore, eff.BotPoints)
	}
}

func TestBotNeverTouchesBoard(t *testing.T) {
	s := playing(t, core.ModePvP, core.RuleRounds)
	orig := s.Grid.Clone()
	s, _ = s.Apply(core.Tick{DT: 15 * time.Second})
	if !s.Grid.Equal(orig) {
		t.Error("bot actions changed the board")
	}
	if s.BotScore == 0 {
		t.Error("bot did not score in 15s")
	}
}

func TestLevelRace(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  core.Side
	}{
		{"bot reaches level 3", 1, core.SideBot},
		{"same tick goes to player", 3, core.SidePlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := playing(t, core.ModePvP, core.RuleLevel)
			s.Level = tt.level
			s.BotScore = 1999
			s, _ = s.Apply(core.Tick{DT: 1500 * time.Millisecond})
			if s.BotLevel != 3 {
				t.Errorf("bot level = %d, want 3", s.BotLevel)
			}
			if s.Phase != core.PhaseGameOver || s.Reason != core.EndLevelRace || s.Result != tt.want {
				t.Errorf("phase %v reason %v result %v, want %v", s.Phase, s.Reason, s.Result, tt.want)
			}
		})
	}
}

func TestLevelRaceAutoAdvance(t *testing.T) {
	s := playing(t, core.ModePvP, core.RuleLevel)
	s.Phase = core.PhaseLevelComplete
	s, _ = s.Apply(core.Tick{DT: 500 * time.Millisecond})
	if s.Phase != core.PhaseLevelComplete {
		t.Fatalf("advanced early: phase %v", s.Phase)
	}
	s, _ = s.Apply(core.Tick{DT: 250 * time.Millisecond})
	if s.Phase != core.PhasePlaying || s.Level != 2 {
		t.Errorf("phase %v level %d, want playing level 2", s.Phase, s.Level)
	}

	// reaching level 3 wins the race outright
	s.Phase = core.PhaseLevelComplete
	s = mustApply(t, s, core.NextLevel{})
	if s.Phase != core.PhaseGameOver || s.Result != core.SidePlayer {
		t.Errorf("phase %v result %v at level %d", s.Phase, s.Result, s.Level)
	}
}

func TestRounds(t *testing.T) {
	s := playing(t, core.ModePvP, core.RuleRounds)
	lose := func(s core.Session) core.Session {
		t.Helper()
		s.Grid = gridFrom(t, basicRows...)
		s.Targets = trackOnly(core.ColorMint, 50)
		s.Moves = 1
		s.BotScore = 100
		s, _ = swipe(t, s, core.P(0, 0), core.P(0, 1))
		return s
	}

	s = lose(s)
	if s.Phase != core.PhaseGameOver || s.Reason != core.EndRoundOver || s.MatchOver {
		t.Fatalf("phase %v reason %v over %v, want round over", s.Phase, s.Reason, s.MatchOver)
	}
	if s.Result != core.SideBot || s.BotRounds != 1 || s.PlayerRounds != 0 {
		t.Errorf("result %v rounds %d-%d", s.Result, s.PlayerRounds, s.BotRounds)
	}

	s = mustApply(t, s, core.NextLevel{})
	if s.Round != 2 || s.Phase != core.PhasePlaying || s.Score != 0 || s.BotScore != 0 || s.BotRounds != 1 {
		t.Fatalf("next round: round %d phase %v score %d/%d rounds %d", s.Round, s.Phase, s.Score, s.BotScore, s.BotRounds)
	}

	s = lose(s)
	if s.Reason != core.EndRoundsDecided || !s.MatchOver || s.Result != core.SideBot {
		t.Errorf("reason %v over %v result %v, want match decided for bot", s.Reason, s.MatchOver, s.Result)
	}
	if _, eff := s.Apply(core.NextLevel{}); eff.Reason != core.ReasonNotPlaying {
		t.Errorf("next round after match over: reason %v", eff.Reason)
	}
}

func TestRoundDraw(t *testing.T) {
	s := playing(t, core.ModePvP, core.RuleRounds)
	s.Grid = gridFrom(t, basicRows...)
	s.Targets = trackOnly(core.ColorMint, 50)
	s.Moves = 1
	s.BotScore = 20
	s, _ = swipe(t, s, core.P(0, 0), core.P(0, 1))
	if s.Result != core.SideDraw || s.PlayerRounds != 0 || s.BotRounds != 0 {
		t.Errorf("result %v rounds %d-%d, want draw with no tally", s.Result, s.PlayerRounds, s.BotRounds)
	}
}

func TestTimedMatch(t *testing.T) {
	s := playing(t, core.ModePvPTimed, core.RuleRounds)
	s, eff := s.Apply(core.Tick{DT: 10 * time.Second})
	if s.SpeedTier != 2 || s.MatchTimeLeft != 35*time.Second {
		t.Errorf("tier %d time left %v, want 2 and 35s", s.SpeedTier, s.MatchTimeLeft)
	}
	if eff.BotPoints == 0 {
		t.Error("bot idle during timed match")
	}

	s.Score = s.BotScore + 100
	s, eff = s.Apply(core.Tick{DT: 35 * time.Second})
	if s.Phase != core.PhaseGameOver || s.Reason != core.EndMatchTime || !eff.Ended {
		t.Fatalf("phase %v reason %v, want match time over", s.Phase, s.Reason)
	}
	if s.Result != core.SidePlayer || s.MatchTimeLeft != 0 {
		t.Errorf("result %v time left %v", s.Result, s.MatchTimeLeft)
	}
}

func TestTimedMatchDraw(t *testing.T) {
	s := playing(t, core.ModePvPTimed, core.RuleRounds)
	s.Score, s.BotScore = 0, 0
	s.MatchTimeLeft = 250 * time.Millisecond
	s, _ = s.Apply(core.Tick{DT: 250 * time.Millisecond})
	if s.Result != core.SideDraw {
		t.Errorf("result = %v, want draw", s.Result)
	}
}

func TestSpeedIdleTimeout(t *testing.T) {
	s := playing(t, core.ModeSpeed, core.RuleRounds)
	s.Combo = 3
	tick := core.Tick{DT: 250 * time.Millisecond}
	for i := 0; i < 31; i++ {
		s, _ = s.Apply(tick)
	}
	if s.Phase != core.PhasePlaying {
		t.Fatalf("ended early at %v left", s.MoveTimeLeft)
	}
	s, eff := s.Apply(tick)
	if s.Phase != core.PhaseGameOver || s.Reason != core.EndOutOfTime || !eff.Ended {
		t.Fatalf("phase %v reason %v, want out of time", s.Phase, s.Reason)
	}
	if s.Combo != 0 || s.Moves != 30 {
		t.Errorf("combo %d moves %d, want 0 and 30", s.Combo, s.Moves)
	}
}

func TestSpeedMoveResetsTimer(t *testing.T) {
	s := playing(t, core.ModeSpeed, core.RuleRounds)
	s.Grid = gridFrom(t, basicRows...)
	s.Targets = trackOnly(core.ColorMint, 50)
	s, _ = s.Apply(core.Tick{DT: 4 * time.Second})
	s, _ = swipe(t, s, core.P(0, 0), core.P(0, 1))
	if s.MoveTimeLeft != 8*time.Second {
		t.Errorf("time left = %v, want 8s", s.MoveTimeLeft)
	}
}

func TestSpeedTiers(t *testing.T) {
	s := playing(t, core.ModeSpeed, core.RuleRounds)
	s.MoveTimeLeft = time.Minute
	s, _ = s.Apply(core.Tick{DT: 10 * time.Second})
	if s.SpeedTier != 2 || s.MoveTime != 7*time.Second {
		t.Errorf("tier %d base %v, want 2 and 7s", s.SpeedTier, s.MoveTime)
	}
	s.MoveTimeLeft = time.Hour
	s, _ = s.Apply(core.Tick{DT: 100 * time.Second})
	if s.SpeedTier != 10 || s.MoveTime != 3*time.Second {
		t.Errorf("tier %d base %v, want 10 and 3s", s.SpeedTier, s.MoveTime)
	}
}

func TestPauseFreezesAndClearsSelection(t *testing.T) {
	s := playing(t, core.ModeSpeed, core.RuleRounds)
	s = mustApply(t, s, core.SelectStart{Row: 0, Col: 0})
	s = mustApply(t, s, core.Pause{})
	if len(s.Selection) != 0 {
		t.Error("selection survived pause")
	}
	if s.Running() {
		t.Error("paused session reports running")
	}
	s, eff := s.Apply(core.Tick{DT: 10 * time.Second})
	if eff.Reason != core.ReasonPaused || s.MoveTimeLeft != 8*time.Second {
		t.Errorf("tick while paused: reason %v left %v", eff.Reason, s.MoveTimeLeft)
	}
	if _, eff := s.Apply(core.SelectStart{Row: 0, Col: 0}); eff.Reason != core.ReasonPaused {
		t.Errorf("select while paused: reason %v", eff.Reason)
	}
	if _, eff := s.Apply(core.UsePowerUp{Kind: core.PowerBomb}); eff.Reason != core.ReasonPaused {
		t.Errorf("power-up while paused: reason %v", eff.Reason)
	}
	s = mustApply(t, s, core.Resume{})
	if !s.Running() {
		t.Error("resumed session not running")
	}
}

func TestPowerUps(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)

	s = mustApply(t, s, core.UsePowerUp{Kind: core.PowerExtraMoves})
	if s.Moves != 35 || s.PowerUps.ExtraMoves != 0 {
		t.Errorf("extra moves: moves %d left %d", s.Moves, s.PowerUps.ExtraMoves)
	}
	if _, eff := s.Apply(core.UsePowerUp{Kind: core.PowerExtraMoves}); eff.Reason != core.ReasonEmptyInventory {
		t.Errorf("empty inventory: reason %v", eff.Reason)
	}

	s = mustApply(t, s, core.UsePowerUp{Kind: core.PowerBomb})
	if s.Score != 50 || s.PowerUps.Bomb != 1 || s.Grid.Occupied() != 16 {
		t.Errorf("bomb: score %d left %d occupied %d", s.Score, s.PowerUps.Bomb, s.Grid.Occupied())
	}

	s = mustApply(t, s, core.UsePowerUp{Kind: core.PowerShuffle})
	if s.Score != 50 || s.PowerUps.Shuffle != 0 || s.Grid.Occupied() != 16 {
		t.Errorf("shuffle: score %d left %d occupied %d", s.Score, s.PowerUps.Shuffle, s.Grid.Occupied())
	}

	s = mustApply(t, s, core.NewGame{})
	if s.PowerUps != core.DefaultInventory() || s.Score != 0 || s.HighScore != 50 {
		t.Errorf("new game: inventory %+v score %d high %d", s.PowerUps, s.Score, s.HighScore)
	}
}

func TestDailyBoardsMatch(t *testing.T) {
	date := time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local)
	start := func(seed uint64) core.Session {
		s := core.NewSession(core.DefaultRules(), core.NewXorshift(seed))
		s, _ = s.Apply(core.StartMode{Mode: core.ModeDaily, Date: date})
		return s
	}
	a, b := start(1), start(2)
	if !a.Grid.Equal(b.Grid) || a.Targets != b.Targets {
		t.Fatalf("daily boards differ:\n%s\n\n%s", a.Grid, b.Grid)
	}

	a.Phase, b.Phase = core.PhaseLevelComplete, core.PhaseLevelComplete
	a = mustApply(t, a, core.NextLevel{})
	b = mustApply(t, b, core.NextLevel{})
	if !a.Grid.Equal(b.Grid) || a.Grid.Size() != 5 {
		t.Errorf("daily level 2 boards differ or wrong size %d", a.Grid.Size())
	}
}

func TestMatchmaking(t *testing.T) {
	s := core.NewSession(core.DefaultRules(), core.NewXorshift(11))
	s, _ = s.Apply(core.StartMode{Mode: core.ModePvP, Rule: core.RuleScore})
	if s.Phase != core.PhaseMatchmaking {
		t.Fatalf("phase = %v, want matchmaking", s.Phase)
	}
	if s.SearchLeft < 7*time.Second || s.SearchLeft > 10*time.Second {
		t.Errorf("search = %v, want 7-10s", s.SearchLeft)
	}
	if !slices.Contains(core.Opponents, s.Opponent) {
		t.Errorf("opponent %q not in the name pool", s.Opponent)
	}
	if s.Rule != core.RuleScore {
		t.Errorf("rule = %v, want score", s.Rule)
	}

	s, _ = s.Apply(core.Tick{DT: s.SearchLeft})
	if s.Phase != core.PhaseMatchmaking || s.CountdownLeft != 3*time.Second {
		t.Fatalf("after search: phase %v countdown %v", s.Phase, s.CountdownLeft)
	}
	s, _ = s.Apply(core.Tick{DT: 2 * time.Second})
	if s.Phase != core.PhaseMatchmaking {
		t.Fatal("countdown finished early")
	}
	s, _ = s.Apply(core.Tick{DT: time.Second})
	if s.Phase != core.PhasePlaying || s.Grid.Size() != 4 {
		t.Errorf("phase %v size %d, want playing on 4x4", s.Phase, s.Grid.Size())
	}
}

func TestRuleOnlyAppliesToPvP(t *testing.T) {
	s := core.NewSession(core.DefaultRules(), core.NewXorshift(1))
	s, _ = s.Apply(core.StartMode{Mode: core.ModeClassic, Rule: core.RuleScore})
	if s.Rule != core.RuleRounds || s.Phase != core.PhasePlaying {
		t.Errorf("rule %v phase %v", s.Rule, s.Phase)
	}
	if s.Opponent != "" {
		t.Errorf("classic picked opponent %q", s.Opponent)
	}
}

func TestExitToMenu(t *testing.T) {
	s := playing(t, core.ModeClassic, core.RuleRounds)
	s, _ = s.Apply(core.ExitToMenu{})
	if s.Phase != core.PhaseSelectingMode || s.Running() {
		t.Errorf("phase %v running %v", s.Phase, s.Running())
	}
	if _, eff := s.Apply(core.NewGame{}); eff.Reason != core.ReasonNotPlaying {
		t.Errorf("new game from menu: reason %v", eff.Reason)
	}
}

func TestSnapshot(t *testing.T) {
	s := playing(t, core.ModePvP, core.RuleLevel)
	s = mustApply(t, s, core.SelectStart{Row: 1, Col: 2})
	snap := s.Snapshot()
	if snap.Mode != "pvp" || snap.Rule != "level" || snap.Phase != "playing" {
		t.Errorf("mode %q rule %q phase %q", snap.Mode, snap.Rule, snap.Phase)
	}
	if snap.Size != 4 || len(snap.Grid) != 4 || snap.Grid[1][2] == nil {
		t.Fatalf("grid size %d rows %d", snap.Size, len(snap.Grid))
	}
	if len(snap.Selection) != 1 || snap.Selection[0] != core.P(1, 2) {
		t.Errorf("selection = %v", snap.Selection)
	}
	if len(snap.Targets) != 2 {
		t.Errorf("targets = %v", snap.Targets)
	}
}
