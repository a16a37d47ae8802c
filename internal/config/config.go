// Package config provides YAML-based configuration loading and
// difficulty presets for the dots game.
package config

import (
	"time"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

// DotsConfig contains all tunables for the dots game.
type DotsConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Rarity      RarityConfig      `yaml:"rarity"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Targets     TargetsConfig     `yaml:"targets"`
	Stars       StarsConfig       `yaml:"stars"`
	PowerUps    PowerUpsConfig    `yaml:"power_ups"`
	PvP         PvPConfig         `yaml:"pvp"`
	Bot         BotConfig         `yaml:"bot"`
	Speed       SpeedConfig       `yaml:"speed"`
	Timed       TimedConfig       `yaml:"timed"`
	Matchmaking MatchmakingConfig `yaml:"matchmaking"`
	TickMS      int               `yaml:"tick_ms"`
	Opponents   []string          `yaml:"opponents"`
}

// BoardConfig defines move budget, level count and grid sizes.
type BoardConfig struct {
	Moves        int `yaml:"moves"`
	MaxLevels    int `yaml:"max_levels"`
	BaseGridSize int `yaml:"base_grid_size"`
	MaxGridSize  int `yaml:"max_grid_size"`
	PvPGridSize  int `yaml:"pvp_grid_size"`
}

// RarityConfig defines special-tile thresholds. A roll above the
// threshold sets the flag.
type RarityConfig struct {
	Base Thresholds `yaml:"base"` // first level
	Deep Thresholds `yaml:"deep"` // level 2 onward
}

// Thresholds holds one set of special-tile thresholds.
type Thresholds struct {
	Rainbow   float64 `yaml:"rainbow"`
	Gem       float64 `yaml:"gem"`
	Bomb      float64 `yaml:"bomb"`
	Lightning float64 `yaml:"lightning"`
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	PointsPerTile    int `yaml:"points_per_tile"`
	ComboBonus       int `yaml:"combo_bonus"`
	GemMultiplier    int `yaml:"gem_multiplier"`
	SquareMultiplier int `yaml:"square_multiplier"`
}

// TargetsConfig defines per-level collection targets.
type TargetsConfig struct {
	InitialColors int `yaml:"initial_colors"`
	InitialBase   int `yaml:"initial_base"`
	InitialSpread int `yaml:"initial_spread"`
	DeepBase      int `yaml:"deep_base"`
	DeepSpread    int `yaml:"deep_spread"`
	PerLevel      int `yaml:"per_level"`
	ColorStep     int `yaml:"color_step"`
	MaxColors     int `yaml:"max_colors"`
}

// StarsConfig defines the move fractions for three and two stars.
type StarsConfig struct {
	Three float64 `yaml:"three"`
	Two   float64 `yaml:"two"`
}

// PowerUpsConfig defines the starting inventory and effects.
type PowerUpsConfig struct {
	Bomb            int `yaml:"bomb"`
	Shuffle         int `yaml:"shuffle"`
	ExtraMoves      int `yaml:"extra_moves"`
	BombBonus       int `yaml:"bomb_bonus"`
	ExtraMovesGrant int `yaml:"extra_moves_grant"`
}

// PvPConfig defines untimed match rules.
type PvPConfig struct {
	RoundLead     int `yaml:"round_lead"`
	TargetLevel   int `yaml:"target_level"`
	TargetScore   int `yaml:"target_score"`
	BotLevelStep  int `yaml:"bot_level_step"`
	AutoAdvanceMS int `yaml:"auto_advance_ms"`
}

// BotConfig defines the opponent's search and pace.
type BotConfig struct {
	Tries          int `yaml:"tries"`
	MaxSteps       int `yaml:"max_steps"`
	StopAt         int `yaml:"stop_at"`
	FallbackPoints int `yaml:"fallback_points"` // awarded when no chain is found; not capped
	IntervalMS     int `yaml:"interval_ms"`
	TimedBaseMS    int `yaml:"timed_base_ms"`
	TimedStepMS    int `yaml:"timed_step_ms"`
	TimedMinMS     int `yaml:"timed_min_ms"`
}

// SpeedConfig defines the speed mode countdown.
type SpeedConfig struct {
	BaseMoveMS  int `yaml:"base_move_ms"`
	MinMoveMS   int `yaml:"min_move_ms"`
	StepMS      int `yaml:"step_ms"`
	TierEveryMS int `yaml:"tier_every_ms"`
	MaxTier     int `yaml:"max_tier"`
}

// TimedConfig defines the timed match countdown.
type TimedConfig struct {
	DurationMS  int `yaml:"duration_ms"`
	TierEveryMS int `yaml:"tier_every_ms"`
	MaxTier     int `yaml:"max_tier"`
}

// MatchmakingConfig defines the opponent search delay.
type MatchmakingConfig struct {
	SearchMinMS int `yaml:"search_min_ms"`
	SearchMaxMS int `yaml:"search_max_ms"`
	CountdownMS int `yaml:"countdown_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a name to a preset. Unknown names map to normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return DifficultyNormal, false
	}
}

// Board edges stay within [minGridSize, maxGridSize]; unset sizes take def.
const (
	minGridSize = 4
	maxGridSize = 8
)

func gridSize(n, def int) int {
	if n <= 0 {
		return def
	}
	return min(max(n, minGridSize), maxGridSize)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func (t Thresholds) rarity() core.Rarity {
	return core.Rarity{Rainbow: t.Rainbow, Gem: t.Gem, Bomb: t.Bomb, Lightning: t.Lightning}
}

// Rules converts the configuration into engine rules. Zero or missing
// sections fall back to the engine defaults.
func (c DotsConfig) Rules() core.Rules {
	def := DefaultDotsConfig()
	if c.Board.Moves <= 0 {
		c.Board = def.Board
	}
	if c.Board.MaxLevels <= 0 {
		c.Board.MaxLevels = def.Board.MaxLevels
	}
	c.Board.BaseGridSize = gridSize(c.Board.BaseGridSize, def.Board.BaseGridSize)
	c.Board.MaxGridSize = max(gridSize(c.Board.MaxGridSize, def.Board.MaxGridSize), c.Board.BaseGridSize)
	c.Board.PvPGridSize = gridSize(c.Board.PvPGridSize, def.Board.PvPGridSize)
	if c.Rarity.Base == (Thresholds{}) {
		c.Rarity.Base = def.Rarity.Base
	}
	if c.Rarity.Deep == (Thresholds{}) {
		c.Rarity.Deep = def.Rarity.Deep
	}
	if c.Scoring.PointsPerTile <= 0 {
		c.Scoring = def.Scoring
	}
	if c.Targets.InitialColors <= 0 {
		c.Targets = def.Targets
	}
	if c.Stars == (StarsConfig{}) {
		c.Stars = def.Stars
	}
	if c.PowerUps == (PowerUpsConfig{}) {
		c.PowerUps = def.PowerUps
	}
	if c.PvP.TargetScore <= 0 {
		c.PvP = def.PvP
	}
	if c.Bot.Tries <= 0 {
		c.Bot = def.Bot
	}
	if c.Speed.BaseMoveMS <= 0 {
		c.Speed = def.Speed
	}
	if c.Timed.DurationMS <= 0 {
		c.Timed = def.Timed
	}
	if c.Matchmaking == (MatchmakingConfig{}) {
		c.Matchmaking = def.Matchmaking
	}
	if c.TickMS <= 0 {
		c.TickMS = def.TickMS
	}
	if len(c.Opponents) == 0 {
		c.Opponents = def.Opponents
	}

	return core.Rules{
		Moves:        c.Board.Moves,
		MaxLevels:    c.Board.MaxLevels,
		BaseGridSize: c.Board.BaseGridSize,
		MaxGridSize:  c.Board.MaxGridSize,
		PvPGridSize:  c.Board.PvPGridSize,
		Base:         c.Rarity.Base.rarity(),
		Deep:         c.Rarity.Deep.rarity(),
		Scoring: core.Scoring{
			PointsPerTile:    c.Scoring.PointsPerTile,
			ComboBonus:       c.Scoring.ComboBonus,
			GemMultiplier:    c.Scoring.GemMultiplier,
			SquareMultiplier: c.Scoring.SquareMultiplier,
		},
		Targets: core.TargetRules{
			InitialColors: c.Targets.InitialColors,
			InitialBase:   c.Targets.InitialBase,
			InitialSpread: c.Targets.InitialSpread,
			DeepBase:      c.Targets.DeepBase,
			DeepSpread:    c.Targets.DeepSpread,
			PerLevel:      c.Targets.PerLevel,
			ColorStep:     c.Targets.ColorStep,
			MaxColors:     c.Targets.MaxColors,
		},
		Stars: core.StarRules{Three: c.Stars.Three, Two: c.Stars.Two},
		PowerUps: core.Inventory{
			Bomb:       c.PowerUps.Bomb,
			Shuffle:    c.PowerUps.Shuffle,
			ExtraMoves: c.PowerUps.ExtraMoves,
		},
		BombBonus:       c.PowerUps.BombBonus,
		ExtraMovesGrant: c.PowerUps.ExtraMovesGrant,
		PvP: core.PvPRules{
			RoundLead:    c.PvP.RoundLead,
			TargetLevel:  c.PvP.TargetLevel,
			TargetScore:  c.PvP.TargetScore,
			BotLevelStep: c.PvP.BotLevelStep,
			AutoAdvance:  ms(c.PvP.AutoAdvanceMS),
		},
		Bot: core.BotRules{
			Tries:          c.Bot.Tries,
			MaxSteps:       c.Bot.MaxSteps,
			StopAt:         c.Bot.StopAt,
			FallbackPoints: c.Bot.FallbackPoints,
			Interval:       ms(c.Bot.IntervalMS),
			TimedBase:      ms(c.Bot.TimedBaseMS),
			TimedStep:      ms(c.Bot.TimedStepMS),
			TimedMin:       ms(c.Bot.TimedMinMS),
		},
		Speed: core.SpeedRules{
			BaseMoveTime: ms(c.Speed.BaseMoveMS),
			MinMoveTime:  ms(c.Speed.MinMoveMS),
			Step:         ms(c.Speed.StepMS),
			TierEvery:    ms(c.Speed.TierEveryMS),
			MaxTier:      c.Speed.MaxTier,
		},
		Timed: core.TimedRules{
			Duration:  ms(c.Timed.DurationMS),
			TierEvery: ms(c.Timed.TierEveryMS),
			MaxTier:   c.Timed.MaxTier,
		},
		Matchmaking: core.MatchmakingRules{
			SearchMin: ms(c.Matchmaking.SearchMinMS),
			SearchMax: ms(c.Matchmaking.SearchMaxMS),
			Countdown: ms(c.Matchmaking.CountdownMS),
		},
		Opponents:    c.Opponents,
		TickInterval: ms(c.TickMS),
	}
}
