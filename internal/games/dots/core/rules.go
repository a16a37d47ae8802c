package core

import "time"

// Rules gathers every tunable of a session.
type Rules struct {
	Moves     int // move budget per level or round
	MaxLevels int

	BaseGridSize int
	MaxGridSize  int
	PvPGridSize  int

	Base Rarity // first level and every new game or round
	Deep Rarity // level 2 onward

	Scoring Scoring
	Targets TargetRules
	Stars   StarRules

	PowerUps        Inventory
	BombBonus       int
	ExtraMovesGrant int

	PvP         PvPRules
	Bot         BotRules
	Speed       SpeedRules
	Timed       TimedRules
	Matchmaking MatchmakingRules
	Opponents   []string

	TickInterval time.Duration
}

// PvPRules sets the win conditions of untimed matches.
type PvPRules struct {
	RoundLead    int // rounds ahead needed to take the match
	TargetLevel  int
	TargetScore  int
	BotLevelStep int           // bot level = botScore/BotLevelStep + 1
	AutoAdvance  time.Duration // delay before the next level in a level race
}

// SpeedRules sets the per-move countdown.
type SpeedRules struct {
	BaseMoveTime time.Duration
	MinMoveTime  time.Duration
	Step         time.Duration // base reduction per tier
	TierEvery    time.Duration
	MaxTier      int
}

// TimedRules sets the shared countdown of timed matches.
type TimedRules struct {
	Duration  time.Duration
	TierEvery time.Duration
	MaxTier   int
}

// MatchmakingRules sets the opponent search delay.
type MatchmakingRules struct {
	SearchMin time.Duration
	SearchMax time.Duration
	Countdown time.Duration
}

// DefaultRules returns the standard game.
func DefaultRules() Rules {
	return Rules{
		Moves:           30,
		MaxLevels:       10,
		BaseGridSize:    4,
		MaxGridSize:     8,
		PvPGridSize:     4,
		Base:            BaseRarity,
		Deep:            DeepRarity,
		Scoring:         DefaultScoring(),
		Targets:         DefaultTargetRules(),
		Stars:           DefaultStarRules(),
		PowerUps:        DefaultInventory(),
		BombBonus:       50,
		ExtraMovesGrant: 5,
		PvP: PvPRules{
			RoundLead:    2,
			TargetLevel:  3,
			TargetScore:  2000,
			BotLevelStep: 1000,
			AutoAdvance:  700 * time.Millisecond,
		},
		Bot: DefaultBotRules(),
		Speed: SpeedRules{
			BaseMoveTime: 8 * time.Second,
			MinMoveTime:  3 * time.Second,
			Step:         time.Second,
			TierEvery:    10 * time.Second,
			MaxTier:      10,
		},
		Timed: TimedRules{
			Duration:  45 * time.Second,
			TierEvery: 10 * time.Second,
			MaxTier:   10,
		},
		Matchmaking: MatchmakingRules{
			SearchMin: 7 * time.Second,
			SearchMax: 10 * time.Second,
			Countdown: 3 * time.Second,
		},
		Opponents:    Opponents,
		TickInterval: 250 * time.Millisecond,
	}
}

// GridSizeFor returns the board size for a level: the base size on the
// first level, then one larger per level up to the maximum.
func (r Rules) GridSizeFor(level int) int {
	if level <= 1 {
		return r.BaseGridSize
	}
	return min(r.BaseGridSize+(level-1), r.MaxGridSize)
}

// RarityFor returns the special-tile thresholds for a level.
func (r Rules) RarityFor(level int) Rarity {
	if level <= 1 {
		return r.Base
	}
	return r.Deep
}
