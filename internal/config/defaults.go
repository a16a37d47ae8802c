package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

//go:embed defaults/dots.yaml
var defaultDotsYAML []byte

// DefaultDotsConfig returns the default dots configuration.
func DefaultDotsConfig() DotsConfig {
	return DotsConfig{
		Board: BoardConfig{
			Moves:        30,
			MaxLevels:    10,
			BaseGridSize: 4,
			MaxGridSize:  8,
			PvPGridSize:  4,
		},
		Rarity: RarityConfig{
			Base: Thresholds{Rainbow: 0.92, Gem: 0.95, Bomb: 0.97, Lightning: 0.96},
			Deep: Thresholds{Rainbow: 0.90, Gem: 0.93, Bomb: 0.95, Lightning: 0.94},
		},
		Scoring: ScoringConfig{
			PointsPerTile:    10,
			ComboBonus:       5,
			GemMultiplier:    3,
			SquareMultiplier: 2,
		},
		Targets: TargetsConfig{
			InitialColors: 2,
			InitialBase:   3,
			InitialSpread: 3,
			DeepBase:      5,
			DeepSpread:    5,
			PerLevel:      3,
			ColorStep:     3,
			MaxColors:     5,
		},
		Stars: StarsConfig{Three: 0.5, Two: 0.25},
		PowerUps: PowerUpsConfig{
			Bomb:            2,
			Shuffle:         1,
			ExtraMoves:      1,
			BombBonus:       50,
			ExtraMovesGrant: 5,
		},
		PvP: PvPConfig{
			RoundLead:     2,
			TargetLevel:   3,
			TargetScore:   2000,
			BotLevelStep:  1000,
			AutoAdvanceMS: 700,
		},
		Bot: BotConfig{
			Tries:          30,
			MaxSteps:       4,
			StopAt:         3,
			FallbackPoints: 5,
			IntervalMS:     1500,
			TimedBaseMS:    2500,
			TimedStepMS:    200,
			TimedMinMS:     800,
		},
		Speed: SpeedConfig{
			BaseMoveMS:  8000,
			MinMoveMS:   3000,
			StepMS:      1000,
			TierEveryMS: 10000,
			MaxTier:     10,
		},
		Timed: TimedConfig{
			DurationMS:  45000,
			TierEveryMS: 10000,
			MaxTier:     10,
		},
		Matchmaking: MatchmakingConfig{
			SearchMinMS: 7000,
			SearchMaxMS: 10000,
			CountdownMS: 3000,
		},
		TickMS:    250,
		Opponents: append([]string(nil), core.Opponents...),
	}
}
