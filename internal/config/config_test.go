package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg DotsConfig
	require.NoError(t, yaml.Unmarshal(defaultDotsYAML, &cfg))
	assert.Equal(t, DefaultDotsConfig(), cfg)
}

func TestDefaultRulesMatchEngine(t *testing.T) {
	assert.Equal(t, core.DefaultRules(), DefaultDotsConfig().Rules())
}

func TestLoadDotsCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dots.yaml")
	data := []byte("board:\n  moves: 12\n  max_levels: 3\n  base_grid_size: 5\n  max_grid_size: 6\n  pvp_grid_size: 5\ntick_ms: 100\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadDots(path)
	require.NoError(t, err)
	rules := cfg.Rules()

	assert.Equal(t, 12, rules.Moves)
	assert.Equal(t, 3, rules.MaxLevels)
	assert.Equal(t, 5, rules.GridSizeFor(1))
	assert.Equal(t, 6, rules.GridSizeFor(4))
	assert.Equal(t, 100*time.Millisecond, rules.TickInterval)
	// sections missing from the file keep engine defaults
	assert.Equal(t, core.DefaultScoring(), rules.Scoring)
	assert.Equal(t, core.DefaultBotRules(), rules.Bot)
	assert.Equal(t, core.Opponents, rules.Opponents)
}

func TestLoadDotsPartialSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dots.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  moves: 25\n"), 0o644))

	cfg, err := LoadDots(path)
	require.NoError(t, err)
	rules := cfg.Rules()

	def := core.DefaultRules()
	assert.Equal(t, 25, rules.Moves)
	assert.Equal(t, def.MaxLevels, rules.MaxLevels)
	assert.Equal(t, def.BaseGridSize, rules.BaseGridSize)
	assert.Equal(t, def.MaxGridSize, rules.MaxGridSize)
	assert.Equal(t, def.PvPGridSize, rules.PvPGridSize)
}

func TestRulesBoardBounds(t *testing.T) {
	tests := []struct {
		name      string
		board     BoardConfig
		base      int
		maxSize   int
		pvp       int
		maxLevels int
	}{
		{"moves only", BoardConfig{Moves: 25}, 4, 8, 4, 10},
		{"too small", BoardConfig{Moves: 25, MaxLevels: 2, BaseGridSize: 2, MaxGridSize: 3, PvPGridSize: 1}, 4, 4, 4, 2},
		{"too large", BoardConfig{Moves: 25, BaseGridSize: 12, MaxGridSize: 20, PvPGridSize: 9}, 8, 8, 8, 10},
		{"max below base", BoardConfig{Moves: 25, BaseGridSize: 6, MaxGridSize: 5}, 6, 6, 4, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DotsConfig{Board: tt.board}.Rules()
			assert.Equal(t, tt.base, rules.BaseGridSize)
			assert.Equal(t, tt.maxSize, rules.MaxGridSize)
			assert.Equal(t, tt.pvp, rules.PvPGridSize)
			assert.Equal(t, tt.maxLevels, rules.MaxLevels)
		})
	}
}

func TestLoadDotsErrors(t *testing.T) {
	_, err := LoadDots(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [1, 2"), 0o644))
	_, err = LoadDots(bad)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestApplyDotsPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		moves     int
		botMS     int
		speedTier int
	}{
		{DifficultyEasy, 40, 2000, 10},
		{DifficultyNormal, 30, 1500, 10},
		{DifficultyHard, 25, 1100, 10},
		{DifficultyFixed, 30, 1500, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultDotsConfig()
			ApplyDotsPreset(&cfg, tt.preset)
			assert.Equal(t, tt.moves, cfg.Board.Moves)
			assert.Equal(t, tt.botMS, cfg.Bot.IntervalMS)
			assert.Equal(t, tt.speedTier, cfg.Speed.MaxTier)
		})
	}
}

func TestParsePreset(t *testing.T) {
	p, ok := ParsePreset("hard")
	assert.True(t, ok)
	assert.Equal(t, DifficultyHard, p)

	p, ok = ParsePreset("")
	assert.True(t, ok)
	assert.Equal(t, DifficultyNormal, p)

	p, ok = ParsePreset("nightmare")
	assert.False(t, ok)
	assert.Equal(t, DifficultyNormal, p)
}
