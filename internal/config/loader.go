package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDots loads the dots configuration.
// Search order: customPath -> ~/.dots/configs/dots.yaml -> ./configs/dots.yaml -> embedded default
// Files are decoded over the defaults, so keys they omit keep default values.
func LoadDots(customPath string) (DotsConfig, error) {
	cfg := DefaultDotsConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dots.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultDotsConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/dots.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultDotsConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDotsYAML, &cfg); err != nil {
		return DefaultDotsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dots", "configs", filename)
}

// ApplyDotsPreset modifies the config based on a difficulty preset.
// Easy gives more moves and a slower bot, hard fewer moves and a faster
// bot. Fixed keeps normal values but freezes speed and timed tiers.
func ApplyDotsPreset(cfg *DotsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Moves = 40
		cfg.Bot.IntervalMS = 2000
		cfg.Bot.TimedBaseMS = 3000
		cfg.Speed.BaseMoveMS = 10000
		cfg.PowerUps.Bomb = 3
		cfg.PowerUps.Shuffle = 2
	case DifficultyHard:
		cfg.Board.Moves = 25
		cfg.Bot.IntervalMS = 1100
		cfg.Bot.TimedBaseMS = 2000
		cfg.Speed.BaseMoveMS = 6000
		cfg.PowerUps.Bomb = 1
	case DifficultyFixed:
		cfg.Speed.MaxTier = 1
		cfg.Timed.MaxTier = 1
	}
}
