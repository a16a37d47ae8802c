package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dots/internal/config"
	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

// loadRules resolves --config and --preset into engine rules.
func loadRules() (core.Rules, error) {
	cfg, err := config.LoadDots(flagConfig)
	if err != nil {
		return core.Rules{}, err
	}
	preset, ok := config.ParsePreset(flagPreset)
	if !ok {
		return core.Rules{}, fmt.Errorf("unknown preset %q (easy, normal, hard, fixed)", flagPreset)
	}
	config.ApplyDotsPreset(&cfg, preset)

	rules := cfg.Rules()
	if flagFPS > 0 {
		rules.TickInterval = time.Second / time.Duration(flagFPS)
	}
	return rules, nil
}

// newLogger builds a logger for prefix at DOTS_LOG_LEVEL (default info).
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(os.Getenv("DOTS_LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// fileLogger logs next to the database so the TUI screen stays clean.
// It falls back to discarding output.
func fileLogger(prefix string) (*log.Logger, func()) {
	path := filepath.Join(filepath.Dir(expandHome(flagDBPath)), "dots.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}

func expandHome(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
