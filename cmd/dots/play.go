package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
	"github.com/vovakirdan/tui-dots/internal/platform/tui"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

var (
	flagRule       string
	flagMonochrome bool
	flagDailyInfo  bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode, or open the mode menu when none is given.

Controls:
  Arrows/hjkl  - Move the cursor
  Space        - Start / finish a path
  Enter        - Clear the path, or continue after a level or round
  Esc          - Cancel the path, or back to the menu
  X / S / M    - Bomb, shuffle, +moves power-ups
  P            - Pause
  Q/Ctrl+C     - Quit

Modes: classic, daily, pvp, pvp_timed, speed.
PvP rules (--rule): rounds, level, score.

Difficulty options (--preset):
  easy   - More moves, slower bot and timers, extra power-ups
  normal - Default rules
  hard   - Fewer moves, faster bot and timers
  fixed  - Speed and timed tiers never advance

Examples:
  dots play
  dots play classic --preset easy
  dots play pvp --rule level
  dots play speed --seed 42
  dots play classic --config ./my-dots.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Play today's daily puzzle",
	Long: `Play the daily puzzle. Every player gets the same boards and targets
for a given date; results are recorded per date.

Examples:
  dots daily
  dots daily --info   # print today's seed and best result`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if flagDailyInfo {
			runDailyInfo()
			return
		}
		runPlay(cmd, []string{core.ModeDaily.String()})
	},
}

func init() {
	playCmd.Flags().StringVar(&flagRule, "rule", "", "PvP rule: rounds, level, score")
	playCmd.Flags().BoolVar(&flagMonochrome, "mono", false, "Draw color initials instead of colored dots")
	dailyCmd.Flags().BoolVar(&flagMonochrome, "mono", false, "Draw color initials instead of colored dots")
	dailyCmd.Flags().BoolVar(&flagDailyInfo, "info", false, "Print today's seed and best result, then exit")
}

func runDailyInfo() {
	today := time.Now()
	date := today.Format(time.DateOnly)
	fmt.Printf("Daily %s  (seed %d)\n", date, core.DailySeed(today, 1))

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	best, err := store.BestDaily(date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving daily result: %v\n", err)
		os.Exit(1)
	}
	if best == nil {
		fmt.Println("Not played yet today.")
		return
	}
	fmt.Printf("Best: %d  (level %d, %d stars)\n", best.Score, best.Level, best.Stars)
}

// menuItemFor finds the menu entry for a mode name and PvP rule.
func menuItemFor(modeName, ruleName string) (*tui.MenuItem, error) {
	mode, ok := core.ParseMode(modeName)
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", modeName)
	}
	rule, ok := core.ParseRule(ruleName)
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", ruleName)
	}
	for _, item := range tui.DefaultMenuItems() {
		if item.Mode == mode && (mode != core.ModePvP || item.Rule == rule) {
			return &item, nil
		}
	}
	return nil, fmt.Errorf("no entry for mode %q", modeName)
}

func runPlay(_ *cobra.Command, args []string) {
	rules, err := loadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var start *tui.MenuItem
	if len(args) == 1 {
		start, err = menuItemFor(args[0], flagRule)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'dots modes' to see available modes.")
			os.Exit(1)
		}
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	logger, closeLog := fileLogger("dots")

	theme := tui.DefaultTheme()
	if flagMonochrome {
		theme = tui.MonochromeTheme()
	}

	runErr := tui.Run(tui.AppConfig{
		Rules:  rules,
		Store:  store,
		Logger: logger,
		Seed:   flagSeed,
		Theme:  theme,
		Width:  width,
		Height: height,
		Start:  start,
	})

	closeLog()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
