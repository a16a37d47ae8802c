// dots is a connect-the-dots puzzle for the terminal.
//
// Usage:
//
//	dots modes              - List game modes
//	dots play [mode]        - Play a mode (menu when omitted)
//	dots daily              - Play today's daily puzzle
//	dots scores <mode>      - Show high scores for a mode
//	dots serve              - Start SSH server for remote play
//	dots web                - Start the HTTP/websocket server
//	dots export             - Export match history to Parquet
//
// Global flags:
//
//	--fps <rate>     - Runner ticks per second (0 = config tick_ms)
//	--seed <value>   - Set RNG seed for reproducible boards
//	--db <path>      - Set database path (default: ~/.dots/scores.db)
//	--config <path>  - Custom dots.yaml
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   uint64
	flagDBPath string
	flagConfig string
	flagPreset string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dots",
	Short: "Dots - connect same-colored dots in your terminal",
	Long: `Dots is a terminal puzzle: draw paths through neighbouring dots of one
color to clear them, collect the level targets before your moves run out,
or race a bot opponent.

Available commands:
  modes    - Show all game modes
  play     - Play a mode directly, or pick one from the menu
  daily    - Play today's shared puzzle
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start the HTTP API and websocket server
  export   - Write match history to a Parquet file

Examples:
  dots play
  dots play pvp --rule score
  dots daily
  dots serve --ssh :2222
  dots scores speed`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		_ = godotenv.Load()
		if v := os.Getenv("DOTS_DB"); v != "" && !cmd.Flags().Changed("db") {
			flagDBPath = v
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Runner ticks per second (0 = config tick_ms)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dots/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom dots.yaml")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(exportCmd)
}
