package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dots/internal/platform/web"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP API and websocket server",
	Long: `Serve the JSON API and the websocket play endpoint.

Endpoints:
  GET /health
  GET /api/modes
  GET /api/scores/{mode}?limit=N
  GET /api/stats
  GET /api/daily?date=YYYY-MM-DD
  GET /api/matches?mode=M&limit=N
  GET /ws/play?mode=M&rule=R   (websocket)

Examples:
  dots web
  dots web --addr :9000`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	rules, err := loadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, "dots-web")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	}
	if store != nil {
		defer store.Close()
	}

	srv := web.New(web.Config{
		Addr:   flagWebAddr,
		Rules:  rules,
		Store:  store,
		Logger: logger,
	})
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
