package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dots/internal/storage"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export match history to Parquet",
	Long: `Write every recorded match to a zstd-compressed Parquet file.

Examples:
  dots export
  dots export --out ./history/matches.parquet`,
	Args: cobra.NoArgs,
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportOut, "out", "matches.parquet", "Output file")
}

func runExport(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	n, err := store.ExportMatches(flagExportOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting matches: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d matches to %s\n", n, flagExportOut)
}
