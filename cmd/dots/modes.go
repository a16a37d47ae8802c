package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
	"github.com/vovakirdan/tui-dots/internal/platform/tui"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all game modes",
	Long:  `Shows every playable mode and PvP rule.`,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	items := tui.DefaultMenuItems()

	fmt.Println("Available modes:")
	fmt.Println()

	fmt.Printf("  %-10s  %-7s  %s\n", "Mode", "Rule", "Description")
	fmt.Printf("  %-10s  %-7s  %s\n", "----", "----", "-----------")

	for _, item := range items {
		rule := "-"
		if item.Mode == core.ModePvP {
			rule = item.Rule.String()
		}
		fmt.Printf("  %-10s  %-7s  %s\n", item.Mode, rule, item.Description)
	}

	fmt.Println()
	fmt.Println("Run 'dots play <mode>' to play, e.g. 'dots play pvp --rule score'.")
}
