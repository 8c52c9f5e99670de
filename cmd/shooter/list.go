package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered mode with its level thresholds.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
		maxTitleLen = max(maxTitleLen, len(m.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Levels")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")

	for _, m := range modes {
		lv := config.DefaultFor(m.ID).Levels
		fmt.Printf("  %-*s  %-*s  2 at %d, boss at %d\n", maxIDLen, m.ID, maxTitleLen, m.Title, lv.LevelOneScore, lv.LevelTwoScore)
	}

	fmt.Println()
	fmt.Println("Run 'shooter play <id>' to play a mode.")
}
