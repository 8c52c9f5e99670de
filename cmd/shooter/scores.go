package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-shooter/internal/registry"
	"github.com/vovakirdan/space-shooter/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the best rounds and overall stats for the given mode (default: shooter).

Examples:
  shooter scores
  shooter scores shooter_blitz --limit 25
  shooter scores shooter --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded round for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode := modeArg(args)

	game, err := registry.Create(mode)
	if err != nil {
		fail("creating game: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared all rounds for %s.\n", game.Title())
		return
	}

	rounds, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'shooter play %s' to set the first high score!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-5s  %-7s  %-6s  %s\n", "Rank", "Score", "Level", "Result", "Time", "Date")
	fmt.Printf("  %-4s  %-7s  %-5s  %-7s  %-6s  %s\n", "----", "-----", "-----", "------", "----", "----")

	for i, r := range rounds {
		secs := r.Ticks / flagFPS
		fmt.Printf("  %-4d  %-7d  %-5d  %-7s  %2d:%02d   %s\n",
			i+1, r.Score, r.Level, r.Outcome, secs/60, secs%60, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(mode)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Rounds: %d  Wins: %d  Best: %d  Average: %.0f  Best level: %d\n",
		stats.Rounds, stats.Wins, stats.HighScore, stats.AvgScore, stats.BestLevel)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
