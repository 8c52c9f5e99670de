// shooter is a vertical space shooter for the terminal, SSH and the desktop.
//
// Usage:
//
//	shooter list              - List available modes
//	shooter play [mode]       - Play a mode in the terminal
//	shooter menu              - Pick a mode interactively
//	shooter window [mode]     - Play in a desktop window
//	shooter serve             - Start SSH server for remote play
//	shooter scores [mode]     - Show high scores
//	shooter sim [mode]        - Run rounds headless with the autopilot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.shooter/scores.db)
//	--config <path>       - Load a custom mode config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-shooter/internal/config"

	// Import modes to register them
	_ "github.com/vovakirdan/space-shooter/internal/games/shooter"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shooter",
	Short: "Space Shooter - blast enemy waves and the boss in your terminal",
	Long: `Space Shooter is a vertical shooter. Move your ship, shoot down falling
enemies, catch health pickups and defeat the boss waiting at level 3.

Available commands:
  list     - Show all modes
  play     - Play a mode in the terminal
  menu     - Interactive mode picker
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run headless autopilot rounds

Examples:
  shooter play
  shooter play shooter_blitz --difficulty hard
  shooter window --scale 1.25
  shooter serve --ssh :2222
  shooter sim --rounds 20`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (use easy, normal or hard)", flagDifficulty)
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.shooter/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom mode config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (terminal commands default to ~/.shooter/shooter.log)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
