package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-shooter/internal/audio"
	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/games/shooter"
	"github.com/vovakirdan/space-shooter/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to change the difficulty,
Enter to play. After you quit a session, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Play
  Tab          - Scoreboard
  Q            - Quit

Examples:
  shooter menu
  shooter menu --fps 30
  shooter menu --db ./scores.db --mute`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closer := openLogger("shooter", true)
	defer closer.Close()

	var sound shooter.SoundSink = shooter.NopSound{}
	if !flagMute {
		sound = audio.Open(logger)
	}
	newGame := gameFactory(sound)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	preset := config.ParsePreset(flagDifficulty)
	if preset == "" {
		preset = config.DifficultyNormal
	}

	for {
		result, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			logger.Error("Menu failed", "error", err)
			break
		}
		cfg = result.Config
		preset = result.Preset

		if result.Quit {
			break
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate)
			if sbErr != nil {
				logger.Error("Scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if result.GameID == "" {
			break
		}

		game, err := newGame(result.GameID, preset)
		if err != nil {
			logger.Error("Creating game failed", "mode", result.GameID, "error", err)
			continue
		}

		// Fresh seed for every session.
		cfg.Seed = time.Now().UnixNano()

		if err := tui.Run(game, tui.Options{Store: store, Logger: logger, Config: cfg}); err != nil {
			logger.Error("Running game failed", "mode", result.GameID, "error", err)
		}
		sound.StopMusic()
	}
}
