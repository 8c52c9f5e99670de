package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-shooter/internal/audio"
	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/games/shooter"
	"github.com/vovakirdan/space-shooter/internal/platform/tui"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode in the terminal",
	Long: `Start playing the given mode (default: shooter).

Controls:
  Left/Right, A/D  - Move
  Space/Up         - Fire
  R                - Restart (after win or game over)
  Q                - Quit
  Ctrl+S           - Save a text screenshot to ~/.shooter/screenshots

Terminals report key presses but not releases, so a press keeps the ship
moving (or firing) for a quarter second; holding the key keeps it going.

Difficulty options:
  easy   - More health, slower enemies, weaker boss
  normal - Mode defaults
  hard   - Less health, faster enemies, tougher boss

Examples:
  shooter play
  shooter play shooter_blitz
  shooter play --difficulty hard --mute
  shooter play --config ./my-shooter.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, args []string) {
	mode := modeArg(args)

	logger, closer := openLogger("shooter", true)
	defer closer.Close()

	var sound shooter.SoundSink = shooter.NopSound{}
	if !flagMute {
		sound = audio.Open(logger)
	}

	game, err := gameFactory(sound)(mode, config.ParsePreset(flagDifficulty))
	if err != nil {
		fail("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runErr := tui.Run(game, tui.Options{
		Store:  store,
		Logger: logger,
		Config: terminalConfig(),
	})
	sound.StopMusic()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
