package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/platform/window"
	"github.com/vovakirdan/space-shooter/internal/registry"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window [mode]",
	Short: "Play a mode in a desktop window",
	Long: `Open a desktop window and play the given mode (default: shooter).

The window shows the world at its configured size; use --scale to grow it.
Keys are the same as in the terminal, but releases are seen, so the ship
stops as soon as you let go.

Examples:
  shooter window
  shooter window shooter_blitz --scale 1.5
  shooter window --difficulty easy --mute`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale factor")
	windowCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runWindow(_ *cobra.Command, args []string) {
	mode := modeArg(args)

	logger, closer := openLogger("shooter", false)
	defer closer.Close()

	cfg, err := loadConfig(mode, config.ParsePreset(flagDifficulty))
	if err != nil {
		fail("%v", err)
	}

	title := "Space Shooter"
	for _, m := range registry.List() {
		if m.ID == mode {
			title = m.Title
		}
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	err = window.Run(window.Options{
		Mode:     mode,
		Title:    title,
		Config:   cfg,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Scale:    flagScale,
		Mute:     flagMute,
		Store:    store,
		Logger:   logger,
	})
	if err != nil {
		fail("%v", err)
	}
}
