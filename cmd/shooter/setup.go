package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
	"github.com/vovakirdan/space-shooter/internal/games/shooter"
	"github.com/vovakirdan/space-shooter/internal/logging"
	"github.com/vovakirdan/space-shooter/internal/registry"
	"github.com/vovakirdan/space-shooter/internal/storage"
)

const defaultTerminalLog = "~/.shooter/shooter.log"

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// openLogger builds the command's logger. The terminal UI owns stdout and
// stderr while it runs, so terminal commands always log to a file.
func openLogger(prefix string, terminal bool) (*log.Logger, io.Closer) {
	file := flagLogFile
	if file == "" && terminal {
		file = defaultTerminalLog
	}
	logger, closer, err := logging.New(logging.Options{
		Prefix: prefix,
		Level:  flagLogLevel,
		File:   file,
	})
	if err != nil {
		fail("%v", err)
	}
	return logger, closer
}

// openStore opens the scores database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("Could not open scores database", "error", err)
		return nil
	}
	return store
}

// modeArg returns the mode named in args, or the classic mode.
func modeArg(args []string) string {
	mode := config.ModeClassic
	if len(args) > 0 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'shooter list' to see available modes.")
		os.Exit(1)
	}
	return mode
}

// loadConfig loads the mode's config and applies the difficulty preset.
func loadConfig(mode string, preset config.DifficultyPreset) (config.ShooterConfig, error) {
	cfg, err := config.Load(mode, flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// gameFactory creates configured modes that play sound through sound.
func gameFactory(sound shooter.SoundSink) func(string, config.DifficultyPreset) (registry.Game, error) {
	return func(id string, preset config.DifficultyPreset) (registry.Game, error) {
		game, err := registry.Create(id)
		if err != nil {
			return nil, err
		}
		sg, ok := game.(*shooter.Game)
		if !ok {
			return game, nil
		}
		cfg, err := loadConfig(id, preset)
		if err != nil {
			return nil, err
		}
		sg.Apply(shooter.Options{Config: &cfg, Sound: sound})
		return sg, nil
	}
}

// terminalConfig returns runtime settings sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
