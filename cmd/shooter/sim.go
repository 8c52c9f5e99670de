package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
	"github.com/vovakirdan/space-shooter/internal/games/shooter"
	"github.com/vovakirdan/space-shooter/internal/storage"
)

var (
	flagSimRounds   int
	flagSimRealtime bool
	flagSimSave     bool
	flagSimTimeout  time.Duration
	flagSimMaxTicks int
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Run rounds headless with the autopilot",
	Long: `Play rounds without any screen or sound, driven by a scripted autopilot.
Useful for checking balance after editing a config file.

By default the simulation runs as fast as possible; --realtime paces it
at --fps ticks per second. With --save, rounds are written to the scores
database like played rounds. A round that runs past --max-ticks is
abandoned and ends the simulation.

Examples:
  shooter sim
  shooter sim shooter_blitz --rounds 50 --seed 42
  shooter sim --config ./my-shooter.yaml --difficulty hard
  shooter sim --rounds 3 --realtime --save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRounds, "rounds", 10, "Number of rounds to play")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace the simulation at --fps")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save finished rounds to the scores database")
	simCmd.Flags().DurationVar(&flagSimTimeout, "timeout", 0, "Stop after this long (0 = no limit)")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 60*60*10, "Stop if a single round runs this many ticks (0 = no limit)")
}

func runSim(_ *cobra.Command, args []string) {
	mode := modeArg(args)
	if flagSimRounds <= 0 {
		fail("--rounds must be positive, got %d", flagSimRounds)
	}

	logger, closer := openLogger("shooter-sim", false)
	defer closer.Close()

	cfg, err := loadConfig(mode, config.ParsePreset(flagDifficulty))
	if err != nil {
		fail("%v", err)
	}

	var store *storage.Store
	if flagSimSave {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tickRate := 0
	if flagSimRealtime {
		tickRate = flagFPS
	}

	session := shooter.NewSession(shooter.Env{
		Config: cfg,
		Rand:   rand.New(rand.NewSource(seed)),
	}, tickRate)

	sessionID := uuid.NewString()
	driver := newSimDriver(session, shooter.NewAutopilot(), flagSimRounds, flagSimMaxTicks)
	session.OnRoundEnd(func(r shooter.RoundReport) {
		driver.record(r)
		logger.Info("Round finished", "round", r.Number, "outcome", r.Outcome, "score", r.Score, "level", r.Level, "ticks", r.Ticks)
		if store == nil {
			return
		}
		_, err := store.SaveRound(storage.RoundRecord{
			GameID:    mode,
			SessionID: sessionID,
			Round:     r.Number,
			Score:     r.Score,
			Level:     r.Level,
			Outcome:   r.Outcome.String(),
			Ticks:     r.Ticks,
		})
		if err != nil {
			logger.Warn("Could not save round", "round", r.Number, "error", err)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flagSimTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagSimTimeout)
		defer cancel()
	}

	logger.Info("Simulation started", "mode", mode, "rounds", flagSimRounds, "seed", seed, "tick_rate", tickRate)
	start := time.Now()
	runErr := session.Run(ctx, driver)
	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		fail("simulation: %v", runErr)
	}
	if runErr != nil {
		logger.Warn("Simulation stopped early", "reason", runErr, "finished", len(driver.reports))
	}
	if driver.stalled {
		logger.Warn("Round hit the tick limit and was abandoned", "round", session.Rounds(), "max_ticks", flagSimMaxTicks)
	}

	printSimSummary(mode, seed, driver.reports, time.Since(start))
}

// simDriver feeds the autopilot to a session and quits once enough rounds
// have finished, or when a round runs past maxTicks.
type simDriver struct {
	session  *shooter.Session
	pilot    shooter.InputSource
	rounds   int
	maxTicks int
	reports  []shooter.RoundReport
	stalled  bool
}

func newSimDriver(session *shooter.Session, pilot shooter.InputSource, rounds, maxTicks int) *simDriver {
	return &simDriver{session: session, pilot: pilot, rounds: rounds, maxTicks: maxTicks}
}

func (d *simDriver) record(r shooter.RoundReport) {
	d.reports = append(d.reports, r)
}

// Next implements shooter.InputSource.
func (d *simDriver) Next(view shooter.Snapshot) core.InputFrame {
	switch d.session.Phase() {
	case shooter.PhaseOver:
		if len(d.reports) >= d.rounds {
			return core.InputOf(core.ActionQuit)
		}
	case shooter.PhaseRound:
		if d.maxTicks > 0 && d.session.Round().Ticks() >= d.maxTicks {
			d.stalled = true
			return core.InputOf(core.ActionQuit)
		}
	}
	return d.pilot.Next(view)
}

func printSimSummary(mode string, seed int64, reports []shooter.RoundReport, elapsed time.Duration) {
	fmt.Printf("Simulation - %s (seed %d)\n", mode, seed)
	fmt.Println()

	if len(reports) == 0 {
		fmt.Println("No rounds finished.")
		return
	}

	fmt.Printf("  %-5s  %-7s  %-7s  %-5s  %s\n", "Round", "Result", "Score", "Level", "Ticks")
	fmt.Printf("  %-5s  %-7s  %-7s  %-5s  %s\n", "-----", "------", "-----", "-----", "-----")

	wins, total, best := 0, 0, 0
	for _, r := range reports {
		fmt.Printf("  %-5d  %-7s  %-7d  %-5d  %d\n", r.Number, r.Outcome, r.Score, r.Level, r.Ticks)
		if r.Outcome == shooter.Win {
			wins++
		}
		total += r.Score
		best = max(best, r.Score)
	}

	fmt.Println()
	fmt.Printf("Rounds: %d  Wins: %d (%.0f%%)  Best: %d  Average: %.0f  Elapsed: %s\n",
		len(reports), wins, 100*float64(wins)/float64(len(reports)), best,
		float64(total)/float64(len(reports)), elapsed.Round(time.Millisecond))
}
