package window

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/games/shooter"
	"github.com/vovakirdan/space-shooter/internal/logging"
	"github.com/vovakirdan/space-shooter/internal/storage"
)

// Options configures a window session.
type Options struct {
	Mode     string
	Title    string
	Config   config.ShooterConfig
	TickRate int   // Simulation ticks per second, also ebiten's TPS
	Seed     int64 // 0 uses the current time
	Scale    float64
	Mute     bool
	Store    *storage.Store // nil disables persistence
	Logger   *log.Logger
}

// Game is an ebiten.Game running one shooter session.
type Game struct {
	opts      Options
	keys      Keys
	sound     shooter.SoundSink
	session   *shooter.Session
	frames    *shooter.FrameBuffer
	bar       *shooter.BarAnimator
	sessionID string
	logger    *log.Logger
}

// NewGame builds the session. The caller owns sound; pass shooter.NopSound{} to mute.
func NewGame(opts Options, keys Keys, sound shooter.SoundSink) *Game {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	g := &Game{
		opts:      opts,
		keys:      keys,
		sound:     sound,
		frames:    &shooter.FrameBuffer{},
		bar:       shooter.NewBarAnimator(shooter.BarDrainSeconds),
		sessionID: uuid.NewString(),
		logger:    logger,
	}
	g.session = shooter.NewSession(shooter.Env{
		Config:   opts.Config,
		Rand:     rand.New(rand.NewSource(seed)),
		Sound:    sound,
		Renderer: g.frames,
	}, opts.TickRate)
	g.session.OnRoundEnd(g.roundEnded)

	logger.Info("Session started", "game", opts.Mode, "session", g.sessionID, "seed", seed)
	return g
}

func (g *Game) roundEnded(r shooter.RoundReport) {
	g.logger.Info("Round ended",
		"game", g.opts.Mode,
		"round", r.Number,
		"outcome", r.Outcome,
		"score", r.Score,
		"level", r.Level,
		"ticks", r.Ticks,
	)
	if g.opts.Store == nil {
		return
	}
	_, err := g.opts.Store.SaveRound(storage.RoundRecord{
		GameID:    g.opts.Mode,
		SessionID: g.sessionID,
		Round:     r.Number,
		Score:     r.Score,
		Level:     r.Level,
		Outcome:   r.Outcome.String(),
		Ticks:     r.Ticks,
	})
	if err != nil {
		g.logger.Warn("Failed to save round", "error", err)
	}
}

// Update advances the session by one tick.
func (g *Game) Update() error {
	if g.session.Step(ReadInput(g.keys)) == shooter.PhaseExited {
		g.logger.Info("Session ended", "game", g.opts.Mode, "session", g.sessionID, "rounds", g.session.Rounds())
		return ebiten.Termination
	}
	return nil
}

// Layout keeps the world resolution; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Config.World.Width, g.opts.Config.World.Height
}

// Session returns the running session.
func (g *Game) Session() *shooter.Session {
	return g.session
}

// Run opens the window and blocks until the player quits or closes it.
func Run(opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	var sound shooter.SoundSink = shooter.NopSound{}
	if !opts.Mute {
		s, err := NewSound(logger)
		if err != nil {
			logger.Warn("Audio disabled", "error", err)
		} else {
			sound = s
		}
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	title := opts.Title
	if title == "" {
		title = "Space Shooter"
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(float64(opts.Config.World.Width)*scale), int(float64(opts.Config.World.Height)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(1, opts.TickRate))

	game := NewGame(opts, ebitenKeys{}, sound)
	err := ebiten.RunGame(game)
	sound.StopMusic()
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
