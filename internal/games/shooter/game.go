package shooter

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
	"github.com/vovakirdan/space-shooter/internal/registry"
)

// Options customizes a Game before Reset.
type Options struct {
	Config     *config.ShooterConfig // nil keeps the mode's defaults
	Sound      SoundSink
	OnRoundEnd func(RoundReport)
}

// Game adapts a Session to the registry's game interface.
// Rounds always play in world pixels; Render scales them to the terminal.
type Game struct {
	mode       string
	title      string
	cfg        config.ShooterConfig
	sound      SoundSink
	onRoundEnd func(RoundReport)

	session *Session
	frames  *FrameBuffer
	view    *TerminalRenderer
}

// New creates a game for one of the config modes.
func New(mode string) *Game {
	title := "Space Shooter"
	if mode == config.ModeBlitz {
		title = "Space Shooter (Blitz)"
	}
	return &Game{
		mode:   mode,
		title:  title,
		cfg:    config.DefaultFor(mode),
		sound:  NopSound{},
		frames: &FrameBuffer{},
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Apply sets options. It takes effect at the next Reset.
func (g *Game) Apply(opts Options) {
	if opts.Config != nil {
		g.cfg = *opts.Config
	}
	if opts.Sound != nil {
		g.sound = opts.Sound
	}
	if opts.OnRoundEnd != nil {
		g.onRoundEnd = opts.OnRoundEnd
	}
}

// Config returns the configuration rounds are built with.
func (g *Game) Config() config.ShooterConfig {
	return g.cfg
}

// Reset starts a fresh session. A zero seed uses the current time.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if g.session != nil {
		g.sound.StopMusic()
	}

	g.frames.Reset()
	g.view = NewTerminalRenderer(cfg.TickRate)
	g.session = NewSession(Env{
		Config:   g.cfg,
		Rand:     rand.New(rand.NewSource(seed)),
		Sound:    g.sound,
		Renderer: g.frames,
	}, cfg.TickRate)
	if g.onRoundEnd != nil {
		g.session.OnRoundEnd(g.onRoundEnd)
	}
}

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(core.DefaultConfig())
	}
	g.session.Step(in)
	return core.StepResult{State: g.State()}
}

// Render draws the latest frame.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		dst.Clear()
		return
	}
	snap, over, ok := g.frames.Latest()
	if !ok {
		snap = g.session.View()
	}
	g.view.Draw(dst, snap, over)
}

// State returns the platform-facing state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Level: 1}
	}

	st := core.GameState{
		Exited: g.session.Phase() == PhaseExited,
	}
	if g.session.Phase() == PhaseOver {
		last := g.session.Last()
		st.Score = last.Score
		st.Level = last.Level
		st.Ticks = last.Ticks
		st.Outcome = last.Outcome.String()
		st.GameOver = true
		return st
	}

	r := g.session.Round()
	st.Score = r.Score()
	st.Level = r.Level()
	st.Ticks = r.Ticks()
	return st
}

// Session returns the underlying session, nil before Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Register both modes with the registry
func init() {
	registry.Register(config.ModeClassic, func() registry.Game {
		return New(config.ModeClassic)
	})
	registry.Register(config.ModeBlitz, func() registry.Game {
		return New(config.ModeBlitz)
	})
}
