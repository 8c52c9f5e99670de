// Package tui runs shooter sessions in a terminal through Bubble Tea.
// It maps keys to held actions, drives the fixed tick, persists finished
// rounds and serves the same session over SSH.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/space-shooter/internal/core"
	"github.com/vovakirdan/space-shooter/internal/logging"
	"github.com/vovakirdan/space-shooter/internal/registry"
	"github.com/vovakirdan/space-shooter/internal/storage"
)

// Options carries the collaborators a terminal session needs.
type Options struct {
	Store  *storage.Store // nil disables persistence
	Logger *log.Logger    // nil discards
	Config core.RuntimeConfig

	// Embedded models leave the program running when the session exits,
	// so a parent model can take over.
	Embedded bool
}

// Model is the Bubble Tea model for running a shooter session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	held       *HeldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	sessionID  string
	roundNo    int
	finished   int
	embedded   bool
	exited     bool
	quitting   bool
	scoreSaved bool // Whether the current finished round has been saved
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		held:       NewHeldKeys(HoldTicksFor(cfg.TickRate)),
		inputFrame: core.NewInputFrame(),
		sessionID:  uuid.NewString(),
		roundNo:    1,
		embedded:   opts.Embedded,
	}
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("Session started", "game", m.game.ID(), "session", m.sessionID, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, _ := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionLeft, core.ActionRight, core.ActionFire:
		m.held.Press(action)
	default:
		// Quit goes through the session so music stops with the round.
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize only rescales the view; the world keeps its own size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.held.Apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.saveRound()
		m.held.Release()
		m.scoreSaved = true
		m.finished++
	case !m.gameState.GameOver && m.scoreSaved:
		// Restarted
		m.scoreSaved = false
		m.roundNo++
	}

	if m.gameState.Exited {
		m.logger.Info("Session ended", "game", m.game.ID(), "session", m.sessionID, "rounds", m.finished)
		m.exited = true
		if m.embedded {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRound records the finished round, best effort.
func (m *Model) saveRound() {
	st := m.gameState
	m.logger.Info("Round ended",
		"game", m.game.ID(),
		"round", m.roundNo,
		"outcome", st.Outcome,
		"score", st.Score,
		"level", st.Level,
		"ticks", st.Ticks,
	)

	if m.store == nil {
		return
	}
	_, err := m.store.SaveRound(storage.RoundRecord{
		GameID:    m.game.ID(),
		SessionID: m.sessionID,
		Round:     m.roundNo,
		Score:     st.Score,
		Level:     st.Level,
		Outcome:   st.Outcome,
		Ticks:     st.Ticks,
	})
	if err != nil {
		m.logger.Warn("Failed to save round", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("Screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".shooter", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("Screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("Screenshot failed", "error", err)
		return
	}
	m.logger.Info("Screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Exited reports whether the player left the session.
func (m Model) Exited() bool {
	return m.exited
}

// IsQuitting reports whether the whole program should stop.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// SessionID returns the identifier stored with every round of this session.
func (m Model) SessionID() string {
	return m.sessionID
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// TickMsg drives one simulation tick.
type TickMsg time.Time

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
