package shooter

import (
	"context"
	"time"

	"github.com/vovakirdan/space-shooter/internal/core"
)

// Phase is the session-level state.
type Phase int

const (
	PhaseRound  Phase = iota // A round is being played
	PhaseOver                // Win/lose screen, waiting for restart or quit
	PhaseExited              // The player quit
)

func (p Phase) String() string {
	switch p {
	case PhaseRound:
		return "round"
	case PhaseOver:
		return "over"
	case PhaseExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Over screen text.
const (
	WinTitle     = "You Win!"
	LoseTitle    = "Game Over"
	Instructions = "Press R to Restart or Q to Quit"
)

// RoundReport summarizes a finished round.
type RoundReport struct {
	Number  int // 1-based round index within the session
	Outcome FrameResult
	Score   int
	Level   int
	Ticks   int
}

// InputSource supplies one input frame per tick.
// The view is the state of the round currently on screen.
type InputSource interface {
	Next(view Snapshot) core.InputFrame
}

// InputFunc adapts a function to InputSource.
type InputFunc func(view Snapshot) core.InputFrame

// Next calls f.
func (f InputFunc) Next(view Snapshot) core.InputFrame { return f(view) }

// Session plays rounds back to back until the player quits.
type Session struct {
	env        Env
	tickRate   int
	round      *Round
	phase      Phase
	last       RoundReport
	hold       int
	rounds     int
	onRoundEnd func(RoundReport)
}

// NewSession creates a session and starts its first round.
// tickRate only affects Run; zero or less runs unthrottled.
func NewSession(env Env, tickRate int) *Session {
	s := &Session{
		env:      env.withDefaults(),
		tickRate: tickRate,
	}
	s.startRound()
	return s
}

// OnRoundEnd registers a callback invoked when a round is won or lost.
func (s *Session) OnRoundEnd(fn func(RoundReport)) {
	s.onRoundEnd = fn
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Round returns the round in play or the one that just ended.
func (s *Session) Round() *Round { return s.round }

// Last returns the report of the most recently finished round.
func (s *Session) Last() RoundReport { return s.last }

// Rounds returns how many rounds have been started.
func (s *Session) Rounds() int { return s.rounds }

// View returns a snapshot of the current round.
func (s *Session) View() Snapshot { return s.round.Snapshot() }

// Over returns the terminal screen description for the last finished round.
func (s *Session) Over() OverScreen {
	title := LoseTitle
	if s.last.Outcome == Win {
		title = WinTitle
	}
	return OverScreen{
		Outcome:      s.last.Outcome,
		Title:        title,
		Instructions: Instructions,
		Locked:       s.hold > 0,
	}
}

// Step advances the session by one tick.
func (s *Session) Step(in core.InputFrame) Phase {
	switch s.phase {
	case PhaseRound:
		s.stepRound(in)
	case PhaseOver:
		s.stepOver(in)
	}
	return s.phase
}

func (s *Session) stepRound(in core.InputFrame) {
	res := s.round.AdvanceFrame(in)
	switch res {
	case Continue:
		return
	case Quit:
		s.env.Sound.StopMusic()
		s.phase = PhaseExited
		return
	}

	s.last = RoundReport{
		Number:  s.rounds,
		Outcome: res,
		Score:   s.round.Score(),
		Level:   s.round.Level(),
		Ticks:   s.round.Ticks(),
	}
	s.phase = PhaseOver
	s.hold = 0
	if res == Win {
		s.hold = s.env.Config.Session.OverHoldTicks
	}
	if s.onRoundEnd != nil {
		s.onRoundEnd(s.last)
	}
	s.env.Renderer.RenderOver(s.round.Snapshot(), s.Over())
}

func (s *Session) stepOver(in core.InputFrame) {
	if in.Has(core.ActionQuit) {
		s.phase = PhaseExited
		return
	}
	if s.hold > 0 {
		s.hold--
	} else if in.Has(core.ActionRestart) {
		s.startRound()
		return
	}
	s.env.Renderer.RenderOver(s.round.Snapshot(), s.Over())
}

// startRound discards the previous round entirely.
func (s *Session) startRound() {
	s.round = NewRound(s.env)
	s.rounds++
	s.phase = PhaseRound
	s.hold = 0
	s.env.Sound.StartMusic()
}

// Run drives the session from src until the player quits or ctx is cancelled.
func (s *Session) Run(ctx context.Context, src InputSource) error {
	var tick <-chan time.Time
	if s.tickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if s.Step(src.Next(s.View())) == PhaseExited {
			return nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
}
