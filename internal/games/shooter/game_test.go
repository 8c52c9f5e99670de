package shooter

import (
	"strings"
	"testing"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
	"github.com/vovakirdan/space-shooter/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{config.ModeClassic, config.ModeBlitz} {
		if !registry.Exists(id) {
			t.Fatalf("mode %q not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}

	blitz, _ := registry.Create(config.ModeBlitz)
	if got := blitz.(*Game).Config().Levels.LevelTwoScore; got != 150 {
		t.Errorf("blitz boss threshold = %d, expected 150", got)
	}
}

func TestGameStepAndRender(t *testing.T) {
	g := New(config.ModeClassic)
	g.Reset(testRuntime())

	var st core.GameState
	for range 120 {
		st = g.Step(core.InputOf(core.ActionFire)).State
	}
	if st.GameOver || st.Exited || st.Level != 1 || st.Ticks != 120 {
		t.Errorf("state after 120 ticks = %+v", st)
	}

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if !strings.ContainsRune(dst.String(), PlayerChar) {
		t.Errorf("player not rendered:\n%s", dst.String())
	}
}

func TestGameOverState(t *testing.T) {
	g := New(config.ModeClassic)
	var reports []RoundReport
	g.Apply(Options{OnRoundEnd: func(r RoundReport) { reports = append(reports, r) }})
	g.Reset(testRuntime())

	forceLose(g.Session())
	st := g.Step(core.NewInputFrame()).State

	if !st.GameOver || st.Outcome != "lose" {
		t.Fatalf("state = %+v, expected game over with outcome lose", st)
	}
	if len(reports) != 1 {
		t.Errorf("OnRoundEnd called %d times, expected 1", len(reports))
	}

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if !strings.Contains(dst.String(), LoseTitle) {
		t.Errorf("over screen not rendered:\n%s", dst.String())
	}

	st = g.Step(core.InputOf(core.ActionRestart)).State
	if st.GameOver || st.Score != 0 {
		t.Errorf("state after restart = %+v", st)
	}

	st = g.Step(core.InputOf(core.ActionQuit)).State
	if !st.Exited {
		t.Error("quit should mark the session exited")
	}
}

func TestGameApplyConfig(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	cfg.Player.MaxHealth = 5

	g := New(config.ModeClassic)
	g.Apply(Options{Config: &cfg})
	g.Reset(testRuntime())

	if h := g.Session().Round().Health(); h != 5 {
		t.Errorf("health = %d, expected 5 from the applied config", h)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() core.GameState {
		g := New(config.ModeClassic)
		g.Reset(testRuntime())
		pilot := NewAutopilot()
		var st core.GameState
		for range 2000 {
			st = g.Step(pilot.Next(g.Session().View())).State
			if st.GameOver {
				break
			}
		}
		return st
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed produced different states: %+v vs %+v", a, b)
	}
}
