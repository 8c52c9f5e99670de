package window

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
	"github.com/vovakirdan/space-shooter/internal/games/shooter"
	"github.com/vovakirdan/space-shooter/internal/storage"
)

type fakeKeys struct {
	held map[ebiten.Key]bool
	just map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{held: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
}

func (k *fakeKeys) Pressed(key ebiten.Key) bool     { return k.held[key] }
func (k *fakeKeys) JustPressed(key ebiten.Key) bool { return k.just[key] }

func TestReadInput(t *testing.T) {
	tests := []struct {
		name string
		held []ebiten.Key
		just []ebiten.Key
		want []core.Action
	}{
		{"nothing", nil, nil, nil},
		{"arrow left", []ebiten.Key{ebiten.KeyArrowLeft}, nil, []core.Action{core.ActionLeft}},
		{"d and space", []ebiten.Key{ebiten.KeyD, ebiten.KeySpace}, nil, []core.Action{core.ActionRight, core.ActionFire}},
		{"held r does not restart", []ebiten.Key{ebiten.KeyR}, nil, nil},
		{"pressed r restarts", nil, []ebiten.Key{ebiten.KeyR}, []core.Action{core.ActionRestart}},
		{"escape quits", nil, []ebiten.Key{ebiten.KeyEscape}, []core.Action{core.ActionQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := newFakeKeys()
			for _, k := range tt.held {
				keys.held[k] = true
			}
			for _, k := range tt.just {
				keys.just[k] = true
			}

			frame := ReadInput(keys)
			if len(frame.Actions) != len(tt.want) {
				t.Fatalf("actions = %v, expected %v", frame.Actions, tt.want)
			}
			for _, a := range tt.want {
				if !frame.Has(a) {
					t.Errorf("missing %v in %v", a, frame.Actions)
				}
			}
		})
	}
}

func newTestGame(t *testing.T, keys Keys, store *storage.Store) *Game {
	t.Helper()
	return NewGame(Options{
		Mode:     config.ModeClassic,
		Config:   config.DefaultShooterConfig(),
		TickRate: 60,
		Seed:     7,
		Store:    store,
	}, keys, shooter.NopSound{})
}

func TestUpdateMovesPlayer(t *testing.T) {
	keys := newFakeKeys()
	g := newTestGame(t, keys, nil)

	start := g.Session().View().Player.X
	keys.held[ebiten.KeyArrowLeft] = true
	for range 5 {
		if err := g.Update(); err != nil {
			t.Fatalf("Update() = %v", err)
		}
	}

	if got := g.Session().View().Player.X; got >= start {
		t.Errorf("player x = %d, expected less than %d", got, start)
	}
}

func TestUpdateQuitTerminates(t *testing.T) {
	keys := newFakeKeys()
	g := newTestGame(t, keys, nil)

	keys.just[ebiten.KeyQ] = true
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() = %v, expected ebiten.Termination", err)
	}
}

func TestLayoutUsesWorldSize(t *testing.T) {
	g := newTestGame(t, newFakeKeys(), nil)
	w, h := g.Layout(1920, 1080)
	if w != 600 || h != 800 {
		t.Errorf("Layout() = %dx%d, expected 600x800", w, h)
	}
}

func TestRoundEndedSavesRecord(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := newTestGame(t, newFakeKeys(), store)
	g.roundEnded(shooter.RoundReport{Number: 1, Outcome: shooter.Win, Score: 650, Level: 3, Ticks: 4000})

	rounds, err := store.SessionRounds(g.sessionID)
	if err != nil {
		t.Fatalf("SessionRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(rounds))
	}
	r := rounds[0]
	if r.GameID != config.ModeClassic || r.Outcome != "win" || r.Score != 650 || r.Level != 3 || r.Ticks != 4000 {
		t.Errorf("unexpected record: %+v", r)
	}
}
