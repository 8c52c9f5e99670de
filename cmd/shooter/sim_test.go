package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
	"github.com/vovakirdan/space-shooter/internal/games/shooter"
)

var idle = shooter.InputFunc(func(shooter.Snapshot) core.InputFrame { return core.NewInputFrame() })

func newSimSession() *shooter.Session {
	return shooter.NewSession(shooter.Env{
		Config: config.DefaultShooterConfig(),
		Rand:   rand.New(rand.NewSource(7)),
	}, 0)
}

func TestSimDriverAbandonsLongRound(t *testing.T) {
	session := newSimSession()
	driver := newSimDriver(session, idle, 1, 50)

	if err := session.Run(context.Background(), driver); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if !driver.stalled {
		t.Error("driver should report the stalled round")
	}
	if session.Phase() != shooter.PhaseExited {
		t.Errorf("phase = %v, expected exited", session.Phase())
	}
	if got := session.Round().Ticks(); got < 50 || got > 51 {
		t.Errorf("round ran %d ticks, expected to stop at the limit of 50", got)
	}
	if len(driver.reports) != 0 {
		t.Errorf("an abandoned round is not a finished round, got %d reports", len(driver.reports))
	}
}

func TestSimDriverPassesPilotInput(t *testing.T) {
	session := newSimSession()
	pilot := shooter.InputFunc(func(shooter.Snapshot) core.InputFrame {
		return core.InputOf(core.ActionFire)
	})
	driver := newSimDriver(session, pilot, 1, 0)

	in := driver.Next(session.View())
	if !in.Has(core.ActionFire) || in.Has(core.ActionQuit) {
		t.Errorf("mid-round input should come from the pilot, got %+v", in)
	}
}
