package shooter

import (
	"github.com/vovakirdan/space-shooter/internal/core"
)

// Autopilot is a simple scripted player used by headless simulations.
// It always fires, dodges boss bullets that are about to land on the ship,
// chases pickups when hurt and otherwise lines up under the closest target.
type Autopilot struct {
	// DodgeDistance is how far above the ship a boss bullet is considered a threat.
	DodgeDistance int
	// Deadzone is the horizontal slack before the ship starts moving.
	Deadzone int
}

// NewAutopilot creates an autopilot with tuned defaults.
func NewAutopilot() *Autopilot {
	return &Autopilot{DodgeDistance: 120, Deadzone: 6}
}

// Next implements InputSource. Restart is always requested so finished
// rounds are replayed; it has no effect while a round is running.
func (a *Autopilot) Next(view Snapshot) core.InputFrame {
	in := core.InputOf(core.ActionFire, core.ActionRestart)
	p := view.Player

	if dir := a.dodge(view); dir != 0 {
		setDirection(&in, dir)
		return in
	}

	targetX, ok := a.target(view)
	if !ok {
		return in
	}
	switch dx := targetX - p.CenterX(); {
	case dx > a.Deadzone:
		setDirection(&in, 1)
	case dx < -a.Deadzone:
		setDirection(&in, -1)
	}
	return in
}

// dodge returns a direction away from the nearest incoming boss bullet, or 0.
func (a *Autopilot) dodge(view Snapshot) int {
	p := view.Player
	lane := core.NewRect(p.X-4, p.Y-a.DodgeDistance, p.W+8, a.DodgeDistance)
	for _, b := range view.BossBullets {
		if !b.Intersects(lane) {
			continue
		}
		if b.CenterX() < p.CenterX() {
			if p.Right() >= view.WorldW {
				return -1
			}
			return 1
		}
		if p.X <= 0 {
			return 1
		}
		return -1
	}
	return 0
}

// target picks the x coordinate to line up with.
func (a *Autopilot) target(view Snapshot) (int, bool) {
	if view.Health < view.MaxHealth {
		for _, pk := range view.Pickups {
			if pk.Y > view.WorldH/2 {
				return pk.CenterX(), true
			}
		}
	}

	if view.Boss != nil {
		return view.Boss.CenterX(), true
	}

	best, found := 0, false
	lowest := -1 << 31
	for _, e := range view.Enemies {
		if e.Bottom() > view.Player.Y {
			continue
		}
		if e.Y > lowest {
			lowest = e.Y
			best = e.CenterX()
			found = true
		}
	}
	return best, found
}

func setDirection(in *core.InputFrame, dir int) {
	if dir < 0 {
		in.Set(core.ActionLeft)
	} else {
		in.Set(core.ActionRight)
	}
}
