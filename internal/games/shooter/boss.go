package shooter

import (
	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
)

// Boss is the single level-3 adversary.
type Boss struct {
	core.Rect
	Health    int
	MaxHealth int
	Direction int // +1 moving right, -1 moving left
}

// Hit removes one point of health and reports whether the boss is defeated.
func (b *Boss) Hit() bool {
	b.Health--
	return b.Health <= 0
}

// HealthBar returns the bar drawn 10px above the boss, scaled to remaining health.
func (b *Boss) HealthBar() core.Rect {
	w := 0
	if b.MaxHealth > 0 && b.Health > 0 {
		w = b.W * b.Health / b.MaxHealth
	}
	return core.NewRect(b.X, b.Y-10, w, 5)
}

// BossState is the lifecycle of the boss within a round.
type BossState int

const (
	BossInactive BossState = iota
	BossActive
	BossDefeated
)

func (s BossState) String() string {
	switch s {
	case BossInactive:
		return "inactive"
	case BossActive:
		return "active"
	case BossDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// BossController owns the boss, its movement and its firing cadence.
type BossController struct {
	cfg       config.Boss
	bullets   config.Bullets
	worldW    int
	state     BossState
	boss      *Boss
	fireTimer int
}

// NewBossController creates an inactive controller.
func NewBossController(cfg config.ShooterConfig) *BossController {
	return &BossController{
		cfg:     cfg.Boss,
		bullets: cfg.Bullets,
		worldW:  cfg.World.Width,
	}
}

// State returns the current lifecycle state.
func (c *BossController) State() BossState {
	return c.state
}

// Boss returns the boss, or nil while inactive.
func (c *BossController) Boss() *Boss {
	return c.boss
}

// FireTimer returns the ticks since the last boss volley.
func (c *BossController) FireTimer() int {
	return c.fireTimer
}

// Activate creates the boss at its start position.
// It returns false and does nothing if the boss was already activated.
func (c *BossController) Activate() bool {
	if c.state != BossInactive {
		return false
	}
	c.boss = &Boss{
		Rect:      core.NewRect(c.worldW/2-c.cfg.Width/2, c.cfg.StartY, c.cfg.Width, c.cfg.Height),
		Health:    c.cfg.Health,
		MaxHealth: c.cfg.Health,
		Direction: 1,
	}
	c.state = BossActive
	return true
}

// MarkDefeated ends the boss lifecycle.
func (c *BossController) MarkDefeated() {
	if c.state == BossActive {
		c.state = BossDefeated
	}
}

// Update moves the active boss and returns any volley fired this tick.
// The boss is not clamped: it reverses once either edge is touched or crossed.
func (c *BossController) Update() []Bullet {
	if c.state != BossActive {
		return nil
	}

	b := c.boss
	b.Rect = b.Translate(b.Direction*c.cfg.Speed, 0)
	if b.Right() >= c.worldW || b.X <= 0 {
		b.Direction = -b.Direction
	}

	c.fireTimer++
	if c.fireTimer < c.cfg.FireInterval {
		return nil
	}
	c.fireTimer = 0

	x := b.CenterX() - c.bullets.Width/2
	volley := make([]Bullet, 0, len(c.bullets.BossSpread))
	for _, off := range c.bullets.BossSpread {
		volley = append(volley, Bullet{
			Rect:  core.NewRect(x+off, b.Bottom(), c.bullets.Width, c.bullets.Height),
			Owner: OwnerBoss,
		})
	}
	return volley
}
