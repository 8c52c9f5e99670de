package shooter

import (
	"math/rand"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
)

// Spawner creates enemies and pickups at randomized positions above the screen.
type Spawner struct {
	rng     *rand.Rand
	worldW  int
	enemies config.Enemies
	pickups config.Pickups
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, cfg config.ShooterConfig) *Spawner {
	return &Spawner{
		rng:     rng,
		worldW:  cfg.World.Width,
		enemies: cfg.Enemies,
		pickups: cfg.Pickups,
	}
}

// SpawnEnemy returns an enemy with X in [0, W-width] and Y in [SpawnMinY, SpawnMaxY].
func (s *Spawner) SpawnEnemy() Enemy {
	x := s.intBetween(0, s.worldW-s.enemies.Width)
	y := s.intBetween(s.enemies.SpawnMinY, s.enemies.SpawnMaxY)
	return Enemy{Rect: core.NewRect(x, y, s.enemies.Width, s.enemies.Height)}
}

// SpawnPickup returns a pickup with X in [0, W-size] at the fixed spawn height.
func (s *Spawner) SpawnPickup() Pickup {
	x := s.intBetween(0, s.worldW-s.pickups.Size)
	return Pickup{Rect: core.NewRect(x, s.pickups.SpawnY, s.pickups.Size, s.pickups.Size)}
}

// intBetween returns a uniform integer in the inclusive range [lo, hi].
func (s *Spawner) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}
