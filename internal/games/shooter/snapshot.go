package shooter

import "github.com/vovakirdan/space-shooter/internal/core"

// Snapshot is a copy of the round state handed to renderers.
// Slices are owned by the snapshot; renderers may keep it across frames.
type Snapshot struct {
	Tick        int
	WorldW      int
	WorldH      int
	Player      core.Rect
	Bullets     []Bullet
	Enemies     []Enemy
	Pickups     []Pickup
	BossBullets []Bullet
	Boss        *Boss // nil until the boss level
	Score       int
	Level       int
	Health      int
	MaxHealth   int
}

// Snapshot returns a copy of the current round state.
func (r *Round) Snapshot() Snapshot {
	var boss *Boss
	if b := r.bosses.Boss(); b != nil {
		cp := *b
		boss = &cp
	}

	return Snapshot{
		Tick:        r.ticks,
		WorldW:      r.cfg.World.Width,
		WorldH:      r.cfg.World.Height,
		Player:      r.player,
		Bullets:     append([]Bullet(nil), r.bullets...),
		Enemies:     append([]Enemy(nil), r.enemies...),
		Pickups:     append([]Pickup(nil), r.pickups...),
		BossBullets: append([]Bullet(nil), r.bossBullets...),
		Boss:        boss,
		Score:       r.score,
		Level:       r.diff.Level,
		Health:      r.health,
		MaxHealth:   r.cfg.Player.MaxHealth,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick) //#nosec G115 -- hash computation
	h = h*31 + hashRect(snap.Player)
	h = h*31 + uint64(snap.Score)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Health) //#nosec G115 -- hash computation

	for _, b := range snap.Bullets {
		h = h*31 + hashRect(b.Rect)
	}
	for _, e := range snap.Enemies {
		h = h*31 + hashRect(e.Rect)
	}
	for _, p := range snap.Pickups {
		h = h*31 + hashRect(p.Rect)
	}
	for _, b := range snap.BossBullets {
		h = h*31 + hashRect(b.Rect)
	}
	if snap.Boss != nil {
		h = h*31 + hashRect(snap.Boss.Rect)
		h = h*31 + uint64(snap.Boss.Health) //#nosec G115 -- hash computation
	}

	return h
}

func hashRect(r core.Rect) uint64 {
	h := uint64(r.X)          //#nosec G115 -- hash computation
	h = h*31 + uint64(r.Y)    //#nosec G115 -- hash computation
	h = h*31 + uint64(r.W)    //#nosec G115 -- hash computation
	return h*31 + uint64(r.H) //#nosec G115 -- hash computation
}
