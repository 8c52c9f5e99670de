package shooter

// ResolveOutcome reports whether the boss fell during resolution.
type ResolveOutcome int

const (
	ResolveContinue ResolveOutcome = iota
	ResolveBossDefeated
)

// Resolution is the result of moving player bullets and resolving their hits.
type Resolution struct {
	Bullets    []Bullet // Surviving bullets
	Enemies    []Enemy  // Surviving enemies
	Outcome    ResolveOutcome
	ScoreDelta int
}

// CollisionResolver moves player bullets and resolves hits against enemies and the boss.
type CollisionResolver struct {
	BulletSpeed int
	EnemyPoints int
	BossPoints  int
	Sound       SoundSink
}

// Resolve advances every bullet upward and applies the first hit it makes.
// A bullet that leaves the top of the screen is dropped without scoring.
// A bullet that hits an enemy removes it and stops there; otherwise it may hit the boss.
// When the boss reaches zero health resolution stops and the bullets not yet
// processed are returned unmoved. The boss is mutated in place; the input slices are not.
func (c CollisionResolver) Resolve(bullets []Bullet, enemies []Enemy, boss *Boss) Resolution {
	if len(bullets) == 0 {
		return Resolution{Bullets: bullets, Enemies: enemies, Outcome: ResolveContinue}
	}

	alive := make([]bool, len(enemies))
	for i := range alive {
		alive[i] = true
	}

	kept := make([]Bullet, 0, len(bullets))
	delta := 0

	for i, b := range bullets {
		b.Rect = b.Translate(0, -c.BulletSpeed)
		if b.Y < 0 {
			continue
		}

		consumed := false
		for j, e := range enemies {
			if !alive[j] || !b.Intersects(e.Rect) {
				continue
			}
			alive[j] = false
			delta += c.EnemyPoints
			c.play(SoundExplosion)
			consumed = true
			break
		}

		if !consumed && boss != nil && b.Intersects(boss.Rect) {
			consumed = true
			c.play(SoundExplosion)
			if boss.Hit() {
				kept = append(kept, bullets[i+1:]...)
				return Resolution{
					Bullets:    kept,
					Enemies:    retainEnemies(enemies, alive),
					Outcome:    ResolveBossDefeated,
					ScoreDelta: delta + c.BossPoints,
				}
			}
		}

		if !consumed {
			kept = append(kept, b)
		}
	}

	return Resolution{
		Bullets:    kept,
		Enemies:    retainEnemies(enemies, alive),
		Outcome:    ResolveContinue,
		ScoreDelta: delta,
	}
}

func (c CollisionResolver) play(s Sound) {
	if c.Sound != nil {
		c.Sound.Play(s)
	}
}

// retainEnemies builds a new slice of the enemies still marked alive.
func retainEnemies(enemies []Enemy, alive []bool) []Enemy {
	out := make([]Enemy, 0, len(enemies))
	for i, e := range enemies {
		if alive[i] {
			out = append(out, e)
		}
	}
	return out
}
