package shooter

import (
	"math/rand"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
)

// Env carries the collaborators a round is built with.
// Nil Sound or Renderer are replaced by no-op implementations.
type Env struct {
	Config   config.ShooterConfig
	Rand     *rand.Rand
	Sound    SoundSink
	Renderer Renderer
}

func (e Env) withDefaults() Env {
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(1))
	}
	if e.Sound == nil {
		e.Sound = NopSound{}
	}
	if e.Renderer == nil {
		e.Renderer = NopRenderer{}
	}
	return e
}

// Round owns the state of one playthrough, from a fresh start to win, lose or quit.
type Round struct {
	cfg      config.ShooterConfig
	sound    SoundSink
	renderer Renderer
	spawner  *Spawner
	resolver CollisionResolver
	bosses   *BossController

	player      core.Rect
	bullets     []Bullet
	enemies     []Enemy
	pickups     []Pickup
	bossBullets []Bullet

	diff   Difficulty
	score  int
	health int

	spawnTimer  int
	pickupTimer int
	fireTimer   int
	ticks       int
}

// NewRound creates a round with the player centred near the bottom of the world.
func NewRound(env Env) *Round {
	env = env.withDefaults()
	cfg := env.Config

	return &Round{
		cfg:      cfg,
		sound:    env.Sound,
		renderer: env.Renderer,
		spawner:  NewSpawner(env.Rand, cfg),
		resolver: CollisionResolver{
			BulletSpeed: cfg.Bullets.Speed,
			EnemyPoints: cfg.Scoring.EnemyPoints,
			BossPoints:  cfg.Scoring.BossPoints,
			Sound:       env.Sound,
		},
		bosses: NewBossController(cfg),
		player: core.NewRect(
			cfg.World.Width/2-cfg.Player.Width/2,
			cfg.World.Height-cfg.Player.BottomOffset,
			cfg.Player.Width,
			cfg.Player.Height,
		),
		diff:   StartDifficulty(cfg.Enemies),
		health: cfg.Player.MaxHealth,
	}
}

// Score returns the current score.
func (r *Round) Score() int { return r.score }

// Level returns the current level (1-3).
func (r *Round) Level() int { return r.diff.Level }

// Health returns the remaining health.
func (r *Round) Health() int { return r.health }

// Ticks returns the number of frames advanced so far.
func (r *Round) Ticks() int { return r.ticks }

// Difficulty returns the current level parameters.
func (r *Round) Difficulty() Difficulty { return r.diff }

// BossState returns the boss lifecycle state.
func (r *Round) BossState() BossState { return r.bosses.State() }

// AdvanceFrame runs one fixed tick of the round.
// Once it returns Win, Lose or Quit the round must not be advanced again.
func (r *Round) AdvanceFrame(in core.InputFrame) FrameResult {
	r.ticks++
	r.spawnTimer++
	r.pickupTimer++
	r.fireTimer++

	if in.Has(core.ActionQuit) {
		return Quit
	}

	r.movePlayer(in)
	r.fire(in)

	if r.diff.Level < MaxLevel && r.spawnTimer > r.diff.SpawnInterval {
		r.spawnTimer = 0
		r.enemies = append(r.enemies, r.spawner.SpawnEnemy())
	}

	if r.pickupTimer > r.cfg.Pickups.Interval {
		r.pickupTimer = 0
		r.pickups = append(r.pickups, r.spawner.SpawnPickup())
	}

	if r.updateEnemies() {
		return r.lose()
	}

	if r.diff.Level == MaxLevel {
		r.bosses.Activate()
	}
	r.bossBullets = append(r.bossBullets, r.bosses.Update()...)

	if r.updateBossBullets() {
		return r.lose()
	}

	r.updatePickups()

	res := r.resolver.Resolve(r.bullets, r.enemies, r.bosses.Boss())
	r.bullets = res.Bullets
	r.enemies = res.Enemies
	r.score += res.ScoreDelta

	if res.Outcome == ResolveBossDefeated {
		r.bosses.MarkDefeated()
		r.renderer.RenderFrame(r.Snapshot())
		r.sound.StopMusic()
		r.sound.Play(SoundVictory)
		return Win
	}

	r.diff = Progress(r.score, r.diff, r.cfg.Levels, r.cfg.Enemies)

	r.renderer.RenderFrame(r.Snapshot())
	return Continue
}

func (r *Round) movePlayer(in core.InputFrame) {
	dx := 0
	if in.Has(core.ActionLeft) {
		dx -= r.cfg.Player.Speed
	}
	if in.Has(core.ActionRight) {
		dx += r.cfg.Player.Speed
	}
	if dx == 0 {
		return
	}
	r.player.X = core.Clamp(r.player.X+dx, 0, r.cfg.World.Width-r.player.W)
}

func (r *Round) fire(in core.InputFrame) {
	if !in.Has(core.ActionFire) || r.fireTimer < r.cfg.Player.FireInterval {
		return
	}
	r.fireTimer = 0

	bw := r.cfg.Bullets.Width
	x := r.player.CenterX() - bw/2
	for _, off := range r.cfg.Bullets.Spread {
		r.bullets = append(r.bullets, Bullet{
			Rect:  core.NewRect(x+off, r.player.Y, bw, r.cfg.Bullets.Height),
			Owner: OwnerPlayer,
		})
	}
	r.sound.Play(SoundFire)
}

// updateEnemies moves enemies down and applies player collisions.
// It returns true if the player ran out of health.
func (r *Round) updateEnemies() bool {
	kept := r.enemies[:0:0]
	for i, e := range r.enemies {
		e.Rect = e.Translate(0, r.diff.EnemySpeed)
		if e.Y > r.cfg.World.Height {
			continue
		}
		if e.Intersects(r.player) {
			r.sound.Play(SoundCollision)
			if r.damage() {
				r.enemies = append(kept, r.enemies[i+1:]...)
				return true
			}
			continue
		}
		kept = append(kept, e)
	}
	r.enemies = kept
	return false
}

// updateBossBullets moves boss bullets down and applies player hits.
// It returns true if the player ran out of health.
func (r *Round) updateBossBullets() bool {
	kept := r.bossBullets[:0:0]
	for i, b := range r.bossBullets {
		b.Rect = b.Translate(0, r.cfg.Bullets.BossSpeed)
		if b.Intersects(r.player) {
			r.sound.Play(SoundCollision)
			if r.damage() {
				r.bossBullets = append(kept, r.bossBullets[i+1:]...)
				return true
			}
			continue
		}
		if b.Y > r.cfg.World.Height {
			continue
		}
		kept = append(kept, b)
	}
	r.bossBullets = kept
	return false
}

func (r *Round) updatePickups() {
	kept := r.pickups[:0:0]
	for _, p := range r.pickups {
		p.Rect = p.Translate(0, r.cfg.Pickups.Speed)
		if p.Intersects(r.player) {
			r.health = min(r.cfg.Player.MaxHealth, r.health+1)
			continue
		}
		if p.Y > r.cfg.World.Height {
			continue
		}
		kept = append(kept, p)
	}
	r.pickups = kept
}

// damage removes one health point and reports whether the player is out.
func (r *Round) damage() bool {
	r.health--
	return r.health <= 0
}

func (r *Round) lose() FrameResult {
	r.health = max(r.health, 0)
	r.sound.StopMusic()
	r.sound.Play(SoundGameOver)
	return Lose
}
