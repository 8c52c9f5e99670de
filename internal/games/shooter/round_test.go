package shooter

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/space-shooter/internal/config"
	"github.com/vovakirdan/space-shooter/internal/core"
)

// recordingSound remembers every sound event.
type recordingSound struct {
	played []Sound
	starts int
	stops  int
}

func (s *recordingSound) Play(snd Sound) { s.played = append(s.played, snd) }
func (s *recordingSound) StartMusic()    { s.starts++ }
func (s *recordingSound) StopMusic()     { s.stops++ }

func (s *recordingSound) count(snd Sound) int {
	n := 0
	for _, p := range s.played {
		if p == snd {
			n++
		}
	}
	return n
}

// recordingRenderer counts renderer calls and keeps the last frame.
type recordingRenderer struct {
	frames int
	overs  int
	last   Snapshot
	over   OverScreen
}

func (r *recordingRenderer) RenderFrame(snap Snapshot) {
	r.frames++
	r.last = snap
}

func (r *recordingRenderer) RenderOver(snap Snapshot, over OverScreen) {
	r.overs++
	r.last = snap
	r.over = over
}

func newTestRound(seed int64) (*Round, *recordingSound, *recordingRenderer) {
	sound := &recordingSound{}
	ren := &recordingRenderer{}
	r := NewRound(Env{
		Config:   config.DefaultShooterConfig(),
		Rand:     rand.New(rand.NewSource(seed)),
		Sound:    sound,
		Renderer: ren,
	})
	return r, sound, ren
}

var noInput = core.NewInputFrame()

func TestNewRound(t *testing.T) {
	r, _, _ := newTestRound(1)

	if r.Score() != 0 || r.Level() != 1 || r.Health() != 3 {
		t.Errorf("fresh round: score=%d level=%d health=%d", r.Score(), r.Level(), r.Health())
	}
	if r.player != core.NewRect(275, 740, 50, 30) {
		t.Errorf("player = %+v, expected (275, 740, 50, 30)", r.player)
	}
	if r.BossState() != BossInactive {
		t.Error("boss should start inactive")
	}
	d := r.Difficulty()
	if d.EnemySpeed != 3 || d.SpawnInterval != 30 {
		t.Errorf("difficulty = %+v, expected speed 3 interval 30", d)
	}
}

func TestRoundQuit(t *testing.T) {
	r, _, ren := newTestRound(1)
	r.enemies = []Enemy{enemyAt(0, 100)}

	if got := r.AdvanceFrame(core.InputOf(core.ActionQuit, core.ActionLeft)); got != Quit {
		t.Fatalf("AdvanceFrame = %v, expected Quit", got)
	}
	if r.player.X != 275 || r.enemies[0].Y != 100 {
		t.Error("quit must skip all further processing")
	}
	if ren.frames != 0 {
		t.Error("quit frame should not be rendered")
	}
}

func TestPlayerClamped(t *testing.T) {
	r, _, _ := newTestRound(1)

	left := core.InputOf(core.ActionLeft)
	for range 100 {
		r.AdvanceFrame(left)
	}
	if r.player.X != 0 {
		t.Errorf("player.X = %d, expected 0 after holding left", r.player.X)
	}

	right := core.InputOf(core.ActionRight)
	for range 150 {
		r.AdvanceFrame(right)
	}
	if r.player.Right() != 600 {
		t.Errorf("player.Right() = %d, expected 600 after holding right", r.player.Right())
	}
}

func TestPlayerFireCadence(t *testing.T) {
	r, sound, _ := newTestRound(1)
	fire := core.InputOf(core.ActionFire)

	for i := 1; i < 10; i++ {
		r.AdvanceFrame(fire)
		if len(r.bullets) != 0 {
			t.Fatalf("fired on tick %d before the interval elapsed", i)
		}
	}

	r.AdvanceFrame(fire)
	if len(r.bullets) != 3 {
		t.Fatalf("expected a 3-bullet volley on tick 10, got %d", len(r.bullets))
	}
	// Spawned at the muzzle then moved once by the resolver
	wantX := []int{288, 298, 308}
	for i, b := range r.bullets {
		if b.X != wantX[i] || b.Y != 733 || b.W != 4 || b.H != 10 || b.Owner != OwnerPlayer {
			t.Errorf("bullet %d = %+v, expected x=%d y=733 4x10", i, b, wantX[i])
		}
	}
	if sound.count(SoundFire) != 1 {
		t.Errorf("fire sound played %d times, expected 1", sound.count(SoundFire))
	}

	r.AdvanceFrame(fire)
	if len(r.bullets) != 3 {
		t.Errorf("timer should reset after firing, got %d bullets", len(r.bullets))
	}
}

func TestEnemySpawnCadence(t *testing.T) {
	r, _, _ := newTestRound(7)

	for range 30 {
		r.AdvanceFrame(noInput)
	}
	if len(r.enemies) != 0 {
		t.Fatalf("no enemy expected before the timer exceeds 30, got %d", len(r.enemies))
	}
	r.AdvanceFrame(noInput)
	if len(r.enemies) != 1 {
		t.Fatalf("expected one enemy on tick 31, got %d", len(r.enemies))
	}
}

func TestNoEnemySpawnAtBossLevel(t *testing.T) {
	r, _, _ := newTestRound(7)
	r.diff.Level = MaxLevel

	for range 100 {
		r.AdvanceFrame(noInput)
	}
	if len(r.enemies) != 0 {
		t.Errorf("enemies must not spawn at level 3, got %d", len(r.enemies))
	}
}

func TestPickupSpawnCadence(t *testing.T) {
	r, _, _ := newTestRound(7)

	for range 300 {
		r.AdvanceFrame(noInput)
	}
	if len(r.pickups) != 0 {
		t.Fatalf("no pickup expected before tick 301, got %d", len(r.pickups))
	}
	r.AdvanceFrame(noInput)
	if len(r.pickups) != 1 {
		t.Fatalf("expected one pickup on tick 301, got %d", len(r.pickups))
	}
}

func TestEnemyMissedAtBottom(t *testing.T) {
	r, _, _ := newTestRound(1)
	r.enemies = []Enemy{enemyAt(0, 799)}

	if got := r.AdvanceFrame(noInput); got != Continue {
		t.Fatalf("AdvanceFrame = %v, expected Continue", got)
	}
	if len(r.enemies) != 0 {
		t.Error("enemy below the screen should be removed")
	}
	if r.Health() != 3 || r.Score() != 0 {
		t.Errorf("missed enemy changed health=%d score=%d", r.Health(), r.Score())
	}
}

func TestEnemyHitsPlayer(t *testing.T) {
	r, sound, _ := newTestRound(1)
	r.enemies = []Enemy{enemyAt(280, 720)}

	if got := r.AdvanceFrame(noInput); got != Continue {
		t.Fatalf("AdvanceFrame = %v, expected Continue", got)
	}
	if r.Health() != 2 {
		t.Errorf("health = %d, expected 2", r.Health())
	}
	if len(r.enemies) != 0 {
		t.Error("colliding enemy should be removed")
	}
	if sound.count(SoundCollision) != 1 {
		t.Error("collision sound expected")
	}
}

func TestEnemyKillsPlayer(t *testing.T) {
	r, sound, ren := newTestRound(1)
	r.health = 1
	r.enemies = []Enemy{enemyAt(280, 720), enemyAt(0, 100)}
	r.pickups = []Pickup{{Rect: core.NewRect(0, 300, 25, 25)}}

	if got := r.AdvanceFrame(noInput); got != Lose {
		t.Fatalf("AdvanceFrame = %v, expected Lose", got)
	}
	if r.Health() != 0 {
		t.Errorf("health = %d, expected 0", r.Health())
	}
	if r.enemies[0].Y != 100 {
		t.Error("enemies after the fatal one must not be processed")
	}
	if r.pickups[0].Y != 300 {
		t.Error("pickups must not move after the fatal hit")
	}
	if sound.count(SoundGameOver) != 1 || sound.stops != 1 {
		t.Errorf("lose should stop music and play game over, got %v stops=%d", sound.played, sound.stops)
	}
	if ren.frames != 0 {
		t.Error("losing frame should not be rendered")
	}
}

func TestBossBulletHitsPlayer(t *testing.T) {
	r, sound, _ := newTestRound(1)
	r.bossBullets = []Bullet{{Rect: core.NewRect(290, 735, 4, 10), Owner: OwnerBoss}}

	r.AdvanceFrame(noInput)
	if r.Health() != 2 || len(r.bossBullets) != 0 {
		t.Errorf("boss bullet hit: health=%d bullets=%d", r.Health(), len(r.bossBullets))
	}
	if sound.count(SoundCollision) != 1 {
		t.Error("collision sound expected for a boss bullet hit")
	}
}

func TestBossBulletKillsPlayer(t *testing.T) {
	r, sound, ren := newTestRound(1)
	r.health = 1
	r.bossBullets = []Bullet{
		{Rect: core.NewRect(290, 735, 4, 10), Owner: OwnerBoss},
		{Rect: core.NewRect(10, 100, 4, 10), Owner: OwnerBoss},
	}
	r.pickups = []Pickup{{Rect: core.NewRect(0, 300, 25, 25)}}

	if got := r.AdvanceFrame(noInput); got != Lose {
		t.Fatalf("AdvanceFrame = %v, expected Lose", got)
	}
	if r.Health() != 0 {
		t.Errorf("health = %d, expected 0", r.Health())
	}
	if len(r.bossBullets) != 1 || r.bossBullets[0].Rect != core.NewRect(10, 100, 4, 10) {
		t.Errorf("boss bullets after the fatal one must stay put, got %+v", r.bossBullets)
	}
	if r.pickups[0].Y != 300 {
		t.Error("pickups must not move after the fatal hit")
	}
	if sound.count(SoundGameOver) != 1 || sound.stops != 1 {
		t.Errorf("lose should stop music and play game over, got %v stops=%d", sound.played, sound.stops)
	}
	if ren.frames != 0 {
		t.Error("losing frame should not be rendered")
	}
}

func TestBossBulletLeavesScreen(t *testing.T) {
	r, _, _ := newTestRound(1)
	r.bossBullets = []Bullet{{Rect: core.NewRect(10, 798, 4, 10), Owner: OwnerBoss}}

	r.AdvanceFrame(noInput)
	if len(r.bossBullets) != 0 || r.Health() != 3 {
		t.Errorf("bullet past the bottom should vanish harmlessly: %+v health=%d", r.bossBullets, r.Health())
	}
}

func TestPickupHealsCapped(t *testing.T) {
	tests := []struct {
		name   string
		health int
		want   int
	}{
		{"hurt", 2, 3},
		{"full", 3, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _, _ := newTestRound(1)
			r.health = tc.health
			r.pickups = []Pickup{{Rect: core.NewRect(290, 720, 25, 25)}}

			r.AdvanceFrame(noInput)
			if r.Health() != tc.want {
				t.Errorf("health = %d, expected %d", r.Health(), tc.want)
			}
			if len(r.pickups) != 0 {
				t.Error("caught pickup should be removed")
			}
		})
	}
}

func TestScoreCrossesLevelOne(t *testing.T) {
	r, _, _ := newTestRound(1)
	r.score = 195
	r.enemies = []Enemy{enemyAt(100, 300)}
	r.bullets = []Bullet{playerBullet(110, 330)}

	r.AdvanceFrame(noInput)

	if r.Score() != 205 {
		t.Fatalf("score = %d, expected 205", r.Score())
	}
	d := r.Difficulty()
	if d.Level != 2 || d.EnemySpeed != 4 || d.SpawnInterval != 25 {
		t.Errorf("difficulty = %+v, expected level 2 speed 4 interval 25", d)
	}
}

func TestBossActivatesOnce(t *testing.T) {
	r, _, _ := newTestRound(1)
	r.diff.Level = MaxLevel

	r.AdvanceFrame(noInput)
	boss := r.bosses.Boss()
	if boss == nil || r.BossState() != BossActive {
		t.Fatal("boss should activate at level 3")
	}
	if boss.Health != 50 || boss.Y != 50 || boss.W != 100 || boss.H != 60 {
		t.Errorf("boss = %+v, expected health 50 at y=50 size 100x60", boss)
	}
	// Activated at x=250 then moved right once
	if boss.X != 254 || boss.Direction != 1 {
		t.Errorf("boss X=%d dir=%d, expected 254 moving right", boss.X, boss.Direction)
	}

	r.AdvanceFrame(noInput)
	if r.bosses.Boss() != boss {
		t.Error("a second boss must not be created")
	}
	if r.bosses.Activate() {
		t.Error("Activate should be idempotent")
	}
}

func TestBossFires(t *testing.T) {
	r, _, _ := newTestRound(1)
	r.diff.Level = MaxLevel

	for i := 1; i < 60; i++ {
		r.AdvanceFrame(noInput)
		if len(r.bossBullets) != 0 {
			t.Fatalf("boss fired early on tick %d", i)
		}
	}
	r.AdvanceFrame(noInput)
	if len(r.bossBullets) != 3 {
		t.Fatalf("expected a 3-bullet boss volley, got %d", len(r.bossBullets))
	}
	for _, b := range r.bossBullets {
		if b.Owner != OwnerBoss {
			t.Errorf("boss bullet has owner %v", b.Owner)
		}
	}
}

func TestBossDefeatWins(t *testing.T) {
	r, sound, ren := newTestRound(1)
	r.diff.Level = MaxLevel
	r.AdvanceFrame(noInput)

	r.bosses.Boss().Health = 1
	r.bullets = []Bullet{playerBullet(300, 110)}
	before := r.Score()

	if got := r.AdvanceFrame(noInput); got != Win {
		t.Fatalf("AdvanceFrame = %v, expected Win", got)
	}
	if r.Score() != before+100 {
		t.Errorf("score = %d, expected %d", r.Score(), before+100)
	}
	if r.BossState() != BossDefeated {
		t.Errorf("boss state = %v, expected defeated", r.BossState())
	}
	if sound.count(SoundVictory) != 1 || sound.stops != 1 {
		t.Errorf("win should stop music and play victory, got %v stops=%d", sound.played, sound.stops)
	}
	if ren.frames != 2 || ren.last.Boss == nil || ren.last.Boss.Health != 0 {
		t.Errorf("final frame should be rendered with the defeated boss, frames=%d", ren.frames)
	}
}

func TestRoundInvariants(t *testing.T) {
	r, _, _ := newTestRound(99)
	pilot := NewAutopilot()
	lastScore := 0
	lastLevel := 1

	for tick := 0; tick < 20000; tick++ {
		res := r.AdvanceFrame(pilot.Next(r.Snapshot()))

		if r.Health() < 0 || r.Health() > 3 {
			t.Fatalf("tick %d: health %d out of range", tick, r.Health())
		}
		if r.Score() < lastScore {
			t.Fatalf("tick %d: score decreased from %d to %d", tick, lastScore, r.Score())
		}
		if r.Level() < lastLevel {
			t.Fatalf("tick %d: level decreased from %d to %d", tick, lastLevel, r.Level())
		}
		if r.player.X < 0 || r.player.Right() > 600 {
			t.Fatalf("tick %d: player out of bounds %+v", tick, r.player)
		}
		lastScore, lastLevel = r.Score(), r.Level()

		if res != Continue {
			if res == Lose && r.Health() != 0 {
				t.Errorf("lost with health %d", r.Health())
			}
			return
		}
		if r.Health() == 0 {
			t.Fatalf("tick %d: round continued with zero health", tick)
		}
	}
}

func TestRoundDeterminism(t *testing.T) {
	run := func() []uint64 {
		r, _, _ := newTestRound(12345)
		pilot := NewAutopilot()
		var hashes []uint64
		for range 3000 {
			res := r.AdvanceFrame(pilot.Next(r.Snapshot()))
			snap := r.Snapshot()
			hashes = append(hashes, snap.Hash())
			if res != Continue {
				break
			}
		}
		return hashes
	}

	h1, h2 := run(), run()
	if len(h1) != len(h2) {
		t.Fatalf("runs diverged in length: %d vs %d", len(h1), len(h2))
	}
	for i := range h1 {
		if h1[i] != h2[i] {
			t.Fatalf("runs diverged at tick %d", i)
		}
	}
}
