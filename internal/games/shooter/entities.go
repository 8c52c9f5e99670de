// Package shooter implements a vertical space shooter.
// The player's ship fights waves of falling enemies, collects health pickups
// and finally faces a boss once the score reaches the last level threshold.
package shooter

import (
	"github.com/vovakirdan/space-shooter/internal/core"
)

// Owner identifies who fired a bullet.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerBoss
)

// Bullet is a projectile moving vertically.
type Bullet struct {
	core.Rect
	Owner Owner
}

// Enemy is a regular falling adversary.
type Enemy struct {
	core.Rect
}

// Pickup restores one point of health when caught.
type Pickup struct {
	core.Rect
}

// FrameResult is the outcome of advancing a round by one frame.
type FrameResult int

const (
	Continue FrameResult = iota
	Win
	Lose
	Quit
)

// String returns a lowercase name, also used when persisting round outcomes.
func (r FrameResult) String() string {
	switch r {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Sound names a fire-and-forget sound event.
type Sound int

const (
	SoundFire Sound = iota
	SoundExplosion
	SoundCollision
	SoundVictory
	SoundGameOver
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundExplosion:
		return "explosion"
	case SoundCollision:
		return "collision"
	case SoundVictory:
		return "victory"
	case SoundGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// SoundSink receives sound events. Implementations must not block the caller.
type SoundSink interface {
	Play(s Sound)
	StartMusic()
	StopMusic()
}

// NopSound discards every sound event.
type NopSound struct{}

func (NopSound) Play(Sound)  {}
func (NopSound) StartMusic() {}
func (NopSound) StopMusic()  {}

// OverScreen describes the message shown after a round ends.
type OverScreen struct {
	Outcome      FrameResult
	Title        string
	Instructions string
	Locked       bool // Restart is ignored while the victory hold runs
}

// Renderer draws round state. It is called from the simulation goroutine
// and must not block.
type Renderer interface {
	RenderFrame(snap Snapshot)
	RenderOver(snap Snapshot, over OverScreen)
}

// NopRenderer ignores all frames.
type NopRenderer struct{}

func (NopRenderer) RenderFrame(Snapshot)            {}
func (NopRenderer) RenderOver(Snapshot, OverScreen) {}
