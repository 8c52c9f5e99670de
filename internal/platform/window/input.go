// Package window runs shooter sessions in a desktop window with ebiten.
// Unlike the terminal, the window sees real key releases, so movement and
// fire follow the keyboard exactly.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/space-shooter/internal/core"
)

// Keys reports keyboard state for the current tick.
type Keys interface {
	Pressed(k ebiten.Key) bool     // Held down right now
	JustPressed(k ebiten.Key) bool // Went down this tick
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

var (
	leftKeys    = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys   = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	fireKeys    = []ebiten.Key{ebiten.KeySpace}
	restartKeys = []ebiten.Key{ebiten.KeyR}
	quitKeys    = []ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}
)

// ReadInput builds the input frame for one tick.
// Held keys map to movement and fire; restart and quit trigger on press only.
func ReadInput(keys Keys) core.InputFrame {
	frame := core.NewInputFrame()
	if anyKey(keys.Pressed, leftKeys) {
		frame.Set(core.ActionLeft)
	}
	if anyKey(keys.Pressed, rightKeys) {
		frame.Set(core.ActionRight)
	}
	if anyKey(keys.Pressed, fireKeys) {
		frame.Set(core.ActionFire)
	}
	if anyKey(keys.JustPressed, restartKeys) {
		frame.Set(core.ActionRestart)
	}
	if anyKey(keys.JustPressed, quitKeys) {
		frame.Set(core.ActionQuit)
	}
	return frame
}

func anyKey(fn func(ebiten.Key) bool, keys []ebiten.Key) bool {
	for _, k := range keys {
		if fn(k) {
			return true
		}
	}
	return false
}
