package shooter

import (
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/space-shooter/internal/core"
)

// Visual characters for terminal rendering
const (
	PlayerChar     = '▲'
	EnemyChar      = '▼'
	BulletChar     = '|'
	BossBulletChar = '!'
	PickupChar     = '+'
	BossChar       = '█'
	BarChar        = '▀'
	HeartChar      = '♥'
	BorderColor    = core.ColorGray
)

// BarDrainSeconds is how long the boss health bar takes to settle on a new value.
const BarDrainSeconds = 0.35

// FrameBuffer is a Renderer that keeps the most recent frame for a later draw.
// Platforms whose draw loop is separate from the simulation step read it back.
type FrameBuffer struct {
	snap  Snapshot
	over  OverScreen
	isSet bool
	ended bool
}

// RenderFrame stores the snapshot and clears any over screen.
func (f *FrameBuffer) RenderFrame(snap Snapshot) {
	f.snap = snap
	f.isSet = true
	f.ended = false
}

// RenderOver stores the snapshot together with the over screen.
func (f *FrameBuffer) RenderOver(snap Snapshot, over OverScreen) {
	f.snap = snap
	f.over = over
	f.isSet = true
	f.ended = true
}

// Latest returns the last stored frame. over is nil while a round is running.
// ok is false until the first frame has been rendered.
func (f *FrameBuffer) Latest() (snap Snapshot, over *OverScreen, ok bool) {
	if !f.isSet {
		return Snapshot{}, nil, false
	}
	if f.ended {
		o := f.over
		return f.snap, &o, true
	}
	return f.snap, nil, true
}

// Reset forgets the stored frame.
func (f *FrameBuffer) Reset() {
	*f = FrameBuffer{}
}

// BarAnimator eases a displayed bar width toward its target value.
type BarAnimator struct {
	tween    *gween.Tween
	current  float32
	target   float32
	duration float32
}

// NewBarAnimator creates an animator that settles in duration seconds.
func NewBarAnimator(duration float32) *BarAnimator {
	return &BarAnimator{duration: duration}
}

// Update retargets the animation if needed, advances it by dt seconds and
// returns the width to draw.
func (a *BarAnimator) Update(target, dt float32) float32 {
	if target != a.target {
		a.tween = gween.New(a.current, target, a.duration, ease.OutQuad)
		a.target = target
	}
	if a.tween != nil {
		val, done := a.tween.Update(dt)
		a.current = val
		if done {
			a.current = a.target
			a.tween = nil
		}
	}
	return a.current
}

// Reset jumps to v without animating.
func (a *BarAnimator) Reset(v float32) {
	a.tween = nil
	a.current = v
	a.target = v
}

// viewport maps world pixels onto a block of terminal cells.
type viewport struct {
	ox, oy         int // Top-left cell of the playfield
	cols, rows     int // Playfield size in cells
	worldW, worldH int
}

// newViewport fits the world into the screen below the HUD row, keeping the
// world's aspect ratio for cells roughly twice as tall as they are wide.
func newViewport(screenW, screenH, worldW, worldH int) viewport {
	rows := max(1, screenH-3)
	cols := max(1, rows*worldW*2/worldH)
	if cols > screenW-2 {
		cols = max(1, screenW-2)
	}
	return viewport{
		ox:     (screenW - cols) / 2,
		oy:     2,
		cols:   cols,
		rows:   rows,
		worldW: worldW,
		worldH: worldH,
	}
}

// cellX converts a world x coordinate to a cell column (may be outside the playfield).
func (v viewport) cellX(x int) int {
	return v.ox + floorDiv(x*v.cols, v.worldW)
}

func (v viewport) cellY(y int) int {
	return v.oy + floorDiv(y*v.rows, v.worldH)
}

// fill paints every cell a world rect covers, at least one cell, clipped to the playfield.
func (v viewport) fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	x0, y0 := v.cellX(r.X), v.cellY(r.Y)
	x1 := max(x0, v.cellX(r.Right()-1))
	y1 := max(y0, v.cellY(r.Bottom()-1))

	x0 = max(x0, v.ox)
	y0 = max(y0, v.oy)
	x1 = min(x1, v.ox+v.cols-1)
	y1 = min(y1, v.oy+v.rows-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, ch, c)
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// TerminalRenderer rasterizes snapshots into a character screen.
type TerminalRenderer struct {
	bar *BarAnimator
	dt  float32
}

// NewTerminalRenderer creates a renderer drawn tickRate times per second.
func NewTerminalRenderer(tickRate int) *TerminalRenderer {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &TerminalRenderer{
		bar: NewBarAnimator(BarDrainSeconds),
		dt:  1 / float32(tickRate),
	}
}

// Draw renders a snapshot, and the over screen when non-nil, into dst.
func (t *TerminalRenderer) Draw(dst *core.Screen, snap Snapshot, over *OverScreen) {
	dst.Clear()
	if snap.WorldW <= 0 || snap.WorldH <= 0 {
		return
	}

	v := newViewport(dst.Width(), dst.Height(), snap.WorldW, snap.WorldH)
	dst.DrawBox(core.NewRect(v.ox-1, v.oy-1, v.cols+2, v.rows+2), BorderColor)

	for _, p := range snap.Pickups {
		v.fill(dst, p.Rect, PickupChar, core.ColorBrightGreen)
	}
	for _, e := range snap.Enemies {
		v.fill(dst, e.Rect, EnemyChar, core.ColorRed)
	}
	if snap.Boss != nil {
		t.drawBoss(dst, v, snap.Boss)
	} else {
		t.bar.Reset(0)
	}
	for _, b := range snap.BossBullets {
		v.fill(dst, b.Rect, BossBulletChar, core.ColorBrightRed)
	}
	for _, b := range snap.Bullets {
		v.fill(dst, b.Rect, BulletChar, core.ColorBrightYellow)
	}
	v.fill(dst, snap.Player, PlayerChar, core.ColorBrightCyan)

	t.drawHUD(dst, snap)

	if over != nil {
		drawOver(dst, over)
	}
}

func (t *TerminalRenderer) drawBoss(dst *core.Screen, v viewport, b *Boss) {
	v.fill(dst, b.Rect, BossChar, core.ColorMagenta)

	// The bar's 10px offset is smaller than a cell, so it goes on the row above the boss.
	bar := b.HealthBar()
	w := int(t.bar.Update(float32(bar.W), t.dt) + 0.5)
	if w <= 0 {
		return
	}
	y := max(v.oy, v.cellY(b.Y)-1)
	x0 := max(v.ox, v.cellX(bar.X))
	x1 := min(v.ox+v.cols-1, max(v.cellX(bar.X), v.cellX(bar.X+w-1)))
	if x1 >= x0 {
		dst.DrawHLine(x0, y, x1-x0+1, BarChar, core.ColorRed)
	}
}

func (t *TerminalRenderer) drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d  Level: %d", snap.Score, snap.Level), core.ColorBrightWhite)

	hearts := strings.Repeat(string(HeartChar), snap.Health)
	lost := strings.Repeat(string(HeartChar), max(0, snap.MaxHealth-snap.Health))
	x := dst.Width() - 1 - len([]rune(hearts+lost))
	dst.DrawText(x, 0, hearts, core.ColorBrightRed)
	dst.DrawText(x+len([]rune(hearts)), 0, lost, core.ColorGray)
}

// drawOver draws the win/lose message box in the center of the screen.
func drawOver(dst *core.Screen, over *OverScreen) {
	titleColor := core.ColorBrightRed
	if over.Outcome == Win {
		titleColor = core.ColorBrightGreen
	}
	hintColor := core.ColorWhite
	if over.Locked {
		hintColor = core.ColorGray
	}

	boxW := max(len(over.Title), len(over.Instructions)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, over.Title, titleColor)
	dst.DrawTextCentered(box.Y+3, over.Instructions, hintColor)
}
