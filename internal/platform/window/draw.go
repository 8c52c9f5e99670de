package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/space-shooter/internal/core"
	"github.com/vovakirdan/space-shooter/internal/games/shooter"
)

var (
	bgColor         = color.RGBA{8, 8, 20, 255}
	playerColor     = color.RGBA{80, 220, 255, 255}
	bulletColor     = color.RGBA{255, 240, 120, 255}
	enemyColor      = color.RGBA{230, 70, 70, 255}
	pickupColor     = color.RGBA{90, 230, 110, 255}
	bossColor       = color.RGBA{190, 80, 230, 255}
	bossBulletColor = color.RGBA{255, 150, 40, 255}
	barColor        = color.RGBA{230, 50, 50, 255}
	barBackColor    = color.RGBA{70, 20, 20, 255}
	heartColor      = color.RGBA{240, 60, 90, 255}
	panelColor      = color.RGBA{0, 0, 0, 190}
)

const (
	heartSize  = 10
	debugCharW = 6 // ebitenutil debug font cell
	debugCharH = 16
)

// Draw renders the latest frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	snap, over, ok := g.frames.Latest()
	if !ok {
		snap = g.session.View()
	}

	for _, p := range snap.Pickups {
		fillRect(screen, p.Rect, pickupColor)
	}
	for _, e := range snap.Enemies {
		fillRect(screen, e.Rect, enemyColor)
	}
	if snap.Boss != nil {
		g.drawBoss(screen, snap.Boss)
	} else {
		g.bar.Reset(0)
	}
	for _, b := range snap.BossBullets {
		fillRect(screen, b.Rect, bossBulletColor)
	}
	for _, b := range snap.Bullets {
		fillRect(screen, b.Rect, bulletColor)
	}
	fillRect(screen, snap.Player, playerColor)

	drawHUD(screen, snap)
	if over != nil {
		drawOver(screen, snap, over)
	}
}

func (g *Game) drawBoss(screen *ebiten.Image, b *shooter.Boss) {
	fillRect(screen, b.Rect, bossColor)

	full := b.HealthBar()
	full.W = b.W
	fillRect(screen, full, barBackColor)

	target := b.HealthBar()
	dt := float32(1) / float32(g.opts.TickRate)
	target.W = int(g.bar.Update(float32(target.W), dt) + 0.5)
	fillRect(screen, target, barColor)
}

func drawHUD(screen *ebiten.Image, snap shooter.Snapshot) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  Level: %d", snap.Score, snap.Level), 8, 4)

	for i := range snap.Health {
		x := float32(snap.WorldW - 8 - (i+1)*(heartSize+4))
		vector.DrawFilledRect(screen, x, 8, heartSize, heartSize, heartColor, false)
	}
}

func drawOver(screen *ebiten.Image, snap shooter.Snapshot, over *shooter.OverScreen) {
	lines := []string{over.Title, "", fmt.Sprintf("Score: %d", snap.Score)}
	if !over.Locked {
		lines = append(lines, "", over.Instructions)
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	pw := width*debugCharW + 32
	ph := len(lines)*debugCharH + 24
	px := (snap.WorldW - pw) / 2
	py := (snap.WorldH - ph) / 2
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(pw), float32(ph), panelColor, false)

	for i, l := range lines {
		x := (snap.WorldW - len(l)*debugCharW) / 2
		ebitenutil.DebugPrintAt(screen, l, x, py+12+i*debugCharH)
	}
}

func fillRect(screen *ebiten.Image, r core.Rect, c color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}
