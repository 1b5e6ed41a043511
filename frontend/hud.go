package frontend

import (
	"fmt"
	"image/color"

	"arenashooter/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudMargin    = 12
	hudBarWidth  = 200
	hudBarHeight = 14
	hudLineGap   = 18
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// HUD keeps what the simulation last reported and draws it
type HUD struct {
	health, maxHealth float64
	ammo, maxAmmo     int
	score             int
	fps               float64
	gameOver          bool
	finalScore        int
}

var _ game.UI = (*HUD)(nil)

func (h *HUD) OnHealthChanged(current, max float64) {
	h.health, h.maxHealth = current, max
}

func (h *HUD) OnAmmoChanged(current, max int) {
	h.ammo, h.maxAmmo = current, max
}

func (h *HUD) OnScoreChanged(score int) { h.score = score }

func (h *HUD) OnGameOver(score int) {
	h.gameOver = true
	h.finalScore = score
}

func (h *HUD) OnFPSChanged(fps float64) { h.fps = fps }

// Reset clears match state but keeps the FPS reading
func (h *HUD) Reset() {
	*h = HUD{fps: h.fps}
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, hudFace, op)
}

func drawCentered(screen *ebiten.Image, s string, y float64, clr color.Color) {
	width, _ := text.Measure(s, hudFace, 0)
	x := (float64(screen.Bounds().Dx()) - width) / 2
	drawText(screen, s, x, y, clr)
}

// Draw renders the overlay for the given session
func (h *HUD) Draw(screen *ebiten.Image, session game.Session, reloading float64) {
	w, hgt := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	drawText(screen, fmt.Sprintf("FPS %.0f", h.fps), w-80, hudMargin, color.RGBA{160, 160, 160, 255})

	switch session.State {
	case game.StateMenu:
		drawCentered(screen, "ARENA", hgt/2-40, color.White)
		drawCentered(screen, "1: solo    2: 1v1", hgt/2, color.White)
		drawCentered(screen, "WASD move  mouse aim  click fire  R reload  Space jump", hgt/2+hudLineGap, color.RGBA{160, 160, 160, 255})
		return
	case game.StateGameOver:
		drawCentered(screen, "GAME OVER", hgt/2-20, color.RGBA{255, 80, 80, 255})
		drawCentered(screen, fmt.Sprintf("score %d    1: solo  2: 1v1", h.finalScore), hgt/2, color.White)
	}

	// Health bar
	y := hgt - hudMargin - hudBarHeight
	vector.DrawFilledRect(screen, hudMargin, float32(y), hudBarWidth, hudBarHeight, color.RGBA{100, 0, 0, 255}, true)
	if h.maxHealth > 0 {
		fill := hudBarWidth * float32(h.health/h.maxHealth)
		vector.DrawFilledRect(screen, hudMargin, float32(y), fill, hudBarHeight, color.RGBA{0, 200, 0, 255}, true)
	}
	drawText(screen, fmt.Sprintf("%.0f/%.0f", h.health, h.maxHealth), hudMargin+4, y, color.White)

	ammo := fmt.Sprintf("%d/%d", h.ammo, h.maxAmmo)
	if reloading > 0 {
		ammo = fmt.Sprintf("reloading %.0f%%", reloading*100)
	}
	drawText(screen, ammo, w-hudMargin-120, y, color.White)

	drawText(screen, fmt.Sprintf("score %d  round %d", h.score, session.Round), hudMargin, hudMargin, color.White)
}
