package frontend

import (
	"image/color"
	"math"

	"arenashooter/frontend/view"
	"arenashooter/game"
	"arenashooter/headless"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorPlayer     = color.RGBA{0, 255, 0, 255}
	colorEnemy      = color.RGBA{255, 0, 0, 255}
	colorProjectile = color.RGBA{255, 255, 0, 255}
	colorPowerup    = color.RGBA{255, 255, 255, 255}
	colorArena      = color.RGBA{80, 80, 80, 255}
)

// Scene draws the logical proxies top-down
type Scene struct {
	*headless.Scene
	sprites map[string]*ebiten.Image
}

func NewScene() *Scene {
	return &Scene{
		Scene:   headless.NewScene(),
		sprites: loadSprites(),
	}
}

func (s *Scene) drawArena(screen *ebiten.Image, camera *view.Camera, bound float64) {
	corners := [][2]float64{{-bound, -bound}, {bound, -bound}, {bound, bound}, {-bound, bound}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		ax, ay := camera.WorldToScreen(a[0], a[1])
		bx, by := camera.WorldToScreen(b[0], b[1])
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 2, colorArena, true)
	}
}

// Draw renders every proxy through the camera
func (s *Scene) Draw(screen *ebiten.Image, camera *view.Camera, bound float64) {
	s.drawArena(screen, camera, bound)

	s.Each(func(_ game.ProxyHandle, p headless.Proxy) {
		sx, sy := camera.WorldToScreen(p.Position.X(), p.Position.Z())
		if !camera.Visible(sx, sy, 100) {
			return
		}

		radius := math.Max(1, p.Size.X/2*camera.Zoom)
		angle := camera.ScreenAngle(p.Yaw)

		switch p.Kind {
		case game.EntityKindPlayer:
			drawBody(screen, sx, sy, radius, angle, colorPlayer)
		case game.EntityKindEnemy:
			drawBody(screen, sx, sy, radius, angle, colorEnemy)
		case game.EntityKindProjectile:
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(math.Max(2, radius)), colorProjectile, true)
		case game.EntityKindPowerup:
			s.drawPowerup(screen, sx, sy, radius, angle, p.Variant)
		}
	})
}

func drawBody(screen *ebiten.Image, sx, sy, radius, angle float64, clr color.Color) {
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)

	// Draw direction indicator
	dirLength := radius * 1.5
	endX := sx + math.Cos(angle)*dirLength
	endY := sy + math.Sin(angle)*dirLength
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(endX), float32(endY), 2, clr, true)
}

func (s *Scene) drawPowerup(screen *ebiten.Image, sx, sy, radius, angle float64, variant string) {
	sprite, ok := s.sprites[variant]
	if !ok {
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), colorPowerup, true)
		return
	}

	scale := radius * 2 / spriteSize
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-spriteSize/2, -spriteSize/2)
	op.GeoM.Rotate(angle + math.Pi/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
