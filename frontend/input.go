package frontend

import (
	"math"

	"arenashooter/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const maxPitch = 1.5

// Input reads the keyboard and a captured mouse once per frame
type Input struct {
	// Sensitivity is radians of view turn per pixel of mouse motion
	Sensitivity float64

	yaw, pitch   float64
	lastX, lastY int
	primed       bool

	intent game.Intent
	fire   bool
	reload bool
}

var (
	_ game.Input    = (*Input)(nil)
	_ game.Reloader = (*Input)(nil)
)

func NewInput() *Input {
	return &Input{Sensitivity: 0.003}
}

// Release forgets the last cursor position so the next capture does not
// turn the view by the distance the cursor travelled while free.
func (in *Input) Release() {
	in.primed = false
	in.fire = false
	in.reload = false
	in.intent = game.Intent{}
}

// Poll samples devices for the coming simulation step
func (in *Input) Poll() {
	x, y := ebiten.CursorPosition()
	if in.primed {
		in.yaw -= float64(x-in.lastX) * in.Sensitivity
		in.pitch -= float64(y-in.lastY) * in.Sensitivity
		in.pitch = math.Max(-maxPitch, math.Min(maxPitch, in.pitch))
	}
	in.lastX, in.lastY = x, y
	in.primed = true

	// Q/E turn too, for trackpads
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.yaw += 0.04
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		in.yaw -= 0.04
	}

	in.intent = game.Intent{
		Forward:  ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Backward: ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:     ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:    ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:     ebiten.IsKeyPressed(ebiten.KeySpace),
	}

	in.fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeyF)
	in.reload = inpututil.IsKeyJustPressed(ebiten.KeyR)
}

func (in *Input) MovementIntent() game.Intent { return in.intent }
func (in *Input) ViewYaw() float64            { return in.yaw }
func (in *Input) ViewPitch() float64          { return in.pitch }
func (in *Input) PrimaryActionPressed() bool  { return in.fire }
func (in *Input) ReloadPressed() bool         { return in.reload }
