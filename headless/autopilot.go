package headless

import (
	"math"

	"arenashooter/game"

	"github.com/go-gl/mathgl/mgl64"
)

// Autopilot plays the match from the last observed snapshot: it turns to
// the nearest enemy, closes to StandOff, and fires once lined up.
type Autopilot struct {
	// StandOff is the distance the autopilot stops approaching at
	StandOff float64
	// AimTolerance is the largest yaw error in radians it will fire at
	AimTolerance float64
	// EyeHeight is where shots leave the player, above its position
	EyeHeight float64
	// ProjectileSpeed is used to lead moving enemies. Zero aims straight at them.
	ProjectileSpeed float64

	intent game.Intent
	yaw    float64
	pitch  float64
	fire   bool
	reload bool
}

var (
	_ game.Input    = (*Autopilot)(nil)
	_ game.Reloader = (*Autopilot)(nil)
)

func NewAutopilot() *Autopilot {
	return &Autopilot{
		StandOff:        8,
		AimTolerance:    0.05,
		EyeHeight:       0.8,
		ProjectileSpeed: 50,
	}
}

func aim(from, to mgl64.Vec3) (yaw, pitch float64) {
	d := to.Sub(from)
	yaw = math.Atan2(-d.X(), -d.Z())
	pitch = math.Atan2(d.Y(), math.Hypot(d.X(), d.Z()))
	return
}

func (a *Autopilot) Observe(state game.Snapshot) {
	a.intent = game.Intent{}
	a.fire = false

	p := state.Player
	a.reload = p.Ammo == 0 && !p.Reloading

	eye := p.Position.Add(mgl64.Vec3{0, a.EyeHeight, 0})
	if enemy, ok := state.NearestEnemy(); ok {
		a.yaw, a.pitch = aim(eye, Lead(eye, enemy.Position, enemy.Velocity, a.ProjectileSpeed))

		flat := enemy.Position.Sub(p.Position)
		flat[1] = 0
		a.intent.Forward = flat.Len() > a.StandOff

		aligned := math.Abs(angleDiff(p.Yaw, a.yaw)) <= a.AimTolerance
		a.fire = aligned && p.Ammo > 0 && !p.Reloading
		return
	}

	// Nothing to shoot; go collect pickups
	var (
		best  = math.Inf(1)
		found bool
		goal  mgl64.Vec3
	)
	for _, pu := range state.Powerups {
		if d := pu.Position.Sub(p.Position).Len(); d < best {
			best, goal, found = d, pu.Position, true
		}
	}
	if found {
		a.yaw, _ = aim(p.Position, goal)
		a.pitch = 0
		a.intent.Forward = true
	}
}

func (a *Autopilot) MovementIntent() game.Intent { return a.intent }
func (a *Autopilot) ViewYaw() float64            { return a.yaw }
func (a *Autopilot) ViewPitch() float64          { return a.pitch }
func (a *Autopilot) PrimaryActionPressed() bool  { return a.fire }
func (a *Autopilot) ReloadPressed() bool         { return a.reload }
