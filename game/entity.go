package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EntityKind identifies the type of entity a scene proxy stands for
type EntityKind int

const (
	EntityKindPlayer EntityKind = iota
	EntityKindEnemy
	EntityKindProjectile
	EntityKindPowerup
)

func (k EntityKind) String() string {
	switch k {
	case EntityKindPlayer:
		return "player"
	case EntityKindEnemy:
		return "enemy"
	case EntityKindProjectile:
		return "projectile"
	case EntityKindPowerup:
		return "powerup"
	default:
		return "unknown"
	}
}

// ProxyHandle is an opaque reference to a visual owned by the Scene.
// The zero value means no visual is attached.
type ProxyHandle uint64

// ProxyParams describes the visual the Scene should create.
type ProxyParams struct {
	Position mgl64.Vec3
	Size     Size

	// Variant distinguishes visuals of the same kind, e.g. the powerup type
	Variant string
}

// Vec returns the size as a vector
func (s Size) Vec() mgl64.Vec3 {
	return mgl64.Vec3{s.X, s.Y, s.Z}
}

// horizontal drops the vertical component
func horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// yawTowards returns the yaw that faces from a to b on the horizontal plane.
// Yaw 0 faces -Z, matching the camera convention.
func yawTowards(from, to mgl64.Vec3) float64 {
	d := to.Sub(from)
	return math.Atan2(-d.X(), -d.Z())
}

// clamp limits v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
