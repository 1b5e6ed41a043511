package game

import "github.com/go-gl/mathgl/mgl64"

// Projectile is a live bullet fired by a weapon
type Projectile struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Damage   float64

	// CreatedAt is the simulation time the projectile was fired at
	CreatedAt float64

	Handle ProxyHandle
}

// Bounds returns the projectile's collision box
func (p *Projectile) Bounds(halfExtent float64) AABB {
	return CubeAt(p.Position, halfExtent)
}

// Expired reports whether the projectile outlived its lifetime or left the
// play volume. Distance is measured from the world origin.
func (p *Projectile) Expired(now float64, tuning ProjectileConfig) bool {
	return now-p.CreatedAt > tuning.Lifetime || p.Position.Len() > tuning.MaxDistance
}
