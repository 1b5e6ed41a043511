package headless

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Lead returns where to aim so a projectile fired from shooter at
// projectileSpeed meets a target moving at constant velocity.
func Lead(shooter, target, velocity mgl64.Vec3, projectileSpeed float64) mgl64.Vec3 {
	// If target is not moving, just aim at it
	if velocity.Len() < 0.1 || projectileSpeed <= 0 {
		return target
	}

	distance := target.Sub(shooter).Len()
	if distance < 1.0 {
		return target
	}

	// Find t with |target + velocity*t - shooter| = projectileSpeed*t,
	// starting from the time to reach the current position
	t := distance / projectileSpeed
	for i := 0; i < 5; i++ {
		predicted := target.Add(velocity.Mul(t))
		newT := predicted.Sub(shooter).Len() / projectileSpeed
		if math.Abs(newT-t) < 0.001 {
			break
		}
		t = newT
	}

	return target.Add(velocity.Mul(t))
}

// angleDiff normalizes a-b to [-π, π)
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}
