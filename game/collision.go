package game

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl64.Vec3
}

// BoxAt returns the box of the given size centred on center
func BoxAt(center mgl64.Vec3, size Size) AABB {
	half := size.Vec().Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// CubeAt returns a cube with the given half extent centred on center
func CubeAt(center mgl64.Vec3, halfExtent float64) AABB {
	half := mgl64.Vec3{halfExtent, halfExtent, halfExtent}
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Intersects reports whether the two boxes overlap. Touching faces count.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// Contains reports whether p lies inside the box
func (a AABB) Contains(p mgl64.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}

// Center returns the centre of the box
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}
