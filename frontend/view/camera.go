// Package view holds the drawing math shared by the window frontend.
package view

import "math"

// Camera represents the top-down viewport into the arena
type Camera struct {
	X, Z     float64 // Camera position in world coordinates
	Zoom     float64 // Pixels per metre
	Width    float64 // Viewport width
	Height   float64 // Viewport height
	Rotation float64 // View yaw; the direction it faces is drawn pointing up
}

// NewCamera creates a new camera
func NewCamera(width, height, zoom float64) *Camera {
	return &Camera{
		Zoom:   zoom,
		Width:  width,
		Height: height,
	}
}

// Follow centres the camera on a position and turns it to face yaw
func (c *Camera) Follow(x, z, yaw float64) {
	c.X = x
	c.Z = z
	c.Rotation = yaw
}

// WorldToScreen converts world x/z to screen coordinates
func (c *Camera) WorldToScreen(wx, wz float64) (float64, float64) {
	// Translate by camera position
	dx := wx - c.X
	dz := wz - c.Z

	sin, cos := math.Sincos(c.Rotation)
	sx := dx*cos - dz*sin
	sy := dx*sin + dz*cos

	// Apply zoom
	sx *= c.Zoom
	sy *= c.Zoom

	// Translate to screen center
	return sx + c.Width/2, sy + c.Height/2
}

// ScreenToWorld converts screen coordinates to world x/z
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	// Translate from screen center
	dx := (sx - c.Width/2) / c.Zoom
	dz := (sy - c.Height/2) / c.Zoom

	sin, cos := math.Sincos(-c.Rotation)
	wx := dx*cos - dz*sin
	wz := dx*sin + dz*cos

	return wx + c.X, wz + c.Z
}

// ScreenAngle is the on-screen angle of something facing yaw in the world,
// measured like math.Atan2 on screen axes.
func (c *Camera) ScreenAngle(yaw float64) float64 {
	return -math.Pi/2 - yaw + c.Rotation
}

// Visible reports whether a screen point lies inside the viewport plus margin
func (c *Camera) Visible(sx, sy, margin float64) bool {
	return sx >= -margin && sx <= c.Width+margin &&
		sy >= -margin && sy <= c.Height+margin
}
