package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestAABBIntersects(t *testing.T) {
	enemy := BoxAt(mgl64.Vec3{0, 1, 0}, Size{1, 2, 1})

	assert.True(t, enemy.Intersects(CubeAt(mgl64.Vec3{0, 1.5, 0}, 0.1)))
	assert.True(t, enemy.Intersects(CubeAt(mgl64.Vec3{0.6, 1, 0}, 0.1)), "touching counts")
	assert.False(t, enemy.Intersects(CubeAt(mgl64.Vec3{0.61, 1, 0}, 0.1)))
	assert.False(t, enemy.Intersects(CubeAt(mgl64.Vec3{0, 2.5, 0}, 0.1)))

	assert.True(t, enemy.Contains(mgl64.Vec3{0.5, 0, -0.5}))
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, enemy.Center())
}

func TestYawTowards(t *testing.T) {
	origin := mgl64.Vec3{}

	assert.InDelta(t, 0, yawTowards(origin, mgl64.Vec3{0, 0, -1}), 1e-9)
	assert.InDelta(t, 0, Forward(yawTowards(origin, mgl64.Vec3{3, 0, 4}), 0).Sub(mgl64.Vec3{0.6, 0, 0.8}).Len(), 1e-9)
}
