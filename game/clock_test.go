package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameClockClampsDelta(t *testing.T) {
	start := time.Unix(1000, 0)
	current := start
	clock := NewFrameClock(0.1)
	clock.now = func() time.Time { return current }

	assert.Equal(t, 0.0, clock.Tick())

	current = current.Add(16 * time.Millisecond)
	assert.InDelta(t, 0.016, clock.Tick(), 1e-9)

	current = current.Add(3 * time.Second)
	assert.Equal(t, 0.1, clock.Tick())

	clock.Reset()
	current = current.Add(time.Hour)
	assert.Equal(t, 0.0, clock.Tick())
}

func TestFPSMonitor(t *testing.T) {
	m := NewFPSMonitor(0.5)

	for i := 0; i < 3; i++ {
		_, updated := m.Tick(0.125)
		assert.False(t, updated)
	}
	fps, updated := m.Tick(0.125)
	assert.True(t, updated)
	assert.Equal(t, 8.0, fps)
	assert.Equal(t, 8.0, m.FPS())
}
