package game

import "time"

// FrameClock measures wall-clock time between frames
type FrameClock struct {
	last     time.Time
	maxDelta float64
	now      func() time.Time
}

// NewFrameClock creates a clock that never reports more than maxDelta
// seconds for a single frame
func NewFrameClock(maxDelta float64) *FrameClock {
	return &FrameClock{maxDelta: maxDelta, now: time.Now}
}

// Tick returns the seconds since the previous Tick. The first call returns 0.
func (c *FrameClock) Tick() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	deltaTime := now.Sub(c.last).Seconds()
	c.last = now

	// Cap delta time to prevent large jumps (e.g., when window loses focus)
	if deltaTime > c.maxDelta {
		deltaTime = c.maxDelta
	}
	if deltaTime < 0 {
		deltaTime = 0
	}
	return deltaTime
}

// Reset forgets the previous frame
func (c *FrameClock) Reset() {
	c.last = time.Time{}
}
