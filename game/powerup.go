package game

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// PowerupType defines the kinds of pickups
type PowerupType int

const (
	PowerupHealth PowerupType = iota
	PowerupSpeed
	PowerupDamage
	PowerupInvincibility
)

// AllPowerups lists every pickup type in spawn order
var AllPowerups = []PowerupType{PowerupHealth, PowerupSpeed, PowerupDamage, PowerupInvincibility}

var ErrUnknownPowerup = errors.New("unknown powerup type")

// PowerupEffect is the fixed duration and value of a powerup type.
// A zero duration means the effect is applied instantly.
type PowerupEffect struct {
	Type     PowerupType
	Duration float64
	Value    float64
}

// GetPowerupEffect returns the effect for a powerup type
func GetPowerupEffect(t PowerupType) (PowerupEffect, error) {
	switch t {
	case PowerupHealth:
		return PowerupEffect{Type: t, Duration: 0, Value: 25}, nil
	case PowerupSpeed:
		return PowerupEffect{Type: t, Duration: 10, Value: 1.5}, nil
	case PowerupDamage:
		return PowerupEffect{Type: t, Duration: 10, Value: 2}, nil
	case PowerupInvincibility:
		return PowerupEffect{Type: t, Duration: 10, Value: 1}, nil
	default:
		return PowerupEffect{}, fmt.Errorf("%w: %d", ErrUnknownPowerup, int(t))
	}
}

func (t PowerupType) String() string {
	switch t {
	case PowerupHealth:
		return "health"
	case PowerupSpeed:
		return "speed"
	case PowerupDamage:
		return "damage"
	case PowerupInvincibility:
		return "invincibility"
	default:
		return "unknown"
	}
}

// ParsePowerupType maps a powerup name to its type
func ParsePowerupType(name string) (PowerupType, error) {
	for _, t := range AllPowerups {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPowerup, name)
}

// PowerupTimers maps each timed powerup to its remaining seconds
type PowerupTimers map[PowerupType]float64

// Grant starts or extends a timed effect. Re-granting keeps the longer of
// the remaining and the new duration.
func (t PowerupTimers) Grant(p PowerupType, duration float64) {
	t[p] = math.Max(t[p], duration)
}

// Tick decrements every timer, clamped at zero
func (t PowerupTimers) Tick(deltaTime float64) {
	for p, remaining := range t {
		t[p] = math.Max(0, remaining-deltaTime)
	}
}

// Active reports whether p has time left
func (t PowerupTimers) Active(p PowerupType) bool {
	return t[p] > 0
}

// Powerup is a pickup lying in the arena
type Powerup struct {
	Type     PowerupType
	Value    float64
	Pos      mgl64.Vec3
	Yaw      float64
	PickedUp bool

	Handle ProxyHandle

	baseY     float64
	bobOffset float64
}

// NewPowerup creates a pickup resting at position
func NewPowerup(t PowerupType, position mgl64.Vec3, bobOffset float64) (*Powerup, error) {
	effect, err := GetPowerupEffect(t)
	if err != nil {
		return nil, err
	}
	return &Powerup{
		Type:      t,
		Value:     effect.Value,
		Pos:       position,
		baseY:     position.Y(),
		bobOffset: bobOffset,
	}, nil
}

// Animate spins the pickup and bobs it around its resting height
func (p *Powerup) Animate(now, deltaTime float64, tuning PowerupConfig) {
	p.Yaw = math.Mod(p.Yaw+tuning.SpinSpeed*deltaTime, 2*math.Pi)
	p.Pos[1] = p.baseY + math.Sin(p.bobOffset+now*tuning.BobSpeed)*tuning.BobAmplitude
}

// Bounds returns the pickup's collision box
func (p *Powerup) Bounds(size Size) AABB {
	return BoxAt(p.Pos, size)
}
