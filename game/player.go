package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

// DeathReporter is told when the player dies
type DeathReporter interface {
	PlayerDied()
}

// Player is the first-person controller
type Player struct {
	Pos       mgl64.Vec3
	Velocity  mgl64.Vec3
	Yaw       float64
	Health    float64
	MaxHealth float64
	Grounded  bool

	Weapon   *Weapon
	Powerups PowerupTimers

	Handle ProxyHandle

	tuning PlayerConfig
	arena  ArenaConfig
	audio  Audio
	deaths DeathReporter
	dead   bool
}

// NewPlayer creates a player standing on the ground at the arena centre
func NewPlayer(tuning PlayerConfig, arena ArenaConfig, weapon *Weapon, audio Audio, deaths DeathReporter) *Player {
	if audio == nil {
		audio = nopAudio{}
	}
	return &Player{
		Pos:       mgl64.Vec3{0, arena.GroundY, 0},
		Health:    tuning.MaxHealth,
		MaxHealth: tuning.MaxHealth,
		Grounded:  true,
		Weapon:    weapon,
		Powerups:  PowerupTimers{},
		tuning:    tuning,
		arena:     arena,
		audio:     audio,
		deaths:    deaths,
	}
}

// Position returns the player's feet position
func (p *Player) Position() mgl64.Vec3 {
	return p.Pos
}

// EyePosition returns where the camera sits
func (p *Player) EyePosition() mgl64.Vec3 {
	return p.Pos.Add(mgl64.Vec3{0, p.tuning.EyeHeight, 0})
}

// Alive reports whether the player has health left
func (p *Player) Alive() bool {
	return !p.dead
}

// Bounds returns the player's collision box
func (p *Player) Bounds() AABB {
	return BoxAt(p.Pos, p.tuning.Size)
}

// SpeedMultiplier is 1, or the speed powerup value while it runs
func (p *Player) SpeedMultiplier() float64 {
	return p.multiplier(PowerupSpeed)
}

// DamageMultiplier is 1, or the damage powerup value while it runs
func (p *Player) DamageMultiplier() float64 {
	return p.multiplier(PowerupDamage)
}

// Invincible reports whether incoming damage is ignored
func (p *Player) Invincible() bool {
	return p.Powerups.Active(PowerupInvincibility)
}

func (p *Player) multiplier(t PowerupType) float64 {
	if !p.Powerups.Active(t) {
		return 1
	}
	effect, err := GetPowerupEffect(t)
	if err != nil {
		return 1
	}
	return effect.Value
}

// Update moves the player for one frame. The order is fixed: intent,
// yaw rotation, velocity blend, ground friction, gravity, jump, integration,
// ground clamp, arena clamp.
func (p *Player) Update(deltaTime float64, intent Intent, yaw float64) {
	if p.dead {
		return
	}
	p.Yaw = yaw

	direction := mgl64.Vec3{}
	if intent.Forward {
		direction[2] -= 1
	}
	if intent.Backward {
		direction[2] += 1
	}
	if intent.Left {
		direction[0] -= 1
	}
	if intent.Right {
		direction[0] += 1
	}
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}

	direction = mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}).Rotate(direction)
	target := direction.Mul(p.tuning.Speed * p.SpeedMultiplier())

	blend := p.tuning.Lerp
	if !p.Grounded {
		blend *= p.tuning.AirControl
	}
	p.Velocity[0] += (target.X() - p.Velocity.X()) * blend
	p.Velocity[2] += (target.Z() - p.Velocity.Z()) * blend

	if p.Grounded {
		p.Velocity[0] *= p.tuning.Friction
		p.Velocity[2] *= p.tuning.Friction
	}

	p.Velocity[1] -= p.tuning.Gravity * deltaTime

	if intent.Jump && p.Grounded {
		p.Velocity[1] = p.tuning.JumpForce
		p.Grounded = false
	}

	p.Pos = p.Pos.Add(p.Velocity.Mul(deltaTime))

	if p.Pos.Y() < p.arena.GroundY {
		p.Pos[1] = p.arena.GroundY
		p.Velocity[1] = 0
		p.Grounded = true
	}

	p.Pos[0] = clamp(p.Pos.X(), -p.arena.Bound, p.arena.Bound)
	p.Pos[2] = clamp(p.Pos.Z(), -p.arena.Bound, p.arena.Bound)
}

// UpdateTimers advances the weapon and powerup timers
func (p *Player) UpdateTimers(deltaTime float64) {
	p.Weapon.Update(deltaTime)
	p.Powerups.Tick(deltaTime)
}

// TakeDamage lowers health, floored at zero. It does nothing while
// invincible. Reaching zero reports the death once.
func (p *Player) TakeDamage(amount float64) {
	if p.dead || amount <= 0 || p.Invincible() {
		return
	}

	p.Health = math.Max(0, p.Health-amount)
	if p.Health > 0 {
		return
	}

	p.dead = true
	log.Info().Msg("player died")
	if p.deaths != nil {
		p.deaths.PlayerDied()
	}
}

// Heal restores health up to the maximum
func (p *Player) Heal(amount float64) {
	if p.dead || amount <= 0 {
		return
	}
	p.Health = math.Min(p.MaxHealth, p.Health+amount)
}

// Forward returns the unit view direction for the given yaw and pitch
func Forward(yaw, pitch float64) mgl64.Vec3 {
	return mgl64.Vec3{
		-math.Sin(yaw) * math.Cos(pitch),
		math.Sin(pitch),
		-math.Cos(yaw) * math.Cos(pitch),
	}
}

// Shoot fires the weapon along the view direction
func (p *Player) Shoot(now, yaw, pitch float64) bool {
	if p.dead {
		return false
	}
	if !p.Weapon.Shoot(now, p.EyePosition(), Forward(yaw, pitch), p.DamageMultiplier()) {
		return false
	}
	p.playSound(SoundShoot)
	return true
}

// Reload starts a weapon reload
func (p *Player) Reload() bool {
	if p.dead || !p.Weapon.Reload() {
		return false
	}
	p.playSound(SoundReload)
	return true
}

// ApplyPowerup grants a powerup's effect
func (p *Player) ApplyPowerup(t PowerupType) error {
	effect, err := GetPowerupEffect(t)
	if err != nil {
		return err
	}

	if effect.Duration <= 0 {
		p.Heal(effect.Value)
	} else {
		p.Powerups.Grant(t, effect.Duration)
	}

	p.playSound(SoundPowerup)
	return nil
}

func (p *Player) playSound(name string) {
	if err := p.audio.Play(name); err != nil {
		log.Debug().Err(err).Str("sound", name).Msg("sound failed")
	}
}
