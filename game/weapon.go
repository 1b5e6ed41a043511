package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

// timerEpsilon absorbs the rounding left over when a timer is drained by
// fixed frame steps such as 1/60.
const timerEpsilon = 1e-9

// Weapon tracks ammo, fire cooldown, reload progress and live projectiles.
type Weapon struct {
	Config    WeaponConfig
	Ammo      int
	Reloading bool

	Projectiles []*Projectile

	reloadTimer float64
	cooldown    float64
	tuning      ProjectileConfig
	scene       Scene
}

// NewWeapon creates a fully loaded weapon. scene may be nil, in which case
// projectiles have no visuals.
func NewWeapon(weaponType WeaponType, tuning ProjectileConfig, scene Scene) *Weapon {
	config := GetWeaponConfig(weaponType)
	return &Weapon{
		Config:      config,
		Ammo:        config.MaxAmmo,
		Projectiles: make([]*Projectile, 0, config.MaxAmmo),
		tuning:      tuning,
		scene:       scene,
	}
}

// CanShoot reports whether a shot would be accepted right now
func (w *Weapon) CanShoot() bool {
	return w.Ammo > 0 && !w.Reloading && w.cooldown <= 0
}

// Shoot fires one projectile from origin along forward. Rejected shots leave
// the weapon untouched.
func (w *Weapon) Shoot(now float64, origin, forward mgl64.Vec3, damageMultiplier float64) bool {
	if !w.CanShoot() {
		log.Debug().
			Int("ammo", w.Ammo).
			Bool("reloading", w.Reloading).
			Float64("cooldown", w.cooldown).
			Msg("shot rejected")
		return false
	}

	if forward.Len() == 0 {
		forward = mgl64.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()

	w.Ammo--
	w.cooldown = w.Config.FireRate

	p := &Projectile{
		Position:  origin.Add(forward),
		Velocity:  forward.Mul(w.tuning.Speed),
		Damage:    w.Config.Damage * damageMultiplier,
		CreatedAt: now,
	}

	if w.scene != nil {
		handle, err := w.scene.CreateProxy(EntityKindProjectile, ProxyParams{
			Position: p.Position,
			Size:     Size{w.tuning.HalfExtent * 2, w.tuning.HalfExtent * 2, w.tuning.HalfExtent * 2},
			Variant:  w.Config.Type.String(),
		})
		if err != nil {
			log.Warn().Err(err).Msg("could not create projectile visual")
		} else {
			p.Handle = handle
		}
	}

	w.Projectiles = append(w.Projectiles, p)
	return true
}

// Reload starts a reload. It fails while a reload is running or the
// magazine is full.
func (w *Weapon) Reload() bool {
	if w.Reloading || w.Ammo == w.Config.MaxAmmo {
		log.Debug().
			Bool("reloading", w.Reloading).
			Int("ammo", w.Ammo).
			Msg("reload rejected")
		return false
	}

	w.Reloading = true
	w.reloadTimer = w.Config.ReloadTime
	return true
}

// ReloadProgress returns how far the current reload has come, in [0, 1].
func (w *Weapon) ReloadProgress() float64 {
	if !w.Reloading || w.Config.ReloadTime <= 0 {
		return 0
	}
	return 1 - w.reloadTimer/w.Config.ReloadTime
}

// Update advances the fire cooldown and reload timers
func (w *Weapon) Update(deltaTime float64) {
	w.cooldown -= deltaTime
	if w.cooldown <= timerEpsilon {
		w.cooldown = 0
	}

	if w.Reloading {
		w.reloadTimer -= deltaTime
		if w.reloadTimer <= timerEpsilon {
			w.reloadTimer = 0
			w.Reloading = false
			w.Ammo = w.Config.MaxAmmo
		}
	}
}

// UpdateProjectiles moves every projectile, applies the first hit in
// target order, and drops projectiles that hit or expired. It returns the
// number of hits.
func (w *Weapon) UpdateProjectiles(now, deltaTime float64, targets []*Enemy) int {
	hits := 0
	live := w.Projectiles[:0]

	for _, p := range w.Projectiles {
		p.Position = p.Position.Add(p.Velocity.Mul(deltaTime))

		hit := false
		box := p.Bounds(w.tuning.HalfExtent)
		for _, target := range targets {
			if !target.Alive() {
				continue
			}
			if box.Intersects(target.Bounds()) {
				target.TakeDamage(p.Damage)
				hit = true
				hits++
				break
			}
		}

		if hit || p.Expired(now, w.tuning) {
			w.removeVisual(p)
			continue
		}

		if w.scene != nil && p.Handle != 0 {
			w.scene.SetTransform(p.Handle, p.Position, 0)
		}
		live = append(live, p)
	}

	// Clear the tail so dropped projectiles can be collected
	for i := len(live); i < len(w.Projectiles); i++ {
		w.Projectiles[i] = nil
	}
	w.Projectiles = live

	return hits
}

// Clear removes every live projectile
func (w *Weapon) Clear() {
	for _, p := range w.Projectiles {
		w.removeVisual(p)
	}
	w.Projectiles = w.Projectiles[:0]
}

func (w *Weapon) removeVisual(p *Projectile) {
	if w.scene != nil && p.Handle != 0 {
		w.scene.RemoveProxy(p.Handle)
	}
}
