package game

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestPlayer(audio Audio, deaths DeathReporter) *Player {
	cfg := DefaultConfig()
	weapon := NewWeapon(WeaponTypePistol, cfg.Projectile, nil)
	return NewPlayer(cfg.Player, cfg.Arena, weapon, audio, deaths)
}

func horizontalSpeed(v mgl64.Vec3) float64 {
	return horizontal(v).Len()
}

func TestTakeDamageFloorsAtZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := newTestPlayer(nil, nil)
		health := rapid.Float64Range(1, 100).Draw(t, "health")
		amount := rapid.Float64Range(0, 250).Draw(t, "amount")
		invincible := rapid.Bool().Draw(t, "invincible")

		p.Health = health
		if invincible {
			p.Powerups.Grant(PowerupInvincibility, 10)
		}

		p.TakeDamage(amount)

		if invincible {
			require.Equal(t, health, p.Health)
		} else {
			require.Equal(t, math.Max(0, health-amount), p.Health)
		}
		require.GreaterOrEqual(t, p.Health, 0.0)
	})
}

func TestPlayerDeathReportedOnce(t *testing.T) {
	reporter := &countingReporter{}
	p := newTestPlayer(nil, reporter)

	p.TakeDamage(60)
	assert.True(t, p.Alive())
	p.TakeDamage(60)
	p.TakeDamage(60)

	assert.False(t, p.Alive())
	assert.Equal(t, 0.0, p.Health)
	assert.Equal(t, 1, reporter.deaths)
}

func TestNegativeDamageIgnored(t *testing.T) {
	p := newTestPlayer(nil, nil)
	p.TakeDamage(-20)
	assert.Equal(t, 100.0, p.Health)
}

func TestDiagonalMovementIsNormalized(t *testing.T) {
	straight := newTestPlayer(nil, nil)
	diagonal := newTestPlayer(nil, nil)

	straight.Update(0.016, Intent{Forward: true}, 0)
	diagonal.Update(0.016, Intent{Forward: true, Right: true}, 0)

	expected := 10 * 0.15 * 0.9
	assert.InDelta(t, expected, horizontalSpeed(straight.Velocity), 1e-9)
	assert.InDelta(t, expected, horizontalSpeed(diagonal.Velocity), 1e-9)
}

func TestMovementFollowsYaw(t *testing.T) {
	p := newTestPlayer(nil, nil)

	p.Update(0.016, Intent{Forward: true}, math.Pi/2)

	assert.Less(t, p.Velocity.X(), 0.0)
	assert.InDelta(t, 0, p.Velocity.Z(), 1e-9)
	assert.Equal(t, math.Pi/2, p.Yaw)
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	p := newTestPlayer(nil, nil)

	p.Update(0.016, Intent{Jump: true}, 0)
	require.False(t, p.Grounded)
	assert.Equal(t, 7.0, p.Velocity.Y())
	assert.Greater(t, p.Pos.Y(), 1.0)

	p.Update(0.016, Intent{Jump: true}, 0)
	assert.InDelta(t, 7-30*0.016, p.Velocity.Y(), 1e-9)

	for i := 0; i < 120; i++ {
		p.Update(0.016, Intent{}, 0)
	}
	assert.True(t, p.Grounded)
	assert.Equal(t, 1.0, p.Pos.Y())
	assert.Equal(t, 0.0, p.Velocity.Y())
}

func TestAirControlIsReduced(t *testing.T) {
	p := newTestPlayer(nil, nil)
	p.Grounded = false
	p.Pos[1] = 5

	p.Update(0.016, Intent{Forward: true}, 0)

	assert.InDelta(t, 10*0.15*0.3, horizontalSpeed(p.Velocity), 1e-9)
}

func TestPlayerStaysInsideArena(t *testing.T) {
	p := newTestPlayer(nil, nil)
	p.Pos[0] = 44.9

	for i := 0; i < 400; i++ {
		p.Update(0.05, Intent{Right: true, Backward: true}, 0)
	}

	assert.Equal(t, 45.0, p.Pos.X())
	assert.Equal(t, 45.0, p.Pos.Z())
}

func TestSpeedPowerupScalesTopSpeed(t *testing.T) {
	normal := newTestPlayer(nil, nil)
	boosted := newTestPlayer(nil, nil)
	require.NoError(t, boosted.ApplyPowerup(PowerupSpeed))

	for i := 0; i < 200; i++ {
		normal.Update(0.016, Intent{Forward: true}, 0)
		boosted.Update(0.016, Intent{Forward: true}, 0)
	}

	ratio := horizontalSpeed(boosted.Velocity) / horizontalSpeed(normal.Velocity)
	assert.InDelta(t, 1.5, ratio, 1e-6)
}

func TestSpeedPowerupRegrantTakesMax(t *testing.T) {
	audio := &fakeAudio{}
	p := newTestPlayer(audio, nil)

	require.NoError(t, p.ApplyPowerup(PowerupSpeed))
	p.UpdateTimers(3)
	assert.Equal(t, 7.0, p.Powerups[PowerupSpeed])

	require.NoError(t, p.ApplyPowerup(PowerupSpeed))
	assert.Equal(t, 10.0, p.Powerups[PowerupSpeed])
	assert.Equal(t, []string{SoundPowerup, SoundPowerup}, audio.played)

	p.UpdateTimers(12)
	assert.Equal(t, 0.0, p.Powerups[PowerupSpeed])
	assert.Equal(t, 1.0, p.SpeedMultiplier())
}

func TestHealthPowerupClamps(t *testing.T) {
	p := newTestPlayer(nil, nil)
	p.Health = 90

	require.NoError(t, p.ApplyPowerup(PowerupHealth))
	assert.Equal(t, 100.0, p.Health)
	assert.Empty(t, p.Powerups)
}

func TestDamagePowerupDoublesProjectileDamage(t *testing.T) {
	p := newTestPlayer(nil, nil)
	require.NoError(t, p.ApplyPowerup(PowerupDamage))

	require.True(t, p.Shoot(0, 0, 0))
	assert.Equal(t, 20.0, p.Weapon.Projectiles[0].Damage)
}

func TestUnknownPowerupRejected(t *testing.T) {
	p := newTestPlayer(nil, nil)
	err := p.ApplyPowerup(PowerupType(42))
	assert.ErrorIs(t, err, ErrUnknownPowerup)
}

func TestAudioFailureIsSwallowed(t *testing.T) {
	audio := &fakeAudio{err: errors.New("device busy")}
	p := newTestPlayer(audio, nil)

	assert.True(t, p.Shoot(0, 0, 0))
	assert.True(t, p.Reload())
	assert.Equal(t, []string{SoundShoot, SoundReload}, audio.played)
}

func TestShootFromEyeAlongView(t *testing.T) {
	p := newTestPlayer(nil, nil)

	require.True(t, p.Shoot(0, math.Pi, 0))
	proj := p.Weapon.Projectiles[0]

	assert.True(t, proj.Position.ApproxEqualThreshold(mgl64.Vec3{0, 1.8, 1}, 1e-9))
	assert.InDelta(t, 50, proj.Velocity.Z(), 1e-9)
}
