package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

// Target is what an enemy chases and attacks
type Target interface {
	Position() mgl64.Vec3
	TakeDamage(amount float64)
}

// ScoreReporter receives points for kills
type ScoreReporter interface {
	AddScore(points int)
}

// Enemy is a patrolling, chasing, attacking opponent
type Enemy struct {
	ID int

	Pos       mgl64.Vec3
	Velocity  mgl64.Vec3
	Yaw       float64
	Health    float64
	MaxHealth float64

	State         AIState
	Waypoints     []mgl64.Vec3
	WaypointIndex int

	// AttackCooldown counts down to the next allowed attack
	AttackCooldown float64

	// LastStateChange is the simulation time of the last transition
	LastStateChange float64

	Handle ProxyHandle

	tuning EnemyConfig
	scores ScoreReporter
	dead   bool
}

// NewEnemy creates an enemy in patrol state. The first state evaluation is
// allowed immediately.
func NewEnemy(id int, position mgl64.Vec3, waypoints []mgl64.Vec3, tuning EnemyConfig, scores ScoreReporter) *Enemy {
	return &Enemy{
		ID:              id,
		Pos:             position,
		Health:          tuning.MaxHealth,
		MaxHealth:       tuning.MaxHealth,
		State:           AIStatePatrol,
		Waypoints:       waypoints,
		LastStateChange: math.Inf(-1),
		tuning:          tuning,
		scores:          scores,
	}
}

// Position returns the enemy's current position
func (e *Enemy) Position() mgl64.Vec3 {
	return e.Pos
}

// Alive reports whether the enemy is still in the simulation
func (e *Enemy) Alive() bool {
	return !e.dead
}

// Bounds returns the enemy's collision box
func (e *Enemy) Bounds() AABB {
	return BoxAt(e.Pos, e.tuning.Size)
}

// TakeDamage lowers health, floored at zero. Dropping to zero kills the
// enemy and reports the kill score exactly once.
func (e *Enemy) TakeDamage(amount float64) {
	if e.dead || amount <= 0 {
		return
	}

	e.Health = math.Max(0, e.Health-amount)
	if e.Health > 0 {
		return
	}

	e.dead = true
	e.Velocity = mgl64.Vec3{}
	if e.scores != nil {
		e.scores.AddScore(e.tuning.Score)
	}
	log.Debug().Int("enemy", e.ID).Msg("enemy killed")
}

// Update runs one frame of the state machine against target
func (e *Enemy) Update(now, deltaTime float64, target Target) {
	if e.dead || target == nil {
		return
	}

	targetPos := target.Position()
	e.updateState(now, targetPos.Sub(e.Pos).Len())

	e.AttackCooldown = math.Max(0, e.AttackCooldown-deltaTime)

	switch e.State {
	case AIStatePatrol:
		e.patrol(deltaTime)
	case AIStateChase:
		e.moveTowards(targetPos, deltaTime)
	case AIStateAttack:
		e.Velocity = mgl64.Vec3{}
		e.Yaw = yawTowards(e.Pos, targetPos)
		if e.AttackCooldown <= 0 {
			target.TakeDamage(e.tuning.Damage)
			e.AttackCooldown = e.tuning.AttackCooldown
		}
	}
}

// updateState applies the transition table, at most once per dwell time
func (e *Enemy) updateState(now, distance float64) {
	if now-e.LastStateChange < e.tuning.DwellTime {
		return
	}

	next := DesiredState(distance, e.tuning)
	if next == e.State {
		return
	}

	log.Trace().
		Int("enemy", e.ID).
		Stringer("from", e.State).
		Stringer("to", next).
		Float64("distance", distance).
		Msg("enemy state change")

	e.State = next
	e.LastStateChange = now
}

func (e *Enemy) patrol(deltaTime float64) {
	if len(e.Waypoints) == 0 {
		e.Velocity = mgl64.Vec3{}
		return
	}

	waypoint := e.Waypoints[e.WaypointIndex]
	if horizontal(waypoint).Sub(horizontal(e.Pos)).Len() < e.tuning.ArrivalRadius {
		e.WaypointIndex = (e.WaypointIndex + 1) % len(e.Waypoints)
		waypoint = e.Waypoints[e.WaypointIndex]
	}

	e.moveTowards(waypoint, deltaTime)
}

// moveTowards walks on the horizontal plane and faces the destination
func (e *Enemy) moveTowards(destination mgl64.Vec3, deltaTime float64) {
	direction := horizontal(destination).Sub(horizontal(e.Pos))
	if direction.Len() == 0 {
		e.Velocity = mgl64.Vec3{}
		return
	}

	e.Yaw = yawTowards(e.Pos, destination)
	e.Velocity = direction.Normalize().Mul(e.tuning.Speed)
	e.Pos = e.Pos.Add(e.Velocity.Mul(deltaTime))
}
