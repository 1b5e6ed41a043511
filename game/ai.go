package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// AIState is the enemy behaviour state
type AIState int

const (
	AIStatePatrol AIState = iota
	AIStateChase
	AIStateAttack
)

func (s AIState) String() string {
	switch s {
	case AIStatePatrol:
		return "patrol"
	case AIStateChase:
		return "chase"
	case AIStateAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// aiBand maps a distance band to the state it selects
type aiBand struct {
	state       AIState
	maxDistance func(EnemyConfig) float64
}

// aiTransitions is checked in order; the first band whose range contains the
// distance to the player wins. Anything farther falls back to patrol.
var aiTransitions = []aiBand{
	{state: AIStateAttack, maxDistance: func(c EnemyConfig) float64 { return c.AttackRange }},
	{state: AIStateChase, maxDistance: func(c EnemyConfig) float64 { return c.DetectionRange }},
}

// DesiredState returns the state the transition table selects for distance
func DesiredState(distance float64, tuning EnemyConfig) AIState {
	for _, band := range aiTransitions {
		if distance <= band.maxDistance(tuning) {
			return band.state
		}
	}
	return AIStatePatrol
}

// GeneratePatrolRoute picks random waypoints inside the arena, retrying a
// bounded number of times to keep them apart. The last candidate is kept
// when no separated point is found.
func GeneratePatrolRoute(rng *rand.Rand, tuning PatrolConfig, y float64) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, 0, tuning.Points)

	for i := 0; i < tuning.Points; i++ {
		var point mgl64.Vec3
		for attempt := 0; ; attempt++ {
			point = mgl64.Vec3{
				rng.Float64()*2*tuning.Extent - tuning.Extent,
				y,
				rng.Float64()*2*tuning.Extent - tuning.Extent,
			}
			if attempt+1 >= tuning.MaxAttempts || !tooClose(points, point, tuning.MinSeparation) {
				break
			}
		}
		points = append(points, point)
	}

	return points
}

func tooClose(points []mgl64.Vec3, candidate mgl64.Vec3, minDistance float64) bool {
	for _, p := range points {
		if p.Sub(candidate).Len() < minDistance {
			return true
		}
	}
	return false
}
