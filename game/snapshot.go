package game

import "github.com/go-gl/mathgl/mgl64"

// Snapshot is the committed state at the end of a frame. Tags are shared by
// the feed encoder and the script runtime.
type Snapshot struct {
	MatchID string  `json:"matchId"`
	Frame   uint64  `json:"frame"`
	Time    float64 `json:"time"`
	State   string  `json:"state"`
	Mode    string  `json:"mode"`
	Score   int     `json:"score"`
	Round   int     `json:"round"`
	FPS     float64 `json:"fps"`

	Player      PlayerSnapshot    `json:"player"`
	Enemies     []EnemySnapshot   `json:"enemies"`
	Projectiles []mgl64.Vec3      `json:"projectiles"`
	Powerups    []PowerupSnapshot `json:"powerups"`
}

// PlayerSnapshot is the player's visible state
type PlayerSnapshot struct {
	Position  mgl64.Vec3         `json:"position"`
	Velocity  mgl64.Vec3         `json:"velocity"`
	Yaw       float64            `json:"yaw"`
	Health    float64            `json:"health"`
	MaxHealth float64            `json:"maxHealth"`
	Grounded  bool               `json:"grounded"`
	Weapon    string             `json:"weapon"`
	Ammo      int                `json:"ammo"`
	MaxAmmo   int                `json:"maxAmmo"`
	Reloading bool               `json:"reloading"`
	Powerups  map[string]float64 `json:"powerups"`
}

// EnemySnapshot is one enemy's visible state
type EnemySnapshot struct {
	ID       int        `json:"id"`
	Position mgl64.Vec3 `json:"position"`
	Velocity mgl64.Vec3 `json:"velocity"`
	Yaw      float64    `json:"yaw"`
	Health   float64    `json:"health"`
	State    string     `json:"state"`
}

// PowerupSnapshot is one pickup's visible state
type PowerupSnapshot struct {
	Type     string     `json:"type"`
	Position mgl64.Vec3 `json:"position"`
}

// NearestEnemy returns the closest enemy to the player, if any
func (s *Snapshot) NearestEnemy() (EnemySnapshot, bool) {
	var (
		nearest EnemySnapshot
		found   bool
		best    float64
	)
	for _, e := range s.Enemies {
		d := e.Position.Sub(s.Player.Position).Len()
		if !found || d < best {
			nearest, best, found = e, d, true
		}
	}
	return nearest, found
}
