package game

import (
	"errors"
	"fmt"
)

// Config holds game configuration constants
type Config struct {
	// Seed for enemy patrol routes and pickup placement. Zero picks a
	// time-based seed.
	Seed int64 `yaml:"seed"`

	Arena      ArenaConfig      `yaml:"arena"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Powerups   PowerupConfig    `yaml:"powerups"`
	Rounds     RoundConfig      `yaml:"rounds"`
	Loop       LoopConfig       `yaml:"loop"`
	Screen     ScreenConfig     `yaml:"screen"`
}

// ArenaConfig describes the playable floor.
type ArenaConfig struct {
	// GroundY is the lowest height an entity can stand at
	GroundY float64 `yaml:"groundY"`

	// Bound clamps x and z to [-Bound, Bound]
	Bound float64 `yaml:"bound"`

	// SpawnExtent is the half-size of the square used for random placement
	SpawnExtent float64 `yaml:"spawnExtent"`
}

// PlayerConfig holds movement tuning for the player controller.
type PlayerConfig struct {
	Speed      float64 `yaml:"speed"`
	JumpForce  float64 `yaml:"jumpForce"`
	Gravity    float64 `yaml:"gravity"`
	Friction   float64 `yaml:"friction"`
	AirControl float64 `yaml:"airControl"`
	Lerp       float64 `yaml:"lerp"`
	MaxHealth  float64 `yaml:"maxHealth"`
	EyeHeight  float64 `yaml:"eyeHeight"`
	Size       Size    `yaml:"size"`
	Weapon     string  `yaml:"weapon"`
}

// EnemyConfig holds tuning for the enemy state machine.
type EnemyConfig struct {
	MaxHealth      float64 `yaml:"maxHealth"`
	Speed          float64 `yaml:"speed"`
	Damage         float64 `yaml:"damage"`
	AttackRange    float64 `yaml:"attackRange"`
	DetectionRange float64 `yaml:"detectionRange"`
	AttackCooldown float64 `yaml:"attackCooldown"`

	// DwellTime is the minimum time between two state transitions
	DwellTime float64 `yaml:"dwellTime"`

	// ArrivalRadius is how close a patrol waypoint must be to count as reached
	ArrivalRadius float64 `yaml:"arrivalRadius"`

	SpawnY float64      `yaml:"spawnY"`
	Size   Size         `yaml:"size"`
	Score  int          `yaml:"score"`
	Patrol PatrolConfig `yaml:"patrol"`
}

// PatrolConfig controls random waypoint generation.
type PatrolConfig struct {
	Points        int     `yaml:"points"`
	Extent        float64 `yaml:"extent"`
	MinSeparation float64 `yaml:"minSeparation"`
	MaxAttempts   int     `yaml:"maxAttempts"`
}

// ProjectileConfig controls projectile flight and expiry.
type ProjectileConfig struct {
	Speed       float64 `yaml:"speed"`
	Lifetime    float64 `yaml:"lifetime"`
	MaxDistance float64 `yaml:"maxDistance"`
	HalfExtent  float64 `yaml:"halfExtent"`
}

// PowerupConfig controls pickup spawning.
type PowerupConfig struct {
	SpawnInterval float64 `yaml:"spawnInterval"`
	MaxActive     int     `yaml:"maxActive"`
	SpawnY        float64 `yaml:"spawnY"`
	Size          Size    `yaml:"size"`
	BobAmplitude  float64 `yaml:"bobAmplitude"`
	BobSpeed      float64 `yaml:"bobSpeed"`
	SpinSpeed     float64 `yaml:"spinSpeed"`
}

// RoundConfig controls enemy rounds.
type RoundConfig struct {
	// Enemies spawned per round in solo mode
	Enemies int `yaml:"enemies"`

	// DuelEnemies spawned per round in 1v1 mode
	DuelEnemies int `yaml:"duelEnemies"`

	// Cooldown between clearing a round and the next one spawning
	Cooldown float64 `yaml:"cooldown"`
}

// LoopConfig controls frame timing.
type LoopConfig struct {
	// MaxDelta clamps a single frame's elapsed time in seconds
	MaxDelta float64 `yaml:"maxDelta"`

	// TickRate is the fixed update rate of the headless runner
	TickRate int `yaml:"tickRate"`

	// FPSWindow is the measurement window for the FPS counter
	FPSWindow float64 `yaml:"fpsWindow"`

	// ProfileBelowFPS triggers a profile capture when FPS drops under it.
	// Zero disables profiling.
	ProfileBelowFPS float64 `yaml:"profileBelowFPS"`
	ProfileDir      string  `yaml:"profileDir"`
}

// ScreenConfig is the window size used by the frontend
type ScreenConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Zoom   float64 `yaml:"zoom"`
}

// Size is the full extent of a bounding box along each axis.
type Size struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Arena: ArenaConfig{
			GroundY:     1,
			Bound:       45,
			SpawnExtent: 40,
		},
		Player: PlayerConfig{
			Speed:      10,
			JumpForce:  7,
			Gravity:    30,
			Friction:   0.9,
			AirControl: 0.3,
			Lerp:       0.15,
			MaxHealth:  100,
			EyeHeight:  0.8,
			Size:       Size{0.8, 1.8, 0.8},
			Weapon:     "pistol",
		},
		Enemy: EnemyConfig{
			MaxHealth:      100,
			Speed:          3,
			Damage:         10,
			AttackRange:    5,
			DetectionRange: 20,
			AttackCooldown: 1,
			DwellTime:      1,
			ArrivalRadius:  1,
			SpawnY:         1,
			Size:           Size{1, 2, 1},
			Score:          100,
			Patrol: PatrolConfig{
				Points:        4,
				Extent:        40,
				MinSeparation: 10,
				MaxAttempts:   10,
			},
		},
		Projectile: ProjectileConfig{
			Speed:       50,
			Lifetime:    2,
			MaxDistance: 100,
			HalfExtent:  0.1,
		},
		Powerups: PowerupConfig{
			SpawnInterval: 10,
			MaxActive:     5,
			SpawnY:        1,
			Size:          Size{0.8, 0.8, 0.8},
			BobAmplitude:  0.2,
			BobSpeed:      2,
			SpinSpeed:     1.2,
		},
		Rounds: RoundConfig{
			Enemies:     5,
			DuelEnemies: 1,
			Cooldown:    5,
		},
		Loop: LoopConfig{
			MaxDelta:   0.1,
			TickRate:   60,
			FPSWindow:  0.5,
			ProfileDir: "profiles",
		},
		Screen: ScreenConfig{
			Width:  1024,
			Height: 768,
			Zoom:   8,
		},
	}
}

// Validate reports the first setting that would break the simulation.
func (c Config) Validate() error {
	switch {
	case c.Arena.Bound <= 0:
		return fmt.Errorf("%w: arena.bound must be positive", ErrInvalidConfig)
	case c.Player.Speed < 0:
		return fmt.Errorf("%w: player.speed must not be negative", ErrInvalidConfig)
	case c.Player.MaxHealth <= 0:
		return fmt.Errorf("%w: player.maxHealth must be positive", ErrInvalidConfig)
	case c.Player.Lerp < 0 || c.Player.Lerp > 1:
		return fmt.Errorf("%w: player.lerp must be within [0, 1]", ErrInvalidConfig)
	case c.Enemy.MaxHealth <= 0:
		return fmt.Errorf("%w: enemy.maxHealth must be positive", ErrInvalidConfig)
	case c.Enemy.AttackRange > c.Enemy.DetectionRange:
		return fmt.Errorf("%w: enemy.attackRange exceeds detectionRange", ErrInvalidConfig)
	case c.Enemy.DwellTime < 0:
		return fmt.Errorf("%w: enemy.dwellTime must not be negative", ErrInvalidConfig)
	case c.Enemy.ArrivalRadius <= 0:
		return fmt.Errorf("%w: enemy.arrivalRadius must be positive", ErrInvalidConfig)
	case c.Enemy.Patrol.Points < 0:
		return fmt.Errorf("%w: enemy.patrol.points must not be negative", ErrInvalidConfig)
	case c.Enemy.Patrol.MaxAttempts < 0:
		return fmt.Errorf("%w: enemy.patrol.maxAttempts must not be negative", ErrInvalidConfig)
	case c.Projectile.Speed <= 0 || c.Projectile.Lifetime <= 0:
		return fmt.Errorf("%w: projectile speed and lifetime must be positive", ErrInvalidConfig)
	case c.Projectile.MaxDistance <= 0:
		return fmt.Errorf("%w: projectile.maxDistance must be positive", ErrInvalidConfig)
	case c.Powerups.MaxActive < 0:
		return fmt.Errorf("%w: powerups.maxActive must not be negative", ErrInvalidConfig)
	case c.Rounds.Enemies < 0 || c.Rounds.DuelEnemies < 0:
		return fmt.Errorf("%w: round enemy counts must not be negative", ErrInvalidConfig)
	case c.Loop.MaxDelta <= 0:
		return fmt.Errorf("%w: loop.maxDelta must be positive", ErrInvalidConfig)
	case c.Loop.TickRate <= 0:
		return fmt.Errorf("%w: loop.tickRate must be positive", ErrInvalidConfig)
	}

	if _, err := ParseWeaponType(c.Player.Weapon); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}
