package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

// Game represents the main game state
type Game struct {
	config Config

	scene Scene
	input Input
	audio Audio
	ui    UI

	session *Session
	rng     *rand.Rand

	player   *Player
	enemies  []*Enemy
	powerups []*Powerup

	// Simulation time in seconds since the match started
	now   float64
	frame uint64

	nextEnemyID   int
	powerupTimer  float64
	roundCooldown float64

	// FPS tracking
	fps             *FPSMonitor
	profiler        *Profiler
	lastFPSDropTime time.Time
	fpsDropCooldown time.Duration

	hud          hudState
	gameOverSent bool
	snapshot     Snapshot
}

// hudState is what the UI was last told
type hudState struct {
	valid     bool
	health    float64
	maxHealth float64
	ammo      int
	maxAmmo   int
	score     int
}

// New creates a game waiting in the menu. Scene and Input are required;
// missing Audio or UI collaborators are replaced with no-ops.
func New(config Config, c Collaborators) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if c.Scene == nil {
		return nil, ErrMissingScene
	}
	if c.Input == nil {
		return nil, ErrMissingInput
	}
	if c.Audio == nil {
		c.Audio = nopAudio{}
	}
	if c.UI == nil {
		c.UI = nopUI{}
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		config:          config,
		scene:           c.Scene,
		input:           c.Input,
		audio:           c.Audio,
		ui:              c.UI,
		session:         NewSession(),
		rng:             rand.New(rand.NewSource(seed)),
		fps:             NewFPSMonitor(config.Loop.FPSWindow),
		fpsDropCooldown: 10 * time.Second,
	}

	if config.Loop.ProfileBelowFPS > 0 {
		dir := config.Loop.ProfileDir
		if dir == "" {
			dir = "profiles"
		}
		profiler, err := NewProfiler(dir)
		if err != nil {
			return nil, err
		}
		g.profiler = profiler
	}

	return g, nil
}

// StartGame tears down any running match and starts a new one
func (g *Game) StartGame(mode Mode) error {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return err
	}

	g.teardown()
	g.session.Begin(mode)
	g.now = 0
	g.frame = 0
	g.powerupTimer = 0
	g.roundCooldown = 0
	g.hud = hudState{}
	g.gameOverSent = false

	if err := g.createPlayer(); err != nil {
		g.session.State = StateMenu
		return err
	}

	g.spawnRound()
	g.emitUI()
	g.snapshot = g.buildSnapshot()
	return nil
}

// createPlayer creates the player entity
func (g *Game) createPlayer() error {
	weaponType, err := ParseWeaponType(g.config.Player.Weapon)
	if err != nil {
		return err
	}

	weapon := NewWeapon(weaponType, g.config.Projectile, g.scene)
	player := NewPlayer(g.config.Player, g.config.Arena, weapon, g.audio, g.session)

	handle, err := g.scene.CreateProxy(EntityKindPlayer, ProxyParams{
		Position: player.Pos,
		Size:     g.config.Player.Size,
		Variant:  weaponType.String(),
	})
	if err != nil {
		return fmt.Errorf("create player visual: %w", err)
	}
	player.Handle = handle

	g.player = player
	return nil
}

// Reload asks the player's weapon to reload
func (g *Game) Reload() bool {
	if g.session.State != StatePlaying || g.player == nil {
		return false
	}
	return g.player.Reload()
}

// Step advances the simulation by one frame
func (g *Game) Step(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	g.updateFPS(deltaTime)

	if g.session.State != StatePlaying {
		if g.session.State == StateGameOver && !g.gameOverSent {
			g.emitUI()
		}
		return
	}

	if deltaTime > g.config.Loop.MaxDelta {
		deltaTime = g.config.Loop.MaxDelta
	}
	g.now += deltaTime
	g.frame++

	intent := g.input.MovementIntent()
	yaw := g.input.ViewYaw()
	pitch := g.input.ViewPitch()
	fire := g.input.PrimaryActionPressed()
	reload := false
	if r, ok := g.input.(Reloader); ok {
		reload = r.ReloadPressed()
	}

	g.player.Update(deltaTime, intent, yaw)
	g.player.UpdateTimers(deltaTime)
	if reload {
		g.player.Reload()
	}
	if fire {
		g.player.Shoot(g.now, yaw, pitch)
	}

	for _, enemy := range g.enemies {
		enemy.Update(g.now, deltaTime, g.player)
	}

	g.player.Weapon.UpdateProjectiles(g.now, deltaTime, g.enemies)
	g.removeDeadEnemies()

	g.updatePowerups(deltaTime)
	g.updateRounds(deltaTime)

	g.syncTransforms()
	g.emitUI()
	g.snapshot = g.buildSnapshot()
}

// updateFPS measures frame rate and starts a profile capture on drops
func (g *Game) updateFPS(deltaTime float64) {
	fps, updated := g.fps.Tick(deltaTime)
	if !updated {
		return
	}
	g.ui.OnFPSChanged(fps)

	if g.profiler == nil || fps >= g.config.Loop.ProfileBelowFPS {
		return
	}
	if time.Since(g.lastFPSDropTime) < g.fpsDropCooldown {
		return
	}
	g.lastFPSDropTime = time.Now()

	reason := fmt.Sprintf("fps%.0f-enemies%d-projectiles%d", fps, len(g.enemies), g.projectileCount())
	log.Warn().Float64("fps", fps).Msg("FPS drop detected, saving performance profile")
	if err := g.profiler.CaptureProfile(reason); err != nil {
		log.Debug().Err(err).Msg("profile capture skipped")
	}
}

func (g *Game) projectileCount() int {
	if g.player == nil {
		return 0
	}
	return len(g.player.Weapon.Projectiles)
}

// spawnRound spawns the fixed enemy count for the current mode
func (g *Game) spawnRound() {
	count := g.config.Rounds.Enemies
	if g.session.Mode == ModeDuel {
		count = g.config.Rounds.DuelEnemies
	}
	if count == 0 {
		return
	}

	g.session.Round++
	for i := 0; i < count; i++ {
		g.spawnEnemy()
	}

	log.Info().
		Int("round", g.session.Round).
		Int("enemies", len(g.enemies)).
		Msg("round started")
}

// spawnEnemy places an enemy away from the player. A failing visual skips
// the enemy.
func (g *Game) spawnEnemy() {
	extent := g.config.Arena.SpawnExtent
	var position mgl64.Vec3
	for attempt := 0; attempt < 10; attempt++ {
		position = mgl64.Vec3{
			g.rng.Float64()*2*extent - extent,
			g.config.Enemy.SpawnY,
			g.rng.Float64()*2*extent - extent,
		}
		if g.player == nil || position.Sub(g.player.Pos).Len() > g.config.Enemy.DetectionRange {
			break
		}
	}

	handle, err := g.scene.CreateProxy(EntityKindEnemy, ProxyParams{
		Position: position,
		Size:     g.config.Enemy.Size,
	})
	if err != nil {
		log.Error().Err(err).Msg("could not create enemy visual, skipping enemy")
		return
	}

	g.nextEnemyID++
	waypoints := GeneratePatrolRoute(g.rng, g.config.Enemy.Patrol, position.Y())
	enemy := NewEnemy(g.nextEnemyID, position, waypoints, g.config.Enemy, g.session)
	enemy.Handle = handle
	g.enemies = append(g.enemies, enemy)
}

func (g *Game) removeDeadEnemies() {
	live := g.enemies[:0]
	for _, enemy := range g.enemies {
		if enemy.Alive() {
			live = append(live, enemy)
			continue
		}
		g.removeProxy(enemy.Handle)
	}
	for i := len(live); i < len(g.enemies); i++ {
		g.enemies[i] = nil
	}
	g.enemies = live
}

// updateRounds starts the next round once the arena has been cleared
func (g *Game) updateRounds(deltaTime float64) {
	if len(g.enemies) > 0 {
		g.roundCooldown = 0
		return
	}

	g.roundCooldown += deltaTime
	if g.roundCooldown >= g.config.Rounds.Cooldown {
		g.roundCooldown = 0
		g.spawnRound()
	}
}

func (g *Game) updatePowerups(deltaTime float64) {
	cfg := g.config.Powerups

	if cfg.SpawnInterval > 0 {
		g.powerupTimer += deltaTime
		if g.powerupTimer >= cfg.SpawnInterval {
			g.powerupTimer -= cfg.SpawnInterval
			if len(g.powerups) < cfg.MaxActive {
				g.spawnPowerup(AllPowerups[g.rng.Intn(len(AllPowerups))])
			}
		}
	}

	playerBox := g.player.Bounds()
	live := g.powerups[:0]
	for _, p := range g.powerups {
		p.Animate(g.now, deltaTime, cfg)

		if g.player.Alive() && playerBox.Intersects(p.Bounds(cfg.Size)) {
			p.PickedUp = true
			if err := g.player.ApplyPowerup(p.Type); err != nil {
				log.Warn().Err(err).Msg("could not apply powerup")
			}
			log.Debug().Stringer("type", p.Type).Msg("powerup collected")
			g.removeProxy(p.Handle)
			continue
		}

		live = append(live, p)
	}
	for i := len(live); i < len(g.powerups); i++ {
		g.powerups[i] = nil
	}
	g.powerups = live
}

// spawnPowerup drops a pickup at a random spot
func (g *Game) spawnPowerup(t PowerupType) {
	extent := g.config.Arena.SpawnExtent
	position := mgl64.Vec3{
		g.rng.Float64()*2*extent - extent,
		g.config.Powerups.SpawnY,
		g.rng.Float64()*2*extent - extent,
	}

	p, err := NewPowerup(t, position, g.rng.Float64()*2*math.Pi)
	if err != nil {
		log.Warn().Err(err).Msg("could not create powerup")
		return
	}

	handle, err := g.scene.CreateProxy(EntityKindPowerup, ProxyParams{
		Position: position,
		Size:     g.config.Powerups.Size,
		Variant:  t.String(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not create powerup visual, skipping powerup")
		return
	}
	p.Handle = handle

	g.powerups = append(g.powerups, p)
}

func (g *Game) syncTransforms() {
	if g.player.Handle != 0 {
		g.scene.SetTransform(g.player.Handle, g.player.Pos, g.player.Yaw)
	}
	for _, enemy := range g.enemies {
		if enemy.Handle != 0 {
			g.scene.SetTransform(enemy.Handle, enemy.Pos, enemy.Yaw)
		}
	}
	for _, p := range g.powerups {
		if p.Handle != 0 {
			g.scene.SetTransform(p.Handle, p.Pos, p.Yaw)
		}
	}
}

// emitUI reports every HUD value that changed since the last frame
func (g *Game) emitUI() {
	health, maxHealth := g.player.Health, g.player.MaxHealth
	ammo, maxAmmo := g.player.Weapon.Ammo, g.player.Weapon.Config.MaxAmmo
	score := g.session.Score

	if !g.hud.valid || health != g.hud.health || maxHealth != g.hud.maxHealth {
		g.ui.OnHealthChanged(health, maxHealth)
	}
	if !g.hud.valid || ammo != g.hud.ammo || maxAmmo != g.hud.maxAmmo {
		g.ui.OnAmmoChanged(ammo, maxAmmo)
	}
	if !g.hud.valid || score != g.hud.score {
		g.ui.OnScoreChanged(score)
	}

	g.hud = hudState{
		valid:     true,
		health:    health,
		maxHealth: maxHealth,
		ammo:      ammo,
		maxAmmo:   maxAmmo,
		score:     score,
	}

	if g.session.State == StateGameOver && !g.gameOverSent {
		g.gameOverSent = true
		g.ui.OnGameOver(score)
	}
}

func (g *Game) removeProxy(handle ProxyHandle) {
	if handle != 0 {
		g.scene.RemoveProxy(handle)
	}
}

// teardown removes every visual the current match owns
func (g *Game) teardown() {
	if g.player != nil {
		g.player.Weapon.Clear()
		g.removeProxy(g.player.Handle)
		g.player = nil
	}
	for _, enemy := range g.enemies {
		g.removeProxy(enemy.Handle)
	}
	for _, p := range g.powerups {
		g.removeProxy(p.Handle)
	}
	g.enemies = nil
	g.powerups = nil
}

// Stop ends the match and returns to the menu
func (g *Game) Stop() {
	g.teardown()
	g.session.State = StateMenu
}

func (g *Game) buildSnapshot() Snapshot {
	s := Snapshot{
		MatchID: g.session.MatchID.String(),
		Frame:   g.frame,
		Time:    g.now,
		State:   g.session.State.String(),
		Mode:    string(g.session.Mode),
		Score:   g.session.Score,
		Round:   g.session.Round,
		FPS:     g.fps.FPS(),
	}

	if p := g.player; p != nil {
		timers := make(map[string]float64, len(p.Powerups))
		for t, remaining := range p.Powerups {
			if remaining > 0 {
				timers[t.String()] = remaining
			}
		}
		s.Player = PlayerSnapshot{
			Position:  p.Pos,
			Velocity:  p.Velocity,
			Yaw:       p.Yaw,
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
			Grounded:  p.Grounded,
			Weapon:    p.Weapon.Config.Type.String(),
			Ammo:      p.Weapon.Ammo,
			MaxAmmo:   p.Weapon.Config.MaxAmmo,
			Reloading: p.Weapon.Reloading,
			Powerups:  timers,
		}
		s.Projectiles = make([]mgl64.Vec3, 0, len(p.Weapon.Projectiles))
		for _, proj := range p.Weapon.Projectiles {
			s.Projectiles = append(s.Projectiles, proj.Position)
		}
	}

	s.Enemies = make([]EnemySnapshot, 0, len(g.enemies))
	for _, e := range g.enemies {
		s.Enemies = append(s.Enemies, EnemySnapshot{
			ID:       e.ID,
			Position: e.Pos,
			Velocity: e.Velocity,
			Yaw:      e.Yaw,
			Health:   e.Health,
			State:    e.State.String(),
		})
	}

	s.Powerups = make([]PowerupSnapshot, 0, len(g.powerups))
	for _, p := range g.powerups {
		s.Powerups = append(s.Powerups, PowerupSnapshot{Type: p.Type.String(), Position: p.Pos})
	}

	return s
}

// Snapshot returns the state committed by the last frame
func (g *Game) Snapshot() Snapshot {
	return g.snapshot
}

// Session returns a copy of the match bookkeeping
func (g *Game) Session() Session {
	return *g.session
}

// Player returns the player, or nil before the first match
func (g *Game) Player() *Player {
	return g.player
}

// Enemies returns the live enemies
func (g *Game) Enemies() []*Enemy {
	return g.enemies
}

// Powerups returns the pickups lying in the arena
func (g *Game) Powerups() []*Powerup {
	return g.powerups
}

// Now returns the simulation time in seconds
func (g *Game) Now() float64 {
	return g.now
}

// Config returns the configuration the game was built with
func (g *Game) Config() Config {
	return g.config
}
