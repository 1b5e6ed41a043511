package game

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeScene struct {
	next       ProxyHandle
	live       map[ProxyHandle]EntityKind
	positions  map[ProxyHandle]mgl64.Vec3
	failKinds  map[EntityKind]bool
	removed    int
	transforms int
}

func newFakeScene() *fakeScene {
	return &fakeScene{
		live:      make(map[ProxyHandle]EntityKind),
		positions: make(map[ProxyHandle]mgl64.Vec3),
		failKinds: make(map[EntityKind]bool),
	}
}

var errNoVisual = errors.New("no visual available")

func (s *fakeScene) CreateProxy(kind EntityKind, params ProxyParams) (ProxyHandle, error) {
	if s.failKinds[kind] {
		return 0, fmt.Errorf("%s: %w", kind, errNoVisual)
	}
	s.next++
	s.live[s.next] = kind
	s.positions[s.next] = params.Position
	return s.next, nil
}

func (s *fakeScene) SetTransform(handle ProxyHandle, position mgl64.Vec3, yaw float64) {
	s.positions[handle] = position
	s.transforms++
}

func (s *fakeScene) RemoveProxy(handle ProxyHandle) {
	delete(s.live, handle)
	delete(s.positions, handle)
	s.removed++
}

func (s *fakeScene) Intersects(a, b ProxyHandle) bool {
	return false
}

func (s *fakeScene) count(kind EntityKind) int {
	n := 0
	for _, k := range s.live {
		if k == kind {
			n++
		}
	}
	return n
}

type fakeInput struct {
	intent Intent
	yaw    float64
	pitch  float64
	fire   bool
	reload bool
}

func (i *fakeInput) MovementIntent() Intent     { return i.intent }
func (i *fakeInput) ViewYaw() float64           { return i.yaw }
func (i *fakeInput) ViewPitch() float64         { return i.pitch }
func (i *fakeInput) PrimaryActionPressed() bool { return i.fire }
func (i *fakeInput) ReloadPressed() bool        { return i.reload }

type fakeAudio struct {
	played []string
	err    error
}

func (a *fakeAudio) Play(name string) error {
	a.played = append(a.played, name)
	return a.err
}

type recordingUI struct {
	health    []float64
	ammo      []int
	score     []int
	gameOver  []int
	fps       []float64
	maxHealth float64
	maxAmmo   int
}

func (u *recordingUI) OnHealthChanged(current, max float64) {
	u.health = append(u.health, current)
	u.maxHealth = max
}

func (u *recordingUI) OnAmmoChanged(current, max int) {
	u.ammo = append(u.ammo, current)
	u.maxAmmo = max
}

func (u *recordingUI) OnScoreChanged(score int) { u.score = append(u.score, score) }
func (u *recordingUI) OnGameOver(score int)     { u.gameOver = append(u.gameOver, score) }
func (u *recordingUI) OnFPSChanged(fps float64) { u.fps = append(u.fps, fps) }

type countingReporter struct {
	score  int
	deaths int
}

func (r *countingReporter) AddScore(points int) { r.score += points }
func (r *countingReporter) PlayerDied()         { r.deaths++ }

type fakeTarget struct {
	pos    mgl64.Vec3
	damage []float64
}

func (t *fakeTarget) Position() mgl64.Vec3      { return t.pos }
func (t *fakeTarget) TakeDamage(amount float64) { t.damage = append(t.damage, amount) }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	return cfg
}
