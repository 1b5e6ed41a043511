package game

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrMissingScene = errors.New("scene collaborator is required")
	ErrMissingInput = errors.New("input collaborator is required")
)

// Scene owns every visual. The simulation only holds handles, which must
// never be zero.
type Scene interface {
	CreateProxy(kind EntityKind, params ProxyParams) (ProxyHandle, error)
	SetTransform(handle ProxyHandle, position mgl64.Vec3, yaw float64)
	RemoveProxy(handle ProxyHandle)

	// Intersects tests the visuals of two handles against each other.
	Intersects(a, b ProxyHandle) bool
}

// Intent is the per-frame movement request
type Intent struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
	Jump     bool `json:"jump"`
}

// Input provides the player's controls for the current frame
type Input interface {
	MovementIntent() Intent
	ViewYaw() float64
	ViewPitch() float64

	// PrimaryActionPressed reports a fire request for this frame
	PrimaryActionPressed() bool
}

// Reloader is implemented by inputs that can also request a reload.
type Reloader interface {
	ReloadPressed() bool
}

// Audio plays named sounds. Failures are never fatal.
type Audio interface {
	Play(name string) error
}

// UI receives HUD events after each frame
type UI interface {
	OnHealthChanged(current, max float64)
	OnAmmoChanged(current, max int)
	OnScoreChanged(score int)
	OnGameOver(score int)
	OnFPSChanged(fps float64)
}

// Sound names played by the simulation.
const (
	SoundShoot   = "shoot"
	SoundReload  = "reload"
	SoundPowerup = "powerup"
)

// Collaborators bundles everything the simulation talks to.
type Collaborators struct {
	Scene Scene
	Input Input
	Audio Audio
	UI    UI
}

type nopAudio struct{}

func (nopAudio) Play(string) error { return nil }

type nopUI struct{}

func (nopUI) OnHealthChanged(float64, float64) {}
func (nopUI) OnAmmoChanged(int, int)           {}
func (nopUI) OnScoreChanged(int)               {}
func (nopUI) OnGameOver(int)                   {}
func (nopUI) OnFPSChanged(float64)             {}

// MultiUI fans events out to several UIs
type MultiUI []UI

func (m MultiUI) OnHealthChanged(current, max float64) {
	for _, ui := range m {
		ui.OnHealthChanged(current, max)
	}
}

func (m MultiUI) OnAmmoChanged(current, max int) {
	for _, ui := range m {
		ui.OnAmmoChanged(current, max)
	}
}

func (m MultiUI) OnScoreChanged(score int) {
	for _, ui := range m {
		ui.OnScoreChanged(score)
	}
}

func (m MultiUI) OnGameOver(score int) {
	for _, ui := range m {
		ui.OnGameOver(score)
	}
}

func (m MultiUI) OnFPSChanged(fps float64) {
	for _, ui := range m {
		ui.OnFPSChanged(fps)
	}
}
