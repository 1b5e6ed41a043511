package feed

import (
	"arenashooter/game"

	"github.com/rs/zerolog/log"
)

// UI publishes HUD events to the hub.
type UI struct {
	hub *Hub
}

var _ game.UI = (*UI)(nil)

func NewUI(hub *Hub) *UI {
	return &UI{hub: hub}
}

func (u *UI) publish(msg any) {
	if err := u.hub.Publish(msg); err != nil {
		log.Error().Err(err).Msg("could not publish hud event")
	}
}

func (u *UI) OnHealthChanged(current, max float64) {
	u.publish(HealthMessage{Op: HealthOp, Current: current, Max: max})
}

func (u *UI) OnAmmoChanged(current, max int) {
	u.publish(AmmoMessage{Op: AmmoOp, Current: current, Max: max})
}

func (u *UI) OnScoreChanged(score int) {
	u.publish(ScoreMessage{Op: ScoreOp, Score: score})
}

func (u *UI) OnGameOver(score int) {
	u.publish(GameOverMessage{Op: GameOverOp, Score: score})
}

func (u *UI) OnFPSChanged(fps float64) {
	u.publish(FPSMessage{Op: FPSOp, FPS: fps})
}
