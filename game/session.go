package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// State is the lifecycle of a match
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Mode selects how a match is played
type Mode string

const (
	ModeSolo Mode = "solo"
	ModeDuel Mode = "1v1"
)

// ParseMode validates a mode name
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeSolo, "":
		return ModeSolo, nil
	case ModeDuel:
		return ModeDuel, nil
	default:
		return "", fmt.Errorf("unknown game mode %q", name)
	}
}

// Session is the per-match context handed to entities that report score
// or death.
type Session struct {
	MatchID uuid.UUID
	Mode    Mode
	State   State
	Score   int
	Round   int
	Kills   int
}

// NewSession returns a session waiting in the menu
func NewSession() *Session {
	return &Session{State: StateMenu, Mode: ModeSolo}
}

// Begin resets the session for a new match
func (s *Session) Begin(mode Mode) {
	*s = Session{
		MatchID: uuid.New(),
		Mode:    mode,
		State:   StatePlaying,
	}
	log.Info().
		Str("match", s.MatchID.String()).
		Str("mode", string(mode)).
		Msg("match started")
}

// AddScore credits a kill
func (s *Session) AddScore(points int) {
	if s.State != StatePlaying {
		return
	}
	s.Score += points
	s.Kills++
}

// PlayerDied ends the match
func (s *Session) PlayerDied() {
	if s.State != StatePlaying {
		return
	}
	s.State = StateGameOver
	log.Info().
		Str("match", s.MatchID.String()).
		Int("score", s.Score).
		Int("round", s.Round).
		Msg("game over")
}
