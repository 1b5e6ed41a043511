// Package headless runs matches without a window.
package headless

import (
	"context"
	"time"

	"arenashooter/game"

	"github.com/rs/zerolog/log"
)

// Observer is an input that needs to see the last committed frame before
// the next one is simulated.
type Observer interface {
	Observe(state game.Snapshot)
}

// Publisher receives every committed frame
type Publisher interface {
	PublishSnapshot(snapshot game.Snapshot) error
}

type Options struct {
	Mode game.Mode

	// Duration caps simulated time. Zero runs until game over or cancel.
	Duration time.Duration

	// Fast steps without waiting for the wall clock
	Fast bool

	Observer  Observer
	Publisher Publisher
}

// Summary describes how a run ended
type Summary struct {
	MatchID  string
	Mode     game.Mode
	Score    int
	Round    int
	Kills    int
	Frames   uint64
	SimTime  float64
	GameOver bool
}

type Runner struct {
	game    *game.Game
	options Options
}

func NewRunner(g *game.Game, options Options) *Runner {
	return &Runner{
		game:    g,
		options: options,
	}
}

func (r *Runner) summary() Summary {
	session := r.game.Session()
	snapshot := r.game.Snapshot()
	return Summary{
		MatchID:  session.MatchID.String(),
		Mode:     session.Mode,
		Score:    session.Score,
		Round:    session.Round,
		Kills:    session.Kills,
		Frames:   snapshot.Frame,
		SimTime:  r.game.Now(),
		GameOver: session.State == game.StateGameOver,
	}
}

func (r *Runner) publish() {
	if r.options.Publisher == nil {
		return
	}
	if err := r.options.Publisher.PublishSnapshot(r.game.Snapshot()); err != nil {
		log.Error().Err(err).Msg("could not publish snapshot")
	}
}

// Run starts a match and steps it at the configured tick rate until the
// player dies, the duration elapses, or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if err := r.game.StartGame(r.options.Mode); err != nil {
		return Summary{}, err
	}
	r.publish()

	tickRate := r.game.Config().Loop.TickRate
	interval := time.Second / time.Duration(tickRate)
	deltaTime := interval.Seconds()
	limit := r.options.Duration.Seconds()

	var ticks <-chan time.Time
	if !r.options.Fast {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	logger := log.With().Str("match", r.game.Session().MatchID.String()).Logger()
	logger.Info().Int("tickRate", tickRate).Bool("fast", r.options.Fast).Msg("headless run started")

	for {
		if ticks != nil {
			select {
			case <-ticks:
			case <-ctx.Done():
				summary := r.summary()
				logSummary(summary)
				return summary, ctx.Err()
			}
		} else if err := ctx.Err(); err != nil {
			summary := r.summary()
			logSummary(summary)
			return summary, err
		}

		if r.options.Observer != nil {
			r.options.Observer.Observe(r.game.Snapshot())
		}

		r.game.Step(deltaTime)
		r.publish()

		// The last Step before game over still commits its frame, so the
		// state check comes after publishing.
		if r.game.Session().State != game.StatePlaying {
			break
		}
		if limit > 0 && r.game.Now() >= limit-deltaTime/2 {
			break
		}
	}

	summary := r.summary()
	logSummary(summary)
	return summary, nil
}

func logSummary(s Summary) {
	log.Info().
		Str("match", s.MatchID).
		Str("mode", string(s.Mode)).
		Int("score", s.Score).
		Int("round", s.Round).
		Int("kills", s.Kills).
		Uint64("frames", s.Frames).
		Float64("simTime", s.SimTime).
		Bool("gameOver", s.GameOver).
		Msg("headless run finished")
}
