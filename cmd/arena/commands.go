package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"arenashooter/config"
	"arenashooter/feed"
	"arenashooter/frontend"
	"arenashooter/game"
	"arenashooter/headless"
	"arenashooter/script"

	"github.com/rs/zerolog/log"
)

func serveFeed(ctx context.Context, hub *feed.Hub, addr string) {
	if addr == "" {
		return
	}
	server := feed.NewServer(hub)
	go func() {
		if err := server.Serve(ctx, addr); err != nil {
			log.Error().Err(err).Msg("feed server stopped")
		}
	}()
}

func playCommand(configs []string, feedAddr string) error {
	cfg, err := config.Process(configs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	options := frontend.Options{}
	if feedAddr != "" {
		hub := feed.NewHub()
		serveFeed(ctx, hub, feedAddr)
		options.UI = feed.NewUI(hub)
		options.Publisher = hub
	}

	return frontend.Run(*cfg, options)
}

func runCommand(configs []string) error {
	cfg, err := config.Process(configs)
	if err != nil {
		return err
	}
	if CLI.Run.Seed != 0 {
		cfg.Seed = CLI.Run.Seed
	}

	mode, err := game.ParseMode(CLI.Run.Mode)
	if err != nil {
		return err
	}

	var (
		input    game.Input
		observer headless.Observer
	)
	if CLI.Run.Script != "" {
		code, err := os.ReadFile(CLI.Run.Script)
		if err != nil {
			return err
		}
		in, err := script.NewInput(CLI.Run.Script, string(code))
		if err != nil {
			return err
		}
		input, observer = in, in
	} else {
		autopilot := headless.NewAutopilot()
		autopilot.EyeHeight = cfg.Player.EyeHeight
		autopilot.ProjectileSpeed = cfg.Projectile.Speed
		input, observer = autopilot, autopilot
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := feed.NewHub()
	serveFeed(ctx, hub, CLI.Run.Feed)

	g, err := game.New(*cfg, game.Collaborators{
		Scene: headless.NewScene(),
		Input: input,
		UI:    feed.NewUI(hub),
	})
	if err != nil {
		return err
	}

	summary, err := headless.NewRunner(g, headless.Options{
		Mode:      mode,
		Duration:  CLI.Run.Duration,
		Fast:      CLI.Run.Fast,
		Observer:  observer,
		Publisher: hub,
	}).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Printf("match %s: score %d, kills %d, round %d, %.1fs\n",
		summary.MatchID, summary.Score, summary.Kills, summary.Round, summary.SimTime)
	return nil
}
