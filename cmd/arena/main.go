package main

import (
	"fmt"
	"os"
	"time"

	"arenashooter/config"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Play struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files layered over the defaults." type:"file"`
		Feed    string   `help:"Serve the spectator feed on this address, e.g. :7600."`
	} `cmd:"" help:"Open a window and play."`

	Run struct {
		Configs  []string      `arg:"" optional:"" name:"configs" help:"Configuration files layered over the defaults." type:"file"`
		Mode     string        `help:"Game mode." enum:"solo,1v1" default:"solo"`
		Duration time.Duration `help:"Stop after this much simulated time. Zero runs until game over." default:"0s"`
		Fast     bool          `help:"Step as fast as possible instead of at the tick rate."`
		Script   string        `help:"JavaScript file defining decide(state) to drive the player." type:"file"`
		Seed     int64         `help:"Override the configured random seed."`
		Feed     string        `help:"Serve the spectator feed on this address, e.g. :7600."`
	} `cmd:"" help:"Simulate a match without a window."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) == 1 {
		err := playCommand([]string{}, "")
		if err != nil {
			writeError(err)
		}
		return
	}

	ctx := kong.Parse(&CLI,
		kong.Name("arena"),
		kong.Description("an arena first-person shooter"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	var err error
	switch ctx.Command() {
	case "play", "play <configs>":
		err = playCommand(CLI.Play.Configs, CLI.Play.Feed)
	case "run", "run <configs>":
		err = runCommand(CLI.Run.Configs)
	case "config":
		os.Stdout.Write(config.DEFAULT)
	}
	if err != nil {
		writeError(err)
	}
}
