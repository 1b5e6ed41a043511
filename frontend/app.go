// Package frontend runs the simulation in a window with ebiten.
package frontend

import (
	"errors"
	"image/color"

	"arenashooter/frontend/view"
	"arenashooter/game"
	"arenashooter/headless"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"
)

const windowedSizeRatio = 0.9

var colorBackground = color.RGBA{16, 16, 24, 255}

type Options struct {
	// UI also receives HUD events, e.g. a feed
	UI game.UI
	// Publisher receives every committed frame
	Publisher headless.Publisher
}

// App adapts the simulation to ebiten's Update/Draw loop
type App struct {
	game   *game.Game
	config game.Config
	scene  *Scene
	input  *Input
	hud    *HUD
	camera *view.Camera
	clock  *game.FrameClock

	publisher    headless.Publisher
	prevAltEnter bool
	width        int
	height       int
}

func NewApp(config game.Config, options Options) (*App, error) {
	app := &App{
		config:    config,
		scene:     NewScene(),
		input:     NewInput(),
		hud:       &HUD{},
		clock:     game.NewFrameClock(config.Loop.MaxDelta),
		publisher: options.Publisher,
		width:     config.Screen.Width,
		height:    config.Screen.Height,
	}
	app.camera = view.NewCamera(float64(app.width), float64(app.height), config.Screen.Zoom)

	var ui game.UI = app.hud
	if options.UI != nil {
		ui = game.MultiUI{app.hud, options.UI}
	}

	g, err := game.New(config, game.Collaborators{
		Scene: app.scene,
		Input: app.input,
		Audio: NewAudio(),
		UI:    ui,
	})
	if err != nil {
		return nil, err
	}
	app.game = g

	return app, nil
}

func (a *App) start(mode game.Mode) {
	a.hud.Reset()
	if err := a.game.StartGame(mode); err != nil {
		log.Error().Err(err).Msg("could not start match")
		return
	}
	a.clock.Reset()
	a.input.Release()
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (a *App) handleInput() {
	// Handle Alt+Enter to toggle fullscreen
	altPressed := ebiten.IsKeyPressed(ebiten.KeyAlt)
	enterPressed := ebiten.IsKeyPressed(ebiten.KeyEnter)
	altEnterPressed := altPressed && enterPressed
	if altEnterPressed && !a.prevAltEnter {
		isCurrentlyFullscreen := ebiten.IsFullscreen()
		ebiten.SetFullscreen(!isCurrentlyFullscreen)
		if isCurrentlyFullscreen {
			monitorWidth, monitorHeight := ebiten.ScreenSizeInFullscreen()
			ebiten.SetWindowSize(int(float64(monitorWidth)*windowedSizeRatio), int(float64(monitorHeight)*windowedSizeRatio))
		}
	}
	a.prevAltEnter = altEnterPressed

	if a.game.Session().State == game.StatePlaying {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			a.game.Stop()
			a.input.Release()
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		return
	}

	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		a.start(game.ModeSolo)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		a.start(game.ModeDuel)
	}
}

func (a *App) Update() error {
	a.handleInput()

	if a.game.Session().State == game.StatePlaying {
		a.input.Poll()
	}

	a.game.Step(a.clock.Tick())

	if a.publisher != nil && a.game.Session().State != game.StateMenu {
		if err := a.publisher.PublishSnapshot(a.game.Snapshot()); err != nil {
			log.Error().Err(err).Msg("could not publish snapshot")
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	a.camera.Width = float64(a.width)
	a.camera.Height = float64(a.height)
	if player := a.game.Player(); player != nil {
		a.camera.Follow(player.Pos.X(), player.Pos.Z(), player.Yaw)
	}

	reloading := 0.0
	if a.game.Session().State != game.StateMenu {
		a.scene.Draw(screen, a.camera, a.config.Arena.Bound)
		if player := a.game.Player(); player != nil && player.Weapon.Reloading {
			reloading = player.Weapon.ReloadProgress()
		}
	}

	a.hud.Draw(screen, a.game.Session(), reloading)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed
func Run(config game.Config, options Options) error {
	app, err := NewApp(config, options)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(config.Screen.Width, config.Screen.Height)
	ebiten.SetWindowTitle("Arena")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(config.Loop.TickRate)

	err = ebiten.RunGame(app)
	app.game.Stop()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
