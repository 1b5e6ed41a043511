package frontend

import (
	"image"
	"image/png"
	"os"

	"arenashooter/frontend/view"
	"arenashooter/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
)

const spriteSize = 48

// loadSprites rasterizes the powerup icons. Missing icons fall back to
// plain shapes when drawing.
func loadSprites() map[string]*ebiten.Image {
	sprites := make(map[string]*ebiten.Image, len(game.AllPowerups))
	for _, t := range game.AllPowerups {
		name := t.String()
		data, err := view.Icon(name)
		if err != nil {
			log.Warn().Err(err).Msg("missing sprite")
			continue
		}

		img, err := view.RasterizeSVG(data, spriteSize, spriteSize)
		if err != nil {
			log.Warn().Err(err).Str("sprite", name).Msg("could not rasterize sprite")
			continue
		}
		sprites[name] = ebiten.NewImageFromImage(img)

		// Optionally save PNG for debugging
		if os.Getenv("DEBUG_SPRITES") == "1" {
			saveDebugPNG(img, "debug_"+name+".png")
		}
	}
	return sprites
}

// saveDebugPNG saves a PNG image for debugging purposes
func saveDebugPNG(img image.Image, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to create debug PNG")
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Error().Err(err).Msg("failed to encode debug PNG")
	}
}
