package view

import (
	"bytes"
	"embed"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/*.svg
var assets embed.FS

// Icon returns the embedded SVG for a powerup variant
func Icon(variant string) ([]byte, error) {
	data, err := assets.ReadFile("assets/" + variant + ".svg")
	if err != nil {
		return nil, fmt.Errorf("no icon for %q: %w", variant, err)
	}
	return data, nil
}

// RasterizeSVG renders SVG data into an RGBA image of the given size
func RasterizeSVG(svgData []byte, width, height int) (*image.RGBA, error) {
	// Parse SVG
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	// Set the target size
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Create scanner and rasterize
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	icon.Draw(raster, 1.0)

	return img, nil
}
