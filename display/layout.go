// Package display presents a distorted texture side by side in a window.
package display

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Placements returns the two rectangles a panel-sized texture is drawn into. Both start
// from the panel centered in the window; the first is shifted left by half the panel
// width and the second right by the same amount, so together they span the middle.
func Placements(window, panel image.Point) [2]image.Rectangle {
	centered := image.Rectangle{Max: panel}.Add(window.Sub(panel).Div(2))
	shift := image.Pt(panel.X/2, 0)
	return [2]image.Rectangle{
		centered.Sub(shift),
		centered.Add(shift),
	}
}

// Compose renders tex scaled into each placement over a bg colored canvas of the given size.
// Placements partly outside the canvas are clipped; empty ones are skipped.
func Compose(tex image.Image, window image.Point, placements []image.Rectangle, bg color.Color) *image.NRGBA {
	canvas := imaging.New(window.X, window.Y, bg)
	if tex == nil || tex.Bounds().Empty() {
		return canvas
	}
	for _, r := range placements {
		if r.Empty() || !r.Overlaps(canvas.Bounds()) {
			continue
		}
		scaled := imaging.Resize(tex, r.Dx(), r.Dy(), imaging.NearestNeighbor)
		draw.Draw(canvas, r, scaled, image.Point{}, draw.Over)
	}
	return canvas
}
