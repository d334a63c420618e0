package rimage

import (
	"math"

	"github.com/golang/geo/r2"
)

// NearestNeighborColor samples img at the truncated coordinates of p. It reports false
// when the truncated point is not a pixel of img.
func NearestNeighborColor(p r2.Point, img *Image) (Color, bool) {
	x, y, ok := truncate(p, img)
	if !ok {
		return Color{}, false
	}
	return img.GetXY(x, y), true
}

// BilinearColor blends the four pixels around p. Neighbors past the last row or column
// are clamped to the edge. It reports false under the same rule as NearestNeighborColor.
func BilinearColor(p r2.Point, img *Image) (Color, bool) {
	x0, y0, ok := truncate(p, img)
	if !ok {
		return Color{}, false
	}
	x1 := min(x0+1, img.Width()-1)
	y1 := min(y0+1, img.Height()-1)
	fx := p.X - float64(x0)
	fy := p.Y - float64(y0)

	c00 := img.GetXY(x0, y0)
	c10 := img.GetXY(x1, y0)
	c01 := img.GetXY(x0, y1)
	c11 := img.GetXY(x1, y1)

	blend := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-fx) + float64(b)*fx
		bottom := float64(c)*(1-fx) + float64(d)*fx
		return uint8(math.Round(top*(1-fy) + bottom*fy))
	}
	return Color{
		R: blend(c00.R, c10.R, c01.R, c11.R),
		G: blend(c00.G, c10.G, c01.G, c11.G),
		B: blend(c00.B, c10.B, c01.B, c11.B),
		A: blend(c00.A, c10.A, c01.A, c11.A),
	}, true
}

// truncate rejects NaN and infinite coordinates as well as anything outside [0, w) x [0, h).
func truncate(p r2.Point, img *Image) (int, int, bool) {
	if !(p.X >= 0 && p.X < float64(img.Width()) && p.Y >= 0 && p.Y < float64(img.Height())) {
		return 0, 0, false
	}
	return int(p.X), int(p.Y), true
}
