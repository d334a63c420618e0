package rimage

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func checkerboard() *Image {
	img := NewImage(2, 2)
	img.SetXY(0, 0, NewColor(0, 0, 0))
	img.SetXY(1, 0, NewColor(100, 0, 0))
	img.SetXY(0, 1, NewColor(0, 100, 0))
	img.SetXY(1, 1, NewColor(100, 100, 200))
	return img
}

func TestNearestNeighborColorTruncates(t *testing.T) {
	img := checkerboard()

	c, ok := NearestNeighborColor(r2.Point{X: 0.99, Y: 0.2}, img)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, c, test.ShouldResemble, NewColor(0, 0, 0))

	c, ok = NearestNeighborColor(r2.Point{X: 1.5, Y: 1.999}, img)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, c, test.ShouldResemble, NewColor(100, 100, 200))

	for _, p := range []r2.Point{
		{X: -0.0001, Y: 0},
		{X: 0, Y: -1},
		{X: 2, Y: 0},
		{X: 0, Y: 2},
		{X: math.NaN(), Y: 0},
		{X: 0, Y: math.Inf(1)},
		{X: math.Inf(-1), Y: 0},
	} {
		_, ok := NearestNeighborColor(p, img)
		test.That(t, ok, test.ShouldBeFalse)
	}
}

func TestBilinearColor(t *testing.T) {
	img := checkerboard()

	c, ok := BilinearColor(r2.Point{X: 0, Y: 0}, img)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, c, test.ShouldResemble, NewColor(0, 0, 0))

	c, ok = BilinearColor(r2.Point{X: 0.5, Y: 0}, img)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, c, test.ShouldResemble, NewColor(50, 0, 0))

	c, ok = BilinearColor(r2.Point{X: 0.5, Y: 0.5}, img)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, c, test.ShouldResemble, NewColor(50, 50, 50))

	// the last column has no right neighbor, so it is its own neighbor
	c, ok = BilinearColor(r2.Point{X: 1.5, Y: 1}, img)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, c, test.ShouldResemble, NewColor(100, 100, 200))

	_, ok = BilinearColor(r2.Point{X: 2, Y: 1}, img)
	test.That(t, ok, test.ShouldBeFalse)
}
