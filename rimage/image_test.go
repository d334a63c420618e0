package rimage

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"go.viam.com/test"
)

func TestNewImage(t *testing.T) {
	img := NewImage(3, 2)
	test.That(t, img.Width(), test.ShouldEqual, 3)
	test.That(t, img.Height(), test.ShouldEqual, 2)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 3, 2))
	test.That(t, img.GetXY(2, 1), test.ShouldResemble, Transparent)

	img.Fill(Gray)
	img.SetXY(2, 1, Red)
	img.Set(image.Point{0, 1}, Blue)
	test.That(t, img.GetXY(2, 1), test.ShouldResemble, Red)
	test.That(t, img.Get(image.Point{0, 1}), test.ShouldResemble, Blue)
	test.That(t, img.At(1, 0), test.ShouldResemble, Gray)
	test.That(t, img.At(3, 0), test.ShouldResemble, Transparent)

	test.That(t, img.In(0, 0), test.ShouldBeTrue)
	test.That(t, img.In(3, 1), test.ShouldBeFalse)
	test.That(t, img.In(-1, 1), test.ShouldBeFalse)
}

func TestNewImageFromStdImage(t *testing.T) {
	std := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	std.Set(10, 20, color.NRGBA{1, 2, 3, 255})
	std.Set(12, 21, color.NRGBA{4, 5, 6, 7})

	img := NewImageFromStdImage(std)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 3, 2))
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, NewColor(1, 2, 3))
	test.That(t, img.GetXY(2, 1), test.ShouldResemble, NewColorWithAlpha(4, 5, 6, 7))

	clone := NewImageFromStdImage(img)
	test.That(t, clone.Equal(img), test.ShouldBeTrue)
	clone.SetXY(0, 0, White)
	test.That(t, clone.Equal(img), test.ShouldBeFalse)
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, NewColor(1, 2, 3))
}

func TestEqualDifferentSizes(t *testing.T) {
	test.That(t, NewImage(2, 3).Equal(NewImage(3, 2)), test.ShouldBeFalse)
	test.That(t, NewImage(2, 3).Equal(NewImage(2, 3)), test.ShouldBeTrue)
}

func TestCheckDimensions(t *testing.T) {
	test.That(t, CheckDimensions(NewImage(1, 1)), test.ShouldBeNil)
	for _, img := range []*Image{nil, NewImage(0, 0), NewImage(0, 4), NewImage(4, 0)} {
		err := CheckDimensions(img)
		test.That(t, errors.Is(err, ErrEmptyImage), test.ShouldBeTrue)
	}
}
