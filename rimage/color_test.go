package rimage

import (
	"image/color"
	"testing"

	"go.viam.com/test"
)

func TestColorHex(t *testing.T) {
	c, err := NewColorFromHex("#ff8000")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, NewColor(255, 128, 0))
	test.That(t, c.Hex(), test.ShouldEqual, "#ff8000")

	test.That(t, NewColorFromHexOrPanic("#000000"), test.ShouldResemble, Black)

	_, err = NewColorFromHex("orange")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, func() { NewColorFromHexOrPanic("nope") }, test.ShouldPanic)
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Red.RGBA()
	test.That(t, []uint32{r, g, b, a}, test.ShouldResemble, []uint32{0xffff, 0, 0, 0xffff})

	r, g, b, a = NewColorWithAlpha(255, 255, 255, 0).RGBA()
	test.That(t, []uint32{r, g, b, a}, test.ShouldResemble, []uint32{0, 0, 0, 0})
}

func TestNewColorFromColor(t *testing.T) {
	test.That(t, NewColorFromColor(Blue), test.ShouldResemble, Blue)
	test.That(t, NewColorFromColor(color.NRGBA{10, 20, 30, 40}), test.ShouldResemble, NewColorWithAlpha(10, 20, 30, 40))
	test.That(t, NewColorFromColor(color.Gray{200}), test.ShouldResemble, NewColor(200, 200, 200))
	test.That(t, NewColorFromColor(color.RGBA64{0xffff, 0, 0, 0xffff}), test.ShouldResemble, Red)

	converted := ColorModel.Convert(color.RGBA{0, 255, 0, 255})
	test.That(t, converted, test.ShouldResemble, Green)
}
