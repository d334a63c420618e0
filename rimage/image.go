// Package rimage holds the raster type used by the distortion mapper along with its
// samplers and the image codecs it reads from.
package rimage

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ErrEmptyImage is returned by CheckDimensions for nil or zero-sized rasters.
var ErrEmptyImage = errors.New("image has no pixels")

// Image is a row-major grid of Colors with its origin at (0, 0).
// Writes to distinct pixels may happen from different goroutines.
type Image struct {
	data          []Color
	width, height int
}

// NewImage returns a width x height image with every pixel set to Transparent.
func NewImage(width, height int) *Image {
	return &Image{
		data:   make([]Color, width*height),
		width:  width,
		height: height,
	}
}

// NewImageFromBounds returns an image sized to cover bounds.
func NewImageFromBounds(bounds image.Rectangle) *Image {
	return NewImage(bounds.Dx(), bounds.Dy())
}

// NewImageFromStdImage copies img into a new Image, shifting its bounds so they start at (0, 0).
func NewImageFromStdImage(img image.Image) *Image {
	if ri, ok := img.(*Image); ok {
		return ri.Clone()
	}
	bounds := img.Bounds()
	ret := NewImageFromBounds(bounds)
	for y := 0; y < ret.height; y++ {
		for x := 0; x < ret.width; x++ {
			ret.setXY(x, y, NewColorFromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return ret
}

// CheckDimensions returns ErrEmptyImage if img cannot be normalized by its width and height.
func CheckDimensions(img *Image) error {
	if img == nil {
		return errors.Wrap(ErrEmptyImage, "image is nil")
	}
	if img.width <= 0 || img.height <= 0 {
		return errors.Wrapf(ErrEmptyImage, "dimensions (%d,%d)", img.width, img.height)
	}
	return nil
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

// At implements image.Image. Points outside the image are Transparent.
func (i *Image) At(x, y int) color.Color {
	if !i.In(x, y) {
		return Transparent
	}
	return i.data[i.kxy(x, y)]
}

// In reports whether (x, y) is a pixel of the image.
func (i *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < i.width && y < i.height
}

func (i *Image) kxy(x, y int) int {
	return (y * i.width) + x
}

// Width returns the number of columns.
func (i *Image) Width() int {
	return i.width
}

// Height returns the number of rows.
func (i *Image) Height() int {
	return i.height
}

// Get returns the pixel at p; p must be In the image.
func (i *Image) Get(p image.Point) Color {
	return i.data[i.kxy(p.X, p.Y)]
}

// GetXY returns the pixel at (x, y); the point must be In the image.
func (i *Image) GetXY(x, y int) Color {
	return i.data[i.kxy(x, y)]
}

// Set writes c at p.
func (i *Image) Set(p image.Point, c Color) {
	i.setXY(p.X, p.Y, c)
}

// SetXY writes c at (x, y).
func (i *Image) SetXY(x, y int, c Color) {
	i.setXY(x, y, c)
}

func (i *Image) setXY(x, y int, c Color) {
	i.data[i.kxy(x, y)] = c
}

// Fill sets every pixel to c.
func (i *Image) Fill(c Color) {
	for k := range i.data {
		i.data[k] = c
	}
}

// Clone returns a deep copy.
func (i *Image) Clone() *Image {
	ret := &Image{
		data:   make([]Color, len(i.data)),
		width:  i.width,
		height: i.height,
	}
	copy(ret.data, i.data)
	return ret
}

// Equal reports whether both images have the same size and pixels.
func (i *Image) Equal(other *Image) bool {
	if i.width != other.width || i.height != other.height {
		return false
	}
	for k, c := range i.data {
		if other.data[k] != c {
			return false
		}
	}
	return true
}
