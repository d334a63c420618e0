package transform

import (
	"context"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/radialwarp/rimage"
	"go.viam.com/radialwarp/utils"
)

// SamplerType names how a mapped source coordinate is turned into a color.
type SamplerType string

const (
	// NearestSampler truncates the coordinate to the pixel at or below it.
	NearestSampler = SamplerType("nearest")
	// BilinearSampler blends the four surrounding pixels.
	BilinearSampler = SamplerType("bilinear")
)

// ParseSamplerType accepts "nearest", "bilinear", or the empty string for nearest.
func ParseSamplerType(s string) (SamplerType, error) {
	switch SamplerType(s) {
	case "", NearestSampler:
		return NearestSampler, nil
	case BilinearSampler:
		return BilinearSampler, nil
	default:
		return "", errors.Errorf("do not know how to sample with %q", s)
	}
}

func (s SamplerType) sampler() func(r2.Point, *rimage.Image) (rimage.Color, bool) {
	if s == BilinearSampler {
		return rimage.BilinearColor
	}
	return rimage.NearestNeighborColor
}

// Options controls DistortWithOptions.
type Options struct {
	// Fill is the color of destination pixels whose source falls outside the image.
	Fill    rimage.Color
	Sampler SamplerType
	// Workers is the number of row bands processed concurrently; values below 1 mean 1.
	Workers int
}

// DefaultOptions fills with opaque black, samples by truncation and runs on the calling goroutine.
func DefaultOptions() Options {
	return Options{
		Fill:    rimage.Black,
		Sampler: NearestSampler,
		Workers: 1,
	}
}

// DistortionMap returns the function taking a destination pixel (x, y) of a width x height
// image to the source coordinate it is sampled from. The pixel is normalized about the
// image center, its radius r scales it by 1/d(r), and the result is mapped back to pixels.
// This reuses the destination radius instead of solving the forward model for the source.
func DistortionMap(cfg DistortionConfig, width, height int) func(x, y float64) r2.Point {
	w, h := float64(width), float64(height)
	center := r2.Point{X: w / 2, Y: h / 2}
	return func(x, y float64) r2.Point {
		offset := r2.Point{X: x, Y: y}.Sub(center)
		np := r2.Point{X: offset.X / w, Y: offset.Y / h}
		d := cfg.Denominator(np.Norm())
		// np * (w/d, h/d) is offset/d; dividing the pixel offset keeps d == 1 exact.
		return center.Add(r2.Point{X: offset.X / d, Y: offset.Y / d})
	}
}

// Distort returns a new image the size of src where each pixel is sampled from src through
// DistortionMap. Pixels whose source lies outside src are opaque black. src must have
// non-zero dimensions; see rimage.CheckDimensions.
func Distort(src *rimage.Image, cfg DistortionConfig) *rimage.Image {
	dst := rimage.NewImage(src.Width(), src.Height())
	dst.Fill(rimage.Black)
	distortRows(src, dst, cfg.Map(src.Width(), src.Height()), rimage.NearestNeighborColor, 0, src.Height())
	return dst
}

// DistortWithOptions is Distort with a configurable fill, sampler, and row parallelism.
// The output does not depend on opts.Workers.
func DistortWithOptions(ctx context.Context, src *rimage.Image, cfg DistortionConfig, opts Options) (*rimage.Image, error) {
	if err := rimage.CheckDimensions(src); err != nil {
		return nil, err
	}
	if err := cfg.CheckValid(); err != nil {
		return nil, err
	}
	dst := rimage.NewImage(src.Width(), src.Height())
	dst.Fill(opts.Fill)

	distortionMap := cfg.Map(src.Width(), src.Height())
	sample := opts.Sampler.sampler()
	workers := lo.Clamp(opts.Workers, 1, src.Height())

	// Each band writes disjoint rows of dst, so no locking is needed.
	err := utils.GroupWorkParallel(ctx, src.Height(), workers, func(ctx context.Context, _, from, to int) error {
		for y := from; y < to; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			distortRows(src, dst, distortionMap, sample, y, y+1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

func distortRows(
	src, dst *rimage.Image,
	distortionMap func(x, y float64) r2.Point,
	sample func(r2.Point, *rimage.Image) (rimage.Color, bool),
	fromY, toY int,
) {
	for y := fromY; y < toY; y++ {
		for x := 0; x < src.Width(); x++ {
			if c, ok := sample(distortionMap(float64(x), float64(y)), src); ok {
				dst.SetXY(x, y, c)
			}
		}
	}
}

// Probe describes the mapping of a single destination pixel.
type Probe struct {
	Pixel       r2.Point
	Normalized  r2.Point
	Radius      float64
	Denominator float64
	Source      r2.Point
	InBounds    bool
}

// ProbePixel evaluates every intermediate of DistortionMap for one pixel.
func ProbePixel(cfg DistortionConfig, width, height, x, y int) Probe {
	w, h := float64(width), float64(height)
	p := r2.Point{X: float64(x), Y: float64(y)}
	np := r2.Point{X: (p.X - w/2) / w, Y: (p.Y - h/2) / h}
	r := np.Norm()
	up := DistortionMap(cfg, width, height)(p.X, p.Y)
	return Probe{
		Pixel:       p,
		Normalized:  np,
		Radius:      r,
		Denominator: cfg.Denominator(r),
		Source:      up,
		InBounds:    up.X >= 0 && up.X < w && up.Y >= 0 && up.Y < h,
	}
}
