package transform

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/radialwarp/rimage"
)

// gradientImage gives every pixel a distinct color with a zero green channel.
func gradientImage(width, height int) *rimage.Image {
	img := rimage.NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetXY(x, y, rimage.NewColor(uint8(x*7), 0, uint8(y*7)))
		}
	}
	return img
}

func solidImage(width, height int, c rimage.Color) *rimage.Image {
	img := rimage.NewImage(width, height)
	img.Fill(c)
	return img
}

func TestDistortKeepsDimensions(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {4, 4}, {7, 3}, {3, 11}, {64, 48}} {
		src := gradientImage(size[0], size[1])
		dst := Distort(src, DefaultDistortionConfig())
		test.That(t, dst.Bounds(), test.ShouldResemble, src.Bounds())
	}
}

func TestDistortCenterMapsToItself(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16, 30} {
		src := gradientImage(n, n)
		dst := Distort(src, DefaultDistortionConfig())
		test.That(t, dst.GetXY(n/2, n/2), test.ShouldResemble, src.GetXY(n/2, n/2))
	}
}

func TestDistortOutOfBoundsKeepsFill(t *testing.T) {
	cfg := DefaultDistortionConfig()
	src := gradientImage(31, 23)
	opts := DefaultOptions()
	opts.Fill = rimage.Green

	dst, err := DistortWithOptions(context.Background(), src, cfg, opts)
	test.That(t, err, test.ShouldBeNil)

	distortionMap := DistortionMap(cfg, src.Width(), src.Height())
	outside := 0
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			up := distortionMap(float64(x), float64(y))
			if up.X < 0 || up.X >= float64(src.Width()) || up.Y < 0 || up.Y >= float64(src.Height()) {
				outside++
				test.That(t, dst.GetXY(x, y), test.ShouldResemble, rimage.Green)
			} else {
				test.That(t, dst.GetXY(x, y), test.ShouldResemble, src.GetXY(int(up.X), int(up.Y)))
			}
		}
	}
	test.That(t, outside, test.ShouldBeGreaterThan, 0)
}

func TestDistortIsDeterministic(t *testing.T) {
	src := gradientImage(37, 29)
	first := Distort(src, DefaultDistortionConfig())
	second := Distort(src, DefaultDistortionConfig())
	test.That(t, first.Equal(second), test.ShouldBeTrue)
}

func TestDistortSolidRed(t *testing.T) {
	src := solidImage(4, 4, rimage.NewColorWithAlpha(255, 0, 0, 255))
	dst := Distort(src, DistortionConfig{K1: -0.05436, K2: -0.45894, K3: 0.04944})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := dst.GetXY(x, y)
			// the first row and column map to negative source coordinates
			if x == 0 || y == 0 {
				test.That(t, c, test.ShouldResemble, rimage.NewColorWithAlpha(0, 0, 0, 255))
			} else {
				test.That(t, c, test.ShouldResemble, rimage.NewColorWithAlpha(255, 0, 0, 255))
			}
		}
	}
}

func TestDistortZeroCoefficientsIsIdentity(t *testing.T) {
	cfg := DistortionConfig{}
	test.That(t, cfg.IsIdentity(), test.ShouldBeTrue)
	for _, size := range [][2]int{{1, 1}, {4, 4}, {5, 3}, {49, 17}, {100, 75}} {
		src := gradientImage(size[0], size[1])
		test.That(t, Distort(src, cfg).Equal(src), test.ShouldBeTrue)

		opts := DefaultOptions()
		opts.Sampler = BilinearSampler
		dst, err := DistortWithOptions(context.Background(), src, cfg, opts)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dst.Equal(src), test.ShouldBeTrue)
	}
}

func TestDistortionMapOrigin(t *testing.T) {
	cfg := DefaultDistortionConfig()
	up := DistortionMap(cfg, 4, 4)(0, 0)
	test.That(t, up.X, test.ShouldAlmostEqual, -0.6681916093031282, 1e-5)
	test.That(t, up.Y, test.ShouldAlmostEqual, -0.6681916093031282, 1e-5)

	probe := ProbePixel(cfg, 4, 4, 0, 0)
	test.That(t, probe.Normalized.X, test.ShouldAlmostEqual, -0.5, 1e-9)
	test.That(t, probe.Normalized.Y, test.ShouldAlmostEqual, -0.5, 1e-9)
	test.That(t, probe.Radius, test.ShouldAlmostEqual, math.Sqrt2/2, 1e-9)
	test.That(t, probe.Denominator, test.ShouldAlmostEqual, 0.7495713550056307, 1e-9)
	test.That(t, probe.Source, test.ShouldResemble, up)
	test.That(t, probe.InBounds, test.ShouldBeFalse)

	probe = ProbePixel(cfg, 4, 4, 1, 2)
	test.That(t, probe.Source.X, test.ShouldAlmostEqual, 0.9567018214682075, 1e-9)
	test.That(t, probe.Source.Y, test.ShouldAlmostEqual, 2.0, 1e-9)
	test.That(t, probe.InBounds, test.ShouldBeTrue)
}

func TestDistortParallelMatchesSerial(t *testing.T) {
	src := gradientImage(33, 27)
	cfg := DefaultDistortionConfig()
	serial := Distort(src, cfg)

	for _, workers := range []int{-1, 0, 1, 2, 5, 27, 100} {
		opts := DefaultOptions()
		opts.Workers = workers
		dst, err := DistortWithOptions(context.Background(), src, cfg, opts)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dst.Equal(serial), test.ShouldBeTrue)
	}
}

func TestDistortDoesNotMutateSource(t *testing.T) {
	src := gradientImage(12, 9)
	before := src.Clone()
	Distort(src, DefaultDistortionConfig())
	test.That(t, src.Equal(before), test.ShouldBeTrue)
}

func TestDistortWithOptionsErrors(t *testing.T) {
	_, err := DistortWithOptions(context.Background(), rimage.NewImage(0, 3), DefaultDistortionConfig(), DefaultOptions())
	test.That(t, errors.Is(err, rimage.ErrEmptyImage), test.ShouldBeTrue)

	_, err = DistortWithOptions(context.Background(), nil, DefaultDistortionConfig(), DefaultOptions())
	test.That(t, errors.Is(err, rimage.ErrEmptyImage), test.ShouldBeTrue)

	_, err = DistortWithOptions(context.Background(), gradientImage(2, 2), DistortionConfig{K1: math.NaN()}, DefaultOptions())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "k1 must be finite")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := DefaultOptions()
	opts.Workers = 4
	_, err = DistortWithOptions(ctx, gradientImage(8, 8), DefaultDistortionConfig(), opts)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}

func TestParseSamplerType(t *testing.T) {
	sampler, err := ParseSamplerType("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sampler, test.ShouldEqual, NearestSampler)

	sampler, err = ParseSamplerType("bilinear")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sampler, test.ShouldEqual, BilinearSampler)

	_, err = ParseSamplerType("lanczos")
	test.That(t, err, test.ShouldNotBeNil)
}
