package transform

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// DistortionType is the name of the distortion model.
type DistortionType string

// RadialCubicDistortionType scales pixels about the image center by 1/d(r) with d a cubic in r.
// It is the only model.
const RadialCubicDistortionType = DistortionType("radial_cubic")

// Distorter is a lens model that can say where each destination pixel is sampled from.
type Distorter interface {
	ModelType() DistortionType
	CheckValid() error
	Parameters() []float64
	Map(width, height int) func(x, y float64) r2.Point
}

// InvalidDistortionError is used when the distortion parameters are invalid.
func InvalidDistortionError(msg string) error {
	return errors.Wrap(errors.New("invalid distortion parameters"), msg)
}

var _ Distorter = DistortionConfig{}
