package transform

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// DistortionConfig holds the coefficients of the cubic radial lens model
//
//	d(r) = 1 + k1*r + k2*r² + k3*r³
//
// where r is the distance of a pixel from the image center in coordinates normalized
// by the image width and height.
type DistortionConfig struct {
	K1 float64 `json:"k1"`
	K2 float64 `json:"k2"`
	K3 float64 `json:"k3"`
}

// DefaultDistortionConfig returns the coefficients of the barrel lens the tool was built for.
func DefaultDistortionConfig() DistortionConfig {
	return DistortionConfig{K1: -0.05436, K2: -0.45894, K3: 0.04944}
}

// NewDistortionConfig takes in a slice of floats that will be passed into the struct in order.
// Missing trailing coefficients are zero.
func NewDistortionConfig(inp []float64) (DistortionConfig, error) {
	if len(inp) > 3 {
		return DistortionConfig{}, errors.Errorf("list of parameters too long, expected max 3, got %d", len(inp))
	}
	params := make([]float64, 3)
	copy(params, inp)
	cfg := DistortionConfig{params[0], params[1], params[2]}
	return cfg, cfg.CheckValid()
}

// CheckValid rejects coefficients that are NaN or infinite.
func (cfg DistortionConfig) CheckValid() error {
	for i, k := range cfg.Parameters() {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return InvalidDistortionError(errors.Errorf("k%d must be finite, got %v", i+1, k).Error())
		}
	}
	return nil
}

// ModelType implements Distorter.
func (cfg DistortionConfig) ModelType() DistortionType {
	return RadialCubicDistortionType
}

// Map implements Distorter; see DistortionMap.
func (cfg DistortionConfig) Map(width, height int) func(x, y float64) r2.Point {
	return DistortionMap(cfg, width, height)
}

// Parameters returns the coefficients as a list of floats.
func (cfg DistortionConfig) Parameters() []float64 {
	return []float64{cfg.K1, cfg.K2, cfg.K3}
}

// Denominator evaluates d(r).
func (cfg DistortionConfig) Denominator(r float64) float64 {
	return 1 + cfg.K1*r + cfg.K2*r*r + cfg.K3*r*r*r
}

// IsIdentity reports whether every coefficient is zero, making d(r) == 1.
func (cfg DistortionConfig) IsIdentity() bool {
	return cfg.K1 == 0 && cfg.K2 == 0 && cfg.K3 == 0
}
