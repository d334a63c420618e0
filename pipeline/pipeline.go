// Package pipeline loads the configured input image and runs it through the distortion mapper.
package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"go.viam.com/radialwarp/config"
	"go.viam.com/radialwarp/logging"
	"go.viam.com/radialwarp/rimage"
	"go.viam.com/radialwarp/rimage/transform"
	"go.viam.com/radialwarp/utils"
)

// Result is the outcome of one pass over the input image.
type Result struct {
	Source      *rimage.Image
	Destination *rimage.Image
	Elapsed     time.Duration
}

// Pipeline decodes, validates and distorts the input named by a config.
type Pipeline struct {
	cfg    *config.Config
	opts   transform.Options
	logger logging.Logger
}

// New returns a pipeline for cfg. The config must already be valid.
func New(cfg *config.Config, logger logging.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if err := cfg.Distortion.CheckValid(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, opts: opts, logger: logger}, nil
}

// Input returns the path of the image the pipeline reads.
func (p *Pipeline) Input() string {
	return p.cfg.Input
}

// Run reads the input image and distorts it once.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	src, err := rimage.ReadImageFromFile(p.cfg.Input)
	if err != nil {
		return nil, err
	}
	if err := rimage.CheckDimensions(src); err != nil {
		return nil, errors.Wrapf(err, "cannot distort %s", p.cfg.Input)
	}
	stopSlowLogger := utils.SlowLogger(ctx, "distorting image is taking a while", "input", p.cfg.Input, p.logger)
	dst, err := transform.DistortWithOptions(ctx, src, p.cfg.Distortion, p.opts)
	stopSlowLogger()
	if err != nil {
		return nil, err
	}
	res := &Result{Source: src, Destination: dst, Elapsed: time.Since(start)}
	p.logger.Debugw("distorted image",
		"input", p.cfg.Input,
		"width", src.Width(),
		"height", src.Height(),
		"sampler", p.opts.Sampler,
		"elapsed", res.Elapsed,
	)
	return res, nil
}
