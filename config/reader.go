package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/radialwarp/logging"
	"go.viam.com/radialwarp/rimage/transform"
)

// Read reads a config from the given file, expanding environment variables first.
func Read(ctx context.Context, filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %q", filePath)
	}
	cfg, err := FromReader(ctx, filePath, bytes.NewReader(buf), logger)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from. Fields missing
// from the document keep their defaults, so a coefficient left out of
// "distortion" keeps its default value.
func FromReader(ctx context.Context, originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := &Config{Distortion: transform.DefaultDistortionConfig()}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode Config from json")
	}
	cfg.ConfigFilePath = originalPath
	if err := cfg.Ensure(); err != nil {
		return nil, err
	}
	logger.Debugw("config loaded", "path", originalPath, "input", cfg.Input, "distortion", cfg.Distortion.Parameters())
	return cfg, nil
}
