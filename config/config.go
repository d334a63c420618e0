// Package config defines the radialwarp configuration file and how it is read.
package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/radialwarp/logging"
	"go.viam.com/radialwarp/rimage"
	"go.viam.com/radialwarp/rimage/transform"
)

// Default values used by Default and by Ensure for unset fields.
const (
	DefaultInput         = "image.jpg"
	DefaultFillColor     = "#000000"
	DefaultWindowTitle   = "Distorted Image"
	DefaultWindowWidth   = 800
	DefaultWindowHeight  = 600
	DefaultPanelSize     = 400
	DefaultAddress       = "localhost:8080"
	DefaultFrameInterval = 33 * time.Millisecond
)

// Config is the top level radialwarp configuration.
type Config struct {
	ConfigFilePath string `json:"-"`

	Input      string                        `json:"input"`
	Distortion transform.DistortionConfig    `json:"distortion"`
	Sampler    string                        `json:"sampler,omitempty"`
	FillColor  string                        `json:"fill_color,omitempty"`
	Workers    int                           `json:"workers,omitempty"`
	Watch      bool                          `json:"watch,omitempty"`
	LogLevel   string                        `json:"log_level,omitempty"`
	LogConfig  []logging.LoggerPatternConfig `json:"log,omitempty"`
	LogFile    string                        `json:"log_file,omitempty"`
	Window     WindowConfig                  `json:"window"`
}

// WindowConfig describes where and how the distorted image is shown.
type WindowConfig struct {
	Title         string `json:"title,omitempty"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
	PanelWidth    int    `json:"panel_width,omitempty"`
	PanelHeight   int    `json:"panel_height,omitempty"`
	Address       string `json:"address,omitempty"`
	FrameInterval string `json:"frame_interval,omitempty"`

	frameInterval time.Duration
}

// Default returns a config that shows image.jpg through the default lens.
func Default() *Config {
	cfg := &Config{Distortion: transform.DefaultDistortionConfig()}
	if err := cfg.Ensure(); err != nil {
		panic(err) // defaults are always valid
	}
	return cfg
}

// Ensure fills in defaults for unset fields and validates the result.
func (c *Config) Ensure() error {
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.FillColor == "" {
		c.FillColor = DefaultFillColor
	}
	if c.Sampler == "" {
		c.Sampler = string(transform.NearestSampler)
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if err := c.Window.ensure("window"); err != nil {
		return err
	}
	return c.Validate()
}

// Validate reports the first invalid field, naming its path in the config file.
func (c *Config) Validate() error {
	if c.Input == "" {
		return utils.NewConfigValidationFieldRequiredError("", "input")
	}
	if err := c.Distortion.CheckValid(); err != nil {
		return utils.NewConfigValidationError("distortion", err)
	}
	if _, err := transform.ParseSamplerType(c.Sampler); err != nil {
		return utils.NewConfigValidationError("sampler", err)
	}
	if _, err := rimage.NewColorFromHex(c.FillColor); err != nil {
		return utils.NewConfigValidationError("fill_color", err)
	}
	if c.Workers < 0 {
		return utils.NewConfigValidationError("workers", errors.Errorf("must be positive, got %d", c.Workers))
	}
	if _, err := logging.LevelFromString(c.LogLevel); err != nil {
		return utils.NewConfigValidationError("log_level", err)
	}
	for idx, lpc := range c.LogConfig {
		if !logging.ValidatePattern(lpc.Pattern) {
			return utils.NewConfigValidationError(fmt.Sprintf("log.%d", idx), errors.Errorf("invalid pattern %q", lpc.Pattern))
		}
		if _, err := logging.LevelFromString(lpc.Level); err != nil {
			return utils.NewConfigValidationError(fmt.Sprintf("log.%d", idx), err)
		}
	}
	return nil
}

func (w *WindowConfig) ensure(path string) error {
	if w.Title == "" {
		w.Title = DefaultWindowTitle
	}
	if w.Width == 0 {
		w.Width = DefaultWindowWidth
	}
	if w.Height == 0 {
		w.Height = DefaultWindowHeight
	}
	if w.PanelWidth == 0 {
		w.PanelWidth = DefaultPanelSize
	}
	if w.PanelHeight == 0 {
		w.PanelHeight = DefaultPanelSize
	}
	if w.Address == "" {
		w.Address = DefaultAddress
	}
	w.frameInterval = DefaultFrameInterval
	if w.FrameInterval != "" {
		interval, err := time.ParseDuration(w.FrameInterval)
		if err != nil {
			return utils.NewConfigValidationError(path+".frame_interval", err)
		}
		w.frameInterval = interval
	}
	if w.frameInterval <= 0 {
		return utils.NewConfigValidationError(path+".frame_interval", errors.New("must be positive"))
	}
	if w.Width < 0 || w.Height < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("invalid size (%d,%d)", w.Width, w.Height))
	}
	if w.PanelWidth < 0 || w.PanelHeight < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("invalid panel size (%d,%d)", w.PanelWidth, w.PanelHeight))
	}
	return nil
}

// Interval returns the parsed frame interval; Ensure must have been called.
func (w WindowConfig) Interval() time.Duration {
	if w.frameInterval == 0 {
		return DefaultFrameInterval
	}
	return w.frameInterval
}

// Options resolves the remap options described by the config.
func (c *Config) Options() (transform.Options, error) {
	sampler, err := transform.ParseSamplerType(c.Sampler)
	if err != nil {
		return transform.Options{}, err
	}
	fill, err := rimage.NewColorFromHex(c.FillColor)
	if err != nil {
		return transform.Options{}, err
	}
	return transform.Options{
		Fill:    fill,
		Sampler: sampler,
		Workers: c.Workers,
	}, nil
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	level, err := logging.LevelFromString(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}
