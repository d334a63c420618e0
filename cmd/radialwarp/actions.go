package main

import (
	"context"
	"fmt"
	"image"
	"os/signal"
	"strings"
	"syscall"

	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/radialwarp/config"
	"go.viam.com/radialwarp/display"
	"go.viam.com/radialwarp/logging"
	"go.viam.com/radialwarp/pipeline"
	"go.viam.com/radialwarp/rimage"
	"go.viam.com/radialwarp/rimage/transform"
)

type runner struct {
	logger  logging.Logger
	logFile *logging.FileAppender
}

// loadConfig reads the --config file if there is one and applies the view flags on top.
func (r *runner) loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String(flagConfig); path != "" {
		var err error
		cfg, err = config.Read(c.Context, path, r.logger)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if c.IsSet(flagInput) {
		cfg.Input = c.String(flagInput)
	}
	if c.IsSet(flagSampler) {
		cfg.Sampler = c.String(flagSampler)
	}
	if c.IsSet(flagFill) {
		cfg.FillColor = c.String(flagFill)
	}
	if c.IsSet(flagWorkers) {
		cfg.Workers = c.Int(flagWorkers)
	}
	if c.IsSet(flagAddr) {
		cfg.Window.Address = c.String(flagAddr)
	}
	if c.IsSet(flagWatch) {
		cfg.Watch = c.Bool(flagWatch)
	}
	if err := applyParams(cfg, c.StringSlice(flagParam)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !c.Bool(flagDebug) {
		r.logger.SetLevel(cfg.Level())
	}
	if cfg.LogFile != "" && r.logFile == nil {
		r.logFile = logging.NewFileAppender(cfg.LogFile, 0, 3)
		r.logger.AddAppender(r.logFile)
	}
	if err := logging.UpdateLoggerConfig(cfg.LogConfig, r.logger); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyParams(cfg *config.Config, params []string) error {
	overrides, err := config.ParseOverrides(params)
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", flagParam)
	}
	return cfg.ApplyOverrides(overrides)
}

func (r *runner) viewAction(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := r.loadConfig(c)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg, r.logger.Sublogger("pipeline"))
	if err != nil {
		return err
	}
	res, err := p.Run(ctx)
	if err != nil {
		return err
	}
	r.logger.Infow("distorted image",
		"input", cfg.Input,
		"size", res.Destination.Bounds().Size(),
		"params", cfg.Distortion.Parameters(),
		"elapsed", res.Elapsed,
	)

	fill, err := rimage.NewColorFromHex(cfg.FillColor)
	if err != nil {
		return err
	}
	win := display.NewWebWindow(display.WebWindowConfig{
		Title:         cfg.Window.Title,
		Size:          image.Pt(cfg.Window.Width, cfg.Window.Height),
		Address:       cfg.Window.Address,
		Background:    fill,
		RefreshMillis: int(cfg.Window.Interval().Milliseconds()),
	}, r.logger.Sublogger("display"))
	if err := win.Start(ctx); err != nil {
		return err
	}
	defer goutils.UncheckedErrorFunc(win.Close)

	var updates chan image.Image
	if cfg.Watch {
		updates = make(chan image.Image, 1)
		watchCtx, cancelWatch := context.WithCancel(ctx)
		defer cancelWatch()
		goutils.PanicCapturingGo(func() {
			err := p.Watch(watchCtx, []string{cfg.Input}, func(res *pipeline.Result) {
				select {
				case <-watchCtx.Done():
				case updates <- res.Destination:
				}
			})
			if err != nil {
				r.logger.Errorw("stopped watching input", "error", err)
			}
		})
	}

	placements := display.Placements(
		image.Pt(cfg.Window.Width, cfg.Window.Height),
		image.Pt(cfg.Window.PanelWidth, cfg.Window.PanelHeight),
	)
	return display.Run(ctx, win, res.Destination, placements, updates, cfg.Window.Interval(), r.logger.Sublogger("display"))
}

func (r *runner) probeAction(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Read(c.Context, path, r.logger); err != nil {
			return err
		}
	}
	if err := applyParams(cfg, c.StringSlice(flagParam)); err != nil {
		return err
	}
	width, height := c.Int(flagWidth), c.Int(flagHeight)
	x, y := c.Int(flagX), c.Int(flagY)
	if width <= 0 || height <= 0 {
		return errors.Wrapf(rimage.ErrEmptyImage, "dimensions (%d,%d)", width, height)
	}
	if x < 0 || x >= width || y < 0 || y >= height {
		return errors.Errorf("pixel (%d,%d) is outside a %dx%d raster", x, y, width, height)
	}

	probe := transform.ProbePixel(cfg.Distortion, width, height, x, y)
	params := lo.Map(cfg.Distortion.Parameters(), func(k float64, i int) string {
		return fmt.Sprintf("k%d=%v", i+1, k)
	})
	point := func(p r2.Point) string {
		return fmt.Sprintf("(%v,%v)", p.X, p.Y)
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Quantity", "Value"})
	t.AppendRows([]table.Row{
		{"params", strings.Join(params, " ")},
		{"pixel", point(probe.Pixel)},
		{"normalized", point(probe.Normalized)},
		{"radius", fmt.Sprint(probe.Radius)},
		{"denominator", fmt.Sprint(probe.Denominator)},
		{"source", point(probe.Source)},
		{"in bounds", fmt.Sprint(probe.InBounds)},
	})
	fmt.Fprintln(c.App.Writer, t.Render())
	return nil
}

func (r *runner) schemaAction(c *cli.Context) error {
	schema, err := config.Schema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(schema))
	return err
}

func (r *runner) close() error {
	if r.logger != nil {
		//nolint:errcheck
		r.logger.Sync()
	}
	if r.logFile != nil {
		return r.logFile.Close()
	}
	return nil
}
