// Package main is the radialwarp command. It distorts an image with a radial lens model
// and shows the result side by side in a browser window.
package main

import (
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"go.viam.com/radialwarp/logging"
)

const (
	// Flags.
	flagConfig  = "config"
	flagDebug   = "debug"
	flagInput   = "input"
	flagParam   = "param"
	flagSampler = "sampler"
	flagFill    = "fill"
	flagWorkers = "workers"
	flagAddr    = "addr"
	flagWatch   = "watch"
	flagWidth   = "width"
	flagHeight  = "height"
	flagX       = "x"
	flagY       = "y"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	r := &runner{}
	paramFlag := func() cli.Flag {
		return &cli.StringSliceFlag{
			Name:  flagParam,
			Usage: "override a distortion coefficient, e.g. `k1=-0.05`; may be repeated",
		}
	}
	viewFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    flagInput,
				Aliases: []string{"i"},
				Usage:   "image to distort (default image.jpg)",
			},
			paramFlag(),
			&cli.StringFlag{
				Name:  flagSampler,
				Usage: "how source pixels are sampled: nearest or bilinear",
			},
			&cli.StringFlag{
				Name:  flagFill,
				Usage: "hex color for pixels that map outside the source",
			},
			&cli.IntFlag{
				Name:  flagWorkers,
				Usage: "number of row bands distorted in parallel",
			},
			&cli.StringFlag{
				Name:  flagAddr,
				Usage: "address to serve the window on",
			},
			&cli.BoolFlag{
				Name:  flagWatch,
				Usage: "re-run when the input image changes",
			},
		}
	}

	return &cli.App{
		Name:      "radialwarp",
		Usage:     "apply radial lens distortion to an image and view it",
		Writer:    out,
		ErrWriter: errOut,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		}, viewFlags()...),
		Before: func(c *cli.Context) error {
			level := logging.INFO
			if c.Bool(flagDebug) {
				level = logging.DEBUG
			}
			r.logger = logging.NewWriterLogger("radialwarp", level, c.App.ErrWriter)
			logging.ReplaceGlobal(r.logger)
			return nil
		},
		After: func(c *cli.Context) error {
			return r.close()
		},
		Action: r.viewAction,
		Commands: []*cli.Command{
			{
				Name:   "view",
				Usage:  "distort the input and show it in a browser window",
				Flags:  viewFlags(),
				Action: r.viewAction,
			},
			{
				Name:  "probe",
				Usage: "print where one destination pixel samples the source",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagWidth, Required: true, Usage: "raster width"},
					&cli.IntFlag{Name: flagHeight, Required: true, Usage: "raster height"},
					&cli.IntFlag{Name: flagX, Usage: "destination column"},
					&cli.IntFlag{Name: flagY, Usage: "destination row"},
					paramFlag(),
				},
				Action: r.probeAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the config file",
				Action: r.schemaAction,
			},
		},
	}
}
