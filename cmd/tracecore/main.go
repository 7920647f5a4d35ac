package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "tracecore",
		Usage:   "render built-in demo scenes with the core path tracer",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "v", Usage: "enable info-level logging"},
			&cli.BoolFlag{Name: "vv", Usage: "enable debug-level logging"},
		},
		Commands: []*cli.Command{
			{
				Name:   "scenes",
				Usage:  "list the built-in demo scenes",
				Action: listScenes,
			},
			{
				Name:      "render",
				Usage:     "render a built-in demo scene to a .pfm file",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scene", Value: "cornell", Usage: "demo scene name (see 'tracecore scenes')"},
					&cli.IntFlag{Name: "width", Usage: "override frame width"},
					&cli.IntFlag{Name: "height", Usage: "override frame height"},
					&cli.IntFlag{Name: "spp", Usage: "override samples per pixel"},
					&cli.IntFlag{Name: "depth-max", Usage: "override integrator.depth_max"},
					&cli.BoolFlag{Name: "volpath", Usage: "use the volumetric path tracer instead of the surface-only one"},
					&cli.IntFlag{Name: "workers", Usage: "worker goroutines (default: number of hardware threads)"},
					&cli.Int64Flag{Name: "seed", Value: 1, Usage: "frame salt seeding every pixel's RNG stream"},
					&cli.StringFlag{Name: "out", Value: "frame.pfm", Usage: "output .pfm path"},
				},
				Action: renderFrame,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
