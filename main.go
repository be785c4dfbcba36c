package main

import (
	"os"

	"github.com/urfave/cli"
	"github.com/vgarleanu/raytracer/cmd"
	"github.com/vgarleanu/raytracer/log"
)

func main() {
	logger := log.New("raytracer")

	if err := cmd.LoadEnv(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes using multithreaded ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "log level (debug, info, notice, warning, error)",
			EnvVar: "RT_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:  "env",
			Value: ".env",
			Usage: "dotenv file with environment overrides",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a map file to an image",
			Description: `
Load a scene from a JSON map file (local path or http(s) URL) and render a
single frame using a pool of worker goroutines. The output format is selected
by the extension of the output file (png, jpg, gif, bmp or tif).

Rendered images can optionally be uploaded to an s3 bucket whose settings are
read from the RT_S3_ACCESS_KEY, RT_S3_SECRET_KEY, RT_S3_ENDPOINT, RT_S3_REGION
and RT_S3_BUCKET environment variables.`,
			ArgsUsage: "map.json",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "width",
					Value:  800,
					Usage:  "frame width",
					EnvVar: "RT_WIDTH",
				},
				cli.IntFlag{
					Name:   "height",
					Value:  600,
					Usage:  "frame height",
					EnvVar: "RT_HEIGHT",
				},
				cli.IntFlag{
					Name:   "spp",
					Value:  1,
					Usage:  "samples per pixel",
					EnvVar: "RT_SPP",
				},
				cli.IntFlag{
					Name:   "workers, w",
					Value:  0,
					Usage:  "number of render workers (0 = one per cpu)",
					EnvVar: "RT_WORKERS",
				},
				cli.IntFlag{
					Name:   "block-height",
					Value:  0,
					Usage:  "rows per scheduled block (0 = one block per worker)",
					EnvVar: "RT_BLOCK_HEIGHT",
				},
				cli.Float64Flag{
					Name:   "gamma",
					Value:  2.0,
					Usage:  "gamma applied when converting the frame to 8-bit",
					EnvVar: "RT_GAMMA",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.IntFlag{
					Name:  "thumbnail",
					Value: 0,
					Usage: "also write a thumbnail that fits in a NxN box",
				},
				cli.BoolFlag{
					Name:  "upload",
					Usage: "upload the rendered images to s3",
				},
				cli.StringFlag{
					Name:   "s3-prefix",
					Value:  "renders",
					Usage:  "key prefix for uploaded images",
					EnvVar: "RT_S3_PREFIX",
				},
				cli.StringFlag{
					Name:   "s3-acl",
					Usage:  "canned acl for uploaded images",
					EnvVar: "RT_S3_ACL",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scene",
			Usage: "inspect and generate map files",
			Subcommands: []cli.Command{
				{
					Name:      "info",
					Usage:     "print scene information for a map file",
					ArgsUsage: "map.json",
					Action:    cmd.ShowSceneInfo,
				},
				{
					Name:  "generate",
					Usage: "generate a random map file",
					Flags: []cli.Flag{
						cli.Int64Flag{
							Name:  "seed",
							Usage: "random seed (defaults to the current time)",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "map.json",
							Usage: "map filename",
						},
					},
					Action: cmd.GenerateScene,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
