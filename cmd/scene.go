package cmd

import (
	"errors"
	"time"

	"github.com/urfave/cli"
	"github.com/vgarleanu/raytracer/scene/mapfile"
)

// Display map file scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing map file argument")
	}

	sc, err := mapfile.ReadScene(ctx.Args().First(), 1.0)
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}

// Generate a random map file.
func GenerateScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	seed := uint64(ctx.Int64("seed"))
	if !ctx.IsSet("seed") {
		seed = uint64(time.Now().UnixNano())
	}

	mapFile := ctx.String("out")
	if err := mapfile.WriteFile(mapFile, mapfile.Random(seed)); err != nil {
		return err
	}

	logger.Noticef("wrote random map (seed %d) to %s", seed, mapFile)
	return nil
}
