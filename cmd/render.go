package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"github.com/vgarleanu/raytracer/output"
	"github.com/vgarleanu/raytracer/renderer"
	"github.com/vgarleanu/raytracer/scene/mapfile"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts := renderer.Options{
		FrameW:          ctx.Int("width"),
		FrameH:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		NumWorkers:      ctx.Int("workers"),
		BlockHeight:     ctx.Int("block-height"),
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	gamma := ctx.Float64("gamma")
	if err := output.ValidateGamma(gamma); err != nil {
		return err
	}

	// Load scene
	if ctx.NArg() != 1 {
		return errors.New("missing map file argument")
	}

	sc, err := mapfile.ReadScene(ctx.Args().First(), float64(opts.FrameW)/float64(opts.FrameH))
	if err != nil {
		return err
	}
	logger.Infof("scene information:\n%s", sc.Stats())

	// Create renderer
	r, err := renderer.NewDefault(sc, nil, opts)
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Noticef("rendering %dx%d frame with %d sample(s) per pixel", opts.FrameW, opts.FrameH, opts.SamplesPerPixel)
	frame, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	// Export image
	imgFile := ctx.String("out")
	img := output.ToImage(frame, gamma)
	start := time.Now()
	if err = output.Save(img, imgFile); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %s", imgFile, time.Since(start))

	files := []string{imgFile}
	if size := ctx.Int("thumbnail"); size > 0 {
		thumbFile := thumbnailName(imgFile)
		if err = output.Save(output.Thumbnail(img, uint(size), uint(size)), thumbFile); err != nil {
			return err
		}
		logger.Noticef("wrote thumbnail to %s", thumbFile)
		files = append(files, thumbFile)
	}

	if ctx.Bool("upload") {
		return uploadFiles(ctx, files)
	}
	return nil
}

// Upload the rendered files to the configured s3 bucket.
func uploadFiles(ctx *cli.Context, files []string) error {
	uploader, err := output.NewUploader(uploaderConfig(ctx))
	if err != nil {
		return err
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		key := path.Join(ctx.String("s3-prefix"), filepath.Base(file))
		if err = uploader.Upload(context.Background(), key, data, output.ContentType(file)); err != nil {
			return err
		}
	}
	return nil
}

// Get the thumbnail file name for an image (frame.png -> frame_thumb.png).
func thumbnailName(imgFile string) string {
	ext := filepath.Ext(imgFile)
	return strings.TrimSuffix(imgFile, ext) + "_thumb" + ext
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Blocks", "Rows", "% of frame", "Failed pixels", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.Blocks),
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.FailedPixels),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%d", stats.FailedPixels), stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
