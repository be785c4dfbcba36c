package output

import (
	"fmt"
	"image"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
)

// JPEG quality used when encoding jpeg output.
const jpegQuality = 95

// Encode an image using the format implied by the file extension ext
// (".png", ".jpg", ".gif", ".bmp", ".tif", ...).
func Encode(w io.Writer, img image.Image, ext string) error {
	ext = strings.ToLower(ext)
	switch ext {
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return fmt.Errorf("output: unsupported image format %q", ext)
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(jpegQuality))
}

// Encode an image to a file. The format is selected by the file extension.
func Save(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = Encode(f, img, filepath.Ext(filename)); err != nil {
		f.Close()
		os.Remove(filename)
		return err
	}
	return f.Close()
}

// Get the MIME type for an image file name.
func ContentType(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
