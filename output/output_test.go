package output

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
	"github.com/vgarleanu/raytracer/renderer"
	"github.com/vgarleanu/raytracer/types"
)

func testFrame() *renderer.Frame {
	frame := renderer.NewFrame(4, 2)
	for idx := range frame.Pix {
		frame.Pix[idx] = types.XYZ(0.25, 0.5, 1)
	}
	frame.Pix[0] = types.XYZ(-1, 2, 0)
	return frame
}

func TestToImage(t *testing.T) {
	img := ToImage(testFrame(), 1)
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("expected 4x2 image; got %v", img.Bounds())
	}

	c := img.NRGBAAt(1, 1)
	if c.R != 63 || c.G != 127 || c.B != 255 || c.A != 255 {
		t.Fatalf("expected linear color (63, 127, 255, 255); got %v", c)
	}

	c = img.NRGBAAt(0, 0)
	if c.R != 0 || c.G != 255 || c.B != 0 {
		t.Fatalf("expected out of range channels to be clamped; got %v", c)
	}

	gammaImg := ToImage(testFrame(), 2)
	if g := gammaImg.NRGBAAt(1, 1); g.R != 127 {
		t.Fatalf("expected gamma corrected red channel 127; got %d", g.R)
	}
}

func TestToImageGamma(t *testing.T) {
	specs := []struct {
		gamma float64
		expR  uint8
		expG  uint8
	}{
		{2, 127, 181},
		{1, 63, 127},
		// Gamma values below 1 darken midtones
		{0.5, 15, 63},
		// Unusable values fall back to linear output
		{0, 63, 127},
		{-2, 63, 127},
	}

	for index, spec := range specs {
		c := ToImage(testFrame(), spec.gamma).NRGBAAt(1, 1)
		if c.R != spec.expR || c.G != spec.expG || c.B != 255 {
			t.Fatalf("[spec %d] expected (%d, %d, 255) for gamma %f; got %v", index, spec.expR, spec.expG, spec.gamma, c)
		}
	}
}

func TestValidateGamma(t *testing.T) {
	for index, gamma := range []float64{0.5, 1, 2.2} {
		if err := ValidateGamma(gamma); err != nil {
			t.Fatalf("[spec %d] expected gamma %f to be accepted; got %v", index, gamma, err)
		}
	}
	for index, gamma := range []float64{0, -1, math.Inf(1), math.NaN()} {
		if err := ValidateGamma(gamma); err == nil {
			t.Fatalf("[spec %d] expected gamma %f to be rejected", index, gamma)
		}
	}
}

func TestEncode(t *testing.T) {
	img := ToImage(testFrame(), 1)

	for _, ext := range []string{".png", ".JPG", ".gif", ".bmp", ".tiff"} {
		var buf bytes.Buffer
		if err := Encode(&buf, img, ext); err != nil {
			t.Fatalf("[%s] unexpected error: %v", ext, err)
		}

		decoded, err := imaging.Decode(&buf)
		if err != nil {
			t.Fatalf("[%s] could not decode encoded image: %v", ext, err)
		}
		if decoded.Bounds() != img.Bounds() {
			t.Fatalf("[%s] expected bounds %v; got %v", ext, img.Bounds(), decoded.Bounds())
		}
	}

	if err := Encode(io.Discard, img, ".xyz"); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := ToImage(testFrame(), 1)

	filename := filepath.Join(dir, "frame.png")
	if err := Save(img, filename); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filename); err != nil {
		t.Fatalf("expected %s to exist: %v", filename, err)
	}

	badFile := filepath.Join(dir, "frame.xyz")
	if err := Save(img, badFile); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
	if _, err := os.Stat(badFile); !os.IsNotExist(err) {
		t.Fatalf("expected partial file %s to be removed", badFile)
	}
}

func TestContentType(t *testing.T) {
	specs := []struct {
		file string
		exp  string
	}{
		{"frame.png", "image/png"},
		{"frame.JPG", "image/jpeg"},
		{"frame", "application/octet-stream"},
	}

	for idx, spec := range specs {
		if got := ContentType(spec.file); got != spec.exp {
			t.Errorf("[spec %d] expected content type %q; got %q", idx, spec.exp, got)
		}
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 200))

	thumb := Thumbnail(img, 100, 100)
	if thumb.Bounds().Dx() != 100 || thumb.Bounds().Dy() != 50 {
		t.Fatalf("expected 100x50 thumbnail; got %v", thumb.Bounds())
	}

	small := Thumbnail(img, 800, 800)
	if small.Bounds().Dx() != 400 || small.Bounds().Dy() != 200 {
		t.Fatalf("expected image that fits to keep its size; got %v", small.Bounds())
	}
}

type fakeS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	body   []byte
	err    error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, input)
	f.body, _ = io.ReadAll(input.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	client := &fakeS3{}
	u := newUploader(client, UploaderConfig{Bucket: "renders", ACL: "public-read"})

	data := []byte("png-data")
	if err := u.Upload(context.Background(), "frames/frame.png", data, "image/png"); err != nil {
		t.Fatal(err)
	}

	if len(client.inputs) != 1 {
		t.Fatalf("expected 1 upload; got %d", len(client.inputs))
	}
	in := client.inputs[0]
	if aws.StringValue(in.Bucket) != "renders" || aws.StringValue(in.Key) != "frames/frame.png" {
		t.Fatalf("expected s3://renders/frames/frame.png; got s3://%s/%s", aws.StringValue(in.Bucket), aws.StringValue(in.Key))
	}
	if aws.StringValue(in.ContentType) != "image/png" || aws.StringValue(in.ACL) != "public-read" {
		t.Fatalf("unexpected object metadata: %v", in)
	}
	if aws.Int64Value(in.ContentLength) != int64(len(data)) || !bytes.Equal(client.body, data) {
		t.Fatalf("expected body %q; got %q", data, client.body)
	}
}

func TestUploadError(t *testing.T) {
	uploadErr := errors.New("access denied")
	u := newUploader(&fakeS3{err: uploadErr}, UploaderConfig{Bucket: "renders"})

	err := u.Upload(context.Background(), "frame.png", []byte{1}, "image/png")
	if !errors.Is(err, uploadErr) {
		t.Fatalf("expected error to wrap %v; got %v", uploadErr, err)
	}
}

func TestNewUploaderWithoutBucket(t *testing.T) {
	if _, err := NewUploader(UploaderConfig{}); err != ErrBucketNotDefined {
		t.Fatalf("expected ErrBucketNotDefined; got %v", err)
	}
}
