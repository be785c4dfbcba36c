package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/vgarleanu/raytracer/log"
)

// Timeout for a single upload.
const UploadTimeout = 30 * time.Second

var ErrBucketNotDefined = errors.New("output: no s3 bucket defined")

// S3 compatible object storage settings.
type UploaderConfig struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string

	// Canned ACL applied to uploaded objects (e.g. public-read).
	ACL string
}

// Uploader publishes rendered images to an S3 bucket.
type Uploader struct {
	client s3iface.S3API
	bucket string
	acl    string
	logger log.Logger
}

// Create an uploader. If no access key is configured the default aws
// credential chain is used.
func NewUploader(cfg UploaderConfig) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketNotDefined
	}

	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.Endpoint != ""),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("output: could not create s3 session: %w", err)
	}

	return newUploader(s3.New(sess), cfg), nil
}

func newUploader(client s3iface.S3API, cfg UploaderConfig) *Uploader {
	return &Uploader{
		client: client,
		bucket: cfg.Bucket,
		acl:    cfg.ACL,
		logger: log.New("upload"),
	}
}

// Upload data under key.
func (u *Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}
	if u.acl != "" {
		input.ACL = aws.String(u.acl)
	}

	if _, err := u.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("output: failed to upload %s: %w", key, err)
	}

	u.logger.Infof("uploaded %s to s3://%s (%d bytes)", key, u.bucket, len(data))
	return nil
}
