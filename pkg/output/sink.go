package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
)

// UploadTimeout bounds a single S3 upload
const UploadTimeout = 30 * time.Second

// Sink stores an encoded image under a name such as "render.png". The
// extension selects the encoding.
type Sink interface {
	Write(ctx context.Context, name string, img image.Image) error
}

// FileSink writes images into a directory
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink writing below dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Write implements Sink
func (f *FileSink) Write(ctx context.Context, name string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(f.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// S3Config holds bucket access settings, usually read from the environment
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders/"
}

// S3ConfigFromEnv reads S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT, S3_REGION,
// S3_BUCKET and S3_PREFIX. The region defaults to us-east-1.
func S3ConfigFromEnv() S3Config {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}
	return S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    region,
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}
}

// S3Sink uploads images to an S3-compatible bucket
type S3Sink struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Sink opens a session against an S3-compatible endpoint with static credentials
func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3SinkWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix), nil
}

// NewS3SinkWithClient creates a sink around an existing S3 client
func NewS3SinkWithClient(client s3iface.S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// Write implements Sink
func (s *S3Sink) Write(ctx context.Context, name string, img image.Image) error {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := s.prefix + name
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String(contentType(format)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func contentType(format imaging.Format) string {
	return "image/" + strings.ToLower(format.String())
}
