package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the subset of *s3.Client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink stores objects in an S3 bucket.
//
// Example usage:
//
//	client, err := export.NewS3ClientFromEnv(ctx)
//	sink := export.NewS3Sink(client, "my-bucket", "previews/")
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Sink creates an S3 sink. prefix is prepended to every object name.
func NewS3Sink(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Write uploads r as bucket/prefix+name and returns its s3:// location.
func (s *S3Sink) Write(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	key := s.prefix + clean

	// PutObject needs a seekable body to compute the payload hash.
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		Metadata: map[string]string{
			"export-time": s.now().UTC().Format(time.RFC3339),
		},
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}

// NewS3ClientFromEnv builds an S3 client from the default AWS configuration
// chain: environment, shared config and credentials files, SSO and instance
// roles. AWS_ENDPOINT_URL_S3 points the client at an S3-compatible store and
// switches it to path-style addressing.
func NewS3ClientFromEnv(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", ErrInvalidTarget, err)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: AWS_REGION is not set", ErrInvalidTarget)
	}

	endpoint := env("AWS_ENDPOINT_URL_S3")
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
