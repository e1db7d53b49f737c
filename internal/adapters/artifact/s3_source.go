package artifact

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3Scheme prefixes model sources stored in S3
const S3Scheme = "s3"

// GetObjectAPI is the part of the S3 client the source needs
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the model bundle from an S3 object
type S3Source struct {
	client GetObjectAPI
	bucket string
	key    string
	logger *zap.Logger
}

// NewS3Source creates a new S3 source for an s3://bucket/key URI
func NewS3Source(client GetObjectAPI, uri string, logger *zap.Logger) (*S3Source, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Source{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger,
	}, nil
}

// ParseS3URI splits an s3://bucket/key URI
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 URI %q: %w", uri, err)
	}
	if u.Scheme != S3Scheme {
		return "", "", fmt.Errorf("invalid S3 URI %q: scheme must be %s", uri, S3Scheme)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q: bucket and key are required", uri)
	}
	return u.Host, key, nil
}

// Open fetches the object body
func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	s.logger.Debug("Fetching model from S3",
		zap.String("bucket", s.bucket),
		zap.String("key", s.key))

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get model object: %w", err)
	}

	return out.Body, nil
}

// Name returns the object URI
func (s *S3Source) Name() string {
	return S3Scheme + "://" + s.bucket + "/" + s.key
}
