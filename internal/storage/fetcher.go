package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ObjectFetcher reads design assets (banners, logos) from S3-compatible
// storage. Operators keep uploaded images in a hosted bucket and settings
// may reference them by object key instead of a public URL.
type ObjectFetcher struct {
	s3Client *s3.S3
	bucket   string
}

// Config holds configuration for the storage fetcher
type Config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
}

// NewObjectFetcher creates a new storage fetcher
func NewObjectFetcher(config *Config) (*ObjectFetcher, error) {
	if config.Endpoint == "" || config.AccessKeyID == "" || config.AccessKeySecret == "" {
		return nil, fmt.Errorf("storage configuration is incomplete")
	}

	if config.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is not configured")
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region:           aws.String(config.Region),
		Endpoint:         aws.String(config.Endpoint + "/storage/v1/s3"),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(false),
	}))

	return &ObjectFetcher{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
	}, nil
}

// FetchObject downloads an object from the bucket and returns its bytes.
func (f *ObjectFetcher) FetchObject(ctx context.Context, key string) ([]byte, error) {
	out, err := f.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch object %q: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", key, err)
	}

	return data, nil
}
