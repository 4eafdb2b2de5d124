// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads s3://bucket/key sources.
type S3 struct {
	Client  S3API
	MaxSize int64
}

// NewS3 builds an S3 fetcher from the default AWS credential chain.
func NewS3(ctx context.Context, optFns ...func(*config.LoadOptions) error) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &S3{Client: s3.NewFromConfig(cfg)}, nil
}

// ParseS3 splits an s3://bucket/key URL.
func ParseS3(source string) (bucket, key string, err error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q is not s3://bucket/key", ErrInvalidSource, source)
	}

	return u.Host, key, nil
}

func (f *S3) Fetch(ctx context.Context, source string) ([]byte, error) {
	bucket, key, err := ParseS3(source)
	if err != nil {
		return nil, err
	}

	out, err := f.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting s3 object: %w", err)
	}
	defer out.Body.Close()

	limit := f.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	if out.ContentLength != nil && *out.ContentLength > limit {
		return nil, fmt.Errorf("%w: content length %d", ErrTooLarge, *out.ContentLength)
	}

	return readLimited(out.Body, limit)
}
